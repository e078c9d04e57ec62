package scenario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dronedelivery/internal/core/domain/model/kernel"
)

// ErrMalformedInput is returned when a scenario text does not follow the input format.
var ErrMalformedInput = errors.New("malformed scenario input")

// Parse reads a scenario in the challenge text format:
//
//	rows columns
//	packetCount droneCount maxDistance maxRound
//	depotRow depotColumn
//	packetRow packetColumn      (packetCount lines)
//
// Blank lines after the last packet are ignored.
func Parse(r io.Reader) (Scenario, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	next := func(fields int) ([]int, error) {
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			return parseInts(line, fields, lineNo)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading line %d: %w", lineNo+1, err)
		}
		return nil, fmt.Errorf("%w: unexpected end of input after line %d", ErrMalformedInput, lineNo)
	}

	size, err := next(2)
	if err != nil {
		return Scenario{}, err
	}
	header, err := next(4)
	if err != nil {
		return Scenario{}, err
	}
	depot, err := next(2)
	if err != nil {
		return Scenario{}, err
	}
	depotPos, err := kernel.NewPosition(depot[0], depot[1])
	if err != nil {
		return Scenario{}, fmt.Errorf("%w: line %d: %w", ErrMalformedInput, lineNo, err)
	}

	packetCount := header[0]
	if packetCount < 0 {
		return Scenario{}, fmt.Errorf("%w: line 2: negative packet count %d", ErrMalformedInput, packetCount)
	}
	if packetCount > MaxPacketCount {
		return Scenario{}, fmt.Errorf("%w: line 2: packet count %d exceeds %d", ErrMalformedInput, packetCount, MaxPacketCount)
	}
	packets := make([]kernel.Position, 0, packetCount)
	for range packetCount {
		cell, err := next(2)
		if err != nil {
			return Scenario{}, err
		}
		p, err := kernel.NewPosition(cell[0], cell[1])
		if err != nil {
			return Scenario{}, fmt.Errorf("%w: line %d: %w", ErrMalformedInput, lineNo, err)
		}
		packets = append(packets, p)
	}

	for scanner.Scan() {
		lineNo++
		if strings.TrimSpace(scanner.Text()) != "" {
			return Scenario{}, fmt.Errorf("%w: line %d: more packets than announced (%d)", ErrMalformedInput, lineNo, packetCount)
		}
	}
	if err := scanner.Err(); err != nil {
		return Scenario{}, fmt.Errorf("reading line %d: %w", lineNo+1, err)
	}

	s, err := NewScenario(size[0], size[1], header[1], header[2], header[3], depotPos, packets)
	if err != nil {
		return Scenario{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return s, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(text string) (Scenario, error) {
	return Parse(strings.NewReader(text))
}

// Text renders the scenario back into the input format, packets in sorted order.
func (s Scenario) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d\n", s.rows, s.columns)
	fmt.Fprintf(&b, "%d %d %d %d\n", len(s.packets), s.droneCount, s.maxDistance, s.maxRound)
	fmt.Fprintf(&b, "%d %d\n", s.depot.Row(), s.depot.Column())
	for _, p := range s.packets {
		fmt.Fprintf(&b, "%d %d\n", p.Row(), p.Column())
	}
	return b.String()
}

func parseInts(line string, expected int, lineNo int) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) != expected {
		return nil, fmt.Errorf("%w: line %d: expected %d numbers, got %d", ErrMalformedInput, lineNo, expected, len(fields))
	}
	values := make([]int, expected)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q is not a number", ErrMalformedInput, lineNo, f)
		}
		values[i] = v
	}
	return values, nil
}
