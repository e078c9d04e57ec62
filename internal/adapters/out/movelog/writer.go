// Package movelog stores simulation move logs on disk, one line per round.
//
// A target ending in ".zst" is compressed with zstd. A target naming a directory
// receives a file called "<score>.txt" (or "<score>.txt.zst" with WithZstd).
package movelog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dronedelivery/internal/pkg/errs"

	"github.com/klauspost/compress/zstd"
)

const zstdExt = ".zst"

// FileWriter implements ports.MoveLogWriter on the local filesystem.
type FileWriter struct {
	target string
	zstd   bool
}

// Option configures a FileWriter.
type Option func(*FileWriter)

// WithZstd compresses files named after the score inside a directory target.
func WithZstd() Option {
	return func(w *FileWriter) {
		w.zstd = true
	}
}

// NewFileWriter creates a writer for a file path or a directory.
func NewFileWriter(target string, opts ...Option) (*FileWriter, error) {
	if strings.TrimSpace(target) == "" {
		return nil, errs.NewValueIsRequiredError("target")
	}
	w := &FileWriter{target: target}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Write stores the lines and returns the path written.
func (w *FileWriter) Write(ctx context.Context, score int, lines []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := w.resolve(score)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err = writeLines(f, path, lines); err != nil {
		_ = f.Close()
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func (w *FileWriter) resolve(score int) (string, error) {
	isDir := strings.HasSuffix(w.target, string(filepath.Separator)) || strings.HasSuffix(w.target, "/")
	if !isDir {
		info, err := os.Stat(w.target)
		switch {
		case err == nil:
			isDir = info.IsDir()
		case !os.IsNotExist(err):
			return "", err
		}
	}
	if !isDir {
		return w.target, nil
	}

	name := fmt.Sprintf("%d.txt", score)
	if w.zstd {
		name += zstdExt
	}
	return filepath.Join(w.target, name), nil
}

func writeLines(f *os.File, path string, lines []string) error {
	var (
		out io.Writer = f
		enc *zstd.Encoder
		err error
	)
	if strings.HasSuffix(path, zstdExt) {
		enc, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		out = enc
	}

	bw := bufio.NewWriter(out)
	for _, line := range lines {
		if _, err = bw.WriteString(line); err != nil {
			return err
		}
		if err = bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err = bw.Flush(); err != nil {
		return err
	}

	if enc != nil {
		return enc.Close()
	}
	return nil
}

// Read loads a move log written by FileWriter, decompressing ".zst" files.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var in io.Reader = f
	if strings.HasSuffix(path, zstdExt) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		in = dec
	}

	lines := make([]string, 0)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err = sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
