package movelog_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"dronedelivery/internal/adapters/out/movelog"
	"dronedelivery/internal/core/ports"
	"dronedelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.MoveLogWriter = (*movelog.FileWriter)(nil)

var moves = []string{"0 0 0", "0 1 0", "4 4 4"}

func TestNewFileWriter_EmptyTarget(t *testing.T) {
	_, err := movelog.NewFileWriter("  ")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestFileWriter_Write(t *testing.T) {
	tests := []struct {
		name     string
		target   func(dir string) string
		opts     []movelog.Option
		wantPath func(dir string) string
	}{
		{
			name:     "plain file",
			target:   func(dir string) string { return filepath.Join(dir, "moves.txt") },
			wantPath: func(dir string) string { return filepath.Join(dir, "moves.txt") },
		},
		{
			name:     "zstd file",
			target:   func(dir string) string { return filepath.Join(dir, "moves.txt.zst") },
			wantPath: func(dir string) string { return filepath.Join(dir, "moves.txt.zst") },
		},
		{
			name:     "existing directory uses the score",
			target:   func(dir string) string { return dir },
			wantPath: func(dir string) string { return filepath.Join(dir, "355.txt") },
		},
		{
			name:     "new directory with trailing separator",
			target:   func(dir string) string { return filepath.Join(dir, "out") + string(filepath.Separator) },
			wantPath: func(dir string) string { return filepath.Join(dir, "out", "355.txt") },
		},
		{
			name:     "directory with compression",
			target:   func(dir string) string { return dir },
			opts:     []movelog.Option{movelog.WithZstd()},
			wantPath: func(dir string) string { return filepath.Join(dir, "355.txt.zst") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			dir := t.TempDir()
			w, err := movelog.NewFileWriter(tt.target(dir), tt.opts...)
			require.NoError(t, err)

			// When
			path, err := w.Write(context.Background(), 355, moves)

			// Then
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath(dir), path)

			lines, err := movelog.Read(path)
			require.NoError(t, err)
			assert.Equal(t, moves, lines)
		})
	}
}

func TestFileWriter_Write_PlainContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moves.txt")
	w, err := movelog.NewFileWriter(path)
	require.NoError(t, err)

	_, err = w.Write(context.Background(), 1, moves)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0 0 0\n0 1 0\n4 4 4\n", string(raw))
}

func TestFileWriter_Write_ZstdIsCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moves.zst")
	w, err := movelog.NewFileWriter(path)
	require.NoError(t, err)

	_, err = w.Write(context.Background(), 1, moves)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte{0x28, 0xb5, 0x2f, 0xfd}), "zstd magic number")
}

func TestFileWriter_Write_CanceledContext(t *testing.T) {
	w, err := movelog.NewFileWriter(filepath.Join(t.TempDir(), "moves.txt"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = w.Write(ctx, 1, moves)

	require.ErrorIs(t, err, context.Canceled)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := movelog.Read(filepath.Join(t.TempDir(), "absent.txt"))

	require.ErrorIs(t, err, os.ErrNotExist)
}
