// Package buffer loads a file into an in-memory slice of lines.
package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/glance/internal/constants"
)

// Limits caps what Load keeps. Zero means unlimited.
type Limits struct {
	MaxLines      int
	MaxLineLength int
}

// Buffer is the loaded, read-only content of one file.
type Buffer struct {
	Lines [][]byte
	Name  string // Display name, constants.NoName when not backed by a file
	Path  string // Path the content came from; empty for the placeholder

	// Truncation counters, for logging.
	DroppedLines   int
	TruncatedLines int
}

// Placeholder returns the buffer shown when there is nothing to load.
func Placeholder() *Buffer {
	return &Buffer{
		Lines: [][]byte{[]byte(constants.PlaceholderLine)},
		Name:  constants.NoName,
	}
}

// NumRows returns the number of lines. It is never zero.
func (b *Buffer) NumRows() int { return len(b.Lines) }

// Load reads path into a Buffer. An empty path, or a file that cannot be
// opened, yields the placeholder buffer. Content past the limits is
// dropped silently. The returned buffer always has at least one line.
func Load(path string, lim Limits) *Buffer {
	if path == "" {
		return Placeholder()
	}

	f, err := os.Open(path)
	if err != nil {
		log.Debug().Err(err).Str("file", path).Msg("open failed, using placeholder")
		return Placeholder()
	}
	defer f.Close()

	b, err := Read(f, lim)
	if err != nil {
		log.Debug().Err(err).Str("file", path).Msg("read failed, using placeholder")
		return Placeholder()
	}
	b.Name = path
	b.Path = path

	log.Debug().
		Str("file", path).
		Int("rows", b.NumRows()).
		Int("dropped_lines", b.DroppedLines).
		Int("truncated_lines", b.TruncatedLines).
		Msg("file loaded")
	return b
}

// Read splits r into lines at "\n". Each line ends at its first "\r" or
// "\n"; anything after a bare "\r" on the same line is not shown.
// Empty input yields the placeholder line.
func Read(r io.Reader, lim Limits) (*Buffer, error) {
	b := &Buffer{}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			b.add(line, lim)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read lines: %w", err)
		}
	}

	if len(b.Lines) == 0 {
		b.Lines = [][]byte{[]byte(constants.PlaceholderLine)}
	}
	return b, nil
}

func (b *Buffer) add(line []byte, lim Limits) {
	if lim.MaxLines > 0 && len(b.Lines) >= lim.MaxLines {
		b.DroppedLines++
		return
	}
	if i := bytes.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	if lim.MaxLineLength > 0 && len(line) > lim.MaxLineLength {
		line = line[:lim.MaxLineLength]
		b.TruncatedLines++
	}
	b.Lines = append(b.Lines, line)
}
