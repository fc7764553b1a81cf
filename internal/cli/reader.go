package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when a read is abandoned because its context ended.
var ErrInputCancelled = errors.New("input canceled")

// maxLineBytes bounds a single chat message read from the terminal.
const maxLineBytes = 64 * 1024

type scannedLine struct {
	err  error
	text string
}

// LineReader reads trimmed lines from a terminal without ignoring ctx.
// One goroutine scans the input for the reader's lifetime, so a line that
// arrives after a canceled read is kept for the next ReadLine.
type LineReader struct {
	src   io.Reader
	lines chan scannedLine
	start sync.Once
}

// NewLineReader creates a reader over src. Scanning starts on the first read.
func NewLineReader(src io.Reader) *LineReader {
	return &LineReader{src: src, lines: make(chan scannedLine)}
}

func (r *LineReader) scan() {
	defer close(r.lines)

	scanner := bufio.NewScanner(r.src)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for scanner.Scan() {
		r.lines <- scannedLine{text: strings.TrimSpace(scanner.Text())}
	}
	if err := scanner.Err(); err != nil {
		r.lines <- scannedLine{err: err}
	}
}

// ReadLine returns the next line with surrounding whitespace removed. It
// returns io.EOF once input is exhausted and ErrInputCancelled when ctx ends
// first.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.start.Do(func() { go r.scan() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case line, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return line.text, line.err
	}
}
