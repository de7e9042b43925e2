// Package utils holds small helpers shared by the CLI entrypoint.
package utils

import (
	"bufio"
	"bytes"
	"io"
	"sync"
)

// DeferredWriter buffers writes until Flush. The TUI uses it to hold log
// output while the terminal is in alt-screen mode.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write appends p to the buffer.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

// Flush writes the buffered output to w one line per Write call, so
// line-oriented writers such as zerolog.ConsoleWriter see whole events. The
// buffer is empty afterwards.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	scanner := bufio.NewScanner(&d.buf)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := append(scanner.Bytes(), '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}

	d.buf.Reset()
	return scanner.Err()
}
