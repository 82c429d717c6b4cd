package logio

import (
	"bytes"
	"sync"
)

// Writer adapts a printf-style logging function into an io.Writer, logging
// each complete line, with any Prefix, as it is written. A trailing carriage
// return is dropped from each line.
type Writer struct {
	Logf   func(string, ...interface{})
	Prefix string

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write buffers p and logs any lines it completes; it never fails.
func (lw *Writer) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	for {
		i := bytes.IndexByte(lw.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		lw.logLine(lw.buf.Next(i + 1)[:i])
	}
	return len(p), nil
}

// Close logs any final partial line.
func (lw *Writer) Close() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if lw.buf.Len() > 0 {
		lw.logLine(lw.buf.Next(lw.buf.Len()))
	}
	return nil
}

func (lw *Writer) logLine(line []byte) {
	line = bytes.TrimSuffix(line, []byte{'\r'})
	lw.Logf("%s%s", lw.Prefix, line)
}
