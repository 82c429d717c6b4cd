package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

var discardWriteFlusher WriteFlusher = nopFlusher{io.Discard}

// NewWriteFlusher creates a new flushable writer: if the given writer is a
// buffer, a wrapping with a noop Flush is returned; otherwise, unless the
// original writer WriteFlusher, a new bufio.Writer is returned.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	// discard writer does not need flushing
	if w == io.Discard {
		return discardWriteFlusher
	}

	if wf, is := w.(WriteFlusher); is {
		return wf
	}

	// in memory buffers, as implemented by types like bytes.Buffer and
	// strings.Builder, do not need to be flushed
	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// Column tracks whether the last byte written through it ended a line, so
// that status messages can be placed after program output.
type Column struct {
	WriteFlusher
	dirty bool
}

// Write writes p, noting whether it left a partial line.
func (col *Column) Write(p []byte) (n int, err error) {
	n, err = col.WriteFlusher.Write(p)
	if n > 0 {
		col.dirty = p[n-1] != '\n'
	}
	return n, err
}

// WriteString is Write for strings.
func (col *Column) WriteString(s string) (n int, err error) {
	return col.Write([]byte(s))
}

// AtLineStart returns true if nothing, or a complete line, was last written.
func (col *Column) AtLineStart() bool { return !col.dirty }

// Reset forgets any partial line state.
func (col *Column) Reset() { col.dirty = false }

// Tee combines any number of WriteFlusher-s into one that writes to and
// flushes all of them. Every writer sees every write; the first error is
// returned.
func Tee(wfs ...WriteFlusher) WriteFlusher {
	var all tee
	for _, wf := range wfs {
		if many, ok := wf.(tee); ok {
			all = append(all, many...)
		} else if wf != nil {
			all = append(all, wf)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	default:
		return all
	}
}

type tee []WriteFlusher

func (t tee) Write(p []byte) (n int, err error) {
	for _, wf := range t {
		m, werr := wf.Write(p)
		if werr == nil && m != len(p) {
			werr = io.ErrShortWrite
		}
		if err == nil && werr != nil {
			n, err = m, werr
		}
	}
	if err != nil {
		return n, err
	}
	return len(p), nil
}

func (t tee) Flush() (err error) {
	for _, wf := range t {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}
