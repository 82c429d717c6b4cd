package fileinput

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jcorbin/goforth/internal/runeio"
)

// Location names a line in an Input file.
type Location struct {
	Name string
	Line int
}

// Line combines a Location along with a bytes.Buffer for handling it.
type Line struct {
	Location
	bytes.Buffer
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
func (il Line) String() string      { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// Input implements sequential line reading through a Queue of one or more
// input streams. The last read line is retained to facilitate user feedback.
type Input struct {
	rr    io.RuneReader
	Queue []io.Reader
	Last  Line
	Scan  Line
}

// ReadLine reads the next line from the current input stream, advancing
// through the Queue as streams are exhausted. The returned Line is only valid
// until the next call. A final line without a trailing line feed is still
// returned; io.EOF is only returned once every queued stream is exhausted.
func (in *Input) ReadLine() (*Line, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return nil, io.EOF
		}
		r, _, err := in.rr.ReadRune()
		if err == nil {
			if r == '\n' {
				in.nextLine()
				return &in.Last, nil
			}
			in.Scan.WriteRune(r)
			continue
		}
		if !errors.Is(err, io.EOF) {
			return nil, err
		}
		partial := in.Scan.Len() > 0
		if partial {
			in.nextLine()
		}
		in.closeIn()
		if partial {
			return &in.Last, nil
		}
	}
}

func (in *Input) nextLine() {
	in.Last.Reset()
	in.Last.Name = in.Scan.Name
	in.Last.Line = in.Scan.Line
	in.Last.Write(in.Scan.Bytes())
	in.Scan.Reset()
	in.Scan.Line++
}

func (in *Input) closeIn() {
	if in.rr != nil {
		if cl, ok := in.rr.(io.Closer); ok {
			cl.Close()
		}
		in.rr = nil
	}
}

func (in *Input) nextIn() bool {
	in.closeIn()
	if len(in.Queue) > 0 {
		r := in.Queue[0]
		in.Queue = in.Queue[1:]
		in.rr = runeio.NewReader(r)
		in.Scan.Reset()
		in.Scan.Name = nameOf(r)
		in.Scan.Line = 1
	}
	return in.rr != nil
}

// Close closes any remaining queued streams that implement io.Closer.
func (in *Input) Close() (err error) {
	in.closeIn()
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}

// NamedReader attaches a Name() to an io.Reader, so that Locations within it
// are reported usefully.
func NamedReader(name string, r io.Reader) io.Reader {
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }
