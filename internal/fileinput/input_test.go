package fileinput

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_ReadLine(t *testing.T) {
	in := Input{Queue: []io.Reader{
		NamedReader("a.fs", strings.NewReader("1 2 +\n.\n")),
		NamedReader("b.fs", strings.NewReader(": sq dup * ;\n\n5 sq .")),
	}}

	var got []string
	for {
		line, err := in.ReadLine()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, line.String())
	}
	assert.Equal(t, []string{
		`a.fs:1 "1 2 +"`,
		`a.fs:2 "."`,
		`b.fs:1 ": sq dup * ;"`,
		`b.fs:2 ""`,
		`b.fs:3 "5 sq ."`,
	}, got)

	_, err := in.ReadLine()
	assert.Equal(t, io.EOF, err, "expected EOF to persist")
}

func TestInput_unnamed(t *testing.T) {
	in := Input{Queue: []io.Reader{strings.NewReader("x")}}
	line, err := in.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "x", line.Buffer.String())
	assert.Equal(t, "<unnamed *strings.Reader>:1", line.Location.String())
}
