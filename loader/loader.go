// Package loader populates a program space from Funge source text:
// one cell per source character at its (x, y) grid position. Line
// length determines per-row bounding extent, so the loader always
// hands the core a well-formed bounded space.
package loader

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/funge98/gofunge/space"
)

// Load populates a space from source text at the origin.
func Load(r io.Reader, sp *space.Space) (size space.Vector, err error) {
	return LoadAt(r, sp, space.Vector{})
}

// LoadString populates a space from in-memory source at the origin.
func LoadString(src string, sp *space.Space) (size space.Vector) {
	size, _ = LoadAt(strings.NewReader(src), sp, space.Vector{})

	return
}

// LoadFile populates a space from a source file at the origin.
func LoadFile(path string, sp *space.Space) (size space.Vector, err error) {
	in, err := os.Open(path)
	if err != nil {
		return
	}
	defer in.Close()

	return Load(in, sp)
}

// LoadAt populates a space from source text with its top-left corner
// at 'at', and returns the width and height consumed. LF, CR and
// CRLF all end a line; form feeds are ignored (they separate layers
// of a third dimension this machine does not have). Spaces bind the
// bounding rectangle without storing a cell.
func LoadAt(r io.Reader, sp *space.Space, at space.Vector) (size space.Vector, err error) {
	in := bufio.NewReader(r)

	var x, y int64
	for {
		var ch rune
		ch, _, err = in.ReadRune()
		if err == io.EOF {
			err = nil
			break
		}
		if err != nil {
			return
		}

		switch ch {
		case '\r':
			var next rune
			next, _, err = in.ReadRune()
			if err == nil && next != '\n' {
				in.UnreadRune()
			}
			err = nil
			x = 0
			y++
		case '\n':
			x = 0
			y++
		case '\f':
			// ignored
		default:
			sp.Set(at.Add(space.Vector{X: x, Y: y}), space.Cell(ch))
			x++
			if x > size.X {
				size.X = x
			}
			size.Y = y + 1
		}
	}

	return
}

// LoadBinaryAt stores every byte of data, end-of-line bytes included,
// along a single row starting at 'at'.
func LoadBinaryAt(data []byte, sp *space.Space, at space.Vector) (size space.Vector) {
	for n, b := range data {
		sp.Set(at.Add(space.Vector{X: int64(n)}), space.Cell(b))
	}
	if len(data) > 0 {
		size = space.Vector{X: int64(len(data)), Y: 1}
	}

	return
}
