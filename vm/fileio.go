package vm

import (
	"bytes"
	"os"
	"strings"

	"github.com/funge98/gofunge/loader"
	"github.com/funge98/gofunge/space"
)

const FILE_FLAG_LINEAR = 1 // Bit 0 of the 'i'/'o' flags cell.

// opFileInput implements 'i': pops a filename, a flags cell and a
// position, reads the file into the space at the position (subject
// to the storage offset), and pushes the size loaded followed by the
// position. With the linear flag set the file lands as one long row,
// end-of-line bytes included. Reflects on any file error.
func opFileInput(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	name := s.PopString()
	flags := s.Pop()
	va := s.PopVector()

	data, err := os.ReadFile(name)
	if err != nil {
		ip.Reverse()
		return ip
	}

	at := va.Add(ip.Offset)
	var size space.Vector
	if flags&FILE_FLAG_LINEAR != 0 {
		size = loader.LoadBinaryAt(data, sp, at)
	} else {
		size, _ = loader.LoadAt(bytes.NewReader(data), sp, at)
	}

	s.PushVector(size)
	s.PushVector(va)
	return ip
}

// opFileOutput implements 'o': pops a filename, a flags cell, a
// position and a size, and writes that rectangle of the space
// (subject to the storage offset) to the file. With the linear flag
// set, trailing spaces on each row and trailing line endings are
// stripped. Reflects on any file error.
func opFileOutput(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	name := s.PopString()
	flags := s.Pop()
	va := s.PopVector()
	vb := s.PopVector()

	at := va.Add(ip.Offset)
	var text strings.Builder
	for y := int64(0); y < vb.Y; y++ {
		line := make([]rune, 0, vb.X)
		for x := int64(0); x < vb.X; x++ {
			line = append(line, rune(sp.Get(at.Add(space.Vector{X: x, Y: y}))))
		}
		row := string(line)
		if flags&FILE_FLAG_LINEAR != 0 {
			row = strings.TrimRight(row, " ")
		}
		text.WriteString(row)
		text.WriteByte('\n')
	}

	out := text.String()
	if flags&FILE_FLAG_LINEAR != 0 {
		out = strings.TrimRight(out, "\n")
		if out != "" {
			out += "\n"
		}
	}

	if err := os.WriteFile(name, []byte(out), 0o644); err != nil {
		ip.Reverse()
	}
	return ip
}
