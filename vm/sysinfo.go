package vm

import (
	"os"
	"time"

	"github.com/funge98/gofunge/space"
)

const (
	HANDPRINT = 0x474F4658 // 'GOFX'
	VERSION   = 100        // 1.0.0

	// Operating paradigm reported for '=': exit-code interpretation
	// (the command runs in an isolated Starlark thread).
	PARADIGM = 1

	// Capability flags: 't', 'i', 'o' and '=' are all implemented,
	// and input is buffered.
	FLAGS = 0x01 | 0x02 | 0x04 | 0x08
)

// sysinfo implements 'y': it pushes the machine's self-description
// onto the active stack, topmost field first in the standard order.
// A positive pre-popped count n instead leaves only the n-th cell of
// the report (counting from the top), picking beneath the report
// when n exceeds it.
func sysinfo(cfg Config) Op {
	return func(ip *IP, sp *space.Space) *IP {
		s := ip.Stacks.Active()
		n := int(s.Pop())

		// Stack sizes as they stand before the report lands.
		sizes := make([]int, 0, ip.Stacks.Depth())
		for _, stack := range ip.Stacks.Stacks {
			sizes = append(sizes, stack.Depth())
		}
		base := s.Depth()

		now := time.Now()

		// Pushed bottom-up; the field list below reads bottom to
		// top of the finished report.

		// Environment: null-terminated NAME=VALUE strings above a
		// terminating null.
		s.Push(0)
		for _, env := range os.Environ() {
			s.PushString(env)
		}

		// Arguments: null-terminated strings above a double null,
		// first argument topmost.
		s.Push(0)
		s.Push(0)
		for m := len(cfg.Args) - 1; m >= 0; m-- {
			s.PushString(cfg.Args[m])
		}

		// Per-stack cell counts, top-of-stack-stack topmost.
		for _, size := range sizes {
			s.Push(space.Cell(size))
		}
		s.Push(space.Cell(len(sizes)))

		s.Push(space.Cell(now.Hour()*256*256 + now.Minute()*256 + now.Second()))
		s.Push(space.Cell((now.Year()-1900)*256*256 + int(now.Month())*256 + now.Day()))

		s.PushVector(sp.Max().Sub(sp.Min())) // Greatest point, relative to least.
		s.PushVector(sp.Min())               // Least point.

		s.PushVector(ip.Offset)
		s.PushVector(ip.Delta)
		s.PushVector(ip.Location)

		s.Push(0) // Team number.
		s.Push(space.Cell(ip.Id))
		s.Push(2) // Scalars per vector.
		s.Push(space.Cell(os.PathSeparator))
		s.Push(PARADIGM)
		s.Push(VERSION)
		s.Push(HANDPRINT)
		s.Push(8) // Bytes per cell.
		s.Push(FLAGS)

		if n > 0 {
			var value space.Cell
			if index := s.Depth() - n; index >= 0 {
				value = s.Data[index]
			}
			s.Data = s.Data[:base]
			s.Push(value)
		}

		return ip
	}
}
