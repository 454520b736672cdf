package vm

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/funge98/gofunge/space"
)

// opExecute implements '=' under this interpreter's documented
// operating paradigm: the popped string runs as a Starlark program in
// a fresh isolated thread with no predeclared environment, and the
// exit status is pushed, 0 for success and 1 for failure.
func opExecute(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	prog := s.PopString()

	thread := starlark.Thread{Name: "execute"}
	opts := syntax.FileOptions{}
	_, err := starlark.ExecFileOptions(&opts, &thread, "execute", prog, starlark.StringDict{})
	if err != nil {
		s.Push(1)
	} else {
		s.Push(0)
	}

	return ip
}
