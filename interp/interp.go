// Package interp composes the Funge-98 machine: program space,
// loader, instruction table, scheduler, and console.
package interp

import (
	"io"
	"log"

	"github.com/funge98/gofunge/loader"
	"github.com/funge98/gofunge/space"
	"github.com/funge98/gofunge/term"
	"github.com/funge98/gofunge/vm"
)

// Interpreter is a complete Funge-98 machine.
type Interpreter struct {
	Verbose bool // Set to enable verbose logging.

	Config  Config        // Policy choices for the run.
	Space   *space.Space  // Shared program space.
	Console term.Console  // Character I/O collaborator.
	Sched   *vm.Scheduler // Built by Reset.
}

// New creates an interpreter with an empty program space.
func New(cfg Config) (in *Interpreter) {
	in = &Interpreter{
		Config: cfg,
		Space:  space.NewSpace(),
	}

	return
}

// Load populates the program space from source text at the origin.
func (in *Interpreter) Load(r io.Reader) (err error) {
	_, err = loader.Load(r, in.Space)

	return
}

// LoadFile populates the program space from a source file.
func (in *Interpreter) LoadFile(path string) (err error) {
	_, err = loader.LoadFile(path, in.Space)

	return
}

// Reset builds a fresh instruction table and scheduler over the
// loaded space. Any running state is discarded; the space is kept.
func (in *Interpreter) Reset() {
	if in.Verbose {
		log.Printf("interp: reset")
	}

	table := vm.NewTable(in.Config.machine(), &in.Console)
	in.Sched = vm.NewScheduler(in.Space, table, in.Config.machine())
	in.Sched.Verbose = in.Verbose || in.Config.Trace
}

// Tick advances the machine by one tick.
func (in *Interpreter) Tick() (done bool) {
	if in.Sched == nil {
		in.Reset()
	}

	return in.Sched.Tick()
}

// Run ticks the machine until every IP is gone or an IP quits, and
// returns the exit code. A configured tick limit aborts the run with
// ErrTickLimit.
func (in *Interpreter) Run() (code int, err error) {
	if in.Sched == nil {
		in.Reset()
	}

	for !in.Sched.Tick() {
		if in.Config.MaxTicks > 0 && in.Sched.Ticks >= in.Config.MaxTicks {
			err = ErrTickLimit(in.Config.MaxTicks)
			return
		}
	}

	code = in.Sched.ExitCode
	if in.Verbose {
		log.Printf("interp: done after %d ticks, code %d", in.Sched.Ticks, code)
	}

	return
}
