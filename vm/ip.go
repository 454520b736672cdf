package vm

import (
	"github.com/funge98/gofunge/space"
)

// DELTA_* are the cardinal direction deltas.
var (
	DELTA_EAST  = space.Vector{X: 1, Y: 0}
	DELTA_WEST  = space.Vector{X: -1, Y: 0}
	DELTA_NORTH = space.Vector{X: 0, Y: -1}
	DELTA_SOUTH = space.Vector{X: 0, Y: 1}
)

// IP is one instruction pointer: an independent cursor over the
// shared program space with its own direction, storage offset,
// stacks, and mode flags.
type IP struct {
	Id         int          // Stable identity, assigned by the scheduler.
	Location   space.Vector // Cell currently being executed.
	Delta      space.Vector // Direction of travel.
	Offset     space.Vector // Storage offset applied by 'p', 'g', 'i', 'o'.
	Stacks     *StackStack  // Exclusively owned stack-stack.
	StringMode bool         // When set, cells are pushed instead of dispatched.

	// Effects staged by an instruction and collected by the
	// scheduler at the end of the step.
	children []*IP      // Appended by Split; run from the next tick.
	quit     bool       // Set by the quit instruction; stops the machine.
	exitCode space.Cell // Exit code popped by the quit instruction.
}

// NewIP creates the initial IP: at the program-space origin, heading
// east, with a single empty stack.
func NewIP() (ip *IP) {
	return &IP{
		Delta:  DELTA_EAST,
		Stacks: NewStackStack(),
	}
}

// Clone returns a deep copy of the IP with no identity and no staged
// effects.
func (ip *IP) Clone() (c *IP) {
	return &IP{
		Location:   ip.Location,
		Delta:      ip.Delta,
		Offset:     ip.Offset,
		Stacks:     ip.Stacks.Clone(),
		StringMode: ip.StringMode,
	}
}

// Reverse negates the delta. Works for any delta, cardinal or not.
func (ip *IP) Reverse() {
	ip.Delta = ip.Delta.Neg()
}

// Step advances the IP one position along its delta, wrapping onto
// the space's bounding rectangle.
func (ip *IP) Step(sp *space.Space) {
	ip.Location = sp.Step(ip.Location, ip.Delta)
}

// Split stages a child IP: a deep copy with reflected delta, already
// advanced off the spawning cell. The scheduler collects staged
// children at the end of the step and runs them from the next tick.
// An instruction iterating over Split stages one child per call.
func (ip *IP) Split(sp *space.Space) {
	child := ip.Clone()
	child.Reverse()
	child.Step(sp)
	ip.children = append(ip.children, child)
}

// Quit stages termination of the whole machine with an exit code.
func (ip *IP) Quit(code space.Cell) {
	ip.quit = true
	ip.exitCode = code
}
