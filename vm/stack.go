package vm

import (
	"slices"

	"github.com/funge98/gofunge/space"
)

// Stack is a single LIFO of cells. Popping or peeking an empty stack
// yields 0; no stack operation can fail.
type Stack struct {
	Data []space.Cell
}

func (s *Stack) Push(value space.Cell) {
	s.Data = append(s.Data, value)
}

func (s *Stack) Pop() (value space.Cell) {
	value = s.Peek()
	if len(s.Data) > 0 {
		s.Data = s.Data[:len(s.Data)-1]
	}

	return
}

func (s *Stack) Peek() (value space.Cell) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1]
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Depth() int {
	return len(s.Data)
}

// Dup pops the top cell and pushes it twice.
func (s *Stack) Dup() {
	value := s.Pop()
	s.Push(value)
	s.Push(value)
}

// Swap exchanges the top two cells.
func (s *Stack) Swap() {
	a := s.Pop()
	b := s.Pop()
	s.Push(a)
	s.Push(b)
}

// Clear discards the entire stack.
func (s *Stack) Clear() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}

// PushVector pushes a vector as two cells, Y topmost.
func (s *Stack) PushVector(v space.Vector) {
	s.Push(space.Cell(v.X))
	s.Push(space.Cell(v.Y))
}

// PopVector pops two cells into a vector, Y first.
func (s *Stack) PopVector() (v space.Vector) {
	v.Y = int64(s.Pop())
	v.X = int64(s.Pop())

	return
}

// PushString pushes a 0"gnirts" string: a terminating 0 followed by
// the characters in reverse, leaving the first character topmost.
func (s *Stack) PushString(text string) {
	s.Push(0)
	runes := []rune(text)
	for n := len(runes) - 1; n >= 0; n-- {
		s.Push(space.Cell(runes[n]))
	}
}

// PopString pops cells up to and including a terminating 0.
func (s *Stack) PopString() (text string) {
	var runes []rune
	for !s.Empty() {
		value := s.Pop()
		if value == 0 {
			break
		}
		runes = append(runes, rune(value))
	}

	return string(runes)
}

// Clone returns an independent copy of the stack.
func (s *Stack) Clone() (c *Stack) {
	return &Stack{Data: slices.Clone(s.Data)}
}

// StackStack is an IP's ordered collection of stacks. The last entry
// is the active stack (TOSS) that ordinary instructions operate on;
// there is always at least one stack.
type StackStack struct {
	Stacks []*Stack
}

// NewStackStack creates a stack-stack holding a single empty stack.
func NewStackStack() (ss *StackStack) {
	return &StackStack{Stacks: []*Stack{{}}}
}

// Active returns the top-of-stack-stack.
func (ss *StackStack) Active() *Stack {
	return ss.Stacks[len(ss.Stacks)-1]
}

// Second returns the stack beneath the active one, or nil.
func (ss *StackStack) Second() (s *Stack) {
	if len(ss.Stacks) < 2 {
		return
	}

	return ss.Stacks[len(ss.Stacks)-2]
}

// Depth returns the number of stacks.
func (ss *StackStack) Depth() int {
	return len(ss.Stacks)
}

// PushStack makes a fresh empty stack the active one.
func (ss *StackStack) PushStack() {
	ss.Stacks = append(ss.Stacks, &Stack{})
}

// PopStack discards the active stack. The bottom stack is never
// removed; ok reports whether a stack was dropped.
func (ss *StackStack) PopStack() (ok bool) {
	if len(ss.Stacks) < 2 {
		return
	}
	ss.Stacks = ss.Stacks[:len(ss.Stacks)-1]

	return true
}

// Transfer moves count cells from one stack to another one at a time,
// reversing their order, with the usual pop-empty-yields-zero rule.
func (ss *StackStack) Transfer(count int, from *Stack, to *Stack) {
	for range count {
		to.Push(from.Pop())
	}
}

// MoveBlock moves the top count cells from one stack to another as a
// block, preserving order. A short source fills the bottom of the
// block with zeroes.
func (ss *StackStack) MoveBlock(count int, from *Stack, to *Stack) {
	block := make([]space.Cell, count)
	for n := range count {
		block[n] = from.Pop()
	}
	for n := count - 1; n >= 0; n-- {
		to.Push(block[n])
	}
}

// Clone returns a deep copy of every stack.
func (ss *StackStack) Clone() (c *StackStack) {
	c = &StackStack{Stacks: make([]*Stack, 0, len(ss.Stacks))}
	for _, s := range ss.Stacks {
		c.Stacks = append(c.Stacks, s.Clone())
	}

	return
}
