package vm

import (
	"math/rand"

	"github.com/funge98/gofunge/space"
	"github.com/funge98/gofunge/term"
)

// Op is a single instruction's state transition: it mutates the IP
// and the shared space and returns the successor IP, or nil when the
// IP terminates. Ops are total functions; they never fail.
type Op func(ip *IP, sp *space.Space) *IP

// Table maps instruction characters to operations. A table is built
// once, handed to a scheduler, and treated as read-only while the
// machine runs. Extension instruction sets register through Register
// before the machine starts.
type Table struct {
	Unknown UnknownPolicy // Applied when a character has no entry.

	ops map[space.Cell]Op
}

// Register binds an instruction character to an operation.
func (tb *Table) Register(c space.Cell, op Op) {
	tb.ops[c] = op
}

// Lookup returns the operation for an instruction character.
func (tb *Table) Lookup(c space.Cell) (op Op, ok bool) {
	op, ok = tb.ops[c]

	return
}

// Dispatch executes one instruction character against an IP,
// applying the unknown-instruction policy when the table has no
// entry for it.
func (tb *Table) Dispatch(c space.Cell, ip *IP, sp *space.Space) *IP {
	if op, ok := tb.ops[c]; ok {
		return op(ip, sp)
	}

	switch tb.Unknown {
	case UNKNOWN_NOOP:
		return ip
	case UNKNOWN_KILL:
		return nil
	default:
		ip.Reverse()
		return ip
	}
}

// NewTable builds the standard Funge-98 instruction set, bound to an
// I/O console and the configured policies.
func NewTable(cfg Config, con *term.Console) (tb *Table) {
	tb = &Table{
		Unknown: cfg.Unknown,
		ops:     map[space.Cell]Op{},
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	tb.Register(' ', opNoop)
	tb.Register('!', opNot)
	tb.Register('"', opStringMode)
	tb.Register('#', opTrampoline)
	tb.Register('$', opDiscard)
	tb.Register('%', opModulo)
	tb.Register('&', inputNumber(con))
	tb.Register('\'', opFetch)
	tb.Register('(', opFingerprint)
	tb.Register(')', opFingerprint)
	tb.Register('*', opMultiply)
	tb.Register('+', opAdd)
	tb.Register(',', outputChar(con))
	tb.Register('-', opSubtract)
	tb.Register('.', outputNumber(con))
	tb.Register('/', opDivide)

	// Each digit closes over its own independently-bound literal.
	for n := space.Cell(0); n <= 9; n++ {
		tb.Register('0'+n, pushLiteral(n))
	}
	for n := space.Cell(10); n <= 15; n++ {
		tb.Register('a'+n-10, pushLiteral(n))
	}

	tb.Register(':', opDup)
	tb.Register(';', opJumpOver)
	tb.Register('<', setDelta(DELTA_WEST))
	tb.Register('=', opExecute)
	tb.Register('>', setDelta(DELTA_EAST))
	tb.Register('?', randomDelta(rng))
	tb.Register('@', opStop)
	tb.Register('[', opTurnLeft)
	tb.Register('\\', opSwap)
	tb.Register(']', opTurnRight)
	tb.Register('^', setDelta(DELTA_NORTH))
	tb.Register('_', opIfEastWest)
	tb.Register('`', opGreater)
	tb.Register('g', opGet)
	tb.Register('i', opFileInput)
	tb.Register('j', opJump)
	tb.Register('k', iterate(tb))
	tb.Register('n', opClear)
	tb.Register('o', opFileOutput)
	tb.Register('p', opPut)
	tb.Register('q', opQuit)
	tb.Register('r', opReverse)
	tb.Register('s', opStore)
	tb.Register('t', opSplit)
	tb.Register('u', opStackUnder)
	tb.Register('v', setDelta(DELTA_SOUTH))
	tb.Register('w', opCompare)
	tb.Register('x', opSetDelta)
	tb.Register('y', sysinfo(cfg))
	tb.Register('z', opNoop)
	tb.Register('{', opBegin)
	tb.Register('|', opIfNorthSouth)
	tb.Register('}', opEnd)
	tb.Register('~', inputChar(con))

	return
}

// pushLiteral returns an operation pushing a fixed literal value.
func pushLiteral(value space.Cell) Op {
	return func(ip *IP, sp *space.Space) *IP {
		ip.Stacks.Active().Push(value)
		return ip
	}
}

// setDelta returns an operation setting the delta unconditionally.
func setDelta(delta space.Vector) Op {
	return func(ip *IP, sp *space.Space) *IP {
		ip.Delta = delta
		return ip
	}
}

func randomDelta(rng *rand.Rand) Op {
	cardinal := []space.Vector{DELTA_EAST, DELTA_WEST, DELTA_NORTH, DELTA_SOUTH}
	return func(ip *IP, sp *space.Space) *IP {
		ip.Delta = cardinal[rng.Intn(len(cardinal))]
		return ip
	}
}

func opNoop(ip *IP, sp *space.Space) *IP {
	return ip
}

func opStop(ip *IP, sp *space.Space) *IP {
	return nil
}

func opQuit(ip *IP, sp *space.Space) *IP {
	ip.Quit(ip.Stacks.Active().Pop())
	return nil
}

func opSplit(ip *IP, sp *space.Space) *IP {
	ip.Split(sp)
	return ip
}

func opReverse(ip *IP, sp *space.Space) *IP {
	ip.Reverse()
	return ip
}

// opTrampoline skips one cell without executing it.
func opTrampoline(ip *IP, sp *space.Space) *IP {
	ip.Step(sp)
	return ip
}

// opStringMode opens string mode; the scheduler closes it.
func opStringMode(ip *IP, sp *space.Space) *IP {
	ip.StringMode = true
	return ip
}

// opFetch advances one cell and pushes the character found there, a
// one-shot literal distinct from full string mode.
func opFetch(ip *IP, sp *space.Space) *IP {
	ip.Step(sp)
	ip.Stacks.Active().Push(sp.Get(ip.Location))
	return ip
}

// opStore advances one cell and writes the popped value there.
func opStore(ip *IP, sp *space.Space) *IP {
	ip.Step(sp)
	sp.Set(ip.Location, ip.Stacks.Active().Pop())
	return ip
}

func opAdd(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	a := s.Pop()
	b := s.Pop()
	s.Push(b + a)
	return ip
}

func opSubtract(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	a := s.Pop()
	b := s.Pop()
	s.Push(b - a)
	return ip
}

func opMultiply(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	a := s.Pop()
	b := s.Pop()
	s.Push(b * a)
	return ip
}

// opDivide is floor division; division by zero pushes 0.
func opDivide(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	a := s.Pop()
	b := s.Pop()
	s.Push(floorDiv(b, a))
	return ip
}

// opModulo is floor modulo, sign following the divisor; modulo by
// zero pushes 0.
func opModulo(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	a := s.Pop()
	b := s.Pop()
	s.Push(floorMod(b, a))
	return ip
}

func opNot(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	if s.Pop() == 0 {
		s.Push(1)
	} else {
		s.Push(0)
	}
	return ip
}

func opGreater(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	a := s.Pop()
	b := s.Pop()
	if b > a {
		s.Push(1)
	} else {
		s.Push(0)
	}
	return ip
}

func opDiscard(ip *IP, sp *space.Space) *IP {
	ip.Stacks.Active().Pop()
	return ip
}

func opDup(ip *IP, sp *space.Space) *IP {
	ip.Stacks.Active().Dup()
	return ip
}

func opSwap(ip *IP, sp *space.Space) *IP {
	ip.Stacks.Active().Swap()
	return ip
}

func opClear(ip *IP, sp *space.Space) *IP {
	ip.Stacks.Active().Clear()
	return ip
}

func opIfEastWest(ip *IP, sp *space.Space) *IP {
	if ip.Stacks.Active().Pop() == 0 {
		ip.Delta = DELTA_EAST
	} else {
		ip.Delta = DELTA_WEST
	}
	return ip
}

func opIfNorthSouth(ip *IP, sp *space.Space) *IP {
	if ip.Stacks.Active().Pop() == 0 {
		ip.Delta = DELTA_SOUTH
	} else {
		ip.Delta = DELTA_NORTH
	}
	return ip
}

// opTurnLeft rotates the delta 90 degrees anticlockwise (Y grows
// downward).
func opTurnLeft(ip *IP, sp *space.Space) *IP {
	ip.Delta = space.Vector{X: ip.Delta.Y, Y: -ip.Delta.X}
	return ip
}

// opTurnRight rotates the delta 90 degrees clockwise.
func opTurnRight(ip *IP, sp *space.Space) *IP {
	ip.Delta = space.Vector{X: -ip.Delta.Y, Y: ip.Delta.X}
	return ip
}

// opCompare pops b then a, turning left when a < b and right when
// a > b.
func opCompare(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	b := s.Pop()
	a := s.Pop()
	switch {
	case a < b:
		return opTurnLeft(ip, sp)
	case a > b:
		return opTurnRight(ip, sp)
	}
	return ip
}

func opSetDelta(ip *IP, sp *space.Space) *IP {
	ip.Delta = ip.Stacks.Active().PopVector()
	return ip
}

// opJump moves the IP n cells along its delta, in addition to the
// normal movement that follows; n may be negative.
func opJump(ip *IP, sp *space.Space) *IP {
	n := int64(ip.Stacks.Active().Pop())
	jump := space.Vector{X: ip.Delta.X * n, Y: ip.Delta.Y * n}
	ip.Location = sp.Wrap(ip.Location.Add(jump))
	return ip
}

// opJumpOver resumes execution at the matching ';', leaving the IP on
// it so the normal movement lands past the section. The scan is
// bounded by the rectangle's cell count: a ray with no closing ';'
// (drifting along an unwrapped extent-1 axis) returns to the start as
// a no-op instead of scanning forever.
func opJumpOver(ip *IP, sp *space.Space) *IP {
	start := ip.Location
	for budget := sp.Area() + 1; budget > 0; budget-- {
		ip.Step(sp)
		if sp.Get(ip.Location) == ';' || ip.Location == start {
			return ip
		}
	}

	ip.Location = start
	return ip
}

func opGet(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	at := s.PopVector()
	s.Push(sp.Get(at.Add(ip.Offset)))
	return ip
}

func opPut(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	at := s.PopVector()
	sp.Set(at.Add(ip.Offset), s.Pop())
	return ip
}

// opBegin starts a new block: a fresh active stack, the requested
// cells moved onto it, and the storage offset saved beneath.
func opBegin(ip *IP, sp *space.Space) *IP {
	ss := ip.Stacks
	soss := ss.Active()
	n := soss.Pop()

	ss.PushStack()
	switch {
	case n > 0:
		ss.MoveBlock(int(n), soss, ss.Active())
	case n < 0:
		for range int(-n) {
			soss.Push(0)
		}
	}
	soss.PushVector(ip.Offset)
	ip.Offset = ip.Location.Add(ip.Delta)
	return ip
}

// opEnd closes the current block, restoring the saved storage offset
// and moving the requested cells down. Reflects when there is no
// block to close.
func opEnd(ip *IP, sp *space.Space) *IP {
	ss := ip.Stacks
	soss := ss.Second()
	if soss == nil {
		ip.Reverse()
		return ip
	}

	toss := ss.Active()
	n := toss.Pop()
	ip.Offset = soss.PopVector()
	switch {
	case n > 0:
		ss.MoveBlock(int(n), toss, soss)
	case n < 0:
		for range int(-n) {
			soss.Pop()
		}
	}
	ss.PopStack()
	return ip
}

// opStackUnder transfers cells between the top two stacks one at a
// time, reversing their order. Reflects without a second stack.
func opStackUnder(ip *IP, sp *space.Space) *IP {
	ss := ip.Stacks
	soss := ss.Second()
	if soss == nil {
		ip.Reverse()
		return ip
	}

	toss := ss.Active()
	n := toss.Pop()
	switch {
	case n > 0:
		ss.Transfer(int(n), soss, toss)
	case n < 0:
		ss.Transfer(int(-n), toss, soss)
	}
	return ip
}

// opFingerprint pops a fingerprint specification and reflects;
// extension libraries are not provided.
func opFingerprint(ip *IP, sp *space.Space) *IP {
	s := ip.Stacks.Active()
	n := s.Pop()
	for range int(max(n, 0)) {
		s.Pop()
	}
	ip.Reverse()
	return ip
}

func outputChar(con *term.Console) Op {
	return func(ip *IP, sp *space.Space) *IP {
		if err := con.PutChar(rune(ip.Stacks.Active().Pop())); err != nil {
			ip.Reverse()
		}
		return ip
	}
}

func outputNumber(con *term.Console) Op {
	return func(ip *IP, sp *space.Space) *IP {
		if err := con.PutNumber(int64(ip.Stacks.Active().Pop())); err != nil {
			ip.Reverse()
		}
		return ip
	}
}

func inputChar(con *term.Console) Op {
	return func(ip *IP, sp *space.Space) *IP {
		value, err := con.ReadChar()
		if err != nil {
			ip.Reverse()
			return ip
		}
		ip.Stacks.Active().Push(space.Cell(value))
		return ip
	}
}

func inputNumber(con *term.Console) Op {
	return func(ip *IP, sp *space.Space) *IP {
		value, err := con.ReadNumber()
		if err != nil {
			ip.Reverse()
			return ip
		}
		ip.Stacks.Active().Push(space.Cell(value))
		return ip
	}
}

// iterate executes the next instruction along the delta n times, then
// passes over its cell unless the instruction moved the IP itself.
// Zero or negative counts skip the instruction entirely.
func iterate(tb *Table) Op {
	return func(ip *IP, sp *space.Space) *IP {
		n := ip.Stacks.Active().Pop()
		target := seek(sp, ip.Location, ip.Delta)
		if n <= 0 {
			ip.Location = target
			return ip
		}

		c := sp.Get(target)
		before := ip.Location
		for range int(n) {
			next := tb.Dispatch(c, ip, sp)
			if next == nil {
				return nil
			}
			ip = next
		}
		// Unless the instruction moved the IP itself, pass over
		// the iterated cell.
		if ip.Location == before {
			ip.Location = target
		}
		return ip
	}
}

// seek returns the location of the next executable instruction along
// the delta, sliding over spaces and ';' sections. If the ray holds
// nothing else, or leaves the rectangle on an unwrapped extent-1
// axis, the starting location is returned.
func seek(sp *space.Space, at space.Vector, delta space.Vector) space.Vector {
	start := at
	skipping := false
	for budget := sp.Area() + 1; budget > 0; budget-- {
		at = sp.Step(at, delta)
		c := sp.Get(at)
		switch {
		case skipping:
			if c == ';' {
				skipping = false
			}
		case c == ';':
			skipping = true
		case c != ' ':
			return at
		}
		if at == start {
			return at
		}
	}

	return start
}

// floorDiv rounds the quotient toward negative infinity; a zero
// divisor yields 0.
func floorDiv(b, a space.Cell) (q space.Cell) {
	if a == 0 {
		return
	}
	q = b / a
	if b%a != 0 && (b < 0) != (a < 0) {
		q--
	}

	return
}

// floorMod takes the sign of the divisor; a zero divisor yields 0.
func floorMod(b, a space.Cell) (m space.Cell) {
	if a == 0 {
		return
	}
	m = b % a
	if m != 0 && (m < 0) != (a < 0) {
		m += a
	}

	return
}
