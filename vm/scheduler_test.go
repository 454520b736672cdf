package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/funge98/gofunge/loader"
	"github.com/funge98/gofunge/space"
	"github.com/funge98/gofunge/term"
)

// run executes a source program until the machine stops, with a
// bounded tick budget, and returns the output and the scheduler.
func run(t *testing.T, src string, cfg Config, input string) (output string, sc *Scheduler) {
	t.Helper()

	sp := space.NewSpace()
	loader.LoadString(src, sp)

	out := &bytes.Buffer{}
	con := &term.Console{Input: strings.NewReader(input), Output: out}
	sc = NewScheduler(sp, NewTable(cfg, con), cfg)

	for range 10000 {
		if sc.Tick() {
			output = out.String()
			return
		}
	}

	t.Fatalf("program %q did not terminate", src)
	return
}

func TestScheduler_AddPush(t *testing.T) {
	assert := assert.New(t)

	sp := space.NewSpace()
	sc := NewScheduler(sp, NewTable(DefaultConfig(), &term.Console{}), DefaultConfig())
	assert.Equal(1, sc.Alive())
	assert.False(sc.Done())

	var ids []int
	for ip := range sc.IPs() {
		ids = append(ids, ip.Id)
	}
	assert.Equal([]int{0}, ids)
}

func TestScheduler_PushAdd(t *testing.T) {
	assert := assert.New(t)

	// 12+,@ : push 1, push 2, add, emit char code 3, stop.
	output, sc := run(t, "12+,@", DefaultConfig(), "")
	assert.Equal("\x03", output)
	assert.Equal(0, sc.Alive())
	assert.Equal(5, sc.Ticks)
}

func TestScheduler_StopOnly(t *testing.T) {
	assert := assert.New(t)

	output, sc := run(t, "@", DefaultConfig(), "")
	assert.Equal("", output)
	assert.Equal(0, sc.Alive())
	assert.Equal(1, sc.Ticks)
}

func TestScheduler_IfZeroGoesEast(t *testing.T) {
	assert := assert.New(t)

	sp := space.NewSpace()
	loader.LoadString("0_@", sp)
	cfg := DefaultConfig()
	sc := NewScheduler(sp, NewTable(cfg, &term.Console{}), cfg)

	assert.False(sc.Tick()) // 0
	assert.False(sc.Tick()) // _
	for ip := range sc.IPs() {
		assert.Equal(DELTA_EAST, ip.Delta)
		assert.Equal(space.Vector{X: 2, Y: 0}, ip.Location)
	}
	assert.True(sc.Tick()) // @
}

func TestScheduler_Trampoline(t *testing.T) {
	assert := assert.New(t)

	output, _ := run(t, "#@1.@", DefaultConfig(), "")
	assert.Equal("1 ", output)
}

func TestScheduler_FetchCharacter(t *testing.T) {
	assert := assert.New(t)

	output, _ := run(t, "'a,@", DefaultConfig(), "")
	assert.Equal("a", output)
}

func TestScheduler_StoreCharacter(t *testing.T) {
	assert := assert.New(t)

	_, sc := run(t, "7s @", DefaultConfig(), "")
	assert.Equal(space.Cell(7), sc.Space.Get(space.Vector{X: 2, Y: 0}))
}

func TestScheduler_StringMode(t *testing.T) {
	assert := assert.New(t)

	output, _ := run(t, `"ab",,@`, DefaultConfig(), "")
	assert.Equal("ba", output)
}

func TestScheduler_StringModeCollapsesSpaces(t *testing.T) {
	assert := assert.New(t)

	output, _ := run(t, `"a   b",,,@`, DefaultConfig(), "")
	assert.Equal("b a", output)
}

func TestScheduler_Wrap(t *testing.T) {
	assert := assert.New(t)

	// The IP travels west off the left edge and wraps to the right.
	output, _ := run(t, "<@,1", DefaultConfig(), "")
	assert.Equal("\x01", output)
}

func TestScheduler_Grid(t *testing.T) {
	assert := assert.New(t)

	// Fetch the 'A' placed on the second row.
	output, _ := run(t, "01g,@\nA", DefaultConfig(), "")
	assert.Equal("A", output)
}

func TestScheduler_Jump(t *testing.T) {
	assert := assert.New(t)

	output, _ := run(t, "2j123.@", DefaultConfig(), "")
	assert.Equal("3 ", output)
}

func TestScheduler_JumpOver(t *testing.T) {
	assert := assert.New(t)

	output, _ := run(t, "1;23;4.@", DefaultConfig(), "")
	assert.Equal("4 ", output)
}

func TestScheduler_Iterate(t *testing.T) {
	assert := assert.New(t)

	output, _ := run(t, "3k1...@", DefaultConfig(), "")
	assert.Equal("1 1 1 ", output)
}

func TestScheduler_IterateZeroSkips(t *testing.T) {
	assert := assert.New(t)

	output, _ := run(t, "0k1.@", DefaultConfig(), "")
	assert.Equal("0 ", output)
}

func TestScheduler_Quit(t *testing.T) {
	assert := assert.New(t)

	_, sc := run(t, "12q", DefaultConfig(), "")
	assert.Equal(2, sc.ExitCode)
	assert.Equal(0, sc.Alive())
	assert.True(sc.Done())
}

func TestScheduler_Split(t *testing.T) {
	assert := assert.New(t)

	sp := space.NewSpace()
	loader.LoadString("t@@", sp)
	cfg := DefaultConfig()
	sc := NewScheduler(sp, NewTable(cfg, &term.Console{}), cfg)

	// The child spawned mid-tick does not run until the next tick.
	assert.False(sc.Tick())
	assert.Equal(2, sc.Alive())

	var deltas []space.Vector
	for ip := range sc.IPs() {
		deltas = append(deltas, ip.Delta)
	}
	assert.Equal([]space.Vector{DELTA_EAST, DELTA_WEST}, deltas)

	// Parent dies on '@' at (1,0); the child wrapped west onto
	// (2,0) and dies there.
	assert.True(sc.Tick())
	assert.Equal(0, sc.Alive())
	assert.Equal(2, sc.Ticks)
}

func TestScheduler_IterateSplit(t *testing.T) {
	assert := assert.New(t)

	sp := space.NewSpace()
	loader.LoadString("2kt@", sp)
	cfg := DefaultConfig()
	sc := NewScheduler(sp, NewTable(cfg, &term.Console{}), cfg)

	// Tick 1 pushes the count; tick 2 iterates the split twice,
	// spawning two children at once.
	assert.False(sc.Tick())
	assert.False(sc.Tick())
	assert.Equal(3, sc.Alive())
}

func TestScheduler_SplitSharesSpace(t *testing.T) {
	assert := assert.New(t)

	// Both IPs emit; the parent goes east and prints '1', the
	// child reflects west, wraps, and prints '2'.
	output, _ := run(t, "t1,@,2<", DefaultConfig(), "")
	assert.Contains([]string{"\x01\x02", "\x02\x01"}, output)
}

func TestScheduler_UnknownReflects(t *testing.T) {
	assert := assert.New(t)

	// 'G' reflects the IP west onto the wrapped '@'.
	_, sc := run(t, "G@", DefaultConfig(), "")
	assert.Equal(0, sc.Alive())
	assert.Equal(2, sc.Ticks)
}

func TestScheduler_UnknownKills(t *testing.T) {
	assert := assert.New(t)

	cfg := DefaultConfig()
	cfg.Unknown = UNKNOWN_KILL
	_, sc := run(t, "G@", cfg, "")
	assert.Equal(0, sc.Alive())
	assert.Equal(1, sc.Ticks)
}

func TestScheduler_UnknownNoop(t *testing.T) {
	assert := assert.New(t)

	cfg := DefaultConfig()
	cfg.Unknown = UNKNOWN_NOOP
	_, sc := run(t, "G@", cfg, "")
	assert.Equal(0, sc.Alive())
	assert.Equal(2, sc.Ticks)
}

func TestScheduler_SpaceCostsTick(t *testing.T) {
	assert := assert.New(t)

	output, sc := run(t, "1   2+.@", DefaultConfig(), "")
	assert.Equal("3 ", output)
	assert.Equal(8, sc.Ticks)
}

func TestScheduler_SpaceOutsideOfTime(t *testing.T) {
	assert := assert.New(t)

	cfg := DefaultConfig()
	cfg.SpaceCostsTick = false
	output, sc := run(t, "1   2+.@", cfg, "")
	assert.Equal("3 ", output)
	assert.Equal(5, sc.Ticks)
}

func TestScheduler_SectionOutsideOfTime(t *testing.T) {
	assert := assert.New(t)

	cfg := DefaultConfig()
	cfg.SpaceCostsTick = false
	output, sc := run(t, "1;xx;2+.@", cfg, "")
	assert.Equal("3 ", output)
	assert.Equal(5, sc.Ticks)
}

func TestScheduler_JumpOverOneCell(t *testing.T) {
	assert := assert.New(t)

	// A lone ';' drifts the scan off the extent-1 axis, where every
	// cell reads as space; each tick must still complete.
	sp := space.NewSpace()
	loader.LoadString(";", sp)
	cfg := DefaultConfig()
	sc := NewScheduler(sp, NewTable(cfg, &term.Console{}), cfg)

	for range 3 {
		assert.False(sc.Tick())
	}
	assert.Equal(1, sc.Alive())
	assert.Equal(3, sc.Ticks)
}

func TestScheduler_IterateOneCell(t *testing.T) {
	assert := assert.New(t)

	// A lone 'k' finds no operand on its ray and must not scan
	// forever looking for one.
	sp := space.NewSpace()
	loader.LoadString("k", sp)
	cfg := DefaultConfig()
	sc := NewScheduler(sp, NewTable(cfg, &term.Console{}), cfg)

	for range 3 {
		assert.False(sc.Tick())
	}
	assert.Equal(1, sc.Alive())
}

func TestScheduler_StringModeOneCell(t *testing.T) {
	assert := assert.New(t)

	// A lone '"' leaves string mode open over an endless ray of
	// spaces; the collapse slide is bounded so each tick completes.
	sp := space.NewSpace()
	loader.LoadString(`"`, sp)
	cfg := DefaultConfig()
	sc := NewScheduler(sp, NewTable(cfg, &term.Console{}), cfg)

	for range 3 {
		assert.False(sc.Tick())
	}
	assert.Equal(1, sc.Alive())
	for ip := range sc.IPs() {
		assert.True(ip.StringMode)
		assert.Equal(space.Cell(' '), ip.Stacks.Active().Peek())
	}
}

func TestScheduler_InputScenario(t *testing.T) {
	assert := assert.New(t)

	output, _ := run(t, "&&+.@", DefaultConfig(), "20 22\n")
	assert.Equal("42 ", output)
}

func TestScheduler_SelfModifying(t *testing.T) {
	assert := assert.New(t)

	// A 'p' write lands in the same space the IPs execute from.
	sp := space.NewSpace()
	loader.LoadString("00p@", sp)
	cfg := DefaultConfig()
	sc := NewScheduler(sp, NewTable(cfg, &term.Console{}), cfg)

	assert.False(sc.Tick()) // 0
	assert.False(sc.Tick()) // 0
	assert.False(sc.Tick()) // p: writes 0 over the origin '0'
	assert.Equal(space.Cell(0), sp.Get(space.Vector{}))
	assert.True(sc.Tick()) // @
}
