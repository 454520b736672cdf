package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/funge98/gofunge/space"
)

func TestSysinfo_Report(t *testing.T) {
	assert := assert.New(t)

	tb, ip, sp, _ := testMachine("")
	sp.Set(space.Vector{X: 0, Y: 0}, 'y')
	sp.Set(space.Vector{X: 4, Y: 2}, '@')

	ip.Location = space.Vector{X: 1, Y: 0}
	ip.Delta = DELTA_SOUTH
	ip.Stacks.Active().Push(0) // full report
	tb.Dispatch('y', ip, sp)

	s := ip.Stacks.Active()
	// Top of the report, in standard order.
	assert.Equal(space.Cell(FLAGS), s.Pop())
	assert.Equal(space.Cell(8), s.Pop())
	assert.Equal(space.Cell(HANDPRINT), s.Pop())
	assert.Equal(space.Cell(VERSION), s.Pop())
	assert.Equal(space.Cell(PARADIGM), s.Pop())
	s.Pop() // path separator
	assert.Equal(space.Cell(2), s.Pop())
	assert.Equal(space.Cell(ip.Id), s.Pop())
	assert.Equal(space.Cell(0), s.Pop()) // team
	assert.Equal(space.Vector{X: 1, Y: 0}, s.PopVector())
	assert.Equal(DELTA_SOUTH, s.PopVector())
	assert.Equal(space.Vector{}, s.PopVector())
	assert.Equal(space.Vector{}, s.PopVector())              // least point
	assert.Equal(space.Vector{X: 4, Y: 2}, s.PopVector())    // greatest, relative
	s.Pop()                                                  // date
	s.Pop()                                                  // time
	assert.Equal(space.Cell(1), s.Pop())                     // stack-stack size
	assert.Equal(space.Cell(0), s.Pop())                     // TOSS size before y
}

func TestSysinfo_Pick(t *testing.T) {
	assert := assert.New(t)

	tb, ip, sp, _ := testMachine("")
	ip.Stacks.Active().Push(99) // beneath the report
	ip.Stacks.Active().Push(3)  // pick the handprint
	tb.Dispatch('y', ip, sp)

	assert.Equal([]space.Cell{99, HANDPRINT}, ip.Stacks.Active().Data)
}

func TestSysinfo_PickSizes(t *testing.T) {
	assert := assert.New(t)

	// Cell 2 of the report is the bytes-per-cell value.
	tb, ip, sp, _ := testMachine("")
	ip.Stacks.Active().Push(2)
	tb.Dispatch('y', ip, sp)
	assert.Equal([]space.Cell{8}, ip.Stacks.Active().Data)
}
