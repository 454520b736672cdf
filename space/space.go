package space

import (
	"fmt"
	"iter"
)

// Cell is a single Funge-space value. Code and data share the same
// representation; an unwritten cell reads as the space character.
type Cell int64

const CELL_DEFAULT = Cell(' ') // Value of any cell never written.

// Vector is a 2-D coordinate or direction delta in Funge-space.
type Vector struct {
	X int64
	Y int64
}

// Add returns the component-wise sum of two vectors.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference of two vectors.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Neg returns the reflection of the vector.
func (v Vector) Neg() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// IsZero reports whether both components are zero.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vector) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// Space is the shared program memory: a conceptually unbounded toroidal
// grid of cells. Cells ever written are tracked by a minimal bounding
// rectangle; the rectangle grows on writes and never shrinks. The space
// is mutated in place by the loader and by running programs alike.
type Space struct {
	cells   map[Vector]Cell
	min     Vector // Bounding rectangle, inclusive.
	max     Vector
	written bool // At least one cell has been bound.
}

// NewSpace creates an empty space.
func NewSpace() (sp *Space) {
	sp = &Space{}
	sp.Reset()

	return
}

// Reset discards all cells and the bounding rectangle.
func (sp *Space) Reset() {
	sp.cells = map[Vector]Cell{}
	sp.min = Vector{}
	sp.max = Vector{}
	sp.written = false
}

// Min returns the inclusive minimum corner of the bounding rectangle.
func (sp *Space) Min() Vector {
	return sp.min
}

// Max returns the inclusive maximum corner of the bounding rectangle.
func (sp *Space) Max() Vector {
	return sp.max
}

// Bound grows the bounding rectangle to include 'at', without storing
// a cell. The loader uses this to bind rows whose trailing cells are
// all spaces.
func (sp *Space) Bound(at Vector) {
	if !sp.written {
		sp.min = at
		sp.max = at
		sp.written = true
		return
	}

	if at.X < sp.min.X {
		sp.min.X = at.X
	}
	if at.Y < sp.min.Y {
		sp.min.Y = at.Y
	}
	if at.X > sp.max.X {
		sp.max.X = at.X
	}
	if at.Y > sp.max.Y {
		sp.max.Y = at.Y
	}
}

// Area returns the cell count of the bounding rectangle. A traversal
// that visits more cells than this without finding what it sought is
// off the rectangle on an unwrapped axis and will never return.
func (sp *Space) Area() int64 {
	width := sp.max.X - sp.min.X + 1
	height := sp.max.Y - sp.min.Y + 1

	return width * height
}

// Wrap reduces an arbitrary coordinate onto the bounding rectangle,
// modulo the rectangle's extent per axis. An axis of extent 1 is left
// unmodified, as is everything before the first write.
func (sp *Space) Wrap(at Vector) (wrapped Vector) {
	wrapped = at

	if !sp.written {
		return
	}

	if width := sp.max.X - sp.min.X + 1; width > 1 {
		wrapped.X = sp.min.X + modulo(at.X-sp.min.X, width)
	}
	if height := sp.max.Y - sp.min.Y + 1; height > 1 {
		wrapped.Y = sp.min.Y + modulo(at.Y-sp.min.Y, height)
	}

	return
}

// Step advances one position from 'at' along 'delta', wrapping onto
// the bounding rectangle.
func (sp *Space) Step(at Vector, delta Vector) Vector {
	return sp.Wrap(at.Add(delta))
}

// Get returns the cell at a coordinate, wrapping first. Unwritten
// cells read as space.
func (sp *Space) Get(at Vector) (value Cell) {
	value, ok := sp.cells[sp.Wrap(at)]
	if !ok {
		value = CELL_DEFAULT
	}

	return
}

// Set stores a cell, extending the bounding rectangle when the
// coordinate lies outside it. Storing the default value releases the
// backing entry but still binds the rectangle.
func (sp *Space) Set(at Vector, value Cell) {
	sp.Bound(at)

	if value == CELL_DEFAULT {
		delete(sp.cells, at)
	} else {
		sp.cells[at] = value
	}
}

// Cells returns an iterator over every non-default cell.
func (sp *Space) Cells() iter.Seq2[Vector, Cell] {
	return func(yield func(Vector, Cell) bool) {
		for at, value := range sp.cells {
			if !yield(at, value) {
				return
			}
		}
	}
}

// modulo is the non-negative remainder of a/b, for b > 0.
func modulo(a, b int64) (m int64) {
	m = a % b
	if m < 0 {
		m += b
	}

	return
}
