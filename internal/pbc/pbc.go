// Package pbc maintains the mapping from canonical (unwrapped) particle
// positions to displayed positions under an accumulated box-relative offset.
// Positions wrap around the rectangular simulation cell per axis; bond
// endpoints are always re-derived through the same wrap, never cached from
// canonical coordinates.
package pbc

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axis selects one box dimension.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// Box is the rectangular simulation cell spanning [0,X)x[0,Y)x[0,Z).
// A zero length on an axis disables wrapping on that axis.
type Box struct {
	X, Y, Z float64
}

// Size returns the box length along the given axis.
func (b Box) Size(a Axis) float64 {
	switch a {
	case AxisX:
		return b.X
	case AxisY:
		return b.Y
	case AxisZ:
		return b.Z
	}
	return 0
}

// Wrap normalizes v into [0, size). A size of 0 is degenerate input and
// passes v through unchanged rather than dividing by zero.
func Wrap(v, size float64) float64 {
	if size == 0 {
		return v
	}
	w := math.Mod(v, size)
	if w < 0 {
		w += size
	}
	return w
}

// Model owns the canonical position snapshot taken at load time, the
// accumulated offset vector and the derived displayed positions. One Model
// is built per loaded structure graph, so the offset always starts at zero.
// It is single-writer: serialize Shift calls if sharing across goroutines.
type Model struct {
	box       Box
	canonical []r3.Vec
	bonds     [][2]int
	offset    r3.Vec
	displayed []r3.Vec
}

// NewModel snapshots positions (copied, the caller's slice stays untouched)
// and bond endpoint index pairs, and computes the initial wrapped view.
func NewModel(box Box, positions []r3.Vec, bonds [][2]int) *Model {
	m := &Model{
		box:       box,
		canonical: make([]r3.Vec, len(positions)),
		bonds:     make([][2]int, len(bonds)),
		displayed: make([]r3.Vec, len(positions)),
	}
	copy(m.canonical, positions)
	copy(m.bonds, bonds)
	m.recompute()
	return m
}

// Shift accumulates amount into the offset along axis and recomputes the
// wrapped view for all particles and bond endpoints.
func (m *Model) Shift(axis Axis, amount float64) {
	switch axis {
	case AxisX:
		m.offset.X += amount
	case AxisY:
		m.offset.Y += amount
	case AxisZ:
		m.offset.Z += amount
	}
	m.recompute()
}

func (m *Model) recompute() {
	for i, c := range m.canonical {
		s := r3.Add(c, m.offset)
		m.displayed[i] = r3.Vec{
			X: Wrap(s.X, m.box.X),
			Y: Wrap(s.Y, m.box.Y),
			Z: Wrap(s.Z, m.box.Z),
		}
	}
}

// Len returns the number of tracked particles.
func (m *Model) Len() int { return len(m.canonical) }

// NumBonds returns the number of tracked bond endpoint pairs.
func (m *Model) NumBonds() int { return len(m.bonds) }

// Box returns the simulation cell.
func (m *Model) Box() Box { return m.box }

// Offset returns the accumulated box offset.
func (m *Model) Offset() r3.Vec { return m.offset }

// Position returns the displayed (wrapped) position of particle i.
func (m *Model) Position(i int) r3.Vec { return m.displayed[i] }

// BondEndpoints returns the displayed positions of both endpoints of bond i.
// Each endpoint is wrapped independently; a bond crossing the periodic
// boundary spans the box rather than taking the minimum image.
func (m *Model) BondEndpoints(i int) (r3.Vec, r3.Vec) {
	b := m.bonds[i]
	return m.displayed[b[0]], m.displayed[b[1]]
}
