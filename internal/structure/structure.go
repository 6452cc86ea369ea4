// Package structure reconciles a parsed topology document and a parsed
// configuration snapshot into one renderable structure graph: a merged
// particle list, a deduplicated undirected bond list and pass-through
// metadata. Combination degrades gracefully; every anomaly becomes a
// diagnostic, never an error.
package structure

import (
	"github.com/san-kum/cgview/internal/pbc"
	"github.com/san-kum/cgview/internal/snapshot"
	"github.com/san-kum/cgview/internal/topology"
	"gonum.org/v1/gonum/spatial/r3"
)

// Particle is the union of a topology particle record and its matching
// nucleotide state, merged by identical positional index, with patch
// references resolved to templates.
type Particle struct {
	Index           int
	Type            int
	Strand          int
	Radius          float64
	Mass            float64
	Patches         []topology.PatchTemplate
	Position        r3.Vec
	Base            r3.Vec
	Normal          r3.Vec
	Velocity        r3.Vec
	AngularVelocity r3.Vec
}

// Bond is a resolved undirected edge. From and To keep the order of first
// discovery; Spring is nil when the declared spring id had no template.
type Bond struct {
	From   int
	To     int
	Spring *topology.SpringTemplate
}

// Metadata is copied through unchanged from the two source documents.
type Metadata struct {
	Timestep   int
	Box        pbc.Box
	Energy     snapshot.Energy
	NumStrands int
}

// Graph is the combiner output. It is immutable once produced; the pbc
// model operates on a derived copy of the positions and never mutates it.
type Graph struct {
	Particles []Particle
	Bonds     []Bond
	Meta      Metadata
}

// Positions returns a copy of the particle positions in index order,
// suitable for seeding a pbc.Model.
func (g *Graph) Positions() []r3.Vec {
	ps := make([]r3.Vec, len(g.Particles))
	for i, p := range g.Particles {
		ps[i] = p.Position
	}
	return ps
}

// BondIndexPairs returns the bond endpoints as index pairs in bond order.
func (g *Graph) BondIndexPairs() [][2]int {
	pairs := make([][2]int, len(g.Bonds))
	for i, b := range g.Bonds {
		pairs[i] = [2]int{b.From, b.To}
	}
	return pairs
}

// Summary aggregates counts for display.
type Summary struct {
	Particles   int
	Bonds       int
	Strands     int
	ByType      map[int]int
	ByStrand    map[int]int
	Patches     int
	SpringBonds int
}

// Summary tallies the graph by particle type and strand and counts resolved
// patches and spring-annotated bonds.
func (g *Graph) Summary() Summary {
	s := Summary{
		Particles: len(g.Particles),
		Bonds:     len(g.Bonds),
		Strands:   g.Meta.NumStrands,
		ByType:    make(map[int]int),
		ByStrand:  make(map[int]int),
	}
	for _, p := range g.Particles {
		s.ByType[p.Type]++
		s.ByStrand[p.Strand]++
		s.Patches += len(p.Patches)
	}
	for _, b := range g.Bonds {
		if b.Spring != nil {
			s.SpringBonds++
		}
	}
	return s
}
