package topology

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Header carries the four integers of the topology header line. The counts
// are declarative only; nothing is validated against them at parse time.
type Header struct {
	NumParticles    int
	NumStrands      int
	MaxSprings      int
	RepeatedPatches int
}

// PatchTemplate is a labeled attachment point with a local offset from the
// particle center. Templates are referenced from particle rows by ID.
type PatchTemplate struct {
	ID       int
	Color    int
	Strength float64
	Position r3.Vec
}

// SpringTemplate describes an edge type: stiffness, rest length and a local
// attachment offset.
type SpringTemplate struct {
	ID         int
	Stiffness  float64
	RestLength float64
	Position   r3.Vec
}

// Connection is one declared spring link from a particle to a peer.
type Connection struct {
	Peer   int
	Spring int
}

// ParticleRecord is one particle row. Index is assigned by the parser in
// file order, starting at 0; it is not read from the file.
type ParticleRecord struct {
	Index       int
	Type        int
	Strand      int
	Radius      float64
	Mass        float64
	PatchIDs    []int
	Connections []Connection
}

// Document is the parsed topology file.
type Document struct {
	Header    Header
	Patches   []PatchTemplate
	Springs   []SpringTemplate
	Particles []ParticleRecord
}

// PatchByID returns a lookup map built from the patch templates. Later
// duplicates of an ID win, matching declaration-order overwrite.
func (d *Document) PatchByID() map[int]PatchTemplate {
	m := make(map[int]PatchTemplate, len(d.Patches))
	for _, p := range d.Patches {
		m[p.ID] = p
	}
	return m
}

// SpringByID returns a lookup map built from the spring templates.
func (d *Document) SpringByID() map[int]SpringTemplate {
	m := make(map[int]SpringTemplate, len(d.Springs))
	for _, s := range d.Springs {
		m[s.ID] = s
	}
	return m
}
