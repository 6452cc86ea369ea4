package structure

import (
	"testing"

	"github.com/san-kum/cgview/internal/snapshot"
	"github.com/san-kum/cgview/internal/topology"
	"gonum.org/v1/gonum/spatial/r3"
)

const sampleTopology = `4 2 1 1
iP 0 1 1.0 0.5 0.0 0.0
iS 0 10.0 1.2 0.0 0.0 0.0
0 0 0.5 1.0 1 0 1 0
0 0 0.5 1.0 0 0 0 2 0
1 1 0.6 1.5 0 1 0
1 1 0.6 1.5 0 99 0
`

const sampleConfiguration = `t = 10
b = 10 10 10
E = -1 -2 1
0.0 0.0 0.0 0 0 1 1 0 0 0 0 0 0 0 0
1.0 0.0 0.0 0 0 1 1 0 0 0 0 0 0 0 0
2.0 0.0 0.0 0 0 1 1 0 0 0 0 0 0 0 0
3.0 0.0 0.0 0 0 1 1 0 0 0 0 0 0 0 0
`

func parsePair(t *testing.T) (*topology.Document, *snapshot.Document) {
	t.Helper()
	top, _, err := topology.Parse(sampleTopology)
	if err != nil {
		t.Fatalf("topology parse failed: %v", err)
	}
	snap, _ := snapshot.Parse(sampleConfiguration)
	return top, snap
}

func TestCombineScenario(t *testing.T) {
	top, snap := parsePair(t)
	g, diags := Combine(top, snap)

	if len(g.Particles) != 4 {
		t.Fatalf("expected 4 particles, got %d", len(g.Particles))
	}
	for i, p := range g.Particles {
		if p.Index != i {
			t.Errorf("particle %d has index %d", i, p.Index)
		}
	}

	// Declared pairs: 0-1, 1-0 (dup), 1-2, 2-1 (dup), 3-99 (dropped).
	if len(g.Bonds) != 2 {
		t.Fatalf("expected 2 bonds, got %+v", g.Bonds)
	}
	if g.Bonds[0].From != 0 || g.Bonds[0].To != 1 {
		t.Errorf("bond 0 = %+v, want first discovery order 0-1", g.Bonds[0])
	}
	if g.Bonds[1].From != 1 || g.Bonds[1].To != 2 {
		t.Errorf("bond 1 = %+v", g.Bonds[1])
	}

	// One diagnostic for the out-of-range peer 99.
	found := false
	for _, d := range diags {
		if d.Line == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a diagnostic for peer 99, got %v", diags)
	}
}

func TestCombineMetadataPassThrough(t *testing.T) {
	top, snap := parsePair(t)
	g, _ := Combine(top, snap)

	m := g.Meta
	if m.Timestep != 10 {
		t.Errorf("timestep = %d", m.Timestep)
	}
	if m.Box.X != 10 || m.Box.Y != 10 || m.Box.Z != 10 {
		t.Errorf("box = %+v", m.Box)
	}
	if m.Energy.Total != -1 || m.Energy.Potential != -2 || m.Energy.Kinetic != 1 {
		t.Errorf("energy = %+v", m.Energy)
	}
	if m.NumStrands != 2 {
		t.Errorf("strands = %d", m.NumStrands)
	}
}

func TestCombinePatchResolution(t *testing.T) {
	top, snap := parsePair(t)
	g, _ := Combine(top, snap)

	p0 := g.Particles[0]
	if len(p0.Patches) != 1 || p0.Patches[0].ID != 0 {
		t.Errorf("particle 0 patches = %+v", p0.Patches)
	}
	if p0.Patches[0].Position != (r3.Vec{X: 0.5}) {
		t.Errorf("patch position = %+v", p0.Patches[0].Position)
	}
}

func TestCombineUnresolvedPatchDropped(t *testing.T) {
	top := &topology.Document{
		Header:    topology.Header{NumParticles: 1, NumStrands: 1},
		Particles: []topology.ParticleRecord{{PatchIDs: []int{42}}},
	}
	snap := &snapshot.Document{Nucleotides: []snapshot.State{{}}}

	g, diags := Combine(top, snap)
	if len(g.Particles[0].Patches) != 0 {
		t.Errorf("patches = %+v, unresolved id must be dropped", g.Particles[0].Patches)
	}
	if len(diags) == 0 {
		t.Error("expected a diagnostic for unresolved patch")
	}
}

func TestCombineUnresolvedSpringKeepsBond(t *testing.T) {
	top := &topology.Document{
		Header: topology.Header{NumParticles: 2},
		Particles: []topology.ParticleRecord{
			{Connections: []topology.Connection{{Peer: 1, Spring: 7}}},
			{Index: 1},
		},
	}
	snap := &snapshot.Document{Nucleotides: []snapshot.State{{}, {Index: 1}}}

	g, _ := Combine(top, snap)
	if len(g.Bonds) != 1 {
		t.Fatalf("expected 1 bond, got %d", len(g.Bonds))
	}
	if g.Bonds[0].Spring != nil {
		t.Errorf("spring = %+v, want nil for unresolved id", g.Bonds[0].Spring)
	}
}

func TestCombineCountMismatch(t *testing.T) {
	top := &topology.Document{
		Header: topology.Header{NumParticles: 5},
		Particles: []topology.ParticleRecord{
			{}, {Index: 1}, {Index: 2},
			{Index: 3, Connections: []topology.Connection{{Peer: 0, Spring: 0}}},
		},
	}
	snap := &snapshot.Document{Nucleotides: []snapshot.State{
		{}, {Index: 1},
	}}

	g, diags := Combine(top, snap)
	if len(g.Particles) != 2 {
		t.Fatalf("expected min-count merge of 2, got %d", len(g.Particles))
	}
	// The connection declared by dropped particle 3 must not surface.
	if len(g.Bonds) != 0 {
		t.Errorf("bonds = %+v, want none", g.Bonds)
	}
	if len(diags) == 0 {
		t.Error("expected a count mismatch diagnostic")
	}
	for _, b := range g.Bonds {
		if b.From >= 2 || b.To >= 2 {
			t.Errorf("bond %+v references a dropped record", b)
		}
	}
}

func TestCombineEmptyInputs(t *testing.T) {
	g, _ := Combine(&topology.Document{}, &snapshot.Document{})
	if len(g.Particles) != 0 || len(g.Bonds) != 0 {
		t.Errorf("expected empty graph, got %d particles %d bonds", len(g.Particles), len(g.Bonds))
	}
}

func TestGraphAccessors(t *testing.T) {
	top, snap := parsePair(t)
	g, _ := Combine(top, snap)

	ps := g.Positions()
	if len(ps) != 4 || ps[2].X != 2.0 {
		t.Errorf("positions = %+v", ps)
	}
	// Positions returns a copy; mutating it must not touch the graph.
	ps[0].X = 99
	if g.Particles[0].Position.X == 99 {
		t.Error("Positions must copy")
	}

	pairs := g.BondIndexPairs()
	if len(pairs) != 2 || pairs[0] != [2]int{0, 1} {
		t.Errorf("pairs = %+v", pairs)
	}

	sum := g.Summary()
	if sum.Particles != 4 || sum.Bonds != 2 || sum.Strands != 2 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.ByType[0] != 2 || sum.ByType[1] != 2 {
		t.Errorf("by type = %+v", sum.ByType)
	}
	if sum.SpringBonds != 2 {
		t.Errorf("spring bonds = %d", sum.SpringBonds)
	}
}
