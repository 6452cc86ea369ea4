package structure

import (
	"github.com/san-kum/cgview/internal/diag"
	"github.com/san-kum/cgview/internal/snapshot"
	"github.com/san-kum/cgview/internal/topology"
)

// pairKey identifies an unordered particle pair for bond deduplication.
type pairKey struct {
	lo, hi int
}

func keyOf(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Combine merges the two documents by positional index. Only the first
// min(len(particles), len(nucleotides)) indices are merged; extra records
// on either side are dropped silently. Unresolved patch and spring
// references degrade to omission. Combine never fails; disjoint inputs
// yield an empty graph.
func Combine(top *topology.Document, snap *snapshot.Document) (*Graph, []diag.Diagnostic) {
	var diags []diag.Diagnostic

	if top.Header.NumParticles != len(snap.Nucleotides) {
		diags = diag.Appendf(diags, 0,
			"topology declares %d particles but configuration has %d rows",
			top.Header.NumParticles, len(snap.Nucleotides))
	}

	count := min(len(top.Particles), len(snap.Nucleotides))

	patches := top.PatchByID()
	springs := top.SpringByID()

	g := &Graph{
		Particles: make([]Particle, 0, count),
		Meta: Metadata{
			Timestep:   snap.Timestep,
			Box:        snap.Box,
			Energy:     snap.Energy,
			NumStrands: top.Header.NumStrands,
		},
	}

	for i := 0; i < count; i++ {
		rec := top.Particles[i]
		st := snap.Nucleotides[i]
		p := Particle{
			Index:           i,
			Type:            rec.Type,
			Strand:          rec.Strand,
			Radius:          rec.Radius,
			Mass:            rec.Mass,
			Position:        st.Position,
			Base:            st.Base,
			Normal:          st.Normal,
			Velocity:        st.Velocity,
			AngularVelocity: st.AngularVelocity,
		}
		for _, id := range rec.PatchIDs {
			tpl, ok := patches[id]
			if !ok {
				diags = diag.Appendf(diags, 0, "particle %d references unknown patch %d", i, id)
				continue
			}
			p.Patches = append(p.Patches, tpl)
		}
		g.Particles = append(g.Particles, p)
	}

	// First-discovery order: particles in index order, connections in
	// declaration order. A bond never references a dropped record.
	seen := make(map[pairKey]bool)
	for i := 0; i < count; i++ {
		for _, c := range top.Particles[i].Connections {
			if c.Peer < 0 || c.Peer >= count {
				diags = diag.Appendf(diags, 0, "particle %d connects to out-of-range peer %d", i, c.Peer)
				continue
			}
			k := keyOf(i, c.Peer)
			if seen[k] {
				continue
			}
			seen[k] = true
			b := Bond{From: i, To: c.Peer}
			if tpl, ok := springs[c.Spring]; ok {
				b.Spring = &tpl
			} else {
				diags = diag.Appendf(diags, 0, "bond %d-%d references unknown spring %d", i, c.Peer, c.Spring)
			}
			g.Bonds = append(g.Bonds, b)
		}
	}

	return g, diags
}
