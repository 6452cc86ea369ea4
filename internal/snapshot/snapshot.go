// Package snapshot parses the per-timestep configuration file: simulation
// box, energies and the kinematic state of each nucleotide (position,
// orientation vectors, velocity, angular velocity).
//
// The header is lenient and order-dependent: a `t =` line, then a `b =`
// line, then an `E =` line, each optional. A missing header line does not
// consume its slot; the line is retried as the next header kind or as data,
// so files with partial headers still load. Data rows need at least 15
// float fields; shorter rows are skipped with a diagnostic.
package snapshot

import (
	"strconv"
	"strings"

	"github.com/san-kum/cgview/internal/diag"
	"github.com/san-kum/cgview/internal/pbc"
	"gonum.org/v1/gonum/spatial/r3"
)

// Energy carries the three energies of the snapshot header, passed through
// as read; nothing in this package computes them.
type Energy struct {
	Total     float64
	Potential float64
	Kinetic   float64
}

// State is one nucleotide row. Index is positional, assigned by the parser
// in file order starting at 0.
type State struct {
	Index           int
	Position        r3.Vec
	Base            r3.Vec
	Normal          r3.Vec
	Velocity        r3.Vec
	AngularVelocity r3.Vec
}

// Document is the parsed configuration file.
type Document struct {
	Timestep    int
	Box         pbc.Box
	Energy      Energy
	Nucleotides []State
}

// stateFields is the number of floats a row must yield to qualify as a
// nucleotide state; extra fields are ignored.
const stateFields = 15

// Parse reads the configuration text. It never fails: malformed rows are
// skipped with a diagnostic and absent header lines fall back to zero
// values.
func Parse(text string) (*Document, []diag.Diagnostic) {
	var diags []diag.Diagnostic
	doc := &Document{}

	const (
		wantTime = iota
		wantBox
		wantEnergy
		wantData
	)
	stage := wantTime
	nextIndex := 0

	for lineNo, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Header slots are skipped without consuming the line when the
		// expected prefix is absent, so a partial header reflows into the
		// next slot or into data.
		if stage == wantTime {
			stage = wantBox
			if v, ok := headerValues(line, "t"); ok {
				if len(v) > 0 {
					doc.Timestep = int(v[0])
				}
				continue
			}
		}
		if stage == wantBox {
			stage = wantEnergy
			if v, ok := headerValues(line, "b"); ok {
				if len(v) >= 3 {
					doc.Box = pbc.Box{X: v[0], Y: v[1], Z: v[2]}
				} else {
					diags = diag.Appendf(diags, lineNo+1, "box line has %d of 3 values", len(v))
				}
				continue
			}
		}
		if stage == wantEnergy {
			stage = wantData
			if v, ok := headerValues(line, "E"); ok {
				if len(v) >= 3 {
					doc.Energy = Energy{Total: v[0], Potential: v[1], Kinetic: v[2]}
				} else {
					diags = diag.Appendf(diags, lineNo+1, "energy line has %d of 3 values", len(v))
				}
				continue
			}
		}

		vals := parseFloats(strings.Fields(line))
		if len(vals) < stateFields {
			diags = diag.Appendf(diags, lineNo+1, "skipped row with %d of %d fields", len(vals), stateFields)
			continue
		}
		doc.Nucleotides = append(doc.Nucleotides, State{
			Index:           nextIndex,
			Position:        r3.Vec{X: vals[0], Y: vals[1], Z: vals[2]},
			Base:            r3.Vec{X: vals[3], Y: vals[4], Z: vals[5]},
			Normal:          r3.Vec{X: vals[6], Y: vals[7], Z: vals[8]},
			Velocity:        r3.Vec{X: vals[9], Y: vals[10], Z: vals[11]},
			AngularVelocity: r3.Vec{X: vals[12], Y: vals[13], Z: vals[14]},
		})
		nextIndex++
	}

	return doc, diags
}

// headerValues matches lines of the form "<key> = v1 v2 ..." and returns
// the parsed floats after the '='.
func headerValues(line, key string) ([]float64, bool) {
	rest, ok := strings.CutPrefix(line, key)
	if !ok {
		return nil, false
	}
	rest = strings.TrimLeft(rest, " \t")
	rest, ok = strings.CutPrefix(rest, "=")
	if !ok {
		return nil, false
	}
	return parseFloats(strings.Fields(rest)), true
}

// parseFloats converts tokens to floats, dropping unparseable ones.
func parseFloats(fields []string) []float64 {
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		vals = append(vals, v)
	}
	return vals
}
