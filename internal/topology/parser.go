package topology

import (
	"errors"
	"strconv"
	"strings"

	"github.com/san-kum/cgview/internal/diag"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoHeader indicates the file has no significant line to serve as the
// header. It is the only fatal parse failure; callers must abort the load.
var ErrNoHeader = errors.New("topology: missing header line")

const (
	patchTag  = "iP"
	springTag = "iS"
)

// Parse reads the topology text into a Document. Malformed rows are dropped
// with a diagnostic; the returned error is non-nil only when the header is
// absent.
func Parse(text string) (*Document, []diag.Diagnostic, error) {
	var diags []diag.Diagnostic
	doc := &Document{}

	sawHeader := false
	nextIndex := 0

	for lineNo, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		if !sawHeader {
			doc.Header, diags = parseHeader(fields, lineNo+1, diags)
			sawHeader = true
			continue
		}

		switch fields[0] {
		case patchTag:
			p, ok := parsePatch(fields[1:])
			if !ok {
				diags = diag.Appendf(diags, lineNo+1, "dropped malformed patch row")
				continue
			}
			doc.Patches = append(doc.Patches, p)
		case springTag:
			s, ok := parseSpring(fields[1:])
			if !ok {
				diags = diag.Appendf(diags, lineNo+1, "dropped malformed spring row")
				continue
			}
			doc.Springs = append(doc.Springs, s)
		default:
			rec, ds := parseParticle(fields, lineNo+1)
			diags = append(diags, ds...)
			if rec == nil {
				continue
			}
			rec.Index = nextIndex
			nextIndex++
			doc.Particles = append(doc.Particles, *rec)
		}
	}

	if !sawHeader {
		return nil, diags, ErrNoHeader
	}
	return doc, diags, nil
}

// parseHeader reads up to four integers positionally. Short or unparseable
// headers degrade to zeroed fields plus a diagnostic; the combiner warns
// about count mismatches later.
func parseHeader(fields []string, line int, diags []diag.Diagnostic) (Header, []diag.Diagnostic) {
	var h Header
	dst := []*int{&h.NumParticles, &h.NumStrands, &h.MaxSprings, &h.RepeatedPatches}
	for i, p := range dst {
		if i >= len(fields) {
			diags = diag.Appendf(diags, line, "header has %d of 4 fields", len(fields))
			break
		}
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			diags = diag.Appendf(diags, line, "header field %d is not an integer: %q", i+1, fields[i])
			continue
		}
		*p = v
	}
	return h, diags
}

func parsePatch(fields []string) (PatchTemplate, bool) {
	var p PatchTemplate
	if len(fields) < 6 {
		return p, false
	}
	id, err1 := strconv.Atoi(fields[0])
	color, err2 := strconv.Atoi(fields[1])
	strength, err3 := strconv.ParseFloat(fields[2], 64)
	pos, err4 := parseVec(fields[3:6])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return p, false
	}
	return PatchTemplate{ID: id, Color: color, Strength: strength, Position: pos}, true
}

func parseSpring(fields []string) (SpringTemplate, bool) {
	var s SpringTemplate
	if len(fields) < 6 {
		return s, false
	}
	id, err1 := strconv.Atoi(fields[0])
	stiff, err2 := strconv.ParseFloat(fields[1], 64)
	rest, err3 := strconv.ParseFloat(fields[2], 64)
	pos, err4 := parseVec(fields[3:6])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return s, false
	}
	return SpringTemplate{ID: id, Stiffness: stiff, RestLength: rest, Position: pos}, true
}

// parseParticle reads a particle row. The caller assigns Index. A row too
// short for the five fixed fields is dropped entirely; inside the variable
// part, bad tokens drop only the element they belong to.
func parseParticle(fields []string, line int) (*ParticleRecord, []diag.Diagnostic) {
	var diags []diag.Diagnostic
	if len(fields) < 5 {
		return nil, diag.Appendf(diags, line, "dropped particle row with %d of 5 fixed fields", len(fields))
	}
	typ, err1 := strconv.Atoi(fields[0])
	strand, err2 := strconv.Atoi(fields[1])
	radius, err3 := strconv.ParseFloat(fields[2], 64)
	mass, err4 := strconv.ParseFloat(fields[3], 64)
	nPatches, err5 := strconv.Atoi(fields[4])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return nil, diag.Appendf(diags, line, "dropped particle row with malformed fixed fields")
	}

	rec := &ParticleRecord{Type: typ, Strand: strand, Radius: radius, Mass: mass}

	rest := fields[5:]
	if nPatches < 0 {
		nPatches = 0
	}
	if nPatches > len(rest) {
		diags = diag.Appendf(diags, line, "particle declares %d patches but row has %d ids", nPatches, len(rest))
		nPatches = len(rest)
	}
	for _, tok := range rest[:nPatches] {
		id, err := strconv.Atoi(tok)
		if err != nil {
			diags = diag.Appendf(diags, line, "dropped non-integer patch id %q", tok)
			continue
		}
		rec.PatchIDs = append(rec.PatchIDs, id)
	}

	pairs := rest[nPatches:]
	if len(pairs)%2 != 0 {
		diags = diag.Appendf(diags, line, "discarded dangling connection token %q", pairs[len(pairs)-1])
		pairs = pairs[:len(pairs)-1]
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		peer, err1 := strconv.Atoi(pairs[i])
		spring, err2 := strconv.Atoi(pairs[i+1])
		if err1 != nil || err2 != nil {
			diags = diag.Appendf(diags, line, "dropped malformed connection pair %q %q", pairs[i], pairs[i+1])
			continue
		}
		rec.Connections = append(rec.Connections, Connection{Peer: peer, Spring: spring})
	}
	return rec, diags
}

func parseVec(fields []string) (r3.Vec, error) {
	var v r3.Vec
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return v, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return v, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return v, err
	}
	return r3.Vec{X: x, Y: y, Z: z}, nil
}
