// Package topology parses the static connectivity file of a coarse-grained
// structure: particle types, patch attachment points, spring definitions and
// the particle-to-particle spring links.
//
// The format is line-oriented. Blank lines and lines starting with '#' are
// skipped anywhere in the file. The first significant line is a header of
// four integers; every later significant line is dispatched on its first
// token:
//
//	iP <id> <color> <strength> <x> <y> <z>    patch template
//	iS <id> <stiffness> <restLen> <x> <y> <z> spring template
//	<type> <strand> <radius> <mass> <nPatches> <patchID>... [<peer> <spring>]...
//
// Particle indices are positional: the Nth particle row gets index N-1,
// regardless of what the header declares. Malformed data rows degrade to
// omission plus a diagnostic; only a missing header aborts the parse.
package topology
