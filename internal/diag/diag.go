// Package diag holds the soft diagnostic values emitted by the parsers and
// the combiner. Diagnostics report recoverable anomalies (skipped rows,
// unresolved references, count mismatches); they are collected and returned
// alongside results, never raised as errors.
package diag

import "fmt"

type Diagnostic struct {
	Line    int // 1-based source line, 0 when not tied to a line
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return d.Message
}

// Appendf appends a formatted diagnostic to list and returns the new slice.
func Appendf(list []Diagnostic, line int, format string, args ...any) []Diagnostic {
	return append(list, Diagnostic{Line: line, Message: fmt.Sprintf(format, args...)})
}
