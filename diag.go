package dwg

import "fmt"

// DiagKind classifies a resolution diagnostic.
type DiagKind int

const (
	// DiagMalformedEntity: required geometry fields are absent or
	// structurally invalid; the entity is skipped.
	DiagMalformedEntity DiagKind = iota
	// DiagUnresolvableReference: an insert names a block with no
	// definition; a placeholder record is emitted instead.
	DiagUnresolvableReference
	// DiagDegenerateGeometry: a geometric piece collapsed (zero-length
	// chord, empty loop) and was dropped; siblings continue.
	DiagDegenerateGeometry
	// DiagCyclicBlockReference: a block expansion re-entered itself; only
	// that insert's subtree is abandoned.
	DiagCyclicBlockReference
	// DiagUnknownEntity: the entity kind has no registered resolver.
	DiagUnknownEntity
)

var diagKindNames = [...]string{
	DiagMalformedEntity:       "malformed entity",
	DiagUnresolvableReference: "unresolvable reference",
	DiagDegenerateGeometry:    "degenerate geometry",
	DiagCyclicBlockReference:  "cyclic block reference",
	DiagUnknownEntity:         "unknown entity",
}

func (k DiagKind) String() string {
	if k < 0 || int(k) >= len(diagKindNames) {
		return "unknown"
	}
	return diagKindNames[k]
}

// Diagnostic records a non-fatal condition encountered while resolving one
// entity. No diagnostic ever aborts the rest of the document.
type Diagnostic struct {
	Kind    DiagKind
	Handle  string
	Block   string
	Message string
}

func (d Diagnostic) String() string {
	s := d.Kind.String()
	if d.Handle != "" {
		s += " (handle " + d.Handle + ")"
	}
	if d.Block != "" {
		s += " [block " + d.Block + "]"
	}
	if d.Message != "" {
		s += ": " + d.Message
	}
	return s
}

func diagf(kind DiagKind, handle, block, format string, args ...any) Diagnostic {
	return Diagnostic{
		Kind:    kind,
		Handle:  handle,
		Block:   block,
		Message: fmt.Sprintf(format, args...),
	}
}
