package service

import (
	"fmt"
	"strings"
)

// ValidationError reports missing or malformed required fields. It is
// raised before any write happens.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// ReferenceError reports a submitted lookup value (an area name, a reason)
// that does not resolve to a reference row. Like validation errors it is
// detected before any write.
type ReferenceError struct {
	Kind  string
	Value string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("unresolvable %s %q", e.Kind, e.Value)
}
