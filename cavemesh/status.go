package cavemesh

import (
	"fmt"
	"log"
)

// unreachableError is returned by the A* core and the hierarchical driver
// when no path could be found. It is a distinct sentinel from "empty
// path" (start == end yields a legal, one-node low-level path).
type unreachableError struct {
	reason string
}

func (e *unreachableError) Error() string {
	if e.reason == "" {
		return "path unreachable"
	}
	return "path unreachable: " + e.reason
}

// PathUnreachable is returned (wrapped, via errors.Is) whenever the A*
// core exhausts its open set, or a downstream segment search does. The
// hierarchical driver propagates it unchanged, per spec.md §7.
var PathUnreachable = &unreachableError{}

// Is implements errors.Is support so that any unreachableError value,
// regardless of its reason string, matches the PathUnreachable sentinel.
func (e *unreachableError) Is(target error) bool {
	_, ok := target.(*unreachableError)
	return ok
}

func unreachable(reason string) error {
	return &unreachableError{reason: reason}
}

// invalidInputError is raised eagerly at API boundaries: a vertex out of
// stable index order, a heights length mismatch, a negative clearance, a
// node reference out of range, a zone with no members, or a bad file
// header on Load. Start and end nodes whose zones are not connected at
// level 1 yield PathUnreachable, not this error.
type invalidInputError struct {
	msg string
}

func (e *invalidInputError) Error() string {
	return "invalid input: " + e.msg
}

func invalidInput(format string, args ...interface{}) error {
	return &invalidInputError{msg: fmt.Sprintf(format, args...)}
}

// invariantViolation marks an internal builder bug surfacing at query
// time: an entrance whose nodes aren't connected, an asymmetric
// neighbour relation, a driver step that finds its level-1 path
// malformed. Some of these conditions are also asserted at build time in
// debug builds (see the assert.True calls in node.go, zone.go and
// entrance.go); this function is the query-time fallback, logging the violation
// via log.Printf and returning PathUnreachable so callers can keep
// treating it like any other failed search, per spec.md §7 ("log and
// continue with PathUnreachable in release").
func invariantViolation(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	log.Printf("cavemesh: invariant violation: %s", msg)
	return unreachable("invariant violation: " + msg)
}
