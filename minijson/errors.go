package minijson

import (
	"errors"
	"fmt"
)

var (
	// ErrCircular is returned when a value contains itself through its
	// chain of ancestors. Shared references in sibling positions are fine.
	ErrCircular = errors.New("minijson: converting circular structure")

	// ErrNoOutput is returned by Stringify when the top-level value has no
	// representation (a func or Undefined). It is distinct from "", which
	// is the token for null.
	ErrNoOutput = errors.New("minijson: value has no representation")
)

// ParseError reports malformed input found by a strict parse.
type ParseError struct {
	Message string
	Offset  int // Byte offset into the token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("minijson: %s at offset %d", e.Message, e.Offset)
}
