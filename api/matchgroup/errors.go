/* errors.go
 * Contains the structured error types returned by the matchgroup package
 */

package matchgroup

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when a bracket reset match cannot be merged because its
// opponents do not line up with the primary match's opponents
var ErrShapeMismatch = errors.New("bracket reset opponents do not match primary match")

// ErrMatchNotFound is returned by display queries for an unknown match id
var ErrMatchNotFound = errors.New("match not found in group")

// FieldDecodeError reports a malformed JSON-encoded field inside an otherwise well-formed
// record. This indicates upstream data corruption, so it is fatal rather than defaulted
type FieldDecodeError struct {
	GroupID string
	MatchID string
	Field   string
	Err     error
}

func (e *FieldDecodeError) Error() string {
	return fmt.Sprintf("group %s: match %s: malformed field %q: %v", e.GroupID, e.MatchID, e.Field, e.Err)
}

func (e *FieldDecodeError) Unwrap() error {
	return e.Err
}
