package state

import "fmt"

// MissingVariableError indicates that a ${var.*} reference could not be
// resolved against the aggregate variable mapping while strict resolution
// was in effect. Reference carries the original interpolation string.
type MissingVariableError struct {
	Reference string
}

// Error implements the error interface.
func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing variable for reference %s", e.Reference)
}

// Is implements error equality for errors.Is.
func (e *MissingVariableError) Is(target error) bool {
	t, ok := target.(*MissingVariableError)
	if !ok {
		return false
	}
	return t.Reference == "" || t.Reference == e.Reference
}

// IndexOutOfRangeError indicates an indexed lookup into a list variable
// with an index outside [0, len).
type IndexOutOfRangeError struct {
	Reference string
	Index     int
	Length    int
}

// Error implements the error interface.
func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for reference %s (list has %d elements)",
		e.Index, e.Reference, e.Length)
}
