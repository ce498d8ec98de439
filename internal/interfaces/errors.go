package interfaces

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrAlreadyExists           = errors.New("already exists")
	ErrDuplicateBusinessNumber = errors.New("duplicate business registration number")
	ErrForeignKey              = errors.New("referenced row does not exist")
)

// StatusConflictError means a status change was attempted from a state other
// than the one the caller expected.
type StatusConflictError struct {
	Resource string
	Expected string
	Current  string
}

func (e *StatusConflictError) Error() string {
	if e.Current == "" {
		return fmt.Sprintf("%s is no longer %s", e.Resource, e.Expected)
	}
	return fmt.Sprintf("%s is %s, expected %s", e.Resource, e.Current, e.Expected)
}
