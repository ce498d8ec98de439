package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"campaignhub/internal/interfaces"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// classify maps postgres constraint failures onto repository sentinels.
// byConstraint picks a specific sentinel for a named unique constraint.
func classify(err error, byConstraint map[string]error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case uniqueViolation:
		if sentinel, ok := byConstraint[pqErr.Constraint]; ok {
			return fmt.Errorf("%w: %s", sentinel, pqErr.Constraint)
		}
		return fmt.Errorf("%w: %s", interfaces.ErrAlreadyExists, pqErr.Constraint)
	case foreignKeyViolation:
		return fmt.Errorf("%w: %s", interfaces.ErrForeignKey, pqErr.Constraint)
	}
	return err
}
