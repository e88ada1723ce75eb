// Package dberr classifies database driver errors into the domain error types
// of internal/pkg/errs.
package dberr

import (
	"errors"

	"printshop/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// foreignKeyViolation is the SQLSTATE PostgreSQL reports for a refused
// delete or insert on a foreign key.
const foreignKeyViolation = "23503"

// Translate maps err to a NotFound, ReferentialConflict or StoreUnavailable
// error about entity id. Domain errors pass through unchanged.
func Translate(operation, entity string, id any, err error) error {
	switch {
	case err == nil:
		return nil
	case isDomainError(err):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewObjectNotFoundErrorWithCause(entity, id, err)
	case IsForeignKeyViolation(err):
		return errs.NewReferentialConflictErrorWithCause(entity, id, err)
	default:
		return errs.NewStoreUnavailableError(operation, err)
	}
}

// IsForeignKeyViolation reports whether err is a foreign key violation, either
// already translated by gorm or raw from lib/pq.
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}

func isDomainError(err error) bool {
	for _, target := range []error{
		errs.ErrObjectNotFound,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsRequired,
		errs.ErrValueIsOutOfRange,
		errs.ErrInvalidState,
		errs.ErrReferentialConflict,
		errs.ErrStoreUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
