package domain

import "stockbook/internal/core/apperror"

// NormalizeValidationErr passes classified errors through and turns a
// plain error from a validator into a VALIDATION_ERROR.
func NormalizeValidationErr(err error) error {
	if err == nil || apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

// NormalizeGetErr renames a repository NotFound after the entity the API
// exposes ("Sale" rather than "sales"). Unclassified errors become
// INTERNAL_ERROR tagged with the entity and key.
func NormalizeGetErr(err error, entityName string, key any) error {
	switch {
	case err == nil:
		return nil
	case apperror.IsNotFound(err):
		return apperror.NewNotFound(entityName, key)
	case apperror.IsAppError(err):
		return err
	}
	return apperror.NewInternal(err).
		WithDetail("entity", entityName).
		WithDetail("id", key)
}
