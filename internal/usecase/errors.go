package usecase

import (
	"errors"
	"fmt"

	"erp-backend/internal/data/repository"
	"erp-backend/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrInactiveAccount    = errors.New("account is not active")
	ErrActivation         = errors.New("activation link is invalid or expired")
	ErrToken              = errors.New("token is invalid or expired")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func fieldError(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fieldError(field, "Must be a valid UUID")
	}
	return id, nil
}

// storeError converts repository constraint errors into service errors.
func storeError(err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %s", ErrAlreadyExists, what)
	case errors.Is(err, repository.ErrForeignKey):
		return fmt.Errorf("%w: %s references a record that does not exist", ErrValidation, what)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

func (a Actor) canManage(userID uuid.UUID) bool {
	return a.IsAdmin || a.ID == userID
}
