package entity

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to entity errors.
const (
	TextCodeInvalidArgument = "ENTITY_INVALID_ARGUMENT"
	TextCodeNotInitialized  = "ENTITY_MODEL_NOT_INITIALIZED"
	TextCodeIntegrity       = "ENTITY_DATA_INTEGRITY"
	TextCodePersistence     = "ENTITY_PERSISTENCE"
)

// Each error kind maps to its own category so callers can branch on kind.
const (
	categoryInvalidArgument = goerrors.CategoryBadInput
	categoryNotInitialized  = goerrors.CategoryOperation
	categoryIntegrity       = goerrors.CategoryConflict
	categoryPersistence     = goerrors.CategoryInternal
)

func invalidArgument(message string, meta map[string]any) error {
	return goerrors.New(message, categoryInvalidArgument).
		WithTextCode(TextCodeInvalidArgument).
		WithMetadata(meta)
}

func notInitialized(message string, meta map[string]any) error {
	return goerrors.New(message, categoryNotInitialized).
		WithTextCode(TextCodeNotInitialized).
		WithMetadata(meta)
}

func integrityViolation(message string, meta map[string]any) error {
	return goerrors.New(message, categoryIntegrity).
		WithTextCode(TextCodeIntegrity).
		WithMetadata(meta)
}

// persistence wraps a database or cache failure. cause stays reachable through errors.Is.
func persistence(cause error, message string, meta map[string]any) error {
	return goerrors.Wrap(cause, categoryPersistence, message).
		WithTextCode(TextCodePersistence).
		WithMetadata(meta)
}

// IsInvalidArgument reports whether err rejects caller input (empty or unknown update columns).
func IsInvalidArgument(err error) bool {
	return hasCategory(err, categoryInvalidArgument)
}

// IsNotInitialized reports whether err was raised because the bound model is not initialized.
func IsNotInitialized(err error) bool {
	return hasCategory(err, categoryNotInitialized)
}

// IsIntegrity reports whether err signals more than one row for a primary key.
func IsIntegrity(err error) bool {
	return hasCategory(err, categoryIntegrity)
}

// IsPersistence reports whether err wraps a database or cache failure.
func IsPersistence(err error) bool {
	return hasCategory(err, categoryPersistence)
}

func hasCategory(err error, category goerrors.Category) bool {
	var e *goerrors.Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Category == category
}
