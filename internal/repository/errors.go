// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"strings"

	"pinboard/internal/models"

	"gorm.io/gorm"
)

// translateError converts a storage fault into the application taxonomy.
// Record-not-found becomes NotFound for the named resource, a uniqueness
// violation becomes Conflict, anything else is wrapped as Internal.
func translateError(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	if isDuplicateKeyError(err) {
		return models.NewConflictError(resource + " already exists")
	}
	return models.NewInternalError(err)
}

// isDuplicateKeyError detects a unique-constraint violation across the
// drivers we run on (postgres in production, sqlite in tests).
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
