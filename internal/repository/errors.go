// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"fmt"

	"yatube/internal/models"

	"gorm.io/gorm"
)

// translate maps GORM errors to application errors. Record-not-found becomes a
// NOT_FOUND AppError for resource/key; anything else is wrapped with op.
func translate(err error, op, resource string, key any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		appErr := models.NewNotFoundError(resource, key)
		appErr.Err = err
		return appErr
	}
	return fmt.Errorf("%s: %w", op, err)
}
