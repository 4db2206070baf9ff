// Package storage provides the data persistence layer for the saldo application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/balisaldo/saldo/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrEmptySlice       = errors.New("slice cannot be empty")
	ErrInvalidLimit     = errors.New("limit must be positive")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidEmbedding = errors.New("invalid embedding")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCategory ensures a category is in the closed set.
func validateCategory(category model.Category) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return nil
}

// validateEmbedding ensures an embedding vector is present.
func validateEmbedding(embedding []float32) error {
	if len(embedding) == 0 {
		return fmt.Errorf("%w: vector is empty", ErrInvalidEmbedding)
	}
	return nil
}

// validateIDs ensures an id slice is usable.
func validateIDs(ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: ids", ErrEmptySlice)
	}
	return nil
}
