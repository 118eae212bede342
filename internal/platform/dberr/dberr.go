// Copyright (c) 2026 Ludex. All rights reserved.

// Package dberr provides a bridge between low-level document-store errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/ludex-app/ludex/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried document doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal driver details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	// 2. Unknown driver errors become Internal Server Errors. The action tag
	// keeps server-side logs attributable without leaking queries to clients.
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
