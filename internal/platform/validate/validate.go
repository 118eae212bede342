// Copyright (c) 2026 Ludex. All rights reserved.

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer — never in handlers or
// storage. Rules never fail individually; they accumulate, so a submission with
// a missing title AND an oversized cover reports both problems in one response.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ludex-app/ludex/internal/platform/apperr"
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// RequiredList fails if the list has no elements.
//
// A single-element form submission arrives as a scalar and is normalized to a
// singleton list before validation, so an empty list here means the field was
// genuinely absent.
func (v *Validator) RequiredList(field string, values []string) *Validator {
	if len(values) == 0 {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Numeric fails if the non-empty value does not parse to a finite number.
func (v *Validator) Numeric(field, value string) *Validator {
	if !IsNumeric(value) {
		v.add(field, fmt.Sprintf("Invalid data type in %s. Expected number.", titleCase(field)))
	}
	return v
}

// StringsOnly fails if any element of the list is blank.
//
// Multipart form values are always strings in Go; a blank element is the only
// way a "wrong type" submission manifests at this boundary.
func (v *Validator) StringsOnly(field string, values []string) *Validator {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			v.add(field, fmt.Sprintf("Invalid data type in %s. Expected array of strings.", titleCase(field)))
			return v
		}
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("cover", ext == ".gif", "Invalid cover type. ...")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// IsNumeric reports whether the value parses to a finite number.
//
// It is exported so query handlers can pre-check parameters (e.g. year)
// without instantiating a Validator.
func IsNumeric(value string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// titleCase upper-cases the first rune of a field name for message display.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
