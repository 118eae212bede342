// Copyright (c) 2026 Ludex. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludex-app/ludex/internal/platform/apperr"
	"github.com/ludex-app/ludex/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Chrono Trigger", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Numeric checks the numeric type rule and its message shape.
*/
func TestValidator_Numeric(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"integer", "1995", true},
		{"negative", "-3", true},
		{"decimal", "19.95", true},
		{"words", "nineteen", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Numeric("year", tt.value)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
				ae := apperr.As(v.Err())
				require.NotNil(t, ae)
				assert.Equal(t, "Invalid data type in Year. Expected number.", ae.Details[0].Message)
			}
		})
	}
}

/*
TestValidator_StringsOnly rejects lists containing blank elements, the only
way a mistyped array manifests at the multipart boundary.
*/
func TestValidator_StringsOnly(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		hasError bool
	}{
		{"all_strings", []string{"RPG", "Adventure"}, false},
		{"empty_list", nil, false},
		{"blank_element", []string{"RPG", " "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.StringsOnly("genres", tt.values)

			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_AccumulatesAllFailures verifies that the chain never
short-circuits: each failed rule contributes its own detail.
*/
func TestValidator_AccumulatesAllFailures(t *testing.T) {
	v := &validate.Validator{}
	v.Required("title", "").
		Required("description", "").
		RequiredList("genres", nil).
		Custom("cover", true, "Invalid cover type. Only JPG, PNG, and WebP images are allowed.")

	require.True(t, v.HasErrors())

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 4)
}

/*
TestIsNumeric covers the standalone numeric predicate used by query
handlers.
*/
func TestIsNumeric(t *testing.T) {
	assert.True(t, validate.IsNumeric("1995"))
	assert.True(t, validate.IsNumeric(" 42 "))
	assert.False(t, validate.IsNumeric("Inf"))
	assert.False(t, validate.IsNumeric("NaN"))
	assert.False(t, validate.IsNumeric("abc"))
	assert.False(t, validate.IsNumeric(""))
}
