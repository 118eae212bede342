// Copyright (c) 2026 Ludex. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and the
one-or-many shape of multipart form fields, ensuring consistent error
handling and type safety.
*/
package requestutil

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ludex-app/ludex/internal/platform/apperr"
	"github.com/ludex-app/ludex/internal/platform/constants"
)

/*
ID retrieves a named URL parameter from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
FormValue returns the first submitted value for a multipart form field,
or "" if the field is absent.
*/
func FormValue(request *http.Request, name string) string {
	if request.MultipartForm == nil {
		return ""
	}
	values := request.MultipartForm.Value[name]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

/*
FormValues normalizes a multipart form field to the "one or many" shape.

The transport collapses single-element array submissions to a scalar; this
helper makes the ambiguity explicit by always returning a slice (a scalar
submission becomes a singleton, commas and all — "Firaxis, Inc." is one
developer, not two). Blank elements are dropped; blank-only submissions
return nil.
*/
func FormValues(request *http.Request, name string) []string {
	if request.MultipartForm == nil {
		return nil
	}

	var values []string
	for _, value := range request.MultipartForm.Value[name] {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

/*
IfMatchVersion parses the optional If-Match header into an expected record
version for optimistic concurrency control.

Returns:
  - nil when the header is absent (last-write-wins)
  - the parsed version otherwise
  - apperr.ValidationError when the header is present but malformed
*/
func IfMatchVersion(request *http.Request) (*int64, error) {
	raw := strings.TrimSpace(request.Header.Get(constants.HeaderIfMatch))
	if raw == "" {
		return nil, nil
	}

	// Accept both bare versions and quoted ETag form: `"3"`.
	raw = strings.Trim(raw, `"`)

	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || version < 0 {
		return nil, apperr.ValidationError("Invalid If-Match header: expected a record version")
	}
	return &version, nil
}
