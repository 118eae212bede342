// Copyright (c) 2026 Ludex. All rights reserved.

package requestutil_test

import (
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	requestutil "github.com/ludex-app/ludex/internal/platform/request"
)

/*
TestFormValues_OneOrManyNormalization covers the scalar/array ambiguity of
multipart list fields: repeated fields and a single scalar must both come
out as the same slice shape, and a scalar is never split apart.
*/
func TestFormValues_OneOrManyNormalization(t *testing.T) {
	tests := []struct {
		name      string
		submitted []string
		want      []string
	}{
		{"repeated_fields", []string{"Square", "Enix"}, []string{"Square", "Enix"}},
		{"single_scalar", []string{"Square"}, []string{"Square"}},
		{"scalar_with_comma_stays_one_value", []string{"Firaxis, Inc."}, []string{"Firaxis, Inc."}},
		{"blank_elements_dropped", []string{"Square", "  ", ""}, []string{"Square"}},
		{"blank_only", []string{"   "}, nil},
		{"absent", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("POST", "/", nil)
			request.MultipartForm = &multipart.Form{
				Value: map[string][]string{"developers": tt.submitted},
			}

			assert.Equal(t, tt.want, requestutil.FormValues(request, "developers"))
		})
	}
}

/*
TestIfMatchVersion parses the optional conditional-update header in both
bare and quoted ETag form.
*/
func TestIfMatchVersion(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    *int64
		wantErr bool
	}{
		{"absent", "", nil, false},
		{"bare_version", "3", int64Ptr(3), false},
		{"quoted_etag", `"7"`, int64Ptr(7), false},
		{"malformed", "abc", nil, true},
		{"negative", "-1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("PUT", "/", nil)
			if tt.header != "" {
				request.Header.Set("If-Match", tt.header)
			}

			version, err := requestutil.IfMatchVersion(request)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, version)
		})
	}
}

func int64Ptr(v int64) *int64 { return &v }
