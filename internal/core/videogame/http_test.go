// Copyright (c) 2026 Ludex. All rights reserved.

package videogame_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludex-app/ludex/internal/core/videogame"
	"github.com/ludex-app/ludex/internal/platform/upload"
)

// newTestHandler wires a full handler against the in-memory fakes, staging
// uploads into a per-test temp directory.
func newTestHandler(t *testing.T, repo *fakeRepository, gateway *fakeGateway) *videogame.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stager, err := upload.NewStager(t.TempDir(), logger)
	require.NoError(t, err)

	return videogame.NewHandler(newTestService(repo, gateway), stager)
}

// multipartBody builds a submission with the standard text fields plus the
// given image files. Fields may carry several values; each is written as
// its own form part.
func multipartBody(t *testing.T, fields map[string][]string, images map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, fieldValues := range fields {
		for _, value := range fieldValues {
			require.NoError(t, writer.WriteField(name, value))
		}
	}
	for field, filename := range images {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func standardFields() map[string][]string {
	return map[string][]string{
		"title":       {"Chrono Trigger"},
		"description": {"Time-travel RPG."},
		"year":        {"1995"},
		"developers":  {"Firaxis, Inc."},
		"platforms":   {"SNES"},
		"genres":      {"RPG", "Adventure"},
	}
}

/*
TestHandler_CreateVideogame drives the full multipart path: staging, policy
checks, uploads, persistence, and the 201 envelope with an ETag.
*/
func TestHandler_CreateVideogame(t *testing.T) {
	repo := &fakeRepository{}
	gateway := &fakeGateway{}
	handler := newTestHandler(t, repo, gateway)

	body, contentType := multipartBody(t, standardFields(), map[string]string{
		"cover":     "cover.jpg",
		"landscape": "landscape.png",
	})

	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, `"1"`, recorder.Header().Get("ETag"))

	var envelope struct {
		Data videogame.Videogame `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.Equal(t, "Chrono Trigger", envelope.Data.Title)
	assert.Equal(t, 1995, envelope.Data.Year)

	// Repeated fields become a list; a scalar with a comma stays one entry.
	require.NotNil(t, repo.created)
	assert.Equal(t, []string{"RPG", "Adventure"}, repo.created.GenreNames())
	assert.Equal(t, []string{"Firaxis, Inc."}, repo.created.DeveloperNames())
	assert.Len(t, gateway.uploads, 2)
}

/*
TestHandler_CreateVideogame_ValidationEnvelope verifies the error envelope
shape for a rejected submission: top-level error plus per-field details.
*/
func TestHandler_CreateVideogame_ValidationEnvelope(t *testing.T) {
	handler := newTestHandler(t, &fakeRepository{}, &fakeGateway{})

	body, contentType := multipartBody(t, map[string][]string{"title": {"Orphan"}}, nil)

	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope struct {
		Error   string `json:"error"`
		Code    string `json:"code"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
	assert.NotEmpty(t, envelope.Details)
}

/*
TestHandler_SortBeforeWildcard ensures the fixed /sort and /search paths are
never captured by the {id} route.
*/
func TestHandler_SortBeforeWildcard(t *testing.T) {
	repo := &fakeRepository{}
	handler := newTestHandler(t, repo, &fakeGateway{})

	request := httptest.NewRequest(http.MethodGet, "/sort?sortBy=year&order=desc", nil)
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, repo.listSort)
	assert.Equal(t, "year", repo.listSort.Field)
	assert.True(t, repo.listSort.Descending)
}

/*
TestHandler_DeleteVideogame verifies the 204 contract and that a stale
If-Match surfaces as the version passed to the repository.
*/
func TestHandler_DeleteVideogame(t *testing.T) {
	repo := &fakeRepository{stored: storedGame()}
	gateway := &fakeGateway{}
	handler := newTestHandler(t, repo, gateway)

	request := httptest.NewRequest(http.MethodDelete, "/"+repo.stored.ID.Hex(), nil)
	request.Header.Set("If-Match", `"3"`)
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.Bytes())
	require.NotNil(t, repo.lastVersion)
	assert.Equal(t, int64(3), *repo.lastVersion)
	assert.Len(t, gateway.destroyed, 4)
}
