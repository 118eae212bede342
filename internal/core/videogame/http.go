// Copyright (c) 2026 Ludex. All rights reserved.

package videogame

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ludex-app/ludex/internal/platform/apperr"
	"github.com/ludex-app/ludex/internal/platform/constants"
	requestutil "github.com/ludex-app/ludex/internal/platform/request"
	"github.com/ludex-app/ludex/internal/platform/respond"
	"github.com/ludex-app/ludex/internal/platform/upload"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalog management and discovery.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
	stager  *upload.Stager
}

// NewHandler constructs a new videogame [Handler] with its dependencies.
func NewHandler(service *Service, stager *upload.Stager) *Handler {
	return &Handler{service: service, stager: stager}
}

// Routes returns a [chi.Router] configured with the catalog's endpoints.
//
// The fixed paths /sort and /search are registered before the {id} wildcard;
// chi resolves static segments first, so neither is ever captured as an
// identifier.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Discovery Endpoints
	router.Get("/", handler.listVideogames)
	router.Get("/sort", handler.listSorted)
	router.Get("/search", handler.searchVideogames)
	router.Get("/{id}", handler.getVideogame)

	// ## Catalog Management
	router.Post("/", handler.createVideogame)
	router.Put("/{id}", handler.updateVideogame)
	router.Delete("/{id}", handler.deleteVideogame)
	router.Delete("/{id}/thumbnails/{thumbnailID}", handler.deleteThumbnail)

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/videogames.

Description: Retrieves the full catalog ordered by title ascending.

Response:
  - 200: []Videogame: Complete catalog listing
*/
func (handler *Handler) listVideogames(writer http.ResponseWriter, request *http.Request) {
	games, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, games)
}

/*
GET /api/v1/videogames/sort.

Description: Retrieves the catalog ordered by a chosen field and direction.

Request:
  - sortBy: string (title, year, developers, platforms, genres)
  - order: string (asc, desc; defaults to asc)

Response:
  - 200: []Videogame: Sorted catalog listing
  - 400: VALIDATION_ERROR: Unrecognized sort field or direction
*/
func (handler *Handler) listSorted(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	games, err := handler.service.SortedList(request.Context(), queryParams.Get("sortBy"), queryParams.Get("order"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, games)
}

/*
GET /api/v1/videogames/search.

Description: Finds records matching the supplied parameters. Title narrows
the result; developer, platform, genre, and year widen it (a record matches
if any of them matches). String parameters match case-insensitively as
substrings.

Request:
  - title: string
  - developer: string
  - platform: string
  - genre: string
  - year: int

Response:
  - 200: []Videogame: Matching records (possibly empty)
  - 400: VALIDATION_ERROR: No recognized parameter, or non-numeric year
*/
func (handler *Handler) searchVideogames(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	params := SearchParams{
		Title:     queryParams.Get("title"),
		Developer: queryParams.Get("developer"),
		Platform:  queryParams.Get("platform"),
		Genre:     queryParams.Get("genre"),
		Year:      queryParams.Get("year"),
	}

	games, err := handler.service.Search(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, games)
}

/*
GET /api/v1/videogames/{id}.

Description: Retrieves one record by its identifier.

Response:
  - 200: Videogame: Success
  - 404: NOT_FOUND: No record with that identifier
*/
func (handler *Handler) getVideogame(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	game, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writeVersion(writer, game)
	respond.OK(writer, game)
}

// # Management Endpoints

/*
POST /api/v1/videogames.

Description: Creates a catalog record from a multipart submission. Requires
a cover and a landscape image; thumbnails are optional. All validation
failures are reported together, and nothing is stored on a rejected
submission.

Request (multipart/form-data):
  - title, description, year: string
  - developers, platforms, genres: repeated fields, or one field for a single value
  - cover, landscape: image file (.jpg, .jpeg, .png, .webp)
  - thumbnails: image files

Response:
  - 201: Videogame: Created record with hosted image URLs
  - 400: VALIDATION_ERROR: Field or file violations
  - 500: UPLOAD_FAILED: Media host rejected an upload
*/
func (handler *Handler) createVideogame(writer http.ResponseWriter, request *http.Request) {
	input, files, err := handler.parseSubmission(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.Create(request.Context(), input, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writeVersion(writer, game)
	respond.Created(writer, game)
}

/*
PUT /api/v1/videogames/{id}.

Description: Updates a record with a minimal diff. Unchanged fields are not
rewritten; covers are replaced only as a pair; submitted thumbnails are
appended. An If-Match header with the record's version makes the update
conditional.

Response:
  - 200: Videogame: Updated record
  - 400: VALIDATION_ERROR: Field or file violations
  - 404: NOT_FOUND: No record with that identifier
  - 409: CONFLICT: Record was modified since the version in If-Match
*/
func (handler *Handler) updateVideogame(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	expectedVersion, err := requestutil.IfMatchVersion(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, files, err := handler.parseSubmission(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.Update(request.Context(), id, expectedVersion, input, files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writeVersion(writer, game)
	respond.OK(writer, game)
}

/*
DELETE /api/v1/videogames/{id}.

Description: Deletes a record and all of its hosted images.

Response:
  - 204: Record and assets removed
  - 404: NOT_FOUND: No record with that identifier
  - 409: CONFLICT: Record was modified since the version in If-Match
  - 500: ASSET_DELETE_FAILED: Record removed, but an asset deletion failed
*/
func (handler *Handler) deleteVideogame(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	expectedVersion, err := requestutil.IfMatchVersion(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id, expectedVersion); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/videogames/{id}/thumbnails/{thumbnailID}.

Description: Deletes one thumbnail from a record, remote asset included.

Response:
  - 204: Thumbnail removed
  - 404: NOT_FOUND: No such record or thumbnail
*/
func (handler *Handler) deleteThumbnail(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	thumbnailID := requestutil.ID(request, "thumbnailID")

	if err := handler.service.DeleteThumbnail(request.Context(), id, thumbnailID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Multipart Parsing

// parseSubmission reads the multipart form and stages every submitted file
// into the local upload directory. Staged files are cleaned up after upload
// or, if the request fails before uploading, by the stager's janitor.
func (handler *Handler) parseSubmission(request *http.Request) (Input, Files, error) {
	if err := request.ParseMultipartForm(constants.MultipartMaxMemory); err != nil {
		return Input{}, Files{}, apperr.ValidationError("Request body must be multipart/form-data")
	}

	input := Input{
		Title:       requestutil.FormValue(request, FieldTitle),
		Description: requestutil.FormValue(request, FieldDescription),
		Year:        requestutil.FormValue(request, FieldYear),
		Developers:  requestutil.FormValues(request, FieldDevelopers),
		Platforms:   requestutil.FormValues(request, FieldPlatforms),
		Genres:      requestutil.FormValues(request, FieldGenres),
	}

	files := Files{}

	if header := firstFile(request, FieldCover); header != nil {
		staged, err := handler.stager.Stage(header)
		if err != nil {
			return Input{}, Files{}, err
		}
		files.Cover = staged
	}

	if header := firstFile(request, FieldLandscape); header != nil {
		staged, err := handler.stager.Stage(header)
		if err != nil {
			return Input{}, Files{}, err
		}
		files.Landscape = staged
	}

	if request.MultipartForm != nil {
		staged, err := handler.stager.StageAll(request.MultipartForm.File[FieldThumbnails])
		if err != nil {
			return Input{}, Files{}, err
		}
		files.Thumbnails = staged
	}

	return input, files, nil
}

// firstFile returns the first uploaded file header for a form field, or nil
// when the field is absent.
func firstFile(request *http.Request, name string) *multipart.FileHeader {
	if request.MultipartForm == nil {
		return nil
	}
	headers := request.MultipartForm.File[name]
	if len(headers) == 0 {
		return nil
	}
	return headers[0]
}

// writeVersion exposes the record's version as a strong ETag so clients can
// issue conditional updates.
func writeVersion(writer http.ResponseWriter, game *Videogame) {
	writer.Header().Set(constants.HeaderETag, fmt.Sprintf("%q", strconv.FormatInt(game.Version, 10)))
}
