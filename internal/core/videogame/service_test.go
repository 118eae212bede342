// Copyright (c) 2026 Ludex. All rights reserved.

package videogame_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ludex-app/ludex/internal/core/videogame"
	"github.com/ludex-app/ludex/internal/media"
	"github.com/ludex-app/ludex/internal/platform/apperr"
	"github.com/ludex-app/ludex/internal/platform/upload"
	"github.com/ludex-app/ludex/pkg/pointer"
)

// # Test Doubles

// fakeGateway records every upload and destroy. Thumbnail uploads run
// concurrently, so all mutation happens under the mutex.
type fakeGateway struct {
	mu        sync.Mutex
	uploads   []string // local paths, in call order
	destroyed []string // public IDs, in call order

	failPaths map[string]bool // uploads that fail, by local path
}

func (g *fakeGateway) Upload(_ context.Context, localPath, folder string) (*media.Asset, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failPaths[localPath] {
		return nil, fmt.Errorf("simulated upload failure for %s", localPath)
	}

	g.uploads = append(g.uploads, localPath)
	return &media.Asset{
		URL:      "https://cdn.test/" + folder + localPath,
		PublicID: "pid" + localPath,
	}, nil
}

func (g *fakeGateway) Destroy(_ context.Context, publicID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.destroyed = append(g.destroyed, publicID)
	return nil
}

// fakeRepository implements [videogame.Repository] with canned responses
// and call recording.
type fakeRepository struct {
	stored    *videogame.Videogame // returned by Get and Delete
	createErr error

	created     *videogame.Videogame
	lastPatch   *videogame.Patch
	lastVersion *int64
	deleted     bool
	listSort    *videogame.Sort
	listCalls   int
	lastFilter  *videogame.SearchFilter
}

func (r *fakeRepository) List(_ context.Context, sort videogame.Sort) ([]*videogame.Videogame, error) {
	r.listSort = &sort
	r.listCalls++
	return []*videogame.Videogame{}, nil
}

func (r *fakeRepository) Search(_ context.Context, filter videogame.SearchFilter) ([]*videogame.Videogame, error) {
	r.lastFilter = &filter
	return []*videogame.Videogame{}, nil
}

func (r *fakeRepository) Get(_ context.Context, id string) (*videogame.Videogame, error) {
	if r.stored == nil {
		return nil, apperr.NotFound("Videogame")
	}
	return r.stored, nil
}

func (r *fakeRepository) Create(_ context.Context, v *videogame.Videogame) error {
	if r.createErr != nil {
		return r.createErr
	}
	v.ID = bson.NewObjectID()
	v.Version = 1
	r.created = v
	return nil
}

func (r *fakeRepository) Update(_ context.Context, id string, expectedVersion *int64, patch videogame.Patch) (*videogame.Videogame, error) {
	r.lastPatch = &patch
	r.lastVersion = expectedVersion
	updated := *r.stored
	if patch.Thumbnails != nil {
		updated.Thumbnails = *patch.Thumbnails
	}
	updated.Version++
	return &updated, nil
}

func (r *fakeRepository) Delete(_ context.Context, id string, expectedVersion *int64) (*videogame.Videogame, error) {
	r.lastVersion = expectedVersion
	r.deleted = true
	return r.stored, nil
}

// fakeCache records listing cache traffic in-memory.
type fakeCache struct {
	cached      []*videogame.Videogame
	hit         bool
	setCalls    int
	invalidated int
}

func (c *fakeCache) GetList(_ context.Context) ([]*videogame.Videogame, bool) {
	if !c.hit {
		return nil, false
	}
	return c.cached, true
}

func (c *fakeCache) SetList(_ context.Context, games []*videogame.Videogame) {
	c.setCalls++
	c.cached = games
	c.hit = true
}

func (c *fakeCache) Invalidate(_ context.Context) {
	c.invalidated++
	c.hit = false
	c.cached = nil
}

// # Fixtures

func newTestServiceWithCache(repo *fakeRepository, gateway *fakeGateway, cache videogame.Cache) *videogame.Service {
	policy := media.Policy{
		AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".webp"},
		MaxSizeMB:         5,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return videogame.NewService(repo, gateway, policy, cache, logger)
}

func newTestService(repo *fakeRepository, gateway *fakeGateway) *videogame.Service {
	return newTestServiceWithCache(repo, gateway, nil)
}

func validInput() videogame.Input {
	return videogame.Input{
		Title:       "Chrono Trigger",
		Description: "Time-travel RPG.",
		Year:        "1995",
		Developers:  []string{"Square"},
		Platforms:   []string{"SNES"},
		Genres:      []string{"RPG"},
	}
}

func imageFile(name string) *upload.File {
	return &upload.File{Name: name, Size: 1 << 20, TempPath: "/nonexistent/" + name}
}

func validFiles(thumbnailCount int) videogame.Files {
	files := videogame.Files{
		Cover:     imageFile("cover.jpg"),
		Landscape: imageFile("landscape.png"),
	}
	for i := 0; i < thumbnailCount; i++ {
		files.Thumbnails = append(files.Thumbnails, imageFile(fmt.Sprintf("thumb-%d.webp", i)))
	}
	return files
}

func storedGame() *videogame.Videogame {
	return &videogame.Videogame{
		ID:          bson.NewObjectID(),
		Title:       "Chrono Trigger",
		Description: "Time-travel RPG.",
		Year:        1995,
		Developers:  []videogame.DeveloperEntry{{Developer: "Square"}},
		Platforms:   []videogame.PlatformEntry{{Platform: "SNES"}},
		Genres:      []videogame.GenreEntry{{Genre: "RPG"}},
		Covers: videogame.Covers{
			Cover:     media.Asset{URL: "u1", PublicID: "old-cover"},
			Landscape: media.Asset{URL: "u2", PublicID: "old-landscape"},
		},
		Thumbnails: []videogame.Thumbnail{
			{ID: bson.NewObjectID(), URL: "t1", PublicID: "old-thumb-1"},
			{ID: bson.NewObjectID(), URL: "t2", PublicID: "old-thumb-2"},
		},
		Version: 3,
	}
}

// # Create

/*
TestService_Create_UploadsAllImagesAndPersists verifies the happy path:
cover, landscape, and every thumbnail are uploaded, thumbnails keep their
submission order, and the persisted record references the hosted assets.
*/
func TestService_Create_UploadsAllImagesAndPersists(t *testing.T) {
	repo := &fakeRepository{}
	gateway := &fakeGateway{}
	service := newTestService(repo, gateway)

	game, err := service.Create(context.Background(), validInput(), validFiles(3))
	require.NoError(t, err)
	require.NotNil(t, game)

	assert.Len(t, gateway.uploads, 5)
	assert.Equal(t, "/nonexistent/cover.jpg", gateway.uploads[0])
	assert.Equal(t, "/nonexistent/landscape.png", gateway.uploads[1])

	require.NotNil(t, repo.created)
	assert.Equal(t, "Chrono Trigger", repo.created.Title)
	assert.Equal(t, 1995, repo.created.Year)
	assert.Equal(t, "pid/nonexistent/cover.jpg", repo.created.Covers.Cover.PublicID)
	assert.Equal(t, "pid/nonexistent/landscape.png", repo.created.Covers.Landscape.PublicID)

	// Thumbnails join by submission order regardless of upload completion order.
	require.Len(t, repo.created.Thumbnails, 3)
	for i, thumbnail := range repo.created.Thumbnails {
		assert.Equal(t, fmt.Sprintf("pid/nonexistent/thumb-%d.webp", i), thumbnail.PublicID)
		assert.False(t, thumbnail.ID.IsZero())
	}

	assert.Empty(t, gateway.destroyed)
}

/*
TestService_Create_ValidationRejectsBeforeAnySideEffect verifies that a
submission with multiple problems reports all of them together and touches
neither the media host nor the store.
*/
func TestService_Create_ValidationRejectsBeforeAnySideEffect(t *testing.T) {
	repo := &fakeRepository{}
	gateway := &fakeGateway{}
	service := newTestService(repo, gateway)

	input := validInput()
	input.Title = "   "
	input.Year = "next year"
	input.Genres = nil

	_, err := service.Create(context.Background(), input, videogame.Files{})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)

	fields := make(map[string]bool)
	for _, detail := range appError.Details {
		fields[detail.Field] = true
	}
	assert.True(t, fields["title"])
	assert.True(t, fields["year"])
	assert.True(t, fields["genres"])
	assert.True(t, fields["cover"])
	assert.True(t, fields["landscape"])

	assert.Empty(t, gateway.uploads)
	assert.Nil(t, repo.created)
}

/*
TestService_Create_RejectsDisallowedImageType verifies the extension
allow-list with the exact client-facing message.
*/
func TestService_Create_RejectsDisallowedImageType(t *testing.T) {
	repo := &fakeRepository{}
	gateway := &fakeGateway{}
	service := newTestService(repo, gateway)

	files := validFiles(0)
	files.Cover = imageFile("cover.gif")

	_, err := service.Create(context.Background(), validInput(), files)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	require.NotEmpty(t, appError.Details)
	assert.Equal(t, "cover", appError.Details[0].Field)
	assert.Equal(t, "Invalid cover type. Only JPG, PNG, and WebP images are allowed.", appError.Details[0].Message)

	assert.Empty(t, gateway.uploads)
}

/*
TestService_Create_RejectsOversizedThumbnail verifies the size ceiling and
that the offending filename is named in the message.
*/
func TestService_Create_RejectsOversizedThumbnail(t *testing.T) {
	repo := &fakeRepository{}
	gateway := &fakeGateway{}
	service := newTestService(repo, gateway)

	files := validFiles(1)
	files.Thumbnails[0].Size = 6 << 20

	_, err := service.Create(context.Background(), validInput(), files)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	require.NotEmpty(t, appError.Details)
	assert.Contains(t, appError.Details[0].Message, "thumb-0.webp")
	assert.Contains(t, appError.Details[0].Message, "5MB")
	assert.Empty(t, gateway.uploads)
}

/*
TestService_Create_RollsBackUploadsOnFailure verifies the compensation path:
when a later upload fails, every asset already uploaded is destroyed and the
store is never written.
*/
func TestService_Create_RollsBackUploadsOnFailure(t *testing.T) {
	repo := &fakeRepository{}
	gateway := &fakeGateway{
		failPaths: map[string]bool{"/nonexistent/landscape.png": true},
	}
	service := newTestService(repo, gateway)

	_, err := service.Create(context.Background(), validInput(), validFiles(0))
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UPLOAD_FAILED", appError.Code)

	assert.Equal(t, []string{"pid/nonexistent/cover.jpg"}, gateway.destroyed)
	assert.Nil(t, repo.created)
}

/*
TestService_Create_RollsBackUploadsOnPersistenceFailure verifies that a
store write failure releases every uploaded asset.
*/
func TestService_Create_RollsBackUploadsOnPersistenceFailure(t *testing.T) {
	repo := &fakeRepository{createErr: apperr.Internal(fmt.Errorf("write failed"))}
	gateway := &fakeGateway{}
	service := newTestService(repo, gateway)

	_, err := service.Create(context.Background(), validInput(), validFiles(2))
	require.Error(t, err)

	assert.Len(t, gateway.uploads, 4)
	assert.Len(t, gateway.destroyed, 4)
}

// # Update

/*
TestService_Update_IdenticalSubmissionIsNoOp verifies that re-submitting the
stored values with no files performs no write and no upload.
*/
func TestService_Update_IdenticalSubmissionIsNoOp(t *testing.T) {
	repo := &fakeRepository{stored: storedGame()}
	gateway := &fakeGateway{}
	service := newTestService(repo, gateway)

	game, err := service.Update(context.Background(), repo.stored.ID.Hex(), nil, validInput(), videogame.Files{})
	require.NoError(t, err)

	assert.Equal(t, repo.stored, game)
	assert.Nil(t, repo.lastPatch)
	assert.Empty(t, gateway.uploads)
}

/*
TestService_Update_NoOpStillHonorsStaleVersion verifies that a conditional
no-op update against a stale version still conflicts.
*/
func TestService_Update_NoOpStillHonorsStaleVersion(t *testing.T) {
	repo := &fakeRepository{stored: storedGame()}
	service := newTestService(repo, &fakeGateway{})

	_, err := service.Update(context.Background(), repo.stored.ID.Hex(), pointer.To(int64(1)), validInput(), videogame.Files{})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

/*
TestService_Update_StaleVersionLeavesAssetsUntouched verifies that a stale
If-Match conflicts before any side effect: a conditional update carrying a
replacement cover pair must not destroy the stored assets, upload anything,
or reach the repository write.
*/
func TestService_Update_StaleVersionLeavesAssetsUntouched(t *testing.T) {
	repo := &fakeRepository{stored: storedGame()} // version 3
	gateway := &fakeGateway{}
	service := newTestService(repo, gateway)

	_, err := service.Update(context.Background(), repo.stored.ID.Hex(), pointer.To(int64(1)), validInput(), validFiles(1))
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)

	assert.NotContains(t, gateway.destroyed, "old-cover")
	assert.NotContains(t, gateway.destroyed, "old-landscape")
	assert.Empty(t, gateway.destroyed)
	assert.Empty(t, gateway.uploads)
	assert.Nil(t, repo.lastPatch)
}

/*
TestService_Update_RejectsHalfCoverPair verifies that submitting only one of
the two cover images is rejected before any upload.
*/
func TestService_Update_RejectsHalfCoverPair(t *testing.T) {
	repo := &fakeRepository{stored: storedGame()}
	gateway := &fakeGateway{}
	service := newTestService(repo, gateway)

	files := videogame.Files{Cover: imageFile("cover.jpg")}

	_, err := service.Update(context.Background(), repo.stored.ID.Hex(), nil, validInput(), files)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	require.NotEmpty(t, appError.Details)
	assert.Equal(t, "Cover and landscape images must be replaced together", appError.Details[0].Message)
	assert.Empty(t, gateway.uploads)
}

/*
TestService_Update_ReplacesCoverPair verifies pair replacement: the stored
assets are destroyed first, the replacements are uploaded, and the patch
carries the new pair.
*/
func TestService_Update_ReplacesCoverPair(t *testing.T) {
	repo := &fakeRepository{stored: storedGame()}
	gateway := &fakeGateway{}
	service := newTestService(repo, gateway)

	_, err := service.Update(context.Background(), repo.stored.ID.Hex(), nil, validInput(), validFiles(0))
	require.NoError(t, err)

	assert.Equal(t, []string{"old-cover", "old-landscape"}, gateway.destroyed)
	assert.Equal(t, []string{"/nonexistent/cover.jpg", "/nonexistent/landscape.png"}, gateway.uploads)

	require.NotNil(t, repo.lastPatch)
	require.NotNil(t, repo.lastPatch.Covers)
	assert.Equal(t, "pid/nonexistent/cover.jpg", repo.lastPatch.Covers.Cover.PublicID)
}

/*
TestService_Update_AppendsThumbnails verifies that submitted thumbnails are
appended after the existing ones rather than replacing them.
*/
func TestService_Update_AppendsThumbnails(t *testing.T) {
	repo := &fakeRepository{stored: storedGame()}
	gateway := &fakeGateway{}
	service := newTestService(repo, gateway)

	files := videogame.Files{Thumbnails: []*upload.File{imageFile("thumb-9.webp")}}

	_, err := service.Update(context.Background(), repo.stored.ID.Hex(), nil, validInput(), files)
	require.NoError(t, err)

	require.NotNil(t, repo.lastPatch)
	require.NotNil(t, repo.lastPatch.Thumbnails)
	merged := *repo.lastPatch.Thumbnails
	require.Len(t, merged, 3)
	assert.Equal(t, "old-thumb-1", merged[0].PublicID)
	assert.Equal(t, "old-thumb-2", merged[1].PublicID)
	assert.Equal(t, "pid/nonexistent/thumb-9.webp", merged[2].PublicID)
}

/*
TestService_Update_DiffsChangedFieldsOnly verifies the minimal write set:
only fields whose submitted value differs from the stored one enter the
patch.
*/
func TestService_Update_DiffsChangedFieldsOnly(t *testing.T) {
	repo := &fakeRepository{stored: storedGame()}
	service := newTestService(repo, &fakeGateway{})

	input := validInput()
	input.Title = "Chrono Cross"
	input.Platforms = []string{"SNES", "PS1"}

	_, err := service.Update(context.Background(), repo.stored.ID.Hex(), nil, input, videogame.Files{})
	require.NoError(t, err)

	require.NotNil(t, repo.lastPatch)
	require.NotNil(t, repo.lastPatch.Title)
	assert.Equal(t, "Chrono Cross", *repo.lastPatch.Title)
	assert.Len(t, repo.lastPatch.Platforms, 2)

	assert.Nil(t, repo.lastPatch.Description)
	assert.Nil(t, repo.lastPatch.Year)
	assert.Nil(t, repo.lastPatch.Developers)
	assert.Nil(t, repo.lastPatch.Genres)
}

// # Delete

/*
TestService_Delete_RemovesRecordAndAllAssets verifies that deletion removes
the record first and then releases both covers and every thumbnail.
*/
func TestService_Delete_RemovesRecordAndAllAssets(t *testing.T) {
	repo := &fakeRepository{stored: storedGame()}
	gateway := &fakeGateway{}
	service := newTestService(repo, gateway)

	err := service.Delete(context.Background(), repo.stored.ID.Hex(), nil)
	require.NoError(t, err)

	assert.True(t, repo.deleted)
	require.Len(t, gateway.destroyed, 4)
	assert.Equal(t, "old-cover", gateway.destroyed[0])
	assert.Equal(t, "old-landscape", gateway.destroyed[1])
	assert.ElementsMatch(t, []string{"old-thumb-1", "old-thumb-2"}, gateway.destroyed[2:])
}

/*
TestService_DeleteThumbnail_RemovesOneEntry verifies single-thumbnail
removal: the remote asset is destroyed and the record keeps the rest.
*/
func TestService_DeleteThumbnail_RemovesOneEntry(t *testing.T) {
	repo := &fakeRepository{stored: storedGame()}
	gateway := &fakeGateway{}
	service := newTestService(repo, gateway)

	target := repo.stored.Thumbnails[0]

	err := service.DeleteThumbnail(context.Background(), repo.stored.ID.Hex(), target.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, []string{"old-thumb-1"}, gateway.destroyed)

	require.NotNil(t, repo.lastPatch)
	require.NotNil(t, repo.lastPatch.Thumbnails)
	remaining := *repo.lastPatch.Thumbnails
	require.Len(t, remaining, 1)
	assert.Equal(t, "old-thumb-2", remaining[0].PublicID)
}

/*
TestService_DeleteThumbnail_UnknownIDFails verifies that an unknown
thumbnail identifier yields NOT_FOUND without touching the media host.
*/
func TestService_DeleteThumbnail_UnknownIDFails(t *testing.T) {
	repo := &fakeRepository{stored: storedGame()}
	gateway := &fakeGateway{}
	service := newTestService(repo, gateway)

	err := service.DeleteThumbnail(context.Background(), repo.stored.ID.Hex(), bson.NewObjectID().Hex())
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
	assert.Empty(t, gateway.destroyed)
}

// # Caching

/*
TestService_List_ReadsThroughCache verifies the read-through listing: a
cold cache falls back to the store and repopulates, a warm cache answers
without a store read.
*/
func TestService_List_ReadsThroughCache(t *testing.T) {
	repo := &fakeRepository{}
	cache := &fakeCache{}
	service := newTestServiceWithCache(repo, &fakeGateway{}, cache)

	_, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, 1, cache.setCalls)

	_, err = service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls, "warm cache must not reach the store")
	assert.Equal(t, 1, cache.setCalls)
}

/*
TestService_MutationsInvalidateCache verifies that every successful
mutation drops the cached listing so the next read repopulates it.
*/
func TestService_MutationsInvalidateCache(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, service *videogame.Service, repo *fakeRepository)
	}{
		{"create", func(t *testing.T, service *videogame.Service, repo *fakeRepository) {
			_, err := service.Create(context.Background(), validInput(), validFiles(0))
			require.NoError(t, err)
		}},
		{"update", func(t *testing.T, service *videogame.Service, repo *fakeRepository) {
			input := validInput()
			input.Title = "Chrono Cross"
			_, err := service.Update(context.Background(), repo.stored.ID.Hex(), nil, input, videogame.Files{})
			require.NoError(t, err)
		}},
		{"delete", func(t *testing.T, service *videogame.Service, repo *fakeRepository) {
			require.NoError(t, service.Delete(context.Background(), repo.stored.ID.Hex(), nil))
		}},
		{"delete_thumbnail", func(t *testing.T, service *videogame.Service, repo *fakeRepository) {
			target := repo.stored.Thumbnails[0]
			require.NoError(t, service.DeleteThumbnail(context.Background(), repo.stored.ID.Hex(), target.ID.Hex()))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{stored: storedGame()}
			cache := &fakeCache{hit: true}
			service := newTestServiceWithCache(repo, &fakeGateway{}, cache)

			tt.mutate(t, service, repo)

			assert.Equal(t, 1, cache.invalidated)
			assert.False(t, cache.hit)
		})
	}
}

// # Queries

/*
TestService_SortedList_ValidatesFieldAndDirection covers the closed sortable
set and the direction flag.
*/
func TestService_SortedList_ValidatesFieldAndDirection(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		direction string
		wantErr   string
	}{
		{"title_asc", "title", "asc", ""},
		{"year_desc", "year", "desc", ""},
		{"default_direction", "developers", "", ""},
		{"unknown_field", "publisher", "asc", "Invalid sort field"},
		{"unknown_direction", "title", "sideways", "Invalid sort order. Expected asc or desc."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			service := newTestService(repo, &fakeGateway{})

			_, err := service.SortedList(context.Background(), tt.field, tt.direction)

			if tt.wantErr == "" {
				require.NoError(t, err)
				require.NotNil(t, repo.listSort)
				assert.Equal(t, tt.field, repo.listSort.Field)
				assert.Equal(t, tt.direction == "desc", repo.listSort.Descending)
				return
			}

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			require.NotEmpty(t, appError.Details)
			assert.Equal(t, tt.wantErr, appError.Details[0].Message)
		})
	}
}

/*
TestService_Search_RequiresAtLeastOneParameter verifies the presence check
and the year type check.
*/
func TestService_Search_RequiresAtLeastOneParameter(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo, &fakeGateway{})

	_, err := service.Search(context.Background(), videogame.SearchParams{})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	require.NotEmpty(t, appError.Details)
	assert.Equal(t, "At least one valid search parameter is required", appError.Details[0].Message)

	_, err = service.Search(context.Background(), videogame.SearchParams{Year: "two thousand"})
	require.Error(t, err)

	appError = apperr.As(err)
	require.NotNil(t, appError)
	require.NotEmpty(t, appError.Details)
	assert.Equal(t, "year", appError.Details[0].Field)
}

/*
TestService_Search_BuildsFilter verifies trimming and year parsing on the
way into the repository filter.
*/
func TestService_Search_BuildsFilter(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo, &fakeGateway{})

	_, err := service.Search(context.Background(), videogame.SearchParams{
		Developer: "  Square  ",
		Year:      "1995",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, "Square", repo.lastFilter.Developer)
	require.NotNil(t, repo.lastFilter.Year)
	assert.Equal(t, 1995, *repo.lastFilter.Year)
}
