// Copyright (c) 2026 Ludex. All rights reserved.

package videogame

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/sync/errgroup"

	"github.com/ludex-app/ludex/internal/media"
	"github.com/ludex-app/ludex/internal/platform/apperr"
	"github.com/ludex-app/ludex/internal/platform/upload"
	"github.com/ludex-app/ludex/internal/platform/validate"
	"github.com/ludex-app/ludex/pkg/pointer"
	"github.com/ludex-app/ludex/pkg/slice"
	"github.com/ludex-app/ludex/pkg/slug"
)

// mediaFolderPrefix namespaces every uploaded asset on the media host.
const mediaFolderPrefix = "videogames/"

// Service orchestrates validation, media uploads/deletions, and persistence
// for the videogame lifecycle. All policy and collaborators are injected; the
// service holds no ambient state.
type Service struct {
	repo    Repository
	gateway media.Gateway
	policy  media.Policy
	cache   Cache // optional; nil disables caching
	logger  *slog.Logger
}

func NewService(repo Repository, gateway media.Gateway, policy media.Policy, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		gateway: gateway,
		policy:  policy,
		cache:   cache,
		logger:  logger,
	}
}

// # Create

// Create validates the submission, uploads all images, and persists the new
// record.
//
// Validation is fully front-loaded and error-accumulating: every field and
// file problem is collected and reported together, and nothing reaches the
// media host or the store on a rejected submission. On any failure after the
// first upload, compensating destroys release every asset uploaded so far.
func (service *Service) Create(ctx context.Context, input Input, files Files) (*Videogame, error) {
	input = normalizeInput(input)

	validator := &validate.Validator{}
	service.validateFields(validator, input)
	validator.Custom(FieldCover, files.Cover == nil, "Cover and landscape images are required")
	validator.Custom(FieldLandscape, files.Landscape == nil, "Cover and landscape images are required")
	service.validateFiles(validator, files)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	year, _ := strconv.Atoi(strings.TrimSpace(input.Year))
	session := service.newUploadSession()
	folder := mediaFolderPrefix + slug.From(input.Title)

	// Covers upload sequentially: the landscape upload must not start if the
	// cover upload already failed.
	covers, err := session.uploadCoverPair(ctx, files, folder)
	if err != nil {
		session.rollback(ctx)
		return nil, apperr.UploadFailed("Error uploading cover and landscape images: "+err.Error(), err)
	}

	thumbnails, err := session.uploadThumbnails(ctx, files.Thumbnails, folder)
	if err != nil {
		session.rollback(ctx)
		return nil, apperr.UploadFailed("Error uploading thumbnails: "+err.Error(), err)
	}

	game := &Videogame{
		Title:       input.Title,
		Description: input.Description,
		Year:        year,
		Developers:  slice.Map(input.Developers, func(s string) DeveloperEntry { return DeveloperEntry{Developer: s} }),
		Platforms:   slice.Map(input.Platforms, func(s string) PlatformEntry { return PlatformEntry{Platform: s} }),
		Genres:      slice.Map(input.Genres, func(s string) GenreEntry { return GenreEntry{Genre: s} }),
		Covers:      *covers,
		Thumbnails:  thumbnails,
	}

	if err := service.repo.Create(ctx, game); err != nil {
		session.rollback(ctx)
		return nil, err
	}

	service.invalidateCache(ctx)
	service.logger.Info("videogame_created",
		slog.String("id", game.ID.Hex()),
		slog.String("title", game.Title),
		slog.Int("thumbnails", len(game.Thumbnails)),
	)
	return game, nil
}

// # Update

// Update applies a minimal diff to an existing record: unchanged fields never
// enter the write set, covers are replaced only as a pair, and new thumbnails
// are appended without disturbing existing ones.
func (service *Service) Update(ctx context.Context, id string, expectedVersion *int64, input Input, files Files) (*Videogame, error) {
	existing, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// A stale precondition must fail before any destroy or upload happens,
	// or a conflicting update would take the record's live assets with it.
	// The version filter inside repo.Update remains the race guard for
	// writes that slip between this check and persistence.
	if expectedVersion != nil && *expectedVersion != existing.Version {
		return nil, apperr.Conflict("Videogame was modified by another request")
	}

	input = normalizeInput(input)

	validator := &validate.Validator{}
	service.validateFields(validator, input)
	validator.Custom(FieldCover, files.HasAnyCover() && !files.HasCoverPair(),
		"Cover and landscape images must be replaced together")
	service.validateFiles(validator, files)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	patch := diffFields(existing, input)
	session := service.newUploadSession()
	folder := mediaFolderPrefix + slug.From(input.Title)

	if files.HasCoverPair() {
		// The stored pair is released first; only then are the replacements
		// uploaded. A failed replacement upload cannot restore the old
		// assets, so the whole update aborts before persistence.
		if err := service.destroyCovers(ctx, existing.Covers); err != nil {
			return nil, apperr.AssetDeleteFailed("Error deleting cover and landscape images: "+err.Error(), err)
		}

		covers, err := session.uploadCoverPair(ctx, files, folder)
		if err != nil {
			session.rollback(ctx)
			return nil, apperr.UploadFailed("Error uploading cover and landscape images: "+err.Error(), err)
		}
		patch.Covers = covers
	}

	if len(files.Thumbnails) > 0 {
		appended, err := session.uploadThumbnails(ctx, files.Thumbnails, folder)
		if err != nil {
			session.rollback(ctx)
			return nil, apperr.UploadFailed("Error uploading thumbnails: "+err.Error(), err)
		}

		merged := append(append([]Thumbnail{}, existing.Thumbnails...), appended...)
		patch.Thumbnails = &merged
	}

	if patch.IsEmpty() {
		return existing, nil
	}

	updated, err := service.repo.Update(ctx, id, expectedVersion, patch)
	if err != nil {
		session.rollback(ctx)
		return nil, err
	}

	service.invalidateCache(ctx)
	service.logger.Info("videogame_updated", slog.String("id", updated.ID.Hex()))
	return updated, nil
}

// # Delete

// Delete removes the record and then releases every remote asset it
// referenced: both covers sequentially, all thumbnails in parallel.
func (service *Service) Delete(ctx context.Context, id string, expectedVersion *int64) error {
	game, err := service.repo.Delete(ctx, id, expectedVersion)
	if err != nil {
		return err
	}

	service.invalidateCache(ctx)

	// The record is already gone; asset deletion failures from here on are
	// reported but cannot restore it.
	if err := service.destroyCovers(ctx, game.Covers); err != nil {
		return apperr.AssetDeleteFailed("Error deleting cover and landscape images: "+err.Error(), err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, thumbnail := range game.Thumbnails {
		group.Go(func() error {
			return service.gateway.Destroy(groupCtx, thumbnail.PublicID)
		})
	}
	if err := group.Wait(); err != nil {
		return apperr.AssetDeleteFailed("Error deleting thumbnails: "+err.Error(), err)
	}

	service.logger.Warn("videogame_deleted",
		slog.String("id", game.ID.Hex()),
		slog.String("title", game.Title),
	)
	return nil
}

// DeleteThumbnail removes one thumbnail: remote asset first, then the record
// entry.
func (service *Service) DeleteThumbnail(ctx context.Context, id, thumbnailID string) error {
	game, err := service.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	index := -1
	for i, thumbnail := range game.Thumbnails {
		if thumbnail.ID.Hex() == thumbnailID {
			index = i
			break
		}
	}
	if index == -1 {
		return apperr.NotFound("Thumbnail")
	}

	if err := service.gateway.Destroy(ctx, game.Thumbnails[index].PublicID); err != nil {
		return apperr.AssetDeleteFailed("Error deleting thumbnail: "+err.Error(), err)
	}

	remaining := append(append([]Thumbnail{}, game.Thumbnails[:index]...), game.Thumbnails[index+1:]...)
	if _, err := service.repo.Update(ctx, id, nil, Patch{Thumbnails: &remaining}); err != nil {
		return err
	}

	service.invalidateCache(ctx)
	service.logger.Info("thumbnail_deleted",
		slog.String("id", id),
		slog.String("thumbnail_id", thumbnailID),
	)
	return nil
}

// # Validation

// validateFields runs the error-accumulating battery over the scalar and
// list fields. It never short-circuits: a submission with several problems
// reports all of them in one response.
func (service *Service) validateFields(validator *validate.Validator, input Input) {
	validator.
		Required(FieldTitle, input.Title).
		Required(FieldDescription, input.Description).
		Required(FieldYear, input.Year).
		RequiredList(FieldDevelopers, input.Developers).
		RequiredList(FieldPlatforms, input.Platforms).
		RequiredList(FieldGenres, input.Genres)

	if input.Year != "" {
		if _, err := strconv.Atoi(strings.TrimSpace(input.Year)); err != nil {
			validator.Custom(FieldYear, true, "Invalid data type in Year. Expected number.")
		}
	}

	validator.
		StringsOnly(FieldDevelopers, input.Developers).
		StringsOnly(FieldPlatforms, input.Platforms).
		StringsOnly(FieldGenres, input.Genres)
}

// validateFiles checks every submitted file against the image policy before
// any upload is attempted. Thumbnail violations carry the original filename
// so the client can tell which file was rejected.
func (service *Service) validateFiles(validator *validate.Validator, files Files) {
	if files.Cover != nil {
		validator.Custom(FieldCover, !service.policy.AllowedExtension(service.policy.Extension(files.Cover.Name)),
			"Invalid cover type. Only JPG, PNG, and WebP images are allowed.")
		validator.Custom(FieldCover, service.policy.ExceedsLimit(media.SizeInMB(files.Cover.Size)),
			fmt.Sprintf("Cover size exceeds the maximum allowed (%gMB).", service.policy.MaxSizeMB))
	}

	if files.Landscape != nil {
		validator.Custom(FieldLandscape, !service.policy.AllowedExtension(service.policy.Extension(files.Landscape.Name)),
			"Invalid landscape type. Only JPG, PNG, and WebP images are allowed.")
		validator.Custom(FieldLandscape, service.policy.ExceedsLimit(media.SizeInMB(files.Landscape.Size)),
			fmt.Sprintf("Landscape size exceeds the maximum allowed (%gMB).", service.policy.MaxSizeMB))
	}

	for _, thumbnail := range files.Thumbnails {
		validator.Custom(FieldThumbnails, !service.policy.AllowedExtension(service.policy.Extension(thumbnail.Name)),
			fmt.Sprintf("Invalid thumbnail type (%s). Only JPG, PNG, and WebP images are allowed.", thumbnail.Name))
		validator.Custom(FieldThumbnails, service.policy.ExceedsLimit(media.SizeInMB(thumbnail.Size)),
			fmt.Sprintf("Thumbnail size (%s) exceeds the maximum allowed (%gMB).", thumbnail.Name, service.policy.MaxSizeMB))
	}
}

// # Diffing

// normalizeInput trims scalar fields so whitespace-only submissions are
// treated as empty.
func normalizeInput(input Input) Input {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Year = strings.TrimSpace(input.Year)
	return input
}

// diffFields computes the minimal field write set: a field enters the patch
// only when the submitted value differs from the stored one. List fields
// compare elementwise so re-submitting an identical list is a no-op.
func diffFields(existing *Videogame, input Input) Patch {
	patch := Patch{}

	if input.Title != existing.Title {
		patch.Title = pointer.To(input.Title)
	}
	if input.Description != existing.Description {
		patch.Description = pointer.To(input.Description)
	}
	if year, err := strconv.Atoi(input.Year); err == nil && year != existing.Year {
		patch.Year = pointer.To(year)
	}

	if !slice.Equal(input.Developers, existing.DeveloperNames()) {
		patch.Developers = slice.Map(input.Developers, func(s string) DeveloperEntry { return DeveloperEntry{Developer: s} })
	}
	if !slice.Equal(input.Platforms, existing.PlatformNames()) {
		patch.Platforms = slice.Map(input.Platforms, func(s string) PlatformEntry { return PlatformEntry{Platform: s} })
	}
	if !slice.Equal(input.Genres, existing.GenreNames()) {
		patch.Genres = slice.Map(input.Genres, func(s string) GenreEntry { return GenreEntry{Genre: s} })
	}

	return patch
}

// # Upload Session

// uploadSession tracks every asset uploaded within one request so that a
// later failure in the same request can issue compensating destroys instead
// of leaking remote storage.
type uploadSession struct {
	gateway media.Gateway
	logger  *slog.Logger

	mu       sync.Mutex
	uploaded []string // public IDs, in upload order
}

func (service *Service) newUploadSession() *uploadSession {
	return &uploadSession{gateway: service.gateway, logger: service.logger}
}

// upload pushes one staged file and removes its local temp copy on success.
// Temp files of failed uploads are left for the janitor.
func (session *uploadSession) upload(ctx context.Context, file *upload.File, folder string) (*media.Asset, error) {
	asset, err := session.gateway.Upload(ctx, file.TempPath, folder)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	session.uploaded = append(session.uploaded, asset.PublicID)
	session.mu.Unlock()

	if removeErr := os.Remove(file.TempPath); removeErr != nil {
		session.logger.Warn("temp_file_remove_failed",
			slog.String("path", file.TempPath),
			slog.Any("error", removeErr),
		)
	}
	return asset, nil
}

// uploadCoverPair uploads cover then landscape, strictly in that order.
func (session *uploadSession) uploadCoverPair(ctx context.Context, files Files, folder string) (*Covers, error) {
	cover, err := session.upload(ctx, files.Cover, folder)
	if err != nil {
		return nil, err
	}

	landscape, err := session.upload(ctx, files.Landscape, folder)
	if err != nil {
		return nil, err
	}

	return &Covers{Cover: *cover, Landscape: *landscape}, nil
}

// uploadThumbnails uploads all thumbnails concurrently and joins the results
// by origin index, never by completion order.
func (session *uploadSession) uploadThumbnails(ctx context.Context, files []*upload.File, folder string) ([]Thumbnail, error) {
	if len(files) == 0 {
		return nil, nil
	}

	assets := make([]*media.Asset, len(files))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, file := range files {
		group.Go(func() error {
			asset, err := session.upload(groupCtx, file, folder)
			if err != nil {
				return err
			}
			assets[i] = asset
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	thumbnails := make([]Thumbnail, len(assets))
	for i, asset := range assets {
		thumbnails[i] = Thumbnail{
			ID:       bson.NewObjectID(),
			URL:      asset.URL,
			PublicID: asset.PublicID,
		}
	}
	return thumbnails, nil
}

// rollback destroys every asset this session uploaded. Best-effort: a failed
// destroy is logged and skipped, since the request is already failing.
func (session *uploadSession) rollback(ctx context.Context) {
	session.mu.Lock()
	uploaded := session.uploaded
	session.uploaded = nil
	session.mu.Unlock()

	for _, publicID := range uploaded {
		if err := session.gateway.Destroy(ctx, publicID); err != nil {
			session.logger.Error("upload_rollback_failed",
				slog.String("public_id", publicID),
				slog.Any("error", err),
			)
		}
	}
}

// # Shared Helpers

// destroyCovers releases the stored cover pair, in order.
func (service *Service) destroyCovers(ctx context.Context, covers Covers) error {
	if err := service.gateway.Destroy(ctx, covers.Cover.PublicID); err != nil {
		return err
	}
	return service.gateway.Destroy(ctx, covers.Landscape.PublicID)
}

func (service *Service) invalidateCache(ctx context.Context) {
	if service.cache != nil {
		service.cache.Invalidate(ctx)
	}
}
