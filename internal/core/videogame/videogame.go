// Copyright (c) 2026 Ludex. All rights reserved.

/*
Package videogame implements the catalog's core entity lifecycle: validation,
image upload orchestration against the media host, and persistence in the
document store.

Architecture:

  - videogame.go: Entity and persisted document shape.
  - service.go / service_query.go: Orchestration (the only layer with
    non-trivial sequencing and partial-failure handling).
  - store.go / store_mongo.go: Repository boundary and MongoDB adapter.
  - http.go: chi handler set, multipart parsing, one-or-many normalization.
*/
package videogame

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ludex-app/ludex/internal/media"
	"github.com/ludex-app/ludex/pkg/slice"
)

// Videogame is the catalog entity.
//
// Multi-valued fields are stored as sequences of single-field subdocuments
// (e.g. developers: [{developer: "id Software"}]), preserving submission
// order. Both covers are required and always replaced together; thumbnails
// are individually addable and removable.
type Videogame struct {
	ID          bson.ObjectID    `bson:"_id,omitempty" json:"_id"`
	Title       string           `bson:"title"         json:"title"`
	Description string           `bson:"description"   json:"description"`
	Developers  []DeveloperEntry `bson:"developers"    json:"developers"`
	Platforms   []PlatformEntry  `bson:"platforms"     json:"platforms"`
	Genres      []GenreEntry     `bson:"genres"        json:"genres"`
	Year        int              `bson:"year"          json:"year"`
	Covers      Covers           `bson:"covers"        json:"covers"`
	Thumbnails  []Thumbnail      `bson:"thumbnails"    json:"thumbnails"`

	// Version supports optimistic concurrency: it is surfaced as an ETag and
	// accepted back via If-Match on mutating calls.
	Version int64 `bson:"version" json:"version"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DeveloperEntry is one element of the ordered developers sequence.
type DeveloperEntry struct {
	Developer string `bson:"developer" json:"developer"`
}

// PlatformEntry is one element of the ordered platforms sequence.
type PlatformEntry struct {
	Platform string `bson:"platform" json:"platform"`
}

// GenreEntry is one element of the ordered genres sequence.
type GenreEntry struct {
	Genre string `bson:"genre" json:"genre"`
}

// Covers holds the two required cover images. Created together, replaced
// together, never independently.
type Covers struct {
	Cover     media.Asset `bson:"cover"     json:"cover"`
	Landscape media.Asset `bson:"landscape" json:"landscape"`
}

// Thumbnail is one gallery image. Its document ID is the local handle used
// by the delete-thumbnail endpoint; PublicID is the remote deletion handle.
type Thumbnail struct {
	ID       bson.ObjectID `bson:"_id"       json:"_id"`
	URL      string        `bson:"thumbnail" json:"thumbnail"`
	PublicID string        `bson:"public_id" json:"public_id"`
}

// DeveloperNames flattens the developers sequence to its scalar values.
func (v *Videogame) DeveloperNames() []string {
	return slice.Map(v.Developers, func(e DeveloperEntry) string { return e.Developer })
}

// PlatformNames flattens the platforms sequence to its scalar values.
func (v *Videogame) PlatformNames() []string {
	return slice.Map(v.Platforms, func(e PlatformEntry) string { return e.Platform })
}

// GenreNames flattens the genres sequence to its scalar values.
func (v *Videogame) GenreNames() []string {
	return slice.Map(v.Genres, func(e GenreEntry) string { return e.Genre })
}

// Form field identifiers shared by validation and HTTP parsing.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldYear        = "year"
	FieldDevelopers  = "developers"
	FieldPlatforms   = "platforms"
	FieldGenres      = "genres"
	FieldCover       = "cover"
	FieldLandscape   = "landscape"
	FieldThumbnails  = "thumbnails"
)
