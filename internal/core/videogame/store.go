// Copyright (c) 2026 Ludex. All rights reserved.

package videogame

import "context"

// Sort names a field from the closed sortable set and a direction.
// Field validation happens in the service; repositories receive only
// recognized fields.
type Sort struct {
	Field      string
	Descending bool
}

// SearchFilter is the parsed, validated search parameter set.
//
// Title constrains the result with AND; the remaining populated fields form
// an OR-group (a record matches if any one of them matches). String fields
// match case-insensitively as substrings against their nested scalar;
// Year matches by exact equality.
type SearchFilter struct {
	Title     string
	Developer string
	Platform  string
	Genre     string
	Year      *int
}

// IsEmpty reports whether no recognized parameter was supplied.
func (f SearchFilter) IsEmpty() bool {
	return f.Title == "" && f.Developer == "" && f.Platform == "" && f.Genre == "" && f.Year == nil
}

// Patch is the minimal write set computed by the update flow. Nil fields are
// left untouched in the stored document.
type Patch struct {
	Title       *string
	Description *string
	Year        *int
	Developers  []DeveloperEntry
	Platforms   []PlatformEntry
	Genres      []GenreEntry
	Covers      *Covers

	// Thumbnails replaces the whole sequence when non-nil. The service
	// computes the full new list (existing plus appended, or with one entry
	// removed); the store never merges.
	Thumbnails *[]Thumbnail
}

// IsEmpty reports whether the patch would not change the stored document.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Year == nil &&
		p.Developers == nil && p.Platforms == nil && p.Genres == nil &&
		p.Covers == nil && p.Thumbnails == nil
}

// Repository is the persistence boundary for the catalog.
//
// Mutating operations take an optional expected version: when non-nil, a
// stored record with a different version fails with a CONFLICT error and no
// write occurs. A nil expected version preserves last-write-wins.
type Repository interface {
	List(ctx context.Context, sort Sort) ([]*Videogame, error)
	Search(ctx context.Context, filter SearchFilter) ([]*Videogame, error)
	Get(ctx context.Context, id string) (*Videogame, error)
	Create(ctx context.Context, v *Videogame) error
	Update(ctx context.Context, id string, expectedVersion *int64, patch Patch) (*Videogame, error)

	// Delete removes the record and returns it, so callers can release the
	// remote image assets it referenced.
	Delete(ctx context.Context, id string, expectedVersion *int64) (*Videogame, error)
}
