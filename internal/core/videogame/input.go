// Copyright (c) 2026 Ludex. All rights reserved.

package videogame

import "github.com/ludex-app/ludex/internal/platform/upload"

// Input is the submitted field set for create and update.
//
// Year arrives as the raw form string and is validated/parsed by the service.
// The three list fields are already normalized to the one-or-many shape by
// the HTTP boundary: a scalar submission becomes a singleton slice.
type Input struct {
	Title       string
	Description string
	Year        string
	Developers  []string
	Platforms   []string
	Genres      []string
}

// Files is the staged file set accompanying a create or update submission.
//
// Cover and Landscape are required on create and optional (but paired) on
// update; Thumbnails are always optional and preserve submission order.
type Files struct {
	Cover      *upload.File
	Landscape  *upload.File
	Thumbnails []*upload.File
}

// HasCoverPair reports whether both required cover files were submitted.
func (f Files) HasCoverPair() bool {
	return f.Cover != nil && f.Landscape != nil
}

// HasAnyCover reports whether at least one of the paired cover files was
// submitted (used to reject half-pair replacements on update).
func (f Files) HasAnyCover() bool {
	return f.Cover != nil || f.Landscape != nil
}
