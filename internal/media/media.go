// Copyright (c) 2026 Ludex. All rights reserved.

/*
Package media defines the boundary to the external image host.

The catalog never stores image bytes itself: covers and thumbnails live on a
remote media host and the record store keeps only {url, public_id} references.
The public_id is the authoritative handle for deletion — losing it without
destroying the remote asset leaks storage.

Architecture:

  - Gateway: The interface the service orchestrates against (testable with fakes).
  - Cloudinary: The production adapter (cloudinary.go).
  - Policy: Front-loaded file acceptance rules (policy.go).
*/
package media

import "context"

// Asset is a remotely hosted image reference.
type Asset struct {
	// URL is the durable, publicly servable location of the image.
	URL string `json:"url" bson:"url"`

	// PublicID is the opaque handle required to destroy the asset later.
	PublicID string `json:"public_id" bson:"public_id"`
}

// Gateway uploads local files to the image host and destroys assets by their
// public ID.
type Gateway interface {
	// Upload pushes the file at localPath into the given remote folder and
	// returns the durable asset reference.
	Upload(ctx context.Context, localPath, folder string) (*Asset, error)

	// Destroy removes a previously uploaded asset by its public ID.
	Destroy(ctx context.Context, publicID string) error
}
