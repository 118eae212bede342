// Copyright (c) 2026 Ludex. All rights reserved.

package media

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryGateway is the production [Gateway] backed by Cloudinary.
type CloudinaryGateway struct {
	client *cloudinary.Cloudinary
	logger *slog.Logger
}

// NewCloudinaryGateway builds the gateway from explicit credentials.
func NewCloudinaryGateway(cloudName, apiKey, apiSecret string, logger *slog.Logger) (*CloudinaryGateway, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("media: failed to initialize cloudinary client: %w", err)
	}

	return &CloudinaryGateway{client: client, logger: logger}, nil
}

// Upload pushes the local file into the given Cloudinary folder.
func (gateway *CloudinaryGateway) Upload(ctx context.Context, localPath, folder string) (*Asset, error) {
	result, err := gateway.client.Upload.Upload(ctx, localPath, uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return nil, fmt.Errorf("media: upload failed: %w", err)
	}

	// The SDK reports some API-level rejections through the response body
	// rather than the error return.
	if result.Error.Message != "" {
		return nil, fmt.Errorf("media: upload rejected: %s", result.Error.Message)
	}

	gateway.logger.Debug("media_asset_uploaded",
		slog.String("public_id", result.PublicID),
		slog.Int("bytes", result.Bytes),
	)

	return &Asset{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
	}, nil
}

// Destroy removes a previously uploaded asset by its public ID.
func (gateway *CloudinaryGateway) Destroy(ctx context.Context, publicID string) error {
	result, err := gateway.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("media: destroy failed for %q: %w", publicID, err)
	}

	// Cloudinary answers "not found" with a 200 and Result != "ok"; treat a
	// missing asset as already deleted rather than a failure.
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("media: destroy rejected for %q: %s", publicID, result.Result)
	}

	gateway.logger.Debug("media_asset_destroyed", slog.String("public_id", publicID))
	return nil
}
