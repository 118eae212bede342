// Copyright (c) 2026 Ludex. All rights reserved.

/*
Package upload stages multipart file parts on local disk before they are
pushed to the media host.

The media host SDK uploads from a file path, so every submitted image is
first written to a temp directory. Files are removed by the service right
after a successful remote upload; files orphaned by aborted requests are
reaped by the background janitor.
*/
package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// File is a staged upload: the original client filename, its byte size, and
// the local temp path the media gateway reads from.
type File struct {
	Name     string
	Size     int64
	TempPath string
}

// Stager writes multipart file parts into a dedicated temp directory.
type Stager struct {
	dir    string
	logger *slog.Logger
}

// NewStager creates the temp directory if needed and returns a Stager.
func NewStager(dir string, logger *slog.Logger) (*Stager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: failed to create temp dir %q: %w", dir, err)
	}
	return &Stager{dir: dir, logger: logger}, nil
}

// Stage copies one multipart file part to the temp directory.
//
// The temp filename is a fresh UUID with the original extension preserved,
// so concurrent requests can never collide on disk.
func (stager *Stager) Stage(header *multipart.FileHeader) (*File, error) {
	part, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("upload: failed to open multipart file %q: %w", header.Filename, err)
	}
	defer part.Close()

	tempPath := filepath.Join(stager.dir, uuid.New().String()+strings.ToLower(filepath.Ext(header.Filename)))

	destination, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("upload: failed to create temp file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, part); err != nil {
		_ = os.Remove(tempPath)
		return nil, fmt.Errorf("upload: failed to write temp file: %w", err)
	}

	return &File{
		Name:     header.Filename,
		Size:     header.Size,
		TempPath: tempPath,
	}, nil
}

// StageAll stages every file part under the given form field, preserving
// submission order.
func (stager *Stager) StageAll(headers []*multipart.FileHeader) ([]*File, error) {
	var files []*File
	for _, header := range headers {
		file, err := stager.Stage(header)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

// # Janitor

// Janitor periodically removes temp files older than the TTL.
//
// Validation failures and aborted requests intentionally leave their staged
// files behind (the request path never cleans up files that were never
// uploaded); the janitor is the lifecycle that reaps them.
func (stager *Stager) Janitor(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stager.sweep(ttl)
		case <-ctx.Done():
			return
		}
	}
}

// sweep removes every regular file in the temp directory older than ttl.
func (stager *Stager) sweep(ttl time.Duration) {
	entries, err := os.ReadDir(stager.dir)
	if err != nil {
		stager.logger.Error("upload_janitor_scan_failed", slog.Any("error", err))
		return
	}

	now := time.Now()
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if now.Sub(info.ModTime()) > ttl {
			if err := os.Remove(filepath.Join(stager.dir, entry.Name())); err == nil {
				removed++
			}
		}
	}

	if removed > 0 {
		stager.logger.Info("upload_janitor_swept", slog.Int("removed", removed))
	}
}
