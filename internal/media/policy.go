// Copyright (c) 2026 Ludex. All rights reserved.

package media

import "strings"

// Policy holds the image acceptance rules, injected from configuration so the
// service stays testable with an explicit policy instead of ambient state.
//
// Every file is checked against the policy before any upload call is issued —
// validation is fully front-loaded so uploads are never attempted for
// rejected files.
type Policy struct {
	// AllowedExtensions is the lower-cased allow-list, dots included
	// (e.g. ".jpg", ".webp").
	AllowedExtensions []string

	// MaxSizeMB is the per-file size ceiling in megabytes.
	MaxSizeMB float64
}

// Extension returns the substring from the last '.' (inclusive), lower-cased,
// or "" if the filename has no extension.
func (Policy) Extension(filename string) string {
	dot := strings.LastIndex(filename, ".")
	if dot == -1 {
		return ""
	}
	return strings.ToLower(filename[dot:])
}

// AllowedExtension reports whether ext is on the allow-list.
func (p Policy) AllowedExtension(ext string) bool {
	for _, allowed := range p.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ExceedsLimit reports whether a size in megabytes is over the ceiling.
func (p Policy) ExceedsLimit(sizeMB float64) bool {
	return sizeMB > p.MaxSizeMB
}

// SizeInMB converts a byte count to megabytes.
func SizeInMB(byteCount int64) float64 {
	return float64(byteCount) / (1024 * 1024)
}
