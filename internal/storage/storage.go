// Package storage holds uploaded post media outside the document store.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaSink stores media blobs and hands back durable URLs for them.
type MediaSink interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	// DeleteIfExists removes the blob behind url. A missing blob is not an error.
	DeleteIfExists(ctx context.Context, url string) error
}

// ObjectKey names an upload "<unixmillis>-<random><ext>", keeping the
// original file extension.
func ObjectKey(originalName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%d%s", now.UnixMilli(), uuid.New().ID(), ext)
}

// ThumbnailKey derives the thumbnail object name from the media object name.
func ThumbnailKey(key string) string {
	return "thumb-" + strings.TrimSuffix(key, filepath.Ext(key)) + ".jpg"
}

// MediaKind classifies a declared content type. Only image/* and video/* are
// accepted.
func MediaKind(contentType string) (string, bool) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "video/"):
		return "video", true
	case strings.HasPrefix(ct, "image/"):
		return "image", true
	default:
		return "", false
	}
}
