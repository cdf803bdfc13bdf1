package storage

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaFile  MediaKind = "file"
)

const (
	MaxImageBytes int64 = 20 << 20
	MaxVideoBytes int64 = 80 << 20
)

var ErrUnsupportedMedia = errors.New("only images and videos are supported")

// TooLargeError reports an upload over its kind's size cap.
type TooLargeError struct {
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file too large, max %dMB", e.Limit>>20)
}

func DetectMediaKind(mime string) MediaKind {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return MediaImage
	case strings.HasPrefix(mime, "video/"):
		return MediaVideo
	}
	return MediaFile
}

// ValidateMedia checks type and size before anything leaves the process.
func ValidateMedia(mime string, size int64) (MediaKind, error) {
	kind := DetectMediaKind(mime)
	limit := MaxImageBytes
	switch kind {
	case MediaVideo:
		limit = MaxVideoBytes
	case MediaFile:
		return kind, ErrUnsupportedMedia
	}
	if size > limit {
		return kind, &TooLargeError{Limit: limit}
	}
	return kind, nil
}

// ObjectPath is where a post attachment lives: <owner>/<unix-ms>-<filename>.
func ObjectPath(ownerID string, now time.Time, filename string) string {
	return fmt.Sprintf("%s/%d-%s", ownerID, now.UnixMilli(), cleanFilename(filename))
}

// AdObjectPath keeps only the extension of the uploaded name.
func AdObjectPath(ownerID string, now time.Time, filename string) string {
	ext := strings.TrimPrefix(path.Ext(cleanFilename(filename)), ".")
	if ext == "" {
		ext = "bin"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("ads/%s/%d-%s.%s", ownerID, now.UnixMilli(), suffix, ext)
}

func cleanFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 0x20, r == '/', r == '?', r == '#', r == '%':
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}
