package transfer

import (
	"path/filepath"
	"strings"

	"github.com/pelicanml/pelican/internal/api"
)

// Source is a push input classified by content type. The set of
// implementations is closed: a file is either a video container or a
// static item; each kind decides the upload items it produces.
type Source interface {
	// Items expands the source into upload items. frameRate is only
	// meaningful for video sources.
	Items(frameRate float64) []api.UploadItem
}

// ImageSource is any non-video file. It uploads as a single static item;
// the frame rate never applies.
type ImageSource struct {
	Path string
}

func (s ImageSource) Items(_ float64) []api.UploadItem {
	return []api.UploadItem{{
		Path: s.Path,
		Name: filepath.Base(s.Path),
		Type: api.ItemImage,
	}}
}

// VideoSource is a video container. Its upload item carries the frame
// rate so the server's extraction job splits the container into frames
// at that rate once the bytes arrive; frame counts are unknowable before
// the container is decoded, so the expansion itself is server-side.
type VideoSource struct {
	Path string
}

func (s VideoSource) Items(frameRate float64) []api.UploadItem {
	return []api.UploadItem{{
		Path:      s.Path,
		Name:      filepath.Base(s.Path),
		Type:      api.ItemVideo,
		FrameRate: frameRate,
	}}
}

var videoExtensions = map[string]bool{
	".avi":  true,
	".mkv":  true,
	".mov":  true,
	".mp4":  true,
	".webm": true,
}

// Classify tags a path as a video or a static item by extension.
func Classify(path string) Source {
	if videoExtensions[strings.ToLower(filepath.Ext(path))] {
		return VideoSource{Path: path}
	}
	return ImageSource{Path: path}
}
