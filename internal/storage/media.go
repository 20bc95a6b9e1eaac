package storage

import (
	"path/filepath"
	"strings"
)

var mediaExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".avi": true, ".mov": true,
	".wmv": true, ".flv": true, ".webm": true, ".m4v": true,
	".ts": true, ".mpg": true, ".mpeg": true,
	".wav": true, ".mp3": true, ".m4a": true, ".flac": true,
	".ogg": true, ".aac": true,
}

// IsMediaFile reports whether name looks like an uploadable video or audio
// file by extension.
func IsMediaFile(name string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsMediaContentType reports whether an upload's declared content type is
// acceptable.
func IsMediaContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "video/") || strings.HasPrefix(contentType, "audio/")
}
