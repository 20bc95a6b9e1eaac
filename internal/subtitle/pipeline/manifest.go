package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Manifest is the per-video record of which language tracks were produced.
// Downstream indexing reads it to discover the track files.
type Manifest struct {
	VideoID   string   `json:"video_id"`
	MediaFile string   `json:"media_file"`
	Langs     []string `json:"langs"`
}

// ManifestPath returns the manifest location for a video under vttDir.
func ManifestPath(vttDir, videoID string) string {
	return filepath.Join(vttDir, videoID+".manifest.json")
}

// WriteManifest persists the manifest, overwriting any previous run's.
func WriteManifest(vttDir string, m Manifest) error {
	if m.Langs == nil {
		m.Langs = []string{}
	}
	if err := os.MkdirAll(vttDir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ManifestPath(vttDir, m.VideoID), data, 0644)
}

// ReadManifest loads the manifest for a video.
func ReadManifest(vttDir, videoID string) (*Manifest, error) {
	data, err := os.ReadFile(ManifestPath(vttDir, videoID))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
