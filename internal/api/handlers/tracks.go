package handlers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/lang"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/pipeline"
)

type TracksHandler struct {
	vttPath string
}

func NewTracksHandler(vttPath string) *TracksHandler {
	return &TracksHandler{vttPath: vttPath}
}

// List returns the produced caption tracks for a video, from its manifest
func (h *TracksHandler) List(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")
	if videoID == "" {
		jsonError(w, "missing video ID", http.StatusBadRequest)
		return
	}

	manifest, err := pipeline.ReadManifest(h.vttPath, videoID)
	if err != nil {
		if os.IsNotExist(err) {
			jsonError(w, "video not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to read manifest", http.StatusInternalServerError)
		return
	}

	tracks := make([]trackEntry, 0, len(manifest.Langs))
	for _, code := range manifest.Langs {
		tracks = append(tracks, trackEntry{
			Lang:  code,
			Label: lang.Name(code),
			URL:   fmt.Sprintf("/vtts/%s.%s.vtt", videoID, code),
		})
	}

	jsonResponse(w, map[string]interface{}{
		"video_id":   videoID,
		"media_file": manifest.MediaFile,
		"tracks":     tracks,
	}, http.StatusOK)
}
