package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/lang"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/search"
)

type SearchHandler struct {
	index *search.Manager
}

func NewSearchHandler(index *search.Manager) *SearchHandler {
	return &SearchHandler{index: index}
}

// Search looks up a keyword in one video's caption track for one language
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		jsonError(w, "query parameter 'video_id' is required", http.StatusBadRequest)
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		jsonError(w, "query parameter 'q' is required", http.StatusBadRequest)
		return
	}

	code := strings.ToLower(r.URL.Query().Get("lang"))
	if code == "" {
		code = lang.Source
	}
	if !lang.IsSupported(code) {
		jsonError(w, "unsupported lang: "+code, http.StatusBadRequest)
		return
	}

	hits, err := h.index.Search(videoID, code, q)
	if err != nil {
		if errors.Is(err, search.ErrNotIndexed) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		jsonError(w, "search failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]interface{}{
		"video_id": videoID,
		"lang":     code,
		"q":        q,
		"hits":     hits,
	}, http.StatusOK)
}
