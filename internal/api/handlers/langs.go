package handlers

import (
	"net/http"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/lang"
)

// Langs returns the supported language table (code → display name)
func Langs(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, lang.Supported, http.StatusOK)
}
