package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/db"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/search"
)

func TestLangs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/langs", nil)
	rec := httptest.NewRecorder()

	Langs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var langs map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &langs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(langs) != 12 {
		t.Errorf("expected 12 languages, got %d", len(langs))
	}
	if langs["en"] != "English" || langs["hi"] != "Hindi" {
		t.Errorf("unexpected language table: %v", langs)
	}
}

func newSearchHandler(t *testing.T) *SearchHandler {
	t.Helper()
	dir := t.TempDir()
	database, err := db.NewSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewSearchHandler(search.NewManager(database.DB(), filepath.Join(dir, "vtts")))
}

func TestSearchValidation(t *testing.T) {
	h := newSearchHandler(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"missing video_id", "/api/search?q=hello", http.StatusBadRequest},
		{"missing q", "/api/search?video_id=abc", http.StatusBadRequest},
		{"unsupported lang", "/api/search?video_id=abc&q=hello&lang=fr", http.StatusBadRequest},
		{"unknown video", "/api/search?video_id=abc&q=hello", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			h.Search(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestUploadRejectsNonMedia(t *testing.T) {
	h := NewUploadHandler(nil, nil, t.TempDir(), 1<<20)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("just text"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d (body: %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	h := NewUploadHandler(nil, nil, t.TempDir(), 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxxx")
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
