package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/job"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/storage"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/pipeline"
)

type UploadHandler struct {
	pipe          *pipeline.Pipeline
	queue         *job.JobQueue
	uploadPath    string
	maxUploadSize int64
}

func NewUploadHandler(pipe *pipeline.Pipeline, queue *job.JobQueue, uploadPath string, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{
		pipe:          pipe,
		queue:         queue,
		uploadPath:    uploadPath,
		maxUploadSize: maxUploadSize,
	}
}

type trackEntry struct {
	Lang  string `json:"lang"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type uploadResponse struct {
	VideoID  string       `json:"video_id"`
	VideoURL string       `json:"video_url"`
	Tracks   []trackEntry `json:"tracks"`
}

type asyncUploadResponse struct {
	VideoID  string `json:"video_id"`
	VideoURL string `json:"video_url"`
	JobID    string `json:"job_id"`
}

// Upload accepts a media file, saves it under a fresh 8-char video ID, and
// runs the subtitle pipeline. With ?async=1 the run is queued as a job
// instead; otherwise the handler blocks until all tracks are written and
// only the index build happens in the background.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !storage.IsMediaContentType(contentType) && !storage.IsMediaFile(header.Filename) {
		jsonError(w, "please upload a video or audio file", http.StatusBadRequest)
		return
	}

	videoID := uuid.New().String()[:8]
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".mp4"
	}

	if err := os.MkdirAll(h.uploadPath, 0755); err != nil {
		jsonError(w, "failed to prepare upload directory", http.StatusInternalServerError)
		return
	}
	savePath := filepath.Join(h.uploadPath, videoID+ext)

	dst, err := os.Create(savePath)
	if err != nil {
		jsonError(w, "failed to save upload", http.StatusInternalServerError)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(savePath)
		jsonError(w, "failed to save upload", http.StatusInternalServerError)
		return
	}
	dst.Close()

	rawLangs := r.URL.Query().Get("langs")
	if rawLangs == "" {
		rawLangs = r.FormValue("langs")
	}

	if r.URL.Query().Get("async") == "1" {
		j, err := h.queue.Enqueue(job.JobGenerate, filepath.Base(savePath), job.GenerateParams{
			VideoID: videoID,
			Langs:   rawLangs,
		})
		if err != nil {
			jsonError(w, "failed to enqueue job: "+err.Error(), http.StatusInternalServerError)
			return
		}
		jsonResponse(w, asyncUploadResponse{
			VideoID:  videoID,
			VideoURL: "/uploads/" + filepath.Base(savePath),
			JobID:    j.ID,
		}, http.StatusAccepted)
		return
	}

	tracks, err := h.pipe.Generate(r.Context(), savePath, rawLangs, videoID)
	if err != nil {
		log.Printf("[upload] pipeline failed for %s: %v", videoID, err)
		jsonError(w, fmt.Sprintf("subtitle generation failed: %v", err), http.StatusInternalServerError)
		return
	}

	// Fire-and-forget: index building is not awaited
	if _, err := h.queue.Enqueue(job.JobIndex, filepath.Base(savePath), job.IndexParams{VideoID: videoID}); err != nil {
		log.Printf("[upload] failed to enqueue index job for %s: %v", videoID, err)
	}

	resp := uploadResponse{
		VideoID:  videoID,
		VideoURL: "/uploads/" + filepath.Base(savePath),
		Tracks:   make([]trackEntry, 0, len(tracks)),
	}
	for _, t := range tracks {
		resp.Tracks = append(resp.Tracks, trackEntry{
			Lang:  t.Lang,
			Label: t.Label,
			URL:   "/vtts/" + t.File,
		})
	}

	jsonResponse(w, resp, http.StatusOK)
}
