package job

import (
	"context"
	"encoding/json"
	"time"
)

// JobType represents the kind of job
type JobType string

const (
	JobGenerate JobType = "generate" // transcribe + translate + write tracks
	JobIndex    JobType = "index"    // build keyword search indexes
)

// JobStatus represents the current state of a job
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// Job represents a queued task (subtitle generation or index building)
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	Status      JobStatus       `json:"status"`
	FilePath    string          `json:"file_path"`
	Params      json.RawMessage `json:"params"`
	Progress    float64         `json:"progress"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// GenerateParams are parameters for a subtitle generation job. FilePath on
// the job carries the uploaded media filename.
type GenerateParams struct {
	VideoID string `json:"video_id"`
	Langs   string `json:"langs"` // raw comma-separated request, may be empty
}

// GenerateResult is the output of a successful generation job
type GenerateResult struct {
	VideoID string   `json:"video_id"`
	Langs   []string `json:"langs"` // languages actually produced
}

// IndexParams are parameters for a search index build job
type IndexParams struct {
	VideoID string `json:"video_id"`
}

// JobHandler processes a job. Implementations are provided by the pipeline
// and search packages.
type JobHandler func(ctx context.Context, job *Job, updateProgress func(float64)) error
