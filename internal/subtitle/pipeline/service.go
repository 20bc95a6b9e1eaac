package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/job"
)

// Service adapts the pipeline to the job queue for async uploads. After a
// successful run it chains a fire-and-forget index job for the video.
type Service struct {
	pipe      *Pipeline
	uploadDir string
	queue     *job.JobQueue
}

func NewService(pipe *Pipeline, uploadDir string, queue *job.JobQueue) *Service {
	return &Service{pipe: pipe, uploadDir: uploadDir, queue: queue}
}

// HandleJob processes a subtitle generation job
func (s *Service) HandleJob(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
	var params job.GenerateParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return fmt.Errorf("unmarshal params: %w", err)
	}

	mediaPath := filepath.Join(s.uploadDir, j.FilePath)

	updateProgress(0.05)
	tracks, err := s.pipe.Generate(ctx, mediaPath, params.Langs, params.VideoID)
	if err != nil {
		return err
	}
	updateProgress(0.9)

	langs := make([]string, 0, len(tracks))
	for _, t := range tracks {
		langs = append(langs, t.Lang)
	}
	resultJSON, _ := json.Marshal(job.GenerateResult{
		VideoID: params.VideoID,
		Langs:   langs,
	})
	j.Result = resultJSON

	// Index building is the consumer's problem from here; don't wait on it.
	if _, err := s.queue.Enqueue(job.JobIndex, j.FilePath, job.IndexParams{VideoID: params.VideoID}); err != nil {
		log.Printf("[pipeline] failed to enqueue index job for %s: %v", params.VideoID, err)
	}

	updateProgress(1.0)
	return nil
}
