package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/job"
)

// HandleJob processes a search index build job
func (m *Manager) HandleJob(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
	var params job.IndexParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return fmt.Errorf("unmarshal params: %w", err)
	}

	updateProgress(0.1)
	if err := m.EnsureIndexesForVideo(params.VideoID); err != nil {
		return err
	}
	updateProgress(1.0)
	return nil
}
