package job

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/db"
)

func newQueue(t *testing.T) *JobQueue {
	t.Helper()
	database, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	q := NewJobQueue(database.DB())
	t.Cleanup(q.Stop)
	return q
}

func waitForStatus(t *testing.T, q *JobQueue, id string, want JobStatus) *Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		j, err := q.GetJob(id)
		if err != nil {
			t.Fatalf("GetJob failed: %v", err)
		}
		if j.Status == want {
			return j
		}
		time.Sleep(10 * time.Millisecond)
	}
	j, _ := q.GetJob(id)
	t.Fatalf("job %s never reached %s (last status: %s, error: %s)", id, want, j.Status, j.Error)
	return nil
}

func TestEnqueueAndComplete(t *testing.T) {
	q := newQueue(t)

	var handled atomic.Int32
	q.RegisterHandler(JobGenerate, func(ctx context.Context, j *Job, updateProgress func(float64)) error {
		handled.Add(1)
		var p GenerateParams
		if err := json.Unmarshal(j.Params, &p); err != nil {
			return err
		}
		updateProgress(0.5)
		result, _ := json.Marshal(GenerateResult{VideoID: p.VideoID, Langs: []string{"en"}})
		j.Result = result
		return nil
	})

	j, err := q.Enqueue(JobGenerate, "clip.mp4", GenerateParams{VideoID: "vid1", Langs: "en"})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if j.Status != StatusPending {
		t.Errorf("new job status = %s, want %s", j.Status, StatusPending)
	}

	done := waitForStatus(t, q, j.ID, StatusCompleted)
	if handled.Load() != 1 {
		t.Errorf("handler ran %d times, want 1", handled.Load())
	}
	if done.Progress != 1.0 {
		t.Errorf("completed job progress = %v, want 1.0", done.Progress)
	}

	var result GenerateResult
	if err := json.Unmarshal(done.Result, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.VideoID != "vid1" || len(result.Langs) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestHandlerErrorFailsJob(t *testing.T) {
	q := newQueue(t)
	q.RegisterHandler(JobIndex, func(ctx context.Context, j *Job, updateProgress func(float64)) error {
		return errors.New("index build broke")
	})

	j, err := q.Enqueue(JobIndex, "clip.mp4", IndexParams{VideoID: "vid2"})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	failed := waitForStatus(t, q, j.ID, StatusFailed)
	if failed.Error != "index build broke" {
		t.Errorf("job error = %q", failed.Error)
	}
}

func TestRetryFailedJob(t *testing.T) {
	q := newQueue(t)

	var attempts atomic.Int32
	q.RegisterHandler(JobIndex, func(ctx context.Context, j *Job, updateProgress func(float64)) error {
		if attempts.Add(1) == 1 {
			return errors.New("transient")
		}
		return nil
	})

	j, err := q.Enqueue(JobIndex, "clip.mp4", IndexParams{VideoID: "vid3"})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	waitForStatus(t, q, j.ID, StatusFailed)

	if err := q.RetryJob(j.ID); err != nil {
		t.Fatalf("RetryJob failed: %v", err)
	}
	waitForStatus(t, q, j.ID, StatusCompleted)
	if attempts.Load() != 2 {
		t.Errorf("handler ran %d times, want 2", attempts.Load())
	}
}

func TestRetryRejectsCompletedJob(t *testing.T) {
	q := newQueue(t)
	q.RegisterHandler(JobIndex, func(ctx context.Context, j *Job, updateProgress func(float64)) error {
		return nil
	})

	j, err := q.Enqueue(JobIndex, "clip.mp4", IndexParams{VideoID: "vid4"})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	waitForStatus(t, q, j.ID, StatusCompleted)

	if err := q.RetryJob(j.ID); err == nil {
		t.Error("retrying a completed job should error")
	}
}

func TestListJobs(t *testing.T) {
	q := newQueue(t)

	if _, err := q.Enqueue(JobGenerate, "a.mp4", GenerateParams{VideoID: "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := q.Enqueue(JobIndex, "b.mp4", IndexParams{VideoID: "b"}); err != nil {
		t.Fatal(err)
	}

	jobs, err := q.ListJobs()
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(jobs) != 2 {
		t.Errorf("expected 2 jobs, got %d", len(jobs))
	}
}
