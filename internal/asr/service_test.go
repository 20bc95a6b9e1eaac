package asr

import (
	"context"
	"errors"
	"testing"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/caption"
)

type mockEngine struct {
	transcribeFunc func(ctx context.Context, req Request) (*Result, error)
}

func (m *mockEngine) Transcribe(ctx context.Context, req Request) (*Result, error) {
	return m.transcribeFunc(ctx, req)
}

func (m *mockEngine) Name() string { return "mock" }

func TestServiceWholeFileFallback(t *testing.T) {
	s := &Service{engine: &mockEngine{transcribeFunc: func(ctx context.Context, req Request) (*Result, error) {
		return &Result{Text: "all the speech at once", Language: "en"}, nil
	}}}

	res, err := s.Transcribe(context.Background(), Request{MediaPath: "clip.mp4"})
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if len(res.Segments) != 1 {
		t.Fatalf("expected a single synthesized segment, got %d", len(res.Segments))
	}
	seg := res.Segments[0]
	if seg.Start != 0.0 || seg.End != 0.01 || seg.Text != "all the speech at once" {
		t.Errorf("unexpected fallback segment: %+v", seg)
	}
}

func TestServicePreservesSegments(t *testing.T) {
	segments := []caption.Segment{
		{Start: 0.0, End: 1.5, Text: "hello"},
		{Start: 1.5, End: 3.0, Text: "world"},
	}
	s := &Service{engine: &mockEngine{transcribeFunc: func(ctx context.Context, req Request) (*Result, error) {
		return &Result{Segments: segments, Text: "hello world"}, nil
	}}}

	res, err := s.Transcribe(context.Background(), Request{MediaPath: "clip.mp4"})
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if len(res.Segments) != 2 {
		t.Errorf("segments should pass through untouched, got %d", len(res.Segments))
	}
}

func TestServicePropagatesEngineError(t *testing.T) {
	s := &Service{engine: &mockEngine{transcribeFunc: func(ctx context.Context, req Request) (*Result, error) {
		return nil, errors.New("model crashed")
	}}}

	if _, err := s.Transcribe(context.Background(), Request{MediaPath: "clip.mp4"}); err == nil {
		t.Fatal("expected engine error to propagate")
	}
}

func TestNewServiceValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown engine", Config{Engine: "carrier-pigeon"}},
		{"whisper.cpp without URL", Config{Engine: "whisper.cpp"}},
		{"openai without key", Config{Engine: "openai"}},
		{"whisper-bin with missing binary", Config{Engine: "whisper-bin", BinaryPath: "/nonexistent/whisper-cli"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewService(tt.cfg); err == nil {
				t.Error("expected a configuration error")
			}
		})
	}
}
