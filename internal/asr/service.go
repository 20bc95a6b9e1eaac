package asr

import (
	"context"
	"fmt"
	"log"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/caption"
)

// Config selects and configures the ASR engine. Exactly one engine runs per
// process; resolving it is part of startup, and a misconfigured engine is a
// fatal configuration error rather than a per-call surprise.
type Config struct {
	Engine     string // "whisper-bin", "whisper.cpp" or "openai"
	ServerURL  string // whisper.cpp server base URL
	BinaryPath string // whisper CLI binary path
	ModelPath  string // whisper model file for the CLI binary
	OpenAIKey  string
}

// Service wraps the configured engine and applies the whole-file fallback.
type Service struct {
	engine Transcriber
}

// NewService validates the configuration and constructs the engine.
func NewService(cfg Config) (*Service, error) {
	var engine Transcriber

	switch cfg.Engine {
	case "whisper-bin":
		e, err := NewWhisperBinEngine(cfg.BinaryPath, cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		engine = e
	case "whisper.cpp":
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("whisper.cpp engine selected but no server URL configured")
		}
		engine = NewWhisperCppClient(cfg.ServerURL)
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("openai engine selected but no API key configured")
		}
		engine = NewOpenAIWhisperClient(cfg.OpenAIKey)
	default:
		return nil, fmt.Errorf("unknown ASR engine: %q", cfg.Engine)
	}

	log.Printf("[asr] using %s engine", engine.Name())
	return &Service{engine: engine}, nil
}

func (s *Service) Name() string {
	return s.engine.Name()
}

// Transcribe runs the engine. When the engine reports text but no segment
// boundaries, a single whole-file segment is synthesized so downstream
// tracks are never empty for media that did produce speech.
func (s *Service) Transcribe(ctx context.Context, req Request) (*Result, error) {
	res, err := s.engine.Transcribe(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(res.Segments) == 0 && res.Text != "" {
		res.Segments = []caption.Segment{{Start: 0.0, End: 0.01, Text: res.Text}}
	}
	return res, nil
}
