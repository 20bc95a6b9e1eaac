package asr

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

// WhisperBinEngine runs a local whisper.cpp CLI binary. The binary and
// model paths come from configuration and are validated at construction,
// so a missing install is a startup error rather than a mid-run surprise.
type WhisperBinEngine struct {
	binaryPath string
	modelPath  string
}

func NewWhisperBinEngine(binaryPath, modelPath string) (*WhisperBinEngine, error) {
	if binaryPath == "" {
		return nil, fmt.Errorf("whisper binary path not configured")
	}
	resolved, err := exec.LookPath(binaryPath)
	if err != nil {
		return nil, fmt.Errorf("whisper binary %q not found: %w", binaryPath, err)
	}
	if modelPath != "" {
		if _, err := os.Stat(modelPath); err != nil {
			return nil, fmt.Errorf("whisper model %q not found: %w", modelPath, err)
		}
	}
	return &WhisperBinEngine{binaryPath: resolved, modelPath: modelPath}, nil
}

func (e *WhisperBinEngine) Name() string {
	return "whisper-bin"
}

func (e *WhisperBinEngine) Transcribe(ctx context.Context, req Request) (*Result, error) {
	audioPath, err := extractAudio(ctx, req.MediaPath)
	if err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}
	defer os.Remove(audioPath)

	outDir, err := os.MkdirTemp("", "asr-out-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(outDir)
	outBase := filepath.Join(outDir, "transcript")

	args := []string{
		"-f", audioPath,
		"--output-vtt",
		"--output-file", outBase,
	}
	if e.modelPath != "" {
		args = append(args, "-m", e.modelPath)
	}
	if req.Language != "" && req.Language != "auto" {
		args = append(args, "-l", req.Language)
	}

	log.Printf("[asr] running %s on %s", e.binaryPath, audioPath)

	cmd := exec.CommandContext(ctx, e.binaryPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("whisper binary: %s: %w", string(output), err)
	}

	vtt, err := os.ReadFile(outBase + ".vtt")
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	return resultFromVTT(string(vtt), req.Language), nil
}
