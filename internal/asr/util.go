package asr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/caption"
)

// extractAudio uses FFmpeg to extract audio as WAV 16kHz mono (required by whisper)
func extractAudio(ctx context.Context, mediaPath string) (string, error) {
	tmpFile, err := os.CreateTemp("", "asr-audio-*.wav")
	if err != nil {
		return "", err
	}
	tmpFile.Close()

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-i", mediaPath,
		"-vn", // no video
		"-acodec", "pcm_s16le",
		"-ar", "16000", // 16kHz
		"-ac", "1", // mono
		"-y", // overwrite
		tmpFile.Name(),
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("ffmpeg: %s: %w", string(output), err)
	}

	return tmpFile.Name(), nil
}

// extractAudioMP3 extracts audio as MP3 for upload-size-limited engines
func extractAudioMP3(ctx context.Context, mediaPath string) (string, error) {
	tmpFile, err := os.CreateTemp("", "asr-audio-*.mp3")
	if err != nil {
		return "", err
	}
	tmpFile.Close()

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-i", mediaPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-q:a", "4", // ~130kbps VBR
		"-y",
		tmpFile.Name(),
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("ffmpeg: %s: %w", string(output), err)
	}

	return tmpFile.Name(), nil
}

// resultFromVTT builds a Result out of a VTT response body. The plain text
// is kept so the whole-file fallback still works when the body has no cues.
func resultFromVTT(vtt, language string) *Result {
	segments := caption.ParseVTT(vtt)

	var texts []string
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}
	text := strings.Join(texts, " ")
	if text == "" {
		text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(vtt), "WEBVTT"))
	}

	return &Result{
		Segments: segments,
		Language: language,
		Text:     text,
	}
}
