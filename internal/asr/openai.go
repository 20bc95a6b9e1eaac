package asr

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/caption"
)

const maxOpenAIFileSize = 25 * 1024 * 1024 // 25MB API limit

// OpenAIWhisperClient uses the OpenAI Whisper API
type OpenAIWhisperClient struct {
	client *openai.Client
}

func NewOpenAIWhisperClient(apiKey string) *OpenAIWhisperClient {
	return &OpenAIWhisperClient{client: openai.NewClient(apiKey)}
}

func (c *OpenAIWhisperClient) Name() string {
	return "openai"
}

func (c *OpenAIWhisperClient) Transcribe(ctx context.Context, req Request) (*Result, error) {
	// MP3 keeps the upload under the API size limit far longer than WAV
	audioPath, err := extractAudioMP3(ctx, req.MediaPath)
	if err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}
	defer os.Remove(audioPath)

	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, err
	}

	if info.Size() > maxOpenAIFileSize {
		return c.transcribeChunked(ctx, audioPath, req.Language)
	}

	return c.transcribeSingle(ctx, audioPath, req.Language, 0)
}

// transcribeSingle transcribes one audio file, shifting all timestamps by
// offsetSeconds so chunked results line up with the original media.
func (c *OpenAIWhisperClient) transcribeSingle(ctx context.Context, audioPath, language string, offsetSeconds float64) (*Result, error) {
	apiReq := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if language != "" && language != "auto" {
		apiReq.Language = language
	}

	log.Printf("[asr-openai] sending request to OpenAI API (audio: %s)", audioPath)

	resp, err := c.client.CreateTranscription(ctx, apiReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API request: %w", err)
	}

	segments := make([]caption.Segment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		segments = append(segments, caption.Segment{
			Start: seg.Start + offsetSeconds,
			End:   seg.End + offsetSeconds,
			Text:  strings.TrimSpace(seg.Text),
		})
	}

	detected := resp.Language
	if detected == "" {
		detected = language
	}

	return &Result{
		Segments: segments,
		Language: detected,
		Text:     strings.TrimSpace(resp.Text),
	}, nil
}

// transcribeChunked splits oversized audio into 10-minute chunks and
// transcribes each, offsetting segment times by the chunk position.
func (c *OpenAIWhisperClient) transcribeChunked(ctx context.Context, audioPath, language string) (*Result, error) {
	chunkDir, err := os.MkdirTemp("", "asr-chunks-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(chunkDir)

	chunkPattern := filepath.Join(chunkDir, "chunk_%03d.mp3")
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-i", audioPath,
		"-f", "segment",
		"-segment_time", "600", // 10 minutes
		"-c:a", "libmp3lame",
		"-q:a", "4",
		"-y",
		chunkPattern,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg split: %s: %w", string(output), err)
	}

	entries, err := os.ReadDir(chunkDir)
	if err != nil {
		return nil, err
	}

	var chunks []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".mp3") {
			chunks = append(chunks, filepath.Join(chunkDir, e.Name()))
		}
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no audio chunks generated")
	}

	combined := &Result{Language: language}
	var texts []string
	for i, chunk := range chunks {
		res, err := c.transcribeSingle(ctx, chunk, language, float64(i)*600.0)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		combined.Segments = append(combined.Segments, res.Segments...)
		if res.Text != "" {
			texts = append(texts, res.Text)
		}
		if res.Language != "" {
			combined.Language = res.Language
		}
	}
	combined.Text = strings.Join(texts, " ")

	return combined, nil
}
