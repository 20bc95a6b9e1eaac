package asr

import (
	"context"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/caption"
)

// Request is the input for a transcription.
type Request struct {
	MediaPath string // absolute path to the media file
	Language  string // "auto" lets the engine detect
}

// Result is the output of a transcription: the ordered segment list plus
// whatever the engine reported about the audio.
type Result struct {
	Segments []caption.Segment
	Language string // detected or requested language
	Text     string // whole-file text, used when no segment boundaries exist
}

// Transcriber is the common interface for all ASR engines.
type Transcriber interface {
	// Transcribe converts a media file to timed text segments.
	Transcribe(ctx context.Context, req Request) (*Result, error)
	// Name returns the engine name.
	Name() string
}
