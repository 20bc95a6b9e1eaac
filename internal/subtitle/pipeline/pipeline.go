package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/asr"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/lang"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/caption"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/translate"
)

// Track describes one produced caption file for a (video, language) pair.
type Track struct {
	Lang  string `json:"lang"`
	Label string `json:"label"`
	File  string `json:"file"`
}

// Pipeline turns one media file plus a requested language set into a set of
// caption tracks and a manifest. One run transcribes exactly once and fans
// the segments out per language, sequentially.
type Pipeline struct {
	engine  asr.Transcriber
	batcher *translate.Batcher
	vttDir  string
}

func New(engine asr.Transcriber, batcher *translate.Batcher, vttDir string) *Pipeline {
	return &Pipeline{engine: engine, batcher: batcher, vttDir: vttDir}
}

// TrackPath returns the deterministic on-disk path for a (video, language)
// pair.
func (p *Pipeline) TrackPath(videoID, code string) string {
	return filepath.Join(p.vttDir, fmt.Sprintf("%s.%s.vtt", videoID, code))
}

// Run transcribes mediaPath once and writes one track per requested
// language, in order, plus the manifest. Translation failure for a language
// degrades to writing the source-language text under that language's track
// path; ASR failure or unreadable media aborts the run.
func (p *Pipeline) Run(ctx context.Context, mediaPath string, langs []string, videoID string) (map[string]string, error) {
	if _, err := os.Stat(mediaPath); err != nil {
		return nil, fmt.Errorf("media file: %w", err)
	}
	if videoID == "" {
		videoID = strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	}

	res, err := p.engine.Transcribe(ctx, asr.Request{MediaPath: mediaPath, Language: "auto"})
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	base := res.Segments
	log.Printf("[pipeline] transcribed %s: %d segments, building %d tracks", filepath.Base(mediaPath), len(base), len(langs))

	produced := make(map[string]string)
	var producedLangs []string
	for _, code := range langs {
		if !lang.IsSupported(code) {
			continue
		}

		segments := base
		if code != lang.Source {
			translated, err := p.batcher.TranslateSegments(ctx, base, code)
			if err != nil {
				// Soft failure: a source-language track under this
				// language's path beats no track at all.
				log.Printf("[pipeline] translation unavailable for %s, writing source text: %v", code, err)
			} else {
				segments = translated
			}
		}

		trackPath := p.TrackPath(videoID, code)
		if err := caption.WriteVTT(segments, trackPath); err != nil {
			return nil, fmt.Errorf("write track %s: %w", code, err)
		}
		if _, ok := produced[code]; !ok {
			producedLangs = append(producedLangs, code)
		}
		produced[code] = trackPath
	}

	if err := WriteManifest(p.vttDir, Manifest{
		VideoID:   videoID,
		MediaFile: filepath.Base(mediaPath),
		Langs:     producedLangs,
	}); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	return produced, nil
}

// Generate is the entry point used by the HTTP layer: it validates the raw
// comma-separated language request (unknown codes dropped, empty result
// meaning all languages), runs the pipeline, and reports only the tracks
// whose files verifiably exist on disk afterward.
func (p *Pipeline) Generate(ctx context.Context, mediaPath, rawLangs, videoID string) ([]Track, error) {
	requested := lang.ParseList(rawLangs)
	if videoID == "" {
		videoID = strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	}

	if _, err := p.Run(ctx, mediaPath, requested, videoID); err != nil {
		return nil, err
	}

	var tracks []Track
	for _, code := range requested {
		trackPath := p.TrackPath(videoID, code)
		if _, err := os.Stat(trackPath); err != nil {
			continue
		}
		tracks = append(tracks, Track{
			Lang:  code,
			Label: lang.Name(code),
			File:  filepath.Base(trackPath),
		})
	}
	return tracks, nil
}
