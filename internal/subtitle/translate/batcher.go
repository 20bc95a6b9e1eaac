package translate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/lang"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/caption"
)

// delimiter joins segment texts for batch translation. The spaces keep the
// bars from gluing onto words so translation engines pass them through.
const delimiter = " ||| "

// Batcher translates one language's worth of segments with a two-tier
// strategy: one batched request first, per-segment calls as the fallback.
type Batcher struct {
	engine Translator
}

func NewBatcher(engine Translator) *Batcher {
	return &Batcher{engine: engine}
}

// Engine returns the configured translation engine, or nil.
func (b *Batcher) Engine() Translator {
	return b.engine
}

// TranslateSegments returns a sequence of the same length with identical
// time boundaries and translated text. For the source language the input
// is returned unchanged with no engine call. It errors only when no engine
// is configured; engine failures degrade to per-segment mode, and a failed
// individual segment keeps its original text.
func (b *Batcher) TranslateSegments(ctx context.Context, segments []caption.Segment, target string) ([]caption.Segment, error) {
	if target == lang.Source {
		return segments, nil
	}
	if b.engine == nil {
		return nil, fmt.Errorf("no translation engine configured")
	}
	if len(segments) == 0 {
		return segments, nil
	}

	parts, ok := b.translateBatch(ctx, segments, target)
	if !ok {
		parts = b.translateEach(ctx, segments, target)
	}

	out := make([]caption.Segment, len(segments))
	for i, seg := range segments {
		out[i] = caption.Segment{Start: seg.Start, End: seg.End, Text: seg.Text}
		if strings.TrimSpace(parts[i]) != "" {
			out[i].Text = parts[i]
		}
	}
	return out, nil
}

// translateBatch joins all texts into one request and splits the result on
// the delimiter. A part-count mismatch means the engine garbled the
// delimiter, so the batch is discarded silently.
func (b *Batcher) translateBatch(ctx context.Context, segments []caption.Segment, target string) ([]string, bool) {
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}

	translated, err := b.engine.Translate(ctx, strings.Join(texts, delimiter), "auto", target)
	if err != nil {
		log.Printf("[translate] batch mode failed for %s via %s: %v, falling back to per-segment", target, b.engine.Name(), err)
		return nil, false
	}

	raw := strings.Split(translated, "|||")
	if len(raw) != len(segments) {
		log.Printf("[translate] batch split mismatch for %s: expected %d parts, got %d, falling back to per-segment", target, len(segments), len(raw))
		return nil, false
	}

	parts := make([]string, len(raw))
	for i, p := range raw {
		parts[i] = strings.TrimSpace(p)
	}
	return parts, true
}

// translateEach translates segments one at a time. Segments whose
// translation errors keep their original text.
func (b *Batcher) translateEach(ctx context.Context, segments []caption.Segment, target string) []string {
	parts := make([]string, len(segments))
	failed := 0
	for i, seg := range segments {
		translated, err := b.engine.Translate(ctx, seg.Text, "auto", target)
		if err != nil {
			parts[i] = seg.Text
			failed++
			continue
		}
		parts[i] = strings.TrimSpace(translated)
	}
	if failed > 0 {
		log.Printf("[translate] per-segment mode for %s: %d/%d segments kept original text", target, failed, len(segments))
	}
	return parts
}
