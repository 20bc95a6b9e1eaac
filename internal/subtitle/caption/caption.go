// Package caption holds the subtitle segment model and the WebVTT
// serializer/parser shared by the transcription engines and the
// generation pipeline.
package caption

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Segment is a single timed cue. Start and End are in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// FormatTimestamp renders seconds as a WebVTT timestamp (HH:MM:SS.mmm).
// Negative inputs clamp to zero.
func FormatTimestamp(seconds float64) string {
	ms := int(math.Round(seconds * 1000))
	if ms < 0 {
		ms = 0
	}
	h := ms / 3600000
	ms %= 3600000
	m := ms / 60000
	ms %= 60000
	s := ms / 1000
	ms %= 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// sanitizeText trims whitespace and replaces the cue arrow so the text
// cannot break the VTT cue structure.
func sanitizeText(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), "-->", "→")
}

// RenderVTT serializes segments as a WebVTT document.
func RenderVTT(segments []Segment) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, seg := range segments {
		b.WriteString(FormatTimestamp(seg.Start))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(seg.End))
		b.WriteString("\n")
		b.WriteString(sanitizeText(seg.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

// WriteVTT renders segments and writes them to path, creating parent
// directories as needed.
func WriteVTT(segments []Segment, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create vtt directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(RenderVTT(segments)), 0644); err != nil {
		return fmt.Errorf("write vtt file: %w", err)
	}
	return nil
}

var timestampRe = regexp.MustCompile(`(\d{2,}:\d{2}:\d{2}[.,]\d{3})\s*-->\s*(\d{2,}:\d{2}:\d{2}[.,]\d{3})`)

// ParseVTT extracts segments from WebVTT (or SRT-style) content. Cue
// index lines and the header are skipped; multi-line cue text is joined
// with newlines.
func ParseVTT(content string) []Segment {
	var segments []Segment
	lines := strings.Split(content, "\n")

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		m := timestampRe.FindStringSubmatch(line)
		if m == nil {
			i++
			continue
		}
		start := parseTimestamp(m[1])
		end := parseTimestamp(m[2])

		var text []string
		i++
		for i < len(lines) {
			t := strings.TrimSpace(lines[i])
			if t == "" {
				break
			}
			if timestampRe.MatchString(t) {
				break
			}
			text = append(text, t)
			i++
		}
		if len(text) > 0 {
			segments = append(segments, Segment{
				Start: start,
				End:   end,
				Text:  strings.Join(text, "\n"),
			})
		}
	}
	return segments
}

func parseTimestamp(ts string) float64 {
	ts = strings.ReplaceAll(ts, ",", ".")
	var h, m, s, ms int
	if _, err := fmt.Sscanf(ts, "%d:%d:%d.%d", &h, &m, &s, &ms); err != nil {
		return 0
	}
	return float64(h)*3600 + float64(m)*60 + float64(s) + float64(ms)/1000
}
