package search

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/db"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/caption"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/pipeline"
)

func setupManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	database, err := db.NewSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	vttDir := filepath.Join(dir, "vtts")
	return NewManager(database.DB(), vttDir), vttDir
}

func writeVideo(t *testing.T, vttDir, videoID string, langs map[string][]caption.Segment) {
	t.Helper()
	var codes []string
	for code, segments := range langs {
		codes = append(codes, code)
		path := filepath.Join(vttDir, videoID+"."+code+".vtt")
		if err := caption.WriteVTT(segments, path); err != nil {
			t.Fatalf("write track %s: %v", code, err)
		}
	}
	if err := pipeline.WriteManifest(vttDir, pipeline.Manifest{
		VideoID:   videoID,
		MediaFile: videoID + ".mp4",
		Langs:     codes,
	}); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func TestSearchOrderedHits(t *testing.T) {
	m, vttDir := setupManager(t)
	writeVideo(t, vttDir, "vid1", map[string][]caption.Segment{
		"en": {
			{Start: 0.0, End: 1.5, Text: "the quick brown fox"},
			{Start: 1.5, End: 3.0, Text: "jumps over the lazy dog"},
			{Start: 3.0, End: 4.5, Text: "the fox rests"},
		},
	})

	hits, err := m.Search("vid1", "en", "fox")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d: %+v", len(hits), hits)
	}
	if hits[0].Start != 0.0 || hits[1].Start != 3.0 {
		t.Errorf("hits not ordered by start time: %+v", hits)
	}
	if hits[0].Text != "the quick brown fox" {
		t.Errorf("unexpected hit text: %q", hits[0].Text)
	}
}

func TestSearchMultiTermUnion(t *testing.T) {
	m, vttDir := setupManager(t)
	writeVideo(t, vttDir, "vid2", map[string][]caption.Segment{
		"en": {
			{Start: 0.0, End: 1.0, Text: "alpha"},
			{Start: 1.0, End: 2.0, Text: "beta"},
			{Start: 2.0, End: 3.0, Text: "gamma"},
		},
	})

	hits, err := m.Search("vid2", "en", "alpha gamma")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("expected cues matching either term, got %d: %+v", len(hits), hits)
	}
}

func TestSearchNoMatch(t *testing.T) {
	m, vttDir := setupManager(t)
	writeVideo(t, vttDir, "vid3", map[string][]caption.Segment{
		"en": {{Start: 0.0, End: 1.0, Text: "hello world"}},
	})

	hits, err := m.Search("vid3", "en", "absent")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %+v", hits)
	}
}

func TestSearchUnknownVideo(t *testing.T) {
	m, _ := setupManager(t)

	_, err := m.Search("ghost", "en", "anything")
	if !errors.Is(err, ErrNotIndexed) {
		t.Errorf("expected ErrNotIndexed, got %v", err)
	}
}

func TestEnsureIndexesIdempotent(t *testing.T) {
	m, vttDir := setupManager(t)
	writeVideo(t, vttDir, "vid4", map[string][]caption.Segment{
		"en": {{Start: 0.0, End: 1.0, Text: "repeat me"}},
	})

	if err := m.EnsureIndexesForVideo("vid4"); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if err := m.EnsureIndexesForVideo("vid4"); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	hits, err := m.Search("vid4", "en", "repeat")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("rebuild should replace, not duplicate: got %d hits", len(hits))
	}
}

func TestSearchLanguageIsolation(t *testing.T) {
	m, vttDir := setupManager(t)
	writeVideo(t, vttDir, "vid5", map[string][]caption.Segment{
		"en": {{Start: 0.0, End: 1.0, Text: "window"}},
		"hi": {{Start: 0.0, End: 1.0, Text: "khidki"}},
	})

	hits, err := m.Search("vid5", "hi", "window")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("en-only term should not match in the hi track: %+v", hits)
	}

	hits, err = m.Search("vid5", "hi", "khidki")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("expected 1 hit in hi track, got %d", len(hits))
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Hello, World!", []string{"hello", "world"}},
		{"a I at", []string{"at"}},
		{"don't stop", []string{"don", "stop"}},
		{"  ", nil},
		{"123 x 45", []string{"123", "45"}},
	}
	for _, tt := range tests {
		if got := Tokenize(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
