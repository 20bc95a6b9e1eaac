package search

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/caption"
	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/subtitle/pipeline"
)

// ErrNotIndexed means no tracks exist for the requested video, so there is
// nothing to search.
var ErrNotIndexed = errors.New("video is not indexed")

// Hit is one matching caption cue, addressable by its time span.
type Hit struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Manager maintains per-(video, language) keyword indexes over the caption
// tracks listed in a video's manifest.
type Manager struct {
	db     *sql.DB
	vttDir string
}

func NewManager(db *sql.DB, vttDir string) *Manager {
	return &Manager{db: db, vttDir: vttDir}
}

// EnsureIndexesForVideo rebuilds the indexes for every language the video's
// manifest lists. Rebuilding is idempotent: each (video, language) slice is
// replaced wholesale.
func (m *Manager) EnsureIndexesForVideo(videoID string) error {
	manifest, err := pipeline.ReadManifest(m.vttDir, videoID)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotIndexed, videoID)
		}
		return fmt.Errorf("read manifest: %w", err)
	}

	for _, code := range manifest.Langs {
		trackPath := filepath.Join(m.vttDir, fmt.Sprintf("%s.%s.vtt", videoID, code))
		data, err := os.ReadFile(trackPath)
		if err != nil {
			log.Printf("[search] skipping %s/%s: %v", videoID, code, err)
			continue
		}
		if err := m.indexLanguage(videoID, code, caption.ParseVTT(string(data))); err != nil {
			return fmt.Errorf("index %s/%s: %w", videoID, code, err)
		}
	}

	log.Printf("[search] indexes ready for video %s (%d languages)", videoID, len(manifest.Langs))
	return nil
}

func (m *Manager) indexLanguage(videoID, code string, segments []caption.Segment) error {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM search_terms WHERE video_id = ? AND lang = ?",
		videoID, code,
	); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		"INSERT INTO search_terms (video_id, lang, term, start_sec, end_sec, text) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, seg := range segments {
		seen := make(map[string]bool)
		for _, term := range Tokenize(seg.Text) {
			if seen[term] {
				continue
			}
			seen[term] = true
			if _, err := stmt.Exec(videoID, code, term, seg.Start, seg.End, seg.Text); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Search returns cues in the given video/language track matching any query
// term, ordered by start time. An unindexed video is indexed lazily first.
func (m *Manager) Search(videoID, code, query string) ([]Hit, error) {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return []Hit{}, nil
	}

	indexed, err := m.hasIndex(videoID, code)
	if err != nil {
		return nil, err
	}
	if !indexed {
		if err := m.EnsureIndexesForVideo(videoID); err != nil {
			return nil, err
		}
	}

	placeholders := strings.Repeat("?,", len(terms))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, 0, len(terms)+2)
	args = append(args, videoID, code)
	for _, t := range terms {
		args = append(args, t)
	}

	rows, err := m.db.Query(fmt.Sprintf(`
		SELECT DISTINCT start_sec, end_sec, text FROM search_terms
		WHERE video_id = ? AND lang = ? AND term IN (%s)
		ORDER BY start_sec ASC`, placeholders), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hits := []Hit{}
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.Start, &h.End, &h.Text); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func (m *Manager) hasIndex(videoID, code string) (bool, error) {
	var count int
	err := m.db.QueryRow(
		"SELECT COUNT(*) FROM search_terms WHERE video_id = ? AND lang = ?",
		videoID, code,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Tokenize lowercases text and splits it on anything that is not a letter
// or digit, dropping single-rune tokens.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var terms []string
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}
