// Package tm provides a SQLite-backed translation-memory export store.
// Segments extracted from TTX documents are keyed by a BLAKE3 hash of
// their source language and text, so re-exporting the same document is
// idempotent. Only storage and exact recall live here; fuzzy matching is
// out of scope.
package tm

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"

	"github.com/FocuswithJustin/ttx/core/ttx"
	"github.com/FocuswithJustin/ttx/internal/logging"
)

// Entry is one stored translation unit.
type Entry struct {
	Hash       string
	SourceLang string
	TargetLang string
	Source     string
	Target     string
	Match      int
	Origin     string
}

// Stats summarizes a store.
type Stats struct {
	Segments      int
	LanguagePairs map[string]int // "DE-DE>EN-US" -> count
}

// Store wraps the SQLite database holding exported segments.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a store at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS segments (
		hash          TEXT PRIMARY KEY,
		source_lang   TEXT NOT NULL,
		target_lang   TEXT NOT NULL,
		source_text   TEXT NOT NULL,
		target_text   TEXT NOT NULL,
		match_percent INTEGER NOT NULL DEFAULT 0,
		origin        TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_segments_pair ON segments(source_lang, target_lang);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key derives the dedup key for a segment: BLAKE3 over the source
// language and text with a NUL separator.
func Key(sourceLang, source string) string {
	h := blake3.Sum256([]byte(sourceLang + "\x00" + source))
	return hex.EncodeToString(h[:])
}

// Put inserts or updates an entry. The hash field is derived when empty.
func (s *Store) Put(ctx context.Context, e Entry) error {
	if e.Hash == "" {
		e.Hash = Key(e.SourceLang, e.Source)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO segments (hash, source_lang, target_lang, source_text, target_text, match_percent, origin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET
			target_lang   = excluded.target_lang,
			target_text   = excluded.target_text,
			match_percent = excluded.match_percent,
			origin        = excluded.origin,
			updated_at    = excluded.updated_at`,
		e.Hash, e.SourceLang, e.TargetLang, e.Source, e.Target, e.Match, e.Origin, now, now)
	if err != nil {
		return fmt.Errorf("put segment: %w", err)
	}
	return nil
}

// Export stores every segment of a document. Returns the number stored.
// Segments with empty source text are skipped; a non-numeric match
// attribute aborts the export.
func (s *Store) Export(ctx context.Context, doc *ttx.Document) (int, error) {
	stored := 0
	for _, seg := range doc.Segments() {
		source := seg.Source()
		if source == "" {
			continue
		}
		match, err := seg.Match()
		if err != nil {
			return stored, err
		}
		e := Entry{
			SourceLang: seg.SourceLang(),
			TargetLang: seg.TargetLang(),
			Source:     source,
			Target:     seg.Translated(),
			Match:      match,
			Origin:     seg.Origin(),
		}
		if err := s.Put(ctx, e); err != nil {
			return stored, err
		}
		stored++
	}

	logging.TMEvent("export", s.path, stored, "source", doc.SourcePath())
	return stored, nil
}

// Lookup returns the entry for an exact source language and text, or nil
// when the store holds none.
func (s *Store) Lookup(ctx context.Context, sourceLang, source string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT hash, source_lang, target_lang, source_text, target_text, match_percent, COALESCE(origin, '')
		FROM segments WHERE hash = ?`,
		Key(sourceLang, source))

	var e Entry
	err := row.Scan(&e.Hash, &e.SourceLang, &e.TargetLang, &e.Source, &e.Target, &e.Match, &e.Origin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup segment: %w", err)
	}
	return &e, nil
}

// Stats reports segment counts, total and per language pair.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{LanguagePairs: make(map[string]int)}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM segments`).Scan(&stats.Segments); err != nil {
		return stats, fmt.Errorf("count segments: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source_lang, target_lang, COUNT(*)
		FROM segments GROUP BY source_lang, target_lang`)
	if err != nil {
		return stats, fmt.Errorf("count pairs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var src, tgt string
		var n int
		if err := rows.Scan(&src, &tgt, &n); err != nil {
			return stats, fmt.Errorf("scan pair: %w", err)
		}
		stats.LanguagePairs[src+">"+tgt] = n
	}
	return stats, rows.Err()
}
