// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clausebase persists segmented clauses in a SQLite database with a
// full-text index, so reviewed documents can be searched across runs.
package clausebase

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/redline-engine/internal/segment"
	"github.com/pdiddy/redline-engine/pkg/types"
)

const (
	segmentedDir = "segmented"
	indexDir     = "index"
	dbFile       = "clauses.db"

	clauseFileSuffix = "-clauses.json"
)

// Store manages the clause base SQLite database.
type Store struct {
	db         *sql.DB
	clausesDir string
	maxResults int
}

// NewStore opens or creates the clause base database at
// clausesDir/index/clauses.db, creating the schema when absent.
func NewStore(cfg types.ClauseBaseConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.ClausesDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		clausesDir: cfg.ClausesDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			clause_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS clauses (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			document_id TEXT NOT NULL REFERENCES documents(id),
			ord INTEGER NOT NULL,
			name TEXT NOT NULL,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clauses_document_id ON clauses(document_id)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			document_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='clauses_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE clauses_fts USING fts5(name, content, content=clauses, content_rowid=rowid)`,
			`CREATE TRIGGER clauses_ai AFTER INSERT ON clauses BEGIN
				INSERT INTO clauses_fts(rowid, name, content) VALUES (new.rowid, new.name, new.content);
			END`,
			`CREATE TRIGGER clauses_ad AFTER DELETE ON clauses BEGIN
				INSERT INTO clauses_fts(clauses_fts, rowid, name, content) VALUES('delete', old.rowid, old.name, old.content);
			END`,
			`CREATE TRIGGER clauses_au AFTER UPDATE ON clauses BEGIN
				INSERT INTO clauses_fts(clauses_fts, rowid, name, content) VALUES('delete', old.rowid, old.name, old.content);
				INSERT INTO clauses_fts(rowid, name, content) VALUES (new.rowid, new.name, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a clause base indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of documents processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads clause JSON files from clausesDir/segmented/ and populates
// the database. Files unchanged since their last indexing are skipped;
// changed documents have their clauses replaced. On success it refreshes
// export.yaml.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	segDir := filepath.Join(s.clausesDir, segmentedDir)

	entries, err := os.ReadDir(segDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading segmented directory %s: %w", segDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), clauseFileSuffix) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		docID := strings.TrimSuffix(entry.Name(), clauseFileSuffix)
		filePath := filepath.Join(segDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE document_id = ?`, docID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", docID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		clauses, err := segment.LoadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if err := s.ingestDocument(ctx, docID, clauses, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d clauses)\n", docID, len(clauses))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d clauses)\n", docID, len(clauses))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestDocument(ctx context.Context, docID string, clauses []types.Clause, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM clauses WHERE document_id = ?`, docID); err != nil {
			return fmt.Errorf("deleting old clauses: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, clause_count) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET clause_count=excluded.clause_count`,
		docID, len(clauses),
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO clauses (id, document_id, ord, name, content)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for ord, clause := range clauses {
		_, err := stmt.ExecContext(ctx,
			stableID(docID, ord, clause.Content), docID, ord, clause.Name, clause.Content,
		)
		if err != nil {
			return fmt.Errorf("inserting clause %d: %w", ord, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (document_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(document_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		docID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

// stableID generates a deterministic clause ID from document ID, position,
// and content: the first 12 hex characters of their SHA-256.
func stableID(docID string, ord int, content string) string {
	h := sha256.New()
	h.Write([]byte(docID))
	fmt.Fprintf(h, "%d", ord)
	h.Write([]byte(content))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}
