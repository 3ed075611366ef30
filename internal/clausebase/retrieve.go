// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clausebase

import (
	"context"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for clause base queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over clause names and
	// contents.
	Query string

	// DocumentID filters by document.
	DocumentID string

	// Name filters by clause heading, case-insensitive substring.
	Name string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.DocumentID == "" && q.Name == ""
}

// QueryResult is a stored clause with its position in the source document.
type QueryResult struct {
	ID         string `json:"id" yaml:"id"`
	DocumentID string `json:"document_id" yaml:"document_id"`
	Ord        int    `json:"ord" yaml:"ord"`
	Name       string `json:"clause_name" yaml:"clause_name"`
	Content    string `json:"clause_content" yaml:"clause_content"`
}

// Retrieve queries the clause base with optional full-text search and
// structured filters. Full-text queries are ranked by relevance; filter-only
// queries come back in document order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT c.id, c.document_id, c.ord, c.name, c.content
			FROM clauses_fts
			JOIN clauses c ON c.rowid = clauses_fts.rowid
			WHERE clauses_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT c.id, c.document_id, c.ord, c.name, c.content
			FROM clauses c
			WHERE 1=1`)
	}

	if opts.DocumentID != "" {
		qb.WriteString(` AND c.document_id = ?`)
		args = append(args, opts.DocumentID)
	}

	if opts.Name != "" {
		qb.WriteString(` AND c.name LIKE ?`)
		args = append(args, "%"+opts.Name+"%")
	}

	if useFTS {
		qb.WriteString(` ORDER BY clauses_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY c.document_id, c.ord`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying clause base: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var qr QueryResult
		if err := rows.Scan(&qr.ID, &qr.DocumentID, &qr.Ord, &qr.Name, &qr.Content); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, qr)
	}

	return results, rows.Err()
}
