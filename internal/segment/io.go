// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/redline-engine/pkg/types"
)

// WriteJSON writes clauses as indented UTF-8 JSON. HTML escaping is off so
// non-ASCII characters in contract text survive round trips unescaped.
func WriteJSON(w io.Writer, clauses []types.Clause) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(clauses)
}

// WriteFile writes clauses to path as JSON.
func WriteFile(path string, clauses []types.Clause) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteJSON(f, clauses); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a clause list previously written by WriteFile.
func LoadFile(path string) ([]types.Clause, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading clauses %s: %w", path, err)
	}
	var clauses []types.Clause
	if err := json.Unmarshal(data, &clauses); err != nil {
		return nil, fmt.Errorf("parsing clauses %s: %w", path, err)
	}
	return clauses, nil
}
