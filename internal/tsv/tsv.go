// Package tsv turns tab-separated spreadsheet exports into header-keyed rows.
package tsv

import (
	"errors"
	"strings"
)

// ErrMalformedInput is returned when the input has no header line at all.
var ErrMalformedInput = errors.New("malformed input")

// Row is a single data line keyed by normalized header.
type Row struct {
	Line   int               // 1-based line number in the source text
	Fields map[string]string // normalized header -> trimmed cell value
}

// Get returns the value stored under key, or "" when the column is absent.
func (r Row) Get(key string) string {
	return r.Fields[key]
}

// Table is the parsed form of a TSV blob.
type Table struct {
	Headers []string // normalized headers in source order
	Rows    []Row
}

// NormalizeHeader trims, lower-cases and collapses internal whitespace runs.
// It is idempotent.
func NormalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

// splitLines splits on \r\n, \r and \n.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// Parse splits text into a header and data rows. Blank lines are skipped.
// Short rows are padded with empty strings and long rows are truncated to
// the header width. When two headers normalize to the same key, the first
// column keeps it.
func Parse(text string) (*Table, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrMalformedInput
	}

	table := &Table{}
	headerSeen := false

	for i, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		cells := strings.Split(line, "\t")

		if !headerSeen {
			for _, h := range cells {
				table.Headers = append(table.Headers, NormalizeHeader(h))
			}
			headerSeen = true
			continue
		}

		row := Row{
			Line:   i + 1,
			Fields: make(map[string]string, len(table.Headers)),
		}
		for col, key := range table.Headers {
			if _, dup := row.Fields[key]; dup {
				continue
			}
			value := ""
			if col < len(cells) {
				value = strings.TrimSpace(cells[col])
			}
			row.Fields[key] = value
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
