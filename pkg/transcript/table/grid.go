// Package table defines the cell grid produced by PDF table detection.
package table

import "strings"

// Cell is one slot of a table row.
// Present is false for slots covered by a merged cell.
type Cell struct {
	Text    string
	Present bool
}

// Row is an ordered sequence of cells. Rows of one grid may differ in length.
type Row []Cell

// Grid is a table as an ordered sequence of rows.
type Grid []Row

// Text returns the trimmed text at column i, or "" when the column is out of
// range or absent.
func (r Row) Text(i int) string {
	if i < 0 || i >= len(r) || !r[i].Present {
		return ""
	}
	return strings.TrimSpace(r[i].Text)
}

// Joined concatenates the raw text of every present cell.
func (r Row) Joined() string {
	var b strings.Builder
	for _, c := range r {
		if c.Present {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

// Strings returns the grid as plain strings, absent cells as "".
func (g Grid) Strings() [][]string {
	out := make([][]string, len(g))
	for i, row := range g {
		out[i] = make([]string, len(row))
		for j, c := range row {
			if c.Present {
				out[i][j] = c.Text
			}
		}
	}
	return out
}
