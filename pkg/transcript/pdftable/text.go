package pdftable

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Char is a glyph box in page space, y growing downwards.
type Char struct {
	Text                string
	X0, Top, X1, Bottom float64
}

func (c Char) inside(b cell) bool {
	hmid := (c.X0 + c.X1) / 2
	vmid := (c.Top + c.Bottom) / 2
	return hmid >= b.x0 && hmid < b.x1 && vmid >= b.top && vmid < b.bottom
}

func cellText(b cell, chars []Char, tol float64) string {
	var in []Char
	for _, c := range chars {
		if c.inside(b) {
			in = append(in, c)
		}
	}
	return joinChars(in, tol)
}

// joinChars lays glyphs out as text: lines by top within tol, glyphs by x,
// a space where the horizontal gap exceeds tol.
func joinChars(chars []Char, tol float64) string {
	if len(chars) == 0 {
		return ""
	}
	sort.SliceStable(chars, func(i, j int) bool { return chars[i].Top < chars[j].Top })

	var lines [][]Char
	current := []Char{chars[0]}
	last := chars[0].Top
	for _, c := range chars[1:] {
		if c.Top <= last+tol {
			current = append(current, c)
		} else {
			lines = append(lines, current)
			current = []Char{c}
		}
		last = c.Top
	}
	lines = append(lines, current)

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X0 < line[j].X0 })
		var b strings.Builder
		for i, c := range line {
			if i > 0 {
				prev := line[i-1]
				if c.X0 > prev.X1+tol && !isBlank(prev.Text) && !isBlank(c.Text) {
					b.WriteByte(' ')
				}
			}
			b.WriteString(c.Text)
		}
		out = append(out, b.String())
	}
	return norm.NFC.String(strings.Join(out, "\n"))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
