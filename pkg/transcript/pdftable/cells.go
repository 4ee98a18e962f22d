package pdftable

import (
	"sort"

	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/table"
)

type point struct {
	x, y float64
}

// junction records which edges cross at an intersection point.
type junction struct {
	h map[int]bool
	v map[int]bool
}

type cell struct {
	x0, top, x1, bottom float64
}

func (c cell) corners() [4]point {
	return [4]point{
		{c.x0, c.top},
		{c.x0, c.bottom},
		{c.x1, c.top},
		{c.x1, c.bottom},
	}
}

// detectedTable is a group of cells sharing corners.
type detectedTable struct {
	cells []cell
	top   float64
	x0    float64
}

// findIntersections returns every point where a vertical edge meets a
// horizontal edge within tol.
func findIntersections(hs, vs []edge, tol float64) map[point]*junction {
	out := make(map[point]*junction)
	for vi, v := range vs {
		for hi, h := range hs {
			if v.start <= h.pos+tol && v.end >= h.pos-tol &&
				v.pos >= h.start-tol && v.pos <= h.end+tol {
				p := point{v.pos, h.pos}
				j, ok := out[p]
				if !ok {
					j = &junction{h: make(map[int]bool), v: make(map[int]bool)}
					out[p] = j
				}
				j.h[hi] = true
				j.v[vi] = true
			}
		}
	}
	return out
}

// connected reports whether two intersections lie on a shared edge.
func connected(js map[point]*junction, a, b point) bool {
	ja, jb := js[a], js[b]
	if ja == nil || jb == nil {
		return false
	}
	if a.x == b.x {
		for id := range ja.v {
			if jb.v[id] {
				return true
			}
		}
	}
	if a.y == b.y {
		for id := range ja.h {
			if jb.h[id] {
				return true
			}
		}
	}
	return false
}

// findCells builds, for each intersection, the smallest cell having it as
// its top-left corner.
func findCells(js map[point]*junction) []cell {
	points := make([]point, 0, len(js))
	for p := range js {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].x != points[j].x {
			return points[i].x < points[j].x
		}
		return points[i].y < points[j].y
	})

	var cells []cell
	for i := range points {
		if c, ok := smallestCell(js, points, i); ok {
			cells = append(cells, c)
		}
	}
	return cells
}

func smallestCell(js map[point]*junction, points []point, i int) (cell, bool) {
	pt := points[i]
	rest := points[i+1:]
	for _, below := range rest {
		if below.x != pt.x || !connected(js, pt, below) {
			continue
		}
		for _, right := range rest {
			if right.y != pt.y || !connected(js, pt, right) {
				continue
			}
			corner := point{right.x, below.y}
			if _, ok := js[corner]; ok && connected(js, corner, right) && connected(js, corner, below) {
				return cell{x0: pt.x, top: pt.y, x1: corner.x, bottom: corner.y}, true
			}
		}
	}
	return cell{}, false
}

// groupCells collects cells into tables by shared corners. Tables are
// ordered by their top-most then left-most corner; single cells are dropped.
func groupCells(cells []cell) []detectedTable {
	remaining := append([]cell(nil), cells...)
	var groups [][]cell
	var current []cell
	corners := make(map[point]bool)

	for len(remaining) > 0 {
		initial := len(current)
		var next []cell
		for _, c := range remaining {
			cc := c.corners()
			if len(current) == 0 || anyCorner(corners, cc) {
				for _, p := range cc {
					corners[p] = true
				}
				current = append(current, c)
				continue
			}
			next = append(next, c)
		}
		remaining = next
		if len(current) == initial {
			groups = append(groups, current)
			current = nil
			corners = make(map[point]bool)
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	tables := make([]detectedTable, 0, len(groups))
	for _, g := range groups {
		if len(g) < 2 {
			continue
		}
		t := detectedTable{cells: g, top: g[0].top, x0: g[0].x0}
		for _, c := range g[1:] {
			if c.top < t.top || (c.top == t.top && c.x0 < t.x0) {
				t.top, t.x0 = c.top, c.x0
			}
		}
		tables = append(tables, t)
	}
	sort.SliceStable(tables, func(i, j int) bool {
		if tables[i].top != tables[j].top {
			return tables[i].top < tables[j].top
		}
		return tables[i].x0 < tables[j].x0
	})
	return tables
}

func anyCorner(set map[point]bool, cc [4]point) bool {
	for _, p := range cc {
		if set[p] {
			return true
		}
	}
	return false
}

// grid lays the table out as rows grouped by cell top. Columns are the
// distinct cell left edges; slots without a cell starting there are absent.
func (t detectedTable) grid(chars []Char, textTol float64) table.Grid {
	xs := distinctSorted(t.cells, func(c cell) float64 { return c.x0 })
	col := make(map[float64]int, len(xs))
	for i, x := range xs {
		col[x] = i
	}

	sorted := append([]cell(nil), t.cells...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].top != sorted[j].top {
			return sorted[i].top < sorted[j].top
		}
		return sorted[i].x0 < sorted[j].x0
	})

	var g table.Grid
	for i := 0; i < len(sorted); {
		top := sorted[i].top
		row := make(table.Row, len(xs))
		for ; i < len(sorted) && sorted[i].top == top; i++ {
			c := sorted[i]
			row[col[c.x0]] = table.Cell{Text: cellText(c, chars, textTol), Present: true}
		}
		g = append(g, row)
	}
	return g
}

func distinctSorted(cells []cell, key func(cell) float64) []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, c := range cells {
		k := key(c)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Float64s(out)
	return out
}

// detectTables runs edge detection and cell grouping over page geometry.
func detectTables(segs []Segment, s Settings) []detectedTable {
	hs, vs := segmentsToEdges(segs, s)
	hs = mergeEdges(hs, s)
	vs = mergeEdges(vs, s)
	if len(hs) == 0 || len(vs) == 0 {
		return nil
	}
	js := findIntersections(hs, vs, s.IntersectionTolerance)
	return groupCells(findCells(js))
}

// FindTables detects tables in page geometry and returns their grids in
// top-to-bottom, left-to-right order.
func FindTables(segs []Segment, chars []Char, s Settings) []table.Grid {
	tables := detectTables(segs, s)
	grids := make([]table.Grid, 0, len(tables))
	for _, t := range tables {
		grids = append(grids, t.grid(chars, s.TextTolerance))
	}
	return grids
}

// FindLargestTable returns the grid of the table with the most cells, or nil
// when the geometry holds no table. Ties go to the upper, then left, table.
func FindLargestTable(segs []Segment, chars []Char, s Settings) table.Grid {
	tables := detectTables(segs, s)
	if len(tables) == 0 {
		return nil
	}
	best := tables[0]
	for _, t := range tables[1:] {
		if len(t.cells) > len(best.cells) {
			best = t
		}
	}
	return best.grid(chars, s.TextTolerance)
}
