package pdftable

import (
	"math"
	"sort"
)

// Segment is a straight path segment in page space, y growing downwards.
type Segment struct {
	X0, Y0, X1, Y1 float64
	// Rect is true for sides of rectangles drawn with the re operator.
	Rect bool
}

// orientEpsilon absorbs floating point noise from matrix transforms.
const orientEpsilon = 0.01

// edge is an axis-aligned segment. pos is y for horizontal edges and x for
// vertical ones; start and end span the other axis.
type edge struct {
	pos        float64
	start, end float64
}

func (e edge) length() float64 {
	return e.end - e.start
}

// segmentsToEdges keeps the axis-aligned segments allowed by the strategies.
func segmentsToEdges(segs []Segment, s Settings) (hs, vs []edge) {
	for _, seg := range segs {
		dx := math.Abs(seg.X1 - seg.X0)
		dy := math.Abs(seg.Y1 - seg.Y0)
		switch {
		case dy <= orientEpsilon && dx > orientEpsilon:
			if seg.Rect && s.HorizontalStrategy == StrategyLinesStrict {
				continue
			}
			hs = append(hs, edge{
				pos:   (seg.Y0 + seg.Y1) / 2,
				start: math.Min(seg.X0, seg.X1),
				end:   math.Max(seg.X0, seg.X1),
			})
		case dx <= orientEpsilon && dy > orientEpsilon:
			if seg.Rect && s.VerticalStrategy == StrategyLinesStrict {
				continue
			}
			vs = append(vs, edge{
				pos:   (seg.X0 + seg.X1) / 2,
				start: math.Min(seg.Y0, seg.Y1),
				end:   math.Max(seg.Y0, seg.Y1),
			})
		}
	}
	return hs, vs
}

// snapEdges moves parallel edges whose positions chain within tol onto the
// mean position of their cluster.
func snapEdges(edges []edge, tol float64) {
	if tol <= 0 || len(edges) == 0 {
		return
	}
	order := make([]int, len(edges))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return edges[order[a]].pos < edges[order[b]].pos
	})

	flush := func(cluster []int) {
		sum := 0.0
		for _, i := range cluster {
			sum += edges[i].pos
		}
		mean := sum / float64(len(cluster))
		for _, i := range cluster {
			edges[i].pos = mean
		}
	}

	cluster := []int{order[0]}
	last := edges[order[0]].pos
	for _, i := range order[1:] {
		pos := edges[i].pos
		if pos <= last+tol {
			cluster = append(cluster, i)
		} else {
			flush(cluster)
			cluster = []int{i}
		}
		last = pos
	}
	flush(cluster)
}

// joinEdges merges collinear edges that overlap or are separated by at most tol.
func joinEdges(edges []edge, tol float64) []edge {
	sorted := append([]edge(nil), edges...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].pos != sorted[j].pos {
			return sorted[i].pos < sorted[j].pos
		}
		return sorted[i].start < sorted[j].start
	})

	var out []edge
	for _, e := range sorted {
		if n := len(out); n > 0 && out[n-1].pos == e.pos && e.start <= out[n-1].end+tol {
			if e.end > out[n-1].end {
				out[n-1].end = e.end
			}
			continue
		}
		out = append(out, e)
	}
	return out
}

// mergeEdges snaps, joins and length-filters one orientation of edges.
func mergeEdges(edges []edge, s Settings) []edge {
	snapEdges(edges, s.SnapTolerance)
	joined := joinEdges(edges, s.JoinTolerance)
	out := joined[:0]
	for _, e := range joined {
		if e.length() >= s.EdgeMinLength {
			out = append(out, e)
		}
	}
	return out
}
