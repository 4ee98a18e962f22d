package pdftable

import (
	"github.com/ledongthuc/pdf"
)

// matrix is a PDF transformation matrix [a b c d e f].
type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

// mul returns m followed by n.
func (m matrix) mul(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

// apply maps user space to page space and flips y so it grows downwards.
func (m matrix) apply(x, y float64) point {
	return point{
		x: m[0]*x + m[2]*y + m[4],
		y: -(m[1]*x + m[3]*y + m[5]),
	}
}

// pathBuilder tracks the graphics state needed to place path segments.
type pathBuilder struct {
	ctm     matrix
	saved   []matrix
	cur     point
	start   point
	open    bool
	pending []Segment
	painted []Segment
}

func newPathBuilder() *pathBuilder {
	return &pathBuilder{ctm: identity}
}

func (b *pathBuilder) add(from, to point, rect bool) {
	b.pending = append(b.pending, Segment{X0: from.x, Y0: from.y, X1: to.x, Y1: to.y, Rect: rect})
}

func (b *pathBuilder) closePath() {
	if b.open && b.cur != b.start {
		b.add(b.cur, b.start, false)
	}
	b.cur = b.start
}

func (b *pathBuilder) paint() {
	b.painted = append(b.painted, b.pending...)
	b.pending = nil
	b.open = false
}

// op applies one content stream operator with its operands.
func (b *pathBuilder) op(name string, args []float64) {
	switch name {
	case "q":
		b.saved = append(b.saved, b.ctm)
	case "Q":
		if n := len(b.saved); n > 0 {
			b.ctm = b.saved[n-1]
			b.saved = b.saved[:n-1]
		}
	case "cm":
		if len(args) == 6 {
			b.ctm = matrix{args[0], args[1], args[2], args[3], args[4], args[5]}.mul(b.ctm)
		}
	case "m":
		if len(args) == 2 {
			b.cur = b.ctm.apply(args[0], args[1])
			b.start = b.cur
			b.open = true
		}
	case "l":
		if len(args) == 2 && b.open {
			p := b.ctm.apply(args[0], args[1])
			b.add(b.cur, p, false)
			b.cur = p
		}
	case "re":
		if len(args) == 4 {
			x, y, w, h := args[0], args[1], args[2], args[3]
			p1 := b.ctm.apply(x, y)
			p2 := b.ctm.apply(x+w, y)
			p3 := b.ctm.apply(x+w, y+h)
			p4 := b.ctm.apply(x, y+h)
			b.add(p1, p2, true)
			b.add(p2, p3, true)
			b.add(p3, p4, true)
			b.add(p4, p1, true)
			b.cur, b.start = p1, p1
			b.open = true
		}
	case "c", "v", "y":
		if n := len(args); n >= 2 {
			b.cur = b.ctm.apply(args[n-2], args[n-1])
		}
	case "h":
		b.closePath()
	case "s", "b", "b*":
		b.closePath()
		b.paint()
	case "S", "f", "F", "f*", "B", "B*":
		b.paint()
	case "n":
		b.pending = nil
		b.open = false
	}
}

// pathSegments interprets a page's content streams and returns the segments
// of every painted path.
func pathSegments(contents pdf.Value) []Segment {
	b := newPathBuilder()
	run := func(strm pdf.Value) {
		pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
			n := stk.Len()
			args := make([]float64, n)
			for i := n - 1; i >= 0; i-- {
				args[i] = stk.Pop().Float64()
			}
			b.op(op, args)
		})
	}

	switch contents.Kind() {
	case pdf.Array:
		for i := 0; i < contents.Len(); i++ {
			run(contents.Index(i))
		}
	case pdf.Stream:
		run(contents)
	}
	return b.painted
}
