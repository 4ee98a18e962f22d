package pdftable

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/table"
)

// ErrPageOutOfRange indicates a page number outside the document.
var ErrPageOutOfRange = errors.New("page out of range")

// ErrMalformedPage indicates page content the PDF reader could not interpret.
var ErrMalformedPage = errors.New("malformed page content")

// Glyph box proportions relative to the font size, measured from the baseline.
const (
	glyphAscent  = 0.8
	glyphDescent = 0.2
)

// Document is an open PDF file.
type Document struct {
	file   *os.File
	reader *pdf.Reader
}

// Open opens a PDF file for table extraction.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &Document{file: f, reader: r}, nil
}

// Close closes the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}

// NumPage returns the number of pages.
func (d *Document) NumPage() int {
	return d.reader.NumPage()
}

// ExtractTables returns the grids of every table on a page (1-based).
func (d *Document) ExtractTables(pageNum int, s Settings) ([]table.Grid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	segs, chars, err := d.pageGeometry(pageNum)
	if err != nil {
		return nil, err
	}
	return FindTables(segs, chars, s), nil
}

// ExtractTable returns the grid of the largest table on a page (1-based), or
// nil when the page has no table.
func (d *Document) ExtractTable(pageNum int, s Settings) (table.Grid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	segs, chars, err := d.pageGeometry(pageNum)
	if err != nil {
		return nil, err
	}
	return FindLargestTable(segs, chars, s), nil
}

func (d *Document) pageGeometry(pageNum int) ([]Segment, []Char, error) {
	if pageNum < 1 || pageNum > d.reader.NumPage() {
		return nil, nil, fmt.Errorf("%w: %d", ErrPageOutOfRange, pageNum)
	}
	p := d.reader.Page(pageNum)
	if p.V.IsNull() {
		return nil, nil, fmt.Errorf("%w: %d", ErrPageOutOfRange, pageNum)
	}
	return readPage(p)
}

// readPage collects painted path segments and glyphs. The PDF reader panics
// on content it cannot parse; that is reported as ErrMalformedPage.
func readPage(p pdf.Page) (segs []Segment, chars []Char, err error) {
	defer func() {
		if r := recover(); r != nil {
			segs, chars = nil, nil
			err = fmt.Errorf("%w: %v", ErrMalformedPage, r)
		}
	}()

	segs = pathSegments(p.V.Key("Contents"))
	for _, t := range p.Content().Text {
		chars = append(chars, glyph(t))
	}
	return segs, chars, nil
}

// glyph converts a positioned text run to a box in y-down page space.
// The reader reports no width or advance for Type0 (CID) fonts, so every glyph
// of one shown string gets the string's start X and zero width. Cell text then
// relies on joinChars keeping stream order for glyphs at equal positions.
func glyph(t pdf.Text) Char {
	size := math.Abs(t.FontSize)
	x0, x1 := t.X, t.X+t.W
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	return Char{
		Text:   t.S,
		X0:     x0,
		X1:     x1,
		Top:    -(t.Y + size*glyphAscent),
		Bottom: -(t.Y - size*glyphDescent),
	}
}
