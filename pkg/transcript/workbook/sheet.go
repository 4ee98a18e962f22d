package workbook

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrMissingSheetData indicates a worksheet without a sheetData element.
	ErrMissingSheetData = errors.New("template sheet missing sheetData node")

	// ErrMissingHeaderRow indicates a worksheet whose sheetData has no row.
	ErrMissingHeaderRow = errors.New("template sheet missing header row")
)

// worksheet holds the byte ranges of a template worksheet that get rewritten.
type worksheet struct {
	data []byte

	// prefix is the namespace prefix written on sheetData, usually empty.
	prefix string

	dimension          *xml.StartElement
	dimStart, dimEnd   int64
	headerEnd          int64
	sheetDataCloseFrom int64
}

// parseWorksheet locates the dimension element, the first row of sheetData
// and the end of sheetData.
func parseWorksheet(data []byte) (*worksheet, error) {
	ws := &worksheet{data: data}
	s := newTokenScanner(data)

	var (
		depth        int
		hasSheetData bool
		inSheetData  bool
		inHeader     bool
		hasHeader    bool
	)
	for {
		t, err := s.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse worksheet: %w", err)
		}

		switch tok := t.tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case depth == 2 && tok.Name.Local == "dimension" && ws.dimension == nil:
				dim := tok
				ws.dimension = &dim
				ws.dimStart = t.start
			case depth == 2 && tok.Name.Local == "sheetData" && !hasSheetData:
				hasSheetData = true
				inSheetData = true
				ws.prefix = tok.Name.Space
			case depth == 3 && inSheetData && tok.Name.Local == "row" && !hasHeader:
				inHeader = true
			}
		case xml.EndElement:
			switch {
			case depth == 2 && tok.Name.Local == "dimension" && ws.dimEnd == 0:
				ws.dimEnd = t.end
			case depth == 2 && inSheetData && tok.Name.Local == "sheetData":
				ws.sheetDataCloseFrom = t.start
				inSheetData = false
			case depth == 3 && inHeader && tok.Name.Local == "row":
				ws.headerEnd = t.end
				inHeader = false
				hasHeader = true
			}
			depth--
		}
	}

	if !hasSheetData {
		return nil, ErrMissingSheetData
	}
	if !hasHeader {
		return nil, ErrMissingHeaderRow
	}
	return ws, nil
}

// render replaces the rows after the header with rows and points the
// dimension at A1:G{lastRow}. A template without a dimension element is left
// without one.
func (ws *worksheet) render(rows []byte, lastRow int) ([]byte, error) {
	edits := []edit{
		{start: 0, end: bodyStart(ws.data), text: []byte(xmlProlog)},
		{start: ws.headerEnd, end: ws.sheetDataCloseFrom, text: rows},
	}
	if ws.dimension != nil {
		ref, err := dimensionRef(lastRow)
		if err != nil {
			return nil, err
		}
		dim := *ws.dimension
		dim.Attr = append([]xml.Attr(nil), ws.dimension.Attr...)
		setAttr(&dim, "ref", ref)
		edits = append(edits, edit{start: ws.dimStart, end: ws.dimEnd, text: startTag(dim, true)})
	}
	return splice(ws.data, edits), nil
}
