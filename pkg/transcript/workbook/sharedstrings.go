package workbook

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedPart indicates a template part whose XML lacks its root element.
var ErrMalformedPart = errors.New("malformed template part")

// sharedStrings is the template's shared-string table plus the values added
// while rendering rows. Existing entries keep their bytes and their indices.
type sharedStrings struct {
	data []byte

	root        xml.StartElement
	rootStart   int64
	rootTagEnd  int64
	rootClose   int64
	selfClosing bool

	index map[string]int
	size  int
	count int
	added []string
}

// parseSharedStrings indexes the plain text of every <si> entry. Rich-text
// entries are indexed by the concatenation of their runs; phonetic runs are
// ignored. The first entry wins when two share the same text.
func parseSharedStrings(data []byte) (*sharedStrings, error) {
	ss := &sharedStrings{data: data, index: make(map[string]int)}
	s := newTokenScanner(data)

	var (
		depth    int
		found    bool
		inItem   bool
		inText   bool
		phonetic int
		text     strings.Builder
	)
	for {
		t, err := s.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse shared strings: %w", err)
		}

		switch tok := t.tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case depth == 1 && tok.Name.Local == "sst":
				found = true
				ss.root = tok
				ss.rootStart, ss.rootTagEnd = t.start, t.end
				ss.selfClosing = isSelfClosing(data, t.start, t.end)
			case depth == 2 && tok.Name.Local == "si":
				inItem = true
				text.Reset()
			case inItem && tok.Name.Local == "rPh":
				phonetic++
			case inItem && phonetic == 0 && tok.Name.Local == "t":
				inText = true
			}
		case xml.EndElement:
			switch {
			case depth == 1 && tok.Name.Local == "sst":
				ss.rootClose = t.start
			case depth == 2 && inItem && tok.Name.Local == "si":
				if _, ok := ss.index[text.String()]; !ok {
					ss.index[text.String()] = ss.size
				}
				ss.size++
				inItem = false
			case inItem && tok.Name.Local == "rPh":
				phonetic--
			case inItem && tok.Name.Local == "t":
				inText = false
			}
			depth--
		case xml.CharData:
			if inText {
				text.Write(tok)
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: shared strings has no sst element", ErrMalformedPart)
	}

	ss.count = ss.size
	if v, ok := attr(ss.root, "count"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			ss.count = n
		}
	}
	return ss, nil
}

// add records one cell reference to value and returns its index.
func (ss *sharedStrings) add(value string) int {
	ss.count++
	if idx, ok := ss.index[value]; ok {
		return idx
	}
	idx := ss.size
	ss.index[value] = idx
	ss.added = append(ss.added, value)
	ss.size++
	return idx
}

// render returns the shared-string part with the added entries appended and
// the count attributes updated.
func (ss *sharedStrings) render() []byte {
	root := ss.root
	root.Attr = append([]xml.Attr(nil), ss.root.Attr...)
	setAttr(&root, "count", strconv.Itoa(ss.count))
	setAttr(&root, "uniqueCount", strconv.Itoa(ss.size))

	prefix := ss.root.Name.Space
	item, text := prefixed(prefix, "si"), prefixed(prefix, "t")

	var items bytes.Buffer
	for _, v := range ss.added {
		items.WriteString("<" + item + "><" + text)
		if strings.TrimSpace(v) != v {
			items.WriteString(` xml:space="preserve"`)
		}
		items.WriteByte('>')
		escape(&items, v)
		items.WriteString("</" + text + "></" + item + ">")
	}
	if ss.selfClosing {
		items.WriteString("</" + qualified(root.Name) + ">")
	}

	return splice(ss.data, []edit{
		{start: 0, end: bodyStart(ss.data), text: []byte(xmlProlog)},
		{start: ss.rootStart, end: ss.rootTagEnd, text: startTag(root, false)},
		{start: ss.rootClose, end: ss.rootClose, text: items.Bytes()},
	})
}
