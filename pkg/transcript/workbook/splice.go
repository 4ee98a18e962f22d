package workbook

import (
	"bytes"
	"encoding/xml"
	"io"
	"sort"
)

// xmlProlog replaces the declaration of every regenerated part.
const xmlProlog = "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\r\n"

// rawToken is a token together with its byte range in the source document.
type rawToken struct {
	tok        xml.Token
	start, end int64
}

// tokenScanner walks a document with RawToken so prefixes stay as written.
type tokenScanner struct {
	d *xml.Decoder
}

func newTokenScanner(data []byte) *tokenScanner {
	return &tokenScanner{d: xml.NewDecoder(bytes.NewReader(data))}
}

// next returns the next token, or io.EOF at the end of the document.
func (s *tokenScanner) next() (rawToken, error) {
	start := s.d.InputOffset()
	tok, err := s.d.RawToken()
	if err != nil {
		return rawToken{}, err
	}
	return rawToken{tok: xml.CopyToken(tok), start: start, end: s.d.InputOffset()}, nil
}

// utf8BOM is dropped together with the declaration it precedes.
var utf8BOM = []byte("\xef\xbb\xbf")

// bodyStart returns the offset of the first token after a leading byte-order
// mark, the XML declaration and any whitespace that follows it.
func bodyStart(data []byte) int64 {
	var skip int64
	if bytes.HasPrefix(data, utf8BOM) {
		skip = int64(len(utf8BOM))
	}
	s := newTokenScanner(data[skip:])
	offset := int64(0)
	for {
		t, err := s.next()
		if err != nil {
			return skip + offset
		}
		switch tok := t.tok.(type) {
		case xml.ProcInst:
			if tok.Target != "xml" {
				return skip + t.start
			}
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) > 0 {
				return skip + t.start
			}
		default:
			return skip + t.start
		}
		offset = t.end
	}
}

// edit replaces data[start:end] with text. start == end inserts.
type edit struct {
	start, end int64
	text       []byte
}

// splice applies non-overlapping edits to data.
func splice(data []byte, edits []edit) []byte {
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var buf bytes.Buffer
	buf.Grow(len(data))
	var pos int64
	for _, e := range edits {
		buf.Write(data[pos:e.start])
		buf.Write(e.text)
		pos = e.end
	}
	buf.Write(data[pos:])
	return buf.Bytes()
}

// qualified renders a raw name with its prefix.
func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// prefixed returns local qualified by the given prefix.
func prefixed(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// startTag renders a start element, or an empty element when selfClosing.
func startTag(se xml.StartElement, selfClosing bool) []byte {
	var buf bytes.Buffer
	buf.WriteByte('<')
	buf.WriteString(qualified(se.Name))
	for _, a := range se.Attr {
		buf.WriteByte(' ')
		buf.WriteString(qualified(a.Name))
		buf.WriteString(`="`)
		escape(&buf, a.Value)
		buf.WriteByte('"')
	}
	if selfClosing {
		buf.WriteString("/>")
	} else {
		buf.WriteByte('>')
	}
	return buf.Bytes()
}

// setAttr sets a raw attribute in place, appending it when absent.
func setAttr(se *xml.StartElement, local, value string) {
	for i, a := range se.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			se.Attr[i].Value = value
			return
		}
	}
	se.Attr = append(se.Attr, xml.Attr{Name: xml.Name{Local: local}, Value: value})
}

func attr(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func escape(w io.Writer, s string) {
	_ = xml.EscapeText(w, []byte(s))
}

// isSelfClosing reports whether the tag in data[start:end] is an empty element.
func isSelfClosing(data []byte, start, end int64) bool {
	tag := bytes.TrimRight(data[start:end], " \t\r\n")
	return bytes.HasSuffix(tag, []byte("/>"))
}
