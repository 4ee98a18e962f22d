package workbook

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/models"
)

const (
	nsMain    = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRels    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	relPrefix = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	xmlDecl   = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

var fixtureTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// Worksheet fragments of the default template.
var (
	sheetOpen   = `<worksheet xmlns="` + nsMain + `" xmlns:r="` + nsRels + `">`
	sheetDim    = `<dimension ref="A1:G2"/>`
	sheetViews  = `<sheetViews><sheetView workbookViewId="0"/></sheetViews><cols><col min="1" max="1" width="30" customWidth="1"/></cols>`
	headerRow   = buildHeaderRow()
	oldDataRow  = `<row r="2" spans="1:7"><c r="A2" s="5" t="s"><v>7</v></c></row>`
	sheetTail   = `<mergeCells count="1"><mergeCell ref="H1:I1"/></mergeCells><pageMargins left="0.7" right="0.7" top="0.75" bottom="0.75" header="0.3" footer="0.3"/></worksheet>`
	sharedItems = buildSharedItems()
)

func buildHeaderRow() string {
	var b strings.Builder
	b.WriteString(`<row r="1" spans="1:7">`)
	for i := range models.Headers {
		ref := string(rune('A'+i)) + "1"
		b.WriteString(`<c r="` + ref + `" s="1" t="s"><v>` + strconv.Itoa(i) + `</v></c>`)
	}
	b.WriteString(`</row>`)
	return b.String()
}

// buildSharedItems lists the headers at indices 0-6 and a rich-text entry at 7.
func buildSharedItems() string {
	var b strings.Builder
	for _, h := range models.Headers {
		b.WriteString(`<si><t>` + h + `</t></si>`)
	}
	b.WriteString(`<si><r><rPr><b/></rPr><t>示例</t></r><r><t>课程</t></r><rPh sb="0" eb="2"><t>しれい</t></rPh></si>`)
	return b.String()
}

func defaultSheetXML() string {
	return xmlDecl + sheetOpen + sheetDim + sheetViews + `<sheetData>` + headerRow + oldDataRow + `</sheetData>` + sheetTail
}

func defaultSharedXML() string {
	return xmlDecl + `<sst xmlns="` + nsMain + `" count="8" uniqueCount="8">` + sharedItems + `</sst>`
}

func stylesXML() string {
	var b strings.Builder
	b.WriteString(xmlDecl + `<styleSheet xmlns="` + nsMain + `"><fonts count="1"><font><sz val="11"/></font></fonts>`)
	b.WriteString(`<fills count="1"><fill><patternFill patternType="none"/></fill></fills><borders count="1"><border/></borders>`)
	b.WriteString(`<cellStyleXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0"/></cellStyleXfs><cellXfs count="8">`)
	for i := 0; i < 8; i++ {
		b.WriteString(`<xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/>`)
	}
	b.WriteString(`</cellXfs></styleSheet>`)
	return b.String()
}

type zipPart struct {
	name string
	body string
}

// templateFixture describes a hand-assembled xlsx package.
type templateFixture struct {
	sheetTarget  string
	sheetPart    string
	sheetXML     string
	sharedTarget string
	sharedPart   string
	sharedXML    string
	extraSheets  string
}

func newTemplateFixture() templateFixture {
	return templateFixture{
		sheetTarget:  "worksheets/sheet1.xml",
		sheetPart:    "xl/worksheets/sheet1.xml",
		sheetXML:     defaultSheetXML(),
		sharedTarget: "sharedStrings.xml",
		sharedPart:   "xl/sharedStrings.xml",
		sharedXML:    defaultSharedXML(),
	}
}

func (tf templateFixture) parts() []zipPart {
	contentTypes := xmlDecl + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>` +
		`<Override PartName="/` + tf.sheetPart + `" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>` +
		`<Override PartName="/` + tf.sharedPart + `" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"/>` +
		`<Override PartName="/xl/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"/>` +
		`</Types>`
	rootRels := xmlDecl + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="` + relPrefix + `officeDocument" Target="xl/workbook.xml"/></Relationships>`
	workbook := xmlDecl + `<workbook xmlns="` + nsMain + `" xmlns:r="` + nsRels + `"><sheets>` +
		`<sheet name="成绩" sheetId="1" r:id="rId1"/>` + tf.extraSheets + `</sheets></workbook>`
	workbookRels := xmlDecl + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="` + relPrefix + `worksheet" Target="` + tf.sheetTarget + `"/>` +
		`<Relationship Id="rId2" Type="` + relPrefix + `styles" Target="styles.xml"/>` +
		`<Relationship Id="rId3" Type="` + relPrefix + `sharedStrings" Target="` + tf.sharedTarget + `"/>` +
		`</Relationships>`

	parts := []zipPart{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", rootRels},
		{"docProps/app.xml", xmlDecl + `<Properties><Application>WPS</Application></Properties>`},
		{"xl/workbook.xml", workbook},
		{"xl/_rels/workbook.xml.rels", workbookRels},
		{tf.sheetPart, tf.sheetXML},
		{"xl/styles.xml", stylesXML()},
	}
	if tf.sharedXML != "" {
		parts = append(parts, zipPart{tf.sharedPart, tf.sharedXML})
	}
	return parts
}

// write stores the package under a temporary directory and returns its path.
func (tf templateFixture) write(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.xlsx")
	writeZip(t, path, tf.parts(), "template comment")
	return path
}

func writeZip(t *testing.T, path string, parts []zipPart, comment string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: fixtureTime})
		if err != nil {
			t.Fatalf("Failed to add %s: %v", p.name, err)
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			t.Fatalf("Failed to write %s: %v", p.name, err)
		}
	}
	if comment != "" {
		if err := zw.SetComment(comment); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

// readEntry returns the decompressed content of one archive entry.
func readEntry(t *testing.T, path, name string) string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer r.Close()
	data, err := readZipFile(&r.Reader, name)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	if data == nil {
		t.Fatalf("Entry %s not found", name)
	}
	return string(data)
}

func readRaw(t *testing.T, f *zip.File) []byte {
	t.Helper()
	rc, err := f.OpenRaw()
	if err != nil {
		t.Fatalf("OpenRaw(%s) error = %v", f.Name, err)
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
