// Package workbook writes transcript records into an xlsx upload template.
//
// The template package is treated as opaque: only the primary worksheet part
// and the shared-string part are regenerated, and every other part is copied
// through unchanged.
package workbook

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/rs/zerolog/log"
)

// Default part names used when the workbook relationships cannot be resolved.
const (
	defaultSheetPart         = "xl/worksheets/sheet1.xml"
	defaultSharedStringsPart = "xl/sharedStrings.xml"
)

// ErrMissingPart indicates that the template lacks a part the writer needs.
var ErrMissingPart = errors.New("template part not found")

// packageParts names the parts of the template the writer regenerates.
type packageParts struct {
	sheetName     string
	sheet         string
	sharedStrings string
}

// sheetEntry is a <sheet> element of xl/workbook.xml.
type sheetEntry struct {
	name string
	rID  string
}

// locateParts resolves the first worksheet and the shared-string part from
// the workbook relationships.
func locateParts(r *zip.Reader) packageParts {
	p := packageParts{}

	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		log.Warn().Str("part", defaultSheetPart).Msg("workbook part unreadable, using default part names")
		return withDefaults(p)
	}
	sheets := parseWorkbookSheets(workbookXML)

	relsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil || relsXML == nil {
		log.Warn().Str("part", defaultSheetPart).Msg("workbook relationships unreadable, using default part names")
		return withDefaults(p)
	}
	rels := parseWorkbookRels(relsXML)

	if len(sheets) > 0 {
		p.sheetName = sheets[0].name
		if rel, ok := rels[sheets[0].rID]; ok && strings.HasSuffix(rel.relType, "/worksheet") {
			p.sheet = resolveRelativePath(rel.target, "xl")
		}
	}
	for _, rel := range rels {
		if strings.HasSuffix(rel.relType, "/sharedStrings") {
			p.sharedStrings = resolveRelativePath(rel.target, "xl")
			break
		}
	}
	if p.sheet == "" || p.sharedStrings == "" {
		log.Warn().Str("sheet", p.sheet).Str("shared_strings", p.sharedStrings).
			Msg("workbook relationships incomplete, using default part names")
	}
	return withDefaults(p)
}

func withDefaults(p packageParts) packageParts {
	if p.sheet == "" {
		p.sheet = defaultSheetPart
	}
	if p.sharedStrings == "" {
		p.sharedStrings = defaultSharedStringsPart
	}
	return p
}

// readZipFile returns the content of the named entry, or nil when the
// archive has no such entry.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

// resolveRelativePath resolves a relationship target against the directory
// of its source part. Absolute targets are relative to the package root.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// parseWorkbookSheets returns the workbook's sheets in tab order.
func parseWorkbookSheets(data []byte) []sheetEntry {
	var result []sheetEntry
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var entry sheetEntry
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					entry.name = attr.Value
				case "id":
					entry.rID = attr.Value
				}
			}
			if entry.name != "" && entry.rID != "" {
				result = append(result, entry)
			}
		}
	}

	return result
}

type relationship struct {
	relType string
	target  string
}

// parseWorkbookRels maps relationship ids to their type and target.
func parseWorkbookRels(data []byte) map[string]relationship {
	result := make(map[string]relationship)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID string
			var rel relationship
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Type":
					rel.relType = attr.Value
				case "Target":
					rel.target = attr.Value
				}
			}
			if rID != "" && rel.target != "" {
				result[rID] = rel
			}
		}
	}

	return result
}
