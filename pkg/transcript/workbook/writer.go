package workbook

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/models"
)

// columnStyles are the cell style ids of template columns A through G.
var columnStyles = [...]string{"5", "5", "5", "5", "6", "5", "7"}

// WriteTemplate copies the template to outputPath and fills its first
// worksheet with one row per record below the header row. Only the worksheet
// and shared-string parts are regenerated.
//
// A failure after the copy may leave the unmodified template at outputPath.
func WriteTemplate(templatePath string, records []models.Record, outputPath string) error {
	start := time.Now()

	if err := copyFile(templatePath, outputPath); err != nil {
		return fmt.Errorf("copy template: %w", err)
	}

	replacements, err := renderParts(templatePath, records)
	if err != nil {
		return err
	}
	if err := rewriteArchive(outputPath, replacements); err != nil {
		return err
	}

	log.Info().
		Int("rows", len(records)).
		Str("out", outputPath).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("workbook written")
	return nil
}

// renderParts builds the new worksheet and shared-string parts, keyed by
// part name.
func renderParts(templatePath string, records []models.Record) (map[string][]byte, error) {
	r, err := zip.OpenReader(templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", templatePath, err)
	}
	defer r.Close()

	parts := locateParts(&r.Reader)
	log.Debug().
		Str("sheet", parts.sheetName).
		Str("sheet_part", parts.sheet).
		Str("shared_strings_part", parts.sharedStrings).
		Msg("template parts located")
	sheetXML, err := readPart(&r.Reader, parts.sheet)
	if err != nil {
		return nil, err
	}
	sharedXML, err := readPart(&r.Reader, parts.sharedStrings)
	if err != nil {
		return nil, err
	}

	ws, err := parseWorksheet(sheetXML)
	if err != nil {
		return nil, err
	}
	pool, err := parseSharedStrings(sharedXML)
	if err != nil {
		return nil, err
	}

	rows, err := renderRows(records, pool, ws.prefix)
	if err != nil {
		return nil, err
	}
	lastRow := 1 + len(records)
	sheet, err := ws.render(rows, lastRow)
	if err != nil {
		return nil, err
	}

	return map[string][]byte{
		parts.sheet:         sheet,
		parts.sharedStrings: pool.render(),
	}, nil
}

func readPart(r *zip.Reader, name string) ([]byte, error) {
	data, err := readZipFile(r, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}
	return data, nil
}

// renderRows serialises records as worksheet rows starting at row 2. Empty
// values become style-only cells; other values are shared-string cells.
func renderRows(records []models.Record, pool *sharedStrings, prefix string) ([]byte, error) {
	rowTag := prefixed(prefix, "row")
	cellTag := prefixed(prefix, "c")
	valueTag := prefixed(prefix, "v")

	var buf bytes.Buffer
	for i, rec := range records {
		rowNum := i + 2
		buf.WriteString("<" + rowTag + ` r="` + strconv.Itoa(rowNum) + `" spans="1:7">`)
		for col, value := range rec.Values() {
			ref, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, err
			}
			buf.WriteString("<" + cellTag + ` r="` + ref + `" s="` + columnStyles[col] + `"`)
			if value == "" {
				buf.WriteString("/>")
				continue
			}
			idx := pool.add(value)
			buf.WriteString(` t="s"><` + valueTag + ">" + strconv.Itoa(idx) + "</" + valueTag + "></" + cellTag + ">")
		}
		buf.WriteString("</" + rowTag + ">")
	}
	return buf.Bytes(), nil
}

// dimensionRef returns the used range of a sheet whose last row is lastRow.
func dimensionRef(lastRow int) (string, error) {
	first, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return "", err
	}
	last, err := excelize.CoordinatesToCellName(len(columnStyles), lastRow)
	if err != nil {
		return "", err
	}
	return first + ":" + last, nil
}
