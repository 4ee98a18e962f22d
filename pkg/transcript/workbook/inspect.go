package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/models"
)

// Summary describes the first worksheet of a written workbook.
type Summary struct {
	Sheet     string          `json:"sheet"`
	Dimension *models.Extent  `json:"dimension,omitempty"`
	Header    []string        `json:"header"`
	Records   []models.Record `json:"records"`
}

// Inspect reads a workbook back into records.
func Inspect(path string) (*Summary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no worksheet in %s", ErrMissingPart, path)
	}
	summary := &Summary{Sheet: sheets[0], Records: []models.Record{}}

	dim, err := f.GetSheetDimension(summary.Sheet)
	if err != nil {
		return nil, err
	}
	summary.Dimension = parseRangeToExtent(dim)

	rows, err := f.GetRows(summary.Sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return summary, nil
	}
	summary.Header = rows[0]
	for _, row := range rows[1:] {
		summary.Records = append(summary.Records, models.RecordFromValues(row))
	}
	return summary, nil
}

// parseRangeToExtent parses a range such as $A$1:$G$10, or a single cell
// reference, into an Extent.
func parseRangeToExtent(rangeStr string) *models.Extent {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")
	if rangeStr == "" {
		return nil
	}

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &models.Extent{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}
