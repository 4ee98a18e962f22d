package parser

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/models"
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/pdftable"
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/table"
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/term"
)

// Header labels of the English transcript, in left-to-right order.
const (
	labelCourse   = "Course"
	labelCredit   = "Credit"
	labelScore    = "Score"
	labelType     = "Type"
	labelSemester = "Semester"
)

var headerLabels = []string{labelCourse, labelCredit, labelScore, labelType, labelSemester}

var errHeaderLabel = errors.New("header missing expected label")

// columnPositions maps one course block's fields to column indices.
// It is derived from a table's header row and only valid for that table.
type columnPositions struct {
	Course   int
	Credit   int
	Score    int
	Type     int
	Semester int
}

// ParseEnglish extracts records from every table on every page of an
// English transcript.
func ParseEnglish(src PageSource, settings pdftable.Settings) ([]models.Record, error) {
	var tables []table.Grid
	for pageNum := 1; pageNum <= src.NumPage(); pageNum++ {
		grids, err := src.ExtractTables(pageNum, settings)
		if err != nil {
			return nil, err
		}
		log.Debug().Int("page", pageNum).Int("tables", len(grids)).Msg("english transcript page")
		tables = append(tables, grids...)
	}
	return EnglishRecords(tables), nil
}

// EnglishRecords extracts records from English transcript tables.
// Tables without a recognisable header row contribute nothing.
func EnglishRecords(tables []table.Grid) []models.Record {
	var records []models.Record
	for i, grid := range tables {
		if len(grid) == 0 {
			continue
		}

		headerIdx := findHeaderRow(grid)
		if headerIdx < 0 {
			log.Debug().Int("table", i).Msg("no header row; skipping table")
			continue
		}

		left, right, err := parseHeaderPositions(grid[headerIdx])
		if err != nil {
			log.Debug().Int("table", i).Strs("header", grid[headerIdx:headerIdx+1].Strings()[0]).
				Err(err).Msg("incomplete header; skipping table")
			continue
		}

		var leftBucket, rightBucket []models.Record
		for _, row := range grid[headerIdx+1:] {
			if rec, ok := englishRecord(row, left); ok {
				leftBucket = append(leftBucket, rec)
			}
			if rec, ok := englishRecord(row, right); ok {
				rightBucket = append(rightBucket, rec)
			}
		}
		records = append(records, leftBucket...)
		records = append(records, rightBucket...)
	}
	return records
}

// findHeaderRow returns the index of the first row naming both the course
// and semester columns, or -1.
func findHeaderRow(grid table.Grid) int {
	for i, row := range grid {
		text := row.Joined()
		if strings.Contains(text, labelCourse) && strings.Contains(text, labelSemester) {
			return i
		}
	}
	return -1
}

// parseHeaderPositions locates the left and right course blocks in a header row.
// The right block search starts after the left block's semester column.
func parseHeaderPositions(header table.Row) (left, right columnPositions, err error) {
	left, err = findPositions(header, 0)
	if err != nil {
		return left, right, err
	}
	right, err = findPositions(header, left.Semester+1)
	return left, right, err
}

func findPositions(header table.Row, start int) (columnPositions, error) {
	found := make([]int, len(headerLabels))
	cursor := start
	for i, label := range headerLabels {
		idx := -1
		for col := cursor; col < len(header); col++ {
			cell := header[col]
			if cell.Present && cell.Text != "" && strings.Contains(cell.Text, label) {
				idx = col
				break
			}
		}
		if idx < 0 {
			return columnPositions{}, errHeaderLabel
		}
		found[i] = idx
		cursor = idx + 1
	}
	return columnPositions{
		Course:   found[0],
		Credit:   found[1],
		Score:    found[2],
		Type:     found[3],
		Semester: found[4],
	}, nil
}

func englishRecord(row table.Row, pos columnPositions) (models.Record, bool) {
	name := row.Text(pos.Course)
	if name == "" || name == labelCourse {
		return models.Record{}, false
	}

	semester, ok := term.English(row.Text(pos.Semester))
	if !ok {
		return models.Record{}, false
	}

	return models.Record{
		Course:   name,
		Score:    row.Text(pos.Score),
		Credit:   row.Text(pos.Credit),
		Category: row.Text(pos.Type),
		Semester: semester,
	}, true
}
