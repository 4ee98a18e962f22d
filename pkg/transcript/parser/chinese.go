package parser

import (
	"strings"

	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/models"
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/pdftable"
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/table"
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/term"
)

// chineseBlock holds the fixed column offsets of one course block.
type chineseBlock struct {
	Name     int
	Credit   int
	Score    int
	Category int
	Semester int
}

// The Chinese transcript prints two course blocks side by side.
var chineseBlocks = [2]chineseBlock{
	{Name: 0, Credit: 3, Score: 4, Category: 5, Semester: 8},
	{Name: 10, Credit: 15, Score: 16, Category: 17, Semester: 20},
}

// chineseSkipPrefixes marks name cells of student metadata, column headers
// and summary rows.
var chineseSkipPrefixes = []string{
	"姓名",
	"民族",
	"班级",
	"课程名称",
	"毕业设计",
	"应修总学分",
	"国家英语",
}

// ParseChinese extracts records from the table on the first page of a
// Chinese transcript.
func ParseChinese(src PageSource, settings pdftable.Settings) ([]models.Record, error) {
	grid, err := src.ExtractTable(1, settings)
	if err != nil {
		return nil, err
	}
	return ChineseRecords(grid), nil
}

// ChineseRecords extracts records from a Chinese transcript grid.
// All left-block records come before all right-block records.
func ChineseRecords(grid table.Grid) []models.Record {
	var buckets [len(chineseBlocks)][]models.Record
	for _, row := range grid {
		if len(row) == 0 {
			continue
		}
		for i, block := range chineseBlocks {
			if rec, ok := chineseRecord(row, block); ok {
				buckets[i] = append(buckets[i], rec)
			}
		}
	}

	records := make([]models.Record, 0, len(buckets[0])+len(buckets[1]))
	for _, bucket := range buckets {
		records = append(records, bucket...)
	}
	return records
}

func chineseRecord(row table.Row, block chineseBlock) (models.Record, bool) {
	name := row.Text(block.Name)
	if name == "" || hasAnyPrefix(name, chineseSkipPrefixes) {
		return models.Record{}, false
	}

	semester, ok := term.Chinese(row.Text(block.Semester))
	if !ok {
		return models.Record{}, false
	}

	return models.Record{
		Course:   name,
		Score:    row.Text(block.Score),
		Credit:   row.Text(block.Credit),
		Hours:    "",
		HourUnit: models.ClassHourUnit,
		Category: row.Text(block.Category),
		Semester: semester,
	}, true
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
