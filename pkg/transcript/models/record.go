// Package models defines data structures shared by the transcript extractors and the workbook writer.
package models

// Column headers of the upload template, in template column order.
const (
	HeaderCourse   = "课程名"
	HeaderScore    = "分数"
	HeaderCredit   = "学分"
	HeaderHours    = "学时"
	HeaderHourUnit = "学时单位"
	HeaderCategory = "课程类别"
	HeaderSemester = "学期"
)

// Headers lists the template columns A through G.
var Headers = []string{
	HeaderCourse,
	HeaderScore,
	HeaderCredit,
	HeaderHours,
	HeaderHourUnit,
	HeaderCategory,
	HeaderSemester,
}

// ClassHourUnit is the hour-unit label emitted for Chinese transcript rows.
const ClassHourUnit = "学时"

// Record is one course row of the upload template.
// Missing values are empty strings.
type Record struct {
	// Course is the course name.
	Course string `json:"course"`
	// Score is the grade as printed on the transcript.
	Score string `json:"score"`
	// Credit is the credit value as printed on the transcript.
	Credit string `json:"credit"`
	// Hours is the class-hour count.
	Hours string `json:"hours"`
	// HourUnit is the class-hour unit label.
	HourUnit string `json:"hour_unit"`
	// Category is the course category (or type, on English transcripts).
	Category string `json:"category"`
	// Semester is the canonical semester code, e.g. 2021-2022-1.
	Semester string `json:"semester"`
}

// Values returns the record fields in template column order.
func (r Record) Values() []string {
	return []string{r.Course, r.Score, r.Credit, r.Hours, r.HourUnit, r.Category, r.Semester}
}

// RecordFromValues builds a Record from cells in template column order.
// Missing trailing cells are left empty.
func RecordFromValues(values []string) Record {
	at := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
	return Record{
		Course:   at(0),
		Score:    at(1),
		Credit:   at(2),
		Hours:    at(3),
		HourUnit: at(4),
		Category: at(5),
		Semester: at(6),
	}
}
