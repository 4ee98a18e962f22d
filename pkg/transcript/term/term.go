// Package term converts transcript semester labels to canonical semester codes.
//
// A semester code has the form START-END-N, where N is the term within the
// academic year: 1 for autumn, 2 for spring, 3 for the summer or winter term.
package term

import (
	"regexp"
	"strings"
)

var (
	chinesePattern = regexp.MustCompile(`^(\d{4})-(\d{4})([春夏秋冬])$`)
	englishPattern = regexp.MustCompile(`^(\d)(?:st|nd|rd|th)?\s*(\d{4}-\d{4})$`)
)

// chineseSeasons maps the season character to the term number.
// Summer and winter share term 3: the upload template has three terms per year.
var chineseSeasons = map[string]string{
	"秋": "1",
	"春": "2",
	"冬": "3",
	"夏": "3",
}

// chineseHeaderCells are column-header values that share the semester column.
var chineseHeaderCells = map[string]bool{
	"学期":    true,
	"总学分绩点": true,
}

// Chinese converts a label such as "2021-2022秋" to "2021-2022-1".
// It reports false when the label is not a semester.
func Chinese(raw string) (string, bool) {
	label := strings.TrimSpace(raw)
	if label == "" || chineseHeaderCells[label] {
		return "", false
	}
	m := chinesePattern.FindStringSubmatch(label)
	if m == nil {
		return "", false
	}
	n, ok := chineseSeasons[m[3]]
	if !ok {
		return "", false
	}
	return m[1] + "-" + m[2] + "-" + n, true
}

// English converts a label such as "1st 2020-2021" to "2020-2021-1".
// Line breaks inside the label are treated as spaces.
// It reports false when the label is not a semester.
func English(raw string) (string, bool) {
	label := strings.NewReplacer("\n", " ", "\r", " ").Replace(raw)
	label = strings.TrimSpace(label)
	if label == "" {
		return "", false
	}
	m := englishPattern.FindStringSubmatch(label)
	if m == nil {
		return "", false
	}
	return m[2] + "-" + m[1], true
}
