package workbook

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/models"
)

func TestInspect(t *testing.T) {
	template := newTemplateFixture().write(t)
	out := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteTemplate(template, sampleRecords, out); err != nil {
		t.Fatalf("WriteTemplate() error = %v", err)
	}

	summary, err := Inspect(out)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if summary.Sheet != "成绩" {
		t.Errorf("Sheet = %q, expected %q", summary.Sheet, "成绩")
	}
	expectedDim := &models.Extent{R1: 1, C1: 1, R2: 3, C2: 7}
	if !reflect.DeepEqual(summary.Dimension, expectedDim) {
		t.Errorf("Dimension = %+v, expected %+v", summary.Dimension, expectedDim)
	}
	if !reflect.DeepEqual(summary.Header, models.Headers) {
		t.Errorf("Header = %v, expected %v", summary.Header, models.Headers)
	}
	if !reflect.DeepEqual(summary.Records, sampleRecords) {
		t.Errorf("Records = %+v, expected %+v", summary.Records, sampleRecords)
	}
}

func TestInspectHeaderOnly(t *testing.T) {
	template := newTemplateFixture().write(t)
	out := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteTemplate(template, nil, out); err != nil {
		t.Fatalf("WriteTemplate() error = %v", err)
	}

	summary, err := Inspect(out)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if len(summary.Records) != 0 {
		t.Errorf("Expected no records, got %+v", summary.Records)
	}
	if expected := (models.Extent{R1: 1, C1: 1, R2: 1, C2: 7}); summary.Dimension == nil || *summary.Dimension != expected {
		t.Errorf("Dimension = %+v, expected %+v", summary.Dimension, expected)
	}
}

func TestParseRangeToExtent(t *testing.T) {
	tests := []struct {
		input    string
		expected *models.Extent
	}{
		{"A1:G10", &models.Extent{R1: 1, C1: 1, R2: 10, C2: 7}},
		{"$B$2:$D$5", &models.Extent{R1: 2, C1: 2, R2: 5, C2: 4}},
		{"A1", &models.Extent{R1: 1, C1: 1, R2: 1, C2: 1}},
		{"", nil},
		{"A1:B2:C3", nil},
		{"invalid", nil},
	}

	for _, tt := range tests {
		result := parseRangeToExtent(tt.input)
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("parseRangeToExtent(%q) = %+v, expected %+v", tt.input, result, tt.expected)
		}
	}
}
