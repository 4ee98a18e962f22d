package term

import "testing"

func TestChinese(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"2021-2022秋", "2021-2022-1", true},
		{"2021-2022春", "2021-2022-2", true},
		{"2021-2022夏", "2021-2022-3", true},
		{"2021-2022冬", "2021-2022-3", true},
		{"  2019-2020春\n", "2019-2020-2", true},
		{"学期", "", false},
		{"总学分绩点", "", false},
		{"", "", false},
		{"   ", "", false},
		{"2021-2022", "", false},
		{"2021-2022 秋", "", false},
		{"2021—2022秋", "", false},
		{"21-22秋", "", false},
		{"2021-2022秋季", "", false},
		{"2021-2022年", "", false},
	}

	for _, tt := range tests {
		result, ok := Chinese(tt.input)
		if result != tt.expected || ok != tt.ok {
			t.Errorf("Chinese(%q) = (%q, %v), expected (%q, %v)",
				tt.input, result, ok, tt.expected, tt.ok)
		}
	}
}

func TestEnglish(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"1st 2020-2021", "2020-2021-1", true},
		{"2nd 2020-2021", "2020-2021-2", true},
		{"3rd 2022-2023", "2022-2023-3", true},
		{"4th 2022-2023", "2022-2023-4", true},
		{"3 2022-2023", "2022-2023-3", true},
		{"1st2020-2021", "2020-2021-1", true},
		{"1st\n2020-2021", "2020-2021-1", true},
		{"\r\n2nd\r\n2021-2022\n", "2021-2022-2", true},
		{"", "", false},
		{"Semester", "", false},
		{"1 st 2020-2021", "", false},
		{"12 2020-2021", "", false},
		{"1x 2020-2021", "", false},
		{"1st", "", false},
		{"1st 2020 - 2021", "", false},
		{"1st 2020-21", "", false},
		{"first 2020-2021", "", false},
	}

	for _, tt := range tests {
		result, ok := English(tt.input)
		if result != tt.expected || ok != tt.ok {
			t.Errorf("English(%q) = (%q, %v), expected (%q, %v)",
				tt.input, result, ok, tt.expected, tt.ok)
		}
	}
}
