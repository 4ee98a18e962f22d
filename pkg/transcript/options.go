// Package transcript converts NWPU transcript PDFs into filled upload templates.
package transcript

import "github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/pdftable"

// Default file names, relative to the working directory.
const (
	DefaultTemplate      = "课程分学期模版.xlsx"
	DefaultChineseOutput = "transcript_chinese.xlsx"
	DefaultEnglishOutput = "transcript_english.xlsx"
)

// Language identifies a transcript layout.
type Language string

const (
	// LanguageChinese is the two-block Chinese transcript.
	LanguageChinese Language = "chinese"
	// LanguageEnglish is the multi-page English transcript.
	LanguageEnglish Language = "english"
)

// Options configures a conversion run.
type Options struct {
	// Template is the xlsx upload template.
	Template string
	// ChineseSource is the Chinese transcript PDF. Empty skips it.
	ChineseSource string
	// EnglishSource is the English transcript PDF. Empty skips it.
	EnglishSource string
	// ChineseOutput receives the records of ChineseSource.
	ChineseOutput string
	// EnglishOutput receives the records of EnglishSource.
	EnglishOutput string
	// Validate checks each source PDF's structure before extraction.
	Validate bool
	// Table configures table detection on the source pages.
	Table pdftable.Settings
}

// DefaultOptions returns the options of a run with no sources selected.
func DefaultOptions() Options {
	return Options{
		Template:      DefaultTemplate,
		ChineseOutput: DefaultChineseOutput,
		EnglishOutput: DefaultEnglishOutput,
		Table:         pdftable.TranscriptSettings(),
	}
}
