package transcript

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/models"
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/parser"
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/pdftable"
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/workbook"
)

// Result describes one written workbook.
type Result struct {
	Language Language `json:"language"`
	Source   string   `json:"source"`
	Output   string   `json:"output"`
	Rows     int      `json:"rows"`
}

type parseFunc func(parser.PageSource, pdftable.Settings) ([]models.Record, error)

type task struct {
	language Language
	source   string
	output   string
	parse    parseFunc
}

func (o Options) tasks() []task {
	var tasks []task
	if o.ChineseSource != "" {
		tasks = append(tasks, task{LanguageChinese, o.ChineseSource, o.ChineseOutput, parser.ParseChinese})
	}
	if o.EnglishSource != "" {
		tasks = append(tasks, task{LanguageEnglish, o.EnglishSource, o.EnglishOutput, parser.ParseEnglish})
	}
	return tasks
}

// Convert extracts the selected transcripts and writes one workbook per
// transcript, Chinese first. All inputs are checked before anything is
// written. On failure the results of the transcripts already written are
// returned with the error.
func Convert(opts Options) ([]Result, error) {
	if err := opts.Table.Validate(); err != nil {
		return nil, err
	}
	if !isFile(opts.Template) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, opts.Template)
	}
	tasks := opts.tasks()
	if len(tasks) == 0 {
		return nil, ErrNoSources
	}
	for _, t := range tasks {
		if !isFile(t.source) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, t.source)
		}
	}

	logger := log.With().Str("run", uuid.NewString()).Logger()
	results := make([]Result, 0, len(tasks))
	for _, t := range tasks {
		n, err := convertOne(t, opts, logger)
		if err != nil {
			return results, err
		}
		results = append(results, Result{Language: t.language, Source: t.source, Output: t.output, Rows: n})
	}
	return results, nil
}

func convertOne(t task, opts Options, logger zerolog.Logger) (int, error) {
	logger = logger.With().Str("language", string(t.language)).Str("source", t.source).Logger()

	if opts.Validate {
		if err := pdftable.Validate(t.source); err != nil {
			return 0, NewConversionError(t.language, StageValidate, fmt.Errorf("%w: %w", ErrInvalidSource, err))
		}
		logger.Debug().Msg("source validated")
	}

	doc, err := pdftable.Open(t.source)
	if err != nil {
		return 0, NewConversionError(t.language, StageOpen, err)
	}
	defer doc.Close()

	records, err := t.parse(doc, opts.Table)
	if err != nil {
		return 0, NewConversionError(t.language, StageParse, err)
	}
	logger.Debug().Int("pages", doc.NumPage()).Int("records", len(records)).Msg("transcript parsed")

	if err := workbook.WriteTemplate(opts.Template, records, t.output); err != nil {
		return 0, NewConversionError(t.language, StageWrite, err)
	}
	return len(records), nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
