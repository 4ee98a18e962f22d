package transcript

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound indicates the template file does not exist.
var ErrTemplateNotFound = errors.New("template not found")

// ErrSourceNotFound indicates a transcript PDF does not exist.
var ErrSourceNotFound = errors.New("source not found")

// ErrNoSources indicates that neither transcript was selected.
var ErrNoSources = errors.New("no transcript source given")

// ErrInvalidSource indicates a transcript PDF that failed structural validation.
var ErrInvalidSource = errors.New("invalid source pdf")

// Conversion stages reported by ConversionError.
const (
	StageValidate = "validate"
	StageOpen     = "open"
	StageParse    = "parse"
	StageWrite    = "write"
)

// ConversionError represents an error while converting one transcript.
type ConversionError struct {
	Language Language
	Stage    string
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s transcript (%s): %v", e.Language, e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError creates a new ConversionError.
func NewConversionError(language Language, stage string, err error) *ConversionError {
	return &ConversionError{
		Language: language,
		Stage:    stage,
		Err:      err,
	}
}
