// Package config loads optional YAML or JSON configuration for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"

	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript"
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/pdftable"
)

// Flag names that config file values stand in for.
const (
	FlagTemplate              = "template"
	FlagChinese               = "chinese"
	FlagEnglish               = "english"
	FlagOutputChinese         = "output-chinese"
	FlagOutputEnglish         = "output-english"
	FlagValidate              = "validate"
	FlagVerbose               = "verbose"
	FlagIntersectionTolerance = "intersection-tolerance"
	FlagSnapTolerance         = "snap-tolerance"
)

// FileConfig represents the configuration file schema.
type FileConfig struct {
	Template string `yaml:"template" json:"template"`
	Chinese  string `yaml:"chinese" json:"chinese"`
	English  string `yaml:"english" json:"english"`

	Output struct {
		Chinese string `yaml:"chinese" json:"chinese"`
		English string `yaml:"english" json:"english"`
	} `yaml:"output" json:"output"`

	Validate *bool `yaml:"validate" json:"validate"`
	Verbose  bool  `yaml:"verbose" json:"verbose"`

	Table struct {
		VerticalStrategy      string   `yaml:"verticalStrategy" json:"verticalStrategy"`
		HorizontalStrategy    string   `yaml:"horizontalStrategy" json:"horizontalStrategy"`
		IntersectionTolerance *float64 `yaml:"intersectionTolerance" json:"intersectionTolerance"`
		SnapTolerance         *float64 `yaml:"snapTolerance" json:"snapTolerance"`
		JoinTolerance         *float64 `yaml:"joinTolerance" json:"joinTolerance"`
		EdgeMinLength         *float64 `yaml:"edgeMinLength" json:"edgeMinLength"`
		TextTolerance         *float64 `yaml:"textTolerance" json:"textTolerance"`
	} `yaml:"table" json:"table"`
}

// LoadFile reads YAML or JSON into FileConfig, chosen by file extension.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// Apply overlays file values onto opts for every setting whose flag was not
// given on the command line. changed reports whether a flag was set.
func Apply(opts *transcript.Options, fc FileConfig, changed func(flag string) bool) {
	if opts == nil {
		return
	}
	unset := func(flag string) bool { return changed == nil || !changed(flag) }

	if unset(FlagTemplate) && fc.Template != "" {
		opts.Template = fc.Template
	}
	if unset(FlagChinese) && fc.Chinese != "" {
		opts.ChineseSource = fc.Chinese
	}
	if unset(FlagEnglish) && fc.English != "" {
		opts.EnglishSource = fc.English
	}
	if unset(FlagOutputChinese) && fc.Output.Chinese != "" {
		opts.ChineseOutput = fc.Output.Chinese
	}
	if unset(FlagOutputEnglish) && fc.Output.English != "" {
		opts.EnglishOutput = fc.Output.English
	}
	if unset(FlagValidate) && fc.Validate != nil {
		opts.Validate = *fc.Validate
	}

	t := &opts.Table
	if fc.Table.VerticalStrategy != "" {
		t.VerticalStrategy = pdftable.Strategy(fc.Table.VerticalStrategy)
	}
	if fc.Table.HorizontalStrategy != "" {
		t.HorizontalStrategy = pdftable.Strategy(fc.Table.HorizontalStrategy)
	}
	if unset(FlagIntersectionTolerance) && fc.Table.IntersectionTolerance != nil {
		t.IntersectionTolerance = *fc.Table.IntersectionTolerance
	}
	if unset(FlagSnapTolerance) && fc.Table.SnapTolerance != nil {
		t.SnapTolerance = *fc.Table.SnapTolerance
	}
	if fc.Table.JoinTolerance != nil {
		t.JoinTolerance = *fc.Table.JoinTolerance
	}
	if fc.Table.EdgeMinLength != nil {
		t.EdgeMinLength = *fc.Table.EdgeMinLength
	}
	if fc.Table.TextTolerance != nil {
		t.TextTolerance = *fc.Table.TextTolerance
	}
}

// Verbose reports whether the file enables debug logging for a run whose
// verbose flag was not given.
func Verbose(fc FileConfig, changed func(flag string) bool) bool {
	return (changed == nil || !changed(FlagVerbose)) && fc.Verbose
}
