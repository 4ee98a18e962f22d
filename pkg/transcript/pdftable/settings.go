// Package pdftable detects ruled tables on PDF pages and returns them as cell grids.
//
// Detection follows the lines strategy: stroked and filled path segments are
// turned into horizontal and vertical edges, snapped and joined, and the
// rectangles bounded by connected edge intersections become table cells.
package pdftable

import (
	"errors"
	"fmt"
)

// Strategy selects which page graphics produce table edges.
type Strategy string

const (
	// StrategyLines uses line segments and rectangle sides.
	StrategyLines Strategy = "lines"
	// StrategyLinesStrict uses line segments only.
	StrategyLinesStrict Strategy = "lines_strict"
)

// ErrUnsupportedStrategy indicates an unknown edge strategy.
var ErrUnsupportedStrategy = errors.New("unsupported table strategy")

// Settings configures table detection. Distances are in PDF points.
type Settings struct {
	VerticalStrategy   Strategy `yaml:"verticalStrategy" json:"verticalStrategy"`
	HorizontalStrategy Strategy `yaml:"horizontalStrategy" json:"horizontalStrategy"`
	// IntersectionTolerance is how far apart a horizontal and a vertical edge
	// may be and still be considered to cross.
	IntersectionTolerance float64 `yaml:"intersectionTolerance" json:"intersectionTolerance"`
	// SnapTolerance aligns parallel edges closer than this distance.
	SnapTolerance float64 `yaml:"snapTolerance" json:"snapTolerance"`
	// JoinTolerance merges collinear edges separated by at most this gap.
	JoinTolerance float64 `yaml:"joinTolerance" json:"joinTolerance"`
	// EdgeMinLength drops edges shorter than this after joining.
	EdgeMinLength float64 `yaml:"edgeMinLength" json:"edgeMinLength"`
	// TextTolerance groups glyphs into lines and words inside a cell.
	TextTolerance float64 `yaml:"textTolerance" json:"textTolerance"`
}

// DefaultSettings returns general-purpose detection settings.
func DefaultSettings() Settings {
	return Settings{
		VerticalStrategy:      StrategyLines,
		HorizontalStrategy:    StrategyLines,
		IntersectionTolerance: 3,
		SnapTolerance:         3,
		JoinTolerance:         3,
		EdgeMinLength:         3,
		TextTolerance:         3,
	}
}

// TranscriptSettings returns the settings that keep the column alignment of
// the NWPU transcript layouts.
func TranscriptSettings() Settings {
	s := DefaultSettings()
	s.IntersectionTolerance = 5
	s.SnapTolerance = 6
	return s
}

// Validate checks the strategies and tolerances.
func (s Settings) Validate() error {
	for _, st := range []Strategy{s.VerticalStrategy, s.HorizontalStrategy} {
		if st != StrategyLines && st != StrategyLinesStrict {
			return fmt.Errorf("%w: %q", ErrUnsupportedStrategy, st)
		}
	}
	if s.IntersectionTolerance < 0 || s.SnapTolerance < 0 || s.JoinTolerance < 0 ||
		s.EdgeMinLength < 0 || s.TextTolerance < 0 {
		return errors.New("table settings: negative tolerance")
	}
	return nil
}
