// Package parser turns transcript table grids into template records.
package parser

import (
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/pdftable"
	"github.com/xi-guo-0/nwpu-transcript-to-excel/pkg/transcript/table"
)

// PageSource supplies table grids for the pages of a document.
// Page numbers are 1-based. *pdftable.Document implements it.
type PageSource interface {
	NumPage() int
	ExtractTable(pageNum int, settings pdftable.Settings) (table.Grid, error)
	ExtractTables(pageNum int, settings pdftable.Settings) ([]table.Grid, error)
}
