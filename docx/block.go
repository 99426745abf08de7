package docx

import (
	"slices"

	"docxgen/common"
)

// Block is a single piece of document content. The set of implementations is
// closed: TextRun, AlignedParagraph, ListItem, Table, CustomTable and Image.
type Block interface {
	isBlock()
}

// TextRun is a paragraph with a single run of text. Zero SizePt and empty
// Color mean document defaults.
type TextRun struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	SizePt    int
	Color     string
}

type AlignedParagraph struct {
	Text  string
	Align common.Alignment
}

// ListItem ordinal is not stored, it depends on neighboring blocks (see Ordinals).
type ListItem struct {
	Text string
	Kind common.ListKind
}

// Table is a grid of empty cells.
type Table struct {
	Rows int
	Cols int
}

// CustomTable keeps rows as supplied, rows may have different length.
type CustomTable struct {
	Cells [][]string
}

// Width returns length of the longest row, all rows are padded to it when
// rendered.
func (t CustomTable) Width() int {
	w := 0
	for _, row := range t.Cells {
		w = max(w, len(row))
	}
	return w
}

// Image holds already processed payload. Width and Height are requested
// display size in device independent pixels (1/96 inch), PixelWidth and
// PixelHeight describe stored bitmap.
type Image struct {
	Data        []byte
	Format      common.ImageFormat
	PixelWidth  int
	PixelHeight int
	Width       int
	Height      int
}

func (TextRun) isBlock()          {}
func (AlignedParagraph) isBlock() {}
func (ListItem) isBlock()         {}
func (Table) isBlock()            {}
func (CustomTable) isBlock()      {}
func (Image) isBlock()            {}

// cloneBlock makes sure no slice is shared between builder and caller.
func cloneBlock(b Block) Block {
	switch v := b.(type) {
	case CustomTable:
		cells := make([][]string, len(v.Cells))
		for i, row := range v.Cells {
			cells[i] = slices.Clone(row)
		}
		return CustomTable{Cells: cells}
	case Image:
		v.Data = slices.Clone(v.Data)
		return v
	default:
		return b
	}
}
