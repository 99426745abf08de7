package docx

import (
	"strconv"

	"github.com/beevik/etree"
)

const (
	// page margins, twips
	pageMargin = 1440
	// device independent pixel in EMU
	emuPerPixel = 9525
)

// documentPart renders body of the document. Every block kind must be
// handled here, unknown block is a programming error reported as
// SerializationFailure.
func (b *Builder) documentPart(plan numberingPlan, imageRel func(int, Image) string) (*etree.Document, error) {
	doc := newPart()
	root := doc.CreateElement("w:document")
	setAttrs(root,
		"xmlns:w", nsW,
		"xmlns:r", nsR,
		"xmlns:wp", nsWP,
		"xmlns:a", nsA,
		"xmlns:pic", nsPic)
	body := root.CreateElement("w:body")

	pageW, pageH := b.cfg.Paper.Twips()
	textWidth := pageW - 2*pageMargin

	images := 0
	for i, blk := range b.blocks {
		switch v := blk.(type) {
		case TextRun:
			p := body.CreateElement("w:p")
			addRun(p, v.Text, &v)
		case AlignedParagraph:
			p := body.CreateElement("w:p")
			p.CreateElement("w:pPr").CreateElement("w:jc").CreateAttr("w:val", v.Align.Jc())
			addRun(p, v.Text, nil)
		case ListItem:
			p := body.CreateElement("w:p")
			ppr := p.CreateElement("w:pPr")
			ppr.CreateElement("w:pStyle").CreateAttr("w:val", "ListParagraph")
			numPr := ppr.CreateElement("w:numPr")
			numPr.CreateElement("w:ilvl").CreateAttr("w:val", "0")
			numPr.CreateElement("w:numId").CreateAttr("w:val", strconv.Itoa(plan.numIDs[i]))
			addRun(p, v.Text, nil)
		case Table:
			addTable(body, v.Rows, v.Cols, textWidth, func(int, int) string { return "" })
		case CustomTable:
			addTable(body, len(v.Cells), v.Width(), textWidth, func(r, c int) string {
				if c < len(v.Cells[r]) {
					return v.Cells[r][c]
				}
				return ""
			})
		case Image:
			images++
			rid := imageRel(images, v)
			addDrawing(body.CreateElement("w:p").CreateElement("w:r"), images, rid, v)
		default:
			return nil, serializationFailure("generate", "unsupported block %T at position %d", blk, i)
		}

		// adjacent tables are merged by word processors
		if isTable(blk) && i+1 < len(b.blocks) && isTable(b.blocks[i+1]) {
			body.CreateElement("w:p")
		}
	}

	sect := body.CreateElement("w:sectPr")
	setAttrs(sect.CreateElement("w:pgSz"), "w:w", strconv.Itoa(pageW), "w:h", strconv.Itoa(pageH))
	margin := strconv.Itoa(pageMargin)
	setAttrs(sect.CreateElement("w:pgMar"),
		"w:top", margin, "w:right", margin, "w:bottom", margin, "w:left", margin,
		"w:header", "720", "w:footer", "720", "w:gutter", "0")
	return doc, nil
}

func isTable(blk Block) bool {
	switch blk.(type) {
	case Table, CustomTable:
		return true
	}
	return false
}

// addRun appends run to paragraph. Run properties are written only for
// explicitly formatted text, otherwise document defaults apply.
func addRun(p *etree.Element, text string, tr *TextRun) {
	r := p.CreateElement("w:r")
	if tr != nil && (tr.Bold || tr.Italic || tr.Underline || tr.SizePt > 0 || len(tr.Color) > 0) {
		// element order is fixed by schema
		rpr := r.CreateElement("w:rPr")
		if tr.Bold {
			rpr.CreateElement("w:b")
		}
		if tr.Italic {
			rpr.CreateElement("w:i")
		}
		if len(tr.Color) > 0 {
			rpr.CreateElement("w:color").CreateAttr("w:val", tr.Color)
		}
		if tr.SizePt > 0 {
			hp := strconv.Itoa(tr.SizePt * 2)
			rpr.CreateElement("w:sz").CreateAttr("w:val", hp)
			rpr.CreateElement("w:szCs").CreateAttr("w:val", hp)
		}
		if tr.Underline {
			rpr.CreateElement("w:u").CreateAttr("w:val", "single")
		}
	}
	for _, seg := range splitSegments(text) {
		switch seg.kind {
		case segTab:
			r.CreateElement("w:tab")
		case segBreak:
			r.CreateElement("w:br")
		default:
			t := r.CreateElement("w:t")
			t.CreateAttr("xml:space", "preserve")
			t.SetText(seg.text)
		}
	}
}

// addTable renders rows x cols grid with one paragraph per cell. Cell text is
// supplied by content function.
func addTable(body *etree.Element, rows, cols, textWidth int, content func(r, c int) string) {
	colWidth := strconv.Itoa(textWidth / cols)

	tbl := body.CreateElement("w:tbl")
	tpr := tbl.CreateElement("w:tblPr")
	tpr.CreateElement("w:tblStyle").CreateAttr("w:val", "TableGrid")
	setAttrs(tpr.CreateElement("w:tblW"), "w:w", "0", "w:type", "auto")
	setAttrs(tpr.CreateElement("w:tblLook"), "w:val", "04A0", "w:firstRow", "1", "w:lastRow", "0",
		"w:firstColumn", "1", "w:lastColumn", "0", "w:noHBand", "0", "w:noVBand", "1")

	grid := tbl.CreateElement("w:tblGrid")
	for range cols {
		grid.CreateElement("w:gridCol").CreateAttr("w:w", colWidth)
	}
	for r := range rows {
		tr := tbl.CreateElement("w:tr")
		for c := range cols {
			tc := tr.CreateElement("w:tc")
			setAttrs(tc.CreateElement("w:tcPr").CreateElement("w:tcW"), "w:w", colWidth, "w:type", "dxa")
			p := tc.CreateElement("w:p")
			if text := content(r, c); len(text) > 0 {
				addRun(p, text, nil)
			}
		}
	}
}

// addDrawing places inline picture of requested display size into run.
func addDrawing(r *etree.Element, index int, rid string, img Image) {
	cx, cy := strconv.Itoa(img.Width*emuPerPixel), strconv.Itoa(img.Height*emuPerPixel)
	id := strconv.Itoa(index)
	name := "Picture " + id

	inline := r.CreateElement("w:drawing").CreateElement("wp:inline")
	setAttrs(inline, "distT", "0", "distB", "0", "distL", "0", "distR", "0")
	setAttrs(inline.CreateElement("wp:extent"), "cx", cx, "cy", cy)
	setAttrs(inline.CreateElement("wp:effectExtent"), "l", "0", "t", "0", "r", "0", "b", "0")
	setAttrs(inline.CreateElement("wp:docPr"), "id", id, "name", name)
	inline.CreateElement("wp:cNvGraphicFramePr").CreateElement("a:graphicFrameLocks").CreateAttr("noChangeAspect", "1")

	data := inline.CreateElement("a:graphic").CreateElement("a:graphicData")
	data.CreateAttr("uri", nsPic)
	pic := data.CreateElement("pic:pic")

	nv := pic.CreateElement("pic:nvPicPr")
	setAttrs(nv.CreateElement("pic:cNvPr"), "id", id, "name", "image"+id+img.Format.Ext())
	nv.CreateElement("pic:cNvPicPr")

	fill := pic.CreateElement("pic:blipFill")
	fill.CreateElement("a:blip").CreateAttr("r:embed", rid)
	fill.CreateElement("a:stretch").CreateElement("a:fillRect")

	sp := pic.CreateElement("pic:spPr")
	xfrm := sp.CreateElement("a:xfrm")
	setAttrs(xfrm.CreateElement("a:off"), "x", "0", "y", "0")
	setAttrs(xfrm.CreateElement("a:ext"), "cx", cx, "cy", cy)
	geom := sp.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
}
