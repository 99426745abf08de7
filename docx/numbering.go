package docx

import (
	"strconv"

	"github.com/beevik/etree"

	"docxgen/common"
)

const (
	bulletAbstractID  = 0
	decimalAbstractID = 1

	// all bullet items share single numbering instance
	bulletNumID = 1
	// numbered sequences get their own instances starting from here
	firstDecimalNumID = 2
)

// Ordinals returns 1-based position of every numbered list item inside its
// sequence and zero for all other blocks. A sequence is a contiguous run of
// numbered items, any other block (bullet item included) ends it.
func Ordinals(blocks []Block) []int {
	out := make([]int, len(blocks))
	n := 0
	for i, blk := range blocks {
		if li, ok := blk.(ListItem); ok && li.Kind == common.ListKindNumbered {
			n++
			out[i] = n
			continue
		}
		n = 0
	}
	return out
}

// numberingPlan assigns numbering instance to every list item.
type numberingPlan struct {
	numIDs    []int
	bullets   bool
	sequences int
}

func planNumbering(blocks []Block) numberingPlan {
	p := numberingPlan{numIDs: make([]int, len(blocks))}
	for i, ord := range Ordinals(blocks) {
		if ord == 1 {
			p.sequences++
		}
		if ord > 0 {
			p.numIDs[i] = firstDecimalNumID + p.sequences - 1
			continue
		}
		if li, ok := blocks[i].(ListItem); ok && li.Kind == common.ListKindBullet {
			p.numIDs[i] = bulletNumID
			p.bullets = true
		}
	}
	return p
}

func (p numberingPlan) empty() bool {
	return !p.bullets && p.sequences == 0
}

func addLevel(abs *etree.Element, format, text string) {
	lvl := abs.CreateElement("w:lvl")
	lvl.CreateAttr("w:ilvl", "0")
	lvl.CreateElement("w:start").CreateAttr("w:val", "1")
	lvl.CreateElement("w:numFmt").CreateAttr("w:val", format)
	lvl.CreateElement("w:lvlText").CreateAttr("w:val", text)
	lvl.CreateElement("w:lvlJc").CreateAttr("w:val", "left")
	ind := lvl.CreateElement("w:pPr").CreateElement("w:ind")
	ind.CreateAttr("w:left", "720")
	ind.CreateAttr("w:hanging", "360")
	if format == "bullet" {
		fonts := lvl.CreateElement("w:rPr").CreateElement("w:rFonts")
		fonts.CreateAttr("w:ascii", "Symbol")
		fonts.CreateAttr("w:hAnsi", "Symbol")
		fonts.CreateAttr("w:hint", "default")
	}
}

// numberingPart declares both abstract definitions once and one instance per
// numbered sequence, each restarting from 1.
func numberingPart(p numberingPlan) *etree.Document {
	doc := newPart()
	root := doc.CreateElement("w:numbering")
	root.CreateAttr("xmlns:w", nsW)

	bullet := root.CreateElement("w:abstractNum")
	bullet.CreateAttr("w:abstractNumId", strconv.Itoa(bulletAbstractID))
	bullet.CreateElement("w:multiLevelType").CreateAttr("w:val", "singleLevel")
	addLevel(bullet, "bullet", "\uF0B7")

	decimal := root.CreateElement("w:abstractNum")
	decimal.CreateAttr("w:abstractNumId", strconv.Itoa(decimalAbstractID))
	decimal.CreateElement("w:multiLevelType").CreateAttr("w:val", "singleLevel")
	addLevel(decimal, "decimal", "%1.")

	num := root.CreateElement("w:num")
	num.CreateAttr("w:numId", strconv.Itoa(bulletNumID))
	num.CreateElement("w:abstractNumId").CreateAttr("w:val", strconv.Itoa(bulletAbstractID))

	for i := range p.sequences {
		num := root.CreateElement("w:num")
		num.CreateAttr("w:numId", strconv.Itoa(firstDecimalNumID+i))
		num.CreateElement("w:abstractNumId").CreateAttr("w:val", strconv.Itoa(decimalAbstractID))
		override := num.CreateElement("w:lvlOverride")
		override.CreateAttr("w:ilvl", "0")
		override.CreateElement("w:startOverride").CreateAttr("w:val", "1")
	}
	return doc
}
