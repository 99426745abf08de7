package docx

import (
	"archive/zip"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"docxgen/archive"
	"docxgen/common"
)

// maxPartSize limits how much of a single XML part Inspect will inflate.
const maxPartSize = 64 << 20

// ParagraphInfo describes paragraph as it was found in the package. Run
// properties are taken from the first run that has them.
type ParagraphInfo struct {
	Text      string
	Align     common.Alignment
	NumID     int
	Bold      bool
	Italic    bool
	Underline bool
	SizePt    int
	Color     string
	Image     bool
}

// TableInfo holds text of every cell, row by row.
type TableInfo struct {
	Cells [][]string
}

// BodyItem is either paragraph or table, exactly one field is set.
type BodyItem struct {
	Paragraph *ParagraphInfo
	Table     *TableInfo
}

// Summary is result of reading generated package back.
type Summary struct {
	Parts   []string
	Media   int
	Title   string
	Creator string
	Body    []BodyItem
}

// Paragraphs returns top level paragraphs in document order.
func (s *Summary) Paragraphs() []*ParagraphInfo {
	var out []*ParagraphInfo
	for _, item := range s.Body {
		if item.Paragraph != nil {
			out = append(out, item.Paragraph)
		}
	}
	return out
}

// Tables returns tables in document order.
func (s *Summary) Tables() []*TableInfo {
	var out []*TableInfo
	for _, item := range s.Body {
		if item.Table != nil {
			out = append(out, item.Table)
		}
	}
	return out
}

// HasPart reports whether package contains part with the given name.
func (s *Summary) HasPart(name string) bool {
	return slices.Contains(s.Parts, name)
}

// Inspect reads WordprocessingML package and describes its body.
func Inspect(path string) (*Summary, error) {
	const op = "inspect"

	var (
		s        Summary
		document *etree.Document
		core     *etree.Document
	)
	err := archive.Walk(path, "", func(_ string, file *zip.File) error {
		s.Parts = append(s.Parts, file.Name)
		switch {
		case strings.HasPrefix(file.Name, mediaDir+"/"):
			s.Media++
		case file.Name == partDocument:
			doc, err := readXML(file)
			if err != nil {
				return err
			}
			document = doc
		case file.Name == partCore:
			doc, err := readXML(file)
			if err != nil {
				return err
			}
			core = doc
		}
		return nil
	})
	if err != nil {
		return nil, resourceUnavailable(op, "unable to read package %q: %w", path, err)
	}
	if document == nil {
		return nil, serializationFailure(op, "package %q has no %s", path, partDocument)
	}

	if core != nil {
		if el := core.FindElement("//dc:title"); el != nil {
			s.Title = el.Text()
		}
		if el := core.FindElement("//dc:creator"); el != nil {
			s.Creator = el.Text()
		}
	}

	body := document.FindElement("w:document/w:body")
	if body == nil {
		return nil, serializationFailure(op, "package %q has no document body", path)
	}
	for _, el := range body.ChildElements() {
		switch el.FullTag() {
		case "w:p":
			s.Body = append(s.Body, BodyItem{Paragraph: readParagraph(el)})
		case "w:tbl":
			s.Body = append(s.Body, BodyItem{Table: readTable(el)})
		}
	}
	return &s, nil
}

func readXML(file *zip.File) (*etree.Document, error) {
	data, err := archive.ReadAll(file, maxPartSize)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", file.Name, err)
	}
	return doc, nil
}

func readParagraph(p *etree.Element) *ParagraphInfo {
	info := &ParagraphInfo{}
	if jc := p.FindElement("w:pPr/w:jc"); jc != nil {
		info.Align = common.AlignmentFromJc(jc.SelectAttrValue("w:val", ""))
	}
	if num := p.FindElement("w:pPr/w:numPr/w:numId"); num != nil {
		info.NumID, _ = strconv.Atoi(num.SelectAttrValue("w:val", ""))
	}

	var sb strings.Builder
	formatted := false
	for _, r := range p.SelectElements("w:r") {
		if rpr := r.SelectElement("w:rPr"); rpr != nil && !formatted {
			formatted = true
			info.Bold = rpr.SelectElement("w:b") != nil
			info.Italic = rpr.SelectElement("w:i") != nil
			info.Underline = rpr.SelectElement("w:u") != nil
			if sz := rpr.SelectElement("w:sz"); sz != nil {
				hp, _ := strconv.Atoi(sz.SelectAttrValue("w:val", ""))
				info.SizePt = hp / 2
			}
			if c := rpr.SelectElement("w:color"); c != nil {
				info.Color = c.SelectAttrValue("w:val", "")
			}
		}
		for _, el := range r.ChildElements() {
			switch el.FullTag() {
			case "w:t":
				sb.WriteString(el.Text())
			case "w:tab":
				sb.WriteByte('\t')
			case "w:br":
				sb.WriteByte('\n')
			case "w:drawing":
				info.Image = true
			}
		}
	}
	info.Text = sb.String()
	return info
}

func readTable(tbl *etree.Element) *TableInfo {
	info := &TableInfo{}
	for _, tr := range tbl.SelectElements("w:tr") {
		var row []string
		for _, tc := range tr.SelectElements("w:tc") {
			var texts []string
			for _, p := range tc.SelectElements("w:p") {
				texts = append(texts, readParagraph(p).Text)
			}
			row = append(row, strings.Join(texts, "\n"))
		}
		info.Cells = append(info.Cells, row)
	}
	return info
}
