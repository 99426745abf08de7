package docx

import (
	"bytes"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"docxgen/misc"
)

const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP      = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA       = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic     = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsRels    = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCore    = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsApp     = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsVT      = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsDCTerms = "http://purl.org/dc/terms/"
	nsDCMI    = "http://purl.org/dc/dcmitype/"
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relAppProps       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	ctRels      = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML       = "application/xml"
	ctDocument  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles    = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctNumbering = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	ctCore      = "application/vnd.openxmlformats-package.core-properties+xml"
	ctApp       = "application/vnd.openxmlformats-officedocument.extended-properties+xml"

	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partNumbering    = "word/numbering.xml"
	mediaDir         = "word/media"
)

type xmlDoc struct {
	name string
	doc  *etree.Document
}

// part is a single entry of the package.
type part struct {
	name string
	data []byte
	// already compressed content is stored as is
	store bool
}

// setAttrs adds attributes given as name, value pairs.
func setAttrs(el *etree.Element, kv ...string) *etree.Element {
	for i := 0; i+1 < len(kv); i += 2 {
		el.CreateAttr(kv[i], kv[i+1])
	}
	return el
}

func newPart() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

func xmlPart(name string, doc *etree.Document) (part, error) {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return part{}, fmt.Errorf("unable to serialize %s: %w", name, err)
	}
	return part{name: name, data: buf.Bytes()}, nil
}

// relationships accumulates relationships of a single source part.
type relationships struct {
	doc  *etree.Document
	root *etree.Element
	next int
}

func newRelationships() *relationships {
	doc := newPart()
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsRels)
	return &relationships{doc: doc, root: root, next: 1}
}

// add registers relationship and returns its id.
func (r *relationships) add(relType, target string) string {
	id := "rId" + strconv.Itoa(r.next)
	r.next++
	rel := r.root.CreateElement("Relationship")
	rel.CreateAttr("Id", id)
	rel.CreateAttr("Type", relType)
	rel.CreateAttr("Target", target)
	return id
}

// contentTypes declares media types of every part.
type contentTypes struct {
	doc  *etree.Document
	root *etree.Element
	exts map[string]bool
}

func newContentTypes() *contentTypes {
	doc := newPart()
	root := doc.CreateElement("Types")
	root.CreateAttr("xmlns", nsTypes)
	ct := &contentTypes{doc: doc, root: root, exts: make(map[string]bool)}
	ct.addDefault("rels", ctRels)
	ct.addDefault("xml", ctXML)
	return ct
}

func (ct *contentTypes) addDefault(ext, contentType string) {
	if ct.exts[ext] {
		return
	}
	ct.exts[ext] = true
	el := ct.root.CreateElement("Default")
	el.CreateAttr("Extension", ext)
	el.CreateAttr("ContentType", contentType)
}

func (ct *contentTypes) addOverride(partName, contentType string) {
	el := ct.root.CreateElement("Override")
	el.CreateAttr("PartName", "/"+partName)
	el.CreateAttr("ContentType", contentType)
}

func rootRelsPart() *etree.Document {
	rels := newRelationships()
	rels.add(relOfficeDocument, partDocument)
	rels.add(relCoreProps, partCore)
	rels.add(relAppProps, partApp)
	return rels.doc
}

func (b *Builder) corePart() *etree.Document {
	doc := newPart()
	root := doc.CreateElement("cp:coreProperties")
	root.CreateAttr("xmlns:cp", nsCore)
	root.CreateAttr("xmlns:dc", nsDC)
	root.CreateAttr("xmlns:dcterms", nsDCTerms)
	root.CreateAttr("xmlns:dcmitype", nsDCMI)
	root.CreateAttr("xmlns:xsi", nsXSI)

	if len(b.title) > 0 {
		root.CreateElement("dc:title").SetText(sanitizeText(b.title))
	}
	if len(b.creator) > 0 {
		root.CreateElement("dc:creator").SetText(sanitizeText(b.creator))
	}
	root.CreateElement("dc:identifier").SetText(b.id.URN())

	stamp := b.created.Format(time.RFC3339)
	for _, name := range []string{"dcterms:created", "dcterms:modified"} {
		el := root.CreateElement(name)
		el.CreateAttr("xsi:type", "dcterms:W3CDTF")
		el.SetText(stamp)
	}
	return doc
}

func appPart() *etree.Document {
	doc := newPart()
	root := doc.CreateElement("Properties")
	root.CreateAttr("xmlns", nsApp)
	root.CreateAttr("xmlns:vt", nsVT)
	root.CreateElement("Application").SetText(misc.GetAppName() + " " + misc.GetVersion())
	root.CreateElement("DocSecurity").SetText("0")
	return doc
}

func (b *Builder) stylesPart() *etree.Document {
	def := &b.cfg.Defaults

	doc := newPart()
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", nsW)

	defaults := root.CreateElement("w:docDefaults")
	rpr := defaults.CreateElement("w:rPrDefault").CreateElement("w:rPr")
	fonts := rpr.CreateElement("w:rFonts")
	for _, attr := range []string{"w:ascii", "w:hAnsi", "w:eastAsia", "w:cs"} {
		fonts.CreateAttr(attr, def.Font)
	}
	rpr.CreateElement("w:color").CreateAttr("w:val", def.Color)
	halfPoints := strconv.Itoa(def.Size * 2)
	rpr.CreateElement("w:sz").CreateAttr("w:val", halfPoints)
	rpr.CreateElement("w:szCs").CreateAttr("w:val", halfPoints)
	setAttrs(defaults.CreateElement("w:pPrDefault").CreateElement("w:pPr").CreateElement("w:spacing"),
		"w:after", "160", "w:line", "259", "w:lineRule", "auto")

	style := func(typ, id, name string, isDefault bool) *etree.Element {
		s := root.CreateElement("w:style")
		s.CreateAttr("w:type", typ)
		if isDefault {
			s.CreateAttr("w:default", "1")
		}
		s.CreateAttr("w:styleId", id)
		s.CreateElement("w:name").CreateAttr("w:val", name)
		return s
	}

	style("paragraph", "Normal", "Normal", true).CreateElement("w:qFormat")

	list := style("paragraph", "ListParagraph", "List Paragraph", false)
	list.CreateElement("w:basedOn").CreateAttr("w:val", "Normal")
	list.CreateElement("w:qFormat")
	lppr := list.CreateElement("w:pPr")
	lppr.CreateElement("w:ind").CreateAttr("w:left", "720")
	lppr.CreateElement("w:contextualSpacing")

	normalTable := style("table", "TableNormal", "Normal Table", true)
	ntpr := normalTable.CreateElement("w:tblPr")
	setAttrs(ntpr.CreateElement("w:tblInd"), "w:w", "0", "w:type", "dxa")
	mar := ntpr.CreateElement("w:tblCellMar")
	for _, side := range []string{"w:top", "w:left", "w:bottom", "w:right"} {
		w := "0"
		if side == "w:left" || side == "w:right" {
			w = "108"
		}
		setAttrs(mar.CreateElement(side), "w:w", w, "w:type", "dxa")
	}

	grid := style("table", "TableGrid", "Table Grid", false)
	grid.CreateElement("w:basedOn").CreateAttr("w:val", "TableNormal")
	gppr := grid.CreateElement("w:pPr")
	setAttrs(gppr.CreateElement("w:spacing"), "w:after", "0", "w:line", "240", "w:lineRule", "auto")
	borders := grid.CreateElement("w:tblPr").CreateElement("w:tblBorders")
	for _, side := range []string{"w:top", "w:left", "w:bottom", "w:right", "w:insideH", "w:insideV"} {
		setAttrs(borders.CreateElement(side), "w:val", "single", "w:sz", "4", "w:space", "0", "w:color", "auto")
	}
	return doc
}

func mediaName(index int, img Image) string {
	return path.Join(mediaDir, "image"+strconv.Itoa(index)+img.Format.Ext())
}

// assemble serializes accumulated blocks into ordered list of package parts.
func (b *Builder) assemble() ([]part, error) {
	const op = "generate"

	ct := newContentTypes()
	docRels := newRelationships()
	docRels.add(relStyles, "styles.xml")

	plan := planNumbering(b.blocks)
	if !plan.empty() {
		docRels.add(relNumbering, "numbering.xml")
	}

	var media []part
	imageRel := func(index int, img Image) string {
		name := mediaName(index, img)
		ct.addDefault(img.Format.Ext()[1:], img.Format.MimeType())
		media = append(media, part{name: name, data: img.Data, store: true})
		return docRels.add(relImage, "media/"+path.Base(name))
	}

	body, err := b.documentPart(plan, imageRel)
	if err != nil {
		return nil, err
	}

	ct.addOverride(partDocument, ctDocument)
	ct.addOverride(partStyles, ctStyles)
	if !plan.empty() {
		ct.addOverride(partNumbering, ctNumbering)
	}
	ct.addOverride(partCore, ctCore)
	ct.addOverride(partApp, ctApp)

	docs := []xmlDoc{
		{partContentTypes, ct.doc},
		{partRootRels, rootRelsPart()},
		{partCore, b.corePart()},
		{partApp, appPart()},
		{partDocument, body},
		{partDocumentRels, docRels.doc},
		{partStyles, b.stylesPart()},
	}
	if !plan.empty() {
		docs = append(docs, xmlDoc{partNumbering, numberingPart(plan)})
	}

	parts := make([]part, 0, len(docs)+len(media))
	for _, d := range docs {
		p, err := xmlPart(d.name, d.doc)
		if err != nil {
			return nil, serializationFailure(op, "%w", err)
		}
		parts = append(parts, p)
	}
	return append(parts, media...), nil
}
