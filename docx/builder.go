// Package docx accumulates document content in memory and serializes it as
// Office Open XML WordprocessingML package.
//
// Builder is not safe for concurrent use: a single owner appends blocks and
// calls Generate, which may be run off the interactive goroutine but blocks
// until the file is written.
package docx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docxgen/common"
	"docxgen/config"
)

// maxSizePt is the largest font size w:sz can express (3276 half points).
const maxSizePt = 1638

var colorRe = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Builder owns ordered document content. Blocks are never changed once
// added, every operation either appends exactly one block or leaves the
// document intact and returns *Error.
type Builder struct {
	cfg *config.DocumentConfig
	log *zap.Logger

	blocks []Block

	id      uuid.UUID
	created time.Time
	title   string
	creator string
}

type Option func(*Builder)

// WithTitle overrides document title from configuration.
func WithTitle(title string) Option {
	return func(b *Builder) {
		if len(title) > 0 {
			b.title = title
		}
	}
}

// WithCreator overrides document author from configuration.
func WithCreator(creator string) Option {
	return func(b *Builder) {
		if len(creator) > 0 {
			b.creator = creator
		}
	}
}

// WithCreated sets document creation time, it is also used as modification
// time of package entries so repeated generation produces identical files.
func WithCreated(t time.Time) Option {
	return func(b *Builder) {
		b.created = t.UTC().Truncate(time.Second)
	}
}

// New creates empty document builder.
func New(cfg *config.DocumentConfig, log *zap.Logger, opts ...Option) *Builder {
	b := &Builder{
		cfg:     cfg,
		log:     log.Named("docx"),
		id:      uuid.New(),
		created: time.Now().UTC().Truncate(time.Second),
		title:   cfg.Metainformation.Title,
		creator: cfg.Metainformation.Creator,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ID returns unique document identifier written into package core properties.
func (b *Builder) ID() uuid.UUID {
	return b.id
}

// Defaults returns run formatting applied when text has none of its own.
func (b *Builder) Defaults() config.RunDefaults {
	return b.cfg.Defaults
}

// Len returns number of accumulated blocks.
func (b *Builder) Len() int {
	return len(b.blocks)
}

// Blocks returns a copy of accumulated content.
func (b *Builder) Blocks() []Block {
	out := make([]Block, len(b.blocks))
	for i, blk := range b.blocks {
		out[i] = cloneBlock(blk)
	}
	return out
}

// Ordinals returns numbering of accumulated blocks, see Ordinals function.
func (b *Builder) Ordinals() []int {
	return Ordinals(b.blocks)
}

func (b *Builder) push(op string, blk Block) {
	b.blocks = append(b.blocks, blk)
	b.log.Debug("Block added", zap.String("op", op), zap.Int("blocks", len(b.blocks)))
}

func (b *Builder) reject(err error) error {
	b.log.Debug("Operation rejected", zap.Stringer("kind", KindOf(err)), zap.Error(err))
	return err
}

func checkText(op, text string) (string, error) {
	clean := sanitizeText(text)
	if len(clean) == 0 {
		return "", invalidArgument(op, "text is empty")
	}
	return clean, nil
}

// AddText appends paragraph with default formatting.
func (b *Builder) AddText(text string) error {
	const op = "add text"

	clean, err := checkText(op, text)
	if err != nil {
		return b.reject(err)
	}
	b.push(op, TextRun{Text: clean})
	return nil
}

// AddFormattedText appends paragraph with explicitly formatted run. Size is in
// points, color is RGB as 6 hex digits without leading '#'.
func (b *Builder) AddFormattedText(text string, bold, italic, underline bool, sizePt int, color string) error {
	const op = "add formatted text"

	clean, err := checkText(op, text)
	if err != nil {
		return b.reject(err)
	}
	if sizePt <= 0 || sizePt > maxSizePt {
		return b.reject(invalidArgument(op, "font size %d is out of range [1, %d]", sizePt, maxSizePt))
	}
	if !colorRe.MatchString(color) {
		return b.reject(invalidArgument(op, "color %q is not 6 hex digits", color))
	}
	b.push(op, TextRun{
		Text:      clean,
		Bold:      bold,
		Italic:    italic,
		Underline: underline,
		SizePt:    sizePt,
		Color:     strings.ToUpper(color),
	})
	return nil
}

// AddParagraphWithAlignment appends paragraph aligned as requested: left,
// center, right or justify (case insensitive).
func (b *Builder) AddParagraphWithAlignment(text, alignment string) error {
	const op = "add aligned paragraph"

	clean, err := checkText(op, text)
	if err != nil {
		return b.reject(err)
	}
	align, err := common.ParseAlignment(strings.TrimSpace(alignment))
	if err != nil {
		return b.reject(invalidArgument(op, "unknown alignment %q, expected one of %s", alignment, strings.Join(common.AlignmentNames(), ", ")))
	}
	b.push(op, AlignedParagraph{Text: clean, Align: align})
	return nil
}

func (b *Builder) addListItem(op, text string, kind common.ListKind) error {
	clean, err := checkText(op, text)
	if err != nil {
		return b.reject(err)
	}
	b.push(op, ListItem{Text: clean, Kind: kind})
	return nil
}

// AddBulletItem appends item to the bulleted list.
func (b *Builder) AddBulletItem(text string) error {
	return b.addListItem("add bullet item", text, common.ListKindBullet)
}

// AddNumberedItem appends item to current numbered list or starts a new list
// from 1 if previous block is not a numbered item.
func (b *Builder) AddNumberedItem(text string) error {
	return b.addListItem("add numbered item", text, common.ListKindNumbered)
}

func (b *Builder) checkDimensions(op string, rows, cols int) error {
	lim := &b.cfg.Limits
	if rows < 1 || rows > lim.MaxTableRows {
		return invalidArgument(op, "row count %d is out of range [1, %d]", rows, lim.MaxTableRows)
	}
	if cols < 1 || cols > lim.MaxTableCols {
		return invalidArgument(op, "column count %d is out of range [1, %d]", cols, lim.MaxTableCols)
	}
	if rows*cols > lim.MaxTableCells {
		return invalidArgument(op, "table %dx%d has more than %d cells", rows, cols, lim.MaxTableCells)
	}
	return nil
}

// AddTable appends rows x cols table of empty cells.
func (b *Builder) AddTable(rows, cols int) error {
	const op = "add table"

	if err := b.checkDimensions(op, rows, cols); err != nil {
		return b.reject(err)
	}
	b.push(op, Table{Rows: rows, Cols: cols})
	return nil
}

// AddCustomTable appends table with content supplied as JSON array of arrays
// of strings. Rows may have different number of cells.
func (b *Builder) AddCustomTable(jsonMatrix string) error {
	const op = "add custom table"

	cells, err := parseMatrix(jsonMatrix)
	if err != nil {
		return b.reject(invalidArgument(op, "malformed table data: %w", err))
	}
	return b.addCells(op, cells)
}

// AddCSVTable appends table from simple comma separated text: rows are split
// on new lines and cells on commas, no quoting is recognized.
func (b *Builder) AddCSVTable(text string) error {
	const op = "add csv table"

	if len(strings.TrimSpace(text)) == 0 {
		return b.reject(invalidArgument(op, "table data is empty"))
	}
	var rows [][]string
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for _, line := range strings.Split(text, "\n") {
		rows = append(rows, strings.Split(line, ","))
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return b.reject(invalidArgument(op, "unable to convert table data: %w", err))
	}
	return b.AddCustomTable(string(data))
}

func (b *Builder) addCells(op string, cells [][]string) error {
	width := CustomTable{Cells: cells}.Width()
	if width == 0 {
		return b.reject(invalidArgument(op, "table has no cells"))
	}
	if err := b.checkDimensions(op, len(cells), width); err != nil {
		return b.reject(err)
	}
	for i, row := range cells {
		for j := range row {
			cells[i][j] = sanitizeText(row[j])
		}
	}
	b.push(op, CustomTable{Cells: cells})
	return nil
}

// parseMatrix accepts exactly one JSON value which must be array of arrays of
// strings.
func parseMatrix(data string) ([][]string, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after table")
	}
	if raw == nil {
		return nil, errors.New("table is null")
	}
	cells := make([][]string, 0, len(raw))
	for i, r := range raw {
		var row []*string
		if err := json.Unmarshal(r, &row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if row == nil {
			return nil, fmt.Errorf("row %d: not an array", i)
		}
		cols := make([]string, len(row))
		for j, cell := range row {
			if cell == nil {
				return nil, fmt.Errorf("row %d, cell %d: not a string", i, j)
			}
			cols[j] = *cell
		}
		cells = append(cells, cols)
	}
	return cells, nil
}

// AddImage loads raster image from path, downsamples it to fit requested
// display box and re-encodes it. Only processed bytes are kept.
func (b *Builder) AddImage(path string, width, height int) error {
	const op = "add image"

	if width <= 0 || height <= 0 {
		return b.reject(invalidArgument(op, "display size %dx%d must be positive", width, height))
	}
	if lim := b.cfg.Images.MaxDisplay; width > lim || height > lim {
		return b.reject(invalidArgument(op, "display size %dx%d exceeds limit of %d", width, height, lim))
	}
	img, err := b.loadImage(op, path, width, height)
	if err != nil {
		return b.reject(err)
	}
	b.push(op, img)
	return nil
}
