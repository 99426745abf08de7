package docx

import (
	"context"

	"go.uber.org/zap"
)

// Compat exposes builder through boolean results for callers which only need
// to know whether operation succeeded. Failure details are logged.
type Compat struct {
	b   *Builder
	log *zap.Logger
}

func NewCompat(b *Builder) *Compat {
	return &Compat{b: b, log: b.log.Named("compat")}
}

// Builder returns wrapped builder.
func (c *Compat) Builder() *Builder {
	return c.b
}

func (c *Compat) result(op string, err error) bool {
	if err != nil {
		c.log.Error("Operation failed", zap.String("op", op), zap.Stringer("kind", KindOf(err)), zap.Error(err))
		return false
	}
	c.log.Debug("Operation succeeded", zap.String("op", op))
	return true
}

func (c *Compat) AddText(text string) bool {
	return c.result("addText", c.b.AddText(text))
}

func (c *Compat) AddFormattedText(text string, bold, italic, underline bool, sizePt int, color string) bool {
	return c.result("addFormattedText", c.b.AddFormattedText(text, bold, italic, underline, sizePt, color))
}

func (c *Compat) AddParagraphWithAlignment(text, alignment string) bool {
	return c.result("addParagraphWithAlignment", c.b.AddParagraphWithAlignment(text, alignment))
}

func (c *Compat) AddBulletItem(text string) bool {
	return c.result("addBulletItem", c.b.AddBulletItem(text))
}

func (c *Compat) AddNumberedItem(text string) bool {
	return c.result("addNumberedItem", c.b.AddNumberedItem(text))
}

func (c *Compat) AddTable(rows, cols int) bool {
	return c.result("addTable", c.b.AddTable(rows, cols))
}

func (c *Compat) AddCustomTable(jsonMatrix string) bool {
	return c.result("addCustomTable", c.b.AddCustomTable(jsonMatrix))
}

func (c *Compat) AddImage(path string, width, height int) bool {
	return c.result("addImage", c.b.AddImage(path, width, height))
}

// GenerateDocx writes document to outputPath, see Builder.Generate.
func (c *Compat) GenerateDocx(outputPath string) bool {
	return c.result("generateDocx", c.b.Generate(context.Background(), outputPath))
}
