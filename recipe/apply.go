package recipe

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"docxgen/docx"
)

// Apply runs recipe steps against builder in order. Failed steps are logged
// and collected, in strict mode processing stops at first failure. Document
// keeps everything added by successful steps.
func Apply(b *docx.Builder, r *Recipe, strict bool, log *zap.Logger) (err error) {
	log = log.Named("recipe")

	applied := 0
	for i := range r.Steps {
		s := &r.Steps[i]
		op := s.Op()
		if serr := s.apply(b); serr != nil {
			log.Warn("Step failed",
				zap.Int("step", i+1),
				zap.String("op", op),
				zap.Stringer("kind", docx.KindOf(serr)),
				zap.Error(serr))
			err = multierr.Append(err, fmt.Errorf("step %d (%s): %w", i+1, op, serr))
			if strict {
				return err
			}
			continue
		}
		applied++
	}
	log.Debug("Recipe applied", zap.String("recipe", r.Path), zap.Int("steps", len(r.Steps)), zap.Int("applied", applied))
	return err
}

func (s *Step) apply(b *docx.Builder) error {
	switch {
	case s.Text != nil:
		return b.AddText(*s.Text)
	case s.Formatted != nil:
		f := s.Formatted
		def := b.Defaults()
		size, color := f.Size, f.Color
		if size == 0 {
			size = def.Size
		}
		if len(color) == 0 {
			color = def.Color
		}
		return b.AddFormattedText(f.Text, f.Bold, f.Italic, f.Underline, size, color)
	case s.Paragraph != nil:
		return b.AddParagraphWithAlignment(s.Paragraph.Text, s.Paragraph.Align)
	case s.Bullet != nil:
		return b.AddBulletItem(*s.Bullet)
	case s.Numbered != nil:
		return b.AddNumberedItem(*s.Numbered)
	case s.Table != nil:
		return b.AddTable(s.Table.Rows, s.Table.Cols)
	case s.CustomTable != nil:
		return b.AddCustomTable(*s.CustomTable)
	case s.CSVTable != nil:
		return b.AddCSVTable(*s.CSVTable)
	case s.Image != nil:
		return b.AddImage(s.Image.Path, s.Image.Width, s.Image.Height)
	default:
		return errors.New("step has no operation")
	}
}
