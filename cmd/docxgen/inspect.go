package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"docxgen/docx"
	"docxgen/state"
)

func inspectDocument(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no document has been specified")
	}
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	s, err := docx.Inspect(src)
	if err != nil {
		return fmt.Errorf("unable to inspect document: %w", err)
	}
	env.Log.Debug("Document inspected", zap.String("file", src), zap.Int("parts", len(s.Parts)), zap.Int("items", len(s.Body)))

	return printSummary(os.Stdout, s)
}

func printSummary(w io.Writer, s *docx.Summary) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:   %s\n", s.Title)
	fmt.Fprintf(&sb, "Creator: %s\n", s.Creator)
	fmt.Fprintf(&sb, "Parts:   %d (media %d)\n", len(s.Parts), s.Media)
	for _, p := range s.Parts {
		fmt.Fprintf(&sb, "    %s\n", p)
	}
	sb.WriteString("Body:\n")
	for i, item := range s.Body {
		switch {
		case item.Paragraph != nil:
			p := item.Paragraph
			var attrs []string
			if p.Align.Jc() != "left" {
				attrs = append(attrs, p.Align.String())
			}
			if p.NumID > 0 {
				attrs = append(attrs, fmt.Sprintf("list %d", p.NumID))
			}
			if p.Bold {
				attrs = append(attrs, "bold")
			}
			if p.Italic {
				attrs = append(attrs, "italic")
			}
			if p.Underline {
				attrs = append(attrs, "underline")
			}
			if p.SizePt > 0 {
				attrs = append(attrs, fmt.Sprintf("%dpt", p.SizePt))
			}
			if len(p.Color) > 0 {
				attrs = append(attrs, "#"+p.Color)
			}
			if p.Image {
				attrs = append(attrs, "image")
			}
			fmt.Fprintf(&sb, "%4d paragraph [%s] %q\n", i+1, strings.Join(attrs, ", "), p.Text)
		case item.Table != nil:
			fmt.Fprintf(&sb, "%4d table %d row(s)\n", i+1, len(item.Table.Cells))
			for _, row := range item.Table.Cells {
				fmt.Fprintf(&sb, "         %q\n", row)
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
