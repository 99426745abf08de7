package docx

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// isXMLChar reports whether rune is allowed in XML 1.0 documents.
func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// sanitizeText replaces invalid UTF-8, normalizes to NFC and drops
// characters XML cannot carry even escaped. Markup characters are left alone,
// they are escaped on output.
func sanitizeText(s string) string {
	s = norm.NFC.String(strings.ToValidUTF8(s, "\uFFFD"))
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
}

type segmentKind int

const (
	segText segmentKind = iota
	segTab
	segBreak
)

type segment struct {
	kind segmentKind
	text string
}

// splitSegments breaks text on tabs and line breaks, which WordprocessingML
// represents with dedicated elements rather than characters.
func splitSegments(s string) []segment {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var (
		out []segment
		sb  strings.Builder
	)
	flush := func() {
		if sb.Len() > 0 {
			out = append(out, segment{kind: segText, text: sb.String()})
			sb.Reset()
		}
	}
	for _, r := range s {
		switch r {
		case '\t':
			flush()
			out = append(out, segment{kind: segTab})
		case '\n':
			flush()
			out = append(out, segment{kind: segBreak})
		default:
			sb.WriteRune(r)
		}
	}
	flush()
	return out
}
