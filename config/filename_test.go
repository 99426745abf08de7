package config

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "20240301_123000_doc", "20240301_123000_doc"},
		{"separator", "a/b", "ab"},
		{"control", "line\nbreak\t", "linebreak"},
		{"spaces", "  report  ", "report"},
		{"empty", "", badFileName},
		{"only separators", "///", badFileName},
		{"unicode", "Отчёт", "Отчёт"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanFileName(tt.in); got != tt.want {
				t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanFileNameLength(t *testing.T) {
	got := CleanFileName(strings.Repeat("ж", 200))
	if len(got) > maxFileNameBytes {
		t.Errorf("len = %d, want at most %d", len(got), maxFileNameBytes)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated name is not valid UTF-8: %q", got)
	}
	if len(got) != 254 {
		t.Errorf("len = %d, want 254 (127 whole runes)", len(got))
	}
}
