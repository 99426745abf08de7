package common

import (
	"errors"
	"testing"
)

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in   string
		want Alignment
		ok   bool
	}{
		{"left", AlignmentLeft, true},
		{"Center", AlignmentCenter, true},
		{"RIGHT", AlignmentRight, true},
		{"justify", AlignmentJustify, true},
		{"both", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlignment(tt.in)
			if !tt.ok {
				if !errors.Is(err, ErrInvalidAlignment) {
					t.Errorf("ParseAlignment(%q) error = %v, want ErrInvalidAlignment", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseAlignment(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestAlignmentJc(t *testing.T) {
	for _, a := range []Alignment{AlignmentLeft, AlignmentCenter, AlignmentRight, AlignmentJustify} {
		if got := AlignmentFromJc(a.Jc()); got != a {
			t.Errorf("AlignmentFromJc(%q) = %s, want %s", a.Jc(), got, a)
		}
	}
	if AlignmentJustify.Jc() != "both" {
		t.Errorf("justify is written as %q", AlignmentJustify.Jc())
	}
	for jc, want := range map[string]Alignment{"start": AlignmentLeft, "end": AlignmentRight, "distribute": AlignmentJustify, "": AlignmentLeft} {
		if got := AlignmentFromJc(jc); got != want {
			t.Errorf("AlignmentFromJc(%q) = %s, want %s", jc, got, want)
		}
	}
}

func TestImageFormat(t *testing.T) {
	if ImageFormatJpeg.Ext() != ".jpeg" || ImageFormatJpeg.MimeType() != "image/jpeg" {
		t.Error("unexpected jpeg extension or mime type")
	}
	if ImageFormatPng.Ext() != ".png" || ImageFormatPng.MimeType() != "image/png" {
		t.Error("unexpected png extension or mime type")
	}

	defer func() {
		if recover() == nil {
			t.Error("Ext() of unknown format did not panic")
		}
	}()
	_ = ImageFormat(42).Ext()
}

func TestPaperSizeTwips(t *testing.T) {
	if w, h := PaperSizeLetter.Twips(); w != 12240 || h != 15840 {
		t.Errorf("letter = %dx%d", w, h)
	}
	if w, h := PaperSizeA4.Twips(); w != 11906 || h != 16838 {
		t.Errorf("a4 = %dx%d", w, h)
	}
}

func TestEnumText(t *testing.T) {
	var p PaperSize
	if err := p.UnmarshalText([]byte("A4")); err != nil || p != PaperSizeA4 {
		t.Errorf("UnmarshalText(A4) = %v, %v", p, err)
	}
	if err := p.UnmarshalText([]byte("legal")); !errors.Is(err, ErrInvalidPaperSize) {
		t.Errorf("UnmarshalText(legal) error = %v", err)
	}
	if data, _ := ImageFormatPng.MarshalText(); string(data) != "png" {
		t.Errorf("MarshalText() = %q", data)
	}
	var k ListKind
	if err := k.UnmarshalText([]byte("numbered")); err != nil || k != ListKindNumbered {
		t.Errorf("UnmarshalText(numbered) = %v, %v", k, err)
	}
	if ListKind(7).IsValid() || !ListKindBullet.IsValid() {
		t.Error("IsValid() mismatch")
	}
}
