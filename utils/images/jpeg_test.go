package images

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"testing"
)

func TestEnsureJFIFAPP0_AddsMarker(t *testing.T) {
	// Minimal JPEG without APP0
	data := []byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x04}

	out, added, err := EnsureJFIFAPP0(data, DpiPxPerInch, 300, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !added {
		t.Fatal("expected marker to be added")
	}
	if len(out) <= len(data) {
		t.Fatal("expected output to grow")
	}
	if out[0] != 0xFF || out[1] != 0xD8 {
		t.Fatal("expected SOI marker preserved")
	}
	if !bytes.Equal(out[2:4], []byte{0xFF, 0xE0}) {
		t.Fatal("expected JFIF APP0 marker at position 2-3")
	}
}

func TestEnsureJFIFAPP0_AlreadyPresent(t *testing.T) {
	// Minimal JPEG with APP0 already present
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

	out, added, err := EnsureJFIFAPP0(data, DpiPxPerInch, 300, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added {
		t.Fatal("expected no marker addition")
	}
	if !bytes.Equal(out, data) {
		t.Fatal("expected same bytes")
	}
}

func TestEnsureJFIFAPP0_NotJPEG(t *testing.T) {
	if _, _, err := EnsureJFIFAPP0([]byte{0x89, 0x50, 0x4E, 0x47}, DpiPxPerInch, 96, 96); err == nil {
		t.Error("expected error for non JPEG data")
	}
	if _, _, err := EnsureJFIFAPP0([]byte{0xFF}, DpiPxPerInch, 96, 96); err == nil {
		t.Error("expected error for truncated data")
	}
}

func TestEncodeJPEGWithDPI(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}

	data, err := EncodeJPEGWithDPI(img, 80, 192)
	if err != nil {
		t.Fatalf("EncodeJPEGWithDPI() error = %v", err)
	}
	if !bytes.Equal(data[2:4], []byte{0xFF, 0xE0}) || string(data[6:10]) != "JFIF" {
		t.Fatal("JFIF APP0 segment missing")
	}
	if DpiType(data[13]) != DpiPxPerInch {
		t.Errorf("density units = %d, want %d", data[13], DpiPxPerInch)
	}
	if x, y := binary.BigEndian.Uint16(data[14:16]), binary.BigEndian.Uint16(data[16:18]); x != 192 || y != 192 {
		t.Errorf("density = %dx%d, want 192x192", x, y)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("encoded data does not decode: %v", err)
	}
	if format != "jpeg" || cfg.Width != 16 || cfg.Height != 8 {
		t.Errorf("decoded %s %dx%d", format, cfg.Width, cfg.Height)
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(image.NewGray(image.Rect(0, 0, 5, 7)))
	if err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("encoded data does not decode: %v", err)
	}
	if format != "png" || cfg.Width != 5 || cfg.Height != 7 || cfg.ColorModel != color.GrayModel {
		t.Errorf("decoded %s %dx%d", format, cfg.Width, cfg.Height)
	}
}
