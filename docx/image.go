package docx

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"docxgen/common"
	"docxgen/utils/images"
)

// sniffLen is the number of leading bytes filetype needs to detect any of
// the types it knows.
const sniffLen = 262

// loadImage reads, decodes, fits and re-encodes image. Source bitmap size is
// checked from header before full decode so memory use per image is bounded
// by configured MaxSourcePixels.
func (b *Builder) loadImage(op, path string, width, height int) (Image, error) {
	cfg := &b.cfg.Images

	fi, err := os.Stat(path)
	if err != nil {
		return Image{}, resourceUnavailable(op, "unable to access image: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return Image{}, resourceUnavailable(op, "image %q is not a regular file", path)
	}
	if fi.Size() > cfg.MaxSourceBytes {
		return Image{}, resourceUnavailable(op, "image %q is too large (%d bytes, limit %d)", path, fi.Size(), cfg.MaxSourceBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return Image{}, resourceUnavailable(op, "unable to open image: %w", err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Image{}, resourceUnavailable(op, "unable to read image %q: %w", path, err)
	}
	if !filetype.IsImage(head[:n]) {
		kind, _ := filetype.Match(head[:n])
		return Image{}, resourceUnavailable(op, "file %q is not an image (detected %q)", path, kind.MIME.Value)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Image{}, resourceUnavailable(op, "unable to read image %q: %w", path, err)
	}
	ic, format, err := image.DecodeConfig(f)
	if err != nil {
		return Image{}, resourceUnavailable(op, "unable to decode image %q: %w", path, err)
	}
	if ic.Width <= 0 || ic.Height <= 0 || ic.Width*ic.Height > cfg.MaxSourcePixels {
		return Image{}, resourceUnavailable(op, "image %q dimensions %dx%d exceed limit of %d pixels", path, ic.Width, ic.Height, cfg.MaxSourcePixels)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Image{}, resourceUnavailable(op, "unable to read image %q: %w", path, err)
	}
	src, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, resourceUnavailable(op, "unable to decode image %q: %w", path, err)
	}

	out, err := b.compressImage(src, width, height)
	if err != nil {
		return Image{}, serializationFailure(op, "unable to encode image %q: %w", path, err)
	}

	b.log.Debug("Image compressed",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int64("source bytes", fi.Size()),
		zap.Int("source width", ic.Width),
		zap.Int("source height", ic.Height),
		zap.Int("width", out.PixelWidth),
		zap.Int("height", out.PixelHeight),
		zap.Int("bytes", len(out.Data)))

	out.Width, out.Height = width, height
	return out, nil
}

// pixelBox returns largest bitmap size worth storing for requested display
// size.
func (b *Builder) pixelBox(width, height int) (int, int) {
	scale := b.cfg.Images.ScaleFactor
	if scale < 1 {
		scale = 1
	}
	return max(1, int(math.Round(float64(width)*scale))), max(1, int(math.Round(float64(height)*scale)))
}

// compressImage fits image into pixel box keeping aspect ratio (never
// upscaling) and always re-encodes it in configured format.
func (b *Builder) compressImage(src image.Image, width, height int) (Image, error) {
	cfg := &b.cfg.Images

	maxW, maxH := b.pixelBox(width, height)
	var img image.Image = src
	if bnd := src.Bounds(); bnd.Dx() > maxW || bnd.Dy() > maxH {
		img = imaging.Fit(src, maxW, maxH, imaging.Lanczos)
	}

	var (
		data []byte
		err  error
	)
	switch cfg.Format {
	case common.ImageFormatPng:
		if images.IsGrayscale(img) && isOpaque(img) {
			img = images.ToGray(img)
		}
		data, err = images.EncodePNG(img)
	case common.ImageFormatJpeg:
		img = images.Flatten(img)
		if images.IsGrayscale(img) {
			img = images.ToGray(img)
		}
		data, err = images.EncodeJPEGWithDPI(img, cfg.JPEGQuality, cfg.DPI)
	default:
		err = fmt.Errorf("unsupported image format %s", cfg.Format)
	}
	if err != nil {
		return Image{}, err
	}
	return Image{
		Data:        data,
		Format:      cfg.Format,
		PixelWidth:  img.Bounds().Dx(),
		PixelHeight: img.Bounds().Dy(),
	}, nil
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return true
}

// verifyPayload makes sure stored image bytes are still decodable and match
// declared format.
func verifyPayload(img Image) error {
	if len(img.Data) == 0 {
		return errors.New("image payload is empty")
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return fmt.Errorf("image payload is corrupt: %w", err)
	}
	if format != img.Format.String() {
		return fmt.Errorf("image payload is %s, expected %s", format, img.Format)
	}
	return nil
}
