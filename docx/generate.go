package docx

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	fixzip "github.com/hidez8891/zip"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Generate serializes accumulated content into OOXML package at outputPath.
// The file is first written next to its destination and renamed over it
// only when complete, so on failure outputPath is left as it was. Builder
// content is not changed and Generate may be called again.
func (b *Builder) Generate(ctx context.Context, outputPath string) error {
	const op = "generate"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(strings.TrimSpace(outputPath)) == 0 {
		return b.reject(invalidArgument(op, "output path is empty"))
	}
	if os.IsPathSeparator(outputPath[len(outputPath)-1]) {
		return b.reject(invalidArgument(op, "output path %q does not name a file", outputPath))
	}
	if len(b.blocks) == 0 {
		return b.reject(invalidArgument(op, "document has no content"))
	}
	for i, blk := range b.blocks {
		if img, ok := blk.(Image); ok {
			if err := verifyPayload(img); err != nil {
				return b.reject(serializationFailure(op, "block %d: %w", i, err))
			}
		}
	}

	parts, err := b.assemble()
	if err != nil {
		return b.reject(err)
	}

	if fi, err := os.Stat(outputPath); err == nil && fi.IsDir() {
		return b.reject(resourceUnavailable(op, "output path %q is a directory", outputPath))
	}
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return b.reject(resourceUnavailable(op, "unable to create output directory: %w", err))
	}

	b.log.Info("Generating document",
		zap.String("output", outputPath),
		zap.Int("blocks", len(b.blocks)),
		zap.Int("parts", len(parts)))

	size, err := b.writeAtomically(ctx, op, outputPath, parts)
	if err != nil {
		return b.reject(err)
	}

	b.log.Info("Document generated", zap.String("output", outputPath), zap.Int64("bytes", size))
	return nil
}

// writeAtomically produces package in temporary files inside destination
// directory and renames result into place. Temporary files never survive.
func (b *Builder) writeAtomically(ctx context.Context, op, outputPath string, parts []part) (size int64, err error) {
	dir, base := filepath.Split(outputPath)
	if len(dir) == 0 {
		dir = "."
	}
	pattern := "." + base + ".*.tmp"

	var temps []string
	defer func() {
		for _, name := range temps {
			if rerr := os.Remove(name); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				err = multierr.Append(err, rerr)
			}
		}
	}()

	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return 0, resourceUnavailable(op, "unable to create temporary file: %w", err)
	}
	temps = append(temps, tmp.Name())

	if err := b.writePackage(ctx, tmp, parts); err != nil {
		tmp.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, fmt.Errorf("%s: %w", op, ctxErr)
		}
		return 0, resourceUnavailable(op, "unable to write package: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return 0, resourceUnavailable(op, "unable to set file mode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return 0, resourceUnavailable(op, "unable to flush package: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, resourceUnavailable(op, "unable to finalize package: %w", err)
	}
	result := tmp.Name()

	if b.cfg.FixZip {
		fixed, err := os.CreateTemp(dir, pattern)
		if err != nil {
			return 0, resourceUnavailable(op, "unable to create temporary file: %w", err)
		}
		temps = append(temps, fixed.Name())
		if err := copyZipWithoutDataDescriptors(result, fixed); err != nil {
			fixed.Close()
			return 0, resourceUnavailable(op, "%w", err)
		}
		if err := fixed.Chmod(0644); err != nil {
			fixed.Close()
			return 0, resourceUnavailable(op, "unable to set file mode: %w", err)
		}
		if err := fixed.Sync(); err != nil {
			fixed.Close()
			return 0, resourceUnavailable(op, "unable to flush package: %w", err)
		}
		if err := fixed.Close(); err != nil {
			return 0, resourceUnavailable(op, "unable to finalize package: %w", err)
		}
		result = fixed.Name()
	}

	if err := os.Rename(result, outputPath); err != nil {
		return 0, resourceUnavailable(op, "unable to move package into place: %w", err)
	}
	fi, err := os.Stat(outputPath)
	if err != nil {
		return 0, resourceUnavailable(op, "unable to access generated package: %w", err)
	}
	return fi.Size(), nil
}

// writePackage stores parts in order, [Content_Types].xml first. Entry times
// are set to document creation time.
func (b *Builder) writePackage(ctx context.Context, w io.Writer, parts []part) error {
	zw := zip.NewWriter(w)
	for _, p := range parts {
		if err := ctx.Err(); err != nil {
			zw.Close()
			return err
		}
		method := zip.Deflate
		if p.store {
			method = zip.Store
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   method,
			Modified: b.created,
		})
		if err != nil {
			zw.Close()
			return fmt.Errorf("unable to add %s: %w", p.name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			zw.Close()
			return fmt.Errorf("unable to write %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

// copyZipWithoutDataDescriptors rewrites archive so every local header
// carries sizes and crc, some readers do not support data descriptors.
func copyZipWithoutDataDescriptors(from string, out io.Writer) error {
	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	for _, file := range r.File {
		file.Flags &= ^fixzip.FlagDataDescriptor
		if err := w.CopyFile(file); err != nil {
			w.Close()
			return fmt.Errorf("unable to copy archive entry (%s): %w", file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("unable to finalize archive: %w", err)
	}
	return nil
}
