package build

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"docxgen/config"
	"docxgen/recipe"
	"docxgen/state"
)

// buildOutputPath returns output file path inside dst directory. Name comes
// from configured template, which may produce subdirectories. Every path
// segment is normalized, cleaned and, if requested, transliterated.
func buildOutputPath(r *recipe.Recipe, index int, dst string, env *state.LocalEnv) string {
	defaultFile := buildDefaultFileName(r, index, env)

	if env.Cfg.Document.OutputNameTemplate == "" {
		return filepath.Join(dst, defaultFile)
	}

	expandedName := expandOutputNameTemplate(r, index, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(dst, defaultFile)
	}
	return assemblePathWithSubdirs(dst, expandedName, env)
}

func buildDefaultFileName(r *recipe.Recipe, index int, env *state.LocalEnv) string {
	baseName := strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path))
	if len(baseName) == 0 || baseName == "." {
		baseName = "document"
		if index > 0 {
			baseName += "_" + strconv.Itoa(index)
		}
	}
	return cleanPathSegment(baseName, env) + docxExt
}

func expandOutputNameTemplate(r *recipe.Recipe, index int, env *state.LocalEnv) string {
	expandedName, err := expandTemplate(r, index, config.OutputNameTemplateFieldName, env.Cfg.Document.OutputNameTemplate)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(filepath.FromSlash(expandedName))
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path
func assemblePathWithSubdirs(outDir, expandedName string, env *state.LocalEnv) string {
	pathSegments := splitAndCleanPath(expandedName)
	if len(pathSegments) == 0 {
		return filepath.Join(outDir, "document"+docxExt)
	}

	last := strings.TrimSuffix(pathSegments[len(pathSegments)-1], docxExt)
	fileName := cleanPathSegment(last, env) + docxExt

	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)
	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}
	dirParts = append(dirParts, fileName)
	return filepath.Join(dirParts...)
}

// splitAndCleanPath splits path into segments dropping empty ones and those
// which could lead outside of destination directory.
func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		if tail != "." && tail != ".." {
			segments = slices.Insert(segments, 0, tail)
		}
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	segment = norm.NFC.String(segment)
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
