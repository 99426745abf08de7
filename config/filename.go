package config

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxFileNameBytes is the common file name limit of the file systems we
// write documents to.
const maxFileNameBytes = 255

const badFileName = "_bad_file_name_"

// CleanFileName makes single path segment out of arbitrary text (document
// titles, recipe names), so it could be used as a file name on the current
// platform.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || isReservedRune(sym) {
			return -1
		}
		return sym
	}, in)
	out = trimFileName(strings.TrimSpace(out))
	if len(out) == 0 {
		return badFileName
	}
	return truncateFileName(out, maxFileNameBytes)
}

// truncateFileName cuts name to at most limit bytes without splitting runes.
func truncateFileName(name string, limit int) string {
	if len(name) <= limit {
		return name
	}
	name = name[:limit]
	for len(name) > 0 && !utf8.ValidString(name) {
		name = name[:len(name)-1]
	}
	return name
}
