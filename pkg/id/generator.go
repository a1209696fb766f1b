package id

import (
	"path/filepath"
	"strings"

	"github.com/segmentio/ksuid"
)

// GenerateBatchID returns a unique, time-sortable identifier shared by all
// mask files produced from a single upload.
func GenerateBatchID() string {
	return ksuid.New().String()
}

// SanitizeBaseName reduces an uploaded filename to a safe base usable in
// generated mask filenames: the extension is stripped and anything outside
// [a-zA-Z0-9_-] is replaced with an underscore.
func SanitizeBaseName(filename string) string {
	base := filepath.Base(filename)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
