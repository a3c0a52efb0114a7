package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxBaseNameLen = 64

// SanitizeBaseName deja solo [a-z0-9-] del nombre original (sin extensión).
// Quita tildes ("Café Ñandú" -> "cafe-nandu"), colapsa cualquier corrida de espacios
// o caracteres no seguros en un único "-" y cae en "image" si no queda nada.
func SanitizeBaseName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if s, _, err := transform.String(t, base); err == nil {
		base = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case r == 'ñ':
			b.WriteRune('n')
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if len(out) > maxBaseNameLen {
		out = strings.TrimRight(out[:maxBaseNameLen], "-")
	}
	if out == "" {
		return "image"
	}
	return out
}

// BuildFilename nombre final: <base saneada>-<unix millis>.<ext>.
func BuildFilename(original, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%d.%s", SanitizeBaseName(original), now.UnixMilli(), ext)
}
