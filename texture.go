package matgen

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextureMatch represents a texture file matched to a channel.
type TextureMatch struct {
	Path       string  `json:"path" yaml:"path"`             // Matched file path
	Identifier string  `json:"identifier" yaml:"identifier"` // Derived set identifier
	Keyword    string  `json:"keyword" yaml:"keyword"`       // Keyword that matched
	Channel    Channel `json:"channel" yaml:"channel"`       // Matched channel
}

// MatchFile matches a single file path against the channel table.
// The second return value reports whether any enabled channel matched.
func MatchFile(path string, opt *ResolveOptions) (TextureMatch, bool) {
	ropt := opt.normalize()
	return matchFile(path, ropt)
}

func matchFile(path string, opt ResolveOptions) (TextureMatch, bool) {
	stem := stemOf(path)

	// Longest keyword wins across all channels; ties resolve in channel
	// table order. Offsets are always byte offsets into the original stem;
	// case folding never leaves that domain (lowercasing can change byte
	// length for some runes).
	best := TextureMatch{}
	bestLen := 0
	for _, spec := range opt.Channels {
		if !spec.Enabled {
			continue
		}
		for _, kw := range spec.KeywordList() {
			if len(kw) <= bestLen {
				continue
			}
			var idx, span int
			if opt.DisableCaseInsensitive {
				idx, span = strings.Index(stem, kw), len(kw)
			} else {
				idx, span = foldIndex(stem, kw)
			}
			if idx < 0 {
				continue
			}
			best = TextureMatch{
				Path:       path,
				Channel:    spec.Channel,
				Keyword:    kw,
				Identifier: deriveIdentifier(stem, idx, span, opt.DefaultIdentifier),
			}
			bestLen = len(kw)
		}
	}

	return best, bestLen > 0
}

// foldIndex reports the byte offset and byte length of the first substring
// of s that case-folds to needle, or (-1, 0).
func foldIndex(s, needle string) (int, int) {
	if needle == "" {
		return -1, 0
	}
	for i := 0; i < len(s); {
		if span := foldPrefixLen(s[i:], needle); span >= 0 {
			return i, span
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}

	return -1, 0
}

// foldPrefixLen returns the byte length of the prefix of s that case-folds
// to needle, or -1.
func foldPrefixLen(s, needle string) int {
	i := 0
	for _, nr := range needle {
		if i >= len(s) {
			return -1
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if !foldEqual(sr, nr) {
			return -1
		}
		i += size
	}

	return i
}

// foldEqual reports whether two runes are equal under simple case folding.
func foldEqual(a, b rune) bool {
	if a == b {
		return true
	}
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		return a == b
	}

	return unicode.ToLower(a) == unicode.ToLower(b)
}

// deriveIdentifier strips the matched keyword from the filename stem and
// collapses the separators it leaves behind.
func deriveIdentifier(stem string, idx, length int, fallback string) string {
	id := stem[:idx] + stem[idx+length:]
	id = collapseSeparators(id)
	if id == "" {
		return fallback
	}

	return id
}

// collapseSeparators trims leading/trailing separators and squashes runs
// left by keyword removal.
func collapseSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSep := true // drop leading separators
	for _, r := range s {
		if isSeparator(r) {
			if prevSep {
				continue
			}
			prevSep = true
			b.WriteRune('_')
			continue
		}
		prevSep = false
		b.WriteRune(r)
	}

	return strings.TrimRight(b.String(), "_")
}

// isSeparator reports whether r separates filename tokens.
func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '.', ' ':
		return true
	}
	return false
}

// stemOf returns the base filename without extension.
func stemOf(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}

// DefaultExtensions returns the texture file extensions scanned by default.
func DefaultExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".exr", ".tga", ".webp", ".bmp", ".hdr"}
}

// hasExtension reports whether path carries one of the given extensions.
func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}

	return false
}

// groupKey returns the grouping key for an identifier.
func groupKey(id string, caseSensitive bool) string {
	if caseSensitive {
		return id
	}
	return strings.ToLower(id)
}
