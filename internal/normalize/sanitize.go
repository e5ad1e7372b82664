package normalize

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Sanitize makes s safe to serialize. Valid UTF-8 is returned unchanged.
// Surrogate halves encoded one by one (CESU-8 style) are joined when they
// form a pair; unpaired surrogates and any other invalid bytes are dropped.
// The result is always valid UTF-8.
func Sanitize(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != utf8.RuneError || size > 1 {
			b.WriteString(s[i : i+size])
			i += size
			continue
		}

		if hi, ok := encodedSurrogate(s[i:]); ok {
			if lo, ok := encodedSurrogate(s[i+3:]); ok && isHighSurrogate(hi) && isLowSurrogate(lo) {
				b.WriteRune(utf16.DecodeRune(hi, lo))
				i += 6
				continue
			}
			i += 3
			continue
		}
		i++
	}
	return b.String()
}

// encodedSurrogate decodes a three-byte sequence carrying a UTF-16 surrogate
// (U+D800..U+DFFF), which utf8 rejects.
func encodedSurrogate(s string) (rune, bool) {
	if len(s) < 3 || s[0] != 0xED || s[1] < 0xA0 || s[1] > 0xBF || s[2]&0xC0 != 0x80 {
		return 0, false
	}
	return rune(s[0]&0x0F)<<12 | rune(s[1]&0x3F)<<6 | rune(s[2]&0x3F), true
}

func isHighSurrogate(r rune) bool { return r >= 0xD800 && r < 0xDC00 }
func isLowSurrogate(r rune) bool  { return r >= 0xDC00 && r <= 0xDFFF }
