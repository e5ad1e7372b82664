package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodingErrorToken replaces any token that cannot be repaired.
const DecodingErrorToken = "[decodingError]"

// RepairMojibake undoes UTF-8 text that was decoded as Latin-1 on export.
//
// Each whitespace-delimited token is re-encoded as ISO-8859-1 and the bytes
// read back as UTF-8; a token failing either step becomes DecodingErrorToken.
// Tokens are rejoined with single spaces. Pure ASCII is returned unchanged
// apart from whitespace collapsing.
func RepairMojibake(s string) string {
	out, _ := repairMojibake(s)
	return out
}

func repairMojibake(s string) (string, int) {
	words := strings.Fields(s)
	failures := 0
	for i, w := range words {
		fixed, ok := repairToken(w)
		if !ok {
			words[i] = DecodingErrorToken
			failures++
			continue
		}
		words[i] = fixed
	}
	return strings.Join(words, " "), failures
}

// repairToken is attempted on every token, ASCII or not; ASCII survives the
// round trip as-is.
func repairToken(tok string) (string, bool) {
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(tok))
	if err != nil {
		return "", false
	}
	if !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}
