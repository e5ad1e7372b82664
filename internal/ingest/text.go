package ingest

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// decodeText unquotes a raw JSON string token. Surrogate pairs are joined
// as usual, but an unpaired \uD800-\uDFFF escape is kept as its three-byte
// encoding, which is not valid UTF-8. Raw bytes outside escapes are copied
// unchanged. An absent or null token yields nil.
func decodeText(raw []byte) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return nil, fmt.Errorf("text is not a string: %.20s", raw)
	}

	body := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return nil, fmt.Errorf("text ends inside an escape")
		}
		switch esc := body[i+1]; esc {
		case '"', '\\', '/':
			out = append(out, esc)
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			r, ok := hexEscape(body[i:])
			if !ok {
				return nil, fmt.Errorf("invalid unicode escape at offset %d", i)
			}
			i += 6
			if !utf16.IsSurrogate(r) {
				out = utf8.AppendRune(out, r)
				continue
			}
			if lo, ok := hexEscape(body[i:]); ok && r < 0xDC00 && lo >= 0xDC00 && lo <= 0xDFFF {
				out = utf8.AppendRune(out, utf16.DecodeRune(r, lo))
				i += 6
				continue
			}
			out = append(out, 0xE0|byte(r>>12), 0x80|byte(r>>6)&0x3F, 0x80|byte(r)&0x3F)
			continue
		default:
			return nil, fmt.Errorf("invalid escape \\%c at offset %d", esc, i)
		}
		i += 2
	}

	s := string(out)
	return &s, nil
}

// hexEscape parses a leading \uXXXX.
func hexEscape(b []byte) (rune, bool) {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return 0, false
	}
	n, err := strconv.ParseUint(string(b[2:6]), 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}
