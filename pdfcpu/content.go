package pdfcpu

import (
	"encoding/hex"
	"strings"
	"unicode/utf16"
)

// DecodeContent recovers the text shown by a decoded PDF content
// stream. It interprets the text-showing operators (Tj, TJ, ' and ")
// and treats line-positioning operators as line breaks. String operands
// are decoded from literal and hexadecimal form, including UTF-16BE
// strings carrying a byte order mark. Content drawn as images or with
// CID-keyed custom encodings yields no text.
func DecodeContent(content []byte) string {
	var b strings.Builder
	var pending []string

	flush := func() {
		for _, s := range pending {
			b.WriteString(s)
		}
		pending = pending[:0]
	}
	newline := func() {
		flush()
		b.WriteByte('\n')
	}

	i := 0
	for i < len(content) {
		c := content[i]
		switch {
		case c == '(':
			s, n := parseLiteral(content[i:])
			pending = append(pending, decodeString(s))
			i += n

		case c == '<' && i+1 < len(content) && content[i+1] == '<':
			i += 2 // dictionary start, tokens inside are ignored

		case c == '<':
			s, n := parseHexString(content[i:])
			pending = append(pending, decodeString(s))
			i += n

		case c == '%':
			for i < len(content) && content[i] != '\n' {
				i++
			}

		case c == '/':
			// Name object; consume so a name like /Tj is not
			// mistaken for an operator.
			i++
			for i < len(content) && !isDelim(content[i]) {
				i++
			}

		case isDelim(c):
			i++

		default:
			j := i
			for j < len(content) && !isDelim(content[j]) {
				j++
			}
			switch string(content[i:j]) {
			case "Tj", "TJ":
				flush()
			case "'", "\"":
				b.WriteByte('\n')
				flush()
			case "Td", "TD", "T*", "Tm", "ET":
				newline()
			}
			i = j
		}
	}
	flush()

	return strings.TrimSpace(collapseNewlines(b.String()))
}

// parseLiteral parses a PDF literal string starting at b[0] == '(' and
// returns the raw decoded bytes and the number of input bytes consumed.
func parseLiteral(b []byte) ([]byte, int) {
	var out []byte
	depth := 1
	i := 1
	for i < len(b) && depth > 0 {
		c := b[i]
		switch c {
		case '\\':
			i++
			if i >= len(b) {
				return out, i
			}
			switch e := b[i]; e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '(', ')', '\\':
				out = append(out, e)
			case '\n':
				// line continuation
			case '\r':
				if i+1 < len(b) && b[i+1] == '\n' {
					i++
				}
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for k := 0; k < 2 && i+1 < len(b) && b[i+1] >= '0' && b[i+1] <= '7'; k++ {
						i++
						v = v*8 + int(b[i]-'0')
					}
					out = append(out, byte(v))
				} else {
					out = append(out, e)
				}
			}
			i++
		case '(':
			depth++
			out = append(out, c)
			i++
		case ')':
			depth--
			if depth > 0 {
				out = append(out, c)
			}
			i++
		default:
			out = append(out, c)
			i++
		}
	}
	return out, i
}

// parseHexString parses a PDF hexadecimal string starting at b[0] == '<'
// and returns the raw decoded bytes and the number of input bytes consumed.
func parseHexString(b []byte) ([]byte, int) {
	i := 1
	var digits []byte
	for i < len(b) && b[i] != '>' {
		c := b[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
			digits = append(digits, c)
		}
		i++
	}
	if i < len(b) {
		i++ // consume '>'
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, len(digits)/2)
	if _, err := hex.Decode(out, digits); err != nil {
		return nil, i
	}
	return out, i
}

// decodeString converts raw PDF string bytes to a Go string, decoding
// UTF-16BE when the byte order mark is present.
func decodeString(raw []byte) string {
	if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
		u := raw[2:]
		codes := make([]uint16, 0, len(u)/2)
		for i := 0; i+1 < len(u); i += 2 {
			codes = append(codes, uint16(u[i])<<8|uint16(u[i+1]))
		}
		return string(utf16.Decode(codes))
	}
	return string(raw)
}

func isDelim(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\x00', '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// collapseNewlines reduces runs of blank lines produced by positioning
// operators to single line breaks.
func collapseNewlines(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastNL := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if !lastNL {
				b.WriteByte('\n')
			}
			lastNL = true
			continue
		}
		lastNL = false
		b.WriteByte(s[i])
	}
	return b.String()
}
