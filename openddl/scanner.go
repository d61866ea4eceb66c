package openddl

import (
	"bytes"
	"strings"
)

// The scanner is a set of stateless functions. Each takes the source and a
// cursor, and returns the decoded value together with the cursor just past
// the consumed text. On failure the returned error is a *ParseError whose
// offset points at the offending byte.

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDecimal(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHex(ch byte) bool {
	return isDecimal(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isBaseDigit(ch byte, base int) bool {
	switch base {
	case 2:
		return ch == '0' || ch == '1'
	case 8:
		return ch >= '0' && ch <= '7'
	case 16:
		return isHex(ch)
	}
	return isDecimal(ch)
}

func isIdentStart(ch byte) bool {
	return isAlpha(ch) || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDecimal(ch)
}

func hexValue(ch byte) byte {
	switch {
	case isDecimal(ch):
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	}
	return ch - 'A' + 10
}

// whitespace skips bytes up to and including the space character, line
// comments and block comments. An unterminated block comment swallows the
// rest of the input.
func whitespace(src []byte, i int) int {
	for i < len(src) {
		switch {
		case src[i] <= ' ':
			i++
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '/':
			i += 2
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '*':
			end := bytes.Index(src[i+2:], []byte("*/"))
			if end < 0 {
				return len(src)
			}
			i += 2 + end + 2
		default:
			return i
		}
	}
	return i
}

// identifier consumes [A-Za-z_][A-Za-z0-9_]* and returns its end.
func identifier(src []byte, i int) (int, error) {
	if i >= len(src) {
		return i, newError(ErrorExpectedIdentifier, i)
	}
	if !isIdentStart(src[i]) {
		return i, newError(ErrorInvalidIdentifier, i)
	}
	i++
	for i < len(src) && isIdentPart(src[i]) {
		i++
	}
	return i, nil
}

var simpleEscapes = map[byte]byte{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'?':  '?',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// escapedChar decodes a backslash escape starting at src[i].
func escapedChar(src []byte, i int) (byte, int, error) {
	if i+1 >= len(src) {
		return 0, i, newError(ErrorInvalidEscapeSequence, i)
	}
	if ch, ok := simpleEscapes[src[i+1]]; ok {
		return ch, i + 2, nil
	}
	if src[i+1] == 'x' && i+4 <= len(src) && isHex(src[i+2]) && isHex(src[i+3]) {
		return hexValue(src[i+2])<<4 | hexValue(src[i+3]), i + 4, nil
	}
	return 0, i, newError(ErrorInvalidEscapeSequence, i)
}

// unicodePlaceholder replaces \u and \U escapes, which are validated but not
// decoded.
const unicodePlaceholder = "?"

// escapedUnicode is escapedChar extended with \uXXXX and \UXXXXXXXX.
func escapedUnicode(src []byte, i int) (string, int, error) {
	if i+1 < len(src) && (src[i+1] == 'u' || src[i+1] == 'U') {
		n := 4
		if src[i+1] == 'U' {
			n = 8
		}
		if i+2+n > len(src) {
			return "", i, newError(ErrorInvalidEscapeSequence, i)
		}
		for _, ch := range src[i+2 : i+2+n] {
			if !isHex(ch) {
				return "", i, newError(ErrorInvalidEscapeSequence, i)
			}
		}
		return unicodePlaceholder, i + 2 + n, nil
	}
	ch, next, err := escapedChar(src, i)
	if err != nil {
		return "", i, err
	}
	return string([]byte{ch}), next, nil
}

// characterLiteral decodes 'c' where c is printable ASCII or an escape.
func characterLiteral(src []byte, i int) (byte, int, error) {
	if i >= len(src) || src[i] != '\'' {
		return 0, i, newError(ErrorInvalidCharacterLiteral, i)
	}
	i++
	if i >= len(src) {
		return 0, i, newError(ErrorInvalidCharacterLiteral, i)
	}

	var ch byte
	switch c := src[i]; {
	case c == '\\':
		var err error
		if ch, i, err = escapedChar(src, i); err != nil {
			return 0, i, err
		}
	case c >= 0x20 && c <= 0x7e && c != '\'':
		ch = c
		i++
	default:
		return 0, i, newError(ErrorInvalidCharacterLiteral, i)
	}

	if i >= len(src) || src[i] != '\'' {
		return 0, i, newError(ErrorInvalidCharacterLiteral, i)
	}
	return ch, i + 1, nil
}

func boolLiteral(src []byte, i int) (bool, int, error) {
	if end, err := identifier(src, i); err == nil {
		switch string(src[i:end]) {
		case "true":
			return true, end, nil
		case "false":
			return false, end, nil
		}
	}
	return false, i, newTypedError(ErrorInvalidLiteral, TypeBool, i)
}

// stringLiteral decodes one or more adjacent quoted strings, concatenating
// them. Anything whitespace() skips may separate the parts. The returned
// cursor is just past the last closing quote.
func stringLiteral(src []byte, i int) (string, int, error) {
	if i >= len(src) || src[i] != '"' {
		return "", i, newTypedError(ErrorExpectedLiteral, TypeString, i)
	}

	var b strings.Builder
	for {
		i++ // opening quote
		for i < len(src) && src[i] != '"' {
			switch ch := src[i]; {
			case ch == '\\':
				s, next, err := escapedUnicode(src, i)
				if err != nil {
					return "", i, err
				}
				b.WriteString(s)
				i = next
			case ch < 0x20:
				return "", i, newTypedError(ErrorInvalidLiteral, TypeString, i)
			default:
				b.WriteByte(ch)
				i++
			}
		}
		if i >= len(src) {
			return "", i, newTypedError(ErrorLiteralOutOfRange, TypeString, i)
		}
		i++ // closing quote

		next := whitespace(src, i)
		if next >= len(src) || src[next] != '"' {
			return b.String(), i, nil
		}
		i = next
	}
}

// nameLiteral decodes $global or %local. The sigil is part of the name.
func nameLiteral(src []byte, i int) (string, int, error) {
	if i >= len(src) {
		return "", i, newError(ErrorExpectedName, i)
	}
	if src[i] != '$' && src[i] != '%' {
		return "", i, newError(ErrorInvalidName, i)
	}
	end, err := identifier(src, i+1)
	if err != nil {
		return "", end, err
	}
	return string(src[i:end]), end, nil
}

// referenceLiteral returns the raw text of a name chain such as
// $mesh%positions, or an empty string for null.
func referenceLiteral(src []byte, i int) (string, int, error) {
	if i >= len(src) {
		return "", i, newTypedError(ErrorExpectedLiteral, TypeReference, i)
	}
	if end, err := identifier(src, i); err == nil && string(src[i:end]) == "null" {
		return "", end, nil
	}
	if src[i] != '$' && src[i] != '%' {
		return "", i, newTypedError(ErrorInvalidLiteral, TypeReference, i)
	}

	end, err := identifier(src, i+1)
	if err != nil {
		return "", end, err
	}
	for end < len(src) && src[end] == '%' {
		if end, err = identifier(src, end+1); err != nil {
			return "", end, err
		}
	}
	return string(src[i:end]), end, nil
}

// possiblyTypeLiteral reports whether an identifier naming a primitive type
// starts at src[i].
func possiblyTypeLiteral(src []byte, i int) (Type, int, bool) {
	end, err := identifier(src, i)
	if err != nil {
		return TypeCustom, i, false
	}
	t, ok := ParseTypeName(string(src[i:end]))
	if !ok {
		return TypeCustom, i, false
	}
	return t, end, true
}

func typeLiteral(src []byte, i int) (Type, int, error) {
	if i >= len(src) {
		return TypeCustom, i, newTypedError(ErrorExpectedLiteral, TypeType, i)
	}
	if t, end, ok := possiblyTypeLiteral(src, i); ok {
		return t, end, nil
	}
	return TypeCustom, i, newTypedError(ErrorInvalidLiteral, TypeType, i)
}
