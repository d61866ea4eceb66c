package openddl

import (
	"math"
	"strconv"
	"strings"
)

const characterBase = 256

// numericRun consumes digits of base and '_' separators. A separator can't
// be the first character of the run.
func numericRun(src []byte, i, base int) int {
	start := i
	for i < len(src) && (isBaseDigit(src[i], base) || (src[i] == '_' && i != start)) {
		i++
	}
	return i
}

// basePrefix recognizes 0x, 0o and 0b (in either case).
func basePrefix(src []byte, i int) (base, digits int) {
	if i+1 < len(src) && src[i] == '0' {
		switch src[i+1] {
		case 'x', 'X':
			return 16, i + 2
		case 'o', 'O':
			return 8, i + 2
		case 'b', 'B':
			return 2, i + 2
		}
	}
	return 10, i
}

func stripSeparators(digits []byte) string {
	return strings.ReplaceAll(string(digits), "_", "")
}

func sign(src []byte, i int) (negative bool, next int) {
	if i < len(src) && (src[i] == '+' || src[i] == '-') {
		return src[i] == '-', i + 1
	}
	return false, i
}

// integerLiteral decodes an integer literal for the integer type t. The value
// is returned as its two's complement bit pattern, so callers narrow it with
// a plain conversion (int16(int64(v)), uint8(v), ...). The base is 2, 8, 10,
// 16, or 256 for character literals.
func integerLiteral(src []byte, i int, t Type) (value uint64, base int, next int, err error) {
	if i >= len(src) {
		return 0, 0, i, newTypedError(ErrorExpectedLiteral, t, i)
	}
	start := i
	negative, i := sign(src, i)

	var magnitude uint64
	if i < len(src) && src[i] == '\'' {
		ch, end, err := characterLiteral(src, i)
		if err != nil {
			return 0, 0, end, err
		}
		magnitude, base, i = uint64(ch), characterBase, end
	} else {
		var digits int
		base, digits = basePrefix(src, i)
		end := numericRun(src, digits, base)
		if end == digits {
			return 0, 0, start, newTypedError(ErrorInvalidLiteral, t, start)
		}
		magnitude, err = strconv.ParseUint(stripSeparators(src[digits:end]), base, 64)
		if err != nil {
			return 0, 0, start, newTypedError(ErrorLiteralOutOfRange, t, start)
		}
		i = end
	}

	if negative && !t.signed() {
		return 0, 0, start, newTypedError(ErrorLiteralOutOfRange, t, start)
	}
	limit := uint64(math.MaxUint64) >> (64 - t.bits())
	if t.signed() {
		limit >>= 1
		if negative {
			limit++
		}
	}
	if magnitude > limit {
		return 0, 0, start, newTypedError(ErrorLiteralOutOfRange, t, start)
	}
	if negative {
		magnitude = -magnitude
	}
	return magnitude, base, i, nil
}

// floatLiteral decodes a decimal floating-point literal, or a binary, octal
// or hexadecimal literal giving the raw IEEE 754 bits of a float (t ==
// TypeFloat) or double (t == TypeDouble).
func floatLiteral(src []byte, i int, t Type) (float64, int, error) {
	if i >= len(src) {
		return 0, i, newTypedError(ErrorExpectedLiteral, t, i)
	}
	start := i
	negative, i := sign(src, i)
	bits := t.bits()

	if base, digits := basePrefix(src, i); base != 10 {
		end := numericRun(src, digits, base)
		if end == digits {
			return 0, start, newTypedError(ErrorInvalidLiteral, t, start)
		}
		pattern, err := strconv.ParseUint(stripSeparators(src[digits:end]), base, bits)
		if err != nil {
			return 0, start, newTypedError(ErrorLiteralOutOfRange, t, start)
		}
		v := math.Float64frombits(pattern)
		if bits == 32 {
			v = float64(math.Float32frombits(uint32(pattern)))
		}
		if negative {
			v = -v
		}
		return v, end, nil
	}

	intEnd := numericRun(src, i, 10)
	end := intEnd
	if end < len(src) && src[end] == '.' {
		fracEnd := numericRun(src, end+1, 10)
		if intEnd == i && fracEnd == end+1 {
			return 0, start, newTypedError(ErrorInvalidLiteral, t, start)
		}
		end = fracEnd
	} else if intEnd == i {
		return 0, start, newTypedError(ErrorInvalidLiteral, t, start)
	}

	if end < len(src) && (src[end] == 'e' || src[end] == 'E') {
		_, exp := sign(src, end+1)
		expEnd := numericRun(src, exp, 10)
		if expEnd == exp {
			return 0, start, newTypedError(ErrorInvalidLiteral, t, start)
		}
		end = expEnd
	}

	v, err := strconv.ParseFloat(stripSeparators(src[i:end]), bits)
	if err != nil {
		return 0, start, newTypedError(ErrorLiteralOutOfRange, t, start)
	}
	if negative {
		v = -v
	}
	return v, end, nil
}
