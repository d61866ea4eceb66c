package openddl

import "errors"

// Value is a decoded property value. Only the field selected by Kind is
// meaningful.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Int   uint64 // two's complement bits for integral, binary and character kinds
	Float float64
	Str   string // string contents, or the raw reference token ("" is null)
	Type  Type
}

func baseKind(base int) ValueKind {
	switch base {
	case 10:
		return ValueIntegral
	case characterBase:
		return ValueCharacter
	}
	return ValueBinary
}

// looksLikeFloat scans ahead over a numeric literal and reports whether it
// contains a decimal point.
func looksLikeFloat(src []byte, i int) bool {
	for ; i < len(src); i++ {
		switch ch := src[i]; {
		case ch == '.':
			return true
		case isDecimal(ch) || ch == '_':
		default:
			return false
		}
	}
	return false
}

// propertyValue decodes the right-hand side of a property assignment, picking
// the literal kind from its first character.
func propertyValue(src []byte, i int) (Value, int, error) {
	if i >= len(src) {
		return Value{}, i, newError(ErrorExpectedPropertyValue, i)
	}

	switch ch := src[i]; {
	case ch == '"':
		s, next, err := stringLiteral(src, i)
		return Value{Kind: ValueString, Str: s}, next, err

	case ch == '$' || ch == '%':
		ref, next, err := referenceLiteral(src, i)
		return Value{Kind: ValueReference, Str: ref}, next, err

	case isDecimal(ch) || ch == '.' || ch == '\'':
		if looksLikeFloat(src, i) {
			f, next, err := floatLiteral(src, i, TypeDouble)
			return Value{Kind: ValueFloat, Float: f}, next, err
		}
		v, base, next, err := integerLiteral(src, i, TypeInt64)
		var perr *ParseError
		if errors.As(err, &perr) && perr.Kind == ErrorLiteralOutOfRange {
			v, base, next, err = integerLiteral(src, i, TypeUnsignedInt64)
		}
		return Value{Kind: baseKind(base), Int: v}, next, err

	case isIdentStart(ch):
		end, _ := identifier(src, i)
		switch word := string(src[i:end]); word {
		case "null":
			return Value{Kind: ValueReference}, end, nil
		case "true", "false":
			return Value{Kind: ValueBool, Bool: word == "true"}, end, nil
		}
		if t, end, ok := possiblyTypeLiteral(src, i); ok {
			return Value{Kind: ValueType, Type: t}, end, nil
		}
	}
	return Value{}, i, newError(ErrorInvalidPropertyValue, i)
}
