package openddl

import (
	"errors"
	"fmt"
	"strings"
)

// Position is a location in the parsed source.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, in bytes
	Offset int // byte offset
}

// positionAt computes the line and column of a byte offset in src.
func positionAt(src []byte, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	line, col := 1, 1
	for _, ch := range src[:offset] {
		if ch == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Line: line, Column: col, Offset: offset}
}

// ErrorKind identifies the lexical or grammatical rule a document broke.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorInvalidEscapeSequence
	ErrorInvalidIdentifier
	ErrorInvalidName
	ErrorInvalidCharacterLiteral
	ErrorInvalidLiteral
	ErrorInvalidPropertyValue
	ErrorInvalidSubArraySize
	ErrorLiteralOutOfRange
	ErrorExpectedIdentifier
	ErrorExpectedName
	ErrorExpectedLiteral
	ErrorExpectedSeparator
	ErrorExpectedListStart
	ErrorExpectedListEnd
	ErrorExpectedArraySizeEnd
	ErrorExpectedPropertyValue
	ErrorExpectedPropertyAssignment
	ErrorExpectedPropertyListEnd
)

var errorKindNames = map[ErrorKind]string{
	ErrorNone:                       "no error",
	ErrorInvalidEscapeSequence:      "invalid escape sequence",
	ErrorInvalidIdentifier:          "invalid identifier",
	ErrorInvalidName:                "invalid name",
	ErrorInvalidCharacterLiteral:    "invalid character literal",
	ErrorInvalidLiteral:             "invalid literal",
	ErrorInvalidPropertyValue:       "invalid property value",
	ErrorInvalidSubArraySize:        "invalid subarray size",
	ErrorLiteralOutOfRange:          "numeric literal out of range",
	ErrorExpectedIdentifier:         "expected identifier",
	ErrorExpectedName:               "expected name",
	ErrorExpectedLiteral:            "expected literal",
	ErrorExpectedSeparator:          "expected , character",
	ErrorExpectedListStart:          "expected { character",
	ErrorExpectedListEnd:            "expected } character",
	ErrorExpectedArraySizeEnd:       "expected ] character",
	ErrorExpectedPropertyValue:      "expected property value",
	ErrorExpectedPropertyAssignment: "expected = character",
	ErrorExpectedPropertyListEnd:    "expected ) character",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown error"
}

// ParseError reports a lexical or grammatical error. Parsing stops at the
// first one.
type ParseError struct {
	Kind ErrorKind
	// Type is the literal type the parser expected. Only meaningful when
	// HasType is set.
	Type    Type
	HasType bool
	Pos     Position
}

func newError(kind ErrorKind, offset int) *ParseError {
	return &ParseError{Kind: kind, Pos: Position{Offset: offset}}
}

func newTypedError(kind ErrorKind, t Type, offset int) *ParseError {
	return &ParseError{Kind: kind, Type: t, HasType: true, Pos: Position{Offset: offset}}
}

// Message describes the error without its position.
func (e *ParseError) Message() string {
	switch {
	case e.Kind == ErrorLiteralOutOfRange && e.HasType && e.Type == TypeString:
		return "unterminated string literal"
	case e.HasType && (e.Kind == ErrorInvalidLiteral || e.Kind == ErrorExpectedLiteral):
		verb := "invalid"
		if e.Kind == ErrorExpectedLiteral {
			verb = "expected"
		}
		return fmt.Sprintf("%s %s literal", verb, e.Type)
	}
	return e.Kind.String()
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message())
	}
	return e.Message()
}

// ReferenceError reports a reference that does not name any structure in
// the document.
type ReferenceError struct {
	Reference string
	Origin    int // index of the structure holding the reference
	Pos       Position
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("line %d, col %d: reference %s was not found", e.Pos.Line, e.Pos.Column, e.Reference)
}

// ErrGrammar is wrapped by errors caused by an inconsistent validation
// grammar rather than by the document.
var ErrGrammar = errors.New("invalid validation grammar")

// Diagnostic describes a single validation failure.
type Diagnostic struct {
	Rule      string // rule identifier (e.g., "too_many")
	Message   string // human-readable description
	Structure string // related structure keyword (optional)
	Property  string // related property keyword (optional)
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", d.Rule, d.Message)
	if d.Structure != "" {
		fmt.Fprintf(&b, " (structure: %s)", d.Structure)
	}
	if d.Property != "" {
		fmt.Fprintf(&b, " (property: %s)", d.Property)
	}
	return b.String()
}

// ValidationError is returned when a document does not match its grammar.
type ValidationError struct {
	Diagnostic Diagnostic
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Diagnostic.String()
}
