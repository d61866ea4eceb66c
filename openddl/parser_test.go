package openddl

import (
	"errors"
	"iter"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	someStructure = iota
	rootStructure
	hierarchicStructure
)

var structureKeywords = []string{"Some", "Root", "Hierarchic"}

const (
	someProperty = iota
	booleanProperty
	referenceProperty
)

var propertyKeywords = []string{"some", "boolean", "reference"}

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	d := NewDocument()
	require.NoError(t, d.Parse([]byte(src), structureKeywords, propertyKeywords))
	return d
}

func mustFirst(t *testing.T, s Structure, ok bool) Structure {
	t.Helper()
	require.True(t, ok)
	return s
}

func names(seq iter.Seq[Structure]) []string {
	var out []string
	for s := range seq {
		out = append(out, s.Name())
	}
	return out
}

func TestParsePrimitive(t *testing.T) {
	d := mustParse(t, `int16 { 35, -'\x0c', 45 }`)
	require.False(t, d.IsEmpty())

	s := mustFirst(t, d.FirstChild())
	assert.False(t, s.IsCustom())
	assert.Equal(t, TypeInt16, s.Type())
	assert.Equal(t, 3, s.ArraySize())
	assert.Equal(t, 0, s.SubArraySize())

	values, err := Array[int16](s)
	require.NoError(t, err)
	assert.Equal(t, []int16{35, -0x0c, 45}, values)

	_, err = Array[int32](s)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = As[int16](s)
	assert.ErrorIs(t, err, ErrNotSingleValue)
}

func TestParsePrimitiveEmpty(t *testing.T) {
	d := mustParse(t, "float {}")
	s := mustFirst(t, d.FirstChild())
	assert.Equal(t, TypeFloat, s.Type())
	assert.False(t, s.HasName())
	assert.Equal(t, "", s.Name())
	assert.Equal(t, 0, s.ArraySize())
}

func TestParsePrimitiveName(t *testing.T) {
	d := mustParse(t, "float %name {}")
	s := mustFirst(t, d.FirstChild())
	assert.True(t, s.HasName())
	assert.Equal(t, "%name", s.Name())
}

func TestParseEveryPrimitiveType(t *testing.T) {
	d := mustParse(t, `
bool { true, false }
unsigned_int8 { 255 }
int8 { -128 }
unsigned_int16 { 0xffff }
int16 { -1 }
unsigned_int32 { 'A' }
int32 { 0o17 }
unsigned_int64 { 18446744073709551615 }
int64 { -9223372036854775808 }
float { 1.5, 0x3f800000 }
double { -2.25e1 }
string { "a", "b" "c" }
type { float, ref }
ref { null }
`)
	var types []Type
	for s := range d.Children() {
		types = append(types, s.Type())
	}
	assert.Equal(t, []Type{
		TypeBool, TypeUnsignedInt8, TypeInt8, TypeUnsignedInt16, TypeInt16,
		TypeUnsignedInt32, TypeInt32, TypeUnsignedInt64, TypeInt64,
		TypeFloat, TypeDouble, TypeString, TypeType, TypeReference,
	}, types)

	first := func(t2 Type) Structure {
		s, ok := d.FindFirstChildOfType(t2)
		require.True(t, ok, "type %s", t2)
		return s
	}

	bools, err := Array[bool](first(TypeBool))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, bools)

	u8, err := As[uint8](first(TypeUnsignedInt8))
	require.NoError(t, err)
	assert.Equal(t, uint8(255), u8)

	i8, err := As[int8](first(TypeInt8))
	require.NoError(t, err)
	assert.Equal(t, int8(-128), i8)

	u16, err := As[uint16](first(TypeUnsignedInt16))
	require.NoError(t, err)
	assert.Equal(t, uint16(0xffff), u16)

	i16, err := As[int16](first(TypeInt16))
	require.NoError(t, err)
	assert.Equal(t, int16(-1), i16)

	u32, err := As[uint32](first(TypeUnsignedInt32))
	require.NoError(t, err)
	assert.Equal(t, uint32('A'), u32)

	i32, err := As[int32](first(TypeInt32))
	require.NoError(t, err)
	assert.Equal(t, int32(15), i32)

	u64, err := As[uint64](first(TypeUnsignedInt64))
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), u64)

	i64, err := As[int64](first(TypeInt64))
	require.NoError(t, err)
	assert.Equal(t, int64(-9223372036854775808), i64)

	floats, err := Array[float32](first(TypeFloat))
	require.NoError(t, err)
	assert.Equal(t, []float32{1.5, 1}, floats)

	f64, err := As[float64](first(TypeDouble))
	require.NoError(t, err)
	assert.Equal(t, -22.5, f64)

	strs, err := Array[string](first(TypeString))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "bc"}, strs)

	types2, err := Array[Type](first(TypeType))
	require.NoError(t, err)
	assert.Equal(t, []Type{TypeFloat, TypeReference}, types2)

	target, ok, err := first(TypeReference).Reference()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, target.IsNull())
}

func TestParseSubArray(t *testing.T) {
	d := mustParse(t, "unsigned_int8[2] { {0xca, 0xfe}, {0xba, 0xbe} }")
	s := mustFirst(t, d.FirstChild())
	assert.Equal(t, TypeUnsignedInt8, s.Type())
	assert.Equal(t, "", s.Name())
	assert.Equal(t, 4, s.ArraySize())
	assert.Equal(t, 2, s.SubArraySize())

	values, err := Array[uint8](s)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0xca, 0xfe, 0xba, 0xbe}, values)
}

func TestParseSubArrayEmpty(t *testing.T) {
	d := mustParse(t, "unsigned_int8[2] {}")
	s := mustFirst(t, d.FirstChild())
	assert.Equal(t, 0, s.ArraySize())
	assert.Equal(t, 2, s.SubArraySize())
}

func TestParseSubArrayName(t *testing.T) {
	d := mustParse(t, "unsigned_int8 [ 2 ] $name {}")
	assert.Equal(t, "$name", mustFirst(t, d.FirstChild()).Name())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    ErrorKind
		message string
	}{
		{"primitive list start", "float 35", ErrorExpectedListStart, "expected { character"},
		{"primitive list end", "float { 35", ErrorExpectedListEnd, "expected } character"},
		{"primitive separator", "float { 35 45", ErrorExpectedSeparator, "expected , character"},
		{"primitive next", "float { 35,", ErrorExpectedLiteral, "expected float literal"},
		{"primitive trailing separator", "int16 { 1, }", ErrorInvalidLiteral, "invalid int16 literal"},
		{"primitive invalid literal", "bool { yes }", ErrorInvalidLiteral, "invalid bool literal"},
		{"primitive out of range", "int16 { 32768 }", ErrorLiteralOutOfRange, "numeric literal out of range"},
		{"unterminated string", `string { "abc }`, ErrorLiteralOutOfRange, "unterminated string literal"},
		{"subarray invalid size", "unsigned_int8[0] {}", ErrorInvalidSubArraySize, "invalid subarray size"},
		{"subarray size end", "unsigned_int8[2 {", ErrorExpectedArraySizeEnd, "expected ] character"},
		{"subarray sub separator", "unsigned_int8[2] { {0xca, 0xfe} {0xba", ErrorExpectedSeparator, "expected , character"},
		{"subarray sub next", "unsigned_int8[3] { {0xca, 0xfe,", ErrorExpectedLiteral, "expected unsigned_int8 literal"},
		{"subarray next", "unsigned_int8[2] { {0xca, 0xfe},", ErrorExpectedListStart, "expected { character"},
		{"subarray sub list end", "int32[2] { {0xca, 0xfe, 0xba", ErrorExpectedListEnd, "expected } character"},
		{"subarray separator", "double[2] { {35 45", ErrorExpectedSeparator, "expected , character"},
		{"invalid name", "float % {}", ErrorInvalidIdentifier, "invalid identifier"},
		{"custom invalid identifier", "%name { string", ErrorInvalidIdentifier, "invalid identifier"},
		{"custom list start", "Root string", ErrorExpectedListStart, "expected { character"},
		{"custom list end", "Root { ", ErrorExpectedListEnd, "expected } character"},
		{"property separator", "Root (some = 15.3 boolean", ErrorExpectedSeparator, "expected , character"},
		{"property assignment", "Root (some 15.3", ErrorExpectedPropertyAssignment, "expected = character"},
		{"property list end", "Root (some = 15.3 ", ErrorExpectedPropertyListEnd, "expected ) character"},
		{"property invalid identifier", "Root (%some = 15.3", ErrorInvalidIdentifier, "invalid identifier"},
		{"property invalid value", "Root (some = Fail", ErrorInvalidPropertyValue, "invalid property value"},
		{"property missing value", "Root (some = ", ErrorExpectedPropertyValue, "expected property value"},
		{"property signed value", "Root (some = -5) {}", ErrorInvalidPropertyValue, "invalid property value"},
		{"unquoted string", "string { abc }", ErrorExpectedLiteral, "expected string literal"},
		{"stray closing brace", "Root {} }", ErrorInvalidIdentifier, "invalid identifier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDocument().Parse([]byte(tt.input), structureKeywords, propertyKeywords)
			perr := requireKind(t, err, tt.kind)
			assert.Equal(t, tt.message, perr.Message())
			assert.Equal(t, 1, perr.Pos.Line)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	src := "Root {\n  float { 1.0 }\n  int32 { 1, x }\n}"
	err := NewDocument().Parse([]byte(src), structureKeywords, propertyKeywords)
	perr := requireKind(t, err, ErrorInvalidLiteral)
	assert.Equal(t, 3, perr.Pos.Line)
	assert.Equal(t, 14, perr.Pos.Column)
	assert.Equal(t, "line 3, col 14: invalid int32 literal", err.Error())
}

func TestParseCustom(t *testing.T) {
	d := mustParse(t, `Root { string {"hello"} }`)
	s := mustFirst(t, d.FirstChild())
	assert.True(t, s.IsCustom())
	assert.Equal(t, TypeCustom, s.Type())
	assert.Equal(t, rootStructure, s.Identifier())
	assert.Equal(t, "", s.Name())
	require.True(t, s.HasChildren())

	c := mustFirst(t, s.FirstChild())
	assert.False(t, c.IsCustom())
	assert.Equal(t, TypeString, c.Type())
	v, err := As[string](c)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	_, err = Array[string](s)
	assert.ErrorIs(t, err, ErrNotPrimitive)
}

func TestParseCustomEmpty(t *testing.T) {
	d := mustParse(t, "Some {}")
	s := mustFirst(t, d.FirstChild())
	assert.Equal(t, someStructure, s.Identifier())
	assert.False(t, s.HasChildren())
	assert.False(t, s.HasName())
	_, ok := s.FirstChild()
	assert.False(t, ok)
}

func TestParseCustomUnknown(t *testing.T) {
	d := mustParse(t, "UnspecifiedStructure {}")
	s := mustFirst(t, d.FirstChild())
	assert.True(t, s.IsCustom())
	assert.Equal(t, UnknownIdentifier, s.Identifier())
	assert.Equal(t, "(unknown)", d.StructureName(s.Identifier()))
}

func TestParseTypeKeywordIsWholeIdentifier(t *testing.T) {
	d := mustParse(t, "int8x {} float_ { }")
	for s := range d.Children() {
		assert.True(t, s.IsCustom())
		assert.Equal(t, UnknownIdentifier, s.Identifier())
	}
	assert.Len(t, slices.Collect(d.Children()), 2)
}

func TestParseCustomName(t *testing.T) {
	d := mustParse(t, "Some %some_name {}")
	s := mustFirst(t, d.FirstChild())
	assert.True(t, s.HasName())
	assert.Equal(t, "%some_name", s.Name())
}

func TestParseCustomProperties(t *testing.T) {
	d := mustParse(t, "Root %some_name (boolean = true, some = 15.3) {}")
	s := mustFirst(t, d.FirstChild())
	assert.Equal(t, "%some_name", s.Name())
	assert.Equal(t, 2, s.PropertyCount())

	p1, ok := s.FindProperty(booleanProperty)
	require.True(t, ok)
	assert.True(t, p1.IsTypeCompatibleWith(TypeBool))
	assert.Equal(t, booleanProperty, p1.Identifier())
	assert.Equal(t, "boolean", p1.Name())
	b, err := p1.AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	p2, ok := s.FindProperty(someProperty)
	require.True(t, ok)
	assert.True(t, p2.IsTypeCompatibleWith(TypeFloat))
	assert.True(t, p2.IsTypeCompatibleWith(TypeDouble))
	assert.False(t, p2.IsTypeCompatibleWith(TypeInt32))
	f, err := p2.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, float32(15.3), float32(f))

	_, err = p2.AsString()
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, ok = s.FindProperty(referenceProperty)
	assert.False(t, ok)
}

func TestParseCustomPropertyKinds(t *testing.T) {
	d := mustParse(t, `Root (some = 0x10, boolean = 'a', reference = 7, unknown = float, x = 0xffffffffffffffff) {}`)
	s := mustFirst(t, d.FirstChild())
	props := s.Properties()
	require.Len(t, props, 5)

	assert.Equal(t, ValueBinary, props[0].Kind())
	assert.Equal(t, ValueCharacter, props[1].Kind())
	assert.Equal(t, ValueIntegral, props[2].Kind())
	assert.Equal(t, ValueType, props[3].Kind())
	for _, p := range props[:3] {
		assert.True(t, p.IsTypeCompatibleWith(TypeUnsignedInt8))
		assert.False(t, p.IsTypeCompatibleWith(TypeFloat))
	}

	v, err := props[0].AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(16), v)
	v, err = props[1].AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64('a'), v)
	v, err = props[2].AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
	u, err := props[4].AsUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), u)

	typ, err := props[3].AsType()
	require.NoError(t, err)
	assert.Equal(t, TypeFloat, typ)
	assert.Equal(t, UnknownIdentifier, props[3].Identifier())
	assert.Equal(t, "(unknown)", props[3].Name())

	u, err := props[4].AsUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), u)
}

func TestParseCustomPropertyEmpty(t *testing.T) {
	d := mustParse(t, "Root () {}")
	s := mustFirst(t, d.FirstChild())
	assert.Equal(t, 0, s.PropertyCount())
	assert.Empty(t, s.Properties())
}

func TestParseCustomPropertyUnknown(t *testing.T) {
	d := mustParse(t, `Root (unspecified = "hello") {}`)
	s := mustFirst(t, d.FirstChild())
	assert.Equal(t, 1, s.PropertyCount())

	p, ok := s.FindProperty(UnknownIdentifier)
	require.True(t, ok)
	assert.True(t, p.IsTypeCompatibleWith(TypeString))
	str, err := p.AsString()
	require.NoError(t, err)
	assert.Equal(t, "hello", str)
}

func TestParseDuplicateProperties(t *testing.T) {
	d := mustParse(t, `Root (some = "string to ignore", boolean = "hello", unknown = "hey", some = "string") {}
Hierarchic () {}`)

	var strs []string
	root := mustFirst(t, d.FindFirstChildOf(rootStructure))
	for _, p := range root.Properties() {
		s, err := p.AsString()
		require.NoError(t, err)
		strs = append(strs, s)
	}
	assert.Equal(t, []string{"string to ignore", "hello", "hey", "string"}, strs)

	p, ok := root.FindProperty(someProperty)
	require.True(t, ok)
	s, err := p.AsString()
	require.NoError(t, err)
	assert.Equal(t, "string", s)

	assert.Empty(t, mustFirst(t, d.FindFirstChildOf(hierarchicStructure)).Properties())
}

func TestParseHierarchy(t *testing.T) {
	d := mustParse(t, `
// This should finally work.

Root (some /*duplicates are ignored*/ = 15.0, some = 0.5) { string { "hello", "world" } }

Hierarchic %node819 (boolean = false, id = 819) {
    Hierarchic %node820 (boolean = true, id = 820) {
        Some { int32[2] { {3, 4}, {5, 6} } }
    }

    Some { int16[2] { {0, 1}, {2, 3} } }
}

Hierarchic %node821 {}
`)
	require.False(t, d.IsEmpty())

	root := mustFirst(t, d.FindFirstChildOf(rootStructure))
	_, ok := root.Parent()
	assert.False(t, ok)
	some, ok := root.FindProperty(someProperty)
	require.True(t, ok)
	f, err := some.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)

	str := mustFirst(t, root.FirstChild())
	parent, ok := str.Parent()
	require.True(t, ok)
	assert.Equal(t, root, parent)
	_, ok = str.Next()
	assert.False(t, ok)
	values, err := Array[string](mustFirst(t, root.FindFirstChildOfType(TypeString)))
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "world"}, values)

	_, ok = root.FindNextOf(rootStructure)
	assert.False(t, ok)
	_, ok = root.FindProperty(booleanProperty)
	assert.False(t, ok)

	a := mustFirst(t, d.FindFirstChildOf(hierarchicStructure))
	_, ok = a.Parent()
	assert.False(t, ok)
	assert.Equal(t, "%node819", a.Name())

	aSome := mustFirst(t, a.FindFirstChildOf(someStructure))
	parent, _ = aSome.Parent()
	assert.Equal(t, a, parent)
	_, ok = aSome.Next()
	assert.False(t, ok)
	aData := mustFirst(t, aSome.FirstChild())
	assert.Equal(t, TypeInt16, aData.Type())
	assert.Equal(t, 2, aData.SubArraySize())
	shorts, err := Array[int16](aData)
	require.NoError(t, err)
	assert.Equal(t, []int16{0, 1, 2, 3}, shorts)

	b := mustFirst(t, a.FindFirstChildOf(hierarchicStructure))
	parent, _ = b.Parent()
	assert.Equal(t, a, parent)
	assert.Equal(t, "%node820", b.Name())
	boolean, ok := b.FindProperty(booleanProperty)
	require.True(t, ok)
	bv, err := boolean.AsBool()
	require.NoError(t, err)
	assert.True(t, bv)
	bData := mustFirst(t, mustFirst(t, b.FindFirstChildOf(someStructure)).FirstChild())
	ints, err := Array[int32](bData)
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 4, 5, 6}, ints)

	c := mustFirst(t, a.FindNextOf(hierarchicStructure))
	_, ok = c.Parent()
	assert.False(t, ok)
	assert.Equal(t, "%node821", c.Name())
	_, ok = c.FindNextOf(hierarchicStructure)
	assert.False(t, ok)
}

func TestDocumentChildren(t *testing.T) {
	d := mustParse(t, `
Root %root1 {}
Hierarchic %hierarchic1 {
    Root %root2 {}
    Hierarchic %hierarchic2 {}
}
Hierarchic %hierarchic3 {}
Unknown %unknown {}
Root %root3 {}
`)
	assert.Equal(t, []string{"%root1", "%hierarchic1", "%hierarchic3", "%unknown", "%root3"}, names(d.Children()))
	assert.Equal(t, []string{"%hierarchic1", "%hierarchic3"}, names(d.ChildrenOf(hierarchicStructure)))
	assert.Equal(t, []string{"%root1", "%hierarchic1", "%hierarchic3", "%root3"},
		names(d.ChildrenOf(hierarchicStructure, rootStructure)))
	assert.Empty(t, names(d.ChildrenOf(someStructure)))
}

func TestStructureChildren(t *testing.T) {
	d := mustParse(t, `
Root %root1 {}
Hierarchic %hierarchic1 {
    Root %root2 {}
    Unknown %unknown {}
    Hierarchic %hierarchic2 {
        Root %root3 {}
    }
    Root %root4 {}
}
Hierarchic %hierarchic3 {}
`)
	h := mustFirst(t, d.FindFirstChildOf(hierarchicStructure))
	assert.Equal(t, []string{"%root2", "%unknown", "%hierarchic2", "%root4"}, names(h.Children()))
	assert.Equal(t, []string{"%root2", "%root4"}, names(h.ChildrenOf(rootStructure)))
	assert.Equal(t, []string{"%root2", "%hierarchic2", "%root4"}, names(h.ChildrenOf(rootStructure, hierarchicStructure)))
	assert.Empty(t, names(mustFirst(t, d.FindFirstChildOf(rootStructure)).Children()))
}

func TestStructureEquality(t *testing.T) {
	d := mustParse(t, "Root {}\nSome {}")
	a := mustFirst(t, d.FindFirstChildOf(rootStructure))
	b := mustFirst(t, d.FindFirstChildOf(someStructure))
	assert.NotEqual(t, a, b)
	again := mustFirst(t, d.FirstChild())
	assert.True(t, a == again)
}

func TestStructureLinks(t *testing.T) {
	d := mustParse(t, "Root { Some { int8 {1} } float {2} }\nSome {}")
	// pre-order: Root, Some, int8, float, Some
	require.Len(t, d.structures, 5)

	root := d.structures[0]
	assert.Equal(t, 1, root.firstChild)
	assert.Equal(t, 4, root.next)
	assert.Equal(t, noParent, root.parent)
	assert.Equal(t, 3, d.structures[1].next)
	assert.Equal(t, 0, d.structures[2].next)
	assert.Equal(t, 1, d.structures[2].parent)
	assert.Equal(t, 0, d.structures[3].next)
	assert.Equal(t, 0, d.structures[4].next)
	assert.Equal(t, 0, d.structures[4].firstChild)
}

func TestParseMultipleCalls(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.Parse([]byte("Root %a { ref { %b } }\nSome %b {}"), structureKeywords, propertyKeywords))
	require.NoError(t, d.Parse([]byte("Hierarchic (reference = $c) {}\nfloat $c {}"), structureKeywords, propertyKeywords))

	assert.Equal(t, []string{"%a", "%b", "", "$c"}, names(d.Children()))

	ref := mustFirst(t, mustFirst(t, d.FindFirstChildOf(rootStructure)).FindFirstChildOfType(TypeReference))
	target, ok, err := ref.Reference()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "%b", target.Name())

	h := mustFirst(t, d.FindFirstChildOf(hierarchicStructure))
	p, ok := h.FindProperty(referenceProperty)
	require.True(t, ok)
	target, ok, err = p.AsReference()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "$c", target.Name())
	assert.Equal(t, TypeFloat, target.Type())
}

func TestParseMultipleCallsKeywordTables(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.Parse([]byte("Root {}"), structureKeywords, propertyKeywords))
	root := mustFirst(t, d.FirstChild())
	assert.Equal(t, "Root", d.StructureName(root.Identifier()))

	// identifiers keep their index, names come from the latest tables
	require.NoError(t, d.Parse([]byte("Other {}"), []string{"Other", "Last"}, nil))
	other := mustFirst(t, root.Next())
	assert.Equal(t, rootStructure, root.Identifier())
	assert.Equal(t, "Last", d.StructureName(root.Identifier()))
	assert.Equal(t, "Other", d.StructureName(other.Identifier()))
}

func TestParseEmptyDocument(t *testing.T) {
	d := mustParse(t, "  // nothing here\n")
	assert.True(t, d.IsEmpty())
	_, ok := d.FirstChild()
	assert.False(t, ok)
	assert.Empty(t, slices.Collect(d.Children()))

	var zero Document
	require.NoError(t, zero.Parse([]byte("float {1}"), nil, nil))
	assert.False(t, zero.IsEmpty())
}

func TestParseReturnsParseError(t *testing.T) {
	err := NewDocument().Parse([]byte("float {"), nil, nil)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	var rerr *ReferenceError
	assert.False(t, errors.As(err, &rerr))
}
