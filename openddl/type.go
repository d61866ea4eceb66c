package openddl

// Type identifies the element type of a primitive structure. Custom
// structures report TypeCustom.
type Type uint8

const (
	TypeBool Type = iota
	TypeUnsignedInt8
	TypeInt8
	TypeUnsignedInt16
	TypeInt16
	TypeUnsignedInt32
	TypeInt32
	TypeUnsignedInt64
	TypeInt64
	TypeFloat
	TypeDouble
	TypeString
	TypeReference
	TypeType

	// TypeCustom marks custom (keyword-identified) structures. Every value
	// below it is a primitive data type.
	TypeCustom
)

// typeNames is ordered the same way the type literal scanner tries
// candidates.
var typeNames = [...]string{
	TypeBool:          "bool",
	TypeUnsignedInt8:  "unsigned_int8",
	TypeInt8:          "int8",
	TypeUnsignedInt16: "unsigned_int16",
	TypeInt16:         "int16",
	TypeUnsignedInt32: "unsigned_int32",
	TypeInt32:         "int32",
	TypeUnsignedInt64: "unsigned_int64",
	TypeInt64:         "int64",
	TypeFloat:         "float",
	TypeDouble:        "double",
	TypeString:        "string",
	TypeReference:     "ref",
	TypeType:          "type",
	TypeCustom:        "custom",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// IsPrimitive reports whether t is a primitive data type.
func (t Type) IsPrimitive() bool { return t < TypeCustom }

// IsInteger reports whether t is one of the eight integer widths.
func (t Type) IsInteger() bool { return t >= TypeUnsignedInt8 && t <= TypeInt64 }

// IsFloatingPoint reports whether t is float or double.
func (t Type) IsFloatingPoint() bool { return t == TypeFloat || t == TypeDouble }

func (t Type) signed() bool {
	switch t {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return true
	}
	return false
}

func (t Type) bits() int {
	switch t {
	case TypeUnsignedInt8, TypeInt8:
		return 8
	case TypeUnsignedInt16, TypeInt16:
		return 16
	case TypeUnsignedInt32, TypeInt32, TypeFloat:
		return 32
	}
	return 64
}

// ParseTypeName looks up a primitive type by its OpenDDL keyword.
func ParseTypeName(name string) (Type, bool) {
	for t := TypeBool; t < TypeCustom; t++ {
		if typeNames[t] == name {
			return t, true
		}
	}
	return TypeCustom, false
}

// ValueKind classifies a property value by how it was written.
type ValueKind string

const (
	ValueBool      ValueKind = "bool"
	ValueIntegral  ValueKind = "integral"
	ValueFloat     ValueKind = "float"
	ValueString    ValueKind = "string"
	ValueReference ValueKind = "reference"
	ValueType      ValueKind = "type"
	ValueBinary    ValueKind = "binary"    // 0x, 0o or 0b integer literal
	ValueCharacter ValueKind = "character" // 'c' integer literal
)

// compatibleWith reports whether a value of kind k may be read as t.
func (k ValueKind) compatibleWith(t Type) bool {
	switch {
	case t.IsInteger():
		return k == ValueIntegral || k == ValueBinary || k == ValueCharacter
	case t.IsFloatingPoint():
		return k == ValueFloat
	case t == TypeBool:
		return k == ValueBool
	case t == TypeString:
		return k == ValueString
	case t == TypeReference:
		return k == ValueReference
	case t == TypeType:
		return k == ValueType
	}
	return false
}
