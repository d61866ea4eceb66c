package openddl

import "fmt"

// Property is a read-only view of one property of a custom structure.
type Property struct {
	doc   *Document
	index int
}

func (p Property) record() propertyRecord { return p.doc.properties[p.index] }

// Identifier returns the keyword index, or UnknownIdentifier.
func (p Property) Identifier() int { return p.record().identifier }

// Name returns the property keyword.
func (p Property) Name() string { return p.doc.PropertyName(p.Identifier()) }

// Kind returns how the value was written.
func (p Property) Kind() ValueKind { return p.record().kind }

// IsTypeCompatibleWith reports whether the value may be read as t. Integer
// types accept decimal, binary and character literals; float and double
// accept decimal literals with a fractional part.
func (p Property) IsTypeCompatibleWith(t Type) bool {
	return p.Kind().compatibleWith(t)
}

func (p Property) mismatch(want string) error {
	return fmt.Errorf("%w: property %s is %s, requested %s", ErrTypeMismatch, p.Name(), p.Kind(), want)
}

func (p Property) AsBool() (bool, error) {
	r := p.record()
	if r.kind != ValueBool {
		return false, p.mismatch("bool")
	}
	return p.doc.bools[r.position], nil
}

// AsInt returns an integer property as a signed value. Literals above the
// int64 range wrap; use AsUint for those.
func (p Property) AsInt() (int64, error) {
	r := p.record()
	if !r.kind.compatibleWith(TypeInt64) {
		return 0, p.mismatch("integer")
	}
	return p.doc.int64s[r.position], nil
}

// AsUint returns an integer property as an unsigned value.
func (p Property) AsUint() (uint64, error) {
	v, err := p.AsInt()
	if err != nil {
		return 0, p.mismatch("unsigned integer")
	}
	return uint64(v), nil
}

// AsFloat returns a floating-point property. The value was parsed with
// double precision; narrowing to float32 is up to the caller.
func (p Property) AsFloat() (float64, error) {
	r := p.record()
	if r.kind != ValueFloat {
		return 0, p.mismatch("float")
	}
	return p.doc.float64s[r.position], nil
}

func (p Property) AsString() (string, error) {
	r := p.record()
	if r.kind != ValueString {
		return "", p.mismatch("string")
	}
	return p.doc.strings[r.position], nil
}

func (p Property) AsType() (Type, error) {
	r := p.record()
	if r.kind != ValueType {
		return TypeCustom, p.mismatch("type")
	}
	return p.doc.types[r.position], nil
}

// AsReference returns the structure a reference property points to. The
// bool is false for null.
func (p Property) AsReference() (Structure, bool, error) {
	r := p.record()
	if r.kind != ValueReference {
		return Structure{}, false, p.mismatch("reference")
	}
	target := p.doc.references[r.position]
	if target == NullReference {
		return Structure{}, false, nil
	}
	return Structure{doc: p.doc, index: target}, true, nil
}
