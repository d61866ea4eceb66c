package openddl

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrNotPrimitive is returned when reading data from a custom structure.
	ErrNotPrimitive = errors.New("not a primitive structure")
	// ErrTypeMismatch is returned when data or a property is read as a type
	// it does not hold.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNotSingleValue is returned when a single value is requested from a
	// structure holding zero or several.
	ErrNotSingleValue = errors.New("structure does not hold exactly one value")
)

// Structure is a read-only view of one structure in a Document. Two views are
// equal when they refer to the same structure of the same document. The zero
// Structure refers to nothing and is what null references resolve to.
type Structure struct {
	doc   *Document
	index int
}

func (s Structure) record() *structureRecord { return &s.doc.structures[s.index] }

// IsNull reports whether s is the zero Structure.
func (s Structure) IsNull() bool { return s.doc == nil }

// Index returns the position of the structure in document order.
func (s Structure) Index() int { return s.index }

// IsCustom reports whether s is a custom (keyword-identified) structure.
func (s Structure) IsCustom() bool { return s.record().typ == TypeCustom }

// Type returns the element type of a primitive structure, or TypeCustom.
func (s Structure) Type() Type { return s.record().typ }

// Identifier returns the keyword index of a custom structure, or
// UnknownIdentifier for unknown keywords and primitive structures.
func (s Structure) Identifier() int {
	if !s.IsCustom() {
		return UnknownIdentifier
	}
	return s.record().identifier
}

// HasName reports whether the structure was given a $global or %local name.
func (s Structure) HasName() bool { return s.record().name != 0 }

// Name returns the structure name including its sigil, or "".
func (s Structure) Name() string { return s.doc.strings[s.record().name] }

// Parent returns the enclosing structure. Top-level structures have none.
func (s Structure) Parent() (Structure, bool) {
	parent := s.record().parent
	if parent == noParent {
		return Structure{}, false
	}
	return Structure{doc: s.doc, index: parent}, true
}

// Next returns the following sibling.
func (s Structure) Next() (Structure, bool) {
	next := s.record().next
	if next == 0 {
		return Structure{}, false
	}
	return Structure{doc: s.doc, index: next}, true
}

// FindNextOf returns the next sibling that is a custom structure with one of
// the given identifiers.
func (s Structure) FindNextOf(ids ...int) (Structure, bool) {
	next, ok := s.Next()
	return firstOf(siblings(next, ok, identifierFilter(ids)))
}

// ArraySize is the total number of values in a primitive structure,
// counting every element of every sub-array.
func (s Structure) ArraySize() int {
	if s.IsCustom() {
		return 0
	}
	return s.record().dataCount
}

// SubArraySize is the declared [N] size, or 0 for a flat array.
func (s Structure) SubArraySize() int {
	if s.IsCustom() {
		return 0
	}
	return s.record().subArraySize
}

// Primitive lists the Go types primitive structure data is stored as.
type Primitive interface {
	bool | uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64 |
		float32 | float64 | string | Type
}

func typeOf[T Primitive]() Type {
	var zero T
	switch any(zero).(type) {
	case bool:
		return TypeBool
	case uint8:
		return TypeUnsignedInt8
	case int8:
		return TypeInt8
	case uint16:
		return TypeUnsignedInt16
	case int16:
		return TypeInt16
	case uint32:
		return TypeUnsignedInt32
	case int32:
		return TypeInt32
	case uint64:
		return TypeUnsignedInt64
	case int64:
		return TypeInt64
	case float32:
		return TypeFloat
	case float64:
		return TypeDouble
	case string:
		return TypeString
	}
	return TypeType
}

// Array returns the values of a primitive structure of the type matching T.
// Sub-arrays are returned flattened. The slice aliases document storage and
// must not be modified.
func Array[T Primitive](s Structure) ([]T, error) {
	r := s.record()
	if r.typ == TypeCustom {
		return nil, ErrNotPrimitive
	}
	if want := typeOf[T](); r.typ != want {
		return nil, fmt.Errorf("%w: structure holds %s, requested %s", ErrTypeMismatch, r.typ, want)
	}
	end := r.dataBegin + r.dataCount
	return s.doc.store(r.typ).([]T)[r.dataBegin:end:end], nil
}

// As returns the only value of a primitive structure.
func As[T Primitive](s Structure) (T, error) {
	var zero T
	values, err := Array[T](s)
	if err != nil {
		return zero, err
	}
	if len(values) != 1 {
		return zero, ErrNotSingleValue
	}
	return values[0], nil
}

func (s Structure) referenceSlots() ([]int, error) {
	r := s.record()
	if r.typ == TypeCustom {
		return nil, ErrNotPrimitive
	}
	if r.typ != TypeReference {
		return nil, fmt.Errorf("%w: structure holds %s, requested %s", ErrTypeMismatch, r.typ, TypeReference)
	}
	return s.doc.references[r.dataBegin : r.dataBegin+r.dataCount], nil
}

// References returns the targets of a ref structure. Null references are
// returned as zero Structures.
func (s Structure) References() ([]Structure, error) {
	slots, err := s.referenceSlots()
	if err != nil {
		return nil, err
	}
	out := make([]Structure, len(slots))
	for i, target := range slots {
		if target != NullReference {
			out[i] = Structure{doc: s.doc, index: target}
		}
	}
	return out, nil
}

// Reference returns the target of a ref structure holding exactly one
// value. The bool is false for a null reference.
func (s Structure) Reference() (Structure, bool, error) {
	slots, err := s.referenceSlots()
	if err != nil {
		return Structure{}, false, err
	}
	if len(slots) != 1 {
		return Structure{}, false, ErrNotSingleValue
	}
	if slots[0] == NullReference {
		return Structure{}, false, nil
	}
	return Structure{doc: s.doc, index: slots[0]}, true, nil
}

// PropertyCount returns the number of properties of a custom structure,
// duplicates and unknown keywords included.
func (s Structure) PropertyCount() int {
	if !s.IsCustom() {
		return 0
	}
	return s.record().propertiesCount
}

// Properties returns the properties of a custom structure in source order.
func (s Structure) Properties() []Property {
	n := s.PropertyCount()
	out := make([]Property, n)
	for i := range n {
		out[i] = Property{doc: s.doc, index: s.record().propertiesBegin + i}
	}
	return out
}

// FindProperty returns the property with identifier id. When the property
// was given more than once, the last occurrence wins.
func (s Structure) FindProperty(id int) (Property, bool) {
	props := s.Properties()
	for i := len(props) - 1; i >= 0; i-- {
		if props[i].Identifier() == id {
			return props[i], true
		}
	}
	return Property{}, false
}

// HasChildren reports whether a custom structure contains sub-structures.
func (s Structure) HasChildren() bool {
	return s.IsCustom() && s.record().firstChild != 0
}

// FirstChild returns the first sub-structure of a custom structure.
func (s Structure) FirstChild() (Structure, bool) {
	if !s.HasChildren() {
		return Structure{}, false
	}
	return Structure{doc: s.doc, index: s.record().firstChild}, true
}

// Children iterates over the direct sub-structures.
func (s Structure) Children() iter.Seq[Structure] {
	first, ok := s.FirstChild()
	return siblings(first, ok, nil)
}

// ChildrenOf iterates over direct custom sub-structures with one of the
// given identifiers.
func (s Structure) ChildrenOf(ids ...int) iter.Seq[Structure] {
	first, ok := s.FirstChild()
	return siblings(first, ok, identifierFilter(ids))
}

// FindFirstChildOf returns the first direct custom sub-structure with one of
// the given identifiers.
func (s Structure) FindFirstChildOf(ids ...int) (Structure, bool) {
	return firstOf(s.ChildrenOf(ids...))
}

// FindFirstChildOfType returns the first direct primitive sub-structure of
// type t.
func (s Structure) FindFirstChildOfType(t Type) (Structure, bool) {
	first, ok := s.FirstChild()
	return firstOf(siblings(first, ok, typeFilter(t)))
}
