package openddl

import (
	"fmt"
	"slices"
)

// AllowedStructure permits a custom structure at some level of the document.
// Max 0 means no upper limit.
type AllowedStructure struct {
	Identifier int
	Min        int
	Max        int
}

// PropertyRule permits a property of a custom structure.
type PropertyRule struct {
	Identifier int
	Type       Type
	Required   bool
}

// StructureRule describes what a custom structure may contain.
type StructureRule struct {
	Identifier int
	Properties []PropertyRule

	// Primitives lists the allowed primitive sub-structure types. When empty
	// no primitive sub-structures are allowed.
	Primitives []Type
	// PrimitiveCount is the exact number of primitive sub-structures, 0 for
	// any number.
	PrimitiveCount int
	// PrimitiveArraySize is the exact total number of values of every
	// primitive sub-structure, 0 for any.
	PrimitiveArraySize int
	// PrimitiveSubArraySize is the exact [N] sub-array size of every
	// primitive sub-structure, 0 for any.
	PrimitiveSubArraySize int

	Structures []AllowedStructure
}

// Validate checks the document against a grammar. roots lists the custom
// structures allowed at top level and rules describes each of them.
// Structures and properties with unknown keywords are skipped together with
// everything inside them.
//
// A document that does not match returns a *ValidationError describing the
// first mismatch. A grammar lacking a rule for a structure it allows, or with
// an impossible multiplicity, returns an error wrapping ErrGrammar.
func (d *Document) Validate(roots []AllowedStructure, rules []StructureRule) error {
	d.init()
	v := &validator{doc: d, rules: rules}
	err := v.validate(roots)
	if err != nil {
		d.logger.Debug("openddl validation failed", "error", err)
	}
	return err
}

type validator struct {
	doc   *Document
	rules []StructureRule
}

func (v *validator) fail(rule, msg, structure, property string) error {
	return &ValidationError{Diagnostic: Diagnostic{
		Rule:      rule,
		Message:   msg,
		Structure: structure,
		Property:  property,
	}}
}

func (v *validator) validate(roots []AllowedStructure) error {
	for s := range v.doc.Children() {
		if !s.IsCustom() {
			return v.fail("primitive_in_root", "unexpected primitive structure in root", "", "")
		}
	}
	first, ok := v.doc.FirstChild()
	return v.validateLevel(first, ok, roots)
}

func known(s Structure) bool {
	return s.IsCustom() && s.Identifier() != UnknownIdentifier
}

// validateLevel checks the multiplicity of one sibling list, then descends
// into each of its known custom structures.
func (v *validator) validateLevel(first Structure, ok bool, allowed []AllowedStructure) error {
	for _, a := range allowed {
		if a.Min < 0 || (a.Max != 0 && a.Max < a.Min) {
			return fmt.Errorf("%w: structure %s allowed between %d and %d times",
				ErrGrammar, v.doc.StructureName(a.Identifier), a.Min, a.Max)
		}
	}

	counts := make([]int, len(allowed))
	for s := range siblings(first, ok, nil) {
		if !known(s) {
			continue
		}
		name := v.doc.StructureName(s.Identifier())
		i := slices.IndexFunc(allowed, func(a AllowedStructure) bool { return a.Identifier == s.Identifier() })
		if i < 0 {
			return v.fail("unexpected_structure", "unexpected structure "+name, name, "")
		}
		counts[i]++
		if limit := allowed[i].Max; limit != 0 && counts[i] > limit {
			return v.fail("too_many",
				fmt.Sprintf("too many %s structures, got %d but expected max %d", name, counts[i], limit),
				name, "")
		}
	}

	for i, a := range allowed {
		if counts[i] < a.Min {
			name := v.doc.StructureName(a.Identifier)
			return v.fail("too_little",
				fmt.Sprintf("too little %s structures, got %d but expected min %d", name, counts[i], a.Min),
				name, "")
		}
	}

	for s := range siblings(first, ok, nil) {
		if !known(s) {
			continue
		}
		i := slices.IndexFunc(v.rules, func(r StructureRule) bool { return r.Identifier == s.Identifier() })
		if i < 0 {
			return fmt.Errorf("%w: missing rule for structure %s", ErrGrammar, v.doc.StructureName(s.Identifier()))
		}
		if err := v.validateStructure(s, &v.rules[i]); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) validateStructure(s Structure, rule *StructureRule) error {
	name := v.doc.StructureName(s.Identifier())

	seen := make([]bool, len(rule.Properties))
	for _, p := range s.Properties() {
		if p.Identifier() == UnknownIdentifier {
			continue
		}
		i := slices.IndexFunc(rule.Properties, func(r PropertyRule) bool { return r.Identifier == p.Identifier() })
		if i < 0 {
			return v.fail("unexpected_property",
				fmt.Sprintf("unexpected property %s in structure %s", p.Name(), name),
				name, p.Name())
		}
		if want := rule.Properties[i].Type; !p.IsTypeCompatibleWith(want) {
			return v.fail("property_type",
				fmt.Sprintf("unexpected type of property %s, expected %s", p.Name(), want),
				name, p.Name())
		}
		seen[i] = true
	}
	for i, r := range rule.Properties {
		if r.Required && !seen[i] {
			prop := v.doc.PropertyName(r.Identifier)
			return v.fail("missing_property",
				fmt.Sprintf("expected property %s in structure %s", prop, name),
				name, prop)
		}
	}

	primitiveCount := func() error {
		return v.fail("primitive_count",
			fmt.Sprintf("expected exactly %d primitive sub-structures in structure %s", rule.PrimitiveCount, name),
			name, "")
	}
	remaining := rule.PrimitiveCount
	for c := range s.Children() {
		if c.IsCustom() {
			continue
		}
		if len(rule.Primitives) == 0 {
			return primitiveCount()
		}
		if rule.PrimitiveCount != 0 {
			if remaining--; remaining < 0 {
				return primitiveCount()
			}
		}
		if !slices.Contains(rule.Primitives, c.Type()) {
			return v.fail("primitive_type",
				fmt.Sprintf("unexpected sub-structure of type %s in structure %s", c.Type(), name),
				name, "")
		}
		if rule.PrimitiveArraySize != 0 && c.ArraySize() != rule.PrimitiveArraySize {
			return v.fail("primitive_size",
				fmt.Sprintf("expected exactly %d values in %s sub-structure", rule.PrimitiveArraySize, name),
				name, "")
		}
		if rule.PrimitiveSubArraySize != 0 && c.SubArraySize() != rule.PrimitiveSubArraySize {
			return v.fail("primitive_subarray_size",
				fmt.Sprintf("expected sub-arrays of %d values in %s sub-structure", rule.PrimitiveSubArraySize, name),
				name, "")
		}
	}
	if rule.PrimitiveCount != 0 && remaining > 0 {
		return primitiveCount()
	}

	first, ok := s.FirstChild()
	return v.validateLevel(first, ok, rule.Structures)
}
