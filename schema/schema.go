// Package schema loads OpenDDL validation grammars described in YAML.
//
// A schema file names the structure and property keywords of a format and
// the rules the openddl validator checks:
//
//	structures: [Mesh, VertexArray]
//	properties: [attrib, lod]
//	roots:
//	  - structure: Mesh
//	rules:
//	  - structure: Mesh
//	    properties:
//	      - {name: lod, type: unsigned_int32}
//	    structures:
//	      - {structure: VertexArray, min: 1}
//	  - structure: VertexArray
//	    properties:
//	      - {name: attrib, type: string, required: true}
//	    primitives: [float, double]
//	    primitive_count: 1
//
// Multiplicity limits of 0 mean "no limit", as in openddl.AllowedStructure.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/mosra/magnum-plugins-sub000/openddl"
)

// Schema is the YAML form of a grammar.
type Schema struct {
	Structures []string  `yaml:"structures"`
	Properties []string  `yaml:"properties"`
	Roots      []Allowed `yaml:"roots"`
	Rules      []Rule    `yaml:"rules"`
}

// Allowed permits a structure inside a parent, or at top level.
type Allowed struct {
	Structure string `yaml:"structure"`
	Min       int    `yaml:"min"`
	Max       int    `yaml:"max"`
}

// Property permits a property on a structure.
type Property struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`
}

// Rule describes the contents of one structure.
type Rule struct {
	Structure             string     `yaml:"structure"`
	Properties            []Property `yaml:"properties"`
	Primitives            []string   `yaml:"primitives"`
	PrimitiveCount        int        `yaml:"primitive_count"`
	PrimitiveArraySize    int        `yaml:"primitive_array_size"`
	PrimitiveSubArraySize int        `yaml:"primitive_subarray_size"`
	Structures            []Allowed  `yaml:"structures"`
}

// Grammar is a compiled schema, ready to parse and validate documents.
type Grammar struct {
	Structures []string
	Properties []string
	Roots      []openddl.AllowedStructure
	Rules      []openddl.StructureRule
}

// Load reads and compiles a schema file.
func Load(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %q: %w", path, err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema file %q: %w", path, err)
	}
	return g, nil
}

// Parse decodes and compiles a YAML schema. Unknown fields are rejected.
func Parse(data []byte) (*Grammar, error) {
	var s Schema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return s.Compile()
}

// Compile resolves keyword and type names and checks the schema for
// consistency. All problems are reported together.
func (s *Schema) Compile() (*Grammar, error) {
	c := &compiler{schema: s}
	g := &Grammar{
		Structures: s.Structures,
		Properties: s.Properties,
	}

	c.checkDuplicates("structure", s.Structures)
	c.checkDuplicates("property", s.Properties)

	g.Roots = c.allowed("roots", s.Roots)
	for _, r := range s.Rules {
		g.Rules = append(g.Rules, c.rule(r))
	}

	seen := make(map[int]bool)
	for _, r := range g.Rules {
		if r.Identifier == openddl.UnknownIdentifier {
			continue
		}
		if seen[r.Identifier] {
			c.errorf("duplicate rule for structure %s", s.Structures[r.Identifier])
		}
		seen[r.Identifier] = true
	}

	if err := errors.Join(c.errs...); err != nil {
		return nil, err
	}
	return g, nil
}

// Parse parses src with the grammar's keyword tables.
func (g *Grammar) Parse(src []byte, opts ...openddl.Option) (*openddl.Document, error) {
	doc := openddl.NewDocument(opts...)
	if err := doc.Parse(src, g.Structures, g.Properties); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate checks a document parsed with the grammar's keyword tables.
func (g *Grammar) Validate(doc *openddl.Document) error {
	return doc.Validate(g.Roots, g.Rules)
}

type compiler struct {
	schema *Schema
	errs   []error
}

func (c *compiler) errorf(format string, args ...any) {
	c.errs = append(c.errs, fmt.Errorf(format, args...))
}

func (c *compiler) checkDuplicates(what string, names []string) {
	for i, name := range names {
		if slices.Index(names, name) != i {
			c.errorf("duplicate %s keyword %s", what, name)
		}
	}
}

func (c *compiler) structure(where, name string) int {
	i := slices.Index(c.schema.Structures, name)
	if i < 0 {
		c.errorf("%s: unknown structure %q", where, name)
		return openddl.UnknownIdentifier
	}
	return i
}

func (c *compiler) typ(where, name string) openddl.Type {
	t, ok := openddl.ParseTypeName(name)
	if !ok {
		c.errorf("%s: unknown type %q", where, name)
	}
	return t
}

func (c *compiler) allowed(where string, list []Allowed) []openddl.AllowedStructure {
	out := make([]openddl.AllowedStructure, 0, len(list))
	for _, a := range list {
		if a.Min < 0 || a.Max < 0 || (a.Max != 0 && a.Max < a.Min) {
			c.errorf("%s: structure %s allowed between %d and %d times", where, a.Structure, a.Min, a.Max)
		}
		out = append(out, openddl.AllowedStructure{
			Identifier: c.structure(where, a.Structure),
			Min:        a.Min,
			Max:        a.Max,
		})
	}
	return out
}

func (c *compiler) rule(r Rule) openddl.StructureRule {
	where := "rule " + r.Structure
	out := openddl.StructureRule{
		Identifier:            c.structure(where, r.Structure),
		PrimitiveCount:        r.PrimitiveCount,
		PrimitiveArraySize:    r.PrimitiveArraySize,
		PrimitiveSubArraySize: r.PrimitiveSubArraySize,
		Structures:            c.allowed(where, r.Structures),
	}
	if r.PrimitiveCount < 0 || r.PrimitiveArraySize < 0 || r.PrimitiveSubArraySize < 0 {
		c.errorf("%s: negative primitive constraint", where)
	}

	for _, p := range r.Properties {
		id := slices.Index(c.schema.Properties, p.Name)
		if id < 0 {
			c.errorf("%s: unknown property %q", where, p.Name)
		}
		out.Properties = append(out.Properties, openddl.PropertyRule{
			Identifier: id,
			Type:       c.typ(where, p.Type),
			Required:   p.Required,
		})
	}
	for _, name := range r.Primitives {
		out.Primitives = append(out.Primitives, c.typ(where, name))
	}
	return out
}
