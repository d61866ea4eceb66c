package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/mosra/magnum-plugins-sub000/openddl"
)

// dump prints the structure tree of a document, one structure per line,
// children indented under their parent.
func dump(w io.Writer, doc *openddl.Document, p *palette) error {
	for s := range doc.Children() {
		if err := dumpStructure(w, doc, p, s, 0); err != nil {
			return err
		}
	}
	return nil
}

func dumpStructure(w io.Writer, doc *openddl.Document, p *palette, s openddl.Structure, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))

	if s.IsCustom() {
		b.WriteString(p.keyword(doc.StructureName(s.Identifier())))
	} else {
		b.WriteString(p.typ(s.Type().String()))
		if n := s.SubArraySize(); n != 0 {
			fmt.Fprintf(&b, "[%d]", n)
		}
	}
	if s.HasName() {
		b.WriteString(" " + p.name(s.Name()))
	}

	if s.IsCustom() {
		if props := s.Properties(); len(props) > 0 {
			parts := make([]string, len(props))
			for i, prop := range props {
				parts[i] = prop.Name() + " = " + p.value(formatProperty(prop))
			}
			b.WriteString(" (" + strings.Join(parts, ", ") + ")")
		}
	} else {
		values, err := formatValues(s)
		if err != nil {
			return err
		}
		if len(values) == 0 {
			b.WriteString(" {}")
		} else {
			b.WriteString(" { " + p.value(groupValues(values, s.SubArraySize())) + " }")
		}
	}

	if _, err := fmt.Fprintln(w, b.String()); err != nil {
		return err
	}
	for c := range s.Children() {
		if err := dumpStructure(w, doc, p, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func formatProperty(prop openddl.Property) string {
	switch prop.Kind() {
	case openddl.ValueBool:
		v, _ := prop.AsBool()
		return strconv.FormatBool(v)
	case openddl.ValueIntegral, openddl.ValueBinary, openddl.ValueCharacter:
		v, _ := prop.AsUint()
		return strconv.FormatUint(v, 10)
	case openddl.ValueFloat:
		v, _ := prop.AsFloat()
		return strconv.FormatFloat(v, 'g', -1, 64)
	case openddl.ValueString:
		v, _ := prop.AsString()
		return strconv.Quote(v)
	case openddl.ValueType:
		v, _ := prop.AsType()
		return v.String()
	}
	target, ok, _ := prop.AsReference()
	return referenceName(target, ok)
}

func referenceName(target openddl.Structure, ok bool) string {
	if !ok {
		return "null"
	}
	return target.Name()
}

func formatValues(s openddl.Structure) ([]string, error) {
	switch s.Type() {
	case openddl.TypeBool:
		return formatted[bool](s, sprint)
	case openddl.TypeUnsignedInt8:
		return formatted[uint8](s, sprint)
	case openddl.TypeInt8:
		return formatted[int8](s, sprint)
	case openddl.TypeUnsignedInt16:
		return formatted[uint16](s, sprint)
	case openddl.TypeInt16:
		return formatted[int16](s, sprint)
	case openddl.TypeUnsignedInt32:
		return formatted[uint32](s, sprint)
	case openddl.TypeInt32:
		return formatted[int32](s, sprint)
	case openddl.TypeUnsignedInt64:
		return formatted[uint64](s, sprint)
	case openddl.TypeInt64:
		return formatted[int64](s, sprint)
	case openddl.TypeFloat:
		return formatted[float32](s, sprint)
	case openddl.TypeDouble:
		return formatted[float64](s, sprint)
	case openddl.TypeString:
		return formatted[string](s, strconv.Quote)
	case openddl.TypeType:
		return formatted[openddl.Type](s, sprint)
	}

	targets, err := s.References()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = referenceName(t, !t.IsNull())
	}
	return out, nil
}

func sprint[T any](v T) string { return fmt.Sprint(v) }

func formatted[T openddl.Primitive](s openddl.Structure, format func(T) string) ([]string, error) {
	values, err := openddl.Array[T](s)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = format(v)
	}
	return out, nil
}

// groupValues joins values, wrapping every size of them in braces when the
// structure has sub-arrays.
func groupValues(values []string, size int) string {
	if size == 0 {
		return strings.Join(values, ", ")
	}
	var groups []string
	for chunk := range slices.Chunk(values, size) {
		groups = append(groups, "{"+strings.Join(chunk, ", ")+"}")
	}
	return strings.Join(groups, ", ")
}
