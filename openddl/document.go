package openddl

import (
	"errors"
	"iter"
	"log/slog"
	"slices"
)

const (
	// UnknownIdentifier is the identifier of custom structures and properties
	// whose keyword is not in the tables passed to Parse.
	UnknownIdentifier = -1

	// NullReference is the resolved value of a null reference.
	NullReference = -1

	noParent = -1
)

// structureRecord is one entry of the document's structure arena. Records
// are stored in pre-order. Index 0 is always a top-level structure, so 0 is
// free to mean "none" in firstChild and next.
type structureRecord struct {
	typ  Type // TypeCustom for custom structures
	name int  // index into strings, 0 when unnamed

	// primitive structures
	subArraySize int
	dataBegin    int
	dataCount    int

	// custom structures
	identifier      int
	propertiesBegin int
	propertiesCount int
	firstChild      int

	parent int
	next   int
}

type propertyRecord struct {
	identifier int
	kind       ValueKind
	position   int // index into the store selected by kind
}

// Document owns every structure, property and value parsed into it.
// Structure and Property are lightweight views into it.
//
// A Document is not safe for concurrent Parse calls. Once parsing is done it
// may be read from multiple goroutines.
type Document struct {
	structures []structureRecord
	properties []propertyRecord

	bools      []bool
	uint8s     []uint8
	int8s      []int8
	uint16s    []uint16
	int16s     []int16
	uint32s    []uint32
	int32s     []int32
	uint64s    []uint64
	int64s     []int64
	float32s   []float32
	float64s   []float64
	strings    []string
	types      []Type
	references []int

	structureKeywords []string
	propertyKeywords  []string

	logger *slog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) { d.logger = l }
}

// NewDocument creates an empty document. The zero Document is usable too.
func NewDocument(opts ...Option) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}
	d.init()
	return d
}

func (d *Document) init() {
	if len(d.strings) == 0 {
		d.strings = append(d.strings, "")
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
}

// Parse appends the structures in src to the document. Custom structure and
// property keywords are mapped to their index in structureKeywords and
// propertyKeywords, or to UnknownIdentifier.
//
// Parse may be called repeatedly; top-level structures of later calls
// follow those of earlier ones. It returns a *ParseError for malformed input
// and one *ReferenceError per unresolved reference (joined with
// errors.Join). After a failed Parse the document contents are unspecified.
//
// The keyword tables of the latest call replace earlier ones, and
// StructureName and PropertyName look identifiers up in them. Pass the same
// tables on every call when names of earlier structures matter.
func (d *Document) Parse(src []byte, structureKeywords, propertyKeywords []string) error {
	d.init()
	d.structureKeywords = structureKeywords
	d.propertyKeywords = propertyKeywords

	previousLast := d.lastTopLevel()
	first := len(d.structures)

	p := &parser{doc: d, src: src}
	i, err := p.parseStructureList(noParent, whitespace(src, 0))
	if err == nil && i < len(src) {
		// only a stray } stops the top-level list early
		err = newError(ErrorInvalidIdentifier, i)
	}
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Pos = positionAt(src, perr.Pos.Offset)
		}
		d.logger.Debug("openddl parse failed", "error", err)
		return err
	}

	if previousLast != noParent && first < len(d.structures) {
		d.structures[previousLast].next = first
	}

	if err := d.resolve(src, p.references); err != nil {
		return err
	}

	d.logger.Debug("openddl document parsed",
		"structures", len(d.structures)-first,
		"references", len(p.references),
		"bytes", len(src),
	)
	return nil
}

// lastTopLevel returns the index of the last top-level structure, or
// noParent for an empty document.
func (d *Document) lastTopLevel() int {
	if len(d.structures) == 0 {
		return noParent
	}
	i := 0
	for d.structures[i].next != 0 {
		i = d.structures[i].next
	}
	return i
}

// dataLen is the size of the value store holding elements of type t.
func (d *Document) dataLen(t Type) int {
	switch t {
	case TypeBool:
		return len(d.bools)
	case TypeUnsignedInt8:
		return len(d.uint8s)
	case TypeInt8:
		return len(d.int8s)
	case TypeUnsignedInt16:
		return len(d.uint16s)
	case TypeInt16:
		return len(d.int16s)
	case TypeUnsignedInt32:
		return len(d.uint32s)
	case TypeInt32:
		return len(d.int32s)
	case TypeUnsignedInt64:
		return len(d.uint64s)
	case TypeInt64:
		return len(d.int64s)
	case TypeFloat:
		return len(d.float32s)
	case TypeDouble:
		return len(d.float64s)
	case TypeString:
		return len(d.strings)
	case TypeReference:
		return len(d.references)
	case TypeType:
		return len(d.types)
	}
	return 0
}

// store returns the value store of a primitive type as an untyped slice.
func (d *Document) store(t Type) any {
	switch t {
	case TypeBool:
		return d.bools
	case TypeUnsignedInt8:
		return d.uint8s
	case TypeInt8:
		return d.int8s
	case TypeUnsignedInt16:
		return d.uint16s
	case TypeInt16:
		return d.int16s
	case TypeUnsignedInt32:
		return d.uint32s
	case TypeInt32:
		return d.int32s
	case TypeUnsignedInt64:
		return d.uint64s
	case TypeInt64:
		return d.int64s
	case TypeFloat:
		return d.float32s
	case TypeDouble:
		return d.float64s
	case TypeString:
		return d.strings
	case TypeType:
		return d.types
	}
	return d.references
}

func keywordIndex(keywords []string, word string) int {
	if i := slices.Index(keywords, word); i >= 0 {
		return i
	}
	return UnknownIdentifier
}

// IsEmpty reports whether the document holds no structures.
func (d *Document) IsEmpty() bool { return len(d.structures) == 0 }

// StructureName returns the keyword of a structure identifier.
func (d *Document) StructureName(id int) string {
	if id < 0 || id >= len(d.structureKeywords) {
		return "(unknown)"
	}
	return d.structureKeywords[id]
}

// PropertyName returns the keyword of a property identifier.
func (d *Document) PropertyName(id int) string {
	if id < 0 || id >= len(d.propertyKeywords) {
		return "(unknown)"
	}
	return d.propertyKeywords[id]
}

// FirstChild returns the first top-level structure.
func (d *Document) FirstChild() (Structure, bool) {
	if d.IsEmpty() {
		return Structure{}, false
	}
	return Structure{doc: d, index: 0}, true
}

// Children iterates over top-level structures.
func (d *Document) Children() iter.Seq[Structure] {
	first, ok := d.FirstChild()
	return siblings(first, ok, nil)
}

// ChildrenOf iterates over top-level custom structures with one of the given
// identifiers.
func (d *Document) ChildrenOf(ids ...int) iter.Seq[Structure] {
	first, ok := d.FirstChild()
	return siblings(first, ok, identifierFilter(ids))
}

// FindFirstChildOf returns the first top-level custom structure with one of
// the given identifiers.
func (d *Document) FindFirstChildOf(ids ...int) (Structure, bool) {
	return firstOf(d.ChildrenOf(ids...))
}

// FindFirstChildOfType returns the first top-level primitive structure of
// type t.
func (d *Document) FindFirstChildOfType(t Type) (Structure, bool) {
	first, ok := d.FirstChild()
	return firstOf(siblings(first, ok, typeFilter(t)))
}

func identifierFilter(ids []int) func(Structure) bool {
	return func(s Structure) bool {
		return s.IsCustom() && slices.Contains(ids, s.Identifier())
	}
}

func typeFilter(t Type) func(Structure) bool {
	return func(s Structure) bool { return s.Type() == t }
}

// siblings walks the sibling chain starting at first, yielding structures
// that match (or all of them when match is nil).
func siblings(first Structure, ok bool, match func(Structure) bool) iter.Seq[Structure] {
	return func(yield func(Structure) bool) {
		for s := first; ok; s, ok = s.Next() {
			if match != nil && !match(s) {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

func firstOf(seq iter.Seq[Structure]) (Structure, bool) {
	for s := range seq {
		return s, true
	}
	return Structure{}, false
}
