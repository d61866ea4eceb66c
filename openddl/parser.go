package openddl

// pendingReference is a reference literal waiting for the whole document to
// be parsed so it can be resolved.
type pendingReference struct {
	origin int    // index of the structure the reference appears in
	token  string // raw text, e.g. "$mesh%positions"
	offset int    // byte offset of the literal
	slot   int    // index into Document.references receiving the result
}

type parser struct {
	doc        *Document
	src        []byte
	references []pendingReference
}

// parseStructureList parses structures until a closing } or the end of
// input and returns the cursor at the terminator.
func (p *parser) parseStructureList(parent, i int) (int, error) {
	last := noParent
	for i < len(p.src) && p.src[i] != '}' {
		index, next, err := p.parseStructure(parent, i)
		if err != nil {
			return next, err
		}
		last = index
		i = whitespace(p.src, next)
	}
	if last != noParent {
		p.doc.structures[last].next = 0
	}
	return i, nil
}

func (p *parser) parseStructure(parent, i int) (index, next int, err error) {
	if t, end, ok := possiblyTypeLiteral(p.src, i); ok {
		return p.parsePrimitive(parent, t, whitespace(p.src, end))
	}
	return p.parseCustom(parent, i)
}

// parseName parses an optional structure name and returns its index in the
// string store (0 when absent).
func (p *parser) parseName(i int) (int, int, error) {
	if i >= len(p.src) || (p.src[i] != '$' && p.src[i] != '%') {
		return 0, i, nil
	}
	name, next, err := nameLiteral(p.src, i)
	if err != nil {
		return 0, next, err
	}
	p.doc.strings = append(p.doc.strings, name)
	return len(p.doc.strings) - 1, whitespace(p.src, next), nil
}

func (p *parser) parsePrimitive(parent int, t Type, i int) (int, int, error) {
	d, src := p.doc, p.src

	subArraySize := 0
	if i < len(src) && src[i] == '[' {
		i = whitespace(src, i+1)
		size, _, next, err := integerLiteral(src, i, TypeUnsignedInt32)
		if err != nil {
			return 0, next, err
		}
		if size == 0 {
			return 0, i, newError(ErrorInvalidSubArraySize, i)
		}
		i = whitespace(src, next)
		if i >= len(src) || src[i] != ']' {
			return 0, i, newError(ErrorExpectedArraySizeEnd, i)
		}
		subArraySize = int(size)
		i = whitespace(src, i+1)
	}

	name, i, err := p.parseName(i)
	if err != nil {
		return 0, i, err
	}
	if i >= len(src) || src[i] != '{' {
		return 0, i, newError(ErrorExpectedListStart, i)
	}
	i = whitespace(src, i+1)

	index := len(d.structures)
	begin := d.dataLen(t)
	element := p.element(t, index)
	if subArraySize == 0 {
		i, err = p.parseDataList(i, element)
	} else {
		i, err = p.parseSubArrayList(i, subArraySize, element)
	}
	if err != nil {
		return 0, i, err
	}
	if i >= len(src) || src[i] != '}' {
		return 0, i, newError(ErrorExpectedListEnd, i)
	}

	d.structures = append(d.structures, structureRecord{
		typ:          t,
		name:         name,
		subArraySize: subArraySize,
		dataBegin:    begin,
		dataCount:    d.dataLen(t) - begin,
		identifier:   UnknownIdentifier,
		parent:       parent,
		next:         index + 1,
	})
	return index, i + 1, nil
}

// parseDataList parses comma-separated elements up to the closing }.
func (p *parser) parseDataList(i int, element func(int) (int, error)) (int, error) {
	src := p.src
	for n := 0; i < len(src) && src[i] != '}'; n++ {
		if n > 0 {
			if src[i] != ',' {
				return i, newError(ErrorExpectedSeparator, i)
			}
			i = whitespace(src, i+1)
		}
		next, err := element(i)
		if err != nil {
			return next, err
		}
		i = whitespace(src, next)
	}
	return i, nil
}

// parseSubArrayList parses comma-separated {a, b, ...} groups of exactly size
// elements each, up to the closing }.
func (p *parser) parseSubArrayList(i, size int, element func(int) (int, error)) (int, error) {
	src := p.src
	for n := 0; i < len(src) && src[i] != '}'; n++ {
		if n > 0 {
			if src[i] != ',' {
				return i, newError(ErrorExpectedSeparator, i)
			}
			i = whitespace(src, i+1)
		}
		if i >= len(src) || src[i] != '{' {
			return i, newError(ErrorExpectedListStart, i)
		}
		i = whitespace(src, i+1)

		for k := 0; k < size; k++ {
			if k > 0 {
				if i >= len(src) || src[i] != ',' {
					return i, newError(ErrorExpectedSeparator, i)
				}
				i = whitespace(src, i+1)
			}
			next, err := element(i)
			if err != nil {
				return next, err
			}
			i = whitespace(src, next)
		}

		if i >= len(src) || src[i] != '}' {
			return i, newError(ErrorExpectedListEnd, i)
		}
		i = whitespace(src, i+1)
	}
	return i, nil
}

// element returns a function parsing one literal of type t at a cursor and
// appending it to the matching value store.
func (p *parser) element(t Type, origin int) func(int) (int, error) {
	d, src := p.doc, p.src

	integer := func(i int, store func(uint64)) (int, error) {
		v, _, next, err := integerLiteral(src, i, t)
		if err == nil {
			store(v)
		}
		return next, err
	}
	float := func(i int, store func(float64)) (int, error) {
		v, next, err := floatLiteral(src, i, t)
		if err == nil {
			store(v)
		}
		return next, err
	}

	switch t {
	case TypeBool:
		return func(i int) (int, error) {
			v, next, err := boolLiteral(src, i)
			if err == nil {
				d.bools = append(d.bools, v)
			}
			return next, err
		}
	case TypeUnsignedInt8:
		return func(i int) (int, error) {
			return integer(i, func(v uint64) { d.uint8s = append(d.uint8s, uint8(v)) })
		}
	case TypeInt8:
		return func(i int) (int, error) {
			return integer(i, func(v uint64) { d.int8s = append(d.int8s, int8(int64(v))) })
		}
	case TypeUnsignedInt16:
		return func(i int) (int, error) {
			return integer(i, func(v uint64) { d.uint16s = append(d.uint16s, uint16(v)) })
		}
	case TypeInt16:
		return func(i int) (int, error) {
			return integer(i, func(v uint64) { d.int16s = append(d.int16s, int16(int64(v))) })
		}
	case TypeUnsignedInt32:
		return func(i int) (int, error) {
			return integer(i, func(v uint64) { d.uint32s = append(d.uint32s, uint32(v)) })
		}
	case TypeInt32:
		return func(i int) (int, error) {
			return integer(i, func(v uint64) { d.int32s = append(d.int32s, int32(int64(v))) })
		}
	case TypeUnsignedInt64:
		return func(i int) (int, error) {
			return integer(i, func(v uint64) { d.uint64s = append(d.uint64s, v) })
		}
	case TypeInt64:
		return func(i int) (int, error) {
			return integer(i, func(v uint64) { d.int64s = append(d.int64s, int64(v)) })
		}
	case TypeFloat:
		return func(i int) (int, error) {
			return float(i, func(v float64) { d.float32s = append(d.float32s, float32(v)) })
		}
	case TypeDouble:
		return func(i int) (int, error) {
			return float(i, func(v float64) { d.float64s = append(d.float64s, v) })
		}
	case TypeString:
		return func(i int) (int, error) {
			v, next, err := stringLiteral(src, i)
			if err == nil {
				d.strings = append(d.strings, v)
			}
			return next, err
		}
	case TypeReference:
		return func(i int) (int, error) {
			v, next, err := referenceLiteral(src, i)
			if err == nil {
				p.addReference(origin, v, i)
			}
			return next, err
		}
	}
	return func(i int) (int, error) {
		v, next, err := typeLiteral(src, i)
		if err == nil {
			d.types = append(d.types, v)
		}
		return next, err
	}
}

// addReference reserves a slot in the reference store and queues the token
// for resolution. Null references resolve immediately.
func (p *parser) addReference(origin int, token string, offset int) int {
	slot := len(p.doc.references)
	p.doc.references = append(p.doc.references, NullReference)
	if token != "" {
		p.references = append(p.references, pendingReference{
			origin: origin,
			token:  token,
			offset: offset,
			slot:   slot,
		})
	}
	return slot
}

func (p *parser) parseCustom(parent, i int) (int, int, error) {
	d, src := p.doc, p.src

	end, err := identifier(src, i)
	if err != nil {
		return 0, end, err
	}
	id := keywordIndex(d.structureKeywords, string(src[i:end]))

	name, i, err := p.parseName(whitespace(src, end))
	if err != nil {
		return 0, i, err
	}

	// Properties are parsed before the structure's own record is appended,
	// so references found in them originate from the index it will get.
	position := len(d.structures)
	propertiesBegin := len(d.properties)
	if i < len(src) && src[i] == '(' {
		if i, err = p.parsePropertyList(whitespace(src, i+1), position); err != nil {
			return 0, i, err
		}
		i = whitespace(src, i+1)
	}

	if i >= len(src) || src[i] != '{' {
		return 0, i, newError(ErrorExpectedListStart, i)
	}
	d.structures = append(d.structures, structureRecord{typ: TypeCustom})

	if i, err = p.parseStructureList(position, whitespace(src, i+1)); err != nil {
		return 0, i, err
	}
	if i >= len(src) || src[i] != '}' {
		return 0, i, newError(ErrorExpectedListEnd, i)
	}

	firstChild := 0
	if len(d.structures) > position+1 {
		firstChild = position + 1
	}
	d.structures[position] = structureRecord{
		typ:             TypeCustom,
		name:            name,
		identifier:      id,
		propertiesBegin: propertiesBegin,
		propertiesCount: len(d.properties) - propertiesBegin,
		firstChild:      firstChild,
		parent:          parent,
		next:            len(d.structures),
	}
	return position, i + 1, nil
}

// parsePropertyList parses name = value pairs and returns the cursor at the
// closing parenthesis.
func (p *parser) parsePropertyList(i, origin int) (int, error) {
	d, src := p.doc, p.src
	for n := 0; i < len(src) && src[i] != ')'; n++ {
		if n > 0 {
			if src[i] != ',' {
				return i, newError(ErrorExpectedSeparator, i)
			}
			i = whitespace(src, i+1)
		}

		end, err := identifier(src, i)
		if err != nil {
			return end, err
		}
		id := keywordIndex(d.propertyKeywords, string(src[i:end]))

		i = whitespace(src, end)
		if i >= len(src) || src[i] != '=' {
			return i, newError(ErrorExpectedPropertyAssignment, i)
		}
		i = whitespace(src, i+1)

		v, next, err := propertyValue(src, i)
		if err != nil {
			return next, err
		}
		p.addProperty(id, v, origin, i)
		i = whitespace(src, next)
	}
	if i >= len(src) {
		return i, newError(ErrorExpectedPropertyListEnd, i)
	}
	return i, nil
}

func (p *parser) addProperty(id int, v Value, origin, offset int) {
	d := p.doc
	var position int
	switch v.Kind {
	case ValueBool:
		position = len(d.bools)
		d.bools = append(d.bools, v.Bool)
	case ValueIntegral, ValueBinary, ValueCharacter:
		position = len(d.int64s)
		d.int64s = append(d.int64s, int64(v.Int))
	case ValueFloat:
		position = len(d.float64s)
		d.float64s = append(d.float64s, v.Float)
	case ValueString:
		position = len(d.strings)
		d.strings = append(d.strings, v.Str)
	case ValueType:
		position = len(d.types)
		d.types = append(d.types, v.Type)
	case ValueReference:
		position = p.addReference(origin, v.Str, offset)
	}
	d.properties = append(d.properties, propertyRecord{identifier: id, kind: v.Kind, position: position})
}
