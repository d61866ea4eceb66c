// Package opengex holds the OpenGEX 1.1.1 vocabulary and validation grammar
// on top of the openddl parser. Extension structures and half-precision
// vertex data are not supported.
package opengex

import (
	"fmt"

	"github.com/mosra/magnum-plugins-sub000/openddl"
)

// Structure identifiers, indices into Structures.
const (
	Animation = iota
	Atten
	BoneCountArray
	BoneIndexArray
	BoneNode
	BoneRefArray
	BoneWeightArray
	CameraNode
	CameraObject
	Clip
	Color
	Extension
	GeometryNode
	GeometryObject
	IndexArray
	Key
	LightNode
	LightObject
	Material
	MaterialRef
	Mesh
	Metric
	Morph
	MorphWeight
	Name
	Node
	ObjectRef
	Param
	Rotation
	Scale
	Skeleton
	Skin
	Texture
	Time
	Track
	Transform
	Translation
	Value
	VertexArray
)

// Structures are the custom structure keywords, ordered by identifier.
var Structures = []string{
	"Animation",
	"Atten",
	"BoneCountArray",
	"BoneIndexArray",
	"BoneNode",
	"BoneRefArray",
	"BoneWeightArray",
	"CameraNode",
	"CameraObject",
	"Clip",
	"Color",
	"Extension",
	"GeometryNode",
	"GeometryObject",
	"IndexArray",
	"Key",
	"LightNode",
	"LightObject",
	"Material",
	"MaterialRef",
	"Mesh",
	"Metric",
	"Morph",
	"MorphWeight",
	"Name",
	"Node",
	"ObjectRef",
	"Param",
	"Rotation",
	"Scale",
	"Skeleton",
	"Skin",
	"Texture",
	"Time",
	"Track",
	"Transform",
	"Translation",
	"Value",
	"VertexArray",
}

// Property identifiers, indices into Properties.
const (
	PropApplic = iota
	PropAttrib
	PropBegin
	PropClip
	PropCurve
	PropEnd
	PropFront
	PropIndex
	PropKey
	PropKind
	PropLOD
	PropMaterial
	PropMorph
	PropMotionBlur
	PropObject
	PropPrimitive
	PropRestart
	PropShadow
	PropTarget
	PropTexcoord
	PropTwoSided
	PropType
	PropVisible
)

// Properties are the property keywords, ordered by identifier.
var Properties = []string{
	"applic",
	"attrib",
	"begin",
	"clip",
	"curve",
	"end",
	"front",
	"index",
	"key",
	"kind",
	"lod",
	"material",
	"morph",
	"motion_blur",
	"object",
	"primitive",
	"restart",
	"shadow",
	"target",
	"texcoord",
	"two_sided",
	"type",
	"visible",
}

// Roots lists the structures allowed at top level of an OpenGEX file.
var Roots = unbounded(
	BoneNode,
	CameraNode,
	CameraObject,
	Clip,
	GeometryNode,
	GeometryObject,
	LightNode,
	LightObject,
	Material,
	Metric,
	Node,
)

func unbounded(ids ...int) []openddl.AllowedStructure {
	out := make([]openddl.AllowedStructure, len(ids))
	for i, id := range ids {
		out[i] = openddl.AllowedStructure{Identifier: id}
	}
	return out
}

func optional(id int) openddl.AllowedStructure {
	return openddl.AllowedStructure{Identifier: id, Max: 1}
}

func exactlyOne(id int) openddl.AllowedStructure {
	return openddl.AllowedStructure{Identifier: id, Min: 1, Max: 1}
}

func atLeastOne(id int) openddl.AllowedStructure {
	return openddl.AllowedStructure{Identifier: id, Min: 1}
}

func prop(id int, t openddl.Type) openddl.PropertyRule {
	return openddl.PropertyRule{Identifier: id, Type: t}
}

func requiredProp(id int, t openddl.Type) openddl.PropertyRule {
	return openddl.PropertyRule{Identifier: id, Type: t, Required: true}
}

// nodeContents is what every node kind may contain besides its own
// references.
func nodeContents(extra ...openddl.AllowedStructure) []openddl.AllowedStructure {
	out := append([]openddl.AllowedStructure{optional(Name)}, extra...)
	return append(out, unbounded(
		Transform, Translation, Rotation, Scale, Animation,
		Node, BoneNode, GeometryNode, CameraNode, LightNode,
	)...)
}

var (
	unsignedIndices = []openddl.Type{
		openddl.TypeUnsignedInt8,
		openddl.TypeUnsignedInt16,
		openddl.TypeUnsignedInt32,
		openddl.TypeUnsignedInt64,
	}
	floats      = []openddl.Type{openddl.TypeFloat}
	transformed = []openddl.PropertyRule{
		prop(PropKind, openddl.TypeString),
		prop(PropObject, openddl.TypeBool),
	}
	visibility = []openddl.PropertyRule{
		prop(PropVisible, openddl.TypeBool),
		prop(PropShadow, openddl.TypeBool),
		prop(PropMotionBlur, openddl.TypeBool),
	}
)

// Rules describes the contents of every OpenGEX structure.
var Rules = []openddl.StructureRule{
	{
		Identifier: Animation,
		Properties: []openddl.PropertyRule{
			prop(PropClip, openddl.TypeUnsignedInt32),
			prop(PropBegin, openddl.TypeFloat),
			prop(PropEnd, openddl.TypeFloat),
		},
		Structures: []openddl.AllowedStructure{atLeastOne(Track)},
	},
	{
		Identifier: Atten,
		Properties: []openddl.PropertyRule{
			prop(PropKind, openddl.TypeString),
			prop(PropCurve, openddl.TypeString),
		},
		Structures: unbounded(Param),
	},
	{Identifier: BoneCountArray, Primitives: unsignedIndices, PrimitiveCount: 1},
	{Identifier: BoneIndexArray, Primitives: unsignedIndices, PrimitiveCount: 1},
	{Identifier: BoneNode, Structures: nodeContents()},
	{Identifier: BoneRefArray, Primitives: []openddl.Type{openddl.TypeReference}, PrimitiveCount: 1},
	{Identifier: BoneWeightArray, Primitives: floats, PrimitiveCount: 1},
	{Identifier: CameraNode, Structures: nodeContents(exactlyOne(ObjectRef))},
	{Identifier: CameraObject, Structures: unbounded(Param)},
	{
		Identifier: Clip,
		Properties: []openddl.PropertyRule{prop(PropIndex, openddl.TypeUnsignedInt32)},
		Structures: []openddl.AllowedStructure{optional(Name), {Identifier: Param}},
	},
	{
		Identifier:     Color,
		Properties:     []openddl.PropertyRule{requiredProp(PropAttrib, openddl.TypeString)},
		Primitives:     floats,
		PrimitiveCount: 1,
	},
	{
		Identifier: GeometryNode,
		Properties: visibility,
		Structures: nodeContents(exactlyOne(ObjectRef),
			openddl.AllowedStructure{Identifier: MaterialRef},
			openddl.AllowedStructure{Identifier: MorphWeight}),
	},
	{
		Identifier: GeometryObject,
		Properties: visibility,
		Structures: []openddl.AllowedStructure{atLeastOne(Mesh), {Identifier: Morph}},
	},
	{
		Identifier: IndexArray,
		Properties: []openddl.PropertyRule{
			prop(PropMaterial, openddl.TypeUnsignedInt32),
			prop(PropRestart, openddl.TypeUnsignedInt64),
			prop(PropFront, openddl.TypeString),
		},
		Primitives:     unsignedIndices,
		PrimitiveCount: 1,
	},
	{
		Identifier:     Key,
		Properties:     []openddl.PropertyRule{prop(PropKind, openddl.TypeString)},
		Primitives:     floats,
		PrimitiveCount: 1,
	},
	{
		Identifier: LightNode,
		Properties: []openddl.PropertyRule{prop(PropShadow, openddl.TypeBool)},
		Structures: nodeContents(exactlyOne(ObjectRef)),
	},
	{
		Identifier: LightObject,
		Properties: []openddl.PropertyRule{
			requiredProp(PropType, openddl.TypeString),
			prop(PropShadow, openddl.TypeBool),
		},
		Structures: []openddl.AllowedStructure{
			optional(Color),
			optional(Param),
			optional(Texture),
			{Identifier: Atten},
		},
	},
	{
		Identifier: Material,
		Properties: []openddl.PropertyRule{prop(PropTwoSided, openddl.TypeBool)},
		Structures: append([]openddl.AllowedStructure{optional(Name)}, unbounded(Color, Param, Texture)...),
	},
	{
		Identifier:         MaterialRef,
		Properties:         []openddl.PropertyRule{prop(PropIndex, openddl.TypeUnsignedInt32)},
		Primitives:         []openddl.Type{openddl.TypeReference},
		PrimitiveCount:     1,
		PrimitiveArraySize: 1,
	},
	{
		Identifier: Mesh,
		Properties: []openddl.PropertyRule{
			prop(PropLOD, openddl.TypeUnsignedInt32),
			prop(PropPrimitive, openddl.TypeString),
		},
		Structures: []openddl.AllowedStructure{
			atLeastOne(VertexArray),
			{Identifier: IndexArray},
			optional(Skin),
		},
	},
	{
		Identifier:         Metric,
		Properties:         []openddl.PropertyRule{requiredProp(PropKey, openddl.TypeString)},
		Primitives:         []openddl.Type{openddl.TypeFloat, openddl.TypeString},
		PrimitiveCount:     1,
		PrimitiveArraySize: 1,
	},
	{
		Identifier: Morph,
		Properties: []openddl.PropertyRule{prop(PropIndex, openddl.TypeUnsignedInt32)},
		Structures: []openddl.AllowedStructure{optional(Name)},
	},
	{
		Identifier:         MorphWeight,
		Properties:         []openddl.PropertyRule{prop(PropIndex, openddl.TypeUnsignedInt32)},
		Primitives:         floats,
		PrimitiveCount:     1,
		PrimitiveArraySize: 1,
	},
	{
		Identifier:         Name,
		Primitives:         []openddl.Type{openddl.TypeString},
		PrimitiveCount:     1,
		PrimitiveArraySize: 1,
	},
	{Identifier: Node, Structures: nodeContents()},
	{
		Identifier:         ObjectRef,
		Primitives:         []openddl.Type{openddl.TypeReference},
		PrimitiveCount:     1,
		PrimitiveArraySize: 1,
	},
	{
		Identifier:         Param,
		Properties:         []openddl.PropertyRule{requiredProp(PropAttrib, openddl.TypeString)},
		Primitives:         floats,
		PrimitiveCount:     1,
		PrimitiveArraySize: 1,
	},
	{Identifier: Rotation, Properties: transformed, Primitives: floats, PrimitiveCount: 1},
	{Identifier: Scale, Properties: transformed, Primitives: floats, PrimitiveCount: 1},
	{
		Identifier: Skeleton,
		Structures: []openddl.AllowedStructure{exactlyOne(BoneRefArray), exactlyOne(Transform)},
	},
	{
		Identifier: Skin,
		Structures: []openddl.AllowedStructure{
			optional(Transform),
			exactlyOne(Skeleton),
			exactlyOne(BoneCountArray),
			exactlyOne(BoneIndexArray),
			exactlyOne(BoneWeightArray),
		},
	},
	{
		Identifier: Texture,
		Properties: []openddl.PropertyRule{
			requiredProp(PropAttrib, openddl.TypeString),
			prop(PropTexcoord, openddl.TypeUnsignedInt32),
		},
		Primitives:         []openddl.Type{openddl.TypeString},
		PrimitiveCount:     1,
		PrimitiveArraySize: 1,
		Structures:         unbounded(Transform, Translation, Rotation, Scale, Animation),
	},
	{
		Identifier: Time,
		Properties: []openddl.PropertyRule{prop(PropCurve, openddl.TypeString)},
		Structures: []openddl.AllowedStructure{{Identifier: Key, Min: 1, Max: 3}},
	},
	{
		Identifier: Track,
		Properties: []openddl.PropertyRule{requiredProp(PropTarget, openddl.TypeReference)},
		Structures: []openddl.AllowedStructure{exactlyOne(Time), exactlyOne(Value)},
	},
	{
		Identifier:     Transform,
		Properties:     []openddl.PropertyRule{prop(PropObject, openddl.TypeBool)},
		Primitives:     floats,
		PrimitiveCount: 1,
	},
	{Identifier: Translation, Properties: transformed, Primitives: floats, PrimitiveCount: 1},
	{
		Identifier: Value,
		Properties: []openddl.PropertyRule{prop(PropCurve, openddl.TypeString)},
		Structures: []openddl.AllowedStructure{{Identifier: Key, Min: 1, Max: 4}},
	},
	{
		Identifier:     VertexArray,
		Properties:     []openddl.PropertyRule{requiredProp(PropAttrib, openddl.TypeString), prop(PropMorph, openddl.TypeUnsignedInt32)},
		Primitives:     []openddl.Type{openddl.TypeFloat, openddl.TypeDouble},
		PrimitiveCount: 1,
	},
}

// Parse parses an OpenGEX file using the OpenGEX keyword tables.
func Parse(src []byte, opts ...openddl.Option) (*openddl.Document, error) {
	doc := openddl.NewDocument(opts...)
	if err := doc.Parse(src, Structures, Properties); err != nil {
		return nil, fmt.Errorf("parsing opengex: %w", err)
	}
	return doc, nil
}

// Validate checks a document parsed with the OpenGEX keyword tables
// against the OpenGEX grammar.
func Validate(doc *openddl.Document) error {
	return doc.Validate(Roots, Rules)
}
