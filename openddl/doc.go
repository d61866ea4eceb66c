// Package openddl implements a parser for the Open Data Description Language.
//
// An OpenDDL file is a tree of structures. Primitive structures hold a typed
// array of values (int16 { 1, 2 }), optionally grouped into fixed-size
// sub-arrays (float[3] { {0, 0, 1}, {0, 1, 0} }). Custom structures are
// identified by a caller-defined keyword, may carry name = value
// properties, and contain further structures. Any structure may be named
// with a $global or %local name and referenced from elsewhere.
//
// The package is structured in four layers:
//
//   - Scanner: stateless functions decoding single literals at a cursor.
//   - Parser: recursive descent filling a flat, append-only Document.
//   - Resolver: turns reference literals into structure indices once the
//     whole document is known.
//   - Validator: checks a Document against a caller-supplied grammar.
//
// Usage:
//
//	doc := openddl.NewDocument()
//	if err := doc.Parse(src, []string{"Mesh", "VertexArray"}, []string{"attrib"}); err != nil {
//	    log.Fatal(err)
//	}
//	for mesh := range doc.ChildrenOf(0) {
//	    fmt.Println(mesh.Name())
//	}
//
// Structure and Property are cheap value views into the Document; they are
// valid as long as the Document is.
package openddl
