// Command openddl parses and validates OpenDDL documents.
//
// Usage:
//
//	# Dump the structure tree of an OpenGEX file
//	openddl parse --profile opengex scene.ogex
//
//	# Validate against a YAML grammar
//	openddl validate --schema mesh.yaml model.oddl
//
//	# Re-validate whenever the files change
//	openddl validate --profile opengex --watch scene.ogex
//
// Every flag can also be set through the environment with an OPENDDL_
// prefix, e.g. OPENDDL_PROFILE=opengex.
package main

func main() {
	Execute()
}
