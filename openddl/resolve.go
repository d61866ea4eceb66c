package openddl

import (
	"errors"
	"strings"
)

// resolve fills the reference slots of every pending reference. All
// references are attempted; the failures are returned together.
func (d *Document) resolve(src []byte, pending []pendingReference) error {
	var errs []error
	for _, ref := range pending {
		target := d.dereference(ref.origin, ref.token)
		d.references[ref.slot] = target
		if target == NullReference {
			err := &ReferenceError{
				Reference: ref.token,
				Origin:    ref.origin,
				Pos:       positionAt(src, ref.offset),
			}
			d.logger.Warn("openddl reference not found",
				"reference", ref.token,
				"line", err.Pos.Line,
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// lastSegment returns the position of the final $ or % of a name chain.
func lastSegment(ref string) int {
	return strings.LastIndexAny(ref, "$%")
}

// dereference finds the structure a name chain refers to, looking from the
// structure at origin. It returns NullReference when nothing matches.
func (d *Document) dereference(origin int, ref string) int {
	cut := lastSegment(ref)
	leaf, prefix := ref[cut:], ref[:cut]

	// A single local name prefers a sibling of the referencing structure.
	if prefix == "" && leaf[0] == '%' {
		i := 0
		if parent := d.structures[origin].parent; parent != noParent {
			i = d.structures[parent].firstChild
		}
		for {
			if d.strings[d.structures[i].name] == leaf {
				return i
			}
			if i = d.structures[i].next; i == 0 {
				break
			}
		}
	}

	for i := range d.structures {
		s := &d.structures[i]
		if s.name != 0 && d.strings[s.name] == leaf && d.matchesPrefix(s.parent, prefix) {
			return i
		}
	}
	return NullReference
}

// matchesPrefix checks the named ancestors of a candidate, starting at
// parent, against the prefix segments from innermost to outermost. Unnamed
// ancestors are skipped. A prefix starting with a local name must not have
// named ancestors above it.
func (d *Document) matchesPrefix(parent int, prefix string) bool {
	local := prefix != "" && prefix[0] == '%'
	for prefix != "" {
		if parent == noParent {
			return false
		}
		if s := d.structures[parent]; s.name != 0 {
			cut := lastSegment(prefix)
			if d.strings[s.name] != prefix[cut:] {
				return false
			}
			prefix = prefix[:cut]
		}
		parent = d.structures[parent].parent
	}
	if local {
		for ; parent != noParent; parent = d.structures[parent].parent {
			if d.structures[parent].name != 0 {
				return false
			}
		}
	}
	return true
}
