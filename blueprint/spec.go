package blueprint

import "strings"

// ComponentSpec names one logical unit of the synthetic application and the
// structural properties its rendered files must exhibit. Specs are immutable
// once registered; emitters and the validator only read them.
type ComponentSpec struct {
	// ID is the dotted logical path, e.g. "services.payment.processor".
	// Emitters derive file paths and type names from it deterministically.
	ID string

	// Responsibility is a one-line description rendered into doc comments.
	Responsibility string

	// Tags are the declared structural properties.
	Tags []Tag

	// SizeHint approximates the rendered line count per language. Emitters
	// pad with filler operations to stay in the neighborhood.
	SizeHint int

	// Provides lists shared-utility accessors (snake_case) this component
	// defines, e.g. "get_logger". Components tagged Fanout with the same
	// utility id reference the accessor; this component defines it.
	Provides []string
}

// Segments splits the dotted ID into its path parts.
func (s ComponentSpec) Segments() []string {
	return strings.Split(s.ID, ".")
}

// Basename is the last ID segment, the component's local name.
func (s ComponentSpec) Basename() string {
	segs := s.Segments()
	return segs[len(segs)-1]
}

// HasTag reports whether the spec declares exactly tag.
func (s ComponentSpec) HasTag(tag Tag) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TagOfKind returns the first declared tag of the given kind.
func (s ComponentSpec) TagOfKind(kind Kind) (Tag, bool) {
	for _, t := range s.Tags {
		if t.Kind == kind {
			return t, true
		}
	}
	return Tag{}, false
}

// TagsOfKind returns all declared tags of the given kind, in declaration
// order. A component may carry several (e.g. two collision groups).
func (s ComponentSpec) TagsOfKind(kind Kind) []Tag {
	var out []Tag
	for _, t := range s.Tags {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}
