package blueprint

import (
	"github.com/teranos/fixturegen/errors"
)

// Registry is the ordered collection of component specs for one run.
// Insertion order is preserved so downstream rendering is reproducible
// across runs, which the idempotency contract depends on.
//
// Registry is not safe for concurrent mutation; populate it fully before
// handing it to emitters. Reads after population are safe from any
// goroutine.
type Registry struct {
	order []ComponentSpec
	byID  map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]int)}
}

// Register adds a spec. Registering an already-present id is a blueprint
// integrity violation and fails with ErrDuplicateComponent.
func (r *Registry) Register(spec ComponentSpec) error {
	if spec.ID == "" {
		return errors.New("component id must not be empty")
	}
	if _, ok := r.byID[spec.ID]; ok {
		return errors.NewDuplicateComponent(spec.ID)
	}
	r.byID[spec.ID] = len(r.order)
	r.order = append(r.order, spec)
	return nil
}

// MustRegister registers a batch of specs and panics on the first failure.
// Intended for static blueprint definitions where a duplicate is a
// programming error.
func (r *Registry) MustRegister(specs ...ComponentSpec) {
	for _, spec := range specs {
		if err := r.Register(spec); err != nil {
			panic(err)
		}
	}
}

// All returns the specs in insertion order. The slice is a copy; the specs
// themselves are shared and must be treated as read-only.
func (r *Registry) All() []ComponentSpec {
	out := make([]ComponentSpec, len(r.order))
	copy(out, r.order)
	return out
}

// Len reports the number of registered specs.
func (r *Registry) Len() int { return len(r.order) }

// Find returns the spec with the given id.
func (r *Registry) Find(id string) (ComponentSpec, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return ComponentSpec{}, false
	}
	return r.order[idx], true
}

// FindByTag returns, in insertion order, every spec with at least one tag
// satisfying pred. The validator uses this to recover expected counts.
func (r *Registry) FindByTag(pred func(Tag) bool) []ComponentSpec {
	var out []ComponentSpec
	for _, spec := range r.order {
		for _, tag := range spec.Tags {
			if pred(tag) {
				out = append(out, spec)
				break
			}
		}
	}
	return out
}

// DistinctGroups returns every distinct tag group declared anywhere in the
// registry, in first-declaration order. Per-component fields (depth, role)
// are collapsed via GroupKey.
func (r *Registry) DistinctGroups() []Tag {
	seen := make(map[Tag]bool)
	var out []Tag
	for _, spec := range r.order {
		for _, tag := range spec.Tags {
			key := tag.GroupKey()
			if !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
		}
	}
	return out
}

// ChainNode returns the spec occupying the given depth of a chain.
func (r *Registry) ChainNode(chainID string, depth int) (ComponentSpec, bool) {
	for _, spec := range r.order {
		for _, tag := range spec.Tags {
			if tag.Kind == KindCallChain && tag.ChainID == chainID && tag.Depth == depth {
				return spec, true
			}
		}
	}
	return ComponentSpec{}, false
}

// ChainNext returns the spec one hop deeper than depth in the chain, if the
// chain continues.
func (r *Registry) ChainNext(chainID string, depth int) (ComponentSpec, bool) {
	return r.ChainNode(chainID, depth+1)
}

// MaxChainDepth returns the deepest declared depth for a chain, or -1 when
// the chain is unknown.
func (r *Registry) MaxChainDepth(chainID string) int {
	max := -1
	for _, spec := range r.order {
		for _, tag := range spec.Tags {
			if tag.Kind == KindCallChain && tag.ChainID == chainID && tag.Depth > max {
				max = tag.Depth
			}
		}
	}
	return max
}

// ProviderOf returns the spec that defines the given utility accessor.
func (r *Registry) ProviderOf(utilityID string) (ComponentSpec, bool) {
	for _, spec := range r.order {
		for _, p := range spec.Provides {
			if p == utilityID {
				return spec, true
			}
		}
	}
	return ComponentSpec{}, false
}

// HierarchyMembers returns the specs holding the given role in a hierarchy,
// in insertion order.
func (r *Registry) HierarchyMembers(hierarchyID string, role Role) []ComponentSpec {
	return r.FindByTag(func(t Tag) bool {
		return t.Kind == KindInheritance && t.HierarchyID == hierarchyID && t.Role == role
	})
}
