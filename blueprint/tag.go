// Package blueprint holds the language-agnostic corpus model: structural
// tags, component specs, and the registry emitters render from.
//
// A blueprint declares what the generated corpus must structurally exhibit
// (which names collide, how deep call chains go, what the inheritance
// hierarchies look like) without saying anything about surface syntax.
// Language emitters own the syntax; the validator re-derives the declared
// structure from the rendered text.
package blueprint

import "fmt"

// Kind discriminates the Tag variants.
type Kind string

const (
	// KindCollision declares a function/method name shared across files.
	KindCollision Kind = "collision"

	// KindCallChain places the component at a fixed depth of a named chain.
	KindCallChain Kind = "call_chain"

	// KindInheritance assigns the component a role in a named hierarchy.
	KindInheritance Kind = "inheritance"

	// KindFanout declares that the component references a shared utility.
	KindFanout Kind = "fanout"
)

// Role is the position a component takes in an inheritance hierarchy.
type Role string

const (
	RoleBase  Role = "base"
	RoleMixin Role = "mixin"
	RoleLeaf  Role = "leaf"
)

// Tag is a declared structural property of a component. It is a tagged
// variant: Kind selects which of the remaining fields are meaningful. Tags
// are comparable and safe to use as map keys.
type Tag struct {
	Kind Kind

	// Collision: the identifier every tagged component must define.
	Name string

	// CallChain: chain identity and zero-based depth within it.
	ChainID string
	Depth   int

	// Inheritance: hierarchy identity and the component's role in it.
	HierarchyID string
	Role        Role

	// Fanout: accessor identifier and the minimum distinct-file count the
	// corpus must reach for the invariant to hold.
	UtilityID string
	MinFanout int
}

// Collision declares that the component defines an identifier literally
// named name, colliding with every other component carrying the same group.
func Collision(name string) Tag {
	return Tag{Kind: KindCollision, Name: name}
}

// ChainNode places the component at the given depth of chainID. Depth 0 is
// the entry point; each node must call into depth+1.
func ChainNode(chainID string, depth int) Tag {
	return Tag{Kind: KindCallChain, ChainID: chainID, Depth: depth}
}

// Inheritance assigns the component a role in hierarchyID. Every leaf must
// derive from every base and mixin of the same hierarchy.
func Inheritance(hierarchyID string, role Role) Tag {
	return Tag{Kind: KindInheritance, HierarchyID: hierarchyID, Role: role}
}

// Fanout declares that the component references the shared utility accessor
// utilityID. minFanout is the distinct-file floor the validator enforces.
func Fanout(utilityID string, minFanout int) Tag {
	return Tag{Kind: KindFanout, UtilityID: utilityID, MinFanout: minFanout}
}

// String renders a compact human-readable form for logs and reports.
func (t Tag) String() string {
	switch t.Kind {
	case KindCollision:
		return fmt.Sprintf("collision(%s)", t.Name)
	case KindCallChain:
		return fmt.Sprintf("chain(%s@%d)", t.ChainID, t.Depth)
	case KindInheritance:
		return fmt.Sprintf("inheritance(%s:%s)", t.HierarchyID, t.Role)
	case KindFanout:
		return fmt.Sprintf("fanout(%s>=%d)", t.UtilityID, t.MinFanout)
	default:
		return string(t.Kind)
	}
}

// GroupKey collapses a tag to its group identity, ignoring per-component
// fields like chain depth or hierarchy role. Tags with equal group keys
// belong to the same declared cross-file property.
func (t Tag) GroupKey() Tag {
	switch t.Kind {
	case KindCallChain:
		return Tag{Kind: KindCallChain, ChainID: t.ChainID}
	case KindInheritance:
		return Tag{Kind: KindInheritance, HierarchyID: t.HierarchyID}
	default:
		return t
	}
}
