package emit

import (
	"github.com/teranos/fixturegen/blueprint"
)

// Plan is the language-agnostic rendering plan for one component: every
// cross-component fact an emitter needs, resolved once against the registry
// so the five emitters do not re-implement the same lookups.
type Plan struct {
	Spec blueprint.ComponentSpec

	// Defines lists utility accessors this component provides, in declared
	// order. Each must appear as a definition in the rendered file.
	Defines []string

	// Collisions lists collision-group identifiers this component must
	// define.
	Collisions []string

	// Fanouts lists shared utilities this component must reference.
	Fanouts []FanoutRef

	// Chain is non-nil when the component occupies a call-chain position.
	Chain *ChainStep

	// Hierarchy is non-nil when the component holds an inheritance role.
	Hierarchy *HierarchyPlan

	// Filler is the number of padding operations to approximate SizeHint.
	Filler int
}

// FanoutRef is one shared-utility reference, with the providing component
// resolved for import-path generation.
type FanoutRef struct {
	Tag         blueprint.Tag
	Provider    blueprint.ComponentSpec
	HasProvider bool
}

// ChainStep describes the component's position in its call chain.
type ChainStep struct {
	Tag blueprint.Tag

	// Func is the snake_case entry identifier of this node, derived from
	// the component's basename.
	Func string

	// Next is nil at the chain's maximum depth.
	Next *ChainLink
}

// ChainLink points at the next-deeper chain node.
type ChainLink struct {
	Spec blueprint.ComponentSpec
	Func string
}

// HierarchyPlan resolves the inheritance context for a component.
type HierarchyPlan struct {
	Tag  blueprint.Tag
	Role blueprint.Role

	// Bases is populated for mixins and leaves; Mixins only for leaves.
	// Together they are every type a leaf must textually derive from.
	Bases  []blueprint.ComponentSpec
	Mixins []blueprint.ComponentSpec
}

// BuildPlan resolves spec against reg into a rendering plan.
func BuildPlan(reg *blueprint.Registry, spec blueprint.ComponentSpec) Plan {
	plan := Plan{
		Spec:    spec,
		Defines: append([]string(nil), spec.Provides...),
		Filler:  fillerFor(spec.SizeHint),
	}

	for _, tag := range spec.Tags {
		switch tag.Kind {
		case blueprint.KindCollision:
			plan.Collisions = append(plan.Collisions, tag.Name)

		case blueprint.KindFanout:
			ref := FanoutRef{Tag: tag}
			ref.Provider, ref.HasProvider = reg.ProviderOf(tag.UtilityID)
			plan.Fanouts = append(plan.Fanouts, ref)

		case blueprint.KindCallChain:
			step := &ChainStep{Tag: tag, Func: spec.Basename()}
			if next, ok := reg.ChainNext(tag.ChainID, tag.Depth); ok {
				step.Next = &ChainLink{Spec: next, Func: next.Basename()}
			}
			plan.Chain = step

		case blueprint.KindInheritance:
			h := &HierarchyPlan{Tag: tag, Role: tag.Role}
			if tag.Role == blueprint.RoleMixin || tag.Role == blueprint.RoleLeaf {
				h.Bases = reg.HierarchyMembers(tag.HierarchyID, blueprint.RoleBase)
			}
			if tag.Role == blueprint.RoleLeaf {
				h.Mixins = reg.HierarchyMembers(tag.HierarchyID, blueprint.RoleMixin)
			}
			plan.Hierarchy = h
		}
	}

	return plan
}

// fillerOps is the fixed pool of padding operation names. Emitters render
// as many as Plan.Filler asks for, in order, so output stays deterministic.
var fillerOps = [...]string{
	"reset_metrics",
	"warm_cache",
	"record_latency",
	"trim_backlog",
	"snapshot_state",
	"rotate_keys",
	"flush_buffers",
	"prune_stale",
}

// FillerOps returns the snake_case names of the padding operations to
// render for this plan.
func (p Plan) FillerOps() []string {
	return fillerOps[:p.Filler]
}

// fillerFor converts a size hint (approximate line count) into a padding
// operation count. The fixed costs of a rendered file run around 30 lines;
// each filler operation adds roughly a dozen.
func fillerFor(sizeHint int) int {
	if sizeHint <= 30 {
		return 0
	}
	n := (sizeHint - 30) / 12
	if n > 8 {
		n = 8
	}
	return n
}
