package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fixturegen/blueprint"
)

func TestBuildPlanResolvesChainAndProvider(t *testing.T) {
	r := blueprint.NewRegistry()
	r.MustRegister(
		blueprint.ComponentSpec{ID: "utils.logging", Provides: []string{"get_logger"}},
		blueprint.ComponentSpec{
			ID:   "api.v1.handle_login",
			Tags: []blueprint.Tag{blueprint.ChainNode("login", 0), blueprint.Fanout("get_logger", 4)},
		},
		blueprint.ComponentSpec{ID: "services.authenticate", Tags: []blueprint.Tag{blueprint.ChainNode("login", 1)}},
	)

	entry, _ := r.Find("api.v1.handle_login")
	plan := BuildPlan(r, entry)

	require.NotNil(t, plan.Chain)
	assert.Equal(t, "handle_login", plan.Chain.Func)
	require.NotNil(t, plan.Chain.Next)
	assert.Equal(t, "services.authenticate", plan.Chain.Next.Spec.ID)
	assert.Equal(t, "authenticate", plan.Chain.Next.Func)

	require.Len(t, plan.Fanouts, 1)
	assert.True(t, plan.Fanouts[0].HasProvider)
	assert.Equal(t, "utils.logging", plan.Fanouts[0].Provider.ID)

	deepest, _ := r.Find("services.authenticate")
	plan = BuildPlan(r, deepest)
	require.NotNil(t, plan.Chain)
	assert.Nil(t, plan.Chain.Next)
}

func TestBuildPlanHierarchyRoles(t *testing.T) {
	r := blueprint.NewRegistry()
	r.MustRegister(
		blueprint.ComponentSpec{ID: "services.base_service", Tags: []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleBase)}},
		blueprint.ComponentSpec{ID: "services.cacheable_service", Tags: []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleMixin)}},
		blueprint.ComponentSpec{ID: "services.auditable_service", Tags: []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleMixin)}},
		blueprint.ComponentSpec{ID: "services.payment_processor", Tags: []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleLeaf)}},
	)

	base, _ := r.Find("services.base_service")
	plan := BuildPlan(r, base)
	require.NotNil(t, plan.Hierarchy)
	assert.Empty(t, plan.Hierarchy.Bases)
	assert.Empty(t, plan.Hierarchy.Mixins)

	mixin, _ := r.Find("services.cacheable_service")
	plan = BuildPlan(r, mixin)
	require.NotNil(t, plan.Hierarchy)
	require.Len(t, plan.Hierarchy.Bases, 1)
	assert.Equal(t, "services.base_service", plan.Hierarchy.Bases[0].ID)
	assert.Empty(t, plan.Hierarchy.Mixins)

	leaf, _ := r.Find("services.payment_processor")
	plan = BuildPlan(r, leaf)
	require.NotNil(t, plan.Hierarchy)
	require.Len(t, plan.Hierarchy.Bases, 1)
	require.Len(t, plan.Hierarchy.Mixins, 2)
	assert.Equal(t, "services.cacheable_service", plan.Hierarchy.Mixins[0].ID)
	assert.Equal(t, "services.auditable_service", plan.Hierarchy.Mixins[1].ID)
}

func TestFillerScalesWithSizeHint(t *testing.T) {
	assert.Empty(t, BuildPlan(blueprint.NewRegistry(), blueprint.ComponentSpec{ID: "a"}).FillerOps())

	plan := BuildPlan(blueprint.NewRegistry(), blueprint.ComponentSpec{ID: "a", SizeHint: 80})
	ops := plan.FillerOps()
	require.Len(t, ops, 4)
	assert.Equal(t, "reset_metrics", ops[0])

	// Huge hints clamp at the pool size.
	plan = BuildPlan(blueprint.NewRegistry(), blueprint.ComponentSpec{ID: "a", SizeHint: 10000})
	assert.Len(t, plan.FillerOps(), 8)
}
