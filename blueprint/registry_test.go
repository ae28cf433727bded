package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fixturegen/errors"
)

func TestRegisterPreservesInsertionOrder(t *testing.T) {
	r := NewRegistry()
	ids := []string{"utils.logging", "auth.service", "api.v1.auth"}
	for _, id := range ids {
		require.NoError(t, r.Register(ComponentSpec{ID: id}))
	}

	all := r.All()
	require.Len(t, all, 3)
	for i, id := range ids {
		assert.Equal(t, id, all[i].ID)
	}
}

func TestRegisterDuplicateFails(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(ComponentSpec{ID: "auth.service"}))

	err := r.Register(ComponentSpec{ID: "auth.service"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDuplicateComponent))

	// The failed registration must not disturb the registry.
	assert.Equal(t, 1, r.Len())
}

func TestRegisterEmptyIDFails(t *testing.T) {
	r := NewRegistry()
	require.Error(t, r.Register(ComponentSpec{}))
}

func TestAllReturnsCopy(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(ComponentSpec{ID: "a"}))

	all := r.All()
	all[0].ID = "mutated"

	again := r.All()
	assert.Equal(t, "a", again[0].ID)
}

func TestFindByTag(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(
		ComponentSpec{ID: "api.v1.auth", Tags: []Tag{Collision("validate")}},
		ComponentSpec{ID: "api.v2.auth", Tags: []Tag{Collision("validate")}},
		ComponentSpec{ID: "utils.logging", Tags: []Tag{Fanout("get_logger", 4)}},
	)

	matches := r.FindByTag(func(t Tag) bool {
		return t.Kind == KindCollision && t.Name == "validate"
	})
	require.Len(t, matches, 2)
	assert.Equal(t, "api.v1.auth", matches[0].ID)
	assert.Equal(t, "api.v2.auth", matches[1].ID)
}

func TestChainNavigation(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(
		ComponentSpec{ID: "api.v1.handle_login", Tags: []Tag{ChainNode("login", 0)}},
		ComponentSpec{ID: "services.auth.authenticate", Tags: []Tag{ChainNode("login", 1)}},
		ComponentSpec{ID: "database.get_connection", Tags: []Tag{ChainNode("login", 2)}},
	)

	next, ok := r.ChainNext("login", 0)
	require.True(t, ok)
	assert.Equal(t, "services.auth.authenticate", next.ID)

	_, ok = r.ChainNext("login", 2)
	assert.False(t, ok)

	assert.Equal(t, 2, r.MaxChainDepth("login"))
	assert.Equal(t, -1, r.MaxChainDepth("logout"))
}

func TestHierarchyMembers(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(
		ComponentSpec{ID: "services.base", Tags: []Tag{Inheritance("services", RoleBase)}},
		ComponentSpec{ID: "services.cacheable", Tags: []Tag{Inheritance("services", RoleMixin)}},
		ComponentSpec{ID: "services.auditable", Tags: []Tag{Inheritance("services", RoleMixin)}},
		ComponentSpec{ID: "services.payment.processor", Tags: []Tag{Inheritance("services", RoleLeaf)}},
	)

	mixins := r.HierarchyMembers("services", RoleMixin)
	require.Len(t, mixins, 2)
	assert.Equal(t, "services.cacheable", mixins[0].ID)

	leaves := r.HierarchyMembers("services", RoleLeaf)
	require.Len(t, leaves, 1)
}

func TestDistinctGroupsCollapsesPerComponentFields(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(
		ComponentSpec{ID: "a", Tags: []Tag{ChainNode("login", 0), Collision("validate")}},
		ComponentSpec{ID: "b", Tags: []Tag{ChainNode("login", 1)}},
		ComponentSpec{ID: "c", Tags: []Tag{Inheritance("services", RoleBase)}},
		ComponentSpec{ID: "d", Tags: []Tag{Inheritance("services", RoleLeaf)}},
	)

	groups := r.DistinctGroups()
	// login chain, validate collision, services hierarchy
	require.Len(t, groups, 3)
	assert.Equal(t, KindCallChain, groups[0].Kind)
	assert.Equal(t, "login", groups[0].ChainID)
	assert.Equal(t, 0, groups[0].Depth)
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "collision(validate)", Collision("validate").String())
	assert.Equal(t, "chain(login@3)", ChainNode("login", 3).String())
	assert.Equal(t, "inheritance(services:mixin)", Inheritance("services", RoleMixin).String())
	assert.Equal(t, "fanout(get_logger>=4)", Fanout("get_logger", 4).String())
}
