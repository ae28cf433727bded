package ruby

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fixturegen/blueprint"
)

func TestPathForAndNaming(t *testing.T) {
	e := New()
	spec := blueprint.ComponentSpec{ID: "services.payment_processor"}
	assert.Equal(t, "lib/services/payment_processor.rb", e.PathFor(spec))
	assert.Equal(t, "validate", e.Identifier("validate"))
	assert.Equal(t, "handle_login", e.Identifier("handleLogin"))
	assert.Equal(t, "PaymentProcessor", e.TypeName("services.payment_processor"))
	assert.Equal(t, "def validate(", e.DefinitionPattern("validate"))
}

func TestRelativeRequireClimbsToLibRoot(t *testing.T) {
	from := blueprint.ComponentSpec{ID: "api.v1.handle_login"}
	to := blueprint.ComponentSpec{ID: "services.authenticate"}
	assert.Equal(t, "../../services/authenticate", relativeRequire(from, to))

	sibling := blueprint.ComponentSpec{ID: "services.login"}
	assert.Equal(t, "../services/login", relativeRequire(to, sibling))
}

func TestRenderMixinBecomesModule(t *testing.T) {
	r := blueprint.NewRegistry()
	r.MustRegister(
		blueprint.ComponentSpec{ID: "services.base_service", Tags: []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleBase)}},
		blueprint.ComponentSpec{ID: "services.cacheable_service", Tags: []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleMixin)}},
	)

	e := New()
	mixin, _ := r.Find("services.cacheable_service")
	rendering, err := e.Render(r, mixin)
	require.NoError(t, err)

	content := rendering.Files[0].Content
	assert.Contains(t, content, "module CacheableService")

	require.Len(t, rendering.Substitutions, 1)
	sub := rendering.Substitutions[0]
	assert.Equal(t, "ruby", sub.Language)
	assert.Equal(t, "mixin rendered as module include", sub.Mechanism)
}

func TestRenderLeafInheritsBaseAndIncludesMixins(t *testing.T) {
	r := blueprint.NewRegistry()
	r.MustRegister(
		blueprint.ComponentSpec{ID: "services.base_service", Tags: []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleBase)}},
		blueprint.ComponentSpec{ID: "services.cacheable_service", Tags: []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleMixin)}},
		blueprint.ComponentSpec{ID: "services.auditable_service", Tags: []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleMixin)}},
		blueprint.ComponentSpec{ID: "services.payment_processor", Tags: []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleLeaf)}},
	)

	e := New()
	leaf, _ := r.Find("services.payment_processor")
	rendering, err := e.Render(r, leaf)
	require.NoError(t, err)

	content := rendering.Files[0].Content
	assert.Contains(t, content, "class PaymentProcessor < BaseService")
	assert.Contains(t, content, "include CacheableService")
	assert.Contains(t, content, "include AuditableService")
	assert.Contains(t, content, "require_relative '../services/base_service'")

	require.Len(t, rendering.Substitutions, 1)
	assert.Equal(t, "diamond rendered as single inheritance plus module includes", rendering.Substitutions[0].Mechanism)
}

func TestRenderChainAndFanout(t *testing.T) {
	r := blueprint.NewRegistry()
	r.MustRegister(
		blueprint.ComponentSpec{ID: "utils.logging", Provides: []string{"get_logger"}},
		blueprint.ComponentSpec{
			ID:   "api.v1.handle_login",
			Tags: []blueprint.Tag{blueprint.ChainNode("login", 0), blueprint.Fanout("get_logger", 4)},
		},
		blueprint.ComponentSpec{ID: "services.authenticate", Tags: []blueprint.Tag{blueprint.ChainNode("login", 1)}},
	)

	e := New()
	entry, _ := r.Find("api.v1.handle_login")
	rendering, err := e.Render(r, entry)
	require.NoError(t, err)

	content := rendering.Files[0].Content
	assert.Contains(t, content, "require_relative '../../utils/logging'")
	assert.Contains(t, content, "require_relative '../../services/authenticate'")
	assert.Contains(t, content, "LOG = get_logger('api.v1.handle_login')")
	assert.Contains(t, content, "def handle_login(request)")
	assert.Contains(t, content, "result = authenticate(request)")
}
