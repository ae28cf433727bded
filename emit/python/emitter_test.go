package python

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fixturegen/blueprint"
)

func TestPathForAndNaming(t *testing.T) {
	e := New()
	spec := blueprint.ComponentSpec{ID: "api.v1.handle_login"}
	assert.Equal(t, "api/v1/handle_login.py", e.PathFor(spec))
	assert.Equal(t, "get_logger", e.Identifier("get_logger"))
	assert.Equal(t, "handle_login", e.Identifier("handleLogin"))
	assert.Equal(t, "PaymentProcessor", e.TypeName("services.payment_processor"))
	assert.Equal(t, "def validate(", e.DefinitionPattern("validate"))
}

func TestRenderEmitsPackageMarkers(t *testing.T) {
	r := blueprint.NewRegistry()
	spec := blueprint.ComponentSpec{ID: "api.v1.handle_login"}
	r.MustRegister(spec)

	e := New()
	rendering, err := e.Render(r, spec)
	require.NoError(t, err)

	var paths []string
	for _, f := range rendering.Files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"api/v1/handle_login.py", "api/__init__.py", "api/v1/__init__.py"}, paths)

	// Marker files carry no spec id, so repeated emissions stay benign.
	assert.Empty(t, rendering.Files[1].SpecID)
	assert.Empty(t, rendering.Files[2].SpecID)
	assert.Equal(t, "api.v1.handle_login", rendering.Files[0].SpecID)
}

func TestRenderDiamondUsesNativeMultipleInheritance(t *testing.T) {
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
	assert.Contains(t, content, "class PaymentProcessor(CacheableService, AuditableService):")
	assert.Contains(t, content, "from services.base_service import BaseService")

	// Python carries the diamond natively, nothing was substituted.
	assert.Empty(t, rendering.Substitutions)
}

func TestRenderChainImportsNextNode(t *testing.T) {
	r := blueprint.NewRegistry()
	r.MustRegister(
		blueprint.ComponentSpec{ID: "api.v1.handle_login", Tags: []blueprint.Tag{blueprint.ChainNode("login", 0)}},
		blueprint.ComponentSpec{ID: "services.authenticate", Tags: []blueprint.Tag{blueprint.ChainNode("login", 1)}},
	)

	e := New()
	entry, _ := r.Find("api.v1.handle_login")
	rendering, err := e.Render(r, entry)
	require.NoError(t, err)

	content := rendering.Files[0].Content
	assert.Contains(t, content, "from services.authenticate import authenticate")
	assert.Contains(t, content, "def handle_login(request):")
	assert.Contains(t, content, "result = authenticate(request)")
}

func TestRenderCollisionAndFanout(t *testing.T) {
	r := blueprint.NewRegistry()
	r.MustRegister(
		blueprint.ComponentSpec{ID: "utils.logging", Provides: []string{"get_logger"}},
		blueprint.ComponentSpec{
			ID:   "api.v2.auth",
			Tags: []blueprint.Tag{blueprint.Collision("validate"), blueprint.Fanout("get_logger", 4)},
		},
	)

	e := New()
	spec, _ := r.Find("api.v2.auth")
	rendering, err := e.Render(r, spec)
	require.NoError(t, err)

	content := rendering.Files[0].Content
	assert.Contains(t, content, "def validate(request):")
	assert.Contains(t, content, "from utils.logging import get_logger")
	assert.Contains(t, content, "_logger = get_logger(\"api.v2.auth\")")
}
