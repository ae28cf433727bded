package golang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fixturegen/blueprint"
)

func chainRegistry(t *testing.T) *blueprint.Registry {
	t.Helper()
	r := blueprint.NewRegistry()
	r.MustRegister(
		blueprint.ComponentSpec{
			ID:       "utils.logging",
			Provides: []string{"get_logger"},
		},
		blueprint.ComponentSpec{
			ID:   "api.v1.handle_login",
			Tags: []blueprint.Tag{blueprint.ChainNode("login", 0), blueprint.Fanout("get_logger", 4)},
		},
		blueprint.ComponentSpec{
			ID:   "services.authenticate",
			Tags: []blueprint.Tag{blueprint.ChainNode("login", 1)},
		},
	)
	return r
}

func TestPathForIsDeterministic(t *testing.T) {
	e := New()
	spec := blueprint.ComponentSpec{ID: "services.payment_processor"}
	assert.Equal(t, "internal/services/payment_processor.go", e.PathFor(spec))
	assert.Equal(t, e.PathFor(spec), e.PathFor(spec))
}

func TestNaming(t *testing.T) {
	e := New()
	assert.Equal(t, "GetLogger", e.Identifier("get_logger"))
	assert.Equal(t, "PaymentProcessor", e.TypeName("services.payment_processor"))
	assert.Equal(t, "func Validate(", e.DefinitionPattern("validate"))
}

func TestRenderCollisionDefinesIdentifier(t *testing.T) {
	r := blueprint.NewRegistry()
	spec := blueprint.ComponentSpec{
		ID:   "api.v1.auth",
		Tags: []blueprint.Tag{blueprint.Collision("validate")},
	}
	r.MustRegister(spec)

	e := New()
	rendering, err := e.Render(r, spec)
	require.NoError(t, err)
	require.Len(t, rendering.Files, 1)

	content := rendering.Files[0].Content
	assert.Contains(t, content, "package v1")
	assert.Contains(t, content, "func Validate(request map[string]interface{}) error")
}

func TestRenderChainCallsNextAcrossPackages(t *testing.T) {
	r := chainRegistry(t)
	spec, ok := r.Find("api.v1.handle_login")
	require.True(t, ok)

	e := New()
	rendering, err := e.Render(r, spec)
	require.NoError(t, err)

	content := rendering.Files[0].Content
	assert.Contains(t, content, "func HandleLogin(")
	// Cross-package call: qualified reference plus corpus-internal import.
	assert.Contains(t, content, "services.Authenticate(request)")
	assert.Contains(t, content, "\"webapp/internal/services\"")
	// Fanout accessor reference, qualified through the provider's package.
	assert.Contains(t, content, "utils.GetLogger(\"api.v1.handle_login\")")
}

func TestRenderDeepestChainNodeHasNoOutgoingCall(t *testing.T) {
	r := chainRegistry(t)
	spec, ok := r.Find("services.authenticate")
	require.True(t, ok)

	e := New()
	rendering, err := e.Render(r, spec)
	require.NoError(t, err)

	content := rendering.Files[0].Content
	assert.Contains(t, content, "func Authenticate(")
	assert.NotContains(t, content, "HandleLogin")
}

func TestRenderDiamondLeaf(t *testing.T) {
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
	// The leaf must textually derive from both mixins and name the base.
	assert.Contains(t, content, "CacheableService")
	assert.Contains(t, content, "AuditableService")
	assert.Contains(t, content, "BaseService")

	require.Len(t, rendering.Substitutions, 1)
	assert.True(t, strings.Contains(rendering.Substitutions[0].Mechanism, "embedding"))
}

func TestRenderLeafWithoutMixinsEmbedsBase(t *testing.T) {
	r := blueprint.NewRegistry()
	r.MustRegister(
		blueprint.ComponentSpec{ID: "exceptions.app_error", Tags: []blueprint.Tag{blueprint.Inheritance("errors", blueprint.RoleBase)}},
		blueprint.ComponentSpec{ID: "exceptions.payment_error", Tags: []blueprint.Tag{blueprint.Inheritance("errors", blueprint.RoleLeaf)}},
	)

	e := New()
	leaf, _ := r.Find("exceptions.payment_error")
	rendering, err := e.Render(r, leaf)
	require.NoError(t, err)

	content := rendering.Files[0].Content
	assert.Contains(t, content, "type PaymentError struct {\n\tAppError\n")
	require.Len(t, rendering.Substitutions, 1)
}

func TestRenderProviderDefinesAccessor(t *testing.T) {
	r := blueprint.NewRegistry()
	spec := blueprint.ComponentSpec{ID: "utils.logging", Provides: []string{"get_logger"}}
	r.MustRegister(spec)

	e := New()
	rendering, err := e.Render(r, spec)
	require.NoError(t, err)

	content := rendering.Files[0].Content
	assert.Contains(t, content, "func GetLogger(name string) *Logger")
}
