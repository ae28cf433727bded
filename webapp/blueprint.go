// Package webapp defines the standard benchmark blueprint: a synthetic
// web application (auth, payments, caching, notifications) declared once,
// language-independently, and rendered by every emitter.
//
// The structural hazards a downstream code-intelligence benchmark needs are
// declared here as tags: cross-file name collisions, a deep login call
// chain, a diamond service hierarchy, an application error hierarchy, and a
// high-fanout logging utility.
package webapp

import (
	"github.com/teranos/fixturegen/blueprint"
)

// MinLoggerFanout is the floor for files referencing the logging accessor.
const MinLoggerFanout = 4

// loggerRef tags a component as a consumer of the shared logging utility.
func loggerRef() blueprint.Tag {
	return blueprint.Fanout("get_logger", MinLoggerFanout)
}

// NewRegistry builds the standard webapp blueprint. The registry is fully
// populated before return; callers must not register further components.
func NewRegistry() *blueprint.Registry {
	r := blueprint.NewRegistry()

	r.MustRegister(
		// Shared utilities. utils.logging provides the high-fanout accessor
		// every other component references.
		blueprint.ComponentSpec{
			ID:             "utils.logging",
			Responsibility: "Shared logging utility referenced across the whole corpus.",
			Provides:       []string{"get_logger"},
			SizeHint:       40,
		},
		blueprint.ComponentSpec{
			ID:             "utils.helpers",
			Responsibility: "Request helpers shared between API layers.",
			Tags:           []blueprint.Tag{loggerRef()},
			SizeHint:       45,
		},

		// Database layer: the two deepest hops of the login chain live here.
		blueprint.ComponentSpec{
			ID:             "database.get_connection",
			Responsibility: "Acquires a pooled database connection.",
			Tags:           []blueprint.Tag{blueprint.ChainNode("login", 5), loggerRef()},
			SizeHint:       50,
		},
		blueprint.ComponentSpec{
			ID:             "database.execute_query",
			Responsibility: "Executes a parameterized query on an acquired connection.",
			Tags:           []blueprint.Tag{blueprint.ChainNode("login", 4), loggerRef()},
			SizeHint:       45,
		},
		blueprint.ComponentSpec{
			ID:             "database.queries",
			Responsibility: "Canned queries for users, sessions, and payments.",
			Tags:           []blueprint.Tag{loggerRef()},
			SizeHint:       60,
		},

		// Models.
		blueprint.ComponentSpec{
			ID:             "models.user",
			Responsibility: "User record with profile and credential fields.",
			Tags:           []blueprint.Tag{loggerRef()},
			SizeHint:       50,
		},
		blueprint.ComponentSpec{
			ID:             "models.payment",
			Responsibility: "Payment transaction record and status transitions.",
			Tags:           []blueprint.Tag{loggerRef()},
			SizeHint:       45,
		},

		// Service hierarchy: the diamond. Both mixins extend the base;
		// both leaves derive from base and mixins.
		blueprint.ComponentSpec{
			ID:             "services.base_service",
			Responsibility: "Common lifecycle state shared by every service.",
			Tags:           []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleBase), loggerRef()},
			SizeHint:       55,
		},
		blueprint.ComponentSpec{
			ID:             "services.cacheable_service",
			Responsibility: "Adds result caching to a service.",
			Tags:           []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleMixin), loggerRef()},
			SizeHint:       45,
		},
		blueprint.ComponentSpec{
			ID:             "services.auditable_service",
			Responsibility: "Adds an audit trail to a service.",
			Tags:           []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleMixin), loggerRef()},
			SizeHint:       45,
		},
		blueprint.ComponentSpec{
			ID:             "services.payment_processor",
			Responsibility: "Processes payments with caching and audit trail.",
			Tags: []blueprint.Tag{
				blueprint.Inheritance("services", blueprint.RoleLeaf),
				blueprint.Collision("process"),
				loggerRef(),
			},
			SizeHint: 80,
		},
		blueprint.ComponentSpec{
			ID:             "services.notification_dispatcher",
			Responsibility: "Dispatches email and push notifications with audit trail.",
			Tags:           []blueprint.Tag{blueprint.Inheritance("services", blueprint.RoleLeaf), loggerRef()},
			SizeHint:       70,
		},

		// Login call chain, shallow to deep.
		blueprint.ComponentSpec{
			ID:             "api.v1.handle_login",
			Responsibility: "Handles the v1 login endpoint, entry point of the login chain.",
			Tags:           []blueprint.Tag{blueprint.ChainNode("login", 0), loggerRef()},
			SizeHint:       50,
		},
		blueprint.ComponentSpec{
			ID:             "services.authenticate",
			Responsibility: "Authenticates credentials against stored users.",
			Tags:           []blueprint.Tag{blueprint.ChainNode("login", 1), loggerRef()},
			SizeHint:       55,
		},
		blueprint.ComponentSpec{
			ID:             "services.login",
			Responsibility: "Establishes a session for an authenticated user.",
			Tags:           []blueprint.Tag{blueprint.ChainNode("login", 2), loggerRef()},
			SizeHint:       45,
		},
		blueprint.ComponentSpec{
			ID:             "auth.generate_token",
			Responsibility: "Issues a signed session token.",
			Tags:           []blueprint.Tag{blueprint.ChainNode("login", 3), loggerRef()},
			SizeHint:       50,
		},

		// The "validate" collision group: one definition per API version
		// plus two standalone validators, in four distinct modules.
		blueprint.ComponentSpec{
			ID:             "api.v1.auth",
			Responsibility: "Checks v1 auth request parameters.",
			Tags:           []blueprint.Tag{blueprint.Collision("validate"), loggerRef()},
			SizeHint:       55,
		},
		blueprint.ComponentSpec{
			ID:             "api.v2.auth",
			Responsibility: "Checks v2 auth request parameters, stricter than v1.",
			Tags:           []blueprint.Tag{blueprint.Collision("validate"), loggerRef()},
			SizeHint:       55,
		},
		blueprint.ComponentSpec{
			ID:             "validators.common",
			Responsibility: "Field-level validators shared by all request types.",
			Tags:           []blueprint.Tag{blueprint.Collision("validate")},
			SizeHint:       40,
		},
		blueprint.ComponentSpec{
			ID:             "middleware.request_guard",
			Responsibility: "Rejects malformed requests before routing.",
			Tags:           []blueprint.Tag{blueprint.Collision("validate"), loggerRef()},
			SizeHint:       50,
		},

		// The "process" collision group, completing four distinct modules.
		blueprint.ComponentSpec{
			ID:             "tasks.payment_tasks",
			Responsibility: "Background reconciliation of pending payments.",
			Tags:           []blueprint.Tag{blueprint.Collision("process"), loggerRef()},
			SizeHint:       55,
		},
		blueprint.ComponentSpec{
			ID:             "events.dispatcher",
			Responsibility: "Fans application events out to subscribers.",
			Tags:           []blueprint.Tag{blueprint.Collision("process"), loggerRef()},
			SizeHint:       50,
		},
		blueprint.ComponentSpec{
			ID:             "workers.email_worker",
			Responsibility: "Drains the outbound email queue.",
			Tags:           []blueprint.Tag{blueprint.Collision("process"), loggerRef()},
			SizeHint:       50,
		},

		// Cache layer.
		blueprint.ComponentSpec{
			ID:             "cache.memory_store",
			Responsibility: "In-memory TTL cache backing the cacheable services.",
			Tags:           []blueprint.Tag{loggerRef()},
			SizeHint:       60,
		},

		// Application error hierarchy: a base error type with concrete
		// subtypes, the corpus's second inheritance tree (no mixins).
		blueprint.ComponentSpec{
			ID:             "exceptions.app_error",
			Responsibility: "Base application error with structured context.",
			Tags:           []blueprint.Tag{blueprint.Inheritance("errors", blueprint.RoleBase)},
			SizeHint:       55,
		},
		blueprint.ComponentSpec{
			ID:             "exceptions.validation_error",
			Responsibility: "Raised when input validation fails.",
			Tags:           []blueprint.Tag{blueprint.Inheritance("errors", blueprint.RoleLeaf)},
			SizeHint:       45,
		},
		blueprint.ComponentSpec{
			ID:             "exceptions.payment_error",
			Responsibility: "Raised when a payment operation fails.",
			Tags:           []blueprint.Tag{blueprint.Inheritance("errors", blueprint.RoleLeaf)},
			SizeHint:       45,
		},
		blueprint.ComponentSpec{
			ID:             "exceptions.not_found_error",
			Responsibility: "Raised when a requested record does not exist.",
			Tags:           []blueprint.Tag{blueprint.Inheritance("errors", blueprint.RoleLeaf)},
			SizeHint:       40,
		},
	)

	return r
}
