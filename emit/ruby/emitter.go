// Package ruby renders component specs as Ruby source under webapp_rb/.
//
// Layout convention: lib/<dotted path>.rb with top-level classes and
// methods, wired together with require_relative. Mixin roles render as
// modules pulled in with include, Ruby's nearest mechanism to a diamond.
package ruby

import (
	"fmt"
	"strings"

	"github.com/teranos/fixturegen/blueprint"
	"github.com/teranos/fixturegen/emit"
	"github.com/teranos/fixturegen/emit/emitutil"
)

// Emitter renders the Ruby corpus.
type Emitter struct{}

// New returns the Ruby emitter.
func New() *Emitter { return &Emitter{} }

func (e *Emitter) Language() string { return "ruby" }

func (e *Emitter) Root() string { return "webapp_rb" }

// Identifier normalizes a declared name to snake_case. Names are declared
// snake_case already, so this is usually the identity; camelCase input still
// lands on the canonical spelling.
func (e *Emitter) Identifier(name string) string {
	return emitutil.ToSnakeCase(name)
}

func (e *Emitter) TypeName(id string) string {
	spec := blueprint.ComponentSpec{ID: id}
	return emitutil.ToPascalCase(spec.Basename())
}

func (e *Emitter) DefinitionPattern(name string) string {
	return "def " + e.Identifier(name) + "("
}

// PathFor maps "services.payment_processor" to
// "lib/services/payment_processor.rb".
func (e *Emitter) PathFor(spec blueprint.ComponentSpec) string {
	return "lib/" + strings.Join(spec.Segments(), "/") + ".rb"
}

// relativeRequire computes the require_relative argument from the spec's
// file to the target's file, both rooted at lib/.
func relativeRequire(from, to blueprint.ComponentSpec) string {
	fromSegs := from.Segments()
	toSegs := to.Segments()

	ups := len(fromSegs) - 1 // directories between the file and lib/
	var parts []string
	for i := 0; i < ups; i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, toSegs...)
	return strings.Join(parts, "/")
}

func (e *Emitter) Render(reg *blueprint.Registry, spec blueprint.ComponentSpec) (emit.Rendering, error) {
	plan := emit.BuildPlan(reg, spec)

	var b strings.Builder
	b.WriteString("# frozen_string_literal: true\n\n")
	b.WriteString(fmt.Sprintf("# %s\n\n", spec.Responsibility))

	e.writeRequires(&b, plan)
	e.writeProvides(&b, plan)
	e.writeFanout(&b, plan)

	var subs []emit.Substitution
	if plan.Hierarchy != nil {
		subs = append(subs, e.writeHierarchy(&b, plan)...)
	}
	e.writeCollisions(&b, plan)
	e.writeChain(&b, plan)
	e.writeFiller(&b, plan)

	file := emit.RenderedFile{
		Path:     e.PathFor(spec),
		Language: e.Language(),
		Content:  b.String(),
		SpecID:   spec.ID,
		Tags:     spec.Tags,
	}
	return emit.Rendering{Files: []emit.RenderedFile{file}, Substitutions: subs}, nil
}

func (e *Emitter) writeRequires(b *strings.Builder, plan emit.Plan) {
	seen := map[string]bool{}
	wrote := false
	add := func(target blueprint.ComponentSpec) {
		req := relativeRequire(plan.Spec, target)
		if seen[req] {
			return
		}
		seen[req] = true
		b.WriteString(fmt.Sprintf("require_relative '%s'\n", req))
		wrote = true
	}

	for _, ref := range plan.Fanouts {
		if ref.HasProvider {
			add(ref.Provider)
		}
	}
	if plan.Chain != nil && plan.Chain.Next != nil {
		add(plan.Chain.Next.Spec)
	}
	if plan.Hierarchy != nil {
		for _, base := range plan.Hierarchy.Bases {
			add(base)
		}
		for _, mixin := range plan.Hierarchy.Mixins {
			add(mixin)
		}
	}
	if wrote {
		b.WriteString("\n")
	}
}

func (e *Emitter) writeProvides(b *strings.Builder, plan emit.Plan) {
	for _, accessor := range plan.Defines {
		b.WriteString("# Minimal leveled logger shared across the corpus.\n")
		b.WriteString("class CorpusLogger\n")
		b.WriteString("  def initialize(name)\n    @name = name\n  end\n\n")
		b.WriteString("  def info(msg)\n    puts \"[INFO] #{@name}: #{msg}\"\n  end\n\n")
		b.WriteString("  def error(msg)\n    puts \"[ERROR] #{@name}: #{msg}\"\n  end\nend\n\n")
		b.WriteString("# Create a new logger instance for the given component name.\n")
		b.WriteString(fmt.Sprintf("def %s(name)\n  CorpusLogger.new(name)\nend\n\n", e.Identifier(accessor)))
	}
}

func (e *Emitter) writeFanout(b *strings.Builder, plan emit.Plan) {
	for _, ref := range plan.Fanouts {
		b.WriteString(fmt.Sprintf("LOG = %s('%s')\n\n", e.Identifier(ref.Tag.UtilityID), plan.Spec.ID))
	}
}

func (e *Emitter) writeHierarchy(b *strings.Builder, plan emit.Plan) []emit.Substitution {
	h := plan.Hierarchy
	typeName := e.TypeName(plan.Spec.ID)

	switch h.Role {
	case blueprint.RoleBase:
		b.WriteString(fmt.Sprintf("class %s\n", typeName))
		b.WriteString("  attr_reader :name\n\n")
		b.WriteString("  def initialize(name)\n    @name = name\n    @initialized = false\n  end\n\n")
		b.WriteString("  def initialize_service\n    @initialized = true\n  end\n\n")
		b.WriteString("  def require_initialized\n")
		b.WriteString("    raise \"service #{@name} not initialized\" unless @initialized\n  end\nend\n\n")
		return nil

	case blueprint.RoleMixin:
		// Ruby has no multiple class inheritance; mixins become modules.
		b.WriteString(fmt.Sprintf("module %s\n", typeName))
		b.WriteString("  def record(key, value)\n")
		b.WriteString("    @entries ||= {}\n    @entries[key] = value\n  end\n\n")
		b.WriteString("  def lookup(key)\n    (@entries || {})[key]\n  end\nend\n\n")
		return []emit.Substitution{{
			ComponentID: plan.Spec.ID,
			Language:    e.Language(),
			Tag:         h.Tag,
			Mechanism:   "mixin rendered as module include",
		}}

	case blueprint.RoleLeaf:
		parent := ""
		if len(h.Bases) > 0 {
			parent = " < " + e.TypeName(h.Bases[0].ID)
		}
		b.WriteString(fmt.Sprintf("class %s%s\n", typeName, parent))
		for _, mixin := range h.Mixins {
			b.WriteString(fmt.Sprintf("  include %s\n", e.TypeName(mixin.ID)))
		}
		b.WriteString("\n  def initialize\n")
		b.WriteString(fmt.Sprintf("    super('%s')\n", plan.Spec.Basename()))
		b.WriteString("    @pending = []\n  end\n\n")
		b.WriteString("  def enqueue(item)\n    require_initialized\n    @pending << item\n  end\nend\n\n")
		return []emit.Substitution{{
			ComponentID: plan.Spec.ID,
			Language:    e.Language(),
			Tag:         h.Tag,
			Mechanism:   "diamond rendered as single inheritance plus module includes",
		}}
	}
	return nil
}

func (e *Emitter) writeCollisions(b *strings.Builder, plan emit.Plan) {
	for _, name := range plan.Collisions {
		b.WriteString(fmt.Sprintf("# Check %s request parameters.\n", plan.Spec.Basename()))
		b.WriteString(fmt.Sprintf("def %s(request)\n", e.Identifier(name)))
		b.WriteString("  raise ArgumentError, 'empty request' if request.nil? || request.empty?\n")
		b.WriteString("  %w[id].each do |field|\n")
		b.WriteString("    raise ArgumentError, \"missing field: #{field}\" unless request.key?(field)\n")
		b.WriteString("  end\n  request\nend\n\n")
	}
}

func (e *Emitter) writeChain(b *strings.Builder, plan emit.Plan) {
	if plan.Chain == nil {
		return
	}
	step := plan.Chain
	b.WriteString(fmt.Sprintf("# %s\n", plan.Spec.Responsibility))
	b.WriteString(fmt.Sprintf("def %s(request)\n", e.Identifier(step.Func)))
	if step.Next != nil {
		b.WriteString(fmt.Sprintf("  result = %s(request)\n", e.Identifier(step.Next.Func)))
		b.WriteString(fmt.Sprintf("  result['%s'] = true\n", step.Func))
		b.WriteString("  result\nend\n\n")
	} else {
		b.WriteString(fmt.Sprintf("  { '%s' => true }\nend\n\n", step.Func))
	}
}

func (e *Emitter) writeFiller(b *strings.Builder, plan emit.Plan) {
	// Top-level methods share one namespace in Ruby; prefix padding helpers
	// with the component basename to keep files from shadowing each other.
	for _, op := range plan.FillerOps() {
		b.WriteString(fmt.Sprintf("def %s_%s(limit)\n", plan.Spec.Basename(), op))
		b.WriteString("  (0...limit).sum\nend\n\n")
	}
}
