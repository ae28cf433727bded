// Package typescript renders component specs as TypeScript source under
// webapp_ts/.
//
// Layout convention: src/<dotted path>.ts with relative ES module imports
// and camelCase identifiers. Mixin roles render as interfaces the leaf
// implements alongside a single extends clause, TypeScript's nearest
// mechanism to a diamond.
package typescript

import (
	"fmt"
	"strings"

	"github.com/teranos/fixturegen/blueprint"
	"github.com/teranos/fixturegen/emit"
	"github.com/teranos/fixturegen/emit/emitutil"
)

// Emitter renders the TypeScript corpus.
type Emitter struct{}

// New returns the TypeScript emitter.
func New() *Emitter { return &Emitter{} }

func (e *Emitter) Language() string { return "typescript" }

func (e *Emitter) Root() string { return "webapp_ts" }

// Identifier spells a declared snake_case name as camelCase.
func (e *Emitter) Identifier(name string) string {
	return emitutil.ToCamelCase(name)
}

func (e *Emitter) TypeName(id string) string {
	spec := blueprint.ComponentSpec{ID: id}
	return emitutil.ToPascalCase(spec.Basename())
}

func (e *Emitter) DefinitionPattern(name string) string {
	return "function " + e.Identifier(name) + "("
}

// PathFor maps "services.payment_processor" to
// "src/services/payment_processor.ts".
func (e *Emitter) PathFor(spec blueprint.ComponentSpec) string {
	return "src/" + strings.Join(spec.Segments(), "/") + ".ts"
}

// relativeImport computes the ES import specifier from the spec's module to
// the target's module, both rooted at src/.
func relativeImport(from, to blueprint.ComponentSpec) string {
	fromSegs := from.Segments()
	toSegs := to.Segments()

	ups := len(fromSegs) - 1
	var parts []string
	if ups == 0 {
		parts = append(parts, ".")
	}
	for i := 0; i < ups; i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, toSegs...)
	return strings.Join(parts, "/")
}

func (e *Emitter) Render(reg *blueprint.Registry, spec blueprint.ComponentSpec) (emit.Rendering, error) {
	plan := emit.BuildPlan(reg, spec)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("/** %s */\n\n", spec.Responsibility))

	e.writeImports(&b, plan)
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

func (e *Emitter) writeImports(b *strings.Builder, plan emit.Plan) {
	wrote := false
	add := func(names []string, target blueprint.ComponentSpec) {
		b.WriteString(fmt.Sprintf("import { %s } from \"%s\";\n",
			strings.Join(names, ", "), relativeImport(plan.Spec, target)))
		wrote = true
	}

	for _, ref := range plan.Fanouts {
		if ref.HasProvider {
			add([]string{e.Identifier(ref.Tag.UtilityID)}, ref.Provider)
		}
	}
	if plan.Chain != nil && plan.Chain.Next != nil {
		add([]string{e.Identifier(plan.Chain.Next.Func)}, plan.Chain.Next.Spec)
	}
	if plan.Hierarchy != nil {
		for _, base := range plan.Hierarchy.Bases {
			add([]string{e.TypeName(base.ID)}, base)
		}
		for _, mixin := range plan.Hierarchy.Mixins {
			add([]string{e.TypeName(mixin.ID)}, mixin)
		}
	}
	if wrote {
		b.WriteString("\n")
	}
}

func (e *Emitter) writeProvides(b *strings.Builder, plan emit.Plan) {
	for _, accessor := range plan.Defines {
		name := e.Identifier(accessor)
		b.WriteString("/** Minimal leveled logger shared across the corpus. */\n")
		b.WriteString("export class Logger {\n")
		b.WriteString("  constructor(private readonly name: string) {}\n\n")
		b.WriteString("  info(msg: string): void {\n")
		b.WriteString("    console.log(`[INFO] ${this.name}: ${msg}`);\n  }\n\n")
		b.WriteString("  error(msg: string): void {\n")
		b.WriteString("    console.error(`[ERROR] ${this.name}: ${msg}`);\n  }\n}\n\n")
		b.WriteString("/** Create a new logger instance for the given component name. */\n")
		b.WriteString(fmt.Sprintf("export function %s(name: string): Logger {\n", name))
		b.WriteString("  return new Logger(name);\n}\n\n")
	}
}

func (e *Emitter) writeFanout(b *strings.Builder, plan emit.Plan) {
	for _, ref := range plan.Fanouts {
		b.WriteString(fmt.Sprintf("const log = %s(\"%s\");\n\n", e.Identifier(ref.Tag.UtilityID), plan.Spec.ID))
	}
}

func (e *Emitter) writeHierarchy(b *strings.Builder, plan emit.Plan) []emit.Substitution {
	h := plan.Hierarchy
	typeName := e.TypeName(plan.Spec.ID)

	switch h.Role {
	case blueprint.RoleBase:
		b.WriteString(fmt.Sprintf("/** %s */\n", plan.Spec.Responsibility))
		b.WriteString(fmt.Sprintf("export class %s {\n", typeName))
		b.WriteString("  private initialized = false;\n\n")
		b.WriteString("  constructor(protected readonly name: string) {}\n\n")
		b.WriteString("  initialize(): void {\n    this.initialized = true;\n  }\n\n")
		b.WriteString("  protected requireInitialized(): void {\n")
		b.WriteString("    if (!this.initialized) {\n")
		b.WriteString("      throw new Error(`service ${this.name} not initialized`);\n    }\n  }\n}\n\n")
		return nil

	case blueprint.RoleMixin:
		// No multiple class inheritance; mixins become interfaces.
		b.WriteString(fmt.Sprintf("/** %s */\n", plan.Spec.Responsibility))
		b.WriteString(fmt.Sprintf("export interface %s {\n", typeName))
		b.WriteString("  record(key: string, value: string): void;\n")
		b.WriteString("  lookup(key: string): string | undefined;\n}\n\n")
		return []emit.Substitution{{
			ComponentID: plan.Spec.ID,
			Language:    e.Language(),
			Tag:         h.Tag,
			Mechanism:   "mixin rendered as implemented interface",
		}}

	case blueprint.RoleLeaf:
		extends := ""
		if len(h.Bases) > 0 {
			extends = " extends " + e.TypeName(h.Bases[0].ID)
		}
		implements := ""
		if len(h.Mixins) > 0 {
			names := make([]string, len(h.Mixins))
			for i, mixin := range h.Mixins {
				names[i] = e.TypeName(mixin.ID)
			}
			implements = " implements " + strings.Join(names, ", ")
		}
		b.WriteString(fmt.Sprintf("/** %s */\n", plan.Spec.Responsibility))
		b.WriteString(fmt.Sprintf("export class %s%s%s {\n", typeName, extends, implements))
		b.WriteString("  private readonly entries = new Map<string, string>();\n\n")
		b.WriteString("  constructor() {\n")
		b.WriteString(fmt.Sprintf("    super(\"%s\");\n  }\n\n", plan.Spec.Basename()))
		b.WriteString("  record(key: string, value: string): void {\n")
		b.WriteString("    this.entries.set(key, value);\n  }\n\n")
		b.WriteString("  lookup(key: string): string | undefined {\n")
		b.WriteString("    return this.entries.get(key);\n  }\n}\n\n")
		return []emit.Substitution{{
			ComponentID: plan.Spec.ID,
			Language:    e.Language(),
			Tag:         h.Tag,
			Mechanism:   "diamond rendered as extends plus implemented interfaces",
		}}
	}
	return nil
}

func (e *Emitter) writeCollisions(b *strings.Builder, plan emit.Plan) {
	for _, name := range plan.Collisions {
		ident := e.Identifier(name)
		b.WriteString(fmt.Sprintf("/** Check %s request parameters. */\n", plan.Spec.Basename()))
		b.WriteString(fmt.Sprintf("export function %s(request: Record<string, unknown>): void {\n", ident))
		b.WriteString("  if (Object.keys(request).length === 0) {\n")
		b.WriteString("    throw new Error(\"empty request\");\n  }\n")
		b.WriteString("  for (const field of [\"id\"]) {\n")
		b.WriteString("    if (!(field in request)) {\n")
		b.WriteString("      throw new Error(`missing field: ${field}`);\n    }\n  }\n}\n\n")
	}
}

func (e *Emitter) writeChain(b *strings.Builder, plan emit.Plan) {
	if plan.Chain == nil {
		return
	}
	step := plan.Chain
	ident := e.Identifier(step.Func)
	b.WriteString(fmt.Sprintf("/** %s */\n", plan.Spec.Responsibility))
	b.WriteString(fmt.Sprintf("export function %s(request: Record<string, boolean>): Record<string, boolean> {\n", ident))
	if step.Next != nil {
		b.WriteString(fmt.Sprintf("  const result = %s(request);\n", e.Identifier(step.Next.Func)))
		b.WriteString(fmt.Sprintf("  result[\"%s\"] = true;\n", step.Func))
		b.WriteString("  return result;\n}\n\n")
	} else {
		b.WriteString(fmt.Sprintf("  return { %s: true };\n}\n\n", step.Func))
	}
}

func (e *Emitter) writeFiller(b *strings.Builder, plan emit.Plan) {
	for _, op := range plan.FillerOps() {
		b.WriteString(fmt.Sprintf("function %s(limit: number): number {\n", e.Identifier(op)))
		b.WriteString("  let total = 0;\n")
		b.WriteString("  for (let i = 0; i < limit; i++) {\n    total += i;\n  }\n  return total;\n}\n\n")
	}
}
