// Package rustlang renders component specs as Rust source under webapp_rs/.
//
// Layout convention: src/<dotted path>.rs with crate-absolute use paths,
// plus lib.rs and per-directory mod.rs markers declaring the module tree.
// Inheritance roles render as traits plus impl blocks, Rust's nearest
// mechanism to class hierarchies; every inheritance tag is therefore a
// recorded substitution.
package rustlang

import (
	"fmt"
	"strings"

	"github.com/teranos/fixturegen/blueprint"
	"github.com/teranos/fixturegen/emit"
	"github.com/teranos/fixturegen/emit/emitutil"
)

// Emitter renders the Rust corpus.
type Emitter struct{}

// New returns the Rust emitter.
func New() *Emitter { return &Emitter{} }

func (e *Emitter) Language() string { return "rust" }

func (e *Emitter) Root() string { return "webapp_rs" }

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
	return "fn " + e.Identifier(name) + "("
}

// PathFor maps "services.payment_processor" to
// "src/services/payment_processor.rs".
func (e *Emitter) PathFor(spec blueprint.ComponentSpec) string {
	return "src/" + strings.Join(spec.Segments(), "/") + ".rs"
}

// cratePath is the crate-absolute module path of a spec.
func cratePath(spec blueprint.ComponentSpec) string {
	return "crate::" + strings.Join(spec.Segments(), "::")
}

func (e *Emitter) Render(reg *blueprint.Registry, spec blueprint.ComponentSpec) (emit.Rendering, error) {
	plan := emit.BuildPlan(reg, spec)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("//! %s\n\n", spec.Responsibility))

	e.writeUses(&b, plan)
	e.writeProvides(&b, plan)

	var subs []emit.Substitution
	if plan.Hierarchy != nil {
		subs = append(subs, e.writeHierarchy(&b, plan)...)
	}
	e.writeCollisions(&b, plan)
	e.writeChain(&b, plan)
	e.writeFanoutHelper(&b, plan)
	e.writeFiller(&b, plan)

	files := []emit.RenderedFile{{
		Path:     e.PathFor(spec),
		Language: e.Language(),
		Content:  b.String(),
		SpecID:   spec.ID,
		Tags:     spec.Tags,
	}}
	files = append(files, e.moduleMarkers(reg, spec)...)

	return emit.Rendering{Files: files, Substitutions: subs}, nil
}

// moduleMarkers emits lib.rs plus a mod.rs for every ancestor directory of
// the component's module, declaring the module tree the crate-absolute use
// paths depend on. Marker content is derived from the whole registry, so
// every emission of the same path is byte-identical; markers carry no spec
// id and repeats skip idempotently.
func (e *Emitter) moduleMarkers(reg *blueprint.Registry, spec blueprint.ComponentSpec) []emit.RenderedFile {
	segs := spec.Segments()
	out := []emit.RenderedFile{{
		Path:     "src/lib.rs",
		Language: e.Language(),
		Content:  e.markerContent(reg, nil),
	}}
	for i := 1; i < len(segs); i++ {
		out = append(out, emit.RenderedFile{
			Path:     "src/" + strings.Join(segs[:i], "/") + "/mod.rs",
			Language: e.Language(),
			Content:  e.markerContent(reg, segs[:i]),
		})
	}
	return out
}

// markerContent lists the direct children of dir as pub mod declarations,
// in registry insertion order. A nil dir lists the crate's top-level
// modules for lib.rs.
func (e *Emitter) markerContent(reg *blueprint.Registry, dir []string) string {
	seen := map[string]bool{}
	var b strings.Builder
	for _, spec := range reg.All() {
		segs := spec.Segments()
		if len(segs) <= len(dir) || !underDir(segs, dir) {
			continue
		}
		child := segs[len(dir)]
		if !seen[child] {
			seen[child] = true
			b.WriteString("pub mod " + child + ";\n")
		}
	}
	return b.String()
}

func underDir(segs, dir []string) bool {
	for i, d := range dir {
		if segs[i] != d {
			return false
		}
	}
	return true
}

func (e *Emitter) writeUses(b *strings.Builder, plan emit.Plan) {
	wrote := false
	add := func(line string) {
		b.WriteString(line + "\n")
		wrote = true
	}

	for _, ref := range plan.Fanouts {
		if ref.HasProvider {
			add(fmt.Sprintf("use %s::{%s, Logger};", cratePath(ref.Provider), e.Identifier(ref.Tag.UtilityID)))
		}
	}
	if plan.Chain != nil && plan.Chain.Next != nil {
		add(fmt.Sprintf("use %s::%s;", cratePath(plan.Chain.Next.Spec), e.Identifier(plan.Chain.Next.Func)))
	}
	if plan.Hierarchy != nil {
		for _, base := range plan.Hierarchy.Bases {
			add(fmt.Sprintf("use %s::%s;", cratePath(base), e.TypeName(base.ID)))
		}
		for _, mixin := range plan.Hierarchy.Mixins {
			add(fmt.Sprintf("use %s::%s;", cratePath(mixin), e.TypeName(mixin.ID)))
		}
	}
	if wrote {
		b.WriteString("\n")
	}
}

func (e *Emitter) writeProvides(b *strings.Builder, plan emit.Plan) {
	for _, accessor := range plan.Defines {
		b.WriteString("/// Minimal leveled logger shared across the corpus.\n")
		b.WriteString("pub struct Logger {\n    name: String,\n}\n\n")
		b.WriteString("impl Logger {\n")
		b.WriteString("    pub fn info(&self, msg: &str) {\n")
		b.WriteString("        println!(\"[INFO] {}: {}\", self.name, msg);\n    }\n\n")
		b.WriteString("    pub fn error(&self, msg: &str) {\n")
		b.WriteString("        println!(\"[ERROR] {}: {}\", self.name, msg);\n    }\n}\n\n")
		b.WriteString("/// Create a new logger instance for the given component name.\n")
		b.WriteString(fmt.Sprintf("pub fn %s(name: &str) -> Logger {\n", e.Identifier(accessor)))
		b.WriteString("    Logger { name: name.to_string() }\n}\n\n")
	}
}

func (e *Emitter) writeHierarchy(b *strings.Builder, plan emit.Plan) []emit.Substitution {
	h := plan.Hierarchy
	typeName := e.TypeName(plan.Spec.ID)

	switch h.Role {
	case blueprint.RoleBase:
		b.WriteString(fmt.Sprintf("/// %s\n", plan.Spec.Responsibility))
		b.WriteString(fmt.Sprintf("pub trait %s {\n", typeName))
		b.WriteString("    fn name(&self) -> &str;\n\n")
		b.WriteString("    fn require_initialized(&self) -> Result<(), String> {\n")
		b.WriteString("        Ok(())\n    }\n}\n\n")
		return []emit.Substitution{{
			ComponentID: plan.Spec.ID,
			Language:    e.Language(),
			Tag:         h.Tag,
			Mechanism:   "base class rendered as trait with default methods",
		}}

	case blueprint.RoleMixin:
		supertrait := ""
		if len(h.Bases) > 0 {
			names := make([]string, len(h.Bases))
			for i, base := range h.Bases {
				names[i] = e.TypeName(base.ID)
			}
			supertrait = ": " + strings.Join(names, " + ")
		}
		b.WriteString(fmt.Sprintf("/// %s\n", plan.Spec.Responsibility))
		b.WriteString(fmt.Sprintf("pub trait %s%s {\n", typeName, supertrait))
		b.WriteString("    fn record(&mut self, key: &str, value: &str);\n")
		b.WriteString("    fn lookup(&self, key: &str) -> Option<String>;\n}\n\n")
		return []emit.Substitution{{
			ComponentID: plan.Spec.ID,
			Language:    e.Language(),
			Tag:         h.Tag,
			Mechanism:   "mixin rendered as supertrait-bounded trait",
		}}

	case blueprint.RoleLeaf:
		b.WriteString(fmt.Sprintf("/// %s\n", plan.Spec.Responsibility))
		b.WriteString(fmt.Sprintf("pub struct %s {\n", typeName))
		b.WriteString("    name: String,\n    entries: std::collections::HashMap<String, String>,\n}\n\n")
		for _, base := range h.Bases {
			baseName := e.TypeName(base.ID)
			b.WriteString(fmt.Sprintf("impl %s for %s {\n", baseName, typeName))
			b.WriteString("    fn name(&self) -> &str {\n        &self.name\n    }\n}\n\n")
		}
		for _, mixin := range h.Mixins {
			mixinName := e.TypeName(mixin.ID)
			b.WriteString(fmt.Sprintf("impl %s for %s {\n", mixinName, typeName))
			b.WriteString("    fn record(&mut self, key: &str, value: &str) {\n")
			b.WriteString("        self.entries.insert(key.to_string(), value.to_string());\n    }\n\n")
			b.WriteString("    fn lookup(&self, key: &str) -> Option<String> {\n")
			b.WriteString("        self.entries.get(key).cloned()\n    }\n}\n\n")
		}
		return []emit.Substitution{{
			ComponentID: plan.Spec.ID,
			Language:    e.Language(),
			Tag:         h.Tag,
			Mechanism:   "diamond rendered as composed trait impls",
		}}
	}
	return nil
}

func (e *Emitter) writeCollisions(b *strings.Builder, plan emit.Plan) {
	for _, name := range plan.Collisions {
		b.WriteString(fmt.Sprintf("/// Check %s request parameters.\n", plan.Spec.Basename()))
		b.WriteString(fmt.Sprintf("pub fn %s(request: &std::collections::HashMap<String, String>) -> Result<(), String> {\n", e.Identifier(name)))
		b.WriteString("    if request.is_empty() {\n")
		b.WriteString("        return Err(\"empty request\".to_string());\n    }\n")
		b.WriteString("    for field in [\"id\"] {\n")
		b.WriteString("        if !request.contains_key(field) {\n")
		b.WriteString("            return Err(format!(\"missing field: {}\", field));\n        }\n    }\n")
		b.WriteString("    Ok(())\n}\n\n")
	}
}

func (e *Emitter) writeChain(b *strings.Builder, plan emit.Plan) {
	if plan.Chain == nil {
		return
	}
	step := plan.Chain
	b.WriteString(fmt.Sprintf("/// %s\n", plan.Spec.Responsibility))
	b.WriteString(fmt.Sprintf("pub fn %s(request: &mut std::collections::HashMap<String, bool>) -> Result<(), String> {\n", e.Identifier(step.Func)))
	if step.Next != nil {
		b.WriteString(fmt.Sprintf("    %s(request)?;\n", e.Identifier(step.Next.Func)))
		b.WriteString(fmt.Sprintf("    request.insert(\"%s\".to_string(), true);\n", step.Func))
		b.WriteString("    Ok(())\n}\n\n")
	} else {
		b.WriteString(fmt.Sprintf("    request.insert(\"%s\".to_string(), true);\n", step.Func))
		b.WriteString("    Ok(())\n}\n\n")
	}
}

// writeFanoutHelper gives fanout-tagged files a function that exercises the
// imported accessor, since Rust has no module-level statements.
func (e *Emitter) writeFanoutHelper(b *strings.Builder, plan emit.Plan) {
	for _, ref := range plan.Fanouts {
		b.WriteString(fmt.Sprintf("fn component_logger() -> Logger {\n    %s(\"%s\")\n}\n\n",
			e.Identifier(ref.Tag.UtilityID), plan.Spec.ID))
	}
}

func (e *Emitter) writeFiller(b *strings.Builder, plan emit.Plan) {
	for _, op := range plan.FillerOps() {
		b.WriteString(fmt.Sprintf("fn %s(limit: u64) -> u64 {\n", op))
		b.WriteString("    (0..limit).sum()\n}\n\n")
	}
}
