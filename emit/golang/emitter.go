// Package golang renders component specs as Go source under webapp_go/.
//
// Layout convention: every component maps to internal/<dotted path>.go with
// the enclosing directory as package name, mirroring a typical Go service
// repo. Imports use the corpus-local "webapp/internal/..." form.
package golang

import (
	"fmt"
	"path"
	"strings"

	"github.com/teranos/fixturegen/blueprint"
	"github.com/teranos/fixturegen/emit"
	"github.com/teranos/fixturegen/emit/emitutil"
)

// Emitter renders the Go corpus.
type Emitter struct{}

// New returns the Go emitter.
func New() *Emitter { return &Emitter{} }

func (e *Emitter) Language() string { return "go" }

func (e *Emitter) Root() string { return "webapp_go" }

// Identifier spells a declared snake_case name the Go way: exported
// PascalCase, so cross-package references stay legal-looking.
func (e *Emitter) Identifier(name string) string {
	return emitutil.ToPascalCase(name)
}

func (e *Emitter) TypeName(id string) string {
	spec := blueprint.ComponentSpec{ID: id}
	return emitutil.ToPascalCase(spec.Basename())
}

func (e *Emitter) DefinitionPattern(name string) string {
	return "func " + e.Identifier(name) + "("
}

// PathFor maps "services.payment_processor" to
// "internal/services/payment_processor.go".
func (e *Emitter) PathFor(spec blueprint.ComponentSpec) string {
	return "internal/" + strings.Join(spec.Segments(), "/") + ".go"
}

func (e *Emitter) packageName(spec blueprint.ComponentSpec) string {
	segs := spec.Segments()
	if len(segs) < 2 {
		return "webapp"
	}
	return segs[len(segs)-2]
}

// dirOf returns the import directory of a spec, e.g. "services" for
// "services.payment_processor".
func dirOf(spec blueprint.ComponentSpec) string {
	segs := spec.Segments()
	return path.Join(segs[:len(segs)-1]...)
}

func (e *Emitter) Render(reg *blueprint.Registry, spec blueprint.ComponentSpec) (emit.Rendering, error) {
	plan := emit.BuildPlan(reg, spec)
	ownDir := dirOf(spec)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("package %s\n\n", e.packageName(spec)))

	imports := e.collectImports(plan, ownDir)
	if len(imports) > 0 {
		b.WriteString("import (\n\t\"fmt\"\n\n")
		for _, imp := range imports {
			b.WriteString(fmt.Sprintf("\t\"%s\"\n", imp))
		}
		b.WriteString(")\n\n")
	} else {
		b.WriteString("import \"fmt\"\n\n")
	}

	e.writeFanout(&b, plan, ownDir)
	e.writeProvides(&b, plan)

	var subs []emit.Substitution
	if plan.Hierarchy != nil {
		subs = append(subs, e.writeHierarchy(&b, plan)...)
	}
	e.writeCollisions(&b, plan)
	e.writeChain(&b, plan, ownDir)
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

// collectImports gathers corpus-internal import paths for every
// cross-directory reference the plan requires.
func (e *Emitter) collectImports(plan emit.Plan, ownDir string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(target blueprint.ComponentSpec) {
		dir := dirOf(target)
		if dir == ownDir {
			return
		}
		imp := "webapp/internal/" + dir
		if !seen[imp] {
			seen[imp] = true
			out = append(out, imp)
		}
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
	return out
}

// qualify renders a reference to an identifier defined by target, with a
// package selector when target lives in another directory.
func (e *Emitter) qualify(target blueprint.ComponentSpec, ident, ownDir string) string {
	if dirOf(target) == ownDir {
		return ident
	}
	segs := target.Segments()
	return segs[len(segs)-2] + "." + ident
}

func (e *Emitter) writeFanout(b *strings.Builder, plan emit.Plan, ownDir string) {
	// Logger vars carry the component basename: files in one package share
	// a namespace.
	for _, ref := range plan.Fanouts {
		accessor := e.Identifier(ref.Tag.UtilityID)
		call := accessor
		if ref.HasProvider {
			call = e.qualify(ref.Provider, accessor, ownDir)
		}
		varName := emitutil.ToCamelCase(plan.Spec.Basename() + "_log")
		b.WriteString(fmt.Sprintf("var %s = %s(%q)\n\n", varName, call, plan.Spec.ID))
	}
}

func (e *Emitter) writeProvides(b *strings.Builder, plan emit.Plan) {
	for _, accessor := range plan.Defines {
		name := e.Identifier(accessor)
		b.WriteString("// Logger is a minimal leveled logger shared across the corpus.\n")
		b.WriteString("type Logger struct {\n\tname string\n}\n\n")
		b.WriteString("func (l *Logger) Info(msg string, args ...interface{}) {\n")
		b.WriteString("\tfmt.Printf(\"[INFO] %s: %s\\n\", l.name, fmt.Sprintf(msg, args...))\n}\n\n")
		b.WriteString("func (l *Logger) Error(msg string, args ...interface{}) {\n")
		b.WriteString("\tfmt.Printf(\"[ERROR] %s: %s\\n\", l.name, fmt.Sprintf(msg, args...))\n}\n\n")
		b.WriteString(fmt.Sprintf("// %s creates a new Logger instance for the given component name.\n", name))
		b.WriteString(fmt.Sprintf("func %s(name string) *Logger {\n\treturn &Logger{name: name}\n}\n\n", name))
	}
}

func (e *Emitter) writeHierarchy(b *strings.Builder, plan emit.Plan) []emit.Substitution {
	h := plan.Hierarchy
	typeName := e.TypeName(plan.Spec.ID)

	switch h.Role {
	case blueprint.RoleBase:
		b.WriteString(fmt.Sprintf("// %s %s\n", typeName, plan.Spec.Responsibility))
		b.WriteString(fmt.Sprintf("type %s struct {\n\tname        string\n\tinitialized bool\n}\n\n", typeName))
		b.WriteString(fmt.Sprintf("func (s *%s) Initialize() {\n\ts.initialized = true\n}\n\n", typeName))
		b.WriteString(fmt.Sprintf("func (s *%s) RequireInitialized() error {\n", typeName))
		b.WriteString("\tif !s.initialized {\n\t\treturn fmt.Errorf(\"service %s not initialized\", s.name)\n\t}\n\treturn nil\n}\n\n")
		return nil

	case blueprint.RoleMixin:
		b.WriteString(fmt.Sprintf("// %s %s\n", typeName, plan.Spec.Responsibility))
		b.WriteString(fmt.Sprintf("type %s struct {\n", typeName))
		for _, base := range h.Bases {
			b.WriteString(fmt.Sprintf("\t%s\n", e.TypeName(base.ID)))
		}
		b.WriteString("\tentries map[string]string\n}\n\n")
		b.WriteString(fmt.Sprintf("func (s *%s) Record(key, value string) {\n", typeName))
		b.WriteString("\tif s.entries == nil {\n\t\ts.entries = make(map[string]string)\n\t}\n\ts.entries[key] = value\n}\n\n")
		b.WriteString(fmt.Sprintf("func (s *%s) Lookup(key string) (string, bool) {\n", typeName))
		b.WriteString("\tvalue, ok := s.entries[key]\n\treturn value, ok\n}\n\n")
		return []emit.Substitution{{
			ComponentID: plan.Spec.ID,
			Language:    e.Language(),
			Tag:         h.Tag,
			Mechanism:   "struct embedding of the hierarchy base",
		}}

	case blueprint.RoleLeaf:
		b.WriteString(fmt.Sprintf("// %s %s\n", typeName, plan.Spec.Responsibility))
		b.WriteString(fmt.Sprintf("type %s struct {\n", typeName))
		for _, mixin := range h.Mixins {
			b.WriteString(fmt.Sprintf("\t%s\n", e.TypeName(mixin.ID)))
		}
		if len(h.Mixins) == 0 {
			for _, base := range h.Bases {
				b.WriteString(fmt.Sprintf("\t%s\n", e.TypeName(base.ID)))
			}
		}
		b.WriteString("\tpending []string\n}\n\n")
		b.WriteString(fmt.Sprintf("func New%s() *%s {\n", typeName, typeName))
		b.WriteString(fmt.Sprintf("\tp := &%s{}\n", typeName))
		for _, base := range h.Bases {
			baseName := e.TypeName(base.ID)
			for _, mixin := range h.Mixins {
				b.WriteString(fmt.Sprintf("\tp.%s.%s = %s{name: %q}\n",
					e.TypeName(mixin.ID), baseName, baseName, plan.Spec.Basename()))
			}
		}
		b.WriteString("\treturn p\n}\n\n")
		return []emit.Substitution{{
			ComponentID: plan.Spec.ID,
			Language:    e.Language(),
			Tag:         h.Tag,
			Mechanism:   "diamond rendered as multi-struct embedding",
		}}
	}
	return nil
}

func (e *Emitter) writeCollisions(b *strings.Builder, plan emit.Plan) {
	for _, name := range plan.Collisions {
		ident := e.Identifier(name)
		b.WriteString(fmt.Sprintf("// %s checks %s request parameters.\n", ident, plan.Spec.Basename()))
		b.WriteString(fmt.Sprintf("func %s(request map[string]interface{}) error {\n", ident))
		b.WriteString("\tif len(request) == 0 {\n\t\treturn fmt.Errorf(\"empty request\")\n\t}\n")
		b.WriteString("\tfor _, field := range []string{\"id\"} {\n")
		b.WriteString("\t\tif _, ok := request[field]; !ok {\n")
		b.WriteString("\t\t\treturn fmt.Errorf(\"missing field: %s\", field)\n\t\t}\n\t}\n")
		b.WriteString("\treturn nil\n}\n\n")
	}
}

func (e *Emitter) writeChain(b *strings.Builder, plan emit.Plan, ownDir string) {
	if plan.Chain == nil {
		return
	}
	step := plan.Chain
	ident := e.Identifier(step.Func)

	b.WriteString(fmt.Sprintf("// %s %s\n", ident, plan.Spec.Responsibility))
	b.WriteString(fmt.Sprintf("func %s(request map[string]interface{}) (map[string]interface{}, error) {\n", ident))
	if step.Next != nil {
		call := e.qualify(step.Next.Spec, e.Identifier(step.Next.Func), ownDir)
		b.WriteString(fmt.Sprintf("\tresult, err := %s(request)\n", call))
		b.WriteString("\tif err != nil {\n\t\treturn nil, fmt.Errorf(\"" + step.Func + ": %w\", err)\n\t}\n")
		b.WriteString(fmt.Sprintf("\tresult[%q] = true\n", step.Func))
		b.WriteString("\treturn result, nil\n}\n\n")
	} else {
		b.WriteString(fmt.Sprintf("\treturn map[string]interface{}{%q: true}, nil\n}\n\n", step.Func))
	}
}

func (e *Emitter) writeFiller(b *strings.Builder, plan emit.Plan) {
	// Filler names carry the component basename: files in one package share
	// a namespace, and the padding helpers must not collide across files.
	for _, op := range plan.FillerOps() {
		name := emitutil.ToCamelCase(plan.Spec.Basename() + "_" + op)
		b.WriteString(fmt.Sprintf("func %s(limit int) int {\n", name))
		b.WriteString("\ttotal := 0\n\tfor i := 0; i < limit; i++ {\n\t\ttotal += i\n\t}\n\treturn total\n}\n\n")
	}
}
