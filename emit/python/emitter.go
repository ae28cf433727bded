// Package python renders component specs as Python source under webapp_py/.
//
// Python is the one target whose paradigm covers the full tag vocabulary
// directly: diamond inheritance renders as real multiple inheritance, so no
// substitutions are ever recorded here.
package python

import (
	"fmt"
	"strings"

	"github.com/teranos/fixturegen/blueprint"
	"github.com/teranos/fixturegen/emit"
	"github.com/teranos/fixturegen/emit/emitutil"
)

// Emitter renders the Python corpus.
type Emitter struct{}

// New returns the Python emitter.
func New() *Emitter { return &Emitter{} }

func (e *Emitter) Language() string { return "python" }

func (e *Emitter) Root() string { return "webapp_py" }

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
// "services/payment_processor.py".
func (e *Emitter) PathFor(spec blueprint.ComponentSpec) string {
	return strings.Join(spec.Segments(), "/") + ".py"
}

// modulePath is the corpus-absolute dotted import path of a spec.
func modulePath(spec blueprint.ComponentSpec) string {
	return spec.ID
}

func (e *Emitter) Render(reg *blueprint.Registry, spec blueprint.ComponentSpec) (emit.Rendering, error) {
	plan := emit.BuildPlan(reg, spec)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("\"\"\"%s\"\"\"\n\n", spec.Responsibility))

	e.writeImports(&b, plan)
	e.writeFanout(&b, plan)
	e.writeProvides(&b, plan)
	e.writeHierarchy(&b, plan)
	e.writeCollisions(&b, plan)
	e.writeChain(&b, plan)
	e.writeFiller(&b, plan)

	files := []emit.RenderedFile{{
		Path:     e.PathFor(spec),
		Language: e.Language(),
		Content:  b.String(),
		SpecID:   spec.ID,
		Tags:     spec.Tags,
	}}
	files = append(files, e.packageMarkers(spec)...)

	return emit.Rendering{Files: files}, nil
}

// packageMarkers emits an __init__.py for every ancestor package of the
// component's module. Markers carry no spec id; the writer treats repeated
// marker paths as ordinary idempotent skips since their content is a pure
// function of the directory.
func (e *Emitter) packageMarkers(spec blueprint.ComponentSpec) []emit.RenderedFile {
	segs := spec.Segments()
	var out []emit.RenderedFile
	for i := 1; i < len(segs); i++ {
		pkg := strings.Join(segs[:i], ".")
		out = append(out, emit.RenderedFile{
			Path:     strings.Join(segs[:i], "/") + "/__init__.py",
			Language: e.Language(),
			Content:  fmt.Sprintf("\"\"\"Package %s.\"\"\"\n", pkg),
		})
	}
	return out
}

func (e *Emitter) writeImports(b *strings.Builder, plan emit.Plan) {
	wrote := false
	add := func(line string) {
		b.WriteString(line + "\n")
		wrote = true
	}

	for _, ref := range plan.Fanouts {
		if ref.HasProvider {
			add(fmt.Sprintf("from %s import %s", modulePath(ref.Provider), e.Identifier(ref.Tag.UtilityID)))
		}
	}
	if plan.Chain != nil && plan.Chain.Next != nil {
		add(fmt.Sprintf("from %s import %s", modulePath(plan.Chain.Next.Spec), e.Identifier(plan.Chain.Next.Func)))
	}
	if plan.Hierarchy != nil {
		for _, base := range plan.Hierarchy.Bases {
			add(fmt.Sprintf("from %s import %s", modulePath(base), e.TypeName(base.ID)))
		}
		for _, mixin := range plan.Hierarchy.Mixins {
			add(fmt.Sprintf("from %s import %s", modulePath(mixin), e.TypeName(mixin.ID)))
		}
	}
	if wrote {
		b.WriteString("\n")
	}
}

func (e *Emitter) writeFanout(b *strings.Builder, plan emit.Plan) {
	for _, ref := range plan.Fanouts {
		b.WriteString(fmt.Sprintf("_logger = %s(%q)\n\n", e.Identifier(ref.Tag.UtilityID), plan.Spec.ID))
	}
}

func (e *Emitter) writeProvides(b *strings.Builder, plan emit.Plan) {
	for _, accessor := range plan.Defines {
		b.WriteString("class Logger:\n")
		b.WriteString("    \"\"\"Minimal leveled logger shared across the corpus.\"\"\"\n\n")
		b.WriteString("    def __init__(self, name):\n        self.name = name\n\n")
		b.WriteString("    def info(self, msg, *args):\n")
		b.WriteString("        print(f\"[INFO] {self.name}: {msg % args if args else msg}\")\n\n")
		b.WriteString("    def error(self, msg, *args):\n")
		b.WriteString("        print(f\"[ERROR] {self.name}: {msg % args if args else msg}\")\n\n\n")
		b.WriteString(fmt.Sprintf("def %s(name):\n", e.Identifier(accessor)))
		b.WriteString("    \"\"\"Create a new Logger instance for the given component name.\"\"\"\n")
		b.WriteString("    return Logger(name)\n\n\n")
	}
}

func (e *Emitter) writeHierarchy(b *strings.Builder, plan emit.Plan) {
	if plan.Hierarchy == nil {
		return
	}
	h := plan.Hierarchy
	typeName := e.TypeName(plan.Spec.ID)

	switch h.Role {
	case blueprint.RoleBase:
		b.WriteString(fmt.Sprintf("class %s:\n", typeName))
		b.WriteString(fmt.Sprintf("    \"\"\"%s\"\"\"\n\n", plan.Spec.Responsibility))
		b.WriteString("    def __init__(self, name):\n")
		b.WriteString("        self.name = name\n        self._initialized = False\n\n")
		b.WriteString("    def initialize(self):\n        self._initialized = True\n\n")
		b.WriteString("    def _require_initialized(self):\n")
		b.WriteString("        if not self._initialized:\n")
		b.WriteString("            raise RuntimeError(f\"service {self.name} not initialized\")\n\n\n")

	case blueprint.RoleMixin:
		parents := "object"
		if len(h.Bases) > 0 {
			names := make([]string, len(h.Bases))
			for i, base := range h.Bases {
				names[i] = e.TypeName(base.ID)
			}
			parents = strings.Join(names, ", ")
		}
		b.WriteString(fmt.Sprintf("class %s(%s):\n", typeName, parents))
		b.WriteString(fmt.Sprintf("    \"\"\"%s\"\"\"\n\n", plan.Spec.Responsibility))
		b.WriteString("    def record(self, key, value):\n")
		b.WriteString("        entries = getattr(self, \"_entries\", None)\n")
		b.WriteString("        if entries is None:\n")
		b.WriteString("            entries = {}\n            self._entries = entries\n")
		b.WriteString("        entries[key] = value\n\n")
		b.WriteString("    def lookup(self, key):\n")
		b.WriteString("        return getattr(self, \"_entries\", {}).get(key)\n\n\n")

	case blueprint.RoleLeaf:
		// Diamond: every mixin shares the hierarchy base, MRO resolves it.
		names := make([]string, 0, len(h.Mixins))
		for _, mixin := range h.Mixins {
			names = append(names, e.TypeName(mixin.ID))
		}
		if len(names) == 0 {
			for _, base := range h.Bases {
				names = append(names, e.TypeName(base.ID))
			}
		}
		b.WriteString(fmt.Sprintf("class %s(%s):\n", typeName, strings.Join(names, ", ")))
		b.WriteString(fmt.Sprintf("    \"\"\"%s\n\n", plan.Spec.Responsibility))
		if len(h.Bases) > 0 {
			baseNames := make([]string, len(h.Bases))
			for i, base := range h.Bases {
				baseNames[i] = e.TypeName(base.ID)
			}
			b.WriteString(fmt.Sprintf("    Diamond inheritance: every parent extends %s.\n", strings.Join(baseNames, ", ")))
		}
		b.WriteString("    \"\"\"\n\n")
		b.WriteString("    def __init__(self):\n")
		b.WriteString(fmt.Sprintf("        super().__init__(%q)\n", plan.Spec.Basename()))
		b.WriteString("        self._pending = []\n\n")
		b.WriteString("    def enqueue(self, item):\n")
		b.WriteString("        self._require_initialized()\n")
		b.WriteString("        self._pending.append(item)\n\n\n")
	}
}

func (e *Emitter) writeCollisions(b *strings.Builder, plan emit.Plan) {
	for _, name := range plan.Collisions {
		b.WriteString(fmt.Sprintf("def %s(request):\n", e.Identifier(name)))
		b.WriteString(fmt.Sprintf("    \"\"\"Check %s request parameters.\"\"\"\n", plan.Spec.Basename()))
		b.WriteString("    if not request:\n")
		b.WriteString("        raise ValueError(\"empty request\")\n")
		b.WriteString("    for field in (\"id\",):\n")
		b.WriteString("        if field not in request:\n")
		b.WriteString("            raise ValueError(f\"missing field: {field}\")\n")
		b.WriteString("    return request\n\n\n")
	}
}

func (e *Emitter) writeChain(b *strings.Builder, plan emit.Plan) {
	if plan.Chain == nil {
		return
	}
	step := plan.Chain
	b.WriteString(fmt.Sprintf("def %s(request):\n", e.Identifier(step.Func)))
	b.WriteString(fmt.Sprintf("    \"\"\"%s\"\"\"\n", plan.Spec.Responsibility))
	if step.Next != nil {
		b.WriteString(fmt.Sprintf("    result = %s(request)\n", e.Identifier(step.Next.Func)))
		b.WriteString(fmt.Sprintf("    result[%q] = True\n", step.Func))
		b.WriteString("    return result\n\n\n")
	} else {
		b.WriteString(fmt.Sprintf("    return {%q: True}\n\n\n", step.Func))
	}
}

func (e *Emitter) writeFiller(b *strings.Builder, plan emit.Plan) {
	for _, op := range plan.FillerOps() {
		b.WriteString(fmt.Sprintf("def _%s(limit):\n", op))
		b.WriteString("    total = 0\n")
		b.WriteString("    for i in range(limit):\n        total += i\n")
		b.WriteString("    return total\n\n\n")
	}
}
