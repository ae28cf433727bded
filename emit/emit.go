// Package emit defines the language emitter contract and the rendered-file
// model shared by every per-language subpackage.
//
// An emitter turns one blueprint.ComponentSpec into source text for its
// target language. Emitters are independent of each other: each is total
// over the full registry and never consults another language's output.
package emit

import (
	"github.com/teranos/fixturegen/blueprint"
)

// RenderedFile is one file produced by an emitter.
type RenderedFile struct {
	// Path is relative to the language root, e.g. "internal/auth/service.go".
	Path string

	// Language matches the producing emitter's Language().
	Language string

	// Content is the full file text.
	Content string

	// SpecID names the component the file was rendered from. Empty for
	// structural marker files (__init__.py, mod.rs).
	SpecID string

	// Tags are the structural tags the file is expected to exhibit,
	// derived from the spec for later validation.
	Tags []blueprint.Tag
}

// Substitution records a structural tag realized through a fallback
// mechanism because the target paradigm cannot express it directly, e.g.
// diamond inheritance rendered as trait composition in Rust. Recording the
// substitution keeps the validator honest: the tag is still present, just
// spelled differently.
type Substitution struct {
	ComponentID string
	Language    string
	Tag         blueprint.Tag
	Mechanism   string
}

// Rendering is the full output of one Render call.
type Rendering struct {
	Files         []RenderedFile
	Substitutions []Substitution
}

// Namer exposes a language's identifier conventions. The validator uses it
// to re-derive canonical spellings without knowing any language specifics.
type Namer interface {
	// Identifier returns the language's spelling of a declared snake_case
	// identifier, e.g. "get_logger" -> "GetLogger" in Go.
	Identifier(name string) string

	// TypeName returns the class/struct/trait name for a component id.
	TypeName(id string) string

	// DefinitionPattern returns the text that marks a definition of the
	// identifier, e.g. "func Validate(" in Go or "def validate(" in Python.
	// The validator counts definition sites with this, so reference noise
	// does not inflate collision counts.
	DefinitionPattern(name string) string
}

// Emitter renders component specs for one target language.
type Emitter interface {
	Namer

	// Language is the stable lowercase language key, e.g. "go", "ruby".
	Language() string

	// Root is the corpus root directory name, e.g. "webapp_go".
	Root() string

	// PathFor maps a spec to its primary file path, relative to Root().
	// The mapping is a pure function of the spec id.
	PathFor(spec blueprint.ComponentSpec) string

	// Render produces the file(s) for one spec. The registry provides
	// cross-component context (chain successors, hierarchy members).
	Render(reg *blueprint.Registry, spec blueprint.ComponentSpec) (Rendering, error)
}
