// Package verify re-derives declared structural properties from rendered
// corpus text and reports mismatches.
//
// Checks are textual and heuristic: no parsing, no ASTs. For a synthetic
// corpus whose identifiers are generated, substring and definition-pattern
// matching is a deliberate precision tradeoff: the point is catching silent
// regressions in the generator, not analyzing arbitrary code.
package verify

import (
	"fmt"
	"strings"

	"github.com/teranos/fixturegen/blueprint"
	"github.com/teranos/fixturegen/emit"
)

// Check is the outcome of validating one declared tag group.
type Check struct {
	Tag      blueprint.Tag `yaml:"-" json:"-"`
	Label    string        `yaml:"tag" json:"tag"`
	Expected int           `yaml:"expected" json:"expected"`
	Observed int           `yaml:"observed" json:"observed"`
	Passed   bool          `yaml:"passed" json:"passed"`
	Detail   string        `yaml:"detail,omitempty" json:"detail,omitempty"`
}

// Report is the validation result for one language's corpus. It is data,
// consumed by the caller; validation never fails with an error.
type Report struct {
	Language string  `yaml:"language" json:"language"`
	Checks   []Check `yaml:"checks" json:"checks"`
}

// Passed reports whether every check held.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Failures returns the failed checks.
func (r *Report) Failures() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

// Validator re-derives structural invariants for one language.
type Validator struct {
	namer    emit.Namer
	language string
	minFanIn int
}

// NewValidator builds a validator using the language's naming conventions.
// minFanIn is the corpus-wide floor for collision groups.
func NewValidator(language string, namer emit.Namer, minFanIn int) *Validator {
	return &Validator{namer: namer, language: language, minFanIn: minFanIn}
}

// Validate checks every tag group declared in the registry against the
// rendered files.
func (v *Validator) Validate(rendered []emit.RenderedFile, reg *blueprint.Registry) *Report {
	report := &Report{Language: v.language}

	bySpec := make(map[string]string)
	for _, f := range rendered {
		if f.SpecID != "" {
			bySpec[f.SpecID] += f.Content
		}
	}

	for _, group := range reg.DistinctGroups() {
		var check Check
		switch group.Kind {
		case blueprint.KindCollision:
			check = v.checkCollision(group, rendered, reg)
		case blueprint.KindCallChain:
			check = v.checkChain(group, bySpec, reg)
		case blueprint.KindInheritance:
			check = v.checkInheritance(group, bySpec, reg)
		case blueprint.KindFanout:
			check = v.checkFanout(group, rendered, reg)
		}
		check.Tag = group
		check.Label = group.String()
		report.Checks = append(report.Checks, check)
	}

	return report
}

// checkCollision counts definition sites of the group identifier. The
// definition pattern (not a bare substring) keeps call-site references from
// inflating the count.
func (v *Validator) checkCollision(group blueprint.Tag, rendered []emit.RenderedFile, reg *blueprint.Registry) Check {
	expected := len(reg.FindByTag(func(t blueprint.Tag) bool {
		return t.Kind == blueprint.KindCollision && t.Name == group.Name
	}))

	pattern := v.namer.DefinitionPattern(group.Name)
	observed := 0
	for _, f := range rendered {
		if strings.Contains(f.Content, pattern) {
			observed++
		}
	}

	check := Check{Expected: expected, Observed: observed}
	switch {
	case observed != expected:
		check.Detail = fmt.Sprintf("%d files define %q, %d declared", observed, group.Name, expected)
	case expected < v.minFanIn:
		check.Detail = fmt.Sprintf("collision group %q spans %d files, below fan-in floor %d", group.Name, expected, v.minFanIn)
	default:
		check.Passed = true
	}
	return check
}

// checkChain walks the chain from depth 0 and confirms every link: the file
// at depth k must reference the canonical identifier of depth k+1.
func (v *Validator) checkChain(group blueprint.Tag, bySpec map[string]string, reg *blueprint.Registry) Check {
	maxDepth := reg.MaxChainDepth(group.ChainID)
	check := Check{Expected: maxDepth + 1}

	for depth := 0; depth <= maxDepth; depth++ {
		spec, ok := reg.ChainNode(group.ChainID, depth)
		if !ok {
			check.Detail = fmt.Sprintf("chain %q has no node at depth %d", group.ChainID, depth)
			return check
		}
		content, ok := bySpec[spec.ID]
		if !ok {
			check.Detail = fmt.Sprintf("chain %q node %q (depth %d) was not rendered", group.ChainID, spec.ID, depth)
			return check
		}
		check.Observed++

		next, ok := reg.ChainNext(group.ChainID, depth)
		if !ok {
			continue // deepest node has no outgoing link
		}
		ident := v.namer.Identifier(next.Basename())
		if !strings.Contains(content, ident) {
			check.Detail = fmt.Sprintf("broken chain %q: %q (depth %d) does not reference %q", group.ChainID, spec.ID, depth, ident)
			return check
		}
	}

	check.Passed = check.Observed == check.Expected
	return check
}

// checkInheritance confirms every leaf textually derives from every base
// and mixin of its hierarchy.
func (v *Validator) checkInheritance(group blueprint.Tag, bySpec map[string]string, reg *blueprint.Registry) Check {
	bases := reg.HierarchyMembers(group.HierarchyID, blueprint.RoleBase)
	mixins := reg.HierarchyMembers(group.HierarchyID, blueprint.RoleMixin)
	leaves := reg.HierarchyMembers(group.HierarchyID, blueprint.RoleLeaf)

	parents := append(append([]blueprint.ComponentSpec{}, bases...), mixins...)
	check := Check{Expected: len(leaves) * len(parents)}

	for _, leaf := range leaves {
		content, ok := bySpec[leaf.ID]
		if !ok {
			check.Detail = fmt.Sprintf("leaf %q was not rendered", leaf.ID)
			return check
		}
		for _, parent := range parents {
			name := v.namer.TypeName(parent.ID)
			if strings.Contains(content, name) {
				check.Observed++
			} else if check.Detail == "" {
				check.Detail = fmt.Sprintf("leaf %q does not derive from %q", leaf.ID, name)
			}
		}
	}

	check.Passed = check.Observed == check.Expected
	return check
}

// checkFanout counts distinct files referencing the utility accessor.
func (v *Validator) checkFanout(group blueprint.Tag, rendered []emit.RenderedFile, reg *blueprint.Registry) Check {
	accessor := v.namer.Identifier(group.UtilityID)
	observed := 0
	for _, f := range rendered {
		if f.SpecID != "" && strings.Contains(f.Content, accessor) {
			observed++
		}
	}

	check := Check{Expected: group.MinFanout, Observed: observed}
	if observed >= group.MinFanout {
		check.Passed = true
	} else {
		check.Detail = fmt.Sprintf("utility %q referenced in %d files, need %d", group.UtilityID, observed, group.MinFanout)
	}
	return check
}
