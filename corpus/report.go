package corpus

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/verify"
)

// LanguageResult summarizes one language's generation pass.
type LanguageResult struct {
	Language      string         `yaml:"language" json:"language"`
	Root          string         `yaml:"root" json:"root"`
	Written       int            `yaml:"written" json:"written"`
	Skipped       int            `yaml:"skipped" json:"skipped"`
	Collisions    int            `yaml:"collisions" json:"collisions"`
	Substitutions int            `yaml:"substitutions" json:"substitutions"`
	Errors        []string       `yaml:"errors,omitempty" json:"errors,omitempty"`
	Validation    *verify.Report `yaml:"validation" json:"validation"`
}

// Passed reports whether the pass is clean: invariants hold, no collisions,
// no file errors.
func (r LanguageResult) Passed() bool {
	if r.Collisions > 0 || len(r.Errors) > 0 {
		return false
	}
	return r.Validation != nil && r.Validation.Passed()
}

// RunReport is the structured artifact of one generation run, suitable for
// CI consumption.
type RunReport struct {
	RunID     string           `yaml:"run_id" json:"run_id"`
	Results   []LanguageResult `yaml:"results" json:"results"`
	ElapsedMS int64            `yaml:"elapsed_ms" json:"elapsed_ms"`
}

// Passed reports whether every language pass was clean.
func (r *RunReport) Passed() bool {
	for _, result := range r.Results {
		if !result.Passed() {
			return false
		}
	}
	return true
}

// SummaryLines renders the one-line-per-language CI summary.
func (r *RunReport) SummaryLines() []string {
	out := make([]string, 0, len(r.Results))
	for _, result := range r.Results {
		status := "ok"
		if !result.Passed() {
			status = "FAIL"
		}
		out = append(out, fmt.Sprintf("%-10s %-10s written=%d skipped=%d collisions=%d invariants=%s",
			result.Language, result.Root, result.Written, result.Skipped, result.Collisions, status))
	}
	return out
}

// EncodeYAML writes the report as YAML.
func (r *RunReport) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "encoding run report as yaml")
	}
	return nil
}

// EncodeJSON writes the report as indented JSON.
func (r *RunReport) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "encoding run report as json")
	}
	return nil
}
