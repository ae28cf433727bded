// Package manifest tracks what exists on disk and what was written during a
// run, and owns the only filesystem integration point in the generator.
//
// The filesystem is reached through afero.Fs so tests (and dry runs) swap in
// an in-memory implementation.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/teranos/fixturegen/errors"
)

// SkipReason classifies why a write was skipped.
type SkipReason string

const (
	// SkipPreExisting: the path was on disk before the run started.
	// Pre-existing fixtures are immutable; their bytes are never touched.
	SkipPreExisting SkipReason = "pre-existing"

	// SkipAlreadyWritten: the path was produced earlier in this run by a
	// structural marker shared between components (__init__.py).
	SkipAlreadyWritten SkipReason = "already-written"

	// SkipPathCollision: two components resolved to the same primary path
	// within one run. A configuration error, reported, never overwritten.
	SkipPathCollision SkipReason = "path-collision"
)

// SkipEvent records one skipped write.
type SkipEvent struct {
	Path   string
	Reason SkipReason
	SpecID string
}

// Manifest is the per-language-root generation state. Scan it before any
// write for that root; the writer keeps it current afterwards.
type Manifest struct {
	// Root is the absolute or base-relative corpus root ("webapp_go").
	Root string

	preExisting map[string]bool
	written     map[string]string // path -> spec id ("" for markers)
	writeOrder  []string
	skips       []SkipEvent
}

// Scan builds a manifest for root, recording every file already present.
// The scan must happen before the first write to the root; the idempotency
// contract hangs on that ordering.
func Scan(fs afero.Fs, root string) (*Manifest, error) {
	m := &Manifest{
		Root:        root,
		preExisting: make(map[string]bool),
		written:     make(map[string]string),
	}

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		m.preExisting[filepath.ToSlash(rel)] = true
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "scanning corpus root %s", root)
	}

	return m, nil
}

// PreExisting reports whether path (root-relative) predates this run.
func (m *Manifest) PreExisting(path string) bool {
	return m.preExisting[path]
}

// WrittenThisRun reports whether path was written during this run, and by
// which component.
func (m *Manifest) WrittenThisRun(path string) (string, bool) {
	specID, ok := m.written[path]
	return specID, ok
}

// Written returns the root-relative paths written this run, in write order.
func (m *Manifest) Written() []string {
	out := make([]string, len(m.writeOrder))
	copy(out, m.writeOrder)
	return out
}

// Skips returns the skip events recorded this run, in occurrence order.
func (m *Manifest) Skips() []SkipEvent {
	out := make([]SkipEvent, len(m.skips))
	copy(out, m.skips)
	return out
}

// recordWrite marks path as written this run. Only the Writer calls this;
// a path in preExisting must never be recorded.
func (m *Manifest) recordWrite(path, specID string) error {
	if m.preExisting[path] {
		return errors.Newf("invariant violation: pre-existing path %s recorded as written", path)
	}
	m.written[path] = specID
	m.writeOrder = append(m.writeOrder, path)
	return nil
}

// recordSkip appends a skip event.
func (m *Manifest) recordSkip(path string, reason SkipReason, specID string) {
	m.skips = append(m.skips, SkipEvent{Path: path, Reason: reason, SpecID: specID})
}
