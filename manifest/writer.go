package manifest

import (
	"path"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/teranos/fixturegen/emit"
	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/logger"
)

// Outcome is the result of one write attempt.
type Outcome int

const (
	// Written: the file was persisted and the manifest updated.
	Written Outcome = iota
	// Skipped: the path was pre-existing, already written, or collided.
	Skipped
)

func (o Outcome) String() string {
	if o == Written {
		return "written"
	}
	return "skipped"
}

// Writer persists rendered files idempotently. It is the sole component
// allowed to mutate a manifest or touch the filesystem.
type Writer struct {
	fs  afero.Fs
	log *zap.SugaredLogger
}

// NewWriter returns a writer over fs. Pass afero.NewOsFs() in production or
// afero.NewMemMapFs() in tests.
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs, log: logger.Named("writer")}
}

// Write persists file under the manifest's root unless the path is already
// accounted for.
//
// Skip semantics:
//   - pre-existing path: silent idempotent skip, fixture bytes untouched
//   - already-written marker (no spec id): idempotent skip; markers are a
//     pure function of their directory, so repeats are expected
//   - already-written primary file: configuration error, two components
//     resolved to one path. Returns Skipped plus a PathCollisionError; the
//     caller collects it and generation continues.
func (w *Writer) Write(file emit.RenderedFile, m *Manifest) (Outcome, error) {
	if m.PreExisting(file.Path) {
		m.recordSkip(file.Path, SkipPreExisting, file.SpecID)
		return Skipped, nil
	}

	if _, ok := m.WrittenThisRun(file.Path); ok {
		if file.SpecID == "" {
			m.recordSkip(file.Path, SkipAlreadyWritten, file.SpecID)
			return Skipped, nil
		}
		m.recordSkip(file.Path, SkipPathCollision, file.SpecID)
		w.log.Warnw("path collision within run",
			logger.FieldPath, file.Path,
			logger.FieldSpecID, file.SpecID,
			logger.FieldLanguage, file.Language,
		)
		return Skipped, errors.NewPathCollision(file.Path, file.SpecID)
	}

	full := path.Join(m.Root, file.Path)
	if err := w.fs.MkdirAll(path.Dir(full), 0o755); err != nil {
		return Skipped, errors.Wrapf(err, "creating parent directories for %s", full)
	}
	if err := afero.WriteFile(w.fs, full, []byte(file.Content), 0o644); err != nil {
		return Skipped, errors.Wrapf(err, "writing %s", full)
	}

	if err := m.recordWrite(file.Path, file.SpecID); err != nil {
		return Skipped, err
	}
	return Written, nil
}
