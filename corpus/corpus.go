// Package corpus drives a full generation run: blueprint registry through
// emitters, idempotent writes, and post-hoc invariant validation, per
// target language.
package corpus

import (
	"context"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/fixturegen/blueprint"
	"github.com/teranos/fixturegen/emit"
	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/logger"
	"github.com/teranos/fixturegen/manifest"
	"github.com/teranos/fixturegen/verify"
)

// Runner executes generation runs against one filesystem.
type Runner struct {
	// Registry is the fully populated blueprint. The runner only reads it.
	Registry *blueprint.Registry

	// Fs is the target filesystem. afero.NewOsFs() in production.
	Fs afero.Fs

	// BaseDir is the directory holding the per-language corpus roots.
	BaseDir string

	// MinFanIn is the collision-group floor handed to the validator.
	MinFanIn int

	// Parallel runs one worker per language. Workers share nothing but the
	// registry (read-only) and the fs; each owns its manifest, and its
	// pre-existing scan happens before its first write.
	Parallel bool
}

// Run generates and validates the corpus for each emitter. Per-file
// failures are collected into the report; only registry misconfiguration or
// a cancelled context fail the run itself.
func (r *Runner) Run(ctx context.Context, emitters []emit.Emitter) (*RunReport, error) {
	if r.Registry == nil || r.Registry.Len() == 0 {
		return nil, errors.New("runner has no blueprint registry")
	}

	started := time.Now()
	report := &RunReport{
		RunID:   uuid.NewString(),
		Results: make([]LanguageResult, len(emitters)),
	}

	log := logger.Named("corpus")
	log.Infow("starting generation run",
		logger.FieldRunID, report.RunID,
		logger.FieldCount, len(emitters),
	)

	if r.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, em := range emitters {
			g.Go(func() error {
				result, err := r.runLanguage(gctx, em)
				if err != nil {
					return err
				}
				report.Results[i] = result
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, em := range emitters {
			result, err := r.runLanguage(ctx, em)
			if err != nil {
				return nil, err
			}
			report.Results[i] = result
		}
	}

	report.ElapsedMS = time.Since(started).Milliseconds()
	log.Infow("generation run finished",
		logger.FieldRunID, report.RunID,
		logger.FieldDurationMS, report.ElapsedMS,
	)
	return report, nil
}

// runLanguage performs the emit → write → validate pipeline for one target.
func (r *Runner) runLanguage(ctx context.Context, em emit.Emitter) (LanguageResult, error) {
	result := LanguageResult{
		Language: em.Language(),
		Root:     em.Root(),
	}
	log := logger.Named("corpus").With(logger.FieldLanguage, em.Language())

	root := path.Join(r.BaseDir, em.Root())
	man, err := manifest.Scan(r.Fs, root)
	if err != nil {
		return result, err
	}

	writer := manifest.NewWriter(r.Fs)
	var rendered []emit.RenderedFile

	for _, spec := range r.Registry.All() {
		if err := ctx.Err(); err != nil {
			return result, errors.Wrap(err, "generation cancelled")
		}

		rendering, err := em.Render(r.Registry, spec)
		if err != nil {
			// Rendering failures are per-component; the batch continues.
			result.Errors = append(result.Errors, err.Error())
			log.Errorw("render failed", logger.FieldSpecID, spec.ID, logger.FieldError, err)
			continue
		}

		result.Substitutions += len(rendering.Substitutions)
		for _, sub := range rendering.Substitutions {
			log.Warnw("tag substituted",
				logger.FieldSpecID, sub.ComponentID,
				logger.FieldTag, sub.Tag.String(),
				logger.FieldMechanism, sub.Mechanism,
			)
		}

		rendered = append(rendered, rendering.Files...)
		for _, file := range rendering.Files {
			outcome, writeErr := writer.Write(file, man)
			switch {
			case writeErr != nil && errors.Is(writeErr, errors.ErrPathCollision):
				result.Collisions++
				result.Errors = append(result.Errors, writeErr.Error())
			case writeErr != nil:
				// I/O failure is fatal for this file only.
				result.Errors = append(result.Errors, writeErr.Error())
				log.Errorw("write failed", logger.FieldPath, file.Path, logger.FieldError, writeErr)
			case outcome == manifest.Written:
				result.Written++
			default:
				result.Skipped++
			}
		}
	}

	validator := verify.NewValidator(em.Language(), em, r.MinFanIn)
	result.Validation = validator.Validate(rendered, r.Registry)

	log.Infow("language pass complete",
		logger.FieldWritten, result.Written,
		logger.FieldSkipped, result.Skipped,
	)
	return result, nil
}
