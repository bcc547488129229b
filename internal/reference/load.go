package reference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"
)

// Artifact names used in load diagnostics.
const (
	ArtifactProgression    = "progression curves"
	ArtifactPositionModels = "position value models"
	ArtifactSalaryModel    = "salary model"
)

// Artifacts bundles everything the pipeline needs besides the league export.
// Build one per run; it is read-only once loaded.
type Artifacts struct {
	Progression    *Progression
	PositionModels PositionModels
	SalaryModel    SalaryModel
}

// Validate checks that every artifact is present.
func (a *Artifacts) Validate() error {
	if a == nil {
		return errors.New("reference artifacts are nil")
	}
	if a.Progression == nil {
		return &LoadError{Artifact: ArtifactProgression, Err: errors.New("not loaded")}
	}
	if a.SalaryModel == nil {
		return &LoadError{Artifact: ArtifactSalaryModel, Err: errors.New("not loaded")}
	}
	return nil
}

// LoadError names the artifact that failed to load. A run cannot proceed
// without every artifact.
type LoadError struct {
	Artifact string
	Source   string
	Err      error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("load %s: %v", e.Artifact, e.Err)
	}
	return fmt.Sprintf("load %s from %s: %v", e.Artifact, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FileSources locates the three artifacts on disk.
type FileSources struct {
	Progression    string // long-format CSV
	PositionModels string // JSON
	SalaryModel    string // JSON
}

// LoadFiles reads all artifacts concurrently. The first failure cancels the
// rest and is returned as a *LoadError.
func LoadFiles(ctx context.Context, src FileSources, logger *slog.Logger) (*Artifacts, error) {
	var art Artifacts
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := os.Open(src.Progression)
		if err != nil {
			return &LoadError{Artifact: ArtifactProgression, Source: src.Progression, Err: err}
		}
		defer f.Close()
		prog, err := ReadProgressionCSV(f)
		if err != nil {
			return &LoadError{Artifact: ArtifactProgression, Source: src.Progression, Err: err}
		}
		art.Progression = prog
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(src.PositionModels)
		if err != nil {
			return &LoadError{Artifact: ArtifactPositionModels, Source: src.PositionModels, Err: err}
		}
		models, err := ParsePositionModels(data)
		if err != nil {
			return &LoadError{Artifact: ArtifactPositionModels, Source: src.PositionModels, Err: err}
		}
		art.PositionModels = models
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(src.SalaryModel)
		if err != nil {
			return &LoadError{Artifact: ArtifactSalaryModel, Source: src.SalaryModel, Err: err}
		}
		sm, err := ParseSalaryModel(data)
		if err != nil {
			return &LoadError{Artifact: ArtifactSalaryModel, Source: src.SalaryModel, Err: err}
		}
		art.SalaryModel = sm
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ratings, values := art.Progression.Len()
	logger.Info("Reference artifacts loaded",
		"source", "files",
		"rating_curves", ratings,
		"value_curves", values,
		"salary_model", fmt.Sprintf("%T", art.SalaryModel))
	return &art, nil
}
