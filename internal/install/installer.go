// Package install orchestrates the post-install generation of BRL-CAD
// bindings: cache decision, stale output cleanup, the per-library generation
// loop that threads symbol sets between passes, manifest rewrites, and cache
// persistence.
package install

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/brlbind/internal/bindgen"
	"git.home.luguber.info/inful/brlbind/internal/brlcad"
	"git.home.luguber.info/inful/brlbind/internal/cache"
	"git.home.luguber.info/inful/brlbind/internal/config"
	"git.home.luguber.info/inful/brlbind/internal/logfields"
	"git.home.luguber.info/inful/brlbind/internal/manifest"
)

// Installer runs the binding generation flow for one installation attempt.
type Installer struct {
	cfg       *config.Config
	gen       bindgen.Generator
	info      *brlcad.Info
	outputDir string
	store     *cache.Store
	force     bool
}

// New creates an installer. outputDir is where the bindings package is
// assembled; it is owned exclusively by the installer for the duration of Run.
func New(cfg *config.Config, gen bindgen.Generator, info *brlcad.Info, outputDir string) *Installer {
	return &Installer{
		cfg:       cfg,
		gen:       gen,
		info:      info,
		outputDir: outputDir,
		store:     cache.NewStore(cfg.Cache.Dir),
	}
}

// WithForce disables cache reuse for this run even when the configuration
// enables it.
func (in *Installer) WithForce(force bool) *Installer {
	in.force = force
	return in
}

// Run executes the install flow. Any failure is fatal to the install attempt;
// partially generated output is left in place and cleaned up by the next run.
func (in *Installer) Run(ctx context.Context) error {
	runID := uuid.NewString()
	log := slog.With(logfields.RunID(runID))

	if err := in.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if in.cfg.Cache.Reuse && !in.force && in.store.Exists() {
		log.Info("Installing cached bindings", logfields.Path(in.store.Dir()))
		if err := os.RemoveAll(in.outputDir); err != nil {
			return fmt.Errorf("remove stale bindings directory: %w", err)
		}
		return in.store.Restore(in.outputDir)
	}

	if err := in.prepareOutputDir(log); err != nil {
		return err
	}

	log.Info("Generating bindings",
		logfields.BrlcadVersion(in.info.Version),
		logfields.Path(in.outputDir),
		"libraries", len(in.cfg.Libraries))

	prog := newProgress()
	idx := manifest.New(in.info.Version)
	for _, lib := range in.cfg.Libraries {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("install cancelled before library %s: %w", lib.Name, err)
		}
		var err error
		prog, err = in.generateLibrary(ctx, log, lib, idx, prog)
		if err != nil {
			return err
		}
	}

	if err := in.store.Persist(in.outputDir); err != nil {
		return err
	}
	log.Info("Bindings installed", "libraries", len(prog.generated))
	return nil
}

// prepareOutputDir removes any leftover directory from a previous install and
// recreates it. A missing directory is nothing to clean; every other failure
// propagates.
func (in *Installer) prepareOutputDir(log *slog.Logger) error {
	if _, err := os.Stat(in.outputDir); err == nil {
		log.Debug("Bindings directory already exists, deleting it", logfields.Path(in.outputDir))
		if err := os.RemoveAll(in.outputDir); err != nil {
			return fmt.Errorf("remove stale bindings directory: %w", err)
		}
	}
	if err := os.MkdirAll(in.outputDir, 0o755); err != nil {
		return fmt.Errorf("create bindings directory: %w", err)
	}
	return nil
}

// generateLibrary runs one generation pass and returns the advanced progress.
// The manifest is rewritten before symbols are recorded so that the index
// already exposes the new module when dependents are generated.
func (in *Installer) generateLibrary(ctx context.Context, log *slog.Logger, lib config.Library, idx *manifest.Manifest, prog progress) (progress, error) {
	start := time.Now()
	log.Debug("Processing library", logfields.Library(lib.Name))

	known, err := prog.knownSymbols(lib.Deps)
	if err != nil {
		return prog, fmt.Errorf("resolve dependencies of %s: %w", lib.Name, err)
	}

	opts := bindgen.Options{
		Library:           lib.Name,
		Headers:           in.resolveHeaders(lib),
		Output:            in.wrapperPath(lib),
		IncludeDirs:       []string{in.info.IncludeDir()},
		DependencyModules: append([]string{}, lib.Deps...),
		KnownSymbols:      known,
	}

	res, err := in.gen.Generate(ctx, opts)
	if err != nil {
		return prog, err
	}

	idx.Add(lib.Name)
	if err := idx.Write(in.outputDir); err != nil {
		return prog, err
	}

	next := prog.record(lib.Name, res.Symbols)
	log.Debug("Library generated",
		logfields.Library(lib.Name),
		logfields.Symbols(len(res.Symbols)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return next, nil
}

func (in *Installer) resolveHeaders(lib config.Library) []string {
	headers := make([]string, len(lib.Headers))
	for i, h := range lib.Headers {
		headers[i] = in.info.ResolveHeader(h)
	}
	return headers
}

func (in *Installer) wrapperPath(lib config.Library) string {
	return filepath.Join(in.outputDir, lib.Output)
}
