package stamper

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/apache/tooling-asf-example/gitver"
	"github.com/apache/tooling-asf-example/metadata"
	"github.com/apache/tooling-asf-example/version"
)

// Mode selects which bump operation Run performs.
type Mode int

const (
	// ModeDev bumps to the next development snapshot.
	ModeDev Mode = iota + 1

	// ModeRelease removes the dev suffix.
	ModeRelease

	// ModeSpecific sets an explicitly given version.
	ModeSpecific
)

// ErrNoWorkTree reports that a HEAD-based bump was
// requested outside a git working tree.
var ErrNoWorkTree = errors.New(
	"a git working tree is required",
)

// Config holds all settings for a stamp run. Use a
// Config struct instead of many arguments.
type Config struct {
	// MetadataFile is the path of the package
	// metadata file holding the declared version.
	MetadataFile string

	// Project is the expected project name; the
	// metadata must declare it or the run fails.
	Project string

	// SourceFile is the Go source file whose version
	// constant is kept in sync. Empty skips the
	// source rewrite.
	SourceFile string

	// Mode is the bump operation to perform.
	Mode Mode

	// Specific is the explicit version string for
	// ModeSpecific.
	Specific string

	// FromHead computes the bump from the version
	// committed at HEAD instead of the working tree.
	FromHead bool

	// Now overrides the wall clock for the lock
	// timestamp refresh. Zero means time.Now.
	Now time.Time
}

// Report describes a completed bump.
type Report struct {
	Project  string `json:"project"`
	Previous string `json:"previous"`
	Next     string `json:"next"`
}

// Run validates the project metadata, computes the
// bumped version for cfg.Mode, and persists it to the
// metadata file and the version source constant. The
// previous version is reported alongside the new one.
// Any failure is terminal; nothing is retried and a
// malformed stored version is never guessed around.
func Run(cfg Config) (Report, error) {
	const errCtx = "stamping version"

	mf, err := metadata.Load(cfg.MetadataFile)
	if err != nil {
		return Report{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	if err := mf.CheckProject(cfg.Project); err != nil {
		return Report{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	current, err := currentVersion(cfg, mf)
	if err != nil {
		return Report{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	next, err := nextVersion(
		cfg.Mode, cfg.Specific, current,
	)
	if err != nil {
		return Report{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	slog.Info(
		"bumping version",
		"project", mf.Project.Name,
		"previous", current.String(),
		"next", next.String(),
	)

	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}

	if err := metadata.WriteVersion(
		cfg.MetadataFile, next, now,
	); err != nil {
		return Report{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	if cfg.SourceFile != "" {
		if err := UpdateSource(
			cfg.SourceFile, next,
		); err != nil {
			return Report{}, fmt.Errorf(
				"%s: %w; package may be in an"+
					" inconsistent version state",
				errCtx, err,
			)
		}
	}

	return Report{
		Project:  mf.Project.Name,
		Previous: current.String(),
		Next:     next.String(),
	}, nil
}

// currentVersion determines the base version for the
// bump: the working-tree metadata by default, or the
// version committed at HEAD when FromHead is set.
func currentVersion(
	cfg Config,
	mf *metadata.File,
) (version.Version, error) {
	const errCtx = "determining current version"

	if !cfg.FromHead {
		return mf.Version()
	}

	dir := filepath.Dir(cfg.MetadataFile)

	if !gitver.InsideWorkTree(dir) {
		return version.Version{}, fmt.Errorf(
			"%s: %w", errCtx, ErrNoWorkTree,
		)
	}

	return gitver.HeadVersion(
		dir, filepath.Base(cfg.MetadataFile),
	)
}

// nextVersion computes the bumped version for mode.
// ModeSpecific validates the given string but takes no
// position on ordering relative to current.
func nextVersion(
	mode Mode,
	specific string,
	current version.Version,
) (version.Version, error) {
	const errCtx = "computing next version"

	switch mode {
	case ModeDev:
		return current.BumpDev(), nil

	case ModeRelease:
		return current.BumpRelease(), nil

	case ModeSpecific:
		ve, err := version.Parse(specific)
		if err != nil {
			return version.Version{}, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return ve, nil

	default:
		return version.Version{}, fmt.Errorf(
			"%s: unknown mode %d", errCtx, mode,
		)
	}
}
