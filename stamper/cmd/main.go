// Command stamp bumps the asf-example package version.
// It rewrites the declared version in package.yaml and
// the Current constant in the version source file, then
// prints the previous and new versions.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/apache/tooling-asf-example/stamper"
	"github.com/apache/tooling-asf-example/version"
)

// envConfig holds defaults taken from the environment
// before flag parsing; flags override them.
type envConfig struct {
	MetadataFile string `env:"ASF_EXAMPLE_METADATA_FILE" envDefault:"package.yaml"`
	Project      string `env:"ASF_EXAMPLE_PROJECT"       envDefault:"asf-example"`
	SourceFile   string `env:"ASF_EXAMPLE_SOURCE_FILE"   envDefault:"version/version.go"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // CLI flag setup is inherently long
func run() error {
	const errCtx = "running stamp"

	var ec envConfig

	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf(
			"%s: parsing environment: %w", errCtx, err,
		)
	}

	// Bump operation flags (mutually exclusive).
	bumpDev := flag.Bool(
		"bump-dev", false,
		"bump to a dev version",
	)
	bumpRelease := flag.Bool(
		"bump-release", false,
		"bump to a release version",
	)
	bumpSpecific := flag.String(
		"bump-specific", "",
		"bump to a specific version",
	)
	showVersion := flag.Bool(
		"version", false,
		"report the current version",
	)

	// Location flags.
	metadataFile := flag.String(
		"metadata-file", ec.MetadataFile,
		"path to the package metadata file",
	)
	project := flag.String(
		"project", ec.Project,
		"expected project name in the metadata",
	)
	sourceFile := flag.String(
		"source-file", ec.SourceFile,
		"Go source file holding the version constant"+
			" (empty to skip)",
	)

	// Behavior flags.
	fromHead := flag.Bool(
		"from-head", false,
		"bump from the version committed at HEAD",
	)
	format := flag.String(
		"format", stamper.DefaultFormat,
		"report format with {project}, {previous},"+
			" and {next} placeholders",
	)
	jsonOut := flag.Bool(
		"json", false,
		"print the report as JSON",
	)
	verbose := flag.Bool(
		"verbose", false,
		"enable debug tracing",
	)

	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if *showVersion {
		fmt.Println(version.Current)

		return nil
	}

	mode, err := selectMode(
		*bumpDev, *bumpRelease, *bumpSpecific,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	report, err := stamper.Run(stamper.Config{
		MetadataFile: *metadataFile,
		Project:      *project,
		SourceFile:   *sourceFile,
		Mode:         mode,
		Specific:     *bumpSpecific,
		FromHead:     *fromHead,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	line := report.Line(*format)

	if *jsonOut {
		line, err = report.JSON()
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	fmt.Println(line)

	return nil
}

// selectMode maps the mutually exclusive bump flags to
// a stamper mode. Exactly one must be given.
func selectMode(
	dev bool,
	release bool,
	specific string,
) (stamper.Mode, error) {
	const errCtx = "selecting bump mode"

	var (
		mode  stamper.Mode
		count int
	)

	if dev {
		mode = stamper.ModeDev
		count++
	}

	if release {
		mode = stamper.ModeRelease
		count++
	}

	if specific != "" {
		mode = stamper.ModeSpecific
		count++
	}

	if count != 1 {
		return 0, fmt.Errorf(
			"%s: exactly one of --bump-dev,"+
				" --bump-release, or --bump-specific"+
				" is required",
			errCtx,
		)
	}

	return mode, nil
}
