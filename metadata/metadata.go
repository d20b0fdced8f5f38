package metadata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/apache/tooling-asf-example/version"
)

// DefaultName is the metadata file name at the project
// root.
const DefaultName = "package.yaml"

var (
	// ErrMissing reports an absent metadata file.
	ErrMissing = errors.New("metadata file missing")

	// ErrWrongProject reports metadata declaring a
	// different project name than expected.
	ErrWrongProject = errors.New(
		"metadata belongs to another project",
	)

	// ErrNoVersion reports metadata without a
	// project version field.
	ErrNoVersion = errors.New(
		"version missing in metadata",
	)
)

// File is the decoded package metadata.
type File struct {
	Project ProjectSection `yaml:"project"`
	Lock    LockSection    `yaml:"lock"`
}

// ProjectSection declares the package identity.
type ProjectSection struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// LockSection carries dependency lock settings owned by
// the external lock/sync tool. The stamper only
// refreshes ExcludeNewer on writes.
type LockSection struct {
	ExcludeNewer string `yaml:"exclude-newer"`
}

// Load reads and decodes the metadata file at path.
func Load(path string) (*File, error) {
	const errCtx = "loading metadata"

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI flags
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf(
				"%s: %s: %w", errCtx, path, ErrMissing,
			)
		}

		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return Decode(content)
}

// Decode decodes metadata content. Split from Load so
// callers holding file content from elsewhere (e.g. a
// git object) can reuse the same decoding.
func Decode(content []byte) (*File, error) {
	const errCtx = "decoding metadata"

	var mf File

	if err := yaml.Unmarshal(content, &mf); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &mf, nil
}

// Version parses the declared project version.
func (f *File) Version() (version.Version, error) {
	const errCtx = "reading metadata version"

	if f.Project.Version == "" {
		return version.Version{}, fmt.Errorf(
			"%s: %w", errCtx, ErrNoVersion,
		)
	}

	ve, err := version.Parse(f.Project.Version)
	if err != nil {
		return version.Version{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return ve, nil
}

// CheckProject verifies the metadata belongs to the
// named project. Running the stamper from the wrong
// directory must fail before anything is written.
func (f *File) CheckProject(name string) error {
	const errCtx = "checking project"

	if f.Project.Name != name {
		return fmt.Errorf(
			"%s: declared %q, expected %q: %w",
			errCtx, f.Project.Name, name,
			ErrWrongProject,
		)
	}

	return nil
}

// versionLine matches the project version line. Only
// the first match is rewritten; in this metadata layout
// the project section comes first.
var versionLine = regexp.MustCompile(
	`(?m)^(\s*version:\s*).+$`,
)

// excludeNewerLine matches the lock exclude-newer line.
var excludeNewerLine = regexp.MustCompile(
	`(?m)^(\s*exclude-newer:\s*).+$`,
)

// WriteVersion rewrites the version line of the
// metadata file at path with next and refreshes the
// lock exclude-newer timestamp with now in UTC. All
// other text, including comments and ordering, is
// preserved. The file is replaced atomically via a
// temporary file and rename.
func WriteVersion(
	path string,
	next version.Version,
	now time.Time,
) error {
	const errCtx = "writing metadata version"

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI flags
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf(
				"%s: %s: %w", errCtx, path, ErrMissing,
			)
		}

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	updated, err := replaceFirst(
		versionLine, content, next.String(),
	)
	if err != nil {
		return fmt.Errorf(
			"%s: %s: %w", errCtx, path, ErrNoVersion,
		)
	}

	stamp := now.UTC().Format(time.RFC3339)

	// The lock section is optional; leave the file
	// alone when the lock tool never wrote one.
	if refreshed, rErr := replaceFirst(
		excludeNewerLine, updated, quote(stamp),
	); rErr == nil {
		updated = refreshed
	}

	if err := replaceAtomic(path, updated); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// errNoMatch reports a rewrite pattern that matched no
// line.
var errNoMatch = errors.New("no matching line")

// replaceFirst substitutes the value of the first line
// matching re, keeping the captured key prefix.
func replaceFirst(
	re *regexp.Regexp,
	content []byte,
	value string,
) ([]byte, error) {
	loc := re.FindSubmatchIndex(content)
	if loc == nil {
		return nil, errNoMatch
	}

	var out []byte

	out = append(out, content[:loc[3]]...)
	out = append(out, value...)
	out = append(out, content[loc[1]:]...)

	return out, nil
}

// quote wraps a scalar in double quotes for YAML.
func quote(s string) string {
	return `"` + s + `"`
}

// replaceAtomic writes content to a temporary file next
// to path and renames it over path, keeping the
// original file mode. A failed write never leaves a
// partially written metadata file behind.
func replaceAtomic(path string, content []byte) error {
	const errCtx = "replacing file"

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(
		dir, filepath.Base(path)+".*.tmp",
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.Chmod(
		tmpName, info.Mode().Perm(),
	); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
