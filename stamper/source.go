package stamper

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/apache/tooling-asf-example/version"
)

// ErrNoConstant reports a source file without a
// recognizable version constant declaration.
var ErrNoConstant = errors.New(
	"version constant not found in source",
)

// constantLine matches the auto-updated version
// constant declaration in version/version.go.
var constantLine = regexp.MustCompile(
	`(?m)^(const Current = ")[^"]*(")`,
)

// UpdateSource rewrites the Current constant in the Go
// source file at path with next, leaving the rest of
// the file untouched. The file is replaced atomically
// via a temporary file and rename. Only the first
// declaration is rewritten.
func UpdateSource(
	path string,
	next version.Version,
) error {
	const errCtx = "updating version source"

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI flags
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	loc := constantLine.FindSubmatchIndex(content)
	if loc == nil {
		return fmt.Errorf(
			"%s: %s: %w", errCtx, path, ErrNoConstant,
		)
	}

	var out []byte

	out = append(out, content[:loc[3]]...)
	out = append(out, next.String()...)
	out = append(out, content[loc[4]:]...)

	if err := writeAtomic(path, out); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// writeAtomic writes content to a temporary file next
// to path and renames it over path, keeping the
// original file mode.
func writeAtomic(path string, content []byte) error {
	const errCtx = "replacing file"

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tmp, err := os.CreateTemp(
		filepath.Dir(path),
		filepath.Base(path)+".*.tmp",
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
