package gitcli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Run executes git with the given arguments in dir and
// returns its stdout. Pass empty dir to use the current
// working directory. stderr is captured separately and
// included in the error so command output stays
// parseable.
func Run(
	dir string,
	arg ...string,
) (string, error) {
	const errCtx = "running git"

	slog.Debug(
		"executing",
		"cmd", "git",
		"args", strings.Join(arg, " "),
		"dir", dir,
	)

	cmd := exec.CommandContext(
		context.Background(), "git", arg...,
	)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	slog.Debug(
		"output",
		"stdout", stdout.String(),
		"stderr", stderr.String(),
	)

	if err != nil {
		return stdout.String(), fmt.Errorf(
			"%s: git %s: %s: %w",
			errCtx,
			strings.Join(arg, " "),
			strings.TrimSpace(stderr.String()),
			err,
		)
	}

	return stdout.String(), nil
}

// Available reports whether a git binary can be found
// on PATH.
func Available() bool {
	_, err := exec.LookPath("git")

	return err == nil
}
