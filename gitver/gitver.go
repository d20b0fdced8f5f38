package gitver

import (
	"fmt"
	"strings"

	"github.com/apache/tooling-asf-example/gitcli"
	"github.com/apache/tooling-asf-example/metadata"
	"github.com/apache/tooling-asf-example/version"
)

// InsideWorkTree reports whether dir is inside a git
// working tree. A bare repository or a directory
// outside any repository both report false.
func InsideWorkTree(dir string) bool {
	out, err := gitcli.Run(
		dir, "rev-parse", "--is-inside-work-tree",
	)

	return err == nil &&
		strings.TrimSpace(out) == "true"
}

// HeadVersion returns the version the HEAD commit
// records in the metadata file named metadataName.
// When HEAD does not contain the file yet (the commit
// introducing it has not happened), version.Zero is
// returned so the first bump starts the sequence.
func HeadVersion(
	dir string,
	metadataName string,
) (version.Version, error) {
	const errCtx = "reading version at HEAD"

	out, err := gitcli.Run(
		dir, "show", "HEAD:"+metadataName,
	)
	if err != nil {
		// This may be the first commit with the
		// metadata file.
		return version.Zero, nil
	}

	mf, err := metadata.Decode([]byte(out))
	if err != nil {
		return version.Version{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	ve, err := mf.Version()
	if err != nil {
		return version.Version{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return ve, nil
}
