package stamper

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasttemplate"
)

// DefaultFormat is the report line format used when the
// caller does not supply one.
const DefaultFormat = "{previous} -> {next}"

// Line renders the report with a format string
// containing {project}, {previous}, and {next}
// placeholders. Unknown placeholders are preserved
// as-is.
func (r Report) Line(format string) string {
	return fasttemplate.ExecuteStringStd(
		format, "{", "}",
		map[string]interface{}{
			"project":  r.Project,
			"previous": r.Previous,
			"next":     r.Next,
		},
	)
}

// JSON renders the report as a single JSON object.
func (r Report) JSON() (string, error) {
	const errCtx = "encoding report"

	by, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return string(by), nil
}
