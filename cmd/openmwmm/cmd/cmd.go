// Package cmd provides the openmwmm CLI command constructors. Every
// command accepts the shared appcontext.Interface so it can be exercised
// in tests with a mock application.
package cmd

import (
	"encoding/json"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/openmwmm/pkg/errors"
)

// Output formats supported by commands that honor --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// render writes v to w in the requested format. The text callback renders
// the human-readable default; json and yaml marshal v directly.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case "", formatText:
		return text(w)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return errors.NewValidationError("format", format, "must be text, json, or yaml")
	}
}

// checkmark renders an enabled/disabled marker for plugin listings.
func checkmark(enabled bool) string {
	if enabled {
		return "[x]"
	}
	return "[ ]"
}
