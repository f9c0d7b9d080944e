// Package output serializes command results to stdout. Results are meant for
// machine consumption (agents, scripts); diagnostics go to the logger on
// stderr instead.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// StepResult is the top-level output of a single automation command.
type StepResult struct {
	OK      bool   `yaml:"ok"                json:"ok"`
	TS      int64  `yaml:"ts"                json:"ts"`
	Detail  string `yaml:"detail,omitempty"  json:"detail,omitempty"`
	Path    string `yaml:"path,omitempty"    json:"path,omitempty"`
	Display int    `yaml:"display,omitempty" json:"display,omitempty"`
}

// DisplayStatus is the top-level output of the `display status` command.
type DisplayStatus struct {
	Active bool  `yaml:"active"           json:"active"`
	ID     int   `yaml:"id,omitempty"     json:"id,omitempty"`
	Width  int   `yaml:"width,omitempty"  json:"width,omitempty"`
	Height int   `yaml:"height,omitempty" json:"height,omitempty"`
	TS     int64 `yaml:"ts"               json:"ts"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return printPrettyJSON(w, v)
		}
		return printJSON(w, v)
	case FormatYAML:
		return printYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printPrettyJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
