package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestFprint_JSONCompact(t *testing.T) {
	OutputFormat = FormatJSON
	PrettyOutput = false
	defer func() { OutputFormat = FormatYAML }()

	var buf bytes.Buffer
	err := Fprint(&buf, StepResult{OK: true, TS: 1707500000, Path: "/sdcard/Download/vd_1.png", Display: 7})
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if bytes.Count([]byte(out), []byte("\n")) > 1 {
		t.Errorf("compact output should be single line, got:\n%s", out)
	}
	var decoded StepResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !decoded.OK || decoded.Display != 7 {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestFprint_JSONPretty(t *testing.T) {
	OutputFormat = FormatJSON
	PrettyOutput = true
	defer func() {
		OutputFormat = FormatYAML
		PrettyOutput = false
	}()

	var buf bytes.Buffer
	if err := Fprint(&buf, DisplayStatus{Active: true, ID: 7, Width: 1080, Height: 1920, TS: 123}); err != nil {
		t.Fatal(err)
	}
	if bytes.Count(buf.Bytes(), []byte("\n")) <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", buf.String())
	}
}

func TestFprint_YAML(t *testing.T) {
	OutputFormat = FormatYAML

	var buf bytes.Buffer
	if err := Fprint(&buf, StepResult{OK: false, TS: 123, Detail: "no active session"}); err != nil {
		t.Fatal(err)
	}

	var decoded StepResult
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.OK || decoded.Detail != "no active session" {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestFprint_OmitsEmptyFields(t *testing.T) {
	OutputFormat = FormatJSON
	defer func() { OutputFormat = FormatYAML }()

	var buf bytes.Buffer
	if err := Fprint(&buf, StepResult{OK: true, TS: 1}); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"detail", "path", "display"} {
		if strings.Contains(buf.String(), field) {
			t.Errorf("empty %s should be omitted: %s", field, buf.String())
		}
	}
}

func TestFprint_UnsupportedFormat(t *testing.T) {
	OutputFormat = Format("toml")
	defer func() { OutputFormat = FormatYAML }()

	var buf bytes.Buffer
	if err := Fprint(&buf, StepResult{}); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
