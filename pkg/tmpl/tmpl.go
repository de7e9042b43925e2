// Package tmpl renders user supplied Go templates for command output.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"
)

// pad right-pads s with spaces to n runes. Longer strings are truncated with
// an ellipsis so columns stay aligned.
func pad(n int, s string) string {
	count := utf8.RuneCountInString(s)
	switch {
	case count == n:
		return s
	case count < n:
		return s + strings.Repeat(" ", n-count)
	case n <= 1:
		return string([]rune(s)[:n])
	default:
		return string([]rune(s)[:n-1]) + "…"
	}
}

func orDefault(def, s string) string {
	if s == "" {
		return def
	}
	return s
}

var funcs = template.FuncMap{
	"upper":   strings.ToUpper,
	"lower":   strings.ToLower,
	"pad":     pad,
	"default": orDefault,
}

// Template is a parsed template that can be executed many times.
type Template struct {
	t *template.Template
}

// Parse compiles tmpl. References to undefined keys fail at execution.
//
// Available template functions:
//   - upper, lower: change case
//   - pad N: pad or truncate to N characters
//   - default D: use D when the value is empty
func Parse(tmpl string) (*Template, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Template{t: t}, nil
}

// Execute renders the template with data.
func (t *Template) Execute(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// Render parses and executes tmpl in one step.
func Render(tmpl string, data any) (string, error) {
	t, err := Parse(tmpl)
	if err != nil {
		return "", err
	}
	return t.Execute(data)
}
