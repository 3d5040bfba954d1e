package main

import (
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// parseRowTemplate compiles a --template value. Each row is executed with the
// decoded JSON object as dot, so {{.email | upper}} works as expected.
func parseRowTemplate(text string) (*template.Template, error) {
	if text == "" {
		return nil, nil
	}
	tmpl, err := template.New("row").Funcs(sprig.TxtFuncMap()).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid --template: %w", err)
	}
	return tmpl, nil
}
