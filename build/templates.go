package build

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"docxgen/config"
	"docxgen/recipe"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context string
	Title   string
	Author  string
	// recipe file name without extension
	Recipe string
	// 1-based position of the recipe when directory is processed, 0 otherwise
	Index int
}

func expandTemplate(r *recipe.Recipe, index int, name config.TemplateFieldName, field string) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context: string(name),
		Title:   r.Title,
		Author:  r.Author,
		Recipe:  strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path)),
		Index:   index,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
