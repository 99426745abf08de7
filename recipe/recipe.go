// Package recipe describes document content declaratively, as an ordered
// list of builder steps stored in YAML.
package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

type (
	Formatted struct {
		Text      string `yaml:"text"`
		Bold      bool   `yaml:"bold"`
		Italic    bool   `yaml:"italic"`
		Underline bool   `yaml:"underline"`
		// zero means configured default
		Size int `yaml:"size"`
		// empty means configured default
		Color string `yaml:"color"`
	}

	Paragraph struct {
		Text  string `yaml:"text"`
		Align string `yaml:"align"`
	}

	TableSize struct {
		Rows int `yaml:"rows"`
		Cols int `yaml:"cols"`
	}

	ImageRef struct {
		Path   string `yaml:"path"`
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
	}

	// Step must have exactly one field set.
	Step struct {
		Text        *string    `yaml:"text"`
		Formatted   *Formatted `yaml:"formatted"`
		Paragraph   *Paragraph `yaml:"paragraph"`
		Bullet      *string    `yaml:"bullet"`
		Numbered    *string    `yaml:"numbered"`
		Table       *TableSize `yaml:"table"`
		CustomTable *string    `yaml:"custom_table"`
		CSVTable    *string    `yaml:"csv_table"`
		Image       *ImageRef  `yaml:"image"`
	}

	Recipe struct {
		Title  string `yaml:"title"`
		Author string `yaml:"author"`
		Steps  []Step `yaml:"steps"`

		// file recipe was loaded from, empty when parsed from memory
		Path string `yaml:"-"`
	}
)

// Op returns name of the operation step requests, empty string if none or
// more than one is set.
func (s *Step) Op() string {
	var ops []string
	if s.Text != nil {
		ops = append(ops, "text")
	}
	if s.Formatted != nil {
		ops = append(ops, "formatted")
	}
	if s.Paragraph != nil {
		ops = append(ops, "paragraph")
	}
	if s.Bullet != nil {
		ops = append(ops, "bullet")
	}
	if s.Numbered != nil {
		ops = append(ops, "numbered")
	}
	if s.Table != nil {
		ops = append(ops, "table")
	}
	if s.CustomTable != nil {
		ops = append(ops, "custom_table")
	}
	if s.CSVTable != nil {
		ops = append(ops, "csv_table")
	}
	if s.Image != nil {
		ops = append(ops, "image")
	}
	if len(ops) != 1 {
		return ""
	}
	return ops[0]
}

// Parse decodes recipe. Relative image paths are resolved against dir.
func Parse(data []byte, dir string) (*Recipe, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var r Recipe
	if err := dec.Decode(&r); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("recipe is empty")
		}
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}
	if len(r.Steps) == 0 {
		return nil, errors.New("recipe has no steps")
	}
	for i := range r.Steps {
		s := &r.Steps[i]
		if len(s.Op()) == 0 {
			return nil, fmt.Errorf("step %d must define exactly one operation", i+1)
		}
		if s.Image != nil && len(s.Image.Path) > 0 && !filepath.IsAbs(s.Image.Path) {
			s.Image.Path = filepath.Join(dir, s.Image.Path)
		}
	}
	return &r, nil
}

// Load reads recipe from file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe: %w", err)
	}
	r, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("recipe %s: %w", path, err)
	}
	r.Path = path
	return r, nil
}
