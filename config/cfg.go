package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"docxgen/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	RunDefaults struct {
		Font  string `yaml:"font" validate:"required"`
		Size  int    `yaml:"size" validate:"min=1,max=1638"`
		Color string `yaml:"color" validate:"hexadecimal,len=6"`
	}

	LimitsConfig struct {
		MaxTableRows  int `yaml:"max_table_rows" validate:"min=1"`
		MaxTableCols  int `yaml:"max_table_cols" validate:"min=1,max=63"`
		MaxTableCells int `yaml:"max_table_cells" validate:"min=1"`
	}

	ImagesConfig struct {
		Format          common.ImageFormat `yaml:"format"`
		JPEGQuality     int                `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
		ScaleFactor     float64            `yaml:"scale_factor" validate:"gte=1.0,lte=8.0"`
		DPI             int                `yaml:"dpi" validate:"min=72,max=1200"`
		MaxSourceBytes  int64              `yaml:"max_source_bytes" validate:"min=1"`
		MaxSourcePixels int                `yaml:"max_source_pixels" validate:"min=1"`
		MaxDisplay      int                `yaml:"max_display" validate:"min=1,max=2863311530"`
	}

	MetainformationConfig struct {
		Title   string `yaml:"title"`
		Creator string `yaml:"creator"`
	}

	DocumentConfig struct {
		FixZip                bool                  `yaml:"fix_zip"`
		Strict                bool                  `yaml:"strict"`
		OutputNameTemplate    string                `yaml:"output_name_template"`
		FileNameTransliterate bool                  `yaml:"file_name_transliterate"`
		Paper                 common.PaperSize      `yaml:"paper"`
		Defaults              RunDefaults           `yaml:"defaults"`
		Limits                LimitsConfig          `yaml:"limits"`
		Images                ImagesConfig          `yaml:"images"`
		Metainformation       MetainformationConfig `yaml:"metainformation"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
