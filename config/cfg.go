package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

type DoubleQuoteString string

// MarshalYAML implements the yaml.Marshaler interface.
func (s DoubleQuoteString) MarshalYAML() (any, error) {
	node := yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.DoubleQuotedStyle,
		Value: string(s),
	}
	return &node, nil
}

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// PageConfig describes the default page geometry used by the layout
	// driver when a document does not set its own page size via style.
	PageConfig struct {
		WidthMM      float64 `yaml:"width_mm" validate:"gt=0"`
		HeightMM     float64 `yaml:"height_mm" validate:"gt=0"`
		MarginTopMM  float64 `yaml:"margin_top_mm" validate:"gte=0"`
		MarginRightMM float64 `yaml:"margin_right_mm" validate:"gte=0"`
		MarginBottomMM float64 `yaml:"margin_bottom_mm" validate:"gte=0"`
		MarginLeftMM float64 `yaml:"margin_left_mm" validate:"gte=0"`
	}

	// FontsConfig lists where the font manager looks for font files and
	// which family backs text when no family matches.
	FontsConfig struct {
		SearchPaths []string `yaml:"search_paths" validate:"dive,required"`
		DefaultPath string   `yaml:"default_path" validate:"required,filepath"`
		CacheDB     string   `yaml:"shape_cache_db,omitempty" sanitize:"path_clean"`
	}

	// LayoutConfig holds the engine knobs spec.md leaves to the caller:
	// the pass budget and the default hyphenation language.
	LayoutConfig struct {
		MaxPasses        int    `yaml:"max_passes" validate:"min=1,max=64"`
		DefaultLanguage  string `yaml:"default_language" validate:"required"`
		EnableHyphenation bool  `yaml:"enable_hyphenation"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Page      PageConfig     `yaml:"page"`
		Fonts     FontsConfig    `yaml:"fonts"`
		Layout    LayoutConfig   `yaml:"layout"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

var requiredOptions []func(*gencfg.ProcessingOptions)

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
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
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
