package contrast

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls which files are scanned and which utilities pair up.
// Pattern lists are regular expressions matched against a whole utility.
type Config struct {
	Extensions      []string `yaml:"extensions"`
	ExcludeDirs     []string `yaml:"exclude_dirs"`
	DarkBackgrounds []string `yaml:"dark_backgrounds"`
	LightTexts      []string `yaml:"light_texts"`
}

const neutralPalettes = `(?:gray|slate|zinc|neutral|stone)`

// DefaultConfig returns the built-in scan settings.
func DefaultConfig() Config {
	return Config{
		Extensions:  []string{".tsx", ".jsx", ".ts", ".js", ".html", ".vue"},
		ExcludeDirs: []string{"node_modules", ".git", ".next", "dist", "build", "coverage"},
		DarkBackgrounds: []string{
			`bg-black(?:/\d+)?`,
			`bg-` + neutralPalettes + `-(?:700|800|900|950)(?:/\d+)?`,
		},
		LightTexts: []string{
			`text-white(?:/\d+)?`,
			`text-` + neutralPalettes + `-(?:50|100|200|300)(?:/\d+)?`,
		},
	}
}

// LoadConfig reads a YAML config file. Lists present in the file replace the
// corresponding defaults; omitted or empty lists keep them. exclude_dirs is
// the exception: an explicit empty list disables exclusions. Unknown keys are
// rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open contrast config: %w", err)
	}
	defer f.Close()

	var override Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&override); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse contrast config %s: %w", path, err)
	}

	if len(override.Extensions) > 0 {
		cfg.Extensions = override.Extensions
	}
	if override.ExcludeDirs != nil {
		cfg.ExcludeDirs = override.ExcludeDirs
	}
	if len(override.DarkBackgrounds) > 0 {
		cfg.DarkBackgrounds = override.DarkBackgrounds
	}
	if len(override.LightTexts) > 0 {
		cfg.LightTexts = override.LightTexts
	}
	return cfg, nil
}
