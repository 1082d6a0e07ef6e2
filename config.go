package route

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Config is the file form of the router options.
type Config struct {
	BasePath       string       `yaml:"base_path" json:"base_path"`
	MergeConflicts ConflictMode `yaml:"merge_conflicts" json:"merge_conflicts"`
	ParamConflicts ConflictMode `yaml:"param_conflicts" json:"param_conflicts"`
}

// Validate checks c without applying it.
func (c Config) Validate() error {
	if _, err := normalizeBasePath(c.BasePath); err != nil {
		return err
	}
	for _, mode := range []ConflictMode{c.MergeConflicts, c.ParamConflicts} {
		if mode != "" && mode != ConflictLenient && mode != ConflictStrict {
			return fmt.Errorf("unknown conflict mode %q", mode)
		}
	}
	return nil
}

// ParseConfig decodes a YAML config.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("yaml.Unmarshal: %w", err)
	}
	return c, c.Validate()
}

// ParseConfigJSON decodes a JSON config.
func ParseConfigJSON(data []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("json.Unmarshal: %w", err)
	}
	return c, c.Validate()
}

// LoadConfig reads the config file at path. Files ending in .json are
// decoded as JSON, everything else as YAML.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("os.ReadFile: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseConfigJSON(data)
	}
	return ParseConfig(data)
}
