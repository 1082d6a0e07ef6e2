// Package manifest describes a router in YAML or JSON so routes can be
// inspected and matched without the application that registers them.
package manifest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/generikvault/route/v2"
)

// Manifest is a router description. Mounts are built as routers of their
// own and merged into the parent.
type Manifest struct {
	route.Config `yaml:",inline"`

	Matchers map[string]string `yaml:"matchers" json:"matchers"`
	Routes   []Route           `yaml:"routes" json:"routes"`
	Mounts   []Manifest        `yaml:"mounts" json:"mounts"`
}

// Route is one registered path and the methods it serves.
type Route struct {
	Path    string   `yaml:"path" json:"path"`
	Methods []string `yaml:"methods" json:"methods"`
}

// Handler is the handler value a manifest registers for each method.
type Handler struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

func (h Handler) String() string {
	return h.Method + " " + h.Path
}

// Parse decodes a YAML manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}
	return &m, nil
}

// ParseJSON decodes a JSON manifest.
func ParseJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}
	return &m, nil
}

// Load reads the manifest at path, as JSON for .json files and YAML otherwise.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return Parse(data)
}

// Build creates the router described by m.
func (m *Manifest) Build(logger *slog.Logger) (*route.Router, error) {
	opts := []route.Option{route.FromConfig(m.Config), route.WithLogger(logger)}
	for name, expr := range m.Matchers {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("matcher %s: %w", name, err)
		}
		opts = append(opts, route.WithMatcher(name, route.RegexpMatcher(re)))
	}
	r, err := route.New(opts...)
	if err != nil {
		return nil, err
	}

	for _, mount := range m.Mounts {
		sub, err := mount.Build(logger)
		if err != nil {
			return nil, fmt.Errorf("mount %q: %w", mount.BasePath, err)
		}
		if err := r.Merge(sub); err != nil {
			return nil, err
		}
	}

	for _, rt := range m.Routes {
		store, err := r.Route(rt.Path)
		if err != nil {
			return nil, err
		}
		for _, method := range rt.Methods {
			if err := store.SetHandler(method, Handler{Method: method, Path: rt.Path}); err != nil {
				return nil, fmt.Errorf("route %q: %w", rt.Path, err)
			}
		}
	}
	return r, nil
}
