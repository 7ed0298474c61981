// Package configuration reads YAML problem configuration files: the model
// layout (which providers to assemble, with which options), the submodel
// override section, and the input/output variable file paths.
package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/registry"
)

// ComponentConfig declares one component of the problem model: either a
// service to resolve through submodel resolution, or a provider picked
// directly by identifier.
type ComponentConfig struct {
	Service  string         `yaml:"service,omitempty"`
	Provider string         `yaml:"provider,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// SolverConfig bounds the fixed-point sweep over the model.
type SolverConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
}

// ModelConfig is the ordered component list of the problem.
type ModelConfig struct {
	Components []ComponentConfig `yaml:"components"`
}

// Config is one parsed problem configuration file.
type Config struct {
	Title      string       `yaml:"title"`
	InputFile  string       `yaml:"input_file"`
	OutputFile string       `yaml:"output_file"`
	Model      ModelConfig  `yaml:"model"`
	Solver     SolverConfig `yaml:"solver"`

	// Submodels maps service id to a forced provider id; a null or empty
	// value deactivates the service.
	Submodels map[string]*string `yaml:"submodels"`

	// dir is the directory of the file, used to resolve relative paths.
	dir string
}

// Load parses a .yml/.yaml problem configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse configuration file %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)

	if len(cfg.Model.Components) == 0 {
		return nil, fmt.Errorf("configuration file %s declares no model components", path)
	}
	for i, comp := range cfg.Model.Components {
		if comp.Service == "" && comp.Provider == "" {
			return nil, fmt.Errorf("configuration file %s: component %d declares neither service nor provider", path, i)
		}
	}

	if cfg.Solver.MaxIterations <= 0 {
		cfg.Solver.MaxIterations = 50
	}
	if cfg.Solver.Tolerance <= 0 {
		cfg.Solver.Tolerance = 1e-6
	}

	return &cfg, nil
}

// InputFilePath returns the input variable file path, resolved against the
// configuration file's directory.
func (c *Config) InputFilePath() string {
	return c.resolve(c.InputFile)
}

// OutputFilePath returns the output variable file path, resolved against
// the configuration file's directory.
func (c *Config) OutputFilePath() string {
	return c.resolve(c.OutputFile)
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.dir, path)
}

// ResolutionContext builds the submodel override context declared by the
// submodels section.
func (c *Config) ResolutionContext() *registry.ResolutionContext {
	rc := registry.NewResolutionContext()
	for serviceID, providerID := range c.Submodels {
		if providerID == nil || *providerID == "" {
			rc.Deactivate(serviceID)
			continue
		}
		rc.Activate(serviceID, *providerID)
	}
	return rc
}

// ComponentOptions returns a component's options as api.Options.
func (c ComponentConfig) ComponentOptions() api.Options {
	opts := api.Options{}
	for k, v := range c.Options {
		opts[k] = v
	}
	return opts
}
