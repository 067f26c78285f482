// Package project implements the project configuration schema and the
// orchestrator that drives the front-end pipeline end to end: lexer,
// signature collector, dependency merger, and body parser, followed by
// entry-point validation and feature-gate elision.
package project

import (
	"github.com/BurntSushi/toml"
)

// Dependency describes one entry of a project's config.toml
// `dependencies` table.
type Dependency struct {
	Version  string   `toml:"version"`
	Features []string `toml:"features"`
	Remote   string   `toml:"remote"`
}

// RemoteWorker describes one entry of `remote_compiler_workers`. The
// distributed-compiler side that would consume this is out of scope; the
// field is carried only so a config.toml round-trips without data loss.
type RemoteWorker struct {
	Name    string `toml:"name"`
	Address string `toml:"address"`
}

// Config is the decoded form of a project's config.toml, exactly the
// keys the external-interfaces contract names: project identity, the
// enabled-feature set, the build output path, additional linking
// material, and declared dependencies.
type Config struct {
	Name                      string                `toml:"name"`
	IsLibrary                 bool                  `toml:"is_library"`
	Version                   string                `toml:"version"`
	Features                  []string              `toml:"features"`
	BuildPath                 string                `toml:"build_path"`
	AdditionalLinkingMaterial []string              `toml:"additional_linking_material"`
	Dependencies              map[string]Dependency `toml:"dependencies"`
	RemoteCompilerWorkers     []RemoteWorker        `toml:"remote_compiler_workers"`
}

// defaultBuildPath is used when config.toml omits build_path.
const defaultBuildPath = "out"

// LoadConfig decodes a config.toml file at path.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.BuildPath == "" {
		cfg.BuildPath = defaultBuildPath
	}
	return &cfg, nil
}

// EnabledFeatures reports whether feature is in the project's enabled set.
func (c *Config) EnabledFeatures(feature string) bool {
	for _, f := range c.Features {
		if f == feature {
			return true
		}
	}
	return false
}
