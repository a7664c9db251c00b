// Package config provides mapping file loading for the REST documentation generator.
package config

import (
	"fmt"

	configloader "github.com/GabrielNunesIT/go-libs/config-loader"
)

// EnvPrefix is the prefix of environment variables overriding file values.
const EnvPrefix = "RESTDOCS_"

// DefaultTargetDir is used when neither the file nor the flags set one.
const DefaultTargetDir = "_output"

// Config is the mapping of organizations and services to source documents.
type Config struct {
	TargetDir         string         `koanf:"target_dir"`
	ComponentPrefix   string         `koanf:"component_prefix"`
	Aggregate         bool           `koanf:"aggregate"`
	FoldRequiredQuery bool           `koanf:"fold_required_query"`
	ValidateSources   bool           `koanf:"validate_sources"`
	Organizations     []Organization `koanf:"organizations"`
}

// Organization groups services under one navigation root.
type Organization struct {
	Name     string    `koanf:"name"`
	Services []Service `koanf:"services"`
}

// Service is one API surface built from one or more source documents.
type Service struct {
	Name       string   `koanf:"name"`
	TocTitle   string   `koanf:"toc_title"`
	APIVersion string   `koanf:"api_version"`
	Sources    []string `koanf:"sources"`
}

// Title returns the TOC title, defaulting to the service name.
func (s Service) Title() string {
	if s.TocTitle != "" {
		return s.TocTitle
	}
	return s.Name
}

// Default returns the configuration used when no mapping file is given.
func Default() Config {
	return Config{
		TargetDir:         DefaultTargetDir,
		FoldRequiredQuery: true,
	}
}

// Load reads the mapping file at path, validating it against the mapping
// schema first. Environment variables prefixed with EnvPrefix override file
// values. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := ValidateFile(path); err != nil {
			return nil, err
		}
	}

	cfg, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return &cfg, nil
}

func load(path string) (Config, error) {
	if path == "" {
		loader := configloader.NewConfigLoader(
			configloader.WithDefaults(Default()),
			configloader.WithEnv[Config](EnvPrefix),
		)
		return loader.Load()
	}

	loader := configloader.NewConfigLoader(
		configloader.WithDefaults(Default()),
		configloader.WithFile[Config](path),
		configloader.WithEnv[Config](EnvPrefix),
	)
	return loader.Load()
}

// Validate checks the fields the build cannot run without.
func (c *Config) Validate() error {
	if c.TargetDir == "" {
		return fmt.Errorf("%w: target_dir is required", ErrConfig)
	}
	if len(c.Organizations) == 0 {
		return fmt.Errorf("%w: at least one organization is required", ErrConfig)
	}
	for i, org := range c.Organizations {
		if org.Name == "" {
			return fmt.Errorf("%w: organization %d has no name", ErrConfig, i)
		}
		for j, svc := range org.Services {
			if svc.Name == "" {
				return fmt.Errorf("%w: service %d of %q has no name", ErrConfig, j, org.Name)
			}
			if len(svc.Sources) == 0 {
				return fmt.Errorf("%w: service %q has no sources", ErrConfig, svc.Name)
			}
		}
	}
	return nil
}
