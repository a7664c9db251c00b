package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mapping = `
target_dir: docs
component_prefix: microsoft.graph.
aggregate: true
organizations:
  - name: Microsoft Graph
    services:
      - name: Graph
        toc_title: Microsoft Graph REST API
        api_version: v1.0
        sources: [graph/openapi.yaml]
`

func writeMapping(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeMapping(t, mapping))
	require.NoError(t, err)

	assert.Equal(t, "docs", cfg.TargetDir)
	assert.Equal(t, "microsoft.graph.", cfg.ComponentPrefix)
	assert.True(t, cfg.Aggregate)
	assert.True(t, cfg.FoldRequiredQuery)
	assert.False(t, cfg.ValidateSources)

	require.Len(t, cfg.Organizations, 1)
	org := cfg.Organizations[0]
	assert.Equal(t, "Microsoft Graph", org.Name)
	require.Len(t, org.Services, 1)
	svc := org.Services[0]
	assert.Equal(t, "Graph", svc.Name)
	assert.Equal(t, "Microsoft Graph REST API", svc.Title())
	assert.Equal(t, "v1.0", svc.APIVersion)
	assert.Equal(t, []string{"graph/openapi.yaml"}, svc.Sources)

	require.NoError(t, cfg.Validate())
}

func TestLoadRejectsInvalidMapping(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no organizations", content: "target_dir: docs\n"},
		{name: "unknown key", content: mapping + "colour: blue\n"},
		{name: "service without sources", content: "organizations:\n  - name: org\n    services:\n      - name: svc\n"},
		{name: "wrong type", content: "aggregate: yes please\norganizations: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeMapping(t, tt.content))
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfig)
}

func TestValidate(t *testing.T) {
	valid := Config{
		TargetDir: "docs",
		Organizations: []Organization{{
			Name:     "org",
			Services: []Service{{Name: "svc", Sources: []string{"a.yaml"}}},
		}},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "no target dir", mutate: func(c *Config) { c.TargetDir = "" }},
		{name: "no organizations", mutate: func(c *Config) { c.Organizations = nil }},
		{name: "unnamed organization", mutate: func(c *Config) { c.Organizations[0].Name = "" }},
		{name: "unnamed service", mutate: func(c *Config) { c.Organizations[0].Services[0].Name = "" }},
		{name: "no sources", mutate: func(c *Config) { c.Organizations[0].Services[0].Sources = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Organizations = []Organization{{
				Name:     "org",
				Services: []Service{{Name: "svc", Sources: []string{"a.yaml"}}},
			}}
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrConfig)
		})
	}
}

func TestServiceTitle(t *testing.T) {
	assert.Equal(t, "Graph", Service{Name: "Graph"}.Title())
	assert.Equal(t, "Graph API", Service{Name: "Graph", TocTitle: "Graph API"}.Title())
}

func TestValidateData(t *testing.T) {
	json := `{"organizations": [{"name": "org", "services": [{"name": "svc", "sources": ["a.json"]}]}]}`
	assert.NoError(t, ValidateData([]byte(json)))
	assert.ErrorIs(t, ValidateData([]byte("organizations: [")), ErrConfig)
}
