package build

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/adapters/converters"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/config"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersDocument = `
openapi: 3.0.3
info:
  title: Users
  version: "1.0"
tags:
  - name: users
    description: User operations
paths:
  /users:
    get:
      operationId: users_list
      tags: [users]
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/user'
components:
  schemas:
    user:
      type: object
      properties:
        id:
          type: string
`

const brokenLinkDocument = `
openapi: 3.0.3
info:
  title: Users
  version: "1.0"
paths:
  /users:
    get:
      operationId: users_list
      tags: [users]
      responses:
        "200":
          description: OK
          links:
            next:
              operationId: users_missing
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadConfig(t *testing.T, dir, mapping string) *config.Config {
	t.Helper()
	cfg, err := config.Load(writeFile(t, dir, "mapping.yml", mapping))
	require.NoError(t, err)
	cfg.TargetDir = filepath.Join(dir, "out")
	return cfg
}

const mapping = `
validate_sources: true
organizations:
  - name: Contoso
    services:
      - name: Graph
        toc_title: Graph API
        sources: [users.yml]
`

func TestBuilderRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.yml", usersDocument)
	cfg := loadConfig(t, dir, mapping)

	builder := New(logger.NewConsoleLogger(os.Stdout), cfg, Options{
		SourceRoot: dir,
		Converter:  converters.NewADFConverter(),
	})
	require.NoError(t, builder.Run(context.Background()))

	serviceDir := filepath.Join(cfg.TargetDir, "contoso", "graph")
	for _, name := range []string{"toc.md", "users.yml", "components.yml", "graph.json"} {
		assert.FileExists(t, filepath.Join(serviceDir, name))
	}

	toc, err := os.ReadFile(filepath.Join(serviceDir, "toc.md"))
	require.NoError(t, err)
	assert.Contains(t, string(toc), "# Graph API")
}

func TestBuilderRunReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.yml", brokenLinkDocument)
	cfg := loadConfig(t, dir, mapping)
	cfg.ValidateSources = false

	err := New(logger.NewConsoleLogger(os.Stdout), cfg, Options{SourceRoot: dir}).Run(context.Background())
	require.ErrorIs(t, err, ErrDiagnostics)
	assert.Contains(t, err.Error(), "users_missing")

	assert.FileExists(t, filepath.Join(cfg.TargetDir, "contoso", "graph", "toc.md"))
}

func TestBuilderRunMissingSource(t *testing.T) {
	dir := t.TempDir()
	cfg := loadConfig(t, dir, mapping)

	err := New(logger.NewConsoleLogger(os.Stdout), cfg, Options{SourceRoot: dir}).Run(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDiagnostics)
}

func TestBuildServiceAggregates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.yml", usersDocument)
	cfg := loadConfig(t, dir, mapping)
	cfg.Aggregate = true

	builder := New(logger.NewConsoleLogger(os.Stdout), cfg, Options{SourceRoot: dir})
	diags := domain.NewDiagnostics()
	model, err := builder.BuildService(context.Background(), cfg.Organizations[0].Services[0], diags)
	require.NoError(t, err)

	assert.Equal(t, "Graph API", model.Title)
	require.NotNil(t, model.Aggregate)
	assert.Len(t, model.Aggregate.Aggregates, 1)
}

func TestMerge(t *testing.T) {
	first := &domain.ServiceModel{
		Name:       "graph",
		Operations: []*domain.OperationEntity{{ID: "graph.users.list"}},
		OperationGroups: []*domain.OperationGroupEntity{
			{ID: "graph.users", Operations: []string{"graph.users.list"}},
		},
		Components: &domain.ComponentGroupEntity{
			ID:         "graph.schemas",
			Components: []domain.ComponentEntity{{ID: "graph.schemas.user", Description: "first"}},
		},
	}
	second := &domain.ServiceModel{
		Name:        "graph",
		Description: "Directory",
		Operations:  []*domain.OperationEntity{{ID: "graph.users.get"}, {ID: "graph.groups.list"}},
		OperationGroups: []*domain.OperationGroupEntity{
			{ID: "graph.users", Summary: "Users", Operations: []string{"graph.users.get", "graph.users.list"}},
			{ID: "graph.groups", Operations: []string{"graph.groups.list"}},
		},
		Components: &domain.ComponentGroupEntity{
			ID: "graph.schemas",
			Components: []domain.ComponentEntity{
				{ID: "graph.schemas.user", Description: "second"},
				{ID: "graph.schemas.group"},
			},
		},
	}

	merged, err := Merge(nil, first)
	require.NoError(t, err)
	merged, err = Merge(merged, second)
	require.NoError(t, err)

	assert.Len(t, merged.Operations, 3)
	require.Len(t, merged.OperationGroups, 2)
	assert.Equal(t, []string{"graph.users.list", "graph.users.get"}, merged.OperationGroups[0].Operations)
	assert.Equal(t, "Users", merged.OperationGroups[0].Summary)
	assert.Equal(t, []string{"graph.schemas.user", "graph.schemas.group"}, merged.Components.ComponentIDs())
	assert.Equal(t, "first", merged.Components.Components[0].Description)
	assert.Equal(t, "Directory", merged.Description)
}

func TestMergeRejectsDuplicateOperationIDs(t *testing.T) {
	first := &domain.ServiceModel{
		Name:       "graph",
		Operations: []*domain.OperationEntity{{ID: "graph.users.get"}},
	}
	second := &domain.ServiceModel{
		Name:       "graph",
		Operations: []*domain.OperationEntity{{ID: "graph.users.list"}, {ID: "graph.users.get"}},
	}

	_, err := Merge(first, second)
	require.ErrorIs(t, err, domain.ErrStructural)
	assert.Contains(t, err.Error(), "graph.users.get")
	assert.Len(t, first.Operations, 1)
}

func TestBuilderRunRejectsDuplicateOperationsAcrossSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.yml", usersDocument)
	writeFile(t, dir, "users-copy.yml", usersDocument)
	cfg := loadConfig(t, dir, `
organizations:
  - name: Contoso
    services:
      - name: Graph
        sources: [users.yml, users-copy.yml]
`)

	err := New(logger.NewConsoleLogger(os.Stdout), cfg, Options{SourceRoot: dir}).Run(context.Background())
	require.ErrorIs(t, err, domain.ErrStructural)
	assert.NotErrorIs(t, err, ErrDiagnostics)
}

// closingConverter closes the output file it is handed.
type closingConverter struct{}

func (closingConverter) Format() string { return "txt" }

func (closingConverter) Convert(_ *domain.ServiceModel, output io.Writer) error {
	return output.(*os.File).Close()
}

func TestBuilderRunReportsCloseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.yml", usersDocument)
	cfg := loadConfig(t, dir, mapping)

	err := New(logger.NewConsoleLogger(os.Stdout), cfg, Options{
		SourceRoot: dir,
		Converter:  closingConverter{},
	}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to close output file")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".pdf", Extension("pdf"))
	assert.Equal(t, ".docx", Extension("docx"))
	assert.Equal(t, ".json", Extension("confluence"))
	assert.Equal(t, "", Extension(""))
}
