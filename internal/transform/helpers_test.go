package transform

import (
	"context"
	"testing"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/adapters/loader"
	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/require"
)

const testService = "Graph"

func newTestTransformer(t *testing.T, src string, opts Options) *Transformer {
	t.Helper()

	doc, err := loader.LoadData(context.Background(), []byte(src), loader.Options{})
	require.NoError(t, err)

	if opts.ServiceName == "" {
		opts.ServiceName = testService
	}
	return New(doc.Spec, doc.Order, opts, domain.NewDiagnostics())
}

func transformService(t *testing.T, src string, opts Options) (*domain.ServiceModel, *domain.Diagnostics) {
	t.Helper()

	tr := newTestTransformer(t, src, opts)
	model, err := tr.TransformService()
	require.NoError(t, err)
	return model, tr.Diagnostics()
}

func findOperation(t *testing.T, model *domain.ServiceModel, id string) *domain.OperationEntity {
	t.Helper()

	op := model.Operation(id)
	require.NotNil(t, op, "operation %s", id)
	return op
}

func typed(name string) *openapi3.Schema {
	return &openapi3.Schema{Type: &openapi3.Types{name}}
}

func inline(s *openapi3.Schema) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: s}
}

func ref(name string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Ref: "#/components/schemas/" + name, Value: typed(openapi3.TypeObject)}
}

func object(props openapi3.Schemas) *openapi3.Schema {
	s := typed(openapi3.TypeObject)
	s.Properties = props
	return s
}

func arrayOf(items *openapi3.SchemaRef) *openapi3.Schema {
	s := typed(openapi3.TypeArray)
	s.Items = items
	return s
}
