package transform

import (
	"testing"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOperationID = "graph.pets.list"

func newTestResolver(diags *domain.Diagnostics) *schemaResolver {
	return &schemaResolver{
		service: "graph",
		version: "v1.0",
		unit:    testOperationID,
		definitionID: func(name string) (string, error) {
			return JoinID(testOperationID, name)
		},
		pending: newExtractions(),
		diags:   diags,
	}
}

func TestResolveScalars(t *testing.T) {
	r := newTestResolver(domain.NewDiagnostics())

	dateTime := typed(openapi3.TypeString)
	dateTime.Format = "date-time"

	enum := typed(openapi3.TypeString)
	enum.Enum = []any{"dog", "cat", "bird"}

	tests := []struct {
		name   string
		schema *openapi3.SchemaRef
		want   domain.PropertyTypeEntity
	}{
		{
			name:   "type name",
			schema: inline(typed(openapi3.TypeBoolean)),
			want:   domain.PropertyTypeEntity{Kind: domain.KindSimple, ReferencedType: "boolean"},
		},
		{
			name:   "format wins over type",
			schema: inline(dateTime),
			want:   domain.PropertyTypeEntity{Kind: domain.KindSimple, ReferencedType: "date-time"},
		},
		{
			name:   "untyped is object",
			schema: inline(&openapi3.Schema{}),
			want:   domain.PropertyTypeEntity{Kind: domain.KindSimple, ReferencedType: "object"},
		},
		{
			name:   "enum values sorted",
			schema: inline(enum),
			want:   domain.PropertyTypeEntity{Kind: domain.KindEnum, Values: []string{"bird", "cat", "dog"}},
		},
		{
			name:   "reference",
			schema: ref("Pet"),
			want:   domain.PropertyTypeEntity{Kind: domain.KindComponent, ReferencedType: "graph.schemas.pet"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.resolve(tt.schema, "value")
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestResolveArrayAndDictionary(t *testing.T) {
	r := newTestResolver(domain.NewDiagnostics())

	got := r.resolve(inline(arrayOf(ref("Pet"))), "pets")
	require.Len(t, got, 1)
	assert.Equal(t, domain.KindComponent, got[0].Kind)
	assert.Equal(t, "graph.schemas.pet", got[0].ReferencedType)
	assert.True(t, got[0].IsArray)

	dict := typed(openapi3.TypeObject)
	dict.AdditionalProperties = openapi3.AdditionalProperties{Schema: inline(typed(openapi3.TypeString))}

	got = r.resolve(inline(dict), "labels")
	require.Len(t, got, 1)
	assert.Equal(t, domain.PropertyTypeEntity{Kind: domain.KindSimple, ReferencedType: "string", IsDictionary: true}, got[0])
}

func TestResolveInlineObject(t *testing.T) {
	r := newTestResolver(domain.NewDiagnostics())

	name := typed(openapi3.TypeString)
	name.Description = "Display name"
	s := object(openapi3.Schemas{
		"name": inline(name),
		"id":   inline(typed(openapi3.TypeString)),
	})
	s.Required = []string{"id"}

	got := r.resolve(inline(s), "owner")
	require.Len(t, got, 1)
	assert.Equal(t, domain.KindObject, got[0].Kind)
	require.Len(t, got[0].Properties, 2)
	assert.Equal(t, "id", got[0].Properties[0].Name)
	assert.True(t, got[0].Properties[0].IsRequired)
	assert.Equal(t, "name", got[0].Properties[1].Name)
	assert.Equal(t, "Display name", got[0].Properties[1].Description)
	assert.False(t, got[0].Properties[1].IsRequired)
}

func TestResolveExtractsInlineElements(t *testing.T) {
	diags := domain.NewDiagnostics()
	r := newTestResolver(diags)

	tag := object(openapi3.Schemas{"label": inline(typed(openapi3.TypeString))})
	tag.Description = "A tag"

	got := r.resolve(inline(arrayOf(inline(tag))), "tags")
	require.Len(t, got, 1)
	assert.Equal(t, domain.KindComponent, got[0].Kind)
	assert.Equal(t, "graph.pets.list.tagsparam", got[0].ReferencedType)
	assert.True(t, got[0].IsArray)

	// The same schema resolved twice is extracted once.
	r.resolve(inline(arrayOf(inline(tag))), "tags")

	definitions := r.flush()
	require.Len(t, definitions, 1)
	assert.Equal(t, "tagsParam", definitions[0].Name)
	assert.Equal(t, "graph.pets.list.tagsparam", definitions[0].ID)
	assert.Equal(t, "A tag", definitions[0].Description)
	require.Len(t, definitions[0].PropertyItems, 1)
	assert.Equal(t, "label", definitions[0].PropertyItems[0].Name)

	assert.Empty(t, r.flush())
	assert.Zero(t, diags.Len())
}

func TestResolveNestedExtraction(t *testing.T) {
	r := newTestResolver(domain.NewDiagnostics())

	inner := object(openapi3.Schemas{"x": inline(typed(openapi3.TypeInteger))})
	outer := object(openapi3.Schemas{"points": inline(arrayOf(inline(inner)))})

	r.resolve(inline(arrayOf(inline(outer))), "shapes")

	definitions := r.flush()
	require.Len(t, definitions, 2)
	assert.Equal(t, "shapesParam", definitions[0].Name)
	assert.Equal(t, "pointsParam", definitions[1].Name)
}

func TestResolveExtractionCollision(t *testing.T) {
	diags := domain.NewDiagnostics()
	r := newTestResolver(diags)

	first := object(openapi3.Schemas{"a": inline(typed(openapi3.TypeString))})
	second := object(openapi3.Schemas{"b": inline(typed(openapi3.TypeString))})

	r.resolve(inline(arrayOf(inline(first))), "items")
	got := r.resolve(inline(arrayOf(inline(second))), "items")

	require.Len(t, got, 1)
	assert.Equal(t, domain.KindComponent, got[0].Kind)
	assert.Empty(t, got[0].ReferencedType)
	assert.Equal(t, 1, diags.Len())
	assert.ErrorIs(t, diags.Err(), domain.ErrAuthoring)
	assert.Len(t, r.flush(), 1)
}

func TestResolveComposite(t *testing.T) {
	r := newTestResolver(domain.NewDiagnostics())

	s := &openapi3.Schema{
		AnyOf: openapi3.SchemaRefs{ref("Cat"), inline(typed(openapi3.TypeString))},
	}

	got := r.resolve(inline(s), "pet")
	require.Len(t, got, 2)
	assert.Equal(t, "graph.schemas.cat", got[0].ReferencedType)
	assert.Equal(t, "string", got[1].ReferencedType)
}

func TestResolveCompositeOfInlineObjects(t *testing.T) {
	diags := domain.NewDiagnostics()
	r := newTestResolver(diags)

	s := &openapi3.Schema{
		AllOf: openapi3.SchemaRefs{
			inline(object(openapi3.Schemas{"a": inline(typed(openapi3.TypeString))})),
			inline(object(openapi3.Schemas{"b": inline(typed(openapi3.TypeString))})),
		},
	}

	assert.Nil(t, r.resolve(inline(s), "mixed"))
	assert.Equal(t, 1, diags.Len())
}

func TestResolveStampsComponentTypes(t *testing.T) {
	r := newTestResolver(domain.NewDiagnostics())
	r.stamp = true

	got := r.resolve(inline(typed(openapi3.TypeString)), "name")
	require.Len(t, got, 1)
	assert.Equal(t, "graph", got[0].Service)
	assert.Equal(t, "v1.0", got[0].APIVersion)
}

func TestResolveScalarWithComposite(t *testing.T) {
	r := newTestResolver(domain.NewDiagnostics())

	s := typed(openapi3.TypeString)
	s.AnyOf = openapi3.SchemaRefs{
		inline(&openapi3.Schema{Format: "date"}),
		inline(&openapi3.Schema{Format: "date-time"}),
	}

	got := r.resolve(inline(s), "when")
	require.Len(t, got, 2)
	assert.Equal(t, "date", got[0].ReferencedType)
	assert.Equal(t, "date-time", got[1].ReferencedType)
}

func TestResolveCompositeWithOwnProperties(t *testing.T) {
	diags := domain.NewDiagnostics()
	r := newTestResolver(diags)

	s := object(openapi3.Schemas{"id": inline(typed(openapi3.TypeString))})
	s.AllOf = openapi3.SchemaRefs{
		inline(object(openapi3.Schemas{"name": inline(typed(openapi3.TypeString))})),
	}

	got := r.resolve(inline(s), "entity")
	require.Len(t, got, 2)
	assert.Equal(t, domain.KindObject, got[0].Kind)
	assert.Equal(t, "id", got[0].Properties[0].Name)
	assert.Equal(t, domain.KindObject, got[1].Kind)
	assert.Equal(t, "name", got[1].Properties[0].Name)
	assert.Zero(t, diags.Len())
}
