package transform

import (
	"testing"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformService(t *testing.T) {
	model, _ := transformService(t, petsDocument, Options{})

	assert.Equal(t, testService, model.Name)
	assert.Equal(t, "Pets", model.Title)
	assert.Equal(t, "Pet store", model.Description)
	assert.Equal(t, "1.0", model.APIVersion)
	assert.Len(t, model.Operations, 4)
	require.Len(t, model.OperationGroups, 1)
	assert.Len(t, model.OperationGroups[0].Operations, 4)
	assert.Equal(t, []string{"graph.schemas.pet"}, model.Components.ComponentIDs())
	assert.Nil(t, model.Aggregate)
}

func TestTransformServiceStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		tr   *Transformer
	}{
		{name: "no document", tr: New(nil, nil, Options{ServiceName: "graph"}, nil)},
		{name: "no paths", tr: New(&openapi3.T{}, nil, Options{ServiceName: "graph"}, nil)},
		{name: "empty service name", tr: New(&openapi3.T{Paths: openapi3.NewPaths()}, nil, Options{}, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.tr.TransformService()
			assert.ErrorIs(t, err, domain.ErrStructural)
		})
	}
}

func TestTransformServiceDuplicateOperationID(t *testing.T) {
	src := `
openapi: 3.0.3
info:
  title: Dup
  version: "1"
paths:
  /a:
    get:
      operationId: items_get
      tags: [items]
      responses:
        "200":
          description: OK
  /b:
    get:
      operationId: get
      tags: [items]
      responses:
        "200":
          description: OK
`
	tr := newTestTransformer(t, src, Options{})

	_, err := tr.TransformService()
	assert.ErrorIs(t, err, domain.ErrStructural)
}

func TestTransformServiceDeclarationOrder(t *testing.T) {
	src := `
openapi: 3.0.3
info:
  title: Order
  version: "1"
paths:
  /zeta:
    post:
      operationId: zeta_create
      responses:
        "200":
          description: OK
    get:
      operationId: zeta_list
      responses:
        "200":
          description: OK
  /alpha:
    get:
      operationId: alpha_list
      responses:
        "200":
          description: OK
`
	model, _ := transformService(t, src, Options{})

	ids := make([]string, 0, len(model.Operations))
	for _, op := range model.Operations {
		ids = append(ids, op.ID)
	}
	assert.Equal(t, []string{
		"graph.default.zeta_create",
		"graph.default.zeta_list",
		"graph.default.alpha_list",
	}, ids)
}

func TestLinkParametersLocationQualified(t *testing.T) {
	source := &domain.OperationEntity{
		ID: "graph.users.list",
		Responses: []domain.ResponseEntity{{
			StatusCode: "200",
			Links: []domain.LinkEntity{{
				Key:         "manager",
				OperationID: "graph.users.get",
				Parameters: []domain.LinkParameter{
					{Name: "path.id", Value: "$response.body#/managerId"},
					{Name: "query.expand", Value: "manager"},
				},
			}},
		}},
	}
	target := &domain.OperationEntity{
		ID: "graph.users.get",
		Parameters: []domain.ParameterEntity{
			{PropertyEntity: domain.PropertyEntity{Name: "id"}, In: "query"},
			{PropertyEntity: domain.PropertyEntity{Name: "id"}, In: "path"},
			{PropertyEntity: domain.PropertyEntity{Name: "expand"}, In: "query"},
		},
	}

	LinkParameters([]*domain.OperationEntity{source, target})

	assert.Nil(t, target.Parameters[0].Link)
	require.NotNil(t, target.Parameters[1].Link)
	assert.Equal(t, "managerId", target.Parameters[1].Link.Property)
	require.NotNil(t, target.Parameters[2].Link)
	assert.Empty(t, target.Parameters[2].Link.Property)
	assert.Equal(t, "manager", target.Parameters[2].Link.LinkKey)
}
