package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groupsDocument = `
openapi: 3.0.3
info:
  title: Directory
  version: v1.0
tags:
  - name: users
    description: User operations
  - name: groups
paths:
  /users:
    get:
      operationId: users_list
      tags: [users]
      responses:
        "200":
          description: OK
  /groups:
    get:
      operationId: groups_list
      tags: [groups, users]
      responses:
        "200":
          description: OK
  /devices:
    get:
      operationId: devices_list
      tags: [devices]
      responses:
        "200":
          description: OK
  /health:
    get:
      responses:
        "200":
          description: OK
`

func TestTransformOperationGroups(t *testing.T) {
	model, diags := transformService(t, groupsDocument, Options{})
	assert.Zero(t, diags.Len())

	names := make([]string, 0, len(model.OperationGroups))
	for _, group := range model.OperationGroups {
		names = append(names, group.Name)
	}
	assert.Equal(t, []string{"users", "groups", "devices", "default"}, names)

	users := model.OperationGroups[0]
	assert.Equal(t, "graph.users", users.ID)
	assert.Equal(t, "User operations", users.Summary)
	assert.Equal(t, "v1.0", users.APIVersion)
	assert.Equal(t, []string{"graph.users.list"}, users.Operations)
	assert.Equal(t, []string{"graph.groups.list"}, users.ExtendedOperations)

	groups := model.OperationGroups[1]
	assert.Equal(t, []string{"graph.groups.list"}, groups.Operations)
	assert.Nil(t, groups.ExtendedOperations)

	devices := model.OperationGroups[2]
	assert.Empty(t, devices.Summary)
	assert.Equal(t, []string{"graph.devices.list"}, devices.Operations)

	def := model.OperationGroups[3]
	assert.Equal(t, []string{"graph.default.get_health"}, def.Operations)
}

func TestTransformOperationGroupWithoutOperations(t *testing.T) {
	src := `
openapi: 3.0.3
info:
  title: Empty
  version: "1"
tags:
  - name: unused
paths: {}
`
	model, _ := transformService(t, src, Options{})

	require.Len(t, model.OperationGroups, 1)
	assert.NotNil(t, model.OperationGroups[0].Operations)
	assert.Empty(t, model.OperationGroups[0].Operations)
}
