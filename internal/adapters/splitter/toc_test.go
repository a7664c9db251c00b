package splitter

import (
	"testing"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderTOCGroups(t *testing.T) {
	toc := RenderTOC(testModel())

	assert.Equal(t, `# Microsoft Graph

- [Users](users.yml)
  - [get](users/get.yml)
- [Users.Messages](users/messages.yml)
  - [list](users/messages/list.yml)
- [Components](components.yml)
  - [microsoft.graph.user](components/microsoft.graph.user.yml)
`, toc)
}

func TestRenderTOCAggregateTree(t *testing.T) {
	model := testModel()
	root := domain.NewRestTocGroup("")
	users := root.GetOrCreateChild("users")
	users.Leaves = append(users.Leaves, &domain.GraphAggregateEntity{MainOperation: model.Operations[1]})
	messages := users.GetOrCreateChild("messages")
	messages.Leaves = append(messages.Leaves, &domain.GraphAggregateEntity{MainOperation: model.Operations[0]})
	model.Aggregate = &domain.GraphAggregateResult{Root: root}
	model.Components = nil

	toc := RenderTOC(model)

	assert.Equal(t, `# Microsoft Graph

- Users
  - [get](users/get.yml)
  - Messages
    - [list](users/messages/list.yml)
`, toc)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "CalendarGroup", DisplayName("calendarGroup"))
	assert.Equal(t, "Users", DisplayName("users"))
}
