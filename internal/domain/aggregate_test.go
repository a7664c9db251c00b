package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestTocGroupGetOrCreateChild(t *testing.T) {
	root := NewRestTocGroup("")

	users := root.GetOrCreateChild("users")
	require.NotNil(t, users)
	assert.Same(t, users, root.GetOrCreateChild("users"))
	assert.Same(t, users, root.Child("users"))
	assert.Nil(t, root.Child("groups"))

	root.GetOrCreateChild("groups")
	names := make([]string, 0, 2)
	for _, child := range root.Children() {
		names = append(names, child.Name)
	}
	assert.Equal(t, []string{"users", "groups"}, names)
}

func TestRestTocGroupWalk(t *testing.T) {
	root := NewRestTocGroup("")
	root.GetOrCreateChild("users").GetOrCreateChild("messages")
	root.GetOrCreateChild("groups")

	var visited []string
	root.Walk(func(_ *RestTocGroup, path []string) {
		visited = append(visited, strings.Join(path, "."))
	})

	assert.Equal(t, []string{"", "users", "users.messages", "groups"}, visited)
}

func TestGraphAggregateResultCanonical(t *testing.T) {
	result := &GraphAggregateResult{IDMappings: map[string]string{"alias": "main"}}

	assert.Equal(t, "main", result.Canonical("alias"))
	assert.Equal(t, "other", result.Canonical("other"))

	var empty *GraphAggregateResult
	assert.Equal(t, "alias", empty.Canonical("alias"))
}
