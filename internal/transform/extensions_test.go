package transform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadExtensions(t *testing.T) {
	operation := map[string]any{
		extOperationType: "Function",
		extGroupedPath:   []any{"/me/messages"},
		"x-unknown":      42,
	}
	pathItem := map[string]any{
		extGroupedPath: []any{"/users/{id}/messages"},
		extPreview:     true,
	}

	ext := readExtensions(operation, pathItem)

	assert.Equal(t, []string{"/me/messages"}, ext.GroupedPaths)
	assert.Equal(t, "Function", ext.OperationType)
	assert.True(t, ext.IsFunctionOrAction())
	assert.True(t, ext.IsPreview)
}

func TestReadExtensionsRawJSON(t *testing.T) {
	ext := readExtensions(map[string]any{
		extGroupedPath:   json.RawMessage(`["/a","/b"]`),
		extPreview:       json.RawMessage(`"true"`),
		extOperationType: json.RawMessage(`"operation"`),
	})

	assert.Equal(t, []string{"/a", "/b"}, ext.GroupedPaths)
	assert.True(t, ext.IsPreview)
	assert.False(t, ext.IsFunctionOrAction())
}

func TestReadExtensionsEmpty(t *testing.T) {
	ext := readExtensions(nil, map[string]any{extGroupedPath: ""})

	assert.Nil(t, ext.GroupedPaths)
	assert.False(t, ext.IsPreview)
	assert.Empty(t, ext.OperationType)
}
