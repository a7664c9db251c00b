package domain

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsReport(t *testing.T) {
	diags := NewDiagnostics()
	require.NoError(t, diags.Err())

	diags.Report("graph.users.get", "link %q targets unknown operation", "self")
	diags.Add(nil)

	require.Equal(t, 1, diags.Len())
	err := diags.Errors()[0]
	assert.True(t, errors.Is(err, ErrAuthoring))
	assert.EqualError(t, err, `graph.users.get: link "self" targets unknown operation`)

	var authoring *AuthoringError
	require.ErrorAs(t, diags.Err(), &authoring)
	assert.Equal(t, "graph.users.get", authoring.Unit)
}

func TestDiagnosticsConcurrentReport(t *testing.T) {
	diags := NewDiagnostics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			diags.Report(fmt.Sprintf("unit%d", i), "problem")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, diags.Len())
}

func TestStructuralError(t *testing.T) {
	cause := fmt.Errorf("%w: empty segment", ErrArgument)
	err := error(&StructuralError{Unit: "GET /pets", Message: "cannot build operation id", Cause: cause})

	assert.True(t, errors.Is(err, ErrStructural))
	assert.True(t, errors.Is(err, ErrArgument))
	assert.False(t, errors.Is(err, ErrAuthoring))
	assert.EqualError(t, err, "GET /pets: cannot build operation id: invalid argument: empty segment")

	assert.EqualError(t, Structuralf("", "no %s", "paths"), "no paths")
}
