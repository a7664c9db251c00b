package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdered(t *testing.T) {
	keys := map[string]struct{}{"a": {}, "b": {}, "c": {}, "d": {}}

	tests := []struct {
		name     string
		declared []string
		fallback []string
		want     []string
	}{
		{
			name:     "declared first",
			declared: []string{"c", "a"},
			fallback: []string{"a", "b", "c", "d"},
			want:     []string{"c", "a", "b", "d"},
		},
		{
			name:     "unknown declared keys are skipped",
			declared: []string{"x", "d"},
			fallback: []string{"a", "b", "c", "d"},
			want:     []string{"d", "a", "b", "c"},
		},
		{
			name:     "fallback only",
			fallback: []string{"a", "b", "c", "d"},
			want:     []string{"a", "b", "c", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ordered(keys, tt.declared, tt.fallback))
		})
	}
}
