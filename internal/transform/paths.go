package transform

import (
	"sort"
	"strings"
)

type queryPair struct {
	key   string
	value string
	bare  bool
}

func (p queryPair) String() string {
	if p.bare {
		return p.key
	}
	return p.key + "=" + p.value
}

// FoldRequiredQuery appends required query parameters to a path template as
// name={name} pairs. Literal pairs already in the template are kept unless a
// required parameter has the same key; the templated pair wins. Pairs are
// sorted by key so the result does not depend on declaration order.
func FoldRequiredQuery(path string, required []string) string {
	if len(required) == 0 {
		return path
	}

	base, literal, hasQuery := strings.Cut(path, "?")

	requiredKeys := make(map[string]bool, len(required))
	pairs := make([]queryPair, 0, len(required))
	for _, name := range required {
		if requiredKeys[name] {
			continue
		}
		requiredKeys[name] = true
		pairs = append(pairs, queryPair{key: name, value: "{" + name + "}"})
	}

	if hasQuery && literal != "" {
		for _, raw := range strings.Split(literal, "&") {
			if raw == "" {
				continue
			}
			key, value, found := strings.Cut(raw, "=")
			if requiredKeys[key] {
				continue
			}
			pairs = append(pairs, queryPair{key: key, value: value, bare: !found})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].key < pairs[j].key
	})

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.String())
	}
	return base + "?" + strings.Join(parts, "&")
}
