package domain

// DeclarationOrder records the order in which a source document declares
// its keyed sections. kin-openapi keeps them in maps.
type DeclarationOrder struct {
	Paths   []string
	Methods map[string][]string // path -> upper-case verbs
	Schemas []string
	Tags    []string
}

// Ordered returns keys sorted by their position in declared; keys not
// declared follow in the order of fallback.
func Ordered(keys map[string]struct{}, declared, fallback []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, list := range [][]string{declared, fallback} {
		for _, k := range list {
			if _, ok := keys[k]; !ok {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}
