// Package aggregate folds operations that reach the same resource through
// alias paths into one canonical operation, builds the navigation tree from
// dotted group names and back-fills component cross-references.
package aggregate

import (
	"sort"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
)

// Options configure an aggregation run.
type Options struct {
	// ComponentPrefix is prepended to a tree node name to find its component.
	ComponentPrefix string
}

// Run executes the aggregate, group-tree and component back-fill passes.
// model.Operations is replaced by the canonical operations, and operation
// ids in group lists and links are translated to canonical ids.
func Run(model *domain.ServiceModel, opts Options, diags *domain.Diagnostics) (*domain.GraphAggregateResult, error) {
	if diags == nil {
		diags = domain.NewDiagnostics()
	}
	result, err := Aggregate(model.Operations)
	if err != nil {
		return nil, err
	}

	model.Operations = MainOperations(result)
	Remap(model, result)
	result.Root = BuildTree(result.Aggregates)
	Backfill(result, model.Components, opts.ComponentPrefix, diags)

	model.Aggregate = result
	return result, nil
}

func routeKey(verb, path string) string {
	return verb + " " + path
}

// Aggregate classifies every operation as main or aliased. Operations are
// connected per verb through their own paths and their grouped paths, and
// the connection is transitive. In each connected set the primary and
// grouped paths of all members are sorted and the smallest names the
// canonical path; the operation declared under it becomes main and every
// other member is aliased to it. A grouped path + verb with no operation is
// a structural error. Aggregating an aggregated list is a no-op.
func Aggregate(ops []*domain.OperationEntity) (*domain.GraphAggregateResult, error) {
	index := make(map[string]*domain.OperationEntity)
	for _, op := range ops {
		for _, p := range routes(op) {
			key := routeKey(op.HTTPVerb, p)
			if _, taken := index[key]; !taken {
				index[key] = op
			}
		}
	}

	sets := newPathSets()
	for _, op := range ops {
		own := routes(op)
		if len(own) == 0 {
			continue
		}
		first := routeKey(op.HTTPVerb, own[0])
		sets.add(first)
		for _, p := range own[1:] {
			sets.union(first, routeKey(op.HTTPVerb, p))
		}
		for _, p := range op.GroupedPaths {
			key := routeKey(op.HTTPVerb, p)
			if index[key] == nil {
				return nil, domain.Structuralf(op.ID, "grouped path %s %s has no operation", op.HTTPVerb, p)
			}
			sets.union(first, key)
		}
	}

	// Connected sets in the order their first member was declared.
	var roots []string
	members := make(map[string][]*domain.OperationEntity)
	for _, op := range ops {
		root := op.ID
		if own := routes(op); len(own) > 0 {
			root = sets.find(routeKey(op.HTTPVerb, own[0]))
		}
		if _, seen := members[root]; !seen {
			roots = append(roots, root)
		}
		members[root] = append(members[root], op)
	}

	result := &domain.GraphAggregateResult{IDMappings: make(map[string]string)}
	for _, root := range roots {
		group := members[root]
		main := group[0]
		if paths := candidatePaths(group); len(paths) > 0 {
			main = index[routeKey(main.HTTPVerb, paths[0])]
			if main == nil {
				return nil, domain.Structuralf(group[0].ID, "canonical path %s %s has no operation", group[0].HTTPVerb, paths[0])
			}
		}

		entry := &domain.GraphAggregateEntity{
			MainOperation:      main,
			IsFunctionOrAction: main.IsFunctionOrAction,
		}
		main.State = domain.Main
		result.IDMappings[main.ID] = main.ID

		for _, member := range byPrimaryPath(group) {
			member.GroupedPaths = nil
			if member == main {
				continue
			}
			member.State = domain.Aliased
			result.IDMappings[member.ID] = main.ID
			entry.GroupedOperations = append(entry.GroupedOperations, member)
			main.Paths = appendUnique(main.Paths, member.Paths...)
		}
		result.Aggregates = append(result.Aggregates, entry)
	}
	return result, nil
}

// routes lists the paths an operation can be looked up by.
func routes(op *domain.OperationEntity) []string {
	out := make([]string, 0, len(op.Paths)+1)
	if op.SourcePath != "" {
		out = append(out, op.SourcePath)
	}
	return append(out, op.Paths...)
}

// primaryPath is the path an operation was declared under.
func primaryPath(op *domain.OperationEntity) string {
	if op.SourcePath != "" {
		return op.SourcePath
	}
	if len(op.Paths) > 0 {
		return op.Paths[0]
	}
	return ""
}

// candidatePaths is the primary path plus the grouped paths of every member,
// de-duplicated and sorted lexicographically.
func candidatePaths(group []*domain.OperationEntity) []string {
	var paths []string
	for _, op := range group {
		if own := primaryPath(op); own != "" {
			paths = appendUnique(paths, own)
		}
		paths = appendUnique(paths, op.GroupedPaths...)
	}
	sort.Strings(paths)
	return paths
}

// byPrimaryPath orders the members of a set by primary path, keeping
// declaration order between equal paths.
func byPrimaryPath(group []*domain.OperationEntity) []*domain.OperationEntity {
	out := append([]*domain.OperationEntity(nil), group...)
	sort.SliceStable(out, func(i, j int) bool {
		return primaryPath(out[i]) < primaryPath(out[j])
	})
	return out
}

// pathSets is a disjoint-set forest over route keys.
type pathSets struct {
	parent map[string]string
}

func newPathSets() *pathSets {
	return &pathSets{parent: make(map[string]string)}
}

func (s *pathSets) add(key string) {
	if _, ok := s.parent[key]; !ok {
		s.parent[key] = key
	}
}

func (s *pathSets) find(key string) string {
	s.add(key)
	for s.parent[key] != key {
		s.parent[key] = s.parent[s.parent[key]]
		key = s.parent[key]
	}
	return key
}

// union joins the sets of a and b. The smaller key becomes the root so the
// result does not depend on the order of calls.
func (s *pathSets) union(a, b string) {
	ra, rb := s.find(a), s.find(b)
	switch {
	case ra == rb:
	case ra < rb:
		s.parent[rb] = ra
	default:
		s.parent[ra] = rb
	}
}

// MainOperations returns the canonical operations in aggregate order.
func MainOperations(result *domain.GraphAggregateResult) []*domain.OperationEntity {
	out := make([]*domain.OperationEntity, 0, len(result.Aggregates))
	for _, entry := range result.Aggregates {
		out = append(out, entry.MainOperation)
	}
	return out
}

func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		found := false
		for _, existing := range list {
			if existing == item {
				found = true
				break
			}
		}
		if !found {
			list = append(list, item)
		}
	}
	return list
}
