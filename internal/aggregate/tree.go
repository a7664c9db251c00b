package aggregate

import (
	"strings"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
)

// BuildTree files every aggregate under the node named by its main
// operation's dotted group name.
func BuildTree(aggregates []*domain.GraphAggregateEntity) *domain.RestTocGroup {
	root := domain.NewRestTocGroup("")
	for _, entry := range aggregates {
		node := root
		for _, segment := range strings.Split(entry.MainOperation.GroupName, ".") {
			if segment == "" {
				continue
			}
			node = node.GetOrCreateChild(segment)
		}
		node.Leaves = append(node.Leaves, entry)
	}
	return root
}

// Backfill links tree nodes to the component named prefix + node name
// (case-insensitive). A found component gains the ids and response links of
// the node's leaf operations and the node takes the component's id. A
// missing component is reported and the node keeps an empty id.
func Backfill(result *domain.GraphAggregateResult, components *domain.ComponentGroupEntity, prefix string, diags *domain.Diagnostics) {
	if result == nil || result.Root == nil {
		return
	}
	byName := make(map[string]*domain.ComponentEntity)
	if components != nil {
		for i := range components.Components {
			c := &components.Components[i]
			key := strings.ToLower(c.Name)
			if _, dup := byName[key]; !dup {
				byName[key] = c
			}
		}
	}

	result.Root.Walk(func(node *domain.RestTocGroup, path []string) {
		if len(path) == 0 {
			return
		}
		name := prefix + node.Name
		component := byName[strings.ToLower(name)]
		if component == nil {
			diags.Report(strings.Join(path, "."), "no component named %q", name)
			return
		}
		for _, leaf := range node.Leaves {
			op := leaf.MainOperation
			component.Operations = appendUnique(component.Operations, op.ID)
			for _, resp := range op.Responses {
				for _, link := range resp.Links {
					component.Links = appendLink(component.Links, link, result)
				}
			}
		}
		node.ID = component.ID
	})
}

// appendLink adds link unless one with the same key is present. The target
// is translated through the id mappings.
func appendLink(links []domain.LinkEntity, link domain.LinkEntity, result *domain.GraphAggregateResult) []domain.LinkEntity {
	for _, existing := range links {
		if existing.Key == link.Key {
			return links
		}
	}
	link.OperationID = result.Canonical(link.OperationID)
	link.Parameters = append([]domain.LinkParameter(nil), link.Parameters...)
	return append(links, link)
}
