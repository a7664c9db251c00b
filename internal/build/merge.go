package build

import (
	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
)

// Merge folds the model of another source of the same service into into.
// Operations are appended, groups sharing an id get the union of their
// operation lists and the first component with a given id wins. An
// operation id present in both models is a structural error and into is
// left unchanged.
func Merge(into, part *domain.ServiceModel) (*domain.ServiceModel, error) {
	if into == nil {
		return part, nil
	}
	if part == nil {
		return into, nil
	}

	ids := make(map[string]bool, len(into.Operations))
	for _, op := range into.Operations {
		ids[op.ID] = true
	}
	for _, op := range part.Operations {
		if ids[op.ID] {
			return nil, domain.Structuralf(op.ID, "operation id already declared by another source of %s", into.Name)
		}
		ids[op.ID] = true
	}

	into.Operations = append(into.Operations, part.Operations...)

	groups := make(map[string]*domain.OperationGroupEntity, len(into.OperationGroups))
	for _, group := range into.OperationGroups {
		groups[group.ID] = group
	}
	for _, group := range part.OperationGroups {
		existing, ok := groups[group.ID]
		if !ok {
			groups[group.ID] = group
			into.OperationGroups = append(into.OperationGroups, group)
			continue
		}
		existing.Operations = union(existing.Operations, group.Operations)
		if len(group.ExtendedOperations) > 0 {
			existing.ExtendedOperations = union(existing.ExtendedOperations, group.ExtendedOperations)
		}
		if existing.Summary == "" {
			existing.Summary = group.Summary
		}
	}

	switch {
	case into.Components == nil:
		into.Components = part.Components
	case part.Components != nil:
		seen := make(map[string]bool, len(into.Components.Components))
		for _, c := range into.Components.Components {
			seen[c.ID] = true
		}
		for _, c := range part.Components.Components {
			if !seen[c.ID] {
				seen[c.ID] = true
				into.Components.Components = append(into.Components.Components, c)
			}
		}
	}

	if into.Description == "" {
		into.Description = part.Description
	}
	return into, nil
}

func union(list []string, items []string) []string {
	seen := make(map[string]bool, len(list))
	for _, item := range list {
		seen[item] = true
	}
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			list = append(list, item)
		}
	}
	return list
}
