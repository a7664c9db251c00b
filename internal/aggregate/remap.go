package aggregate

import (
	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
)

// Remap translates alias operation ids to canonical ids in operation group
// lists, response links and parameter links of model.
func Remap(model *domain.ServiceModel, result *domain.GraphAggregateResult) {
	for _, group := range model.OperationGroups {
		group.Operations = remapIDs(group.Operations, result)
		if group.ExtendedOperations != nil {
			group.ExtendedOperations = remapIDs(group.ExtendedOperations, result)
		}
	}
	for _, op := range model.Operations {
		for i := range op.Responses {
			links := op.Responses[i].Links
			for j := range links {
				if links[j].OperationID != "" {
					links[j].OperationID = result.Canonical(links[j].OperationID)
				}
			}
		}
		for i := range op.Parameters {
			if link := op.Parameters[i].Link; link != nil {
				link.OperationID = result.Canonical(link.OperationID)
			}
		}
	}
}

func remapIDs(ids []string, result *domain.GraphAggregateResult) []string {
	out := make([]string, 0, len(ids))
	return appendUnique(out, mapIDs(ids, result)...)
}

func mapIDs(ids []string, result *domain.GraphAggregateResult) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = result.Canonical(id)
	}
	return out
}
