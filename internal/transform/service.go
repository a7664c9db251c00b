package transform

import (
	"strings"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
)

// responseBodyPrefix starts a link parameter expression that reads a
// property of the source operation's response body.
const responseBodyPrefix = "$response.body#/"

// parameterLocations may qualify a link parameter name, as in "path.id".
var parameterLocations = map[string]bool{
	"path":   true,
	"query":  true,
	"header": true,
	"cookie": true,
}

// TransformService converts the whole document: every operation in
// declaration order, every operation group and the schema components.
func (t *Transformer) TransformService() (*domain.ServiceModel, error) {
	if t.doc == nil {
		return nil, domain.Structuralf(t.opts.ServiceName, "no document")
	}
	if t.doc.Paths == nil {
		return nil, domain.Structuralf(t.opts.ServiceName, "document has no paths section")
	}
	if _, err := ServiceID(t.opts.ServiceName); err != nil {
		return nil, &domain.StructuralError{Unit: "service", Message: "invalid service name", Cause: err}
	}
	if err := t.indexOperations(); err != nil {
		return nil, err
	}

	model := &domain.ServiceModel{
		Name:       t.opts.ServiceName,
		APIVersion: t.APIVersion(),
	}
	if t.doc.Info != nil {
		model.Title = t.doc.Info.Title
		model.Description = t.doc.Info.Description
	}

	for _, ctx := range t.Operations() {
		op, err := t.TransformOperation(ctx)
		if err != nil {
			return nil, err
		}
		model.Operations = append(model.Operations, op)
	}
	LinkParameters(model.Operations)

	for _, tag := range t.groupTags() {
		group, err := t.TransformOperationGroup(tag)
		if err != nil {
			return nil, err
		}
		model.OperationGroups = append(model.OperationGroups, group)
	}

	components, err := t.TransformComponents()
	if err != nil {
		return nil, err
	}
	model.Components = components
	return model, nil
}

// LinkParameters sets the Link of every parameter that some response link
// supplies: a link from operation A to B with parameters {p: "$response.body#/x"}
// makes B's parameter p read property x of A's response. The first link
// found in operation order wins.
func LinkParameters(ops []*domain.OperationEntity) {
	byID := make(map[string]*domain.OperationEntity, len(ops))
	for _, op := range ops {
		byID[op.ID] = op
	}
	for _, source := range ops {
		for _, resp := range source.Responses {
			for _, link := range resp.Links {
				target := byID[link.OperationID]
				if target == nil {
					continue
				}
				for _, lp := range link.Parameters {
					setParameterLink(target, lp, source.ID, link.Key)
				}
			}
		}
	}
}

func setParameterLink(target *domain.OperationEntity, lp domain.LinkParameter, sourceID, key string) {
	name, in := lp.Name, ""
	if loc, rest, ok := strings.Cut(lp.Name, "."); ok && parameterLocations[loc] {
		name, in = rest, loc
	}
	for i := range target.Parameters {
		p := &target.Parameters[i]
		if p.Name != name || (in != "" && p.In != in) || p.Link != nil {
			continue
		}
		link := &domain.ParameterLink{OperationID: sourceID, LinkKey: key}
		if strings.HasPrefix(lp.Value, responseBodyPrefix) {
			link.Property = strings.TrimPrefix(lp.Value, responseBodyPrefix)
		}
		p.Link = link
		return
	}
}
