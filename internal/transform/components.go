package transform

import (
	"sort"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
)

// TransformComponents converts components.schemas into a component group in
// declaration order. Definitions extracted from a component's inline schemas
// follow their owner. Operation cross-references are left empty.
func (t *Transformer) TransformComponents() (*domain.ComponentGroupEntity, error) {
	id, err := ComponentGroupID(t.opts.ServiceName, Schemas)
	if err != nil {
		return nil, &domain.StructuralError{Unit: t.opts.ServiceName, Message: "cannot build component group id", Cause: err}
	}
	group := &domain.ComponentGroupEntity{
		ID:         id,
		Name:       string(Schemas),
		Service:    t.opts.ServiceName,
		APIVersion: t.APIVersion(),
	}
	if t.doc == nil || t.doc.Components == nil || len(t.doc.Components.Schemas) == 0 {
		return group, nil
	}

	schemas := t.doc.Components.Schemas
	keys := make(map[string]struct{}, len(schemas))
	sorted := make([]string, 0, len(schemas))
	for name := range schemas {
		keys[name] = struct{}{}
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	resolver := t.componentResolver()
	for _, name := range domain.Ordered(keys, t.order.Schemas, sorted) {
		ref := schemas[name]
		if ref == nil || ref.Value == nil {
			t.diags.Report(name, "component has no definition")
			continue
		}
		componentID, err := ComponentID(t.opts.ServiceName, Schemas, name)
		if err != nil {
			return nil, &domain.StructuralError{Unit: name, Message: "cannot build component id", Cause: err}
		}

		resolver.unit = name
		props, types := resolver.definition(name, ref.Value)
		group.Components = append(group.Components, domain.ComponentEntity{
			ID:            componentID,
			Name:          name,
			Service:       t.opts.ServiceName,
			APIVersion:    t.APIVersion(),
			Description:   ref.Value.Description,
			PropertyItems: props,
			Types:         types,
		})
		group.Components = append(group.Components, resolver.flush()...)
	}
	return group, nil
}

// componentResolver shares one extraction table across all components,
// since their extracted definitions share the schemas namespace.
func (t *Transformer) componentResolver() *schemaResolver {
	return &schemaResolver{
		service: t.opts.ServiceName,
		version: t.APIVersion(),
		stamp:   true,
		definitionID: func(name string) (string, error) {
			return ComponentID(t.opts.ServiceName, Schemas, name)
		},
		reserved: func(name string) bool {
			return t.schemaComponent(name) != nil
		},
		pending: newExtractions(),
		diags:   t.diags,
	}
}
