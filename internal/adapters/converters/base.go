// Package converters renders a transformed service as a single reference document.
package converters

import (
	"fmt"
	"strings"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
)

// formatMethod returns a styled method string.
func formatMethod(method string) string {
	return strings.ToUpper(method)
}

// typeLabel renders property types as "string | microsoft.graph.user[]".
func typeLabel(types []domain.PropertyTypeEntity) string {
	if len(types) == 0 {
		return "object"
	}
	labels := make([]string, 0, len(types))
	for _, t := range types {
		labels = append(labels, singleTypeLabel(t))
	}
	return strings.Join(labels, " | ")
}

func singleTypeLabel(t domain.PropertyTypeEntity) string {
	var label string
	switch t.Kind {
	case domain.KindComponent:
		label = componentName(t.ReferencedType)
	case domain.KindEnum:
		label = fmt.Sprintf("%s (%s)", t.ReferencedType, strings.Join(t.Values, ", "))
	case domain.KindObject:
		label = "object"
	default:
		label = t.ReferencedType
	}
	if t.IsDictionary {
		label = "map[string]" + label
	}
	if t.IsArray {
		label += "[]"
	}
	return label
}

// componentName strips the service and group prefix from a component id.
func componentName(id string) string {
	if _, rest, ok := strings.Cut(id, "."+schemasSegment+"."); ok {
		return rest
	}
	return id
}

const schemasSegment = "schemas"

// formatParameter returns a one-line description of a parameter.
func formatParameter(p domain.ParameterEntity) string {
	required := ""
	if p.IsRequired {
		required = " (required)"
	}
	text := fmt.Sprintf("%s (%s, %s)%s", p.Name, p.In, typeLabel(p.Types), required)
	if p.Description != "" {
		text += ": " + p.Description
	}
	return text
}

// formatResponse returns a one-line description of a response.
func formatResponse(r domain.ResponseEntity) string {
	text := r.StatusCode
	if r.Description != "" {
		text += ": " + r.Description
	}
	for _, body := range r.Bodies {
		text += fmt.Sprintf(" [%s %s]", body.MediaType, typeLabel(body.Types))
	}
	return text
}

// formatProperty returns a one-line description of a component property.
func formatProperty(p domain.PropertyEntity) string {
	var flags []string
	if p.IsRequired {
		flags = append(flags, "required")
	}
	if p.IsReadOnly {
		flags = append(flags, "read-only")
	}
	if p.IsNullable {
		flags = append(flags, "nullable")
	}
	if p.IsDeprecated {
		flags = append(flags, "deprecated")
	}
	text := fmt.Sprintf("%s: %s", p.Name, typeLabel(p.Types))
	if len(flags) > 0 {
		text += " (" + strings.Join(flags, ", ") + ")"
	}
	if p.Description != "" {
		text += " - " + p.Description
	}
	return text
}

// formatServer returns the server URL with its description.
func formatServer(s domain.ServerEntity) string {
	if s.Description == "" {
		return s.Name
	}
	return fmt.Sprintf("%s - %s", s.Name, s.Description)
}

// groupSection is an operation group with its resolved operations.
type groupSection struct {
	Group      *domain.OperationGroupEntity
	Operations []*domain.OperationEntity
}

// sections resolves the operations of every group of model in group order.
// Ids that are not present in the model are skipped.
func sections(model *domain.ServiceModel) []groupSection {
	out := make([]groupSection, 0, len(model.OperationGroups))
	for _, group := range model.OperationGroups {
		section := groupSection{Group: group}
		for _, id := range group.Operations {
			if op := model.Operation(id); op != nil {
				section.Operations = append(section.Operations, op)
			}
		}
		out = append(out, section)
	}
	return out
}

// components returns the components of model, or nil.
func components(model *domain.ServiceModel) []domain.ComponentEntity {
	if model.Components == nil {
		return nil
	}
	return model.Components.Components
}

// documentTitle returns the title shown at the top of a render.
func documentTitle(model *domain.ServiceModel) string {
	if model.Title != "" {
		return model.Title
	}
	return model.Name
}
