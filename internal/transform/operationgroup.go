package transform

import (
	"slices"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/getkin/kin-openapi/openapi3"
)

// TransformOperationGroup collects the operations whose first tag is tag.
// Operations that carry the tag in a later position are listed as extended
// operations; they live in their first tag's group.
func (t *Transformer) TransformOperationGroup(tag *openapi3.Tag) (*domain.OperationGroupEntity, error) {
	if tag == nil {
		return nil, domain.Structuralf(t.opts.ServiceName, "nil tag")
	}
	id, err := OperationGroupID(t.opts.ServiceName, tag.Name)
	if err != nil {
		return nil, &domain.StructuralError{Unit: "tag " + tag.Name, Message: "cannot build group id", Cause: err}
	}

	group := &domain.OperationGroupEntity{
		ID:         id,
		Name:       tag.Name,
		Service:    t.opts.ServiceName,
		APIVersion: t.APIVersion(),
		Summary:    tag.Description,
		Operations: []string{},
	}
	for _, ctx := range t.Operations() {
		first := groupName(ctx.Operation)
		if first != tag.Name && !slices.Contains(ctx.Operation.Tags, tag.Name) {
			continue
		}
		_, _, opID, err := t.identity(ctx)
		if err != nil {
			return nil, err
		}
		if first == tag.Name {
			group.Operations = append(group.Operations, opID)
		} else {
			group.ExtendedOperations = append(group.ExtendedOperations, opID)
		}
	}
	return group, nil
}

// groupTags returns the declared tags followed by tags only used as a first
// tag by some operation, in first-use order.
func (t *Transformer) groupTags() []*openapi3.Tag {
	var out []*openapi3.Tag
	seen := make(map[string]bool)
	if t.doc != nil {
		declared := make(map[string]struct{}, len(t.doc.Tags))
		byName := make(map[string]*openapi3.Tag, len(t.doc.Tags))
		var listed []string
		for _, tag := range t.doc.Tags {
			if tag == nil {
				continue
			}
			declared[tag.Name] = struct{}{}
			byName[tag.Name] = tag
			listed = append(listed, tag.Name)
		}
		for _, name := range domain.Ordered(declared, t.order.Tags, listed) {
			seen[name] = true
			out = append(out, byName[name])
		}
	}
	for _, ctx := range t.Operations() {
		name := groupName(ctx.Operation)
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, &openapi3.Tag{Name: name})
	}
	return out
}
