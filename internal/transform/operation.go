package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/getkin/kin-openapi/openapi3"
)

const defaultResponse = "default"

// TransformOperation converts one path + verb into an operation entity.
func (t *Transformer) TransformOperation(ctx OperationContext) (*domain.OperationEntity, error) {
	if ctx.Operation == nil {
		return nil, domain.Structuralf(ctx.Method+" "+ctx.Path, "no operation declared")
	}
	if t.operationIDs == nil {
		if err := t.indexOperations(); err != nil {
			return nil, err
		}
	}

	group, name, id, err := t.identity(ctx)
	if err != nil {
		return nil, err
	}

	op := ctx.Operation
	resolver := t.operationResolver(id)
	ext := readExtensions(op.Extensions, pathItemExtensions(ctx.PathItem))
	params := t.parameters(resolver, id, ctx)

	entity := &domain.OperationEntity{
		ID:                 id,
		Name:               name,
		OperationName:      op.OperationID,
		Service:            t.opts.ServiceName,
		GroupName:          group,
		APIVersion:         t.APIVersion(),
		Summary:            op.Summary,
		Description:        op.Description,
		IsDeprecated:       op.Deprecated,
		IsPreview:          ext.IsPreview,
		IsFunctionOrAction: ext.IsFunctionOrAction(),
		HTTPVerb:           strings.ToUpper(ctx.Method),
		Paths:              []string{t.requestPath(ctx.Path, params)},
		GroupedPaths:       ext.GroupedPaths,
		Parameters:         params,
		RequestBody:        requestBody(resolver, op.RequestBody),
		Responses:          t.responses(resolver, id, op.Responses),
		Securities:         t.securities(id, op),
		Servers:            t.servers(ctx),
		SeeAlso:            seeAlso(op.ExternalDocs),
		SourcePath:         ctx.Path,
	}
	if len(op.Tags) > 1 {
		entity.ExtendedGroups = append([]string(nil), op.Tags[1:]...)
	}
	entity.Definitions = resolver.flush()
	return entity, nil
}

func (t *Transformer) operationResolver(operationID string) *schemaResolver {
	return &schemaResolver{
		service: t.opts.ServiceName,
		version: t.APIVersion(),
		unit:    operationID,
		definitionID: func(name string) (string, error) {
			return JoinID(operationID, name)
		},
		pending: newExtractions(),
		diags:   t.diags,
	}
}

func pathItemExtensions(item *openapi3.PathItem) map[string]any {
	if item == nil {
		return nil
	}
	return item.Extensions
}

// parameters uses the operation's own parameters when it declares any, and
// the path item's otherwise. The two lists are never merged.
func (t *Transformer) parameters(r *schemaResolver, unit string, ctx OperationContext) []domain.ParameterEntity {
	source := ctx.Operation.Parameters
	if len(source) == 0 && ctx.PathItem != nil {
		source = ctx.PathItem.Parameters
	}

	var out []domain.ParameterEntity
	for i, ref := range source {
		if ref == nil || ref.Value == nil {
			t.diags.Report(unit, "parameter %d has no definition", i)
			continue
		}
		p := ref.Value
		param := domain.ParameterEntity{
			PropertyEntity: domain.PropertyEntity{
				Name:         p.Name,
				Description:  p.Description,
				IsRequired:   p.Required || p.In == openapi3.ParameterInPath,
				IsDeprecated: p.Deprecated,
			},
			In:       p.In,
			Examples: examples(p.Example, p.Examples),
		}

		schema := p.Schema
		if schema == nil {
			schema = firstContentSchema(p.Content)
		}
		param.Types = r.resolve(schema, p.Name)
		if schema != nil && schema.Value != nil {
			param.Pattern = schema.Value.Pattern
			param.IsNullable = schema.Value.Nullable
			param.DefaultValue = formatValue(schema.Value.Default)
		}
		out = append(out, param)
	}
	return out
}

func (t *Transformer) requestPath(path string, params []domain.ParameterEntity) string {
	if !t.opts.FoldRequiredQuery {
		return path
	}
	var required []string
	for _, p := range params {
		if p.In == openapi3.ParameterInQuery && p.IsRequired {
			required = append(required, p.Name)
		}
	}
	return FoldRequiredQuery(path, required)
}

func requestBody(r *schemaResolver, ref *openapi3.RequestBodyRef) *domain.RequestBodyEntity {
	if ref == nil || ref.Value == nil {
		return nil
	}
	return &domain.RequestBodyEntity{
		Description: ref.Value.Description,
		IsRequired:  ref.Value.Required,
		Bodies:      bodies(r, ref.Value.Content, "requestBody"),
	}
}

// bodies lists the media types of content sorted by name.
func bodies(r *schemaResolver, content openapi3.Content, property string) []domain.BodyEntity {
	mediaTypes := make([]string, 0, len(content))
	for mt := range content {
		mediaTypes = append(mediaTypes, mt)
	}
	sort.Strings(mediaTypes)

	out := make([]domain.BodyEntity, 0, len(mediaTypes))
	for _, mt := range mediaTypes {
		media := content[mt]
		if media == nil {
			continue
		}
		out = append(out, domain.BodyEntity{
			MediaType: mt,
			Types:     r.resolve(media.Schema, property),
			Examples:  examples(media.Example, media.Examples),
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (t *Transformer) responses(r *schemaResolver, unit string, responses *openapi3.Responses) []domain.ResponseEntity {
	if responses == nil {
		return nil
	}
	all := responses.Map()
	codes := make([]string, 0, len(all))
	for code := range all {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		if codes[i] == defaultResponse || codes[j] == defaultResponse {
			return codes[j] == defaultResponse && codes[i] != defaultResponse
		}
		return codes[i] < codes[j]
	})

	var out []domain.ResponseEntity
	for _, code := range codes {
		ref := all[code]
		if ref == nil || ref.Value == nil {
			t.diags.Report(unit, "response %s has no definition", code)
			continue
		}
		resp := ref.Value
		entity := domain.ResponseEntity{
			StatusCode: code,
			Bodies:     bodies(r, resp.Content, "response"+code),
			Headers:    headers(r, resp.Headers),
			Links:      t.links(unit, resp.Links),
		}
		if resp.Description != nil {
			entity.Description = *resp.Description
		}
		out = append(out, entity)
	}
	return out
}

func headers(r *schemaResolver, hs openapi3.Headers) []domain.HeaderEntity {
	names := make([]string, 0, len(hs))
	for name := range hs {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []domain.HeaderEntity
	for _, name := range names {
		ref := hs[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		schema := ref.Value.Schema
		if schema == nil {
			schema = firstContentSchema(ref.Value.Content)
		}
		out = append(out, domain.HeaderEntity{
			Name:        name,
			Description: ref.Value.Description,
			Types:       r.resolve(schema, name),
		})
	}
	return out
}

// links converts response links. The target operation is translated into
// its generated id; an unknown target is reported and kept by name.
func (t *Transformer) links(unit string, links openapi3.Links) []domain.LinkEntity {
	keys := make([]string, 0, len(links))
	for key := range links {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []domain.LinkEntity
	for _, key := range keys {
		ref := links[key]
		if ref == nil || ref.Value == nil {
			continue
		}
		l := ref.Value
		entity := domain.LinkEntity{
			Key:           key,
			OperationName: l.OperationID,
			Description:   l.Description,
		}
		target, ok := t.linkTarget(l)
		if ok {
			entity.OperationID = target
		} else {
			t.diags.Report(unit, "link %q targets unknown operation %q", key, linkTargetName(l))
		}

		names := make([]string, 0, len(l.Parameters))
		for name := range l.Parameters {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			entity.Parameters = append(entity.Parameters, domain.LinkParameter{
				Name:  name,
				Value: formatValue(l.Parameters[name]),
			})
		}
		out = append(out, entity)
	}
	return out
}

func linkTargetName(l *openapi3.Link) string {
	if l.OperationID != "" {
		return l.OperationID
	}
	return l.OperationRef
}

// linkTarget resolves operationId, or a local operationRef of the form
// #/paths/<escaped path>/<verb>.
func (t *Transformer) linkTarget(l *openapi3.Link) (string, bool) {
	if l.OperationID != "" {
		return t.resolveOperationID(l.OperationID)
	}
	const prefix = "#/paths/"
	if !strings.HasPrefix(l.OperationRef, prefix) || t.doc == nil || t.doc.Paths == nil {
		return "", false
	}
	rest := strings.TrimPrefix(l.OperationRef, prefix)
	i := strings.LastIndex(rest, "/")
	if i < 0 {
		return "", false
	}
	path := strings.NewReplacer("~1", "/", "~0", "~").Replace(rest[:i])
	method := strings.ToUpper(rest[i+1:])
	item := t.doc.Paths.Value(path)
	if item == nil {
		return "", false
	}
	op := item.GetOperation(method)
	if op == nil {
		return "", false
	}
	_, _, id, err := t.identity(OperationContext{Path: path, PathItem: item, Method: method, Operation: op})
	return id, err == nil
}

// servers picks the first non-empty list among operation, path item and
// document servers.
func (t *Transformer) servers(ctx OperationContext) []domain.ServerEntity {
	var src openapi3.Servers
	switch {
	case ctx.Operation.Servers != nil && len(*ctx.Operation.Servers) > 0:
		src = *ctx.Operation.Servers
	case ctx.PathItem != nil && len(ctx.PathItem.Servers) > 0:
		src = ctx.PathItem.Servers
	case t.doc != nil:
		src = t.doc.Servers
	}

	var out []domain.ServerEntity
	for _, s := range src {
		if s == nil {
			continue
		}
		out = append(out, domain.ServerEntity{
			Name:            s.URL,
			Description:     s.Description,
			ServerVariables: serverVariables(s.Variables),
		})
	}
	return out
}

// serverVariables returns nil, not an empty list, when there are none.
func serverVariables(vars map[string]*openapi3.ServerVariable) []domain.ServerVariableEntity {
	if len(vars) == 0 {
		return nil
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.ServerVariableEntity, 0, len(names))
	for _, name := range names {
		v := vars[name]
		if v == nil {
			continue
		}
		out = append(out, domain.ServerVariableEntity{
			Name:         name,
			DefaultValue: v.Default,
			Description:  v.Description,
			Values:       v.Enum,
		})
	}
	return out
}

// seeAlso returns one markdown link, or nil without external docs.
func seeAlso(docs *openapi3.ExternalDocs) []string {
	if docs == nil || docs.URL == "" {
		return nil
	}
	label := docs.Description
	if label == "" {
		label = docs.URL
	}
	return []string{fmt.Sprintf("[%s](%s)", label, docs.URL)}
}

func examples(single any, named openapi3.Examples) []domain.ExampleEntity {
	var out []domain.ExampleEntity
	if single != nil {
		out = append(out, domain.ExampleEntity{Value: formatValue(single)})
	}
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ref := named[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		out = append(out, domain.ExampleEntity{
			Name:        name,
			Summary:     ref.Value.Summary,
			Description: ref.Value.Description,
			Value:       formatValue(ref.Value.Value),
			ExternalURL: ref.Value.ExternalValue,
		})
	}
	return out
}

func firstContentSchema(content openapi3.Content) *openapi3.SchemaRef {
	mediaTypes := make([]string, 0, len(content))
	for mt := range content {
		mediaTypes = append(mediaTypes, mt)
	}
	sort.Strings(mediaTypes)
	for _, mt := range mediaTypes {
		if media := content[mt]; media != nil && media.Schema != nil {
			return media.Schema
		}
	}
	return nil
}
