// Package transform converts a parsed OpenAPI 3.0 document into the
// normalized entity graph: operations, operation groups and components.
package transform

import (
	"net/http"
	"sort"
	"strings"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/getkin/kin-openapi/openapi3"
)

const defaultGroupName = "default"

// methodOrder is used for verbs the declaration-order index does not know.
var methodOrder = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodHead,
	http.MethodPatch,
	http.MethodTrace,
	http.MethodConnect,
}

// Options tune how a service document is transformed.
type Options struct {
	// ServiceName is the first segment of every generated id.
	ServiceName string
	// APIVersion overrides info.version when set.
	APIVersion string
	// FoldRequiredQuery appends required query parameters to operation paths.
	FoldRequiredQuery bool
}

// OperationContext is one path + verb of the document.
type OperationContext struct {
	Path      string
	PathItem  *openapi3.PathItem
	Method    string
	Operation *openapi3.Operation
}

// Transformer produces entities for one document. It is not safe for
// concurrent use; Diagnostics is.
type Transformer struct {
	doc   *openapi3.T
	order *domain.DeclarationOrder
	opts  Options
	diags *domain.Diagnostics

	// operationIDs maps declared operationIds to generated ids.
	operationIDs map[string]string
}

// New creates a Transformer. order may be nil, in which case keyed sections
// are visited in lexicographic order. diags may be nil.
func New(doc *openapi3.T, order *domain.DeclarationOrder, opts Options, diags *domain.Diagnostics) *Transformer {
	if order == nil {
		order = &domain.DeclarationOrder{}
	}
	if diags == nil {
		diags = domain.NewDiagnostics()
	}
	return &Transformer{
		doc:   doc,
		order: order,
		opts:  opts,
		diags: diags,
	}
}

// Diagnostics returns the collector authoring errors are reported to.
func (t *Transformer) Diagnostics() *domain.Diagnostics {
	return t.diags
}

// APIVersion returns the configured version, falling back to info.version.
func (t *Transformer) APIVersion() string {
	if t.opts.APIVersion != "" {
		return t.opts.APIVersion
	}
	if t.doc != nil && t.doc.Info != nil {
		return t.doc.Info.Version
	}
	return ""
}

// Operations returns every path + verb of the document in declaration order.
func (t *Transformer) Operations() []OperationContext {
	if t.doc == nil || t.doc.Paths == nil {
		return nil
	}
	items := t.doc.Paths.Map()
	keys := make(map[string]struct{}, len(items))
	sorted := make([]string, 0, len(items))
	for p := range items {
		keys[p] = struct{}{}
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)

	var out []OperationContext
	for _, p := range domain.Ordered(keys, t.order.Paths, sorted) {
		item := items[p]
		if item == nil {
			continue
		}
		ops := item.Operations()
		verbs := make(map[string]struct{}, len(ops))
		for verb := range ops {
			verbs[strings.ToUpper(verb)] = struct{}{}
		}
		for _, verb := range domain.Ordered(verbs, t.order.Methods[p], methodOrder) {
			op := item.GetOperation(verb)
			if op == nil {
				continue
			}
			out = append(out, OperationContext{Path: p, PathItem: item, Method: verb, Operation: op})
		}
	}
	return out
}

// groupName returns the operation's first tag, or the default group.
func groupName(op *openapi3.Operation) string {
	if len(op.Tags) > 0 && strings.TrimSpace(op.Tags[0]) != "" {
		return op.Tags[0]
	}
	return defaultGroupName
}

// operationName strips a leading "<group>_" from the operationId. An
// operation without operationId is named after its verb and path.
func operationName(ctx OperationContext) string {
	id := ctx.Operation.OperationID
	if id == "" {
		return pathOperationName(ctx.Method, ctx.Path)
	}
	prefix := groupName(ctx.Operation) + "_"
	if len(id) > len(prefix) && strings.EqualFold(id[:len(prefix)], prefix) {
		return id[len(prefix):]
	}
	return id
}

func pathOperationName(method, path string) string {
	replacer := strings.NewReplacer("{", "", "}", "", "/", "_", "-", "_", ".", "_", "$", "")
	name := strings.Trim(replacer.Replace(path), "_")
	if name == "" {
		name = "root"
	}
	return strings.ToLower(method) + "_" + name
}

// identity returns the group name, operation name and generated id.
func (t *Transformer) identity(ctx OperationContext) (group, name, id string, err error) {
	group = groupName(ctx.Operation)
	name = operationName(ctx)
	id, err = OperationID(t.opts.ServiceName, group, name)
	if err != nil {
		return "", "", "", &domain.StructuralError{
			Unit:    ctx.Method + " " + ctx.Path,
			Message: "cannot build operation id",
			Cause:   err,
		}
	}
	return group, name, id, nil
}

// indexOperations maps every declared operationId to its generated id and
// rejects duplicate generated ids.
func (t *Transformer) indexOperations() error {
	t.operationIDs = make(map[string]string)
	owners := make(map[string]string)
	for _, ctx := range t.Operations() {
		_, _, id, err := t.identity(ctx)
		if err != nil {
			return err
		}
		unit := ctx.Method + " " + ctx.Path
		if prev, dup := owners[id]; dup {
			return domain.Structuralf(unit, "operation id %q already used by %s", id, prev)
		}
		owners[id] = unit
		if ctx.Operation.OperationID != "" {
			t.operationIDs[ctx.Operation.OperationID] = id
		}
	}
	return nil
}

// resolveOperationID translates a declared operationId into a generated id.
func (t *Transformer) resolveOperationID(declared string) (string, bool) {
	if t.operationIDs == nil {
		if err := t.indexOperations(); err != nil {
			return "", false
		}
	}
	id, ok := t.operationIDs[declared]
	return id, ok
}

func (t *Transformer) schemaComponent(name string) *openapi3.SchemaRef {
	if t.doc == nil || t.doc.Components == nil {
		return nil
	}
	return t.doc.Components.Schemas[name]
}
