package transform

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/getkin/kin-openapi/openapi3"
)

// extractedSuffix is appended to the property name of an inline schema that
// is lifted into its own definition.
const extractedSuffix = "Param"

// extractions is the side table of inline schemas waiting to become
// definitions, in discovery order.
type extractions struct {
	names   []string
	schemas map[string]*openapi3.Schema
}

func newExtractions() *extractions {
	return &extractions{schemas: make(map[string]*openapi3.Schema)}
}

// add registers s under name. It fails when name is taken by another schema.
func (e *extractions) add(name string, s *openapi3.Schema) bool {
	if prev, ok := e.schemas[name]; ok {
		return prev == s
	}
	e.schemas[name] = s
	e.names = append(e.names, name)
	return true
}

// schemaResolver turns schema nodes into type descriptions. One resolver
// serves one operation, or the whole components section.
type schemaResolver struct {
	service string
	version string
	unit    string
	// stamp sets Service and APIVersion on every produced type node.
	stamp bool

	// definitionID returns the id of an extracted definition.
	definitionID func(name string) (string, error)
	// reserved reports names an extracted definition may not take.
	reserved func(name string) bool

	pending *extractions
	flushed int
	diags   *domain.Diagnostics
}

// resolve describes a property, parameter or body schema. A $ref always
// resolves to the referenced component.
func (r *schemaResolver) resolve(ref *openapi3.SchemaRef, property string) []domain.PropertyTypeEntity {
	if ref == nil {
		return nil
	}
	if ref.Ref != "" {
		return []domain.PropertyTypeEntity{r.componentRef(ref.Ref)}
	}
	if ref.Value == nil {
		return nil
	}
	return r.resolveValue(ref.Value, property)
}

func (r *schemaResolver) resolveValue(s *openapi3.Schema, property string) []domain.PropertyTypeEntity {
	switch {
	case s.Type.Is(openapi3.TypeArray):
		t := r.element(s.Items, property)
		t.IsArray = true
		return []domain.PropertyTypeEntity{t}
	case isObjectLike(s):
		return r.resolveObject(s, property)
	case hasComposite(s):
		return r.composite(s, property)
	default:
		return []domain.PropertyTypeEntity{r.scalar(s)}
	}
}

func (r *schemaResolver) resolveObject(s *openapi3.Schema, property string) []domain.PropertyTypeEntity {
	switch {
	case isDictionary(s):
		t := r.element(s.AdditionalProperties.Schema, property)
		t.IsDictionary = true
		return []domain.PropertyTypeEntity{t}
	case hasComposite(s):
		return r.composite(s, property)
	case len(s.Properties) > 0:
		return []domain.PropertyTypeEntity{r.stamped(domain.PropertyTypeEntity{
			Kind:       domain.KindObject,
			Properties: r.properties(s),
		})}
	default:
		return []domain.PropertyTypeEntity{r.scalar(s)}
	}
}

// element describes an array item or dictionary value. Inline arrays and
// objects are extracted into a definition named after the property.
func (r *schemaResolver) element(ref *openapi3.SchemaRef, property string) domain.PropertyTypeEntity {
	switch {
	case ref == nil || (ref.Ref == "" && ref.Value == nil):
		return r.simple("object")
	case ref.Ref != "":
		return r.componentRef(ref.Ref)
	case needsExtraction(ref.Value):
		return r.extract(ref.Value, property)
	}
	types := r.resolveValue(ref.Value, property)
	if len(types) == 0 {
		return r.simple("object")
	}
	return types[0]
}

// composite resolves anyOf, oneOf, allOf and not into one candidate per branch.
func (r *schemaResolver) composite(s *openapi3.Schema, property string) []domain.PropertyTypeEntity {
	branches := make([]*openapi3.SchemaRef, 0, len(s.AnyOf)+len(s.OneOf)+len(s.AllOf)+1)
	branches = append(branches, s.AnyOf...)
	branches = append(branches, s.OneOf...)
	branches = append(branches, s.AllOf...)
	if s.Not != nil {
		branches = append(branches, s.Not)
	}

	// Own properties are the base object and are not a branch.
	inline := 0
	for _, b := range branches {
		if b != nil && b.Ref == "" && b.Value != nil && len(b.Value.Properties) > 0 {
			inline++
		}
	}
	if inline > 1 {
		r.diags.Report(r.unit, "schema %q combines %d inline object schemas; declare them as components", property, inline)
		return nil
	}

	var out []domain.PropertyTypeEntity
	if len(s.Properties) > 0 {
		out = append(out, r.stamped(domain.PropertyTypeEntity{
			Kind:       domain.KindObject,
			Properties: r.properties(s),
		}))
	}
	for _, b := range branches {
		out = append(out, r.resolve(b, property)...)
	}
	return out
}

func (r *schemaResolver) properties(s *openapi3.Schema) []domain.PropertyEntity {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}

	props := make([]domain.PropertyEntity, 0, len(names))
	for _, name := range names {
		ref := s.Properties[name]
		prop := domain.PropertyEntity{
			Name:       name,
			IsRequired: required[name],
			Types:      r.resolve(ref, name),
		}
		if ref != nil && ref.Ref == "" && ref.Value != nil {
			v := ref.Value
			prop.Description = v.Description
			prop.IsReadOnly = v.ReadOnly
			prop.IsNullable = v.Nullable
			prop.IsDeprecated = v.Deprecated
			prop.Pattern = v.Pattern
			prop.DefaultValue = formatValue(v.Default)
		}
		props = append(props, prop)
	}
	return props
}

// extract registers s for lifting into a definition and points at it. A
// name clash is reported and yields an empty reference.
func (r *schemaResolver) extract(s *openapi3.Schema, property string) domain.PropertyTypeEntity {
	placeholder := r.stamped(domain.PropertyTypeEntity{Kind: domain.KindComponent})
	if property == "" {
		property = "item"
	}
	name := property + extractedSuffix

	if r.reserved != nil && r.reserved(name) {
		r.diags.Report(r.unit, "extracted definition %q collides with a declared component", name)
		return placeholder
	}
	if !r.pending.add(name, s) {
		r.diags.Report(r.unit, "extracted definition %q is produced by two different inline schemas", name)
		return placeholder
	}
	id, err := r.definitionID(name)
	if err != nil {
		r.diags.Report(r.unit, "extracted definition %q: %v", name, err)
		return placeholder
	}
	placeholder.ReferencedType = id
	return placeholder
}

func (r *schemaResolver) componentRef(ref string) domain.PropertyTypeEntity {
	t := r.stamped(domain.PropertyTypeEntity{Kind: domain.KindComponent})
	id, err := ComponentID(r.service, Schemas, refName(ref))
	if err != nil {
		r.diags.Report(r.unit, "reference %q: %v", ref, err)
		return t
	}
	t.ReferencedType = id
	return t
}

func (r *schemaResolver) scalar(s *openapi3.Schema) domain.PropertyTypeEntity {
	if len(s.Enum) == 0 {
		return r.simple(simpleTypeName(s))
	}
	values := make([]string, 0, len(s.Enum))
	for _, v := range s.Enum {
		values = append(values, enumLiteral(v))
	}
	sort.Strings(values)
	return r.stamped(domain.PropertyTypeEntity{Kind: domain.KindEnum, Values: values})
}

func (r *schemaResolver) simple(name string) domain.PropertyTypeEntity {
	return r.stamped(domain.PropertyTypeEntity{Kind: domain.KindSimple, ReferencedType: name})
}

func (r *schemaResolver) stamped(t domain.PropertyTypeEntity) domain.PropertyTypeEntity {
	if r.stamp {
		t.Service = r.service
		t.APIVersion = r.version
	}
	return t
}

// definition describes a named schema: an object with properties becomes a
// property list, anything else a type list.
func (r *schemaResolver) definition(name string, s *openapi3.Schema) ([]domain.PropertyEntity, []domain.PropertyTypeEntity) {
	if s == nil {
		return nil, nil
	}
	if len(s.Properties) > 0 && !hasComposite(s) && !isDictionary(s) {
		return r.properties(s), nil
	}
	return nil, r.resolveValue(s, name)
}

// flush turns pending extractions into definitions until no new ones
// appear. Definitions already flushed by an earlier call are skipped.
func (r *schemaResolver) flush() []domain.ComponentEntity {
	var out []domain.ComponentEntity
	for ; r.flushed < len(r.pending.names); r.flushed++ {
		name := r.pending.names[r.flushed]
		s := r.pending.schemas[name]
		id, err := r.definitionID(name)
		if err != nil {
			continue
		}
		props, types := r.definition(name, s)
		out = append(out, domain.ComponentEntity{
			ID:            id,
			Name:          name,
			Service:       r.service,
			APIVersion:    r.version,
			Description:   s.Description,
			PropertyItems: props,
			Types:         types,
		})
	}
	return out
}

func isObjectLike(s *openapi3.Schema) bool {
	return s.Type.Is(openapi3.TypeObject) ||
		len(s.Properties) > 0 ||
		len(s.Type.Slice()) == 0 ||
		isDictionary(s)
}

func isDictionary(s *openapi3.Schema) bool {
	ap := s.AdditionalProperties
	return ap.Schema != nil || (ap.Has != nil && *ap.Has)
}

func hasComposite(s *openapi3.Schema) bool {
	return len(s.AnyOf) > 0 || len(s.OneOf) > 0 || len(s.AllOf) > 0 || s.Not != nil
}

// needsExtraction reports whether an inline element schema must be lifted.
func needsExtraction(s *openapi3.Schema) bool {
	if s.Type.Is(openapi3.TypeArray) {
		return true
	}
	return isObjectLike(s) && (len(s.Properties) > 0 || isDictionary(s) || hasComposite(s))
}

func simpleTypeName(s *openapi3.Schema) string {
	if s.Format != "" {
		return s.Format
	}
	if types := s.Type.Slice(); len(types) > 0 {
		return types[0]
	}
	return "object"
}

func enumLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// refName returns the last segment of a $ref.
func refName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// formatValue renders defaults and examples as text.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool, float64, float32, int, int64:
		return fmt.Sprint(val)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
