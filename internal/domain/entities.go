// Package domain provides the entity graph produced from an OpenAPI document
// and the ports used to render it.
package domain

// TypeKind tells how a PropertyTypeEntity should be read.
type TypeKind string

const (
	// KindSimple is a primitive type name such as "string" or "int32".
	// Simple types are never cross-references.
	KindSimple TypeKind = "simple"
	// KindComponent points at a component id.
	KindComponent TypeKind = "component"
	// KindObject is an anonymous embedded object described by Properties.
	KindObject TypeKind = "object"
	// KindEnum is a scalar restricted to Values.
	KindEnum TypeKind = "enum"
)

// AggregateState records how the aggregation pass classified an operation.
type AggregateState int

const (
	// Unclassified operations were not visited by the aggregate pass yet.
	Unclassified AggregateState = iota
	// Main operations are canonical for their resource.
	Main
	// Aliased operations were folded into a main operation.
	Aliased
)

func (s AggregateState) String() string {
	switch s {
	case Main:
		return "main"
	case Aliased:
		return "aliased"
	default:
		return "unclassified"
	}
}

// PropertyTypeEntity describes the type of a property, parameter or body.
type PropertyTypeEntity struct {
	Kind           TypeKind         `yaml:"kind" json:"kind"`
	ReferencedType string           `yaml:"referencedType,omitempty" json:"referencedType,omitempty"`
	IsArray        bool             `yaml:"isArray,omitempty" json:"isArray,omitempty"`
	IsDictionary   bool             `yaml:"isDictionary,omitempty" json:"isDictionary,omitempty"`
	Values         []string         `yaml:"values,omitempty" json:"values,omitempty"`
	Properties     []PropertyEntity `yaml:"properties,omitempty" json:"properties,omitempty"`
	Service        string           `yaml:"service,omitempty" json:"service,omitempty"`
	APIVersion     string           `yaml:"apiVersion,omitempty" json:"apiVersion,omitempty"`
}

// IsReference reports whether the type points at a component.
func (t PropertyTypeEntity) IsReference() bool {
	return t.Kind == KindComponent && t.ReferencedType != ""
}

// PropertyEntity is a named member of an object schema.
type PropertyEntity struct {
	Name         string               `yaml:"name" json:"name"`
	Description  string               `yaml:"description,omitempty" json:"description,omitempty"`
	IsRequired   bool                 `yaml:"isRequired,omitempty" json:"isRequired,omitempty"`
	IsReadOnly   bool                 `yaml:"isReadOnly,omitempty" json:"isReadOnly,omitempty"`
	IsNullable   bool                 `yaml:"isNullable,omitempty" json:"isNullable,omitempty"`
	IsDeprecated bool                 `yaml:"isDeprecated,omitempty" json:"isDeprecated,omitempty"`
	Pattern      string               `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	DefaultValue string               `yaml:"defaultValue,omitempty" json:"defaultValue,omitempty"`
	Types        []PropertyTypeEntity `yaml:"types,omitempty" json:"types,omitempty"`
}

// LinkEntity is an OpenAPI response link. OperationID holds the generated id
// of the target operation, OperationName the operationId it was declared with.
type LinkEntity struct {
	Key           string          `yaml:"key" json:"key"`
	OperationID   string          `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	OperationName string          `yaml:"operationName,omitempty" json:"operationName,omitempty"`
	Description   string          `yaml:"description,omitempty" json:"description,omitempty"`
	Parameters    []LinkParameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// LinkParameter maps a target parameter to a runtime expression.
type LinkParameter struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// ParameterLink names the operation and response property that supplies a
// parameter value at runtime.
type ParameterLink struct {
	OperationID string `yaml:"operationId" json:"operationId"`
	Property    string `yaml:"property,omitempty" json:"property,omitempty"`
	LinkKey     string `yaml:"linkKey,omitempty" json:"linkKey,omitempty"`
}

// ExampleEntity is a named example value rendered as text.
type ExampleEntity struct {
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Summary     string `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Value       string `yaml:"value,omitempty" json:"value,omitempty"`
	ExternalURL string `yaml:"externalUrl,omitempty" json:"externalUrl,omitempty"`
}

// ParameterEntity is an operation parameter.
type ParameterEntity struct {
	PropertyEntity `yaml:",inline" json:",inline"`
	In             string          `yaml:"in" json:"in"`
	Link           *ParameterLink  `yaml:"link,omitempty" json:"link,omitempty"`
	Examples       []ExampleEntity `yaml:"examples,omitempty" json:"examples,omitempty"`
}

// BodyEntity is one media type of a request or response body.
type BodyEntity struct {
	MediaType string               `yaml:"mediaType" json:"mediaType"`
	Types     []PropertyTypeEntity `yaml:"types,omitempty" json:"types,omitempty"`
	Examples  []ExampleEntity      `yaml:"examples,omitempty" json:"examples,omitempty"`
}

// RequestBodyEntity is an operation request body keyed by media type.
type RequestBodyEntity struct {
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	IsRequired  bool         `yaml:"isRequired,omitempty" json:"isRequired,omitempty"`
	Bodies      []BodyEntity `yaml:"bodies,omitempty" json:"bodies,omitempty"`
}

// HeaderEntity is a response header.
type HeaderEntity struct {
	Name        string               `yaml:"name" json:"name"`
	Description string               `yaml:"description,omitempty" json:"description,omitempty"`
	Types       []PropertyTypeEntity `yaml:"types,omitempty" json:"types,omitempty"`
}

// ResponseEntity is an operation response keyed by status code.
type ResponseEntity struct {
	StatusCode  string         `yaml:"statusCode" json:"statusCode"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Bodies      []BodyEntity   `yaml:"bodies,omitempty" json:"bodies,omitempty"`
	Headers     []HeaderEntity `yaml:"headers,omitempty" json:"headers,omitempty"`
	Links       []LinkEntity   `yaml:"links,omitempty" json:"links,omitempty"`
}

// ScopeEntity is an OAuth2 scope.
type ScopeEntity struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// FlowEntity is one OAuth2 flow of a security scheme.
type FlowEntity struct {
	Name             string        `yaml:"name" json:"name"`
	Type             string        `yaml:"type" json:"type"`
	AuthorizationURL string        `yaml:"authorizationUrl,omitempty" json:"authorizationUrl,omitempty"`
	TokenURL         string        `yaml:"tokenUrl,omitempty" json:"tokenUrl,omitempty"`
	RefreshURL       string        `yaml:"refreshUrl,omitempty" json:"refreshUrl,omitempty"`
	Scopes           []ScopeEntity `yaml:"scopes" json:"scopes"`
}

// SecurityEntity is a security requirement resolved against its scheme.
type SecurityEntity struct {
	ID          string       `yaml:"uid" json:"uid"`
	Name        string       `yaml:"name" json:"name"`
	Type        string       `yaml:"type" json:"type"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	In          string       `yaml:"in,omitempty" json:"in,omitempty"`
	ParamName   string       `yaml:"paramName,omitempty" json:"paramName,omitempty"`
	Scheme      string       `yaml:"scheme,omitempty" json:"scheme,omitempty"`
	Flows       []FlowEntity `yaml:"flows,omitempty" json:"flows,omitempty"`
}

// ServerVariableEntity is a server URL template variable.
type ServerVariableEntity struct {
	Name         string   `yaml:"name" json:"name"`
	DefaultValue string   `yaml:"defaultValue,omitempty" json:"defaultValue,omitempty"`
	Description  string   `yaml:"description,omitempty" json:"description,omitempty"`
	Values       []string `yaml:"values,omitempty" json:"values,omitempty"`
}

// ServerEntity is a server an operation can be called on.
type ServerEntity struct {
	Name            string                 `yaml:"name" json:"name"`
	Description     string                 `yaml:"description,omitempty" json:"description,omitempty"`
	ServerVariables []ServerVariableEntity `yaml:"serverVariables,omitempty" json:"serverVariables,omitempty"`
}

// OperationEntity is the normalized form of one path + verb.
type OperationEntity struct {
	ID                 string              `yaml:"uid" json:"uid"`
	Name               string              `yaml:"name" json:"name"`
	OperationName      string              `yaml:"operationName,omitempty" json:"operationName,omitempty"`
	Service            string              `yaml:"service" json:"service"`
	GroupName          string              `yaml:"groupName" json:"groupName"`
	APIVersion         string              `yaml:"apiVersion,omitempty" json:"apiVersion,omitempty"`
	Summary            string              `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description        string              `yaml:"remarks,omitempty" json:"remarks,omitempty"`
	IsDeprecated       bool                `yaml:"isDeprecated,omitempty" json:"isDeprecated,omitempty"`
	IsPreview          bool                `yaml:"isPreview,omitempty" json:"isPreview,omitempty"`
	IsFunctionOrAction bool                `yaml:"isFunctionOrAction,omitempty" json:"isFunctionOrAction,omitempty"`
	HTTPVerb           string              `yaml:"httpVerb" json:"httpVerb"`
	Paths              []string            `yaml:"paths" json:"paths"`
	GroupedPaths       []string            `yaml:"groupedPaths,omitempty" json:"groupedPaths,omitempty"`
	Parameters         []ParameterEntity   `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody        *RequestBodyEntity  `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses          []ResponseEntity    `yaml:"responses,omitempty" json:"responses,omitempty"`
	Securities         []SecurityEntity    `yaml:"security,omitempty" json:"security,omitempty"`
	Servers            []ServerEntity      `yaml:"servers,omitempty" json:"servers,omitempty"`
	SeeAlso            []string            `yaml:"seeAlso,omitempty" json:"seeAlso,omitempty"`
	Definitions        []ComponentEntity   `yaml:"definitions,omitempty" json:"definitions,omitempty"`
	ExtendedGroups     []string            `yaml:"extendedGroups,omitempty" json:"extendedGroups,omitempty"`

	// SourcePath is the path template the operation was declared under.
	SourcePath string `yaml:"-" json:"-"`
	// State is only meaningful while aggregating.
	State AggregateState `yaml:"-" json:"-"`
}

// OperationGroupEntity is a tag and the operations filed under it.
type OperationGroupEntity struct {
	ID                 string   `yaml:"uid" json:"uid"`
	Name               string   `yaml:"name" json:"name"`
	Service            string   `yaml:"service" json:"service"`
	APIVersion         string   `yaml:"apiVersion,omitempty" json:"apiVersion,omitempty"`
	Summary            string   `yaml:"summary,omitempty" json:"summary,omitempty"`
	Operations         []string `yaml:"operations" json:"operations"`
	ExtendedOperations []string `yaml:"extendedOperations,omitempty" json:"extendedOperations,omitempty"`
}

// ComponentEntity is a named schema definition.
type ComponentEntity struct {
	ID            string               `yaml:"uid" json:"uid"`
	Name          string               `yaml:"name" json:"name"`
	Service       string               `yaml:"service" json:"service"`
	APIVersion    string               `yaml:"apiVersion,omitempty" json:"apiVersion,omitempty"`
	Description   string               `yaml:"description,omitempty" json:"description,omitempty"`
	PropertyItems []PropertyEntity     `yaml:"propertyItems,omitempty" json:"propertyItems,omitempty"`
	Types         []PropertyTypeEntity `yaml:"types,omitempty" json:"types,omitempty"`
	Operations    []string             `yaml:"operations,omitempty" json:"operations,omitempty"`
	Links         []LinkEntity         `yaml:"links,omitempty" json:"links,omitempty"`
}

// ComponentGroupEntity owns the components of one kind in discovery order.
type ComponentGroupEntity struct {
	ID         string            `yaml:"uid" json:"uid"`
	Name       string            `yaml:"name" json:"name"`
	Service    string            `yaml:"service" json:"service"`
	APIVersion string            `yaml:"apiVersion,omitempty" json:"apiVersion,omitempty"`
	Components []ComponentEntity `yaml:"-" json:"-"`
}

// ComponentIDs returns the ids of Components in order.
func (g *ComponentGroupEntity) ComponentIDs() []string {
	if g == nil {
		return nil
	}
	ids := make([]string, 0, len(g.Components))
	for _, c := range g.Components {
		ids = append(ids, c.ID)
	}
	return ids
}

// ServiceModel is every entity produced for one service document.
type ServiceModel struct {
	Name            string
	Title           string
	Description     string
	APIVersion      string
	Operations      []*OperationEntity
	OperationGroups []*OperationGroupEntity
	Components      *ComponentGroupEntity
	Aggregate       *GraphAggregateResult
}

// Operation returns the operation with the given id, or nil.
func (m *ServiceModel) Operation(id string) *OperationEntity {
	for _, op := range m.Operations {
		if op.ID == id {
			return op
		}
	}
	return nil
}
