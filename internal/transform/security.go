package transform

import (
	"sort"

	"github.com/GabrielNunesIT/openapi-restdocs/internal/domain"
	"github.com/getkin/kin-openapi/openapi3"
)

type namedFlow struct {
	name string
	flow *openapi3.OAuthFlow
}

// oauthFlows lists the flows of a scheme in a fixed order.
func oauthFlows(flows *openapi3.OAuthFlows) []namedFlow {
	if flows == nil {
		return nil
	}
	all := []namedFlow{
		{"authorizationCode", flows.AuthorizationCode},
		{"clientCredentials", flows.ClientCredentials},
		{"implicit", flows.Implicit},
		{"password", flows.Password},
	}
	out := all[:0]
	for _, f := range all {
		if f.flow != nil {
			out = append(out, f)
		}
	}
	return out
}

// securities resolves the operation's security requirements, falling back
// to the document-level ones. An explicitly empty list disables security.
func (t *Transformer) securities(unit string, op *openapi3.Operation) []domain.SecurityEntity {
	var reqs openapi3.SecurityRequirements
	switch {
	case op.Security != nil:
		reqs = *op.Security
	case t.doc != nil:
		reqs = t.doc.Security
	}
	if len(reqs) == 0 {
		return nil
	}

	var out []domain.SecurityEntity
	for _, req := range reqs {
		names := make([]string, 0, len(req))
		for name := range req {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			entity, ok := t.security(unit, name, req[name])
			if ok {
				out = append(out, entity)
			}
		}
	}
	return out
}

// security builds one entity whose flow scopes are exactly the requested
// scopes that the flow declares, in request order.
func (t *Transformer) security(unit, name string, requested []string) (domain.SecurityEntity, bool) {
	var ref *openapi3.SecuritySchemeRef
	if t.doc != nil && t.doc.Components != nil {
		ref = t.doc.Components.SecuritySchemes[name]
	}
	if ref == nil || ref.Value == nil {
		t.diags.Report(unit, "security scheme %q is not declared", name)
		return domain.SecurityEntity{}, false
	}
	scheme := ref.Value

	id, err := ComponentID(t.opts.ServiceName, Securities, name)
	if err != nil {
		t.diags.Report(unit, "security scheme %q: %v", name, err)
		return domain.SecurityEntity{}, false
	}

	entity := domain.SecurityEntity{
		ID:          id,
		Name:        name,
		Type:        scheme.Type,
		Description: scheme.Description,
		In:          scheme.In,
		ParamName:   scheme.Name,
		Scheme:      scheme.Scheme,
	}
	for _, f := range oauthFlows(scheme.Flows) {
		flow := domain.FlowEntity{
			Name:             f.name,
			Type:             f.name,
			AuthorizationURL: f.flow.AuthorizationURL,
			TokenURL:         f.flow.TokenURL,
			RefreshURL:       f.flow.RefreshURL,
			Scopes:           []domain.ScopeEntity{},
		}
		for _, scope := range requested {
			desc, declared := f.flow.Scopes[scope]
			if !declared {
				continue
			}
			flow.Scopes = append(flow.Scopes, domain.ScopeEntity{Name: scope, Description: desc})
		}
		entity.Flows = append(entity.Flows, flow)
	}
	return entity, true
}
