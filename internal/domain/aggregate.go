package domain

// GraphAggregateEntity is one canonical operation and the aliases folded into it.
type GraphAggregateEntity struct {
	MainOperation      *OperationEntity
	GroupedOperations  []*OperationEntity
	IsFunctionOrAction bool
}

// GraphAggregateResult is produced by one aggregation run.
type GraphAggregateResult struct {
	// IDMappings maps every operation id, alias or main, to its canonical id.
	IDMappings map[string]string
	Aggregates []*GraphAggregateEntity
	Root       *RestTocGroup
}

// Canonical translates id through IDMappings. Unknown ids are returned as is.
func (r *GraphAggregateResult) Canonical(id string) string {
	if r == nil {
		return id
	}
	if mapped, ok := r.IDMappings[id]; ok {
		return mapped
	}
	return id
}

// RestTocGroup is a node of the navigation tree keyed by dotted group-name segments.
type RestTocGroup struct {
	Name   string
	ID     string
	Leaves []*GraphAggregateEntity

	children []*RestTocGroup
	index    map[string]*RestTocGroup
}

// NewRestTocGroup creates a detached node.
func NewRestTocGroup(name string) *RestTocGroup {
	return &RestTocGroup{Name: name}
}

// Child returns the child with the given name without creating it.
func (g *RestTocGroup) Child(name string) *RestTocGroup {
	if g.index == nil {
		return nil
	}
	return g.index[name]
}

// GetOrCreateChild returns the child named name, creating it when missing.
// Children keep creation order.
func (g *RestTocGroup) GetOrCreateChild(name string) *RestTocGroup {
	if child := g.Child(name); child != nil {
		return child
	}
	if g.index == nil {
		g.index = make(map[string]*RestTocGroup)
	}
	child := NewRestTocGroup(name)
	g.index[name] = child
	g.children = append(g.children, child)
	return child
}

// Children returns the child nodes in creation order.
func (g *RestTocGroup) Children() []*RestTocGroup {
	return g.children
}

// Walk visits g and its descendants depth first. path holds the segment
// names from the first level below the root down to the visited node.
func (g *RestTocGroup) Walk(fn func(node *RestTocGroup, path []string)) {
	g.walk(nil, fn)
}

func (g *RestTocGroup) walk(path []string, fn func(*RestTocGroup, []string)) {
	fn(g, path)
	for _, child := range g.children {
		next := make([]string, len(path), len(path)+1)
		copy(next, path)
		child.walk(append(next, child.Name), fn)
	}
}
