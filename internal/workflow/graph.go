package workflow

import (
	"context"
	"fmt"
	"sort"
)

// NodeFunc executes one step and returns what it adds to the state.
type NodeFunc func(ctx context.Context, st *State, emit EmitFunc) (NodeOutput, error)

// RouteFunc picks the next route key from the state.
type RouteFunc func(st *State) string

type conditional struct {
	route  RouteFunc
	routes map[string]string
}

// Graph is a mutable workflow definition.
type Graph struct {
	entry        string
	nodes        map[string]NodeFunc
	order        []string
	edges        map[string]string
	conditionals map[string]conditional
	errs         []error
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:        make(map[string]NodeFunc),
		edges:        make(map[string]string),
		conditionals: make(map[string]conditional),
	}
}

// AddNode registers a node.
func (g *Graph) AddNode(name string, fn NodeFunc) *Graph {
	if _, ok := g.nodes[name]; ok || name == END {
		g.errs = append(g.errs, fmt.Errorf("%w: %s", ErrDuplicateNode, name))
		return g
	}
	g.nodes[name] = fn
	g.order = append(g.order, name)
	return g
}

// SetEntryPoint marks the node every run starts from.
func (g *Graph) SetEntryPoint(name string) *Graph {
	g.entry = name
	return g
}

// AddEdge adds an unconditional transition.
func (g *Graph) AddEdge(from, to string) *Graph {
	g.edges[from] = to
	return g
}

// AddConditionalEdges routes from a node through route, mapping route keys to nodes.
func (g *Graph) AddConditionalEdges(from string, route RouteFunc, routes map[string]string) *Graph {
	copied := make(map[string]string, len(routes))
	for k, v := range routes {
		copied[k] = v
	}
	g.conditionals[from] = conditional{route: route, routes: copied}
	return g
}

// Compile validates the topology and freezes it.
func (g *Graph) Compile() (*CompiledGraph, error) {
	if len(g.errs) > 0 {
		return nil, g.errs[0]
	}
	if g.entry == "" {
		return nil, ErrNoEntryNode
	}
	if _, ok := g.nodes[g.entry]; !ok {
		return nil, fmt.Errorf("%w: entry %s", ErrUnknownNode, g.entry)
	}

	for _, name := range g.order {
		_, static := g.edges[name]
		_, cond := g.conditionals[name]
		if static && cond {
			return nil, fmt.Errorf("%w: %s", ErrConflictingEdges, name)
		}
		if !static && !cond {
			return nil, fmt.Errorf("%w: %s", ErrMissingEdges, name)
		}
	}

	cg := &CompiledGraph{
		entry:        g.entry,
		nodes:        g.nodes,
		order:        append([]string(nil), g.order...),
		edges:        g.edges,
		conditionals: g.conditionals,
	}

	for _, e := range cg.Edges() {
		if _, ok := g.nodes[e.From]; !ok {
			return nil, fmt.Errorf("%w: edge source %s", ErrUnknownNode, e.From)
		}
		if e.To == END {
			continue
		}
		if _, ok := g.nodes[e.To]; !ok {
			return nil, fmt.Errorf("%w: edge %s -> %s", ErrUnknownNode, e.From, e.To)
		}
		if e.To == g.entry {
			return nil, fmt.Errorf("%w: %s -> %s", ErrEdgeToEntry, e.From, e.To)
		}
	}

	visited := make(map[string]bool)
	if err := cg.walk(g.entry, map[string]bool{}, 1, visited); err != nil {
		return nil, err
	}
	for _, name := range g.order {
		if !visited[name] {
			return nil, fmt.Errorf("%w: %s", ErrUnreachableNode, name)
		}
	}

	return cg, nil
}

// CompiledGraph is an immutable, validated graph.
type CompiledGraph struct {
	entry        string
	nodes        map[string]NodeFunc
	order        []string
	edges        map[string]string
	conditionals map[string]conditional
}

// Edge describes one transition. Condition is the route key for conditional edges.
type Edge struct {
	From      string `json:"from" yaml:"from"`
	To        string `json:"to" yaml:"to"`
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// Topology is a printable view of a compiled graph.
type Topology struct {
	Entry string   `json:"entry" yaml:"entry"`
	Nodes []string `json:"nodes" yaml:"nodes"`
	Edges []Edge   `json:"edges" yaml:"edges"`
}

// Entry returns the entry node name.
func (cg *CompiledGraph) Entry() string {
	return cg.entry
}

// HasNode reports whether name is part of the graph.
func (cg *CompiledGraph) HasNode(name string) bool {
	_, ok := cg.nodes[name]
	return ok
}

// Edges lists every transition in node registration order.
func (cg *CompiledGraph) Edges() []Edge {
	var out []Edge
	for _, from := range cg.order {
		if to, ok := cg.edges[from]; ok {
			out = append(out, Edge{From: from, To: to})
			continue
		}
		c, ok := cg.conditionals[from]
		if !ok {
			continue
		}
		keys := make([]string, 0, len(c.routes))
		for k := range c.routes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, Edge{From: from, To: c.routes[k], Condition: k})
		}
	}
	return out
}

// Topology returns the printable graph.
func (cg *CompiledGraph) Topology() Topology {
	return Topology{
		Entry: cg.entry,
		Nodes: append(append([]string(nil), cg.order...), END),
		Edges: cg.Edges(),
	}
}

func (cg *CompiledGraph) successors(name string) []string {
	if to, ok := cg.edges[name]; ok {
		return []string{to}
	}
	var out []string
	for _, e := range cg.Edges() {
		if e.From == name {
			out = append(out, e.To)
		}
	}
	return out
}

// walk checks every path from name reaches END within maxNodeExecutions.
func (cg *CompiledGraph) walk(name string, onPath map[string]bool, depth int, visited map[string]bool) error {
	if onPath[name] {
		return fmt.Errorf("%w: at %s", ErrCycle, name)
	}
	if depth > maxNodeExecutions {
		return fmt.Errorf("%w: reached %s", ErrPathTooLong, name)
	}
	visited[name] = true
	onPath[name] = true
	defer delete(onPath, name)

	for _, next := range cg.successors(name) {
		if next == END {
			continue
		}
		if err := cg.walk(next, onPath, depth+1, visited); err != nil {
			return err
		}
	}
	return nil
}

// next resolves the transition out of name.
func (cg *CompiledGraph) next(name string, st *State) (string, error) {
	if to, ok := cg.edges[name]; ok {
		return to, nil
	}
	c := cg.conditionals[name]
	key := c.route(st)
	to, ok := c.routes[key]
	if !ok {
		return "", fmt.Errorf("%w: %s returned %q", ErrUnknownRoute, name, key)
	}
	return to, nil
}
