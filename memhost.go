package matgen

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// MemHost is an in-memory Host for tests, dry runs, and report output.
type MemHost struct {
	Materials   []*MemGraph       // Created material graphs in creation order
	Objects     []string          // Imported object names
	Assignments map[string]string // Imported object to material name
	ModelExts   []string          // Model extensions accepted by ImportModels (default .gltf/.glb/.obj/.fbx)
}

// NewMemHost creates an empty in-memory host.
func NewMemHost() *MemHost {
	return &MemHost{Assignments: make(map[string]string)}
}

// CreateMaterial opens a new in-memory material graph.
func (h *MemHost) CreateMaterial(name string) (GraphBuilder, error) {
	g := newMemGraph(name)
	h.Materials = append(h.Materials, g)
	return g, nil
}

// Material returns a created graph by material name.
func (h *MemHost) Material(name string) (*MemGraph, bool) {
	for _, g := range h.Materials {
		if g.GraphName == name {
			return g, true
		}
	}

	return nil, false
}

// ImportModels records model files found in dir as imported objects.
func (h *MemHost) ImportModels(dir string) ([]string, error) {
	exts := h.ModelExts
	if len(exts) == 0 {
		exts = []string{".gltf", ".glb", ".obj", ".fbx"}
	}

	var objects []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(path, exts) {
			objects = append(objects, stemOf(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(objects)
	h.Objects = append(h.Objects, objects...)
	return objects, nil
}

// AssignMaterial assigns a material to a previously imported object.
func (h *MemHost) AssignMaterial(object, material string) error {
	for _, o := range h.Objects {
		if o == object {
			h.Assignments[object] = material
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrUnknownObject, object)
}

// graphState tracks the transaction state of a MemGraph.
type graphState int

const (
	graphOpen graphState = iota
	graphCommitted
	graphRolledBack
)

// MemGraph is an in-memory material graph.
type MemGraph struct {
	GraphName string     // Material name
	nodes     []*memNode // Nodes in creation order, material and output first
	edges     []memEdge  // Connections in creation order
	material  *memNode   // Material node handle
	output    *memNode   // Output node handle
	state     graphState // Transaction state
}

// memEdge is a connection between two node ports.
type memEdge struct {
	from, to         *memNode
	fromPort, toPort string
}

// memNode is an in-memory graph node.
type memNode struct {
	id     string
	kind   NodeKind
	name   string
	params map[string]ParamValue
}

// ID implements Node.
func (n *memNode) ID() string { return n.id }

// Kind implements Node.
func (n *memNode) Kind() NodeKind { return n.kind }

// Name implements Node.
func (n *memNode) Name() string { return n.name }

func newMemNode(kind NodeKind, name string) *memNode {
	return &memNode{
		id:     uuid.NewString(),
		kind:   kind,
		name:   name,
		params: make(map[string]ParamValue),
	}
}

func newMemGraph(name string) *MemGraph {
	g := &MemGraph{GraphName: name}
	// Every fresh graph carries its material and output nodes.
	g.material = newMemNode(NodeStandardMaterial, name)
	g.output = newMemNode(NodeOutput, name)
	g.nodes = append(g.nodes, g.material, g.output)
	return g
}

// AddNode implements GraphBuilder.
func (g *MemGraph) AddNode(kind NodeKind, name string) (Node, error) {
	if g.state != graphOpen {
		return nil, ErrGraphClosed
	}
	n := newMemNode(kind, name)
	g.nodes = append(g.nodes, n)
	return n, nil
}

// SetParam implements GraphBuilder.
func (g *MemGraph) SetParam(n Node, port string, v ParamValue) error {
	if g.state != graphOpen {
		return ErrGraphClosed
	}
	mn, err := g.owned(n)
	if err != nil {
		return err
	}
	mn.params[port] = v
	return nil
}

// Connect implements GraphBuilder.
func (g *MemGraph) Connect(from Node, outPort string, to Node, inPort string) error {
	if g.state != graphOpen {
		return ErrGraphClosed
	}
	mfrom, err := g.owned(from)
	if err != nil {
		return err
	}
	mto, err := g.owned(to)
	if err != nil {
		return err
	}
	g.edges = append(g.edges, memEdge{from: mfrom, fromPort: outPort, to: mto, toPort: inPort})
	return nil
}

// MaterialNode implements GraphBuilder.
func (g *MemGraph) MaterialNode() Node { return g.material }

// OutputNode implements GraphBuilder.
func (g *MemGraph) OutputNode() Node { return g.output }

// Commit implements GraphBuilder.
func (g *MemGraph) Commit() error {
	if g.state != graphOpen {
		return ErrGraphClosed
	}
	g.state = graphCommitted
	return nil
}

// Rollback implements GraphBuilder. The material and output nodes survive,
// everything staged since CreateMaterial is discarded.
func (g *MemGraph) Rollback() error {
	if g.state != graphOpen {
		return ErrGraphClosed
	}
	g.nodes = g.nodes[:2]
	g.edges = nil
	g.state = graphRolledBack
	return nil
}

// Committed reports whether the graph transaction was committed.
func (g *MemGraph) Committed() bool { return g.state == graphCommitted }

// NodesOfKind returns the graph nodes of the given kind in creation order.
func (g *MemGraph) NodesOfKind(kind NodeKind) []Node {
	var out []Node
	for _, n := range g.nodes {
		if n.kind == kind {
			out = append(out, n)
		}
	}

	return out
}

// Param returns a parameter previously set on a node port.
func (g *MemGraph) Param(n Node, port string) (ParamValue, bool) {
	mn, err := g.owned(n)
	if err != nil {
		return ParamValue{}, false
	}
	v, ok := mn.params[port]
	return v, ok
}

// Connected reports whether an edge from.outPort -> to.inPort exists.
func (g *MemGraph) Connected(from Node, outPort string, to Node, inPort string) bool {
	for _, e := range g.edges {
		if e.from.id == from.ID() && e.to.id == to.ID() && e.fromPort == outPort && e.toPort == inPort {
			return true
		}
	}

	return false
}

// Dump renders the graph to stable text for logs and golden tests.
// Node identity is positional, IDs never leak into the output.
func (g *MemGraph) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "material %s\n", g.GraphName)
	for _, n := range g.nodes {
		fmt.Fprintf(&b, "  node %s %q\n", n.kind, n.name)
		ports := make([]string, 0, len(n.params))
		for p := range n.params {
			ports = append(ports, p)
		}
		sort.Strings(ports)
		for _, p := range ports {
			fmt.Fprintf(&b, "    %s = %s\n", p, n.params[p].Text())
		}
	}
	for _, e := range g.edges {
		fmt.Fprintf(&b, "  %s[%s].%s -> %s[%s].%s\n",
			e.from.kind, e.from.name, e.fromPort,
			e.to.kind, e.to.name, e.toPort)
	}

	return b.String()
}

// owned resolves a Node handle to the graph's own node.
func (g *MemGraph) owned(n Node) (*memNode, error) {
	if n == nil {
		return nil, ErrUnknownNode
	}
	for _, mn := range g.nodes {
		if mn.id == n.ID() {
			return mn, nil
		}
	}

	return nil, ErrUnknownNode
}
