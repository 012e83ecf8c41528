package matgen

import "strconv"

// ParamKind represents the kind of a node parameter value.
type ParamKind int

const (
	// ParamString indicates a string parameter.
	ParamString ParamKind = iota
	// ParamInt indicates an integer parameter.
	ParamInt
	// ParamFloat indicates a float parameter.
	ParamFloat
)

// ParamValue is a node parameter value.
type ParamValue struct {
	Str  string    // String value
	Kind ParamKind // Value kind
	Int  int64     // Integer value
	Num  float64   // Float value
}

// String creates a string parameter value.
func String(s string) ParamValue { return ParamValue{Kind: ParamString, Str: s} }

// Int creates an integer parameter value.
func Int(i int64) ParamValue { return ParamValue{Kind: ParamInt, Int: i} }

// Float creates a float parameter value.
func Float(f float64) ParamValue { return ParamValue{Kind: ParamFloat, Num: f} }

// Text renders the value for reports and dumps.
func (v ParamValue) Text() string {
	switch v.Kind {
	case ParamInt:
		return strconv.FormatInt(v.Int, 10)
	case ParamFloat:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	default:
		return v.Str
	}
}

// Node is a handle to a node inside a host graph.
type Node interface {
	// ID returns the host-unique node identifier.
	ID() string
	// Kind returns the node kind.
	Kind() NodeKind
	// Name returns the display name given at creation.
	Name() string
}

// GraphBuilder exposes the node-graph surface of one material.
//
// All mutations between CreateMaterial and Commit form one transaction;
// Rollback discards them (mirrors host graph transactions).
type GraphBuilder interface {
	// AddNode creates a node of the given kind.
	AddNode(kind NodeKind, name string) (Node, error)
	// SetParam sets an input parameter on a node port.
	SetParam(n Node, port string, v ParamValue) error
	// Connect wires an output port of from to an input port of to.
	Connect(from Node, outPort string, to Node, inPort string) error
	// MaterialNode returns the pre-existing material node of the graph.
	MaterialNode() Node
	// OutputNode returns the pre-existing graph output node.
	OutputNode() Node
	// Commit applies the accumulated changes to the host.
	Commit() error
	// Rollback discards the accumulated changes.
	Rollback() error
}

// Host creates material graphs.
type Host interface {
	// CreateMaterial opens a new named material graph.
	CreateMaterial(name string) (GraphBuilder, error)
}

// ModelImporter is implemented by hosts that can import model files and
// assign materials to imported objects.
type ModelImporter interface {
	// ImportModels imports supported model files from dir and returns the
	// imported object names.
	ImportModels(dir string) ([]string, error)
	// AssignMaterial assigns a created material to an imported object and
	// its children.
	AssignMaterial(object, material string) error
}
