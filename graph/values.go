// Package graph defines the domain values decoded from Gremlin server
// responses: vertices, edges, vertex properties, paths and sets.
package graph

import "fmt"

// Vertex represents a graph vertex. ID is an integer, string, or opaque token
// depending on the server's id provider. Properties maps each property key to
// the ordered list of values recorded under that key.
type Vertex struct {
	ID         any
	Label      string
	Properties map[string][]any
}

// Property returns the first value stored under key, or nil if absent.
func (v Vertex) Property(key string) any {
	values := v.Properties[key]
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

// String returns a compact representation for logging
func (v Vertex) String() string {
	return fmt.Sprintf("v[%v:%s]", v.ID, v.Label)
}

// Edge represents a graph edge between two vertices. The InVertex and
// OutVertex carry id and label only; their properties may be empty.
type Edge struct {
	ID         any
	Label      string
	InVertex   Vertex
	OutVertex  Vertex
	Properties map[string][]any
}

// String returns a compact representation for logging
func (e Edge) String() string {
	return fmt.Sprintf("e[%v:%s][%v->%v]", e.ID, e.Label, e.OutVertex.ID, e.InVertex.ID)
}

// VertexProperty represents a single property value attached to a vertex,
// optionally carrying meta properties of its own.
type VertexProperty struct {
	ID         any
	Label      string
	Value      any
	Vertex     *Vertex
	Properties map[string]any
}

// Path represents a traversal path. Labels[i] is the set of step labels that
// produced Objects[i].
type Path struct {
	Labels  [][]string
	Objects []any
}

// Len returns the number of objects in the path
func (p Path) Len() int {
	return len(p.Objects)
}

// Set is an unordered collection decoded from g:Set. Element order follows
// the server's serialization order but carries no meaning.
type Set []any

// Contains reports whether the set holds an element equal to v
func (s Set) Contains(v any) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}
