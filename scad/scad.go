// Package scad builds trees of constructive solid geometry operations
// and renders them as OpenSCAD scene descriptions.
//
// A tree is built bottom-up from a single round primitive (a conic
// frustum rendered as an OpenSCAD cylinder statement) and the composite
// operations translate, rotate, scale, union, difference and
// intersection. Child order is preserved verbatim by the renderer. For
// a difference the first child is the base solid and every following
// child is subtracted from it in listed order.
//
// Nodes are immutable once constructed. Use a Builder when the children
// of a boolean operation are accumulated in a loop.
package scad

import "gonum.org/v1/gonum/spatial/r3"

type op int

const (
	opCylinder op = iota
	opTranslate
	opRotate
	opScale
	opUnion
	opDifference
	opIntersection
	opComment
)

func (o op) String() string {
	switch o {
	case opCylinder:
		return "cylinder"
	case opTranslate:
		return "translate"
	case opRotate:
		return "rotate"
	case opScale:
		return "scale"
	case opUnion:
		return "union"
	case opDifference:
		return "difference"
	case opIntersection:
		return "intersection"
	case opComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Node is one operation in a CSG tree. The zero value is not a valid
// node; use the package constructors.
type Node struct {
	op op

	// cylinder parameters.
	height float64
	r1, r2 float64
	facets int

	// translate offset, rotate Euler angles in degrees, or scale
	// factors, depending on op.
	vec r3.Vec

	label    string
	children []*Node
}

// Cylinder returns a conic frustum primitive of the given height with
// lowerRadius at its base and upperRadius at its top. The frustum base
// sits on the local z=0 plane and the solid extends along +Z.
//
// facets requests that many flat faces around the axis; a facet count
// of 0 asks the consuming engine for maximum smoothness.
func Cylinder(height, lowerRadius, upperRadius float64, facets int) *Node {
	return &Node{op: opCylinder, height: height, r1: lowerRadius, r2: upperRadius, facets: facets}
}

// Translate returns a node that offsets its children by off.
func Translate(off r3.Vec, children ...*Node) *Node {
	return composite(opTranslate, off, children)
}

// Rotate returns a node that rotates its children by the given Euler
// angles in degrees, applied in X, Y, Z order.
func Rotate(deg r3.Vec, children ...*Node) *Node {
	return composite(opRotate, deg, children)
}

// Scale returns a node that scales its children by the given per-axis
// factors. A non-uniform scale of a cylinder yields an oval cylinder.
func Scale(factors r3.Vec, children ...*Node) *Node {
	return composite(opScale, factors, children)
}

// Union returns the boolean union of its children.
func Union(children ...*Node) *Node {
	return composite(opUnion, r3.Vec{}, children)
}

// Difference returns the first child minus every following child,
// subtracted cumulatively in listed order.
func Difference(children ...*Node) *Node {
	return composite(opDifference, r3.Vec{}, children)
}

// Intersect returns the boolean intersection of all children.
func Intersect(children ...*Node) *Node {
	return composite(opIntersection, r3.Vec{}, children)
}

// Comment wraps child with a human-readable annotation. The renderer
// emits the annotation as a comment line and the child at the same
// indentation level.
func Comment(label string, child *Node) *Node {
	if child == nil {
		panic("scad: nil child in Comment")
	}
	return &Node{op: opComment, label: label, children: []*Node{child}}
}

func composite(o op, v r3.Vec, children []*Node) *Node {
	if len(children) == 0 {
		panic("scad: " + o.String() + " requires at least one child")
	}
	for _, c := range children {
		if c == nil {
			panic("scad: nil child in " + o.String())
		}
	}
	kids := make([]*Node, len(children))
	copy(kids, children)
	return &Node{op: o, vec: v, children: kids}
}

// Builder accumulates children for a boolean operation and produces an
// immutable Node on completion.
type Builder struct {
	op       op
	children []*Node
	done     bool
}

// BuildUnion returns a Builder for a union node.
func BuildUnion() *Builder { return &Builder{op: opUnion} }

// BuildDifference returns a Builder for a difference node. The first
// added child is the base solid.
func BuildDifference() *Builder { return &Builder{op: opDifference} }

// BuildIntersection returns a Builder for an intersection node.
func BuildIntersection() *Builder { return &Builder{op: opIntersection} }

// Add appends children in order. Add panics if called after Node.
func (b *Builder) Add(children ...*Node) *Builder {
	if b.done {
		panic("scad: Add on finished Builder")
	}
	for _, c := range children {
		if c == nil {
			panic("scad: nil child in " + b.op.String())
		}
		b.children = append(b.children, c)
	}
	return b
}

// Len returns the number of children added so far.
func (b *Builder) Len() int { return len(b.children) }

// Node finalizes the builder and returns the completed node. The
// builder cannot be reused afterwards.
func (b *Builder) Node() *Node {
	if b.done {
		panic("scad: Node on finished Builder")
	}
	if len(b.children) == 0 {
		panic("scad: " + b.op.String() + " requires at least one child")
	}
	b.done = true
	n := &Node{op: b.op, children: b.children}
	b.children = nil
	return n
}
