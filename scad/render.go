package scad

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Render writes the node and its children to w as OpenSCAD scene text.
// Rendering is pure and deterministic: identical trees always produce
// byte-identical output.
func (n *Node) Render(w io.Writer) error {
	return render(w, n, 0)
}

// String renders the node to a string.
func (n *Node) String() string {
	var sb strings.Builder
	render(&sb, n, 0) // string writes cannot fail
	return sb.String()
}

func render(w io.Writer, n *Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	switch n.op {
	case opCylinder:
		_, err := fmt.Fprintf(w, "%scylinder(h=%s, r1=%s, r2=%s, $fn=%d);\n",
			indent, ftoa(n.height), ftoa(n.r1), ftoa(n.r2), n.facets)
		return err
	case opComment:
		if _, err := fmt.Fprintf(w, "%s// %s\n", indent, n.label); err != nil {
			return err
		}
		return render(w, n.children[0], depth)
	case opTranslate, opRotate, opScale:
		if _, err := fmt.Fprintf(w, "%s%s(%s) {\n", indent, n.op, vtoa(n.vec)); err != nil {
			return err
		}
	case opUnion, opDifference, opIntersection:
		if _, err := fmt.Fprintf(w, "%s%s() {\n", indent, n.op); err != nil {
			return err
		}
	default:
		return fmt.Errorf("scad: cannot render %v node", n.op)
	}
	for _, c := range n.children {
		if err := render(w, c, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s}\n", indent)
	return err
}

// ftoa formats a scalar with the shortest representation that
// round-trips, keeping renders reproducible across runs.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func vtoa(v r3.Vec) string {
	return "[" + ftoa(v.X) + ", " + ftoa(v.Y) + ", " + ftoa(v.Z) + "]"
}
