package flutulus

import (
	"github.com/MarkChuCarroll/flutulus/scad"
	"gonum.org/v1/gonum/spatial/r3"
)

// Assembly constants, in millimetres unless noted. These are fixed
// manufacturing choices rather than per-instrument data.
const (
	// RingWidth is added to a finger hole's diameter to size its
	// reinforcement ring.
	RingWidth = 2.0
	// RingLip is how far a reinforcement ring stands proud of the
	// outer surface.
	RingLip = 1.0
	// PlateThickness is the radial thickness of the lip plate shell
	// over the outer body surface.
	PlateThickness = 2.0
	// PlateSpan sizes the lip plate's axial extent as a multiple of
	// the embouchure diameter.
	PlateSpan = 3.6
	// PlateHalfWidth is the lip plate footprint's half-width across
	// the bore, as a multiple of the embouchure diameter.
	PlateHalfWidth = 1.1
	// PlateStretch elongates the footprint oval along the bore axis.
	PlateStretch = 1.6
	// CorkClearance pads the cork radius past the bore wall so the
	// cork body seats under compression.
	CorkClearance = 0.25
	// CorkHeight is the axial length of the cork stub.
	CorkHeight = 20.0
	// CorkSetback places the cork face this many embouchure
	// diameters above the embouchure center.
	CorkSetback = 2.0
	// cutOverlap extends boolean cutters past coincident faces so
	// the engine never sees two coplanar surfaces.
	cutOverlap = 0.1
)

// Build assembles the full geometry tree for the instrument described
// by s: the hollowed, drilled body unioned with the lip plate and the
// tuning cork, preceded by a comment header carrying the instrument's
// name and description. The spec is validated first and no tree is
// produced on failure.
func Build(s *Spec) (*scad.Node, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	root := scad.Union(
		buildBody(s),
		buildPlate(s),
		buildCork(s),
	)
	for i := len(s.Description) - 1; i >= 0; i-- {
		root = scad.Comment(s.Description[i], root)
	}
	return scad.Comment(s.Name, root), nil
}

// stackNode renders a conic stack as a union of frustums, each
// translated to its cumulative elevation.
func stackNode(st Stack, facets int) *scad.Node {
	b := scad.BuildUnion()
	elev := 0.0
	for _, sec := range st {
		cyl := scad.Cylinder(sec.Height, sec.LowerDiameter/2, sec.UpperDiameter/2, facets)
		b.Add(scad.Translate(r3.Vec{Z: elev}, cyl))
		elev += sec.Height
	}
	return b.Node()
}

// buildBody constructs the instrument body: the outer stack plus one
// reinforcement ring per finger hole, minus the bore, the finger
// holes, and the embouchure opening.
func buildBody(s *Spec) *scad.Node {
	outer := stackNode(s.OuterBody, s.OuterFacets)
	if s.OuterFacets > 0 {
		// Turn the body half a facet so a flat face, not an edge,
		// straddles the finger hole axis.
		outer = scad.Rotate(r3.Vec{Z: 180 / float64(s.OuterFacets)}, outer)
	}

	solid := scad.BuildUnion()
	solid.Add(outer)
	for _, h := range s.Holes {
		solid.Add(holeRing(s, h))
	}

	cut := scad.BuildDifference()
	cut.Add(solid.Node())
	cut.Add(scad.Comment("bore", stackNode(s.InnerBore, 0)))
	for _, h := range s.Holes {
		cut.Add(holeCut(s, h))
	}
	cut.Add(embouchureCutter(s))
	return scad.Comment("body", cut.Node())
}

// radial orients a +Z solid along +X at the given elevation: the hole
// drilling direction.
func radial(elevation float64, n *scad.Node) *scad.Node {
	return scad.Translate(r3.Vec{Z: elevation}, scad.Rotate(r3.Vec{Y: 90}, n))
}

// holeCut is the through-cylinder removed for one finger hole. Its
// length equals the outer body diameter at the hole's elevation, so
// starting from the bore axis it always clears the near wall without
// reaching the far one.
func holeCut(s *Spec, h Hole) *scad.Node {
	length := s.OuterBody.DiameterAt(h.Elevation)
	return radial(h.Elevation, scad.Cylinder(length, h.Diameter/2, h.Diameter/2, 0))
}

// holeRing is the annular reinforcement unioned around one finger
// hole. It spans the body wall from the bore radius to just past the
// outer surface; the hole cut drilled afterwards passes through it.
func holeRing(s *Spec, h Hole) *scad.Node {
	boreR := s.InnerBore.DiameterAt(h.Elevation) / 2
	outerR := s.OuterBody.DiameterAt(h.Elevation) / 2
	span := outerR - boreR + RingLip
	ring := scad.Difference(
		scad.Cylinder(span, h.Diameter/2+RingWidth, h.Diameter/2+RingWidth, 0),
		scad.Translate(r3.Vec{Z: -cutOverlap},
			scad.Cylinder(span+2*cutOverlap, h.Diameter/2, h.Diameter/2, 0)),
	)
	return scad.Comment("hole ring",
		radial(h.Elevation, scad.Translate(r3.Vec{Z: boreR}, ring)))
}

// embouchureCutter is the oval cylinder removed for the embouchure
// opening. Eccentricity is applied as a pre-rotation scale on the
// cutter, which places the oval's long axis along the bore. The
// cutter is long enough to pass through the lip plate as well as the
// body wall.
func embouchureCutter(s *Spec) *scad.Node {
	e := s.Embouchure
	length := s.OuterBody.DiameterAt(e.Elevation) + 2*PlateThickness
	cyl := scad.Cylinder(length, e.Diameter/2, e.Diameter/2, 0)
	return scad.Comment("embouchure",
		radial(e.Elevation, scad.Scale(r3.Vec{X: e.Eccentricity, Y: 1, Z: 1}, cyl)))
}

// buildCork is the tuning cork stub: a smooth cylinder sized from the
// last bore section plus a compression clearance, seated above the
// embouchure.
func buildCork(s *Spec) *scad.Node {
	e := s.Embouchure
	last := s.InnerBore[len(s.InnerBore)-1]
	radius := last.UpperDiameter/2 + CorkClearance
	elev := e.Elevation + CorkSetback*e.Diameter
	return scad.Comment("cork",
		scad.Translate(r3.Vec{Z: elev}, scad.Cylinder(CorkHeight, radius, radius, 0)))
}
