package flutulus

import (
	"github.com/MarkChuCarroll/flutulus/scad"
	"gonum.org/v1/gonum/spatial/r3"
)

// buildPlate constructs the oval lip plate draped over the body's
// curvature. The consuming engine has no primitive that conforms a
// flat patch to a cylinder, so the plate is carved out of a hollow
// shell instead:
//
//  1. a cylindrical shell spanning the plate height, from the bore
//     radius out to the body radius plus the plate thickness;
//  2. intersected with an oval cylinder aimed along the hole axis,
//     which leaves two mirror-image lens-shaped halves wrapped around
//     the shell;
//  3. intersected with a half-space selector that keeps only the +X
//     half, the side the holes are drilled on;
//  4. minus the oval embouchure cutter.
func buildPlate(s *Spec) *scad.Node {
	e := s.Embouchure
	outerR := s.OuterBody.DiameterAt(e.Elevation) / 2
	boreR := s.InnerBore.DiameterAt(e.Elevation) / 2
	plateH := PlateSpan * e.Diameter

	shell := scad.Translate(r3.Vec{Z: e.Elevation - plateH/2},
		scad.Difference(
			scad.Cylinder(plateH, outerR+PlateThickness, outerR+PlateThickness, 0),
			scad.Translate(r3.Vec{Z: -cutOverlap},
				scad.Cylinder(plateH+2*cutOverlap, boreR, boreR, 0)),
		))

	// Footprint oval spanning the full body on both sides; the
	// intersection with the half-space selector discards the -X lens.
	ovalLen := 2 * (outerR + PlateThickness + cutOverlap)
	footR := PlateHalfWidth * e.Diameter
	oval := scad.Translate(r3.Vec{Z: e.Elevation},
		scad.Rotate(r3.Vec{Y: 90},
			scad.Scale(r3.Vec{X: PlateStretch, Y: 1, Z: 1},
				scad.Translate(r3.Vec{Z: -ovalLen / 2},
					scad.Cylinder(ovalLen, footR, footR, 0)))))

	selector := radial(e.Elevation,
		scad.Cylinder(outerR+PlateThickness+cutOverlap, plateH, plateH, 0))

	plate := scad.Difference(
		scad.Intersect(shell, oval, selector),
		embouchureCutter(s),
	)
	return scad.Comment("lip plate", plate)
}
