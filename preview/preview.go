// Package preview builds solid previews of flute geometry with the
// deadsy/sdfx signed distance field kernel. The scene description
// emitted by the scad package is the contract with the external CSG
// engine; the preview mirrors the same assembly so an instrument can
// be inspected as an STL mesh or PNG snapshot without leaving Go.
//
// Faceted exteriors are previewed smooth: facet counts are a
// tessellation hint to the consuming engine and have no SDF analog.
package preview

import (
	"fmt"
	"math"

	"github.com/MarkChuCarroll/flutulus"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// cutOverlap extends cutters past coincident faces, mirroring the
// scene assembly.
const cutOverlap = 0.1

// Solid builds a signed distance field for the instrument described
// by s: body minus bore, holes and embouchure, unioned with the lip
// plate and cork, matching the scad tree produced by flutulus.Build.
func Solid(s *flutulus.Spec) (sdf.SDF3, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	body, err := bodySolid(s)
	if err != nil {
		return nil, err
	}
	plate, err := plateSolid(s)
	if err != nil {
		return nil, err
	}
	cork, err := corkSolid(s)
	if err != nil {
		return nil, err
	}
	return sdf.Union3D(body, plate, cork), nil
}

// stackSolid is the SDF analog of a conic stack node: one cone per
// section, translated to its cumulative elevation. sdfx cones are
// centered on the origin, so each is lifted by half its height.
func stackSolid(st flutulus.Stack) (sdf.SDF3, error) {
	var parts []sdf.SDF3
	elev := 0.0
	for i, sec := range st {
		cone, err := sdf.Cone3D(sec.Height, sec.LowerDiameter/2, sec.UpperDiameter/2, 0)
		if err != nil {
			return nil, fmt.Errorf("stack section %d: %w", i, err)
		}
		m := sdf.Translate3d(v3.Vec{Z: elev + sec.Height/2})
		parts = append(parts, sdf.Transform3D(cone, m))
		elev += sec.Height
	}
	return sdf.Union3D(parts...), nil
}

// radial maps a +Z solid onto the +X hole axis at the given elevation,
// offset along the axis so the solid's base starts at the bore axis.
func radial(s sdf.SDF3, elevation, length float64) sdf.SDF3 {
	m := sdf.Translate3d(v3.Vec{X: length / 2, Z: elevation}).Mul(sdf.RotateY(math.Pi / 2))
	return sdf.Transform3D(s, m)
}

func bodySolid(s *flutulus.Spec) (sdf.SDF3, error) {
	outer, err := stackSolid(s.OuterBody)
	if err != nil {
		return nil, err
	}
	for _, h := range s.Holes {
		ring, err := ringSolid(s, h)
		if err != nil {
			return nil, err
		}
		outer = sdf.Union3D(outer, ring)
	}

	bore, err := stackSolid(s.InnerBore)
	if err != nil {
		return nil, err
	}
	body := sdf.Difference3D(outer, bore)
	for _, h := range s.Holes {
		cutLen := s.OuterBody.DiameterAt(h.Elevation)
		cut, err := sdf.Cylinder3D(cutLen, h.Diameter/2, 0)
		if err != nil {
			return nil, err
		}
		body = sdf.Difference3D(body, radial(cut, h.Elevation, cutLen))
	}
	emb, err := embouchureSolid(s)
	if err != nil {
		return nil, err
	}
	return sdf.Difference3D(body, emb), nil
}

// ringSolid is the annular finger hole reinforcement.
func ringSolid(s *flutulus.Spec, h flutulus.Hole) (sdf.SDF3, error) {
	boreR := s.InnerBore.DiameterAt(h.Elevation) / 2
	outerR := s.OuterBody.DiameterAt(h.Elevation) / 2
	span := outerR - boreR + flutulus.RingLip
	solid, err := sdf.Cylinder3D(span, h.Diameter/2+flutulus.RingWidth, 0)
	if err != nil {
		return nil, err
	}
	hole, err := sdf.Cylinder3D(span+2*cutOverlap, h.Diameter/2, 0)
	if err != nil {
		return nil, err
	}
	ring := sdf.Difference3D(solid, hole)
	m := sdf.Translate3d(v3.Vec{Z: h.Elevation}).
		Mul(sdf.RotateY(math.Pi / 2)).
		Mul(sdf.Translate3d(v3.Vec{Z: boreR + span/2}))
	return sdf.Transform3D(ring, m), nil
}

// embouchureSolid is the oval embouchure cutter, long enough to pass
// through the lip plate as well as the body wall.
func embouchureSolid(s *flutulus.Spec) (sdf.SDF3, error) {
	e := s.Embouchure
	length := s.OuterBody.DiameterAt(e.Elevation) + 2*flutulus.PlateThickness
	cut, err := sdf.Cylinder3D(length, e.Diameter/2, 0)
	if err != nil {
		return nil, err
	}
	m := sdf.Translate3d(v3.Vec{Z: e.Elevation}).
		Mul(sdf.RotateY(math.Pi / 2)).
		Mul(sdf.Scale3d(v3.Vec{X: e.Eccentricity, Y: 1, Z: 1})).
		Mul(sdf.Translate3d(v3.Vec{Z: length / 2}))
	return sdf.Transform3D(cut, m), nil
}

// plateSolid carves the oval lip plate out of a hollow shell, the
// same shell-intersect-select-cut sequence as the scene assembly.
func plateSolid(s *flutulus.Spec) (sdf.SDF3, error) {
	e := s.Embouchure
	outerR := s.OuterBody.DiameterAt(e.Elevation) / 2
	boreR := s.InnerBore.DiameterAt(e.Elevation) / 2
	plateH := flutulus.PlateSpan * e.Diameter

	shellOuter, err := sdf.Cylinder3D(plateH, outerR+flutulus.PlateThickness, 0)
	if err != nil {
		return nil, err
	}
	shellCore, err := sdf.Cylinder3D(plateH+2*cutOverlap, boreR, 0)
	if err != nil {
		return nil, err
	}
	shell := sdf.Transform3D(
		sdf.Difference3D(shellOuter, shellCore),
		sdf.Translate3d(v3.Vec{Z: e.Elevation}),
	)

	ovalLen := 2 * (outerR + flutulus.PlateThickness + cutOverlap)
	footR := flutulus.PlateHalfWidth * e.Diameter
	ovalCyl, err := sdf.Cylinder3D(ovalLen, footR, 0)
	if err != nil {
		return nil, err
	}
	ovalM := sdf.Translate3d(v3.Vec{Z: e.Elevation}).
		Mul(sdf.RotateY(math.Pi / 2)).
		Mul(sdf.Scale3d(v3.Vec{X: flutulus.PlateStretch, Y: 1, Z: 1}))
	oval := sdf.Transform3D(ovalCyl, ovalM)

	selLen := outerR + flutulus.PlateThickness + cutOverlap
	selCyl, err := sdf.Cylinder3D(selLen, plateH, 0)
	if err != nil {
		return nil, err
	}
	selector := radial(selCyl, e.Elevation, selLen)

	emb, err := embouchureSolid(s)
	if err != nil {
		return nil, err
	}
	plate := sdf.Intersect3D(sdf.Intersect3D(shell, oval), selector)
	return sdf.Difference3D(plate, emb), nil
}

// corkSolid is the tuning cork stub above the embouchure.
func corkSolid(s *flutulus.Spec) (sdf.SDF3, error) {
	e := s.Embouchure
	last := s.InnerBore[len(s.InnerBore)-1]
	radius := last.UpperDiameter/2 + flutulus.CorkClearance
	cork, err := sdf.Cylinder3D(flutulus.CorkHeight, radius, 0)
	if err != nil {
		return nil, err
	}
	elev := e.Elevation + flutulus.CorkSetback*e.Diameter
	m := sdf.Translate3d(v3.Vec{Z: elev + flutulus.CorkHeight/2})
	return sdf.Transform3D(cork, m), nil
}
