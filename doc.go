// Package flutulus generates constructive solid geometry for
// conical-bore flutes. A declarative instrument spec (stacked conic
// frustums for the outer body and inner bore, finger holes, an
// embouchure hole with lip plate, and a tuning cork) is assembled into
// a scad operation tree that an external CSG engine turns into a solid
// model.
//
// All elevations are measured in millimetres along the bore axis from
// the foot of the instrument. Finger holes and the embouchure are
// drilled along +X.
package flutulus
