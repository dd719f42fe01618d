package terrain

import (
	"math"

	"github.com/redblobgames/mapgen4/mesh"
	"github.com/redblobgames/mapgen4/telemetry"
)

// ScanSkinnyTriangles flags every solid triangle whose minimum interior
// angle falls below telemetry.SkinnyAngleThresholdDeg into diag. This is
// a non-fatal diagnostic (spec.md §7) observed alongside geometry
// emission; it never blocks BuildGeometry's output.
func (f *Field) ScanSkinnyTriangles(diag *telemetry.Diagnostics) {
	m := f.Mesh
	for t := 0; t < m.NumSolidTriangles(); t++ {
		corners := m.RAroundT(mesh.TriangleID(t))
		a := m.RegionPos(corners[0])
		b := m.RegionPos(corners[1])
		c := m.RegionPos(corners[2])
		minAngle := minInteriorAngleDeg(a, b, c)
		if minAngle < telemetry.SkinnyAngleThresholdDeg {
			diag.FlagSkinny(int32(t), minAngle)
		}
	}
}

// minInteriorAngleDeg returns the smallest of the three interior angles
// of triangle (a,b,c), in degrees.
func minInteriorAngleDeg(a, b, c mesh.Point) float64 {
	angle := func(p, q, r mesh.Point) float64 {
		ux, uy := q.X-p.X, q.Y-p.Y
		vx, vy := r.X-p.X, r.Y-p.Y
		dot := ux*vx + uy*vy
		cross := ux*vy - uy*vx
		return math.Abs(math.Atan2(cross, dot)) * 180 / math.Pi
	}
	angA := angle(a, b, c)
	angB := angle(b, c, a)
	angC := angle(c, a, b)
	return math.Min(angA, math.Min(angB, angC))
}
