package terrain

import (
	"math"

	"github.com/redblobgames/mapgen4/mesh"
)

// Geometry holds the three buffers the UI (out of scope) renders from
// (spec.md §4.10 / §6 "Outputs produced for collaborators").
type Geometry struct {
	Positions  []float32 // 2 floats per vertex: regions then triangles
	Attributes []float32 // 2 floats per vertex: (elevation, rainfall)
	Indices    []int32   // 3 ints per solid side
}

// BuildGeometry emits the position/attribute/index buffers. Requires
// RecomputeElevation, RecomputeRainfall, and RecomputeRivers to have
// already run.
func (f *Field) BuildGeometry() *Geometry {
	m := f.Mesh
	numR := m.NumRegions()
	numT := m.NumTriangles()

	g := &Geometry{
		Positions:  make([]float32, 2*(numR+numT)),
		Attributes: make([]float32, 2*(numR+numT)),
		Indices:    make([]int32, 0, 3*m.NumSolidSides()),
	}

	for r := 0; r < numR; r++ {
		if m.IsGhostRegion(mesh.RegionID(r)) {
			g.Positions[2*r] = 0
			g.Positions[2*r+1] = 0
			continue
		}
		p := m.RegionPos(mesh.RegionID(r))
		g.Positions[2*r] = float32(p.X)
		g.Positions[2*r+1] = float32(p.Y)
		g.Attributes[2*r] = float32(f.RegionElevation[r])
		g.Attributes[2*r+1] = float32(f.RegionRainfall[r])
	}

	for t := 0; t < numT; t++ {
		idx := numR + t
		p := m.TrianglePos(mesh.TriangleID(t))
		g.Positions[2*idx] = float32(p.X)
		g.Positions[2*idx+1] = float32(p.Y)

		if m.IsGhostTriangle(mesh.TriangleID(t)) {
			continue
		}
		elevation := f.TriangleElevation[t]
		corners := m.RAroundT(mesh.TriangleID(t))
		rainfall := (f.RegionRainfall[corners[0]] + f.RegionRainfall[corners[1]] + f.RegionRainfall[corners[2]]) / 3
		g.Attributes[2*idx] = float32(elevation)
		g.Attributes[2*idx+1] = float32(rainfall)
	}

	for s := 0; s < m.NumSolidSides(); s++ {
		side := mesh.SideID(s)
		rBegin := m.RBegin(side)
		rEnd := m.REnd(side)
		tInner := m.TInner(side)
		tOuter := m.TOuter(side)

		coastal := f.RegionElevation[rBegin] < 0 || f.RegionElevation[rEnd] < 0
		riverine := f.FlowSide[s] > 0 || f.FlowSide[m.Opposite(side)] > 0
		ridgeForced := m.IsGhostTriangle(tOuter)

		if coastal || riverine || ridgeForced {
			g.Indices = append(g.Indices, int32(rBegin), int32(numR+int(tOuter)), int32(numR+int(tInner)))
		} else {
			g.Indices = append(g.Indices, int32(rBegin), int32(rEnd), int32(numR+int(tInner)))
		}
	}

	return g
}

// RiverTriangle is one styled-stroke river segment (spec.md §4.10 "River
// geometry").
type RiverTriangle struct {
	// Positions of the three corner regions of the source triangle.
	AX, AY, BX, BY, CX, CY float32
	// Width of the outgoing side and up to two inbound sides.
	WidthOut, WidthIn1, WidthIn2 float32
}

// BuildRiverGeometry emits one river triangle per solid triangle whose
// outgoing flow exceeds MinFlow, for confluences emitting one triangle
// per tributary branch (spec.md §4.10).
func (f *Field) BuildRiverGeometry() []RiverTriangle {
	m := f.Mesh
	minFlow := f.Cfg.Derived.MinFlow
	riverWidth := f.Cfg.Derived.RiverWidth
	spacing := f.Cfg.Mesh.Spacing

	widthOf := func(flow, sideLen float64) float32 {
		if flow <= minFlow || sideLen <= 0 {
			return 0
		}
		return float32(math.Sqrt(flow-minFlow) * spacing * riverWidth / sideLen)
	}

	var out []RiverTriangle
	for t := 0; t < m.NumSolidTriangles(); t++ {
		outSide := f.DownslopeSide[t]
		if outSide < 0 || f.Flow[t] <= minFlow {
			continue
		}
		corners := m.RAroundT(mesh.TriangleID(t))
		a := m.RegionPos(corners[0])
		b := m.RegionPos(corners[1])
		c := m.RegionPos(corners[2])

		outLen := sideLength(m, mesh.SideID(outSide))
		tri := RiverTriangle{
			AX: float32(a.X), AY: float32(a.Y),
			BX: float32(b.X), BY: float32(b.Y),
			CX: float32(c.X), CY: float32(c.Y),
			WidthOut: widthOf(f.Flow[t], outLen),
		}

		inbound := inboundSides(m, f, int32(t))
		if len(inbound) > 0 {
			tri.WidthIn1 = widthOf(f.Flow[tributaryOf(m, inbound[0])], sideLength(m, inbound[0]))
		}
		if len(inbound) > 1 {
			tri.WidthIn2 = widthOf(f.Flow[tributaryOf(m, inbound[1])], sideLength(m, inbound[1]))
		}
		out = append(out, tri)

		for i := 2; i < len(inbound); i++ {
			branch := RiverTriangle{
				AX: float32(a.X), AY: float32(a.Y),
				BX: float32(b.X), BY: float32(b.Y),
				CX: float32(c.X), CY: float32(c.Y),
				WidthOut: tri.WidthOut,
				WidthIn1: widthOf(f.Flow[tributaryOf(m, inbound[i])], sideLength(m, inbound[i])),
			}
			out = append(out, branch)
		}
	}
	return out
}

func sideLength(m *mesh.Mesh, s mesh.SideID) float64 {
	a := m.RegionPos(m.RBegin(s))
	b := m.RegionPos(m.REnd(s))
	dx, dy := b.X-a.X, b.Y-a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// inboundSides returns the sides of triangle t whose own downslope side
// points into t (i.e. t is their trunk).
func inboundSides(m *mesh.Mesh, f *Field, t int32) []mesh.SideID {
	var result []mesh.SideID
	for _, s := range m.SAroundT(mesh.TriangleID(t)) {
		nb := m.TOuter(s)
		if m.IsGhostTriangle(nb) {
			continue
		}
		if f.DownslopeSide[nb] == int32(m.Opposite(s)) {
			result = append(result, m.Opposite(s))
		}
	}
	return result
}

// tributaryOf returns the triangle on the near side of s (the tributary
// triangle whose flow is being reported).
func tributaryOf(m *mesh.Mesh, s mesh.SideID) mesh.TriangleID {
	return m.TInner(s)
}
