package mesh

import (
	"math"

	"github.com/redblobgames/mapgen4/mapgenerr"
)

// RegionID, SideID and TriangleID are the three parallel index spaces of
// spec.md §3. Each is a distinct named int32 type so a reviewer cannot
// pass one kind of id where another is expected without an explicit
// conversion, mirroring the teacher's named-constant style for
// TerrainCell/SizeClass in systems/terrain.go and systems/navgrid.go.
type RegionID int32
type SideID int32
type TriangleID int32

const ghostSentinel = -1

// outwardGhostOffset is the fixed perpendicular distance a ghost
// triangle's position is pushed outward from its hull edge (spec.md
// §4.3: "design choice: 10 units along the outward normal").
const outwardGhostOffset = 10.0

// Mesh is the dual mesh: Delaunay triangulation plus its Voronoi dual,
// closed with ghost elements so every side has a pair (spec.md §4.3).
// All arrays are allocated once at construction and never resized
// afterward (spec.md §3 "Lifecycles").
type Mesh struct {
	numRegions         int
	numBoundaryRegions int
	numSolidSides      int
	numSides           int
	numSolidTriangles  int
	numTriangles       int

	// triangles[s] = region id at the start of side s (r_begin(s)).
	triangles []int32
	// halfedges[s] = opposite side of s, always >= 0 after construction.
	halfedges []int32

	// sOfR[r] = a representative side s with triangles[s] == r, chosen
	// so that circulating via next(opposite(·)) visits every side
	// incident to r (spec.md §4.3 "Derived data").
	sOfR []int32

	regionPos   []Point
	trianglePos []Point
}

func (m *Mesh) NumRegions() int         { return m.numRegions }
func (m *Mesh) NumBoundaryRegions() int { return m.numBoundaryRegions }
func (m *Mesh) NumSolidSides() int      { return m.numSolidSides }
func (m *Mesh) NumSides() int           { return m.numSides }
func (m *Mesh) NumSolidTriangles() int  { return m.numSolidTriangles }
func (m *Mesh) NumTriangles() int       { return m.numTriangles }
func (m *Mesh) GhostRegion() RegionID   { return RegionID(m.numRegions - 1) }

// Build constructs the dual mesh from an ordered point list (the first
// numBoundaryRegions points are the boundary prefix, spec.md §4.3) by
// Delaunay-triangulating it and applying ghost closure.
func Build(points []Point, numBoundaryRegions int) (*Mesh, error) {
	triangles, halfedges, err := triangulate(points)
	if err != nil {
		return nil, err
	}

	m := &Mesh{
		numRegions:         len(points) + 1, // +1 for the ghost region
		numBoundaryRegions: numBoundaryRegions,
		numSolidSides:      len(triangles),
		numSolidTriangles:  len(triangles) / 3,
	}

	regionPos := make([]Point, m.numRegions)
	copy(regionPos, points)
	// regionPos[ghost] is left at the zero value; spec.md §3 says it
	// must never be read.

	if err := m.closeGhosts(triangles, halfedges, regionPos); err != nil {
		return nil, err
	}

	m.computePositions(regionPos)
	m.computeSOfR(triangles, halfedges)

	if err := m.validateInvariants(); err != nil {
		return nil, err
	}
	return m, nil
}

// closeGhosts finds every unpaired side, appends a ghost region and one
// ghost triangle per unpaired side, and links the ghost triangles into a
// single cycle around the hull (spec.md §4.3 "Ghost closure").
func (m *Mesh) closeGhosts(triangles, halfedges []int32, regionPos []Point) error {
	ghost := int32(m.numRegions - 1)

	// unpairedFrom[r] = the unpaired side whose r_begin is r. A valid
	// Delaunay triangulation's hull is a simple polygon, so each
	// boundary region has exactly one outgoing unpaired side.
	unpairedFrom := make(map[int32]int32)
	var unpaired []int32
	for s := 0; s < len(triangles); s++ {
		if halfedges[s] == ghostSentinel {
			unpaired = append(unpaired, int32(s))
			unpairedFrom[triangles[s]] = int32(s)
		}
	}
	if len(unpaired) == 0 {
		return mapgenerr.New(mapgenerr.MeshInvariantViolated, "closeGhosts: triangulation has no hull (no unpaired sides)")
	}

	// Order the unpaired sides into one traversal of the hull cycle:
	// s_{i+1} = unpairedFrom[r_end(s_i)].
	order := make([]int32, 0, len(unpaired))
	seen := make(map[int32]bool, len(unpaired))
	cur := unpaired[0]
	for len(order) < len(unpaired) {
		if seen[cur] {
			return mapgenerr.New(mapgenerr.MeshInvariantViolated, "closeGhosts: hull cycle did not cover all unpaired sides (%d of %d)", len(order), len(unpaired))
		}
		seen[cur] = true
		order = append(order, cur)
		rEnd := triangles[nextSide(int(cur))]
		next, ok := unpairedFrom[rEnd]
		if !ok {
			return mapgenerr.New(mapgenerr.MeshInvariantViolated, "closeGhosts: unpaired side ending at region %d has no continuation", rEnd)
		}
		cur = next
	}

	k := len(order)
	numSolidSides := len(triangles)
	newTriangles := make([]int32, numSolidSides, numSolidSides+3*k)
	copy(newTriangles, triangles)
	newHalfedges := make([]int32, numSolidSides+3*k)
	copy(newHalfedges, halfedges)

	ghostTriPos := make([]Point, k)

	for i, s := range order {
		rEnd := triangles[nextSide(int(s))]
		rBegin := triangles[s]

		base := int32(numSolidSides + 3*i)
		sideA := base + 0 // begin rEnd, end rBegin: opposite of s
		sideB := base + 1 // begin rBegin, end ghost
		// base + 2 begins at ghost and ends at rEnd; it is paired below as
		// sideCPrev by the next ghost triangle in hull order.

		newTriangles = append(newTriangles, rEnd, rBegin, ghost)

		newHalfedges[sideA] = s
		newHalfedges[s] = sideA

		// sideB of triangle i pairs with sideC of the previous triangle
		// in hull order, per spec.md §4.3 invariant 7.
		prev := (i - 1 + k) % k
		sideCPrev := int32(numSolidSides + 3*prev + 2)
		newHalfedges[sideB] = sideCPrev
		newHalfedges[sideCPrev] = sideB

		a := regionPos[rBegin]
		b := regionPos[rEnd]
		mid := Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
		nx, ny := outwardNormal(a, b)
		ghostTriPos[i] = Point{mid.X + nx*outwardGhostOffset, mid.Y + ny*outwardGhostOffset}
	}

	m.triangles = newTriangles
	m.halfedges = newHalfedges
	m.numSides = len(newTriangles)
	m.numTriangles = len(newTriangles) / 3

	m.trianglePos = make([]Point, m.numTriangles)
	for i, p := range ghostTriPos {
		m.trianglePos[m.numSolidTriangles+i] = p
	}
	return nil
}

// outwardNormal returns the unit normal of edge a->b pointing away from
// the hull interior, i.e. to the right of the directed edge (since the
// solid mesh is wound CCW, the outside of a hull edge a->b is to the
// right of travel).
func outwardNormal(a, b Point) (nx, ny float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := hypot(dx, dy)
	if length == 0 {
		return 0, 0
	}
	// Right-hand perpendicular of (dx,dy) is (dy,-dx).
	return dy / length, -dx / length
}

func hypot(dx, dy float64) float64 {
	return math.Sqrt(dx*dx + dy*dy)
}

// computePositions fills in solid triangle positions (centroid of the
// three corner regions) now that ghost triangle positions are already
// set by closeGhosts.
func (m *Mesh) computePositions(regionPos []Point) {
	m.regionPos = regionPos
	for t := 0; t < m.numSolidTriangles; t++ {
		a := regionPos[m.triangles[3*t]]
		b := regionPos[m.triangles[3*t+1]]
		c := regionPos[m.triangles[3*t+2]]
		m.trianglePos[t] = Point{(a.X + b.X + c.X) / 3, (a.Y + b.Y + c.Y) / 3}
	}
}

// computeSOfR picks one representative incident side per region,
// preferring (for boundary regions) the side that was a hull-boundary
// side before ghost closure, per spec.md §4.3.
func (m *Mesh) computeSOfR(origTriangles, origHalfedges []int32) {
	sOfR := make([]int32, m.numRegions)
	for i := range sOfR {
		sOfR[i] = ghostSentinel
	}
	for s := 0; s < len(origTriangles); s++ {
		if origHalfedges[s] == ghostSentinel {
			sOfR[origTriangles[s]] = int32(s)
		}
	}
	for s := 0; s < m.numSides; s++ {
		r := m.triangles[s]
		if sOfR[r] == ghostSentinel {
			sOfR[r] = int32(s)
		}
	}
	m.sOfR = sOfR
}

// --- Core navigation (spec.md §3/§4.3) ---

// Next returns the following side within the same triangle as s.
func (m *Mesh) Next(s SideID) SideID {
	return SideID(nextSide(int(s)))
}

// Opposite returns the paired side of s. After construction this is
// always >= 0 (invariant 5).
func (m *Mesh) Opposite(s SideID) SideID {
	return SideID(m.halfedges[s])
}

// RBegin returns the region at the start of side s.
func (m *Mesh) RBegin(s SideID) RegionID {
	return RegionID(m.triangles[s])
}

// REnd returns the region at the end of side s.
func (m *Mesh) REnd(s SideID) RegionID {
	return RegionID(m.triangles[m.Next(s)])
}

// TInner returns the triangle that side s belongs to.
func (m *Mesh) TInner(s SideID) TriangleID {
	return TriangleID(int(s) / 3)
}

// TOuter returns the triangle on the other side of s.
func (m *Mesh) TOuter(s SideID) TriangleID {
	return m.TInner(m.Opposite(s))
}

// SOfR returns a representative side incident to region r.
func (m *Mesh) SOfR(r RegionID) SideID {
	return SideID(m.sOfR[r])
}

// --- Ghost predicates (spec.md §9 "Ghost closure") ---

func (m *Mesh) IsGhostRegion(r RegionID) bool {
	return int(r) == m.numRegions-1
}

func (m *Mesh) IsGhostSide(s SideID) bool {
	return int(s) >= m.numSolidSides
}

func (m *Mesh) IsGhostTriangle(t TriangleID) bool {
	return int(t) >= m.numSolidTriangles
}

func (m *Mesh) IsBoundaryRegion(r RegionID) bool {
	return int(r) < m.numBoundaryRegions
}

// --- Positions ---

func (m *Mesh) RegionPos(r RegionID) Point     { return m.regionPos[r] }
func (m *Mesh) TrianglePos(t TriangleID) Point { return m.trianglePos[t] }

// --- Trivial per-triangle adjacency (spec.md §4.3) ---

func (m *Mesh) SAroundT(t TriangleID) [3]SideID {
	base := SideID(3 * t)
	return [3]SideID{base, base + 1, base + 2}
}

func (m *Mesh) RAroundT(t TriangleID) [3]RegionID {
	sides := m.SAroundT(t)
	return [3]RegionID{m.RBegin(sides[0]), m.RBegin(sides[1]), m.RBegin(sides[2])}
}

func (m *Mesh) TAroundT(t TriangleID) [3]TriangleID {
	sides := m.SAroundT(t)
	return [3]TriangleID{m.TOuter(sides[0]), m.TOuter(sides[1]), m.TOuter(sides[2])}
}

// --- Circulating per-region adjacency (spec.md §4.3) ---

// SAroundR returns every side outgoing from region r (i.e. with
// RBegin(s) == r), visiting the neighbor fan in order by rotating
// next(opposite(·)), per spec.md §4.3/§9 invariant 4.
func (m *Mesh) SAroundR(r RegionID) []SideID {
	start := m.SOfR(r)
	result := make([]SideID, 0, 8)
	s := start
	for {
		result = append(result, s)
		s = m.Next(m.Opposite(s))
		if s == start {
			break
		}
	}
	return result
}

func (m *Mesh) RAroundR(r RegionID) []RegionID {
	sides := m.SAroundR(r)
	result := make([]RegionID, len(sides))
	for i, s := range sides {
		result[i] = m.REnd(s)
	}
	return result
}

func (m *Mesh) TAroundR(r RegionID) []TriangleID {
	sides := m.SAroundR(r)
	result := make([]TriangleID, len(sides))
	for i, s := range sides {
		result[i] = m.TInner(s)
	}
	return result
}
