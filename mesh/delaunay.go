package mesh

import (
	"math"

	"github.com/redblobgames/mapgen4/mapgenerr"
)

// triangulate computes a Delaunay triangulation of points using
// incremental Bowyer-Watson insertion, grounded in the staged-construction
// shape of other_examples/2edbdef7_iceisfun-gomesh__cdt-builder.go.go
// (seed cover -> insert -> legalize -> prune -> export), simplified here
// to an unconstrained triangulation since spec.md's dual mesh has no
// constrained edges to honor.
//
// It returns the output in "delaunator" layout: triangles[3t+i] is the
// point index of vertex i (CCW) of triangle t, and halfedges[s] is the
// opposite side of side s, or -1 on the hull. This layout is exactly
// spec.md §4.3's construction input (triangles-per-side array +
// opposite-side array with -1 for hull sides).
func triangulate(points []Point) (triangles []int32, halfedges []int32, err error) {
	n := len(points)
	if n < 3 {
		return nil, nil, mapgenerr.New(mapgenerr.DegenerateInput, "triangulate: need at least 3 points, got %d", n)
	}
	if allCollinear(points) {
		return nil, nil, mapgenerr.New(mapgenerr.DegenerateInput, "triangulate: all %d points are collinear", n)
	}

	pts := make([]Point, n+3)
	copy(pts, points)
	minX, minY, maxX, maxY := bbox(points)
	dx, dy := maxX-minX, maxY-minY
	delta := math.Max(dx, dy)
	if delta <= 0 {
		delta = 1
	}
	midX, midY := (minX+maxX)/2, (minY+maxY)/2
	// Super-triangle vastly larger than the point set so every real point
	// starts out inside it.
	pts[n] = Point{midX - 20*delta, midY - delta}
	pts[n+1] = Point{midX, midY + 20*delta}
	pts[n+2] = Point{midX + 20*delta, midY - delta}

	type tri struct{ a, b, c int32 }
	tris := []tri{{int32(n), int32(n + 2), int32(n + 1)}} // CCW, as inCircumcircle expects

	type edgeKey struct{ a, b int32 }
	normKey := func(a, b int32) edgeKey {
		if a < b {
			return edgeKey{a, b}
		}
		return edgeKey{b, a}
	}

	for i := 0; i < n; i++ {
		p := pts[i]

		bad := make([]int, 0, 8)
		for ti, t := range tris {
			if inCircumcircle(pts[t.a], pts[t.b], pts[t.c], p) {
				bad = append(bad, ti)
			}
		}
		if len(bad) == 0 {
			// Numerically p coincides with an existing vertex or fell
			// just outside every circumcircle due to rounding; skip it
			// rather than corrupt the mesh. This only happens for
			// duplicate input points.
			continue
		}

		edgeCount := make(map[edgeKey]int, len(bad)*3)
		edgeOriented := make(map[edgeKey]edgeKey, len(bad)*3) // unordered -> oriented edge
		for _, ti := range bad {
			t := tris[ti]
			for _, e := range [3][2]int32{{t.a, t.b}, {t.b, t.c}, {t.c, t.a}} {
				k := normKey(e[0], e[1])
				edgeCount[k]++
				edgeOriented[k] = edgeKey{e[0], e[1]}
			}
		}

		badSet := make(map[int]bool, len(bad))
		for _, ti := range bad {
			badSet[ti] = true
		}
		kept := make([]tri, 0, len(tris)-len(bad)+len(bad))
		for ti, t := range tris {
			if !badSet[ti] {
				kept = append(kept, t)
			}
		}

		for k, cnt := range edgeCount {
			if cnt != 1 {
				continue
			}
			e := edgeOriented[k]
			kept = append(kept, tri{e.a, e.b, int32(i)})
		}
		tris = kept
	}

	// Drop any triangle touching a super-triangle vertex.
	final := make([]tri, 0, len(tris))
	for _, t := range tris {
		if t.a >= int32(n) || t.b >= int32(n) || t.c >= int32(n) {
			continue
		}
		final = append(final, t)
	}
	if len(final) == 0 {
		return nil, nil, mapgenerr.New(mapgenerr.DegenerateInput, "triangulate: no triangles survived super-triangle removal")
	}

	triangles = make([]int32, 0, len(final)*3)
	for _, t := range final {
		if !ccw(pts[t.a], pts[t.b], pts[t.c]) {
			t.b, t.c = t.c, t.b
		}
		triangles = append(triangles, t.a, t.b, t.c)
	}

	halfedges = make([]int32, len(triangles))
	for i := range halfedges {
		halfedges[i] = -1
	}
	edgeIndex := make(map[edgeKey]int32, len(triangles))
	startOf := func(s int) int32 { return triangles[s] }
	endOf := func(s int) int32 { return triangles[nextSide(s)] }
	for s := 0; s < len(triangles); s++ {
		edgeIndex[edgeKey{startOf(s), endOf(s)}] = int32(s)
	}
	for s := 0; s < len(triangles); s++ {
		if opp, ok := edgeIndex[edgeKey{endOf(s), startOf(s)}]; ok {
			halfedges[s] = opp
		}
	}

	return triangles, halfedges, nil
}

// nextSide returns the following side within the same triangle as s.
func nextSide(s int) int {
	if s%3 == 2 {
		return s - 2
	}
	return s + 1
}

func bbox(points []Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return
}

func allCollinear(points []Point) bool {
	if len(points) < 3 {
		return true
	}
	a := points[0]
	b := points[1]
	for _, c := range points[2:] {
		if math.Abs(cross(a, b, c)) > 1e-9 {
			return false
		}
	}
	return true
}

// cross returns twice the signed area of triangle (a,b,c): positive if
// CCW, negative if CW, zero if collinear.
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func ccw(a, b, c Point) bool {
	return cross(a, b, c) > 0
}

// inCircumcircle reports whether point d lies strictly inside the
// circumcircle of CCW triangle (a,b,c), using the standard incircle
// determinant test.
func inCircumcircle(a, b, c, d Point) bool {
	ax, ay := a.X-d.X, a.Y-d.Y
	bx, by := b.X-d.X, b.Y-d.Y
	cx, cy := c.X-d.X, c.Y-d.Y

	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)
	return det > 1e-9
}
