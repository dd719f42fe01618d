package mesh

import "github.com/redblobgames/mapgen4/mapgenerr"

// validateInvariants checks the structural invariants spec.md §3 promises
// callers they can rely on once Build returns successfully. It runs once,
// at construction time, rather than being re-checked on every navigation
// call — the mesh is immutable after Build (spec.md §3 "Lifecycles"), so
// a single pass is sufficient.
func (m *Mesh) validateInvariants() error {
	if m.numBoundaryRegions < 0 || m.numBoundaryRegions >= m.numRegions {
		return mapgenerr.New(mapgenerr.MeshInvariantViolated,
			"numBoundaryRegions (%d) out of range for numRegions (%d)", m.numBoundaryRegions, m.numRegions)
	}

	for s := 0; s < m.numSides; s++ {
		opp := m.halfedges[s]
		if opp < 0 || int(opp) >= m.numSides {
			return mapgenerr.New(mapgenerr.MeshInvariantViolated, "side %d has no paired opposite (got %d)", s, opp)
		}
		// invariant: opposite(opposite(s)) == s
		if int(m.halfedges[opp]) != s {
			return mapgenerr.New(mapgenerr.MeshInvariantViolated, "opposite is not involutive at side %d (opposite=%d, opposite(opposite)=%d)", s, opp, m.halfedges[opp])
		}
		// invariant: r_end(s) == r_begin(opposite(s))
		if m.REnd(SideID(s)) != m.RBegin(SideID(opp)) {
			return mapgenerr.New(mapgenerr.MeshInvariantViolated, "r_end(%d) != r_begin(opposite(%d))", s, s)
		}
		// invariant: t_inner(s) == s/3, t_inner(opposite(s)) == t_outer(s)
		if int(m.TInner(SideID(s))) != s/3 {
			return mapgenerr.New(mapgenerr.MeshInvariantViolated, "t_inner(%d) != %d", s, s/3)
		}
		if m.TInner(SideID(opp)) != m.TOuter(SideID(s)) {
			return mapgenerr.New(mapgenerr.MeshInvariantViolated, "t_inner(opposite(%d)) != t_outer(%d)", s, s)
		}
	}

	for r := 0; r < m.numRegions; r++ {
		start := m.sOfR[r]
		if start == ghostSentinel {
			return mapgenerr.New(mapgenerr.MeshInvariantViolated, "region %d has no representative side", r)
		}
		if int(m.RBegin(SideID(start))) != r {
			return mapgenerr.New(mapgenerr.MeshInvariantViolated, "sOfR[%d] = %d, but r_begin(%d) = %d", r, start, start, m.RBegin(SideID(start)))
		}
		// invariant: circulating next(opposite(·)) from the representative
		// side returns to it within numSides steps, and every visited side
		// stays incident to r.
		s := SideID(start)
		steps := 0
		for {
			if m.RBegin(s) != RegionID(r) {
				return mapgenerr.New(mapgenerr.MeshInvariantViolated, "SAroundR(%d) left region %d at side %d", r, r, s)
			}
			s = m.Next(m.Opposite(s))
			steps++
			if s == SideID(start) {
				break
			}
			if steps > m.numSides {
				return mapgenerr.New(mapgenerr.MeshInvariantViolated, "SAroundR(%d) did not cycle back within %d steps", r, m.numSides)
			}
		}
	}

	ghost := m.GhostRegion()
	for t := m.numSolidTriangles; t < m.numTriangles; t++ {
		corners := m.RAroundT(TriangleID(t))
		ghostCount := 0
		for _, r := range corners {
			if r == ghost {
				ghostCount++
			}
		}
		if ghostCount != 1 {
			return mapgenerr.New(mapgenerr.MeshInvariantViolated, "ghost triangle %d has %d ghost-region corners, want 1", t, ghostCount)
		}
	}

	return nil
}
