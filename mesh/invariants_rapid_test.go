package mesh

import (
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyMeshInvariantsHoldForRandomPointCounts drives random point
// counts and seeds through GeneratePoints+Build and asserts the
// structural invariants of spec.md §8 items 1-5: opposite involution,
// r_end/r_begin agreement, SAroundR returning to its start while staying
// incident, no side left with opposite=-1 after ghost closure, and every
// ghost triangle carrying exactly one ghost corner.
//
// Grounded on dshills-dungo/pkg/graph/graph_test.go's
// TestProperty_GraphConnectivity: rapid.Check driving randomly sized,
// randomly seeded structures through a builder and checking a structural
// invariant holds for every draw, rather than a fixed table of cases.
func TestPropertyMeshInvariantsHoldForRandomPointCounts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint64().Draw(t, "seed")
		spacing := rapid.Float64Range(20, 80).Draw(t, "spacing")
		mountainSpacing := spacing * rapid.Float64Range(2, 6).Draw(t, "mountainSpacingFactor")
		curvature := rapid.Float64Range(0, 2).Draw(t, "curvature")

		rng := NewPRNG(seed)
		ps, err := GeneratePoints(rng, spacing, mountainSpacing, curvature)
		if err != nil {
			t.Fatalf("GeneratePoints: %v", err)
		}

		m, err := Build(ps.Points, ps.NumBoundary())
		if err != nil {
			t.Fatalf("Build: %v", err)
		}

		for s := 0; s < m.NumSides(); s++ {
			side := SideID(s)
			opp := m.Opposite(side)
			if int(opp) < 0 {
				t.Fatalf("side %d has no opposite after ghost closure", s)
			}
			if m.Opposite(opp) != side {
				t.Fatalf("opposite(opposite(%d)) = %d, want %d", s, m.Opposite(opp), s)
			}
			if m.REnd(side) != m.RBegin(opp) {
				t.Fatalf("r_end(%d) != r_begin(opposite(%d))", s, s)
			}
		}

		ghost := m.GhostRegion()
		for tr := m.NumSolidTriangles(); tr < m.NumTriangles(); tr++ {
			corners := m.RAroundT(TriangleID(tr))
			count := 0
			for _, r := range corners {
				if r == ghost {
					count++
				}
			}
			if count != 1 {
				t.Fatalf("ghost triangle %d has %d ghost corners, want 1", tr, count)
			}
		}

		for r := 0; r < m.NumRegions(); r++ {
			rid := RegionID(r)
			start := m.SOfR(rid)
			seen := map[SideID]bool{}
			s := start
			for {
				if m.RBegin(s) != rid {
					t.Fatalf("SAroundR(%d) left region %d at side %d", r, r, s)
				}
				if seen[s] {
					t.Fatalf("SAroundR(%d) repeated side %d before returning to start", r, s)
				}
				seen[s] = true
				s = m.Next(m.Opposite(s))
				if s == start {
					break
				}
				if len(seen) > m.NumSides() {
					t.Fatalf("SAroundR(%d) did not cycle back within NumSides steps", r)
				}
			}
		}
	})
}
