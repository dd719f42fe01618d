package mesh

import "math"

// Point is a 2D point in map space.
type Point struct {
	X, Y float64
}

// Bounds is an axis-aligned rectangle.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

func (b Bounds) width() float64  { return b.MaxX - b.MinX }
func (b Bounds) height() float64 { return b.MaxY - b.MinY }

// Poisson implements Bridson's blue-noise sampling algorithm (spec.md
// §4.2, component C2): every pair of returned points is at least `radius`
// apart, no returned point lies outside bounds, and pre-injected points
// (addPoint) are preserved verbatim and act as exclusion centers for
// points generated afterward.
//
// The background grid used for neighbor queries is the same
// cellSize-bucketed grid idea the teacher uses for spatial partitioning
// (systems/navgrid.go buckets terrain into fixed cells for fast lookup);
// here the bucket size is radius/sqrt(2) so each cell holds at most one
// accepted point.
type Poisson struct {
	bounds Bounds
	radius float64
	radius2 float64
	tries  int
	rng    *PRNG

	cellSize     float64
	gridW, gridH int
	grid         []int32 // index into points, -1 if empty

	points []Point
	active []int32
}

const poissonEmpty int32 = -1

// NewPoisson constructs a sampler. tries below 5 is unstable (spec.md
// §4.2); values of 6-30 are the documented acceptable range.
func NewPoisson(bounds Bounds, radius float64, tries int, rng *PRNG) *Poisson {
	if tries < 1 {
		tries = 6
	}
	cellSize := radius / math.Sqrt2
	gridW := int(math.Ceil(bounds.width()/cellSize)) + 1
	gridH := int(math.Ceil(bounds.height()/cellSize)) + 1
	if gridW < 1 {
		gridW = 1
	}
	if gridH < 1 {
		gridH = 1
	}
	grid := make([]int32, gridW*gridH)
	for i := range grid {
		grid[i] = poissonEmpty
	}
	return &Poisson{
		bounds:  bounds,
		radius:  radius,
		radius2: radius * radius,
		tries:   tries,
		rng:     rng,
		cellSize: cellSize,
		gridW:   gridW,
		gridH:   gridH,
		grid:    grid,
	}
}

func (s *Poisson) gridCoords(p Point) (int, int) {
	gx := int((p.X - s.bounds.MinX) / s.cellSize)
	gy := int((p.Y - s.bounds.MinY) / s.cellSize)
	if gx < 0 {
		gx = 0
	}
	if gy < 0 {
		gy = 0
	}
	if gx >= s.gridW {
		gx = s.gridW - 1
	}
	if gy >= s.gridH {
		gy = s.gridH - 1
	}
	return gx, gy
}

// farEnoughFromExisting reports whether p is at distance >= radius from
// every point already accepted, by scanning the 5x5 neighborhood of grid
// cells around p (radius/cellSize is always < 2.5, so this is exhaustive).
func (s *Poisson) farEnoughFromExisting(p Point) bool {
	gx, gy := s.gridCoords(p)
	for oy := -2; oy <= 2; oy++ {
		yy := gy + oy
		if yy < 0 || yy >= s.gridH {
			continue
		}
		for ox := -2; ox <= 2; ox++ {
			xx := gx + ox
			if xx < 0 || xx >= s.gridW {
				continue
			}
			idx := s.grid[yy*s.gridW+xx]
			if idx == poissonEmpty {
				continue
			}
			q := s.points[idx]
			dx, dy := p.X-q.X, p.Y-q.Y
			if dx*dx+dy*dy < s.radius2 {
				return false
			}
		}
	}
	return true
}

func (s *Poisson) place(p Point) {
	idx := int32(len(s.points))
	s.points = append(s.points, p)
	s.active = append(s.active, idx)
	gx, gy := s.gridCoords(p)
	s.grid[gy*s.gridW+gx] = idx
}

// AddPoint injects a pre-placed point (a fixed boundary or mountain seed)
// and returns whether it was accepted. It fails only if the point lies
// outside bounds or is too close to an already-accepted point. A rejected
// point is not stored and does not exclude later candidates; GeneratePoints
// ignores the result, so a rejected seed still appears in its point set.
func (s *Poisson) AddPoint(p Point) bool {
	if !s.bounds.contains(p) {
		return false
	}
	if !s.farEnoughFromExisting(p) {
		return false
	}
	s.place(p)
	return true
}

// Fill runs Bridson's algorithm to completion from the current active
// list (which may already contain pre-seeded points) and returns every
// accepted point, including the pre-seeded ones, in insertion order.
func (s *Poisson) Fill() []Point {
	if len(s.active) == 0 {
		// No seed yet: drop one random point to start the process.
		p := Point{
			X: s.rng.Float64Range(s.bounds.MinX, s.bounds.MaxX),
			Y: s.rng.Float64Range(s.bounds.MinY, s.bounds.MaxY),
		}
		s.place(p)
	}

	for len(s.active) > 0 {
		i := s.rng.Intn(len(s.active))
		parentIdx := s.active[i]
		parent := s.points[parentIdx]

		found := false
		for t := 0; t < s.tries; t++ {
			dx, dy := s.rng.UnitVector()
			dist := s.rng.Float64Range(s.radius, 2*s.radius)
			candidate := Point{X: parent.X + dx*dist, Y: parent.Y + dy*dist}
			if !s.bounds.contains(candidate) {
				continue
			}
			if !s.farEnoughFromExisting(candidate) {
				continue
			}
			s.place(candidate)
			found = true
			break
		}
		if !found {
			// Remove i from active by swapping with the last element.
			last := len(s.active) - 1
			s.active[i] = s.active[last]
			s.active = s.active[:last]
		}
	}

	return s.points
}

// NumPoints returns the number of points accepted so far (including
// pre-seeded ones), useful for tracking block counts during fill.
func (s *Poisson) NumPoints() int {
	return len(s.points)
}
