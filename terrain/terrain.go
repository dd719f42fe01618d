// Package terrain runs the per-triangle/per-region pipeline stages that
// turn a built mesh plus a parameter bundle into elevation, rainfall, and
// river data: the noise cache (C5), mountain distance field (C6),
// elevation pipeline (C7), rainfall pipeline (C8), rivers pipeline (C9),
// and geometry emitter (C10).
package terrain

import (
	"github.com/redblobgames/mapgen4/config"
	"github.com/redblobgames/mapgen4/mesh"
)

const (
	sideNone  int32 = -1 // a triangle genuinely has no downslope/lower neighbor
	sideUnset int32 = -2 // not yet visited by the rivers flood fill
)

// Field holds every per-triangle/per-region array the pipeline stages
// read and write, all sized once against the mesh and reused across
// recomputes (spec.md §5 "Resource policy": the per-frame pipeline must
// not allocate).
type Field struct {
	Mesh *mesh.Mesh
	Cfg  *config.Config

	// C5: six noise samples per solid triangle.
	Noise [][6]float64

	// C6: distance-from-nearest-peak per triangle; -1 if unreached.
	MountainDistance []float64
	sideWeight       []float64 // per-side edge weight used by C6's BFS

	// Painted constraint grid, row-major, size ConstraintSize^2.
	ConstraintGrid []float64
	ConstraintSize int

	// Triangles seeded as mountain peaks (the peak block of the point
	// generator's output, translated to triangle ids once the mesh is
	// built around those points).
	PeakTriangles []int32

	// C7
	TriangleElevation []float64
	RegionElevation   []float64

	// C8
	RegionHumidity  []float64
	RegionRainfall  []float64
	windOrder       []int32
	haveWindOrder   bool
	lastWindAngle   float64

	// C9
	DownslopeSide []int32
	FlowSide      []float64
	Flow          []float64
	Moisture      []float64
	triOrder      []int32

	noiseGen      noiseSource
	lastNoiseSeed int64
}

// NewField allocates a Field sized against m. cfg is retained by
// reference; callers that mutate cfg between recomputes are responsible
// for setting the corresponding dirty bits in the pipeline orchestrator.
func NewField(m *mesh.Mesh, cfg *config.Config) *Field {
	f := &Field{
		Mesh:              m,
		Cfg:               cfg,
		Noise:             make([][6]float64, m.NumTriangles()),
		MountainDistance:  make([]float64, m.NumTriangles()),
		sideWeight:        make([]float64, m.NumSides()),
		TriangleElevation: make([]float64, m.NumTriangles()),
		RegionElevation:   make([]float64, m.NumRegions()),
		RegionHumidity:    make([]float64, m.NumRegions()),
		RegionRainfall:    make([]float64, m.NumRegions()),
		DownslopeSide:     make([]int32, m.NumTriangles()),
		FlowSide:          make([]float64, m.NumSides()),
		Flow:              make([]float64, m.NumTriangles()),
		Moisture:          make([]float64, m.NumTriangles()),
		windOrder:         make([]int32, m.NumRegions()),
	}
	for i := range f.MountainDistance {
		f.MountainDistance[i] = -1
	}
	return f
}

// SetConstraintGrid installs the painted constraint grid (spec.md §6:
// row-major, values in [-1,1], N>=8).
func (f *Field) SetConstraintGrid(size int, constraints []float64) {
	f.ConstraintSize = size
	f.ConstraintGrid = constraints
}

// SetPeakTriangles installs the triangles C6's BFS fans out from.
func (f *Field) SetPeakTriangles(peaks []int32) {
	f.PeakTriangles = peaks
}
