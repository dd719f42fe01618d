package terrain

import (
	"runtime"
	"sync"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/redblobgames/mapgen4/mesh"
)

// noiseSource is the subset of opensimplex.Noise this package depends on,
// narrowed so tests can swap in a deterministic stub.
type noiseSource interface {
	Eval2(x, y float64) float64
}

// noiseScales are the six hard-coded sampling frequencies of spec.md
// §4.5; noiseOffsets break axis alignment between them so the six
// samples at a given triangle are not simple rescalings of one another.
var noiseScales = [6]float64{1, 2, 4, 16, 32, 64}
var noiseOffsets = [6][2]float64{
	{0, 0},
	{5.2, 1.3},
	{26.7, 88.1},
	{-41.3, 17.9},
	{103.4, -52.6},
	{-9.8, 211.5},
}

// RecomputeNoise resamples the six-scale noise cache for every solid
// triangle, fanned out across runtime.NumCPU() workers the way the
// teacher's ResourceField.updateCapacity splits a grid across goroutines
// (here split across a flat triangle-index range instead of grid rows,
// since triangles have no 2D row structure). One-shot and allocating is
// fine (spec.md §5): it only runs when elevation.seed changes.
func (f *Field) RecomputeNoise() {
	seed := f.Cfg.Elevation.Seed
	if f.noiseGen == nil || seed != f.lastNoiseSeed {
		f.noiseGen = opensimplex.New(seed)
		f.lastNoiseSeed = seed
	}
	gen := f.noiseGen

	n := f.Mesh.NumSolidTriangles()
	numWorkers := runtime.NumCPU()
	if numWorkers > n {
		numWorkers = 1
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	chunk := (n + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= n {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for t := lo; t < hi; t++ {
				p := f.Mesh.TrianglePos(mesh.TriangleID(t))
				nx := (p.X - 500) / 500
				ny := (p.Y - 500) / 500
				for i, scale := range noiseScales {
					ox, oy := noiseOffsets[i][0], noiseOffsets[i][1]
					f.Noise[t][i] = gen.Eval2(nx*scale+ox, ny*scale+oy)
				}
			}
		}(start, end)
	}
	wg.Wait()
}
