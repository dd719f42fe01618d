// Package pipeline implements the orchestrator (C11, spec.md §4.11):
// dirty-bit recompute on parameter change, stage sequencing, and per-stage
// timings in Perf. No time budget is enforced: a Recompute always runs its
// dirty stages to completion. It owns the mesh and the terrain field and is
// the single entry point callers (the out-of-scope UI) use to turn a
// parameter bundle plus a painted constraint grid into geometry buffers.
//
// Grounded on game/game.go's tick loop and telemetry/perf.go's
// StartPhase/EndTick bracketing, adapted from a continuously-running
// simulation tick to a request/response recompute (spec.md §5: the core
// is single-threaded and synchronous, no suspension points).
package pipeline

import (
	"log/slog"

	"github.com/redblobgames/mapgen4/config"
	"github.com/redblobgames/mapgen4/mapgenerr"
	"github.com/redblobgames/mapgen4/mesh"
	"github.com/redblobgames/mapgen4/telemetry"
	"github.com/redblobgames/mapgen4/terrain"
)

// Pipeline owns the mesh, the per-element arrays, and the dirty bits
// that decide which stages a Recompute actually has to run. The
// per-element field arrays are allocated once in New and reused. A
// Recompute still allocates the geometry buffers it hands to the caller
// and per-stage scratch: priority-queue items, the rainfall stage's
// projection map, and the wind-order sort.
type Pipeline struct {
	Mesh  *mesh.Mesh
	Field *terrain.Field

	Geometry      *terrain.Geometry
	RiverGeometry []terrain.RiverTriangle

	Diagnostics *telemetry.Diagnostics
	Perf        *telemetry.PerfCollector

	cfg    *config.Config
	logger *slog.Logger

	prevElevation config.ElevationConfig
	prevBiomes    config.BiomesConfig
	prevRivers    config.RiversConfig

	elevationDirty    bool
	rainfallDirty     bool
	riversDirty       bool
	seedChanged       bool
	jaggednessChanged bool
}

// New builds the dual mesh from an already-generated point set (spec.md
// §4.4's output; C4's construction is one-shot and lives outside the
// per-tick pipeline), wires up the terrain field against cfg and the
// painted constraint grid, and runs one full recompute so the returned
// Pipeline has valid geometry immediately.
func New(ps mesh.PointSet, cfg *config.Config, constraintSize int, constraintGrid []float64, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m, err := mesh.Build(ps.Points, ps.NumBoundary())
	if err != nil {
		return nil, err
	}

	field := terrain.NewField(m, cfg)
	field.SetConstraintGrid(constraintSize, constraintGrid)
	field.SetPeakTriangles(peakTriangles(m, ps))

	p := &Pipeline{
		Mesh:        m,
		Field:       field,
		Diagnostics: telemetry.NewDiagnostics(),
		Perf:        telemetry.NewPerfCollector(60),
		cfg:         cfg,
		logger:      logger,

		// Force every stage to run on the first recompute.
		elevationDirty:    true,
		rainfallDirty:     true,
		riversDirty:       true,
		seedChanged:       true,
		jaggednessChanged: true,
	}

	if err := p.Recompute(); err != nil {
		return nil, err
	}
	return p, nil
}

// peakTriangles maps the point generator's mountain-peak block (spec.md
// §4.4 point 2) onto triangle ids: for each peak region, any one
// incident solid triangle is picked as the BFS seed (spec.md §9 open
// question: "the peak-triangle selection picks one arbitrary triangle
// per peak region; changing this choice perturbs mountain placement but
// not correctness" — the first entry of TAroundR is used).
func peakTriangles(m *mesh.Mesh, ps mesh.PointSet) []int32 {
	start := ps.NumBoundary()
	end := start + ps.NumMountainPeaks
	peaks := make([]int32, 0, ps.NumMountainPeaks)
	for r := start; r < end; r++ {
		tris := m.TAroundR(mesh.RegionID(r))
		for _, t := range tris {
			if !m.IsGhostTriangle(t) {
				peaks = append(peaks, int32(t))
				break
			}
		}
	}
	return peaks
}

// SetConstraintGrid installs a new painted constraint grid and marks all
// three dirty bits (spec.md §4.11 "Boundary contract": a paint-grid
// change dirties elevation and everything downstream of it).
func (p *Pipeline) SetConstraintGrid(size int, grid []float64) {
	p.Field.SetConstraintGrid(size, grid)
	p.elevationDirty = true
	p.rainfallDirty = true
	p.riversDirty = true
}

// SetConfig installs a new parameter bundle, diffing against the
// previously applied elevation/biomes/rivers sub-bundles to set exactly
// the dirty bits spec.md §4.11's boundary contract calls for: an
// elevation change cascades to rainfall and rivers; a biomes-only
// change dirties rainfall and rivers but not elevation; a rivers-only
// change (e.g. raising `flow`) dirties only rivers.
func (p *Pipeline) SetConfig(cfg *config.Config) {
	elevationChanged := cfg.Elevation != p.prevElevation
	biomesChanged := cfg.Biomes != p.prevBiomes
	riversChanged := cfg.Rivers != p.prevRivers

	if elevationChanged {
		if cfg.Elevation.Seed != p.prevElevation.Seed {
			p.seedChanged = true
		}
		if cfg.Elevation.MountainJagged != p.prevElevation.MountainJagged {
			p.jaggednessChanged = true
		}
		p.elevationDirty = true
	}
	if elevationChanged || biomesChanged {
		p.rainfallDirty = true
	}
	if elevationChanged || biomesChanged || riversChanged {
		p.riversDirty = true
	}

	p.cfg = cfg
	p.Field.Cfg = cfg
}

// Recompute runs the dirty stages in spec.md §4.11's order — noise (only
// on seed change) -> mountain distance (seed or jaggedness change) ->
// elevation -> rainfall -> rivers -> geometry — and clears the dirty
// bits it serviced. Stages whose dirty bit is unset are skipped
// entirely, leaving their arrays untouched (spec.md §7: "the orchestrator
// surfaces the first error and leaves previous buffers untouched").
func (p *Pipeline) Recompute() error {
	if err := validateParams(p.cfg); err != nil {
		return err
	}

	p.Perf.StartTick()
	defer p.Perf.EndTick()

	if p.seedChanged {
		p.Perf.StartPhase(telemetry.PhaseNoise)
		p.Field.RecomputeNoise()
	}
	if p.seedChanged || p.jaggednessChanged {
		p.Perf.StartPhase(telemetry.PhaseMountainDistance)
		p.Field.RecomputeMountainDistance()
	}

	anyDownstream := p.elevationDirty || p.rainfallDirty || p.riversDirty

	if p.elevationDirty {
		p.Perf.StartPhase(telemetry.PhaseElevation)
		if err := p.Field.RecomputeElevation(); err != nil {
			return err
		}
	}
	if p.rainfallDirty {
		p.Perf.StartPhase(telemetry.PhaseRainfall)
		p.Field.RecomputeRainfall()
	}
	if p.riversDirty {
		p.Perf.StartPhase(telemetry.PhaseRivers)
		p.Field.RecomputeRivers()
	}
	if anyDownstream {
		p.Perf.StartPhase(telemetry.PhaseGeometry)
		p.Geometry = p.Field.BuildGeometry()
		p.RiverGeometry = p.Field.BuildRiverGeometry()
		p.Diagnostics.Reset()
		p.Field.ScanSkinnyTriangles(p.Diagnostics)
	}

	p.logger.Debug("pipeline recompute",
		"seed_changed", p.seedChanged,
		"jaggedness_changed", p.jaggednessChanged,
		"elevation_dirty", p.elevationDirty,
		"rainfall_dirty", p.rainfallDirty,
		"rivers_dirty", p.riversDirty,
		"elapsed_ms", p.Perf.Stats().AvgTickDuration.Milliseconds(),
	)

	p.prevElevation = p.cfg.Elevation
	p.prevBiomes = p.cfg.Biomes
	p.prevRivers = p.cfg.Rivers
	p.seedChanged = false
	p.jaggednessChanged = false
	p.elevationDirty = false
	p.rainfallDirty = false
	p.riversDirty = false
	return nil
}

// validateParams rejects out-of-range parameters before running any
// stage (spec.md §7 policy), surfacing InvalidParameter rather than
// letting a stage fail partway through.
func validateParams(cfg *config.Config) error {
	if cfg.Mesh.Spacing <= 0 {
		return mapgenerr.New(mapgenerr.InvalidParameter, "mesh.spacing must be positive, got %v", cfg.Mesh.Spacing)
	}
	if cfg.Mesh.MountainSpacing <= cfg.Mesh.Spacing {
		return mapgenerr.New(mapgenerr.InvalidParameter, "mesh.mountain_spacing (%v) must exceed mesh.spacing (%v)", cfg.Mesh.MountainSpacing, cfg.Mesh.Spacing)
	}
	if cfg.Biomes.Raininess < 0 {
		return mapgenerr.New(mapgenerr.InvalidParameter, "biomes.raininess must be non-negative, got %v", cfg.Biomes.Raininess)
	}
	if cfg.Rivers.Flow < 0 {
		return mapgenerr.New(mapgenerr.InvalidParameter, "rivers.flow must be non-negative, got %v", cfg.Rivers.Flow)
	}
	return nil
}
