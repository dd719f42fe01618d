package telemetry

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// SkinnyAngleThresholdDeg flags a triangle as skinny if its smallest
// interior angle falls below this threshold, in degrees. Non-fatal
// diagnostic (spec.md §7: "skinny-triangle counts... are observable but
// do not fail the run").
const SkinnyAngleThresholdDeg = 5.0

// SkinnyTriangle is one flagged triangle, kept for CSV export the way
// the teacher's OutputManager exports WindowStats/PerfStats rows.
type SkinnyTriangle struct {
	TriangleID  int32   `csv:"triangle_id"`
	Reason      string  `csv:"reason"`
	MinAngleDeg float64 `csv:"min_angle_deg"`
}

// Diagnostics accumulates non-fatal anomalies observed during one
// pipeline run. It never causes a run to fail (spec.md §7 policy); it
// exists so integration tests and operators can inspect anomaly counts
// independently of re-deriving them from the geometry buffers.
type Diagnostics struct {
	Skinny []SkinnyTriangle
}

// NewDiagnostics returns an empty diagnostics collector.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Reset clears the collector for reuse across pipeline runs, following
// spec.md §5's reuse-scratch-structures resource policy.
func (d *Diagnostics) Reset() {
	d.Skinny = d.Skinny[:0]
}

// FlagSkinny records a triangle whose minimum interior angle fell below
// SkinnyAngleThresholdDeg.
func (d *Diagnostics) FlagSkinny(triangleID int32, minAngleDeg float64) {
	d.Skinny = append(d.Skinny, SkinnyTriangle{
		TriangleID:  triangleID,
		Reason:      "skinny_triangle",
		MinAngleDeg: minAngleDeg,
	})
}

// WriteCSV exports the accumulated skinny-triangle diagnostics to path,
// one row per flagged triangle, via gocsv exactly like the teacher's
// OutputManager.WriteTelemetry marshals its own CSV rows.
func (d *Diagnostics) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating diagnostics csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(d.Skinny, f); err != nil {
		return fmt.Errorf("writing diagnostics csv: %w", err)
	}
	return nil
}
