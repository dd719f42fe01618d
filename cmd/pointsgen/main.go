// Command pointsgen is the thin CLI utility of spec.md §6: it invokes
// the point generator (C4) and the point-blob serializer (C12) to
// produce a `points-<spacing>.data` cache file, so a later run can skip
// recomputing the Poisson fill. Exits 0 on success, 1 on any stage
// error, following the teacher's small flag-parsing cmd/ binaries
// (cmd/shaderdebug, cmd/optimize) that wire a couple of packages
// together and report failure via os.Exit(1).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/redblobgames/mapgen4/blob"
	"github.com/redblobgames/mapgen4/mapgenerr"
	"github.com/redblobgames/mapgen4/mesh"
)

func main() {
	seed := flag.Uint64("seed", 187, "PRNG seed")
	spacing := flag.Float64("spacing", 5, "mesh point spacing")
	mountainSpacing := flag.Float64("mountain-spacing", 35, "mountain peak spacing")
	curvature := flag.Float64("curvature", 1.0, "interior boundary ring bulge strength")
	outPath := flag.String("out", "", "output path (default points-<spacing>.data)")
	flag.Parse()

	if err := run(*seed, *spacing, *mountainSpacing, *curvature, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "pointsgen: %v\n", err)
		os.Exit(1)
	}
}

func run(seed uint64, spacing, mountainSpacing, curvature float64, outPath string) error {
	if spacing <= 0 || mountainSpacing <= spacing {
		return mapgenerr.New(mapgenerr.InvalidParameter,
			"mountain-spacing (%v) must exceed spacing (%v), both positive", mountainSpacing, spacing)
	}

	rng := mesh.NewPRNG(seed)
	ps, err := mesh.GeneratePoints(rng, spacing, mountainSpacing, curvature)
	if err != nil {
		return err
	}

	data, err := blob.Encode(ps)
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = fmt.Sprintf("points-%v.data", spacing)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Printf("wrote %d points (%d bytes) to %s\n", len(ps.Points), len(data), outPath)
	return nil
}
