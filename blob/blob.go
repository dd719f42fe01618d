// Package blob implements the point-blob cache format of spec.md §4.12:
// a packed little-endian uint16 encoding of a Poisson point set, used
// only to avoid recomputing the fill between runs.
package blob

import (
	"encoding/binary"

	"github.com/redblobgames/mapgen4/mapgenerr"
	"github.com/redblobgames/mapgen4/mesh"
)

const (
	rescaleMin = -100.0
	rescaleMax = 1100.0
)

// Encode packs a point set into the little-endian uint16 blob format:
// numExteriorBoundary, numInteriorBoundary, numMountainPeaks, then 2*N
// coordinate values rescaled from [-100,1100] to [0,65535]. Coordinates
// outside that range fail with RangeError.
func Encode(ps mesh.PointSet) ([]byte, error) {
	buf := make([]byte, 0, 2*3+2*2*len(ps.Points))

	appendU16 := func(v uint16) {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], v)
		buf = append(buf, b[:]...)
	}
	appendCount := func(name string, n int) error {
		if n < 0 || n > 0xffff {
			return mapgenerr.New(mapgenerr.RangeError, "blob: %s count %d does not fit in uint16", name, n)
		}
		appendU16(uint16(n))
		return nil
	}

	if err := appendCount("numExteriorBoundary", ps.NumExteriorBoundary); err != nil {
		return nil, err
	}
	if err := appendCount("numInteriorBoundary", ps.NumInteriorBoundary); err != nil {
		return nil, err
	}
	if err := appendCount("numMountainPeaks", ps.NumMountainPeaks); err != nil {
		return nil, err
	}

	for i, p := range ps.Points {
		xv, err := rescale(p.X)
		if err != nil {
			return nil, mapgenerr.Wrap(mapgenerr.RangeError, err, "blob: point %d x=%v", i, p.X)
		}
		yv, err := rescale(p.Y)
		if err != nil {
			return nil, mapgenerr.Wrap(mapgenerr.RangeError, err, "blob: point %d y=%v", i, p.Y)
		}
		appendU16(xv)
		appendU16(yv)
	}

	return buf, nil
}

// Decode reverses Encode exactly.
func Decode(data []byte) (mesh.PointSet, error) {
	if len(data) < 6 {
		return mesh.PointSet{}, mapgenerr.New(mapgenerr.RangeError, "blob: data too short (%d bytes) for the 3-count header", len(data))
	}
	ps := mesh.PointSet{
		NumExteriorBoundary: int(binary.LittleEndian.Uint16(data[0:2])),
		NumInteriorBoundary: int(binary.LittleEndian.Uint16(data[2:4])),
		NumMountainPeaks:    int(binary.LittleEndian.Uint16(data[4:6])),
	}

	rest := data[6:]
	if len(rest)%4 != 0 {
		return mesh.PointSet{}, mapgenerr.New(mapgenerr.RangeError, "blob: coordinate section length %d is not a multiple of 4 bytes", len(rest))
	}
	n := len(rest) / 4
	ps.Points = make([]mesh.Point, n)
	for i := 0; i < n; i++ {
		xv := binary.LittleEndian.Uint16(rest[4*i : 4*i+2])
		yv := binary.LittleEndian.Uint16(rest[4*i+2 : 4*i+4])
		ps.Points[i] = mesh.Point{X: unrescale(xv), Y: unrescale(yv)}
	}
	return ps, nil
}

func rescale(v float64) (uint16, error) {
	if v < rescaleMin || v > rescaleMax {
		return 0, mapgenerr.New(mapgenerr.RangeError, "value %v outside encodable range [%v,%v]", v, rescaleMin, rescaleMax)
	}
	frac := (v - rescaleMin) / (rescaleMax - rescaleMin)
	return uint16(frac * 65535), nil
}

func unrescale(v uint16) float64 {
	frac := float64(v) / 65535
	return rescaleMin + frac*(rescaleMax-rescaleMin)
}
