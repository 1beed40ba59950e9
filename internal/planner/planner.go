// Package planner converts a (center, radius) search circle into a minimal
// set of contiguous geohash key ranges. Every point inside the circle is
// guaranteed to fall in at least one returned range; cells may cover area
// outside the circle, so callers must refine candidates by exact distance.
package planner

import (
	"fmt"
	"math"
	"sort"

	"github.com/shambalink/shambalink/internal/geo"
	"github.com/shambalink/shambalink/pkg/types"
)

const (
	// metersPerDegree is the length of one degree of latitude on the same
	// sphere the distance refiner uses. Deriving both from one radius
	// keeps the cover at least as large as the refinement circle.
	metersPerDegree = math.Pi * geo.EarthRadiusMeters / 180

	// coverMargin inflates the covering bounding box so that linearizing
	// the great-circle distance never shrinks the cover below the circle.
	coverMargin = 1.001

	// maxQueryPrecision bounds how fine query cells get. Finer cells than
	// this produce more ranges than they save in scanned rows.
	maxQueryPrecision = 8

	// maxCoverCells bounds the size of a covering set. When a candidate
	// precision would exceed it the planner coarsens until it fits; at
	// precision 1 the whole globe is 32 cells, so the loop always ends.
	maxCoverCells = 64

	// poleLatitude is the absolute latitude beyond which longitude cell
	// width collapses and the planner falls back to full longitude bands.
	poleLatitude = 89.9
)

// KeyRange is a half-open [Start, End) interval over the geohash index.
type KeyRange struct {
	Start string
	End   string
}

// PlanRanges computes the covering key ranges for a radius search around
// center. Ranges are returned in ascending key order with contiguous cells
// merged.
func PlanRanges(center types.Point, radiusMeters float64) ([]KeyRange, error) {
	if !geo.ValidPoint(center) {
		return nil, fmt.Errorf("center out of range: lat=%v lng=%v", center.Latitude, center.Longitude)
	}
	if math.IsNaN(radiusMeters) || radiusMeters <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %v", radiusMeters)
	}

	for precision := precisionForRadius(center.Latitude, radiusMeters); precision >= 1; precision-- {
		cells, ok := coverCells(center, radiusMeters, precision)
		if !ok {
			continue
		}
		return mergeCells(cells), nil
	}

	// Unreachable: precision 1 always fits under maxCoverCells.
	return nil, fmt.Errorf("no covering set for radius %v", radiusMeters)
}

// precisionForRadius picks the finest precision whose cell dimensions both
// meet or exceed the radius, so the circle never spans more than one cell
// boundary per axis.
func precisionForRadius(lat, radiusMeters float64) int {
	cosLat := math.Cos(lat * math.Pi / 180)
	for p := maxQueryPrecision; p >= 1; p-- {
		latDeg, lngDeg := geo.CellSize(p)
		latMeters := latDeg * metersPerDegree
		lngMeters := lngDeg * metersPerDegree * cosLat
		if latMeters >= radiusMeters && lngMeters >= radiusMeters {
			return p
		}
	}
	return 1
}

// coverCells enumerates the cells at the given precision intersecting the
// circle's bounding box. Returns false when the enumeration exceeds
// maxCoverCells and a coarser precision is needed.
func coverCells(center types.Point, radiusMeters float64, precision int) ([]string, bool) {
	latDelta := coverMargin * radiusMeters / metersPerDegree

	minLat := center.Latitude - latDelta
	maxLat := center.Latitude + latDelta

	// A radius spanning a pole covers every longitude near it.
	fullLng := false
	if minLat <= -90 {
		minLat = -90
		fullLng = true
	}
	if maxLat >= 90 {
		maxLat = 90
		fullLng = true
	}

	maxAbsLat := math.Max(math.Abs(minLat), math.Abs(maxLat))
	if maxAbsLat >= poleLatitude {
		fullLng = true
	}

	var lngIntervals [][2]float64
	if fullLng {
		lngIntervals = [][2]float64{{-180, 180}}
	} else {
		cosLat := math.Cos(maxAbsLat * math.Pi / 180)
		lngDelta := coverMargin * radiusMeters / (metersPerDegree * cosLat)
		if lngDelta >= 180 {
			lngIntervals = [][2]float64{{-180, 180}}
		} else {
			lo := center.Longitude - lngDelta
			hi := center.Longitude + lngDelta
			switch {
			case lo < -180:
				// Antimeridian wrap on the west side.
				lngIntervals = [][2]float64{{lo + 360, 180}, {-180, hi}}
			case hi > 180:
				// Antimeridian wrap on the east side.
				lngIntervals = [][2]float64{{lo, 180}, {-180, hi - 360}}
			default:
				lngIntervals = [][2]float64{{lo, hi}}
			}
		}
	}

	latStep, lngStep := geo.CellSize(precision)

	seen := make(map[string]struct{})
	for _, iv := range lngIntervals {
		for _, lat := range samplePositions(minLat, maxLat, latStep) {
			for _, lng := range samplePositions(iv[0], iv[1], lngStep) {
				cell := geo.Encode(lat, lng, precision)
				if _, ok := seen[cell]; !ok {
					seen[cell] = struct{}{}
					if len(seen) > maxCoverCells {
						return nil, false
					}
				}
			}
		}
	}

	cells := make([]string, 0, len(seen))
	for c := range seen {
		cells = append(cells, c)
	}
	return cells, true
}

// samplePositions returns positions spaced one cell apart from lo to hi,
// always including both endpoints. Sampling at cell pitch hits every grid
// cell the interval intersects.
func samplePositions(lo, hi, step float64) []float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	positions := []float64{lo}
	for x := lo + step; x < hi; x += step {
		positions = append(positions, x)
	}
	if hi > lo {
		positions = append(positions, hi)
	}
	return positions
}

// mergeCells sorts the covering cells and merges lexicographically adjacent
// ones into single half-open key ranges.
func mergeCells(cells []string) []KeyRange {
	sort.Strings(cells)

	var ranges []KeyRange
	for _, cell := range cells {
		end, ok := geo.Increment(cell)
		if !ok {
			// Last cell of the keyspace: extend past any stored key,
			// which always begins with a base32 character.
			end = cell + "~"
		}
		if n := len(ranges); n > 0 && ranges[n-1].End == cell {
			ranges[n-1].End = end
			continue
		}
		ranges = append(ranges, KeyRange{Start: cell, End: end})
	}
	return ranges
}
