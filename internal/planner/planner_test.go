package planner

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shambalink/shambalink/internal/geo"
	"github.com/shambalink/shambalink/pkg/types"
)

func TestPlanRanges_rejects_invalid_input(t *testing.T) {
	_, err := PlanRanges(types.Point{Latitude: 91, Longitude: 0}, 1000)
	require.Error(t, err)

	_, err = PlanRanges(types.Point{Latitude: 0, Longitude: 181}, 1000)
	require.Error(t, err)

	_, err = PlanRanges(types.Point{Latitude: 0, Longitude: 0}, 0)
	require.Error(t, err)

	_, err = PlanRanges(types.Point{Latitude: 0, Longitude: 0}, -5)
	require.Error(t, err)

	_, err = PlanRanges(types.Point{Latitude: 0, Longitude: 0}, math.NaN())
	require.Error(t, err)
}

func TestPlanRanges_ranges_are_sorted_and_disjoint(t *testing.T) {
	ranges, err := PlanRanges(types.Point{Latitude: -1.2833, Longitude: 36.8167}, 5000)
	require.NoError(t, err)
	require.NotEmpty(t, ranges)
	require.LessOrEqual(t, len(ranges), maxCoverCells)

	for i, r := range ranges {
		require.Less(t, r.Start, r.End, "range %d must be a non-empty half-open interval", i)
		if i > 0 {
			// Merging leaves no two ranges touching or overlapping.
			require.Less(t, ranges[i-1].End, r.Start)
		}
	}
}

func TestPlanRanges_merges_adjacent_cells(t *testing.T) {
	merged := mergeCells([]string{"kzf1", "kzf0", "kzf2", "kzf7"})
	require.Equal(t, []KeyRange{
		{Start: "kzf0", End: "kzf3"},
		{Start: "kzf7", End: "kzf8"},
	}, merged)
}

func TestPlanRanges_last_cell_of_keyspace(t *testing.T) {
	merged := mergeCells([]string{"zz"})
	require.Equal(t, []KeyRange{{Start: "zz", End: "zz~"}}, merged)
}

// coveredBy reports whether a stored-precision geohash falls inside one of
// the planned ranges.
func coveredBy(hash string, ranges []KeyRange) bool {
	for _, r := range ranges {
		if hash >= r.Start && hash < r.End {
			return true
		}
	}
	return false
}

func TestPlanRanges_covers_all_points_within_radius(t *testing.T) {
	centers := []types.Point{
		{Latitude: -1.2833, Longitude: 36.8167}, // Nairobi
		{Latitude: 51.5072, Longitude: -0.1276}, // London
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 0, Longitude: 0},
		{Latitude: 64.15, Longitude: -21.94}, // high latitude
	}
	radii := []float64{100, 1000, 5000, 50_000, 250_000}

	for _, center := range centers {
		for _, radius := range radii {
			t.Run(fmt.Sprintf("lat=%v_lng=%v_r=%v", center.Latitude, center.Longitude, radius), func(t *testing.T) {
				ranges, err := PlanRanges(center, radius)
				require.NoError(t, err)
				require.NotEmpty(t, ranges)

				for _, p := range pointsWithin(center, radius) {
					hash := geo.Encode(p.Latitude, p.Longitude, geo.StoragePrecision)
					require.True(t, coveredBy(hash, ranges),
						"point (%v, %v) at distance %v is not covered",
						p.Latitude, p.Longitude, geo.Haversine(center, p))
				}
			})
		}
	}
}

func TestPlanRanges_covers_boundary_point_across_cell_edge(t *testing.T) {
	// Place the center so the circle's northern rim ends a hair past a
	// latitude cell edge. A listing just inside the radius then sits in a
	// cell the bounding box only reaches if the box is at least as large
	// as the refinement circle.
	const cellEdge = 0.17578125 // multiple of the precision-4 latitude step
	degree := math.Pi * geo.EarthRadiusMeters / 180
	center := types.Point{
		Latitude:  cellEdge - 5000/degree + 1e-6,
		Longitude: 36.8167,
	}
	ranges, err := PlanRanges(center, 5000)
	require.NoError(t, err)

	north := types.Point{
		Latitude:  center.Latitude + 4999.9/degree,
		Longitude: center.Longitude,
	}
	require.Less(t, geo.Haversine(center, north), 5000.0)
	require.Greater(t, north.Latitude, cellEdge)

	hash := geo.Encode(north.Latitude, north.Longitude, geo.StoragePrecision)
	require.True(t, coveredBy(hash, ranges),
		"point (%v, %v) at distance %v is not covered",
		north.Latitude, north.Longitude, geo.Haversine(center, north))
}

// pointsWithin samples points verified to lie inside the circle, including
// ones a sliver away from the boundary on each axis.
func pointsWithin(center types.Point, radius float64) []types.Point {
	latDelta := radius / metersPerDegree
	cosLat := math.Cos(center.Latitude * math.Pi / 180)
	lngDelta := radius / (metersPerDegree * cosLat)

	candidates := []types.Point{
		center,
		{Latitude: center.Latitude + 0.9999*latDelta, Longitude: center.Longitude},
		{Latitude: center.Latitude - 0.9999*latDelta, Longitude: center.Longitude},
		{Latitude: center.Latitude, Longitude: center.Longitude + 0.9999*lngDelta},
		{Latitude: center.Latitude, Longitude: center.Longitude - 0.9999*lngDelta},
		{Latitude: center.Latitude + 0.95*latDelta, Longitude: center.Longitude},
		{Latitude: center.Latitude, Longitude: center.Longitude - 0.95*lngDelta},
		{Latitude: center.Latitude + 0.6*latDelta, Longitude: center.Longitude + 0.6*lngDelta},
		{Latitude: center.Latitude - 0.6*latDelta, Longitude: center.Longitude - 0.6*lngDelta},
		{Latitude: center.Latitude + 0.3*latDelta, Longitude: center.Longitude - 0.3*lngDelta},
	}

	var inside []types.Point
	for _, p := range candidates {
		if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
			continue
		}
		if geo.Haversine(center, p) <= radius {
			inside = append(inside, p)
		}
	}
	return inside
}

func TestPlanRanges_antimeridian(t *testing.T) {
	center := types.Point{Latitude: 0, Longitude: 179.99}
	ranges, err := PlanRanges(center, 5000)
	require.NoError(t, err)

	// A point just across the date line is inside the circle and must be
	// covered despite living at the far end of the keyspace.
	other := types.Point{Latitude: 0, Longitude: -179.98}
	require.Less(t, geo.Haversine(center, other), 5000.0)

	hash := geo.Encode(other.Latitude, other.Longitude, geo.StoragePrecision)
	require.True(t, coveredBy(hash, ranges))

	hash = geo.Encode(center.Latitude, center.Longitude, geo.StoragePrecision)
	require.True(t, coveredBy(hash, ranges))
}

func TestPlanRanges_near_pole(t *testing.T) {
	center := types.Point{Latitude: 89.95, Longitude: 10}
	ranges, err := PlanRanges(center, 20_000)
	require.NoError(t, err)
	require.NotEmpty(t, ranges)

	// Near the pole every longitude is close by; a point on the opposite
	// meridian must still be covered.
	other := types.Point{Latitude: 89.96, Longitude: -170}
	require.Less(t, geo.Haversine(center, other), 20_000.0)

	hash := geo.Encode(other.Latitude, other.Longitude, geo.StoragePrecision)
	require.True(t, coveredBy(hash, ranges))
}

func TestPrecisionForRadius_coarsens_with_latitude(t *testing.T) {
	// Longitude cells shrink toward the poles, so the same radius needs an
	// equal or coarser precision at high latitude.
	atEquator := precisionForRadius(0, 5000)
	atHighLat := precisionForRadius(75, 5000)
	require.GreaterOrEqual(t, atEquator, atHighLat)
	require.GreaterOrEqual(t, atEquator, 1)
	require.LessOrEqual(t, atEquator, maxQueryPrecision)
}
