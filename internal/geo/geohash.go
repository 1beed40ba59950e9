// Package geo implements the geohash space-filling-curve encoding and the
// great-circle distance math used by the spatial search path.
package geo

import (
	"fmt"
	"strings"

	"github.com/shambalink/shambalink/pkg/types"
)

// base32 is the standard geohash alphabet. It is sorted in ASCII order,
// which is what makes prefix ranges over the encoded key work as index
// range scans.
const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// StoragePrecision is the precision at which listing geohashes are persisted.
// 9 characters resolve to roughly 5m x 5m cells, finer than any query
// precision the planner selects, so every stored key is prefix-covered by a
// coarser query cell.
const StoragePrecision = 9

// MaxPrecision is the longest geohash this package will encode.
const MaxPrecision = 12

var base32Index = func() map[byte]int {
	m := make(map[byte]int, len(base32))
	for i := 0; i < len(base32); i++ {
		m[base32[i]] = i
	}
	return m
}()

// Box is the bounding box of a geohash cell.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Center returns the midpoint of the box.
func (b Box) Center() types.Point {
	return types.Point{
		Latitude:  (b.MinLat + b.MaxLat) / 2,
		Longitude: (b.MinLng + b.MaxLng) / 2,
	}
}

// Encode returns the geohash of the given coordinate at the requested
// precision (number of base32 characters).
func Encode(lat, lng float64, precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > MaxPrecision {
		precision = MaxPrecision
	}

	latLo, latHi := -90.0, 90.0
	lngLo, lngHi := -180.0, 180.0

	var sb strings.Builder
	sb.Grow(precision)

	even := true // even bits encode longitude
	bit := 0
	ch := 0

	for sb.Len() < precision {
		if even {
			mid := (lngLo + lngHi) / 2
			if lng >= mid {
				ch = ch<<1 | 1
				lngLo = mid
			} else {
				ch <<= 1
				lngHi = mid
			}
		} else {
			mid := (latLo + latHi) / 2
			if lat >= mid {
				ch = ch<<1 | 1
				latLo = mid
			} else {
				ch <<= 1
				latHi = mid
			}
		}
		even = !even

		bit++
		if bit == 5 {
			sb.WriteByte(base32[ch])
			bit = 0
			ch = 0
		}
	}

	return sb.String()
}

// Decode returns the bounding box of the cell identified by the geohash.
func Decode(hash string) (Box, error) {
	if hash == "" {
		return Box{}, fmt.Errorf("empty geohash")
	}

	box := Box{MinLat: -90, MaxLat: 90, MinLng: -180, MaxLng: 180}
	even := true

	for i := 0; i < len(hash); i++ {
		cd, ok := base32Index[hash[i]]
		if !ok {
			return Box{}, fmt.Errorf("invalid geohash character %q", hash[i])
		}
		for mask := 16; mask > 0; mask >>= 1 {
			if even {
				mid := (box.MinLng + box.MaxLng) / 2
				if cd&mask != 0 {
					box.MinLng = mid
				} else {
					box.MaxLng = mid
				}
			} else {
				mid := (box.MinLat + box.MaxLat) / 2
				if cd&mask != 0 {
					box.MinLat = mid
				} else {
					box.MaxLat = mid
				}
			}
			even = !even
		}
	}

	return box, nil
}

// CellSize returns the height and width in degrees of a geohash cell at the
// given precision.
func CellSize(precision int) (latDeg, lngDeg float64) {
	latBits := 0
	lngBits := 0
	for i := 0; i < precision*5; i++ {
		if i%2 == 0 {
			lngBits++
		} else {
			latBits++
		}
	}
	latDeg = 180.0 / float64(int64(1)<<latBits)
	lngDeg = 360.0 / float64(int64(1)<<lngBits)
	return latDeg, lngDeg
}

// Increment returns the lexicographically next geohash of the same length,
// and false when the input is the last key in the keyspace.
func Increment(hash string) (string, bool) {
	b := []byte(hash)
	for i := len(b) - 1; i >= 0; i-- {
		idx, ok := base32Index[b[i]]
		if !ok {
			return "", false
		}
		if idx < len(base32)-1 {
			b[i] = base32[idx+1]
			for j := i + 1; j < len(b); j++ {
				b[j] = base32[0]
			}
			return string(b), true
		}
	}
	return "", false
}
