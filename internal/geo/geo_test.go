package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{55.7558, 37.6173, 59.9343, 30.3351},
		{-33.8688, 151.2093, 51.5074, -0.1278},
		{0, 0, 0, 0.001},
		{89.9, 179.9, -89.9, -179.9},
	}
	for _, p := range pairs {
		assert.Equal(t, DistanceMeters(p[0], p[1], p[2], p[3]), DistanceMeters(p[2], p[3], p[0], p[1]))
	}
}

func TestDistanceMeters_Identity(t *testing.T) {
	assert.Equal(t, 0.0, DistanceMeters(55.7558, 37.6173, 55.7558, 37.6173))
	assert.Equal(t, 0.0, DistanceMeters(0, 0, 0, 0))
}

func TestDistanceMeters_KnownDistance(t *testing.T) {
	// Москва - Санкт-Петербург, около 634 км
	d := DistanceMeters(55.7558, 37.6173, 59.9343, 30.3351)
	assert.InDelta(t, 634000, d, 3000)

	// один градус широты ~ 111.2 км
	assert.InDelta(t, 111195, DistanceMeters(0, 0, 1, 0), 10)
}

func TestDistanceMeters_NaN(t *testing.T) {
	assert.True(t, math.IsNaN(DistanceMeters(math.NaN(), 0, 0, 0)))
}

func TestPointInPolygon_Square(t *testing.T) {
	square := [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}}

	assert.True(t, PointInPolygon([2]float64{5, 5}, square))
	assert.False(t, PointInPolygon([2]float64{15, 15}, square))
	assert.False(t, PointInPolygon([2]float64{-1, 5}, square))
}

func TestPointInPolygon_ClosedRing(t *testing.T) {
	ring := [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}

	assert.True(t, PointInPolygon([2]float64{5, 5}, ring))
	assert.False(t, PointInPolygon([2]float64{11, 5}, ring))
}

func TestPointInPolygon_Concave(t *testing.T) {
	// U-образный полигон: выемка сверху посередине
	u := [][2]float64{{0, 0}, {9, 0}, {9, 9}, {6, 9}, {6, 3}, {3, 3}, {3, 9}, {0, 9}}

	assert.True(t, PointInPolygon([2]float64{1.5, 6}, u))
	assert.False(t, PointInPolygon([2]float64{4.5, 6}, u))
	assert.True(t, PointInPolygon([2]float64{4.5, 1.5}, u))
}

func TestPointInPolygon_Degenerate(t *testing.T) {
	assert.False(t, PointInPolygon([2]float64{0, 0}, nil))
	assert.False(t, PointInPolygon([2]float64{0, 0}, [][2]float64{{0, 0}, {1, 1}}))
}

func TestPointInPolygon_Deterministic(t *testing.T) {
	square := [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	edge := [2]float64{0, 5}

	first := PointInPolygon(edge, square)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, PointInPolygon(edge, square))
	}
}

func TestPointInCircle_Boundary(t *testing.T) {
	d := DistanceMeters(55.0, 37.0, 55.001, 37.0)

	assert.True(t, PointInCircle(55.001, 37.0, 55.0, 37.0, d))
	assert.False(t, PointInCircle(55.001, 37.0, 55.0, 37.0, d-0.01))
}
