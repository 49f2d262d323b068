package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var saoPaulo = Coordinate{Latitude: -23.5505, Longitude: -46.6333}

func TestDistance_SamePointIsZero(t *testing.T) {
	points := []Coordinate{
		saoPaulo,
		{Latitude: 0, Longitude: 0},
		{Latitude: 89.9, Longitude: 179.9},
		{Latitude: -45.123, Longitude: -120.5},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p, p), "distance of %v to itself", p)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]Coordinate{
		{saoPaulo, {Latitude: -22.9068, Longitude: -43.1729}},
		{{Latitude: 40.7128, Longitude: -74.0060}, {Latitude: 51.5074, Longitude: -0.1278}},
		{{Latitude: -33.8688, Longitude: 151.2093}, {Latitude: 35.6762, Longitude: 139.6503}},
	}
	for _, p := range pairs {
		ab := Distance(p[0], p[1])
		ba := Distance(p[1], p[0])
		assert.InDelta(t, ab, ba, ab*1e-9)
	}
}

func TestDistance_OneDegreeOfLatitude(t *testing.T) {
	north := Coordinate{Latitude: saoPaulo.Latitude + 1, Longitude: saoPaulo.Longitude}

	d := Distance(saoPaulo, north)

	expected := EarthRadiusKm * math.Pi / 180
	assert.InDelta(t, expected, d, expected*1e-6)
	assert.InDelta(t, 111.0, d, 111.0*0.01)
}

func TestDistance_KnownCities(t *testing.T) {
	rio := Coordinate{Latitude: -22.9068, Longitude: -43.1729}

	d := Distance(saoPaulo, rio)

	// São Paulo to Rio de Janeiro is roughly 360 km as the crow flies
	assert.InDelta(t, 360, d, 10)
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		km       float64
		expected string
	}{
		{0, "0m"},
		{0.4567, "457m"},
		{0.9994, "999m"},
		{1, "1.0km"},
		{1.26, "1.3km"},
		{12.04, "12.0km"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDistance(tt.km), "FormatDistance(%v)", tt.km)
	}
}

func TestCoordinate_Valid(t *testing.T) {
	assert.True(t, saoPaulo.Valid())
	assert.True(t, Coordinate{Latitude: 90, Longitude: -180}.Valid())
	assert.False(t, Coordinate{Latitude: 91, Longitude: 0}.Valid())
	assert.False(t, Coordinate{Latitude: 0, Longitude: 181}.Valid())
	assert.False(t, Coordinate{Latitude: math.NaN(), Longitude: 0}.Valid())
}
