package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_NearbySortedByDistance(t *testing.T) {
	center := Coordinate{Latitude: -23.5505, Longitude: -46.6333}
	index := NewIndex([]Point{
		{ID: "far", Coordinate: Coordinate{Latitude: -22.9068, Longitude: -43.1729}}, // Rio, ~360km
		{ID: "near", Coordinate: Coordinate{Latitude: -23.5605, Longitude: -46.6433}},
		{ID: "center", Coordinate: center},
		{ID: "mid", Coordinate: Coordinate{Latitude: -23.6505, Longitude: -46.6333}}, // ~11km south
	})
	require.Equal(t, 4, index.Size())

	matches, err := index.Nearby(center, 20)
	require.NoError(t, err)

	require.Len(t, matches, 3)
	assert.Equal(t, "center", matches[0].ID)
	assert.Equal(t, "near", matches[1].ID)
	assert.Equal(t, "mid", matches[2].ID)
	assert.Equal(t, 0.0, matches[0].Distance)
	assert.InDelta(t, Distance(center, Coordinate{Latitude: -23.6505, Longitude: -46.6333}), matches[2].Distance, 1e-9)
}

func TestIndex_NearbyMatchesLinearScan(t *testing.T) {
	center := Coordinate{Latitude: 60, Longitude: 10}
	var points []Point
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			points = append(points, Point{
				ID:         string(rune('a'+i)) + string(rune('a'+j)),
				Coordinate: Coordinate{Latitude: 59 + float64(i)*0.1, Longitude: 8 + float64(j)*0.2},
			})
		}
	}
	index := NewIndex(points)

	matches, err := index.Nearby(center, 50)
	require.NoError(t, err)

	expected := 0
	for _, p := range points {
		if Distance(center, p.Coordinate) <= 50 {
			expected++
		}
	}
	assert.Equal(t, expected, len(matches))
	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i-1].Distance, matches[i].Distance)
	}
}

func TestIndex_SkipsInvalidPoints(t *testing.T) {
	index := NewIndex([]Point{
		{ID: "bad", Coordinate: Coordinate{Latitude: 120, Longitude: 0}},
		{ID: "ok", Coordinate: Coordinate{Latitude: 1, Longitude: 1}},
	})
	assert.Equal(t, 1, index.Size())
}

func TestIndex_NearbyRejectsBadInput(t *testing.T) {
	index := NewIndex(nil)

	_, err := index.Nearby(Coordinate{Latitude: 100}, 5)
	assert.Error(t, err)

	_, err = index.Nearby(Coordinate{}, 0)
	assert.Error(t, err)

	matches, err := index.Nearby(Coordinate{}, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestIndex_NearbyAcrossAntimeridian(t *testing.T) {
	index := NewIndex([]Point{
		{ID: "west", Coordinate: Coordinate{Latitude: 10, Longitude: -179.95}},
		{ID: "east", Coordinate: Coordinate{Latitude: 10, Longitude: 179.9}},
		{ID: "far", Coordinate: Coordinate{Latitude: 10, Longitude: -170}},
	})

	matches, err := index.Nearby(Coordinate{Latitude: 10, Longitude: 179.95}, 50)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.ElementsMatch(t, []string{"west", "east"}, []string{matches[0].ID, matches[1].ID})

	matches, err = index.Nearby(Coordinate{Latitude: 10, Longitude: -179.95}, 50)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "west", matches[0].ID)
	assert.Equal(t, "east", matches[1].ID)
}

func TestIndex_NearbyAroundPole(t *testing.T) {
	index := NewIndex([]Point{
		{ID: "a", Coordinate: Coordinate{Latitude: 89.9, Longitude: 0}},
		{ID: "b", Coordinate: Coordinate{Latitude: 89.9, Longitude: 179.99}},
		{ID: "equator", Coordinate: Coordinate{Latitude: 0, Longitude: 90}},
	})

	matches, err := index.Nearby(Coordinate{Latitude: 89.95, Longitude: 90}, 100)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}
