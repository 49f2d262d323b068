package geo

import (
	"fmt"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

const (
	tolerance   = 0.0001
	dimensions  = 2
	minChildren = 4
	maxChildren = 16
)

// Point is an indexed position identified by ID.
type Point struct {
	ID         string
	Coordinate Coordinate
}

// Match is a Point found by Nearby together with its distance from the
// search center.
type Match struct {
	ID       string
	Distance float64
}

type spatialPoint struct {
	Point
	rect *rtreego.Rect
}

func (sp *spatialPoint) Bounds() *rtreego.Rect {
	return sp.rect
}

// Index is an R-Tree over latitude/longitude used to answer radius queries
// without scanning every point. It is built once from a snapshot and is
// read-only afterwards.
type Index struct {
	tree *rtreego.Rtree
	size int
}

func NewIndex(points []Point) *Index {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	size := 0
	for _, p := range points {
		if !p.Coordinate.Valid() {
			continue
		}
		rect := rtreego.Point{p.Coordinate.Latitude, p.Coordinate.Longitude}.ToRect(tolerance)
		tree.Insert(&spatialPoint{Point: p, rect: rect})
		size++
	}
	return &Index{tree: tree, size: size}
}

func (x *Index) Size() int {
	return x.size
}

// Nearby returns every point within radiusKm of center, closest first.
// The R-Tree narrows candidates to a bounding box, then Distance decides.
// A box crossing the ±180° meridian is searched as two boxes, and one
// reaching a pole spans every longitude.
func (x *Index) Nearby(center Coordinate, radiusKm float64) ([]Match, error) {
	if !center.Valid() {
		return nil, fmt.Errorf("invalid center %v", center)
	}
	if radiusKm <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %v", radiusKm)
	}

	latDeg := (radiusKm / EarthRadiusKm) * (180 / math.Pi)
	// longitude degrees shrink towards the poles
	lonDeg := latDeg / math.Max(math.Cos(toRadians(center.Latitude)), 0.01)

	var spans [][2]float64
	minLon, maxLon := center.Longitude-lonDeg, center.Longitude+lonDeg
	switch {
	case lonDeg >= 180 || math.Abs(center.Latitude)+latDeg >= 90:
		spans = [][2]float64{{-180, 180}}
	case minLon < -180:
		spans = [][2]float64{{minLon + 360, 180}, {-180, maxLon}}
	case maxLon > 180:
		spans = [][2]float64{{minLon, 180}, {-180, maxLon - 360}}
	default:
		spans = [][2]float64{{minLon, maxLon}}
	}

	seen := make(map[*spatialPoint]bool)
	matches := make([]Match, 0)
	for _, span := range spans {
		bounds, err := rtreego.NewRect(
			rtreego.Point{center.Latitude - latDeg, span[0]},
			[]float64{2 * latDeg, span[1] - span[0]},
		)
		if err != nil {
			return nil, fmt.Errorf("invalid radius search: %w", err)
		}

		for _, c := range x.tree.SearchIntersect(bounds) {
			sp, ok := c.(*spatialPoint)
			if !ok || seen[sp] {
				continue
			}
			seen[sp] = true
			d := Distance(center, sp.Coordinate)
			if d <= radiusKm {
				matches = append(matches, Match{ID: sp.ID, Distance: d})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance == matches[j].Distance {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].Distance < matches[j].Distance
	})
	return matches, nil
}
