package institution

import (
	"sort"
	"strings"
	"time"

	"benigna-backend/entities"
	"benigna-backend/pkg/geo"
	"benigna-backend/pkg/schedule"
)

// FilterOptions narrows the institution catalogue. Zero values mean the
// criterion was not provided.
type FilterOptions struct {
	SearchQuery string
	Category    string
	MaxDistance float64
	MinRating   float64
	OpenNow     bool
}

type Result struct {
	Institution   *entities.Institution
	Distance      float64
	HasDistance   bool
	DistanceLabel string
	OpenNow       bool
}

// Apply runs the catalogue through search, category, distance, rating and
// open-now filters, in that order. Distance filtering and sorting only
// happen when origin is known; otherwise catalogue order is kept. The
// input slice is never modified.
func Apply(catalogue []*entities.Institution, opts FilterOptions, origin *geo.Coordinate, now time.Time) []Result {
	query := strings.ToLower(opts.SearchQuery)

	results := make([]Result, 0, len(catalogue))
	for _, inst := range catalogue {
		if inst == nil {
			continue
		}
		if query != "" && !matchesQuery(inst, query) {
			continue
		}
		if opts.Category != "" && !inst.AcceptsCategory(opts.Category) {
			continue
		}

		r := Result{Institution: inst}
		if origin != nil {
			r.Distance = geo.Distance(*origin, inst.Address.Coordinate())
			r.HasDistance = true
			r.DistanceLabel = geo.FormatDistance(r.Distance)
			if opts.MaxDistance > 0 && r.Distance > opts.MaxDistance {
				continue
			}
		}

		if opts.MinRating > 0 && inst.Rating < opts.MinRating {
			continue
		}

		r.OpenNow = schedule.IsOpenAt(inst.WorkingHours, now)
		if opts.OpenNow && !r.OpenNow {
			continue
		}

		results = append(results, r)
	}

	if origin != nil {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Distance < results[j].Distance
		})
	}
	return results
}

// Institutions unwraps results back into a catalogue.
func Institutions(results []Result) []*entities.Institution {
	out := make([]*entities.Institution, 0, len(results))
	for _, r := range results {
		out = append(out, r.Institution)
	}
	return out
}

func matchesQuery(inst *entities.Institution, query string) bool {
	return strings.Contains(strings.ToLower(inst.Name), query) ||
		strings.Contains(strings.ToLower(inst.Address.City), query) ||
		strings.Contains(strings.ToLower(inst.Address.Neighborhood), query)
}
