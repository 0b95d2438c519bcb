package truck

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/imperialtrucks/truck-market/internal/models"
)

// DefaultSort is the sort spec applied when none is given: newest first.
const DefaultSort = "-created_date"

// SortTrucks returns a sorted copy of trucks. A leading "-" on the field
// name means descending. created_date is compared as a timestamp; every
// other field is compared by its string representation. The sort is
// stable, so ties keep storage order.
func SortTrucks(trucks []models.Truck, sortBy string) []models.Truck {
	if sortBy == "" {
		sortBy = DefaultSort
	}
	desc := strings.HasPrefix(sortBy, "-")
	field := strings.TrimPrefix(sortBy, "-")

	out := make([]models.Truck, len(trucks))
	copy(out, trucks)

	if field == "created_date" {
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].CreatedDate.After(out[j].CreatedDate)
			}
			return out[i].CreatedDate.Before(out[j].CreatedDate)
		})
		return out
	}

	keyed := make([]sortEntry, len(out))
	for i, t := range out {
		keyed[i] = sortEntry{key: renderValue(recordMap(t)[field]), truck: t}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		if desc {
			return strings.Compare(keyed[i].key, keyed[j].key) > 0
		}
		return strings.Compare(keyed[i].key, keyed[j].key) < 0
	})
	for i, e := range keyed {
		out[i] = e.truck
	}
	return out
}

// FilterTrucks retains trucks where every criteria entry matches the
// record's field exactly. A value of nil or the sentinel "all" means no
// constraint. Matching is strict equality with no type coercion, so an
// empty criteria map keeps everything. Relative order is preserved.
func FilterTrucks(trucks []models.Truck, criteria map[string]any) []models.Truck {
	out := make([]models.Truck, 0, len(trucks))
	for _, t := range trucks {
		m := recordMap(t)
		keep := true
		for key, want := range criteria {
			if want == nil || want == "all" {
				continue
			}
			if !valuesEqual(want, m[key]) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, t)
		}
	}
	return out
}

type sortEntry struct {
	key   string
	truck models.Truck
}

// recordMap renders a truck through its wire format so fields can be
// addressed by their snake_case names.
func recordMap(t models.Truck) map[string]any {
	data, err := json.Marshal(t)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{}
	}
	return m
}

// valuesEqual compares two values by their JSON encoding, which keeps
// string/number/bool distinctions intact.
func valuesEqual(a, b any) bool {
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ab) == string(bb)
}

func renderValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
