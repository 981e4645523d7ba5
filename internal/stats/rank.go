package stats

import "sort"

// ranked is an item eligible for top-N reporting.
type ranked struct {
	label string
	value int64
}

// rankDescending sorts items by value descending (stable, so ties keep their
// first-seen order), keeps the top limit entries and folds everything below
// the cut into a single overflow entry. With limit or fewer items the input
// is returned sorted, with no overflow entry.
func rankDescending(items []ranked, limit int, overflowLabel string) []ranked {
	out := append([]ranked(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].value > out[j].value
	})

	if len(out) <= limit {
		return out
	}

	var rest int64
	for _, item := range out[limit:] {
		rest += item.value
	}
	out = append(out[:limit], ranked{label: overflowLabel, value: rest})
	return out
}
