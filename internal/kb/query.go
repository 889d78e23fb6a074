package kb

import "sort"

// Criteria holds the optional bounds of a composite course filter. Nil
// fields are simply not applied; set bounds are inclusive (<=).
type Criteria struct {
	Category *Category
	MaxFSA   *float64
	MaxWHO   *float64
	// Limit truncates the result after sorting; <= 0 means no limit.
	Limit int
}

// Filter returns the courses matching every set bound, sorted ascending by
// fsa+who with ties broken by course index, truncated to Limit only after
// sorting. total is the match count before truncation. The returned slice
// is freshly allocated and shares no state with the index.
func (idx *Index) Filter(c Criteria) (matched []Course, total int) {
	matched = make([]Course, 0)
	for _, course := range idx.all() {
		if c.Category != nil && course.Category != *c.Category {
			continue
		}
		if c.MaxFSA != nil && course.FSAScore > *c.MaxFSA {
			continue
		}
		if c.MaxWHO != nil && course.WHOScore > *c.MaxWHO {
			continue
		}
		matched = append(matched, course)
	}

	sortByHealth(matched)

	total = len(matched)
	if c.Limit > 0 && len(matched) > c.Limit {
		matched = matched[:c.Limit]
	}
	return matched, total
}

// CoursesByCategory returns every course of the category sorted by the
// composite health metric.
func (idx *Index) CoursesByCategory(category Category) []Course {
	courses, _ := idx.Filter(Criteria{Category: &category})
	return courses
}

// sortByHealth applies the canonical ordering every "top-K" and "best"
// operation relies on: ascending fsa+who, equal scores ordered by ascending
// course index for determinism.
func sortByHealth(courses []Course) {
	sort.Slice(courses, func(i, j int) bool {
		si, sj := courses[i].CombinedSort(), courses[j].CombinedSort()
		if si != sj {
			return si < sj
		}
		return courses[i].Index < courses[j].Index
	})
}
