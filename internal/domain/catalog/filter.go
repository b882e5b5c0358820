package catalog

import "strings"

// FilterAll is the sentinel select value that matches every course.
const FilterAll = "all"

// FilterState holds the user-chosen predicates narrowing the catalog.
// The zero value of the three select fields is treated as FilterAll so
// an unbound query parameter never filters anything out.
type FilterState struct {
	SearchTerm string `form:"search" json:"searchTerm"`
	Duration   string `form:"duration" json:"duration"`
	Difficulty string `form:"difficulty" json:"difficulty"`
	Category   string `form:"category" json:"category"`
}

// DefaultFilter returns the all-pass filter state the dashboard starts
// with and resets to.
func DefaultFilter() FilterState {
	return FilterState{
		Duration:   FilterAll,
		Difficulty: FilterAll,
		Category:   FilterAll,
	}
}

// IsDefault reports whether every predicate is inactive.
func (f FilterState) IsDefault() bool {
	return f.SearchTerm == "" &&
		selectsAll(f.Duration) &&
		selectsAll(f.Difficulty) &&
		selectsAll(f.Category)
}

func selectsAll(v string) bool {
	return v == "" || v == FilterAll
}

// Matches reports whether a course passes every active predicate:
// case-insensitive substring on the name, substring containment for the
// duration bucket, exact equality for difficulty and category.
func (f FilterState) Matches(c *Course) bool {
	if f.SearchTerm != "" &&
		!strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.SearchTerm)) {
		return false
	}
	if !selectsAll(f.Duration) && !strings.Contains(c.Duration, f.Duration) {
		return false
	}
	if !selectsAll(f.Difficulty) && c.Difficulty != f.Difficulty {
		return false
	}
	if !selectsAll(f.Category) && c.Category != f.Category {
		return false
	}
	return true
}

// Apply reduces the catalog to the courses matching the filter state,
// preserving the catalog's original order. The input slice is never
// mutated; calling Apply twice with identical inputs yields identical
// output.
func Apply(courses []*Course, f FilterState) []*Course {
	visible := make([]*Course, 0, len(courses))
	for _, c := range courses {
		if f.Matches(c) {
			visible = append(visible, c)
		}
	}
	return visible
}
