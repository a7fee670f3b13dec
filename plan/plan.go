package plan

import "sort"

// Sort orders analyses by (priority, selectivity, column index) ascending,
// the order predicates are executed in.
func Sort(analyses []Analysis) {
	sort.SliceStable(analyses, func(i, j int) bool {
		a, b := analyses[i], analyses[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Selectivity != b.Selectivity {
			return a.Selectivity < b.Selectivity
		}
		return a.Predicate.Column < b.Predicate.Column
	})
}
