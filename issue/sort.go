package issue

import "sort"

// GroupBy groups issues by key preserving issue order within each group
func GroupBy[K comparable](issues []Issue, key func(i *Issue) K) map[K][]Issue {
	result := map[K][]Issue{}
	for i := range issues {
		k := key(&issues[i])
		result[k] = append(result[k], issues[i])
	}
	return result
}

// SortBySeverity orders issues by severity (desc), keeps detection order for equal severity
func SortBySeverity(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.Rank() > issues[j].Severity.Rank()
	})
}

// Count returns number of issues per severity
func Count(issues []Issue) map[Severity]int {
	result := map[Severity]int{}
	for _, item := range issues {
		result[item.Severity]++
	}
	return result
}
