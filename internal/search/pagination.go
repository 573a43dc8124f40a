package search

import "github.com/samber/lo"

// Ellipsis marks a gap in pagination items.
const Ellipsis = 0

// PaginationItems lists page numbers to show for the current page, with
// Ellipsis standing in for skipped ranges.
func PaginationItems(current, total int) []int {
	if total <= 7 {
		return lo.RangeFrom(1, total)
	}

	switch {
	case current <= 3:
		return []int{1, 2, 3, Ellipsis, total - 1, total}
	case current >= total-2:
		return []int{1, 2, Ellipsis, total - 2, total - 1, total}
	default:
		return []int{1, Ellipsis, current - 1, current, current + 1, Ellipsis, total}
	}
}
