package domain

// NextID allocates the ID for a new record: max existing + 1, or 1 when
// the collection is empty. Gaps left by deletions below the maximum are
// never filled, so allocation stays monotonic over the live records.
func NextID(existing []int) int {
	max := 0
	for _, id := range existing {
		if id > max {
			max = id
		}
	}
	return max + 1
}
