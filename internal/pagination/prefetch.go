package pagination

// DefaultPrefetchThreshold triggers a fetch once the last 30% of the list is visible.
const DefaultPrefetchThreshold = 0.3

// NearEnd reports whether the rows after lastVisible make up no more than
// threshold of the total. An empty list is never near its end because there
// is nothing to scroll; the initial fetch covers it.
func NearEnd(lastVisible, total int, threshold float64) bool {
	if total <= 0 {
		return false
	}
	if lastVisible >= total-1 {
		return true
	}
	if lastVisible < 0 {
		lastVisible = -1
	}
	remaining := float64(total-1-lastVisible) / float64(total)
	return remaining <= threshold
}
