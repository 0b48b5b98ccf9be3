package pagination

// Status is the lifecycle position of a Store.
type Status int

const (
	Idle Status = iota
	FetchingFirst
	FetchingNext
	Settled
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case FetchingFirst:
		return "fetching_first"
	case FetchingNext:
		return "fetching_next"
	case Settled:
		return "settled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetching reports whether a fetch is outstanding.
func (s Status) Fetching() bool {
	return s == FetchingFirst || s == FetchingNext
}
