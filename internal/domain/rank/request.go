package rank

// Result limit bounds for a ranking call.
const (
	DefaultLimit = 4
	MaxLimit     = 12
)

// Request is a validated ranking query.
type Request struct {
	limit             int
	category          string
	preferredCategory string
	personalized      bool
}

// NewRequest normalizes ranking parameters. The limit is clamped to
// [1, MaxLimit] and defaults to DefaultLimit when unset.
func NewRequest(limit int, category, preferredCategory string, personalized bool) Request {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{
		limit:             limit,
		category:          category,
		preferredCategory: preferredCategory,
		personalized:      personalized,
	}
}

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// Category returns the hard category filter ("" for none).
func (r *Request) Category() string { return r.category }

// PreferredCategory returns the personalization category ("" for none).
func (r *Request) PreferredCategory() string { return r.preferredCategory }

// Personalized reports whether preferred-category partitioning was requested.
func (r *Request) Personalized() bool { return r.personalized }
