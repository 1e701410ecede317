package store

// Pagination bounds applied by Query.Normalize.
const (
	DefaultLimit = 25
	MaxLimit     = 500
)

// Direction is the sort direction of an Order clause.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// Order is a single ordering clause for a list query.
type Order struct {
	Property  string    `json:"property"`
	Direction Direction `json:"direction"`
}

// Query carries the options for list-shaped store operations (list, count,
// ids). It is built from request query parameters and consumed by stores,
// which are responsible for allow-listing the referenced columns.
type Query struct {
	// Criteria holds exact-match column filters, e.g. {"email": "a@b.c"}.
	Criteria map[string]any

	// Search is a free-text term matched against the resource's declared
	// search columns.
	Search string

	// Order lists ordering clauses, applied in sequence.
	Order []Order

	// Limit and Offset page the result set. Zero Limit means DefaultLimit.
	Limit  int
	Offset int

	// Populate names associations to load alongside the base rows.
	Populate []string
}

// Normalize clamps pagination to sane bounds and fills in defaults.
// Stores call this before building SQL so a hostile limit cannot dump
// an entire table.
func (q Query) Normalize() Query {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	for i, o := range q.Order {
		if o.Direction != Descending {
			q.Order[i].Direction = Ascending
		}
	}
	return q
}

// HasPopulate reports whether the named association was requested.
func (q Query) HasPopulate(name string) bool {
	for _, p := range q.Populate {
		if p == name {
			return true
		}
	}
	return false
}
