// Package pagination implements the skip/take page window and its metadata.
package pagination

// Order is the sort direction for listings.
type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// Query carries client-supplied pagination parameters. Lowercase order values
// are accepted and upcased by the transform layer before validation.
type Query struct {
	Order Order `query:"order" mod:"upper" validate:"oneof=ASC DESC"`
	Page  int   `query:"page" validate:"min=1"`
	Take  int   `query:"take" validate:"min=1,max=50"`
}

// NewQuery returns a Query with defaults applied; binding overwrites only the
// parameters the client actually sent.
func NewQuery() *Query {
	return &Query{
		Order: OrderAsc,
		Page:  1,
		Take:  10,
	}
}

// Skip is the number of rows to drop before the requested window.
func (q *Query) Skip() int {
	return (q.Page - 1) * q.Take
}

// Meta describes the page window relative to the full result set.
type Meta struct {
	Page            int  `json:"page"`
	Take            int  `json:"take"`
	ItemCount       int  `json:"itemCount"`
	PageCount       int  `json:"pageCount"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// NewMeta derives page metadata from the query and the total item count.
func NewMeta(q *Query, itemCount int) *Meta {
	pageCount := (itemCount + q.Take - 1) / q.Take
	return &Meta{
		Page:            q.Page,
		Take:            q.Take,
		ItemCount:       itemCount,
		PageCount:       pageCount,
		HasPreviousPage: q.Page > 1,
		HasNextPage:     q.Page < pageCount,
	}
}
