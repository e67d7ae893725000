package content

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an update targets a row that does not exist.
	ErrNotFound = errors.New("content: not found")
	// ErrInvalidQuery is returned for a Query the sources cannot express.
	ErrInvalidQuery = errors.New("content: invalid query")
)

// Columns a Query may order by.
var orderColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
	"views":      true,
}

// Query selects rows of blog_posts with equality filters, one ordering and
// an optional limit. The zero value selects every row in storage order.
type Query struct {
	Published *bool  // filter on published when non-nil
	Slug      string // filter on slug when non-empty
	OrderBy   string // column name; empty keeps storage order
	Ascending bool
	Limit     int // 0 means no limit
}

// Validate reports whether q can be run by a Source.
func (q Query) Validate() error {
	if q.OrderBy != "" && !orderColumns[q.OrderBy] {
		return fmt.Errorf("%w: cannot order by %q", ErrInvalidQuery, q.OrderBy)
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: negative limit %d", ErrInvalidQuery, q.Limit)
	}
	return nil
}

// Published returns the query page views use: published rows, newest first,
// at most limit rows (0 for all).
func Published(limit int) Query {
	return Query{
		Published: Bool(true),
		OrderBy:   "created_at",
		Limit:     limit,
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Source is the data access contract of the page views.
type Source interface {
	// SelectPosts returns the rows matching q, possibly none.
	SelectPosts(ctx context.Context, q Query) ([]BlogPost, error)
	// PostBySlug returns the published post with slug, or nil when there is
	// no such row.
	PostBySlug(ctx context.Context, slug string) (*BlogPost, error)
	// IncrementViews records one more view of post.
	IncrementViews(ctx context.Context, post BlogPost) error
}
