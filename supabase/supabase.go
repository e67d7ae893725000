// Package supabase reads and updates the blog_posts collection of a hosted
// Supabase project through its PostgREST endpoint.
package supabase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	postgrest "github.com/supabase-community/postgrest-go"

	"github.com/eringen/seomaster/content"
)

const (
	table  = "blog_posts"
	schema = "public"
)

// Config locates a Supabase project.
type Config struct {
	URL     string // project URL, e.g. https://xyz.supabase.co
	Key     string // anon or service role key
	Timeout time.Duration
}

// Client implements content.Source against PostgREST.
type Client struct {
	rest    *postgrest.Client
	timeout time.Duration
}

var _ content.Source = (*Client)(nil)

// New returns a client for cfg.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" || cfg.Key == "" {
		return nil, fmt.Errorf("supabase: url and key are required")
	}
	rest := postgrest.NewClient(strings.TrimRight(cfg.URL, "/")+"/rest/v1", schema, map[string]string{
		"apikey":        cfg.Key,
		"Authorization": "Bearer " + cfg.Key,
	})
	if rest.ClientError != nil {
		return nil, fmt.Errorf("supabase: %w", rest.ClientError)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{rest: rest, timeout: timeout}, nil
}

func (c *Client) filter(q content.Query) *postgrest.FilterBuilder {
	f := c.rest.From(table).Select("*", "", false)
	if q.Published != nil {
		f = f.Eq("published", strconv.FormatBool(*q.Published))
	}
	if q.Slug != "" {
		f = f.Eq("slug", q.Slug)
	}
	if q.OrderBy != "" {
		f = f.Order(q.OrderBy, &postgrest.OrderOpts{Ascending: q.Ascending})
	}
	if q.Limit > 0 {
		f = f.Limit(q.Limit, "")
	}
	return f
}

// SelectPosts returns the rows matching q.
func (c *Client) SelectPosts(ctx context.Context, q content.Query) ([]content.BlogPost, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	posts := []content.BlogPost{}
	if _, err := c.filter(q).ExecuteToWithContext(ctx, &posts); err != nil {
		return nil, fmt.Errorf("supabase: select %s: %w", table, err)
	}
	return posts, nil
}

// PostBySlug returns the published post with slug, or nil if there is none.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*content.BlogPost, error) {
	if slug == "" {
		return nil, nil
	}
	posts, err := c.SelectPosts(ctx, content.Query{
		Published: content.Bool(true),
		Slug:      slug,
		Limit:     1,
	})
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 || posts[0].Slug != slug {
		return nil, nil
	}
	return &posts[0], nil
}

// IncrementViews writes post.Views+1 to the row with post's id. PostgREST
// has no atomic increment without a stored procedure, so concurrent views of
// the same post may be counted once.
func (c *Client) IncrementViews(ctx context.Context, post content.BlogPost) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var updated []struct {
		ID string `json:"id"`
	}
	_, err := c.rest.From(table).
		Update(map[string]int{"views": post.Views + 1}, "representation", "").
		Eq("id", post.ID).
		ExecuteToWithContext(ctx, &updated)
	if err != nil {
		return fmt.Errorf("supabase: increment views of %q: %w", post.ID, err)
	}
	if len(updated) == 0 {
		return fmt.Errorf("increment views of %q: %w", post.ID, content.ErrNotFound)
	}
	return nil
}
