// Package route maps a request path to the one page view that renders it.
package route

import "strings"

// Kind identifies a page view.
type Kind int

const (
	NotFound Kind = iota
	Home
	Blog
	BlogPost
	About
	Contact
)

func (k Kind) String() string {
	switch k {
	case Home:
		return "home"
	case Blog:
		return "blog"
	case BlogPost:
		return "blog-post"
	case About:
		return "about"
	case Contact:
		return "contact"
	default:
		return "not-found"
	}
}

// Page is a resolved page identity. Slug is set only for BlogPost and is
// passed through uninterpreted, so it may be empty.
type Page struct {
	Kind Kind
	Slug string
}

// Section is the main navigation entry the page belongs to, or "" for pages
// outside the navigation.
func (p Page) Section() string {
	switch p.Kind {
	case Home:
		return "home"
	case Blog, BlogPost:
		return "blog"
	case About:
		return "about"
	case Contact:
		return "contact"
	}
	return ""
}

// Matcher reports whether path belongs to a rule and returns the slug it
// carries, if any.
type Matcher func(path string) (slug string, ok bool)

// Exact matches path p only.
func Exact(p string) Matcher {
	return func(path string) (string, bool) {
		return "", path == p
	}
}

// Prefix matches every path starting with prefix and returns the remainder
// as the slug.
func Prefix(prefix string) Matcher {
	return func(path string) (string, bool) {
		return strings.CutPrefix(path, prefix)
	}
}

// Rule pairs a matcher with the page it selects.
type Rule struct {
	Match Matcher
	Kind  Kind
}

// Table is an ordered list of rules. The first matching rule wins and a
// path no rule matches resolves to NotFound.
type Table []Rule

// Resolve returns the page for path.
func (t Table) Resolve(path string) Page {
	for _, r := range t {
		if slug, ok := r.Match(path); ok {
			return Page{Kind: r.Kind, Slug: slug}
		}
	}
	return Page{Kind: NotFound}
}

// DefaultTable holds the site's routes in priority order.
var DefaultTable = Table{
	{Match: Exact("/"), Kind: Home},
	{Match: Exact("/blog"), Kind: Blog},
	{Match: Prefix("/blog/"), Kind: BlogPost},
	{Match: Exact("/about"), Kind: About},
	{Match: Exact("/contact"), Kind: Contact},
}

// Resolve resolves path against DefaultTable.
func Resolve(path string) Page {
	return DefaultTable.Resolve(path)
}
