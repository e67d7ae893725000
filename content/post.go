// Package content defines the blog post model and the data access contract
// page views read posts through.
package content

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// BlogPost is one row of the blog_posts collection. Field names on the wire
// follow the collection's column names.
type BlogPost struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Excerpt         string    `json:"excerpt"`
	Content         string    `json:"content"` // HTML
	Author          string    `json:"author"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	ReadingTime     int       `json:"reading_time"` // minutes
	Views           int       `json:"views"`
	Published       bool      `json:"published"`
	MetaDescription string    `json:"meta_description,omitempty"`
	MetaKeywords    string    `json:"meta_keywords,omitempty"`
	FeaturedImage   string    `json:"featured_image,omitempty"`
}

// Link returns the site-relative path of the post.
func (p BlogPost) Link() string {
	return "/blog/" + p.Slug
}

// Description is the meta description, falling back to the excerpt.
func (p BlogPost) Description() string {
	if p.MetaDescription != "" {
		return p.MetaDescription
	}
	return p.Excerpt
}

// Keywords splits MetaKeywords on commas, dropping blanks.
func (p BlogPost) Keywords() []string {
	return lo.FilterMap(strings.Split(p.MetaKeywords, ","), func(k string, _ int) (string, bool) {
		k = strings.TrimSpace(k)
		return k, k != ""
	})
}

// ContactMessage is a submission of the contact form.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}
