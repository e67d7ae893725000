// Package views renders the site's pages inside the shared layout.
//
// Pages are html/template files embedded from templates/. Each page file
// defines "main"; layout.html wraps it either in the full document or in
// the partial used for in-app navigation, which carries only the head
// elements and the main element.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/eringen/seomaster/content"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	Home            = "home"
	Blog            = "blog"
	Post            = "post"
	About           = "about"
	Contact         = "contact"
	NotFound        = "notfound"
	ArticleNotFound = "article_notfound"
	ServerError     = "error"
)

var pageNames = []string{Home, Blog, Post, About, Contact, NotFound, ArticleNotFound, ServerError}

// Site is the site-wide data every page sees.
type Site struct {
	Name string
	URL  string
}

// Page is everything a page template renders from.
type Page struct {
	Site    Site
	Section string // highlighted navigation entry
	Head    templ.Component
	Flash   string
	CSRF    string
	Data    any
}

// HomeData feeds the home page.
type HomeData struct {
	Recent []content.BlogPost
}

// BlogData feeds the blog listing.
type BlogData struct {
	Posts  []content.BlogPost
	Topics []string
}

// PostData feeds the blog detail page.
type PostData struct {
	Post content.BlogPost
}

// ContactForm is the contact form's field values.
type ContactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactData feeds the contact page. Errors maps field names to messages.
type ContactData struct {
	Form   ContactForm
	Errors map[string]string
}

type document struct {
	Page
	HeadHTML template.HTML
	Year     int
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"isodate": func(t time.Time) string {
		return t.Format(time.RFC3339)
	},
	"comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"sanitize": func(s string) template.HTML {
		return template.HTML(content.Sanitize(s))
	},
	"active": func(section, want string) string {
		if section == want {
			return "active"
		}
		return ""
	},
}

var pages = mustParse()

func mustParse() map[string]*template.Template {
	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		out[name] = template.Must(template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return out
}

// Full renders page name as a complete HTML document.
func Full(name string, p Page) templ.Component {
	return component(name, "document", p)
}

// Partial renders page name as head elements followed by the main element.
func Partial(name string, p Page) templ.Component {
	return component(name, "partial", p)
}

func component(name, entry string, p Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := pages[name]
		if !ok {
			return fmt.Errorf("views: unknown page %q", name)
		}
		doc := document{Page: p, Year: time.Now().Year()}
		if p.Head != nil {
			head, err := templ.ToGoHTML(ctx, p.Head)
			if err != nil {
				return fmt.Errorf("views: render head: %w", err)
			}
			doc.HeadHTML = head
		}
		return t.ExecuteTemplate(w, entry, doc)
	})
}
