package seomaster

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/seomaster/content"
	"github.com/eringen/seomaster/route"
	"github.com/eringen/seomaster/seo"
	"github.com/eringen/seomaster/views"
)

// blogTopics are the listing sidebar's topic chips.
var blogTopics = []string{"On-Page SEO", "Technical SEO", "Link Building", "Content Strategy", "Analytics"}

func (a *App) canonical(path string) string {
	return a.Config.URL + path
}

func (a *App) page(c echo.Context, p route.Page, head *seo.Head, data any) views.Page {
	return views.Page{
		Site:    views.Site{Name: a.Config.Name, URL: a.Config.URL},
		Section: p.Section(),
		Head:    head.Component(),
		CSRF:    CsrfToken(c),
		Data:    data,
	}
}

func (a *App) homeHead() *seo.Head {
	h := &seo.Head{}
	h.UpdateMetaTags(seo.Config{
		Title:       a.Config.Name + " - Learn Modern Search Engine Optimization Techniques",
		Description: "Master SEO with our comprehensive guides, tutorials, and best practices. Learn on-page, technical, and off-page optimization strategies to rank higher in search engines.",
		Keywords:    "SEO, search engine optimization, SEO tutorial, SEO guide, digital marketing, web development",
		OGType:      "website",
		Canonical:   a.canonical("/"),
		Author:      a.Config.Author,
	})
	h.GenerateStructuredData("WebSite", map[string]any{
		"name":        a.Config.Name,
		"url":         a.Config.URL,
		"description": a.Config.Description,
		"potentialAction": map[string]any{
			"@type": "SearchAction",
			"target": map[string]any{
				"@type":       "EntryPoint",
				"urlTemplate": a.canonical("/search?q={search_term_string}"),
			},
			"query-input": "required name=search_term_string",
		},
	})
	return h
}

func (a *App) blogHead() *seo.Head {
	h := &seo.Head{}
	h.UpdateMetaTags(seo.Config{
		Title:       "SEO Blog - Latest Articles & Tutorials | " + a.Config.Name,
		Description: "Explore our collection of SEO articles, tutorials, and guides. Learn about on-page optimization, technical SEO, link building, and more.",
		Keywords:    "SEO blog, SEO articles, SEO tutorials, search optimization, digital marketing blog",
		OGType:      "website",
		Canonical:   a.canonical("/blog"),
	})
	h.GenerateStructuredData("Blog", map[string]any{
		"name":        a.Config.Name + " Blog",
		"description": "Expert articles and tutorials on search engine optimization",
		"url":         a.canonical("/blog"),
	})
	return h
}

func (a *App) postHead(post content.BlogPost) *seo.Head {
	h := &seo.Head{}
	h.UpdateMetaTags(seo.Config{
		Title:       fmt.Sprintf("%s | %s", post.Title, a.Config.Name),
		Description: post.Description(),
		Keywords:    post.MetaKeywords,
		OGImage:     post.FeaturedImage,
		OGType:      "article",
		Canonical:   a.canonical(post.Link()),
		Author:      post.Author,
	})
	data := map[string]any{
		"headline":    post.Title,
		"description": post.Description(),
		"author": map[string]any{
			"@type": "Person",
			"name":  post.Author,
		},
		"datePublished": post.CreatedAt.Format(time.RFC3339),
		"dateModified":  post.UpdatedAt.Format(time.RFC3339),
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  a.Config.Name,
			"logo": map[string]any{
				"@type": "ImageObject",
				"url":   a.canonical("/logo.png"),
			},
		},
	}
	if post.FeaturedImage != "" {
		data["image"] = post.FeaturedImage
	}
	h.GenerateStructuredData("Article", data)
	return h
}

func (a *App) aboutHead() *seo.Head {
	h := &seo.Head{}
	h.UpdateMetaTags(seo.Config{
		Title:       "About Us - " + a.Config.Name + " | Expert SEO Resources & Education",
		Description: "Learn about SEO Master, your trusted source for search engine optimization education, tutorials, and best practices. We help businesses and individuals master digital marketing.",
		Keywords:    "about SEO Master, SEO education, SEO experts, digital marketing team",
		OGType:      "website",
		Canonical:   a.canonical("/about"),
	})
	h.GenerateStructuredData("Organization", map[string]any{
		"name":         a.Config.Name,
		"url":          a.Config.URL,
		"description":  "Expert SEO resources and education platform",
		"foundingDate": "2024",
		"sameAs": []string{
			"https://twitter.com/seomaster",
			"https://linkedin.com/company/seomaster",
			"https://facebook.com/seomaster",
		},
	})
	return h
}

func (a *App) contactHead() *seo.Head {
	h := &seo.Head{}
	h.UpdateMetaTags(seo.Config{
		Title:       "Contact Us - Get in Touch | " + a.Config.Name,
		Description: "Have questions about SEO? Contact our team of experts for help with your search engine optimization needs. We are here to help you succeed.",
		Keywords:    "contact SEO Master, SEO help, SEO consultation, get in touch",
		OGType:      "website",
		Canonical:   a.canonical("/contact"),
	})
	h.GenerateStructuredData("ContactPage", map[string]any{
		"name":        "Contact " + a.Config.Name,
		"description": "Get in touch with our SEO experts",
	})
	return h
}

// errorHead is the head of the not-found and error pages. They carry no
// canonical link or structured data and ask crawlers not to index them.
func (a *App) errorHead(title, description string) *seo.Head {
	h := &seo.Head{}
	h.UpdateMetaTags(seo.Config{
		Title:       title + " | " + a.Config.Name,
		Description: description,
	})
	h.SetMeta("name", "robots", "noindex")
	return h
}
