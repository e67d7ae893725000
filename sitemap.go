package seomaster

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/eringen/seomaster/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Source.SelectPosts(c.Request().Context(), content.Published(0))
	if err != nil {
		sourceFailed(c, "sitemap posts", err)
		posts = nil
	}
	return a.renderSitemap(c, posts)
}

func (a *App) renderSitemap(c echo.Context, posts []content.BlogPost) error {
	urls := []sitemapURL{
		{Loc: a.canonical("/"), ChangeFreq: "daily", Priority: "1.0"},
		{Loc: a.canonical("/blog"), ChangeFreq: "daily", Priority: "0.9"},
		{Loc: a.canonical("/about"), ChangeFreq: "monthly", Priority: "0.5"},
		{Loc: a.canonical("/contact"), ChangeFreq: "monthly", Priority: "0.5"},
	}
	urls = append(urls, lo.Map(posts, func(p content.BlogPost, _ int) sitemapURL {
		return sitemapURL{
			Loc:        a.canonical(p.Link()),
			LastMod:    p.UpdatedAt.UTC().Format(time.DateOnly),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		}
	})...)
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\n\nSitemap: " + a.canonical("/sitemap.xml") + "\n"
	return c.String(http.StatusOK, body)
}
