package seomaster

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/seomaster/content"
	"github.com/eringen/seomaster/log"
	"github.com/eringen/seomaster/route"
	"github.com/eringen/seomaster/views"
)

const contactSentFlash = "We'll get back to you as soon as possible."

// handlePage serves every GET that no asset or feed route claimed.
func (a *App) handlePage(c echo.Context) error {
	p := route.Resolve(c.Request().URL.Path)
	switch p.Kind {
	case route.Home:
		return a.handleHome(c, p)
	case route.Blog:
		return a.handleBlog(c, p)
	case route.BlogPost:
		return a.handlePost(c, p)
	case route.About:
		return renderPage(c, http.StatusOK, views.About, a.page(c, p, a.aboutHead(), nil))
	case route.Contact:
		return a.handleContact(c, p)
	}
	return a.renderNotFound(c)
}

// sourceFailed logs a content source error. Page views render as if the
// source had returned nothing.
func sourceFailed(c echo.Context, op string, err error) {
	log.Named("pages").Warnw("content source failed", "op", op, "path", c.Request().URL.Path, "err", err)
}

func (a *App) handleHome(c echo.Context, p route.Page) error {
	recent, err := a.Source.SelectPosts(c.Request().Context(), content.Published(3))
	if err != nil {
		sourceFailed(c, "recent posts", err)
		recent = nil
	}
	return renderPage(c, http.StatusOK, views.Home, a.page(c, p, a.homeHead(), views.HomeData{Recent: recent}))
}

func (a *App) handleBlog(c echo.Context, p route.Page) error {
	posts, err := a.Source.SelectPosts(c.Request().Context(), content.Published(0))
	if err != nil {
		sourceFailed(c, "list posts", err)
		posts = nil
	}
	data := views.BlogData{Posts: posts, Topics: blogTopics}
	return renderPage(c, http.StatusOK, views.Blog, a.page(c, p, a.blogHead(), data))
}

func (a *App) handlePost(c echo.Context, p route.Page) error {
	ctx := c.Request().Context()
	post, err := a.Source.PostBySlug(ctx, p.Slug)
	if err != nil {
		sourceFailed(c, "post by slug", err)
		post = nil
	}
	if post == nil {
		head := a.errorHead("Article Not Found", "The article you're looking for doesn't exist.")
		return renderPage(c, http.StatusNotFound, views.ArticleNotFound, a.page(c, p, head, nil))
	}

	if err := a.Source.IncrementViews(ctx, *post); err != nil {
		sourceFailed(c, "increment views", err)
	}
	return renderPage(c, http.StatusOK, views.Post, a.page(c, p, a.postHead(*post), views.PostData{Post: *post}))
}

func (a *App) handleContact(c echo.Context, p route.Page) error {
	pg := a.page(c, p, a.contactHead(), views.ContactData{})
	pg.Flash = popFlash(c)
	return renderPage(c, http.StatusOK, views.Contact, pg)
}

func validateContact(f views.ContactForm) map[string]string {
	errs := map[string]string{}
	if f.Name == "" {
		errs["name"] = "Please enter your name."
	}
	if f.Email == "" {
		errs["email"] = "Please enter your email address."
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		errs["email"] = "Please enter a valid email address."
	}
	if f.Subject == "" {
		errs["subject"] = "Please enter a subject."
	}
	if f.Message == "" {
		errs["message"] = "Please enter a message."
	}
	return errs
}

func (a *App) handleContactSubmit(c echo.Context) error {
	form := views.ContactForm{
		Name:    strings.TrimSpace(c.FormValue("name")),
		Email:   strings.TrimSpace(c.FormValue("email")),
		Subject: strings.TrimSpace(c.FormValue("subject")),
		Message: strings.TrimSpace(c.FormValue("message")),
	}
	if errs := validateContact(form); len(errs) > 0 {
		p := route.Page{Kind: route.Contact}
		data := views.ContactData{Form: form, Errors: errs}
		return renderPage(c, http.StatusUnprocessableEntity, views.Contact, a.page(c, p, a.contactHead(), data))
	}

	ip := c.RealIP()
	if !a.contactLimiter.Reserve(ip) {
		return c.String(http.StatusTooManyRequests, "Too many messages. Please try again later.")
	}
	id, err := a.Store.SaveContactMessage(c.Request().Context(), content.ContactMessage{
		Name:      form.Name,
		Email:     form.Email,
		Subject:   form.Subject,
		Message:   form.Message,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		a.contactLimiter.Cancel(ip)
		return fmt.Errorf("save contact message: %w", err)
	}
	log.Named("contact").Infow("message received", "id", id, "ip", ip)

	if err := setFlash(c, contactSentFlash); err != nil {
		log.Named("contact").Warnw("set flash", "err", err)
	}
	return c.Redirect(http.StatusSeeOther, "/contact")
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (a *App) renderNotFound(c echo.Context) error {
	head := a.errorHead("404 - Page Not Found", "The page you're looking for doesn't exist.")
	return renderPage(c, http.StatusNotFound, views.NotFound, a.page(c, route.Page{}, head, nil))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderNotFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		log.Named("http").Errorw("server error", "path", c.Request().URL.Path, "err", err)
		head := a.errorHead("Something went wrong", "We couldn't load this page.")
		_ = renderPage(c, code, views.ServerError, a.page(c, route.Page{}, head, nil))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
