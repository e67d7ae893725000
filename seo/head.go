// Package seo keeps a document head in sync with a page's SEO intent: the
// title, a fixed set of meta tag slots, one canonical link and at most one
// JSON-LD structured data block.
//
// Every write is lookup-or-create by the element's identifying attribute and
// overwrites what was there, so repeated calls never accumulate elements.
package seo

import (
	"context"
	"encoding/json"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// SchemaContext is the @context of every structured data block.
const SchemaContext = "https://schema.org"

const jsonLDType = "application/ld+json"

// Config is the SEO intent of one page. Only Title and Description are
// required; empty optional fields leave their slots untouched.
type Config struct {
	Title       string
	Description string
	Keywords    string
	OGImage     string
	OGType      string // defaults to "website"
	Canonical   string
	Author      string
}

// Attr is one attribute of a head element.
type Attr struct {
	Key, Val string
}

// Element is a node of the document head.
type Element struct {
	Tag   string // title, meta, link or script
	Attrs []Attr
	Text  string // inner text of title and script
}

// Attr returns the value of attribute key.
func (e Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func (e *Element) setAttr(key, val string) {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Val = val
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Val: val})
}

func (e *Element) matches(tag, key, val string) bool {
	if e.Tag != tag {
		return false
	}
	if key == "" {
		return true
	}
	v, ok := e.Attr(key)
	return ok && v == val
}

// Head is the mutable head of one document. The zero value is an empty head.
// A Head is not safe for concurrent use.
type Head struct {
	elems []*Element
}

// find returns the first element matching the selector tag[key="val"], or
// tag alone when key is empty.
func (h *Head) find(tag, key, val string) *Element {
	for _, e := range h.elems {
		if e.matches(tag, key, val) {
			return e
		}
	}
	return nil
}

func (h *Head) findOrCreate(tag, key, val string) *Element {
	if e := h.find(tag, key, val); e != nil {
		return e
	}
	e := &Element{Tag: tag}
	if key != "" {
		e.Attrs = []Attr{{Key: key, Val: val}}
	}
	h.elems = append(h.elems, e)
	return e
}

func (h *Head) remove(tag, key, val string) {
	kept := h.elems[:0]
	for _, e := range h.elems {
		if !e.matches(tag, key, val) {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(h.elems); i++ {
		h.elems[i] = nil
	}
	h.elems = kept
}

// SetTitle sets the document title.
func (h *Head) SetTitle(title string) {
	h.findOrCreate("title", "", "").Text = title
}

// SetMeta upserts the meta element identified by attr ("name" or
// "property") and overwrites its content.
func (h *Head) SetMeta(attr, key, content string) {
	h.findOrCreate("meta", attr, key).setAttr("content", content)
}

// SetCanonical upserts the canonical link and overwrites its href.
func (h *Head) SetCanonical(href string) {
	h.findOrCreate("link", "rel", "canonical").setAttr("href", href)
}

type slot struct {
	attr, key, content string
}

// UpdateMetaTags applies cfg to the head. The title is always set; the
// description, Open Graph and Twitter slots are always written; keywords,
// image, author and canonical are written only when cfg supplies them.
func (h *Head) UpdateMetaTags(cfg Config) {
	h.SetTitle(cfg.Title)

	ogType := cfg.OGType
	if ogType == "" {
		ogType = "website"
	}
	slots := []slot{
		{"name", "description", cfg.Description},
		{"property", "og:title", cfg.Title},
		{"property", "og:description", cfg.Description},
		{"property", "og:type", ogType},
		{"name", "twitter:card", "summary_large_image"},
		{"name", "twitter:title", cfg.Title},
		{"name", "twitter:description", cfg.Description},
	}
	if cfg.Keywords != "" {
		slots = append(slots, slot{"name", "keywords", cfg.Keywords})
	}
	if cfg.OGImage != "" {
		slots = append(slots,
			slot{"property", "og:image", cfg.OGImage},
			slot{"name", "twitter:image", cfg.OGImage},
		)
	}
	if cfg.Author != "" {
		slots = append(slots, slot{"name", "author", cfg.Author})
	}

	if cfg.Canonical != "" {
		h.SetCanonical(cfg.Canonical)
	}
	for _, s := range slots {
		h.SetMeta(s.attr, s.key, s.content)
	}
}

// GenerateStructuredData replaces the head's JSON-LD block with
// {"@context": SchemaContext, "@type": typ} merged with payload. Payload
// keys win over the two fixed keys. The payload is not checked against typ.
func (h *Head) GenerateStructuredData(typ string, payload map[string]any) {
	doc := make(map[string]any, len(payload)+2)
	doc["@context"] = SchemaContext
	doc["@type"] = typ
	for k, v := range payload {
		doc[k] = v
	}
	text := "{}"
	if b, err := json.Marshal(doc); err == nil {
		text = string(b)
	}

	h.remove("script", "type", jsonLDType)
	h.elems = append(h.elems, &Element{
		Tag:   "script",
		Attrs: []Attr{{Key: "type", Val: jsonLDType}},
		Text:  text,
	})
}

// Title returns the document title.
func (h *Head) Title() string {
	if e := h.find("title", "", ""); e != nil {
		return e.Text
	}
	return ""
}

// Meta returns the content of the meta element identified by attr and key.
func (h *Head) Meta(attr, key string) (string, bool) {
	if e := h.find("meta", attr, key); e != nil {
		return e.Attr("content")
	}
	return "", false
}

// Canonical returns the canonical link href.
func (h *Head) Canonical() (string, bool) {
	if e := h.find("link", "rel", "canonical"); e != nil {
		return e.Attr("href")
	}
	return "", false
}

// StructuredData returns the JSON text of the JSON-LD block.
func (h *Head) StructuredData() (string, bool) {
	if e := h.find("script", "type", jsonLDType); e != nil {
		return e.Text, true
	}
	return "", false
}

// Elements returns a copy of the head's elements in document order.
func (h *Head) Elements() []Element {
	out := make([]Element, len(h.elems))
	for i, e := range h.elems {
		out[i] = Element{Tag: e.Tag, Attrs: append([]Attr(nil), e.Attrs...), Text: e.Text}
	}
	return out
}

// Component renders the head's elements as HTML.
func (h *Head) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		for _, e := range h.elems {
			writeElement(&b, e)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeElement(b *strings.Builder, e *Element) {
	b.WriteByte('<')
	b.WriteString(e.Tag)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	switch e.Tag {
	case "title":
		b.WriteString(html.EscapeString(e.Text))
		b.WriteString("</title>")
	case "script":
		// json.Marshal escapes <, > and &, so the text cannot close the element.
		b.WriteString(e.Text)
		b.WriteString("</script>")
	}
	b.WriteByte('\n')
}
