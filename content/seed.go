package content

import (
	"fmt"
	"io"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Posts []seedPost `yaml:"posts"`
}

type seedPost struct {
	ID              string `yaml:"id"`
	Slug            string `yaml:"slug"`
	Title           string `yaml:"title"`
	Excerpt         string `yaml:"excerpt"`
	Content         string `yaml:"content"`
	Author          string `yaml:"author"`
	Created         string `yaml:"created_at"`
	Updated         string `yaml:"updated_at"`
	ReadingTime     int    `yaml:"reading_time"`
	Views           int    `yaml:"views"`
	Published       *bool  `yaml:"published"`
	MetaDescription string `yaml:"meta_description"`
	MetaKeywords    string `yaml:"meta_keywords"`
	FeaturedImage   string `yaml:"featured_image"`
}

// LoadSeed reads a YAML document of the form
//
//	posts:
//	  - title: Technical SEO Checklist
//	    created_at: March 3, 2024
//	    content: <p>...</p>
//
// into posts. Missing ids are generated, missing slugs derived from the
// title, missing reading times estimated from the content, and posts are
// published unless published is false. Dates accept any layout dateparse
// understands; a missing created_at becomes now and a missing updated_at
// copies created_at.
func LoadSeed(r io.Reader, now time.Time) ([]BlogPost, error) {
	var f seedFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	posts := make([]BlogPost, 0, len(f.Posts))
	for i, sp := range f.Posts {
		p, err := sp.post(now)
		if err != nil {
			return nil, fmt.Errorf("seed post %d: %w", i, err)
		}
		posts = append(posts, p)
	}

	dupes := lo.FindDuplicates(lo.Map(posts, func(p BlogPost, _ int) string { return p.Slug }))
	if len(dupes) > 0 {
		return nil, fmt.Errorf("seed: duplicate slugs %v", dupes)
	}
	return posts, nil
}

func (sp seedPost) post(now time.Time) (BlogPost, error) {
	if sp.Title == "" {
		return BlogPost{}, fmt.Errorf("title is required")
	}
	p := BlogPost{
		ID:              sp.ID,
		Slug:            sp.Slug,
		Title:           sp.Title,
		Excerpt:         sp.Excerpt,
		Content:         sp.Content,
		Author:          sp.Author,
		ReadingTime:     sp.ReadingTime,
		Views:           sp.Views,
		Published:       sp.Published == nil || *sp.Published,
		MetaDescription: sp.MetaDescription,
		MetaKeywords:    sp.MetaKeywords,
		FeaturedImage:   sp.FeaturedImage,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.Slug == "" {
		return BlogPost{}, fmt.Errorf("cannot derive slug from title %q", p.Title)
	}
	if p.ReadingTime <= 0 {
		p.ReadingTime = ReadingTime(p.Content)
	}

	p.CreatedAt = now.UTC()
	if sp.Created != "" {
		t, err := dateparse.ParseIn(sp.Created, time.UTC)
		if err != nil {
			return BlogPost{}, fmt.Errorf("created_at: %w", err)
		}
		p.CreatedAt = t.UTC()
	}
	p.UpdatedAt = p.CreatedAt
	if sp.Updated != "" {
		t, err := dateparse.ParseIn(sp.Updated, time.UTC)
		if err != nil {
			return BlogPost{}, fmt.Errorf("updated_at: %w", err)
		}
		p.UpdatedAt = t.UTC()
	}
	return p, nil
}
