package seomaster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	_ "modernc.org/sqlite"

	"github.com/eringen/seomaster/content"
)

// timeLayout keeps a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000Z"

const postColumns = `id, slug, title, excerpt, content, author, created_at, updated_at,
	reading_time, views, published, meta_description, meta_keywords, featured_image`

// Store wraps a SQLite database holding the blog_posts collection and
// contact form submissions. It implements content.Source.
type Store struct {
	db *sql.DB
}

var _ content.Source = (*Store)(nil)

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets page reads proceed while a view count is written; the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS blog_posts (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    reading_time INTEGER NOT NULL DEFAULT 1,
    views INTEGER NOT NULL DEFAULT 0,
    published INTEGER NOT NULL DEFAULT 0,
    meta_description TEXT NOT NULL DEFAULT '',
    meta_keywords TEXT NOT NULL DEFAULT '',
    featured_image TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS blog_posts_published_created ON blog_posts (published, created_at);
CREATE TABLE IF NOT EXISTS contact_messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    subject TEXT NOT NULL,
    message TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (content.BlogPost, error) {
	var (
		p                content.BlogPost
		created, updated string
		published        int
	)
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.Author,
		&created, &updated, &p.ReadingTime, &p.Views, &published,
		&p.MetaDescription, &p.MetaKeywords, &p.FeaturedImage)
	if err != nil {
		return content.BlogPost{}, err
	}
	if p.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return content.BlogPost{}, fmt.Errorf("post %s: created_at: %w", p.Slug, err)
	}
	if p.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return content.BlogPost{}, fmt.Errorf("post %s: updated_at: %w", p.Slug, err)
	}
	p.Published = published == 1
	return p, nil
}

// SelectPosts returns the rows matching q.
func (s *Store) SelectPosts(ctx context.Context, q content.Query) ([]content.BlogPost, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	var (
		b     strings.Builder
		where []string
		args  []any
	)
	b.WriteString("SELECT " + postColumns + " FROM blog_posts")
	if q.Published != nil {
		where = append(where, "published = ?")
		args = append(args, boolInt(*q.Published))
	}
	if q.Slug != "" {
		where = append(where, "slug = ?")
		args = append(args, q.Slug)
	}
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	if q.OrderBy != "" {
		// Validate restricts OrderBy to known column names.
		b.WriteString(" ORDER BY " + q.OrderBy)
		if q.Ascending {
			b.WriteString(" ASC")
		} else {
			b.WriteString(" DESC")
		}
	}
	if q.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []content.BlogPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// PostBySlug returns the published post with slug, or nil if there is none.
func (s *Store) PostBySlug(ctx context.Context, slug string) (*content.BlogPost, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE slug = ? AND published = 1`, slug)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// IncrementViews adds one to the post's view counter.
func (s *Store) IncrementViews(ctx context.Context, post content.BlogPost) error {
	res, err := s.db.ExecContext(ctx, `UPDATE blog_posts SET views = views + 1 WHERE id = ?`, post.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("increment views of %q: %w", post.ID, content.ErrNotFound)
	}
	return nil
}

// SavePost inserts p or, when a post with the same slug exists, overwrites
// it while keeping its id and view counter. A missing id is generated and
// zero timestamps become now.
func (s *Store) SavePost(ctx context.Context, p content.BlogPost) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if p.ReadingTime <= 0 {
		p.ReadingTime = content.ReadingTime(p.Content)
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO blog_posts (`+postColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
    title = excluded.title,
    excerpt = excluded.excerpt,
    content = excluded.content,
    author = excluded.author,
    created_at = excluded.created_at,
    updated_at = excluded.updated_at,
    reading_time = excluded.reading_time,
    published = excluded.published,
    meta_description = excluded.meta_description,
    meta_keywords = excluded.meta_keywords,
    featured_image = excluded.featured_image`,
		p.ID, p.Slug, p.Title, p.Excerpt, p.Content, p.Author,
		p.CreatedAt.UTC().Format(timeLayout), p.UpdatedAt.UTC().Format(timeLayout),
		p.ReadingTime, p.Views, boolInt(p.Published),
		p.MetaDescription, p.MetaKeywords, p.FeaturedImage)
	return err
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE slug = ?`, slug)
	return err
}

// Seed upserts posts by slug. With prune, stored posts whose slug is not in
// posts are deleted; their slugs are returned.
func (s *Store) Seed(ctx context.Context, posts []content.BlogPost, prune bool) ([]string, error) {
	for _, p := range posts {
		if err := s.SavePost(ctx, p); err != nil {
			return nil, fmt.Errorf("save %s: %w", p.Slug, err)
		}
	}
	if !prune {
		return nil, nil
	}

	stored, err := s.SelectPosts(ctx, content.Query{OrderBy: "created_at", Ascending: true})
	if err != nil {
		return nil, err
	}
	keep := lo.SliceToMap(posts, func(p content.BlogPost) (string, struct{}) {
		return p.Slug, struct{}{}
	})
	pruned := lo.FilterMap(stored, func(p content.BlogPost, _ int) (string, bool) {
		_, ok := keep[p.Slug]
		return p.Slug, !ok
	})
	for _, slug := range pruned {
		if err := s.DeletePost(ctx, slug); err != nil {
			return nil, fmt.Errorf("delete %s: %w", slug, err)
		}
	}
	return pruned, nil
}

// SaveContactMessage stores a contact form submission and returns its id.
func (s *Store) SaveContactMessage(ctx context.Context, m content.ContactMessage) (int64, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, subject, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Email, m.Subject, m.Message, m.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ContactMessages returns every stored submission, newest first.
func (s *Store) ContactMessages(ctx context.Context) ([]content.ContactMessage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email, subject, message, created_at FROM contact_messages ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []content.ContactMessage
	for rows.Next() {
		var (
			m       content.ContactMessage
			created string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &created); err != nil {
			return nil, err
		}
		if m.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
