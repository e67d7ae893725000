package seomaster

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/eringen/seomaster/content"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test_blog.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 9, 0, 0, 0, time.UTC)
}

func seedPosts(t *testing.T, s *Store, posts ...content.BlogPost) {
	t.Helper()
	for _, p := range posts {
		if err := s.SavePost(context.Background(), p); err != nil {
			t.Fatalf("SavePost(%s) failed: %v", p.Slug, err)
		}
	}
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	post := content.BlogPost{
		ID:              "3e0c1d6a-5c7b-4a43-9d2e-1f1f2b7f0a01",
		Slug:            "test-post",
		Title:           "Test Post",
		Excerpt:         "A test post summary",
		Content:         "<p>This is test content.</p>",
		Author:          "Sarah Johnson",
		CreatedAt:       day(15),
		UpdatedAt:       day(16),
		ReadingTime:     4,
		Views:           10,
		Published:       true,
		MetaDescription: "meta",
		MetaKeywords:    "go, testing",
		FeaturedImage:   "https://example.com/cover.jpg",
	}
	seedPosts(t, s, post)

	got, err := s.PostBySlug(ctx, "test-post")
	if err != nil {
		t.Fatalf("PostBySlug failed: %v", err)
	}
	if got == nil {
		t.Fatal("PostBySlug returned nil")
	}
	if !got.CreatedAt.Equal(post.CreatedAt) || !got.UpdatedAt.Equal(post.UpdatedAt) {
		t.Errorf("timestamps = %v / %v, want %v / %v", got.CreatedAt, got.UpdatedAt, post.CreatedAt, post.UpdatedAt)
	}
	got.CreatedAt, got.UpdatedAt = post.CreatedAt, post.UpdatedAt
	if *got != post {
		t.Errorf("PostBySlug = %+v, want %+v", *got, post)
	}
}

func TestSavePostGeneratesDefaults(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedPosts(t, s, content.BlogPost{Slug: "defaults", Title: "Defaults", Content: "<p>hi</p>", Published: true})

	got, err := s.PostBySlug(ctx, "defaults")
	if err != nil || got == nil {
		t.Fatalf("PostBySlug = %v, %v", got, err)
	}
	if got.ID == "" {
		t.Error("ID should be generated")
	}
	if got.CreatedAt.IsZero() || !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Errorf("timestamps = %v / %v", got.CreatedAt, got.UpdatedAt)
	}
	if got.ReadingTime != 1 {
		t.Errorf("ReadingTime = %d, want 1", got.ReadingTime)
	}
}

func TestSavePostUpdateKeepsIDAndViews(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedPosts(t, s, content.BlogPost{ID: "first-id", Slug: "update-test", Title: "Original Title", CreatedAt: day(1), Views: 5, Published: true})
	seedPosts(t, s, content.BlogPost{ID: "second-id", Slug: "update-test", Title: "Updated Title", CreatedAt: day(1), Views: 0, Published: true})

	got, err := s.PostBySlug(ctx, "update-test")
	if err != nil || got == nil {
		t.Fatalf("PostBySlug = %v, %v", got, err)
	}
	if got.Title != "Updated Title" {
		t.Errorf("Title = %q, want %q", got.Title, "Updated Title")
	}
	if got.ID != "first-id" {
		t.Errorf("ID = %q, want first-id", got.ID)
	}
	if got.Views != 5 {
		t.Errorf("Views = %d, want 5", got.Views)
	}
}

func TestPostBySlugNotFound(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.PostBySlug(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil post, got %+v", got)
	}

	got, err = s.PostBySlug(context.Background(), "")
	if err != nil || got != nil {
		t.Errorf("empty slug = %v, %v; want nil, nil", got, err)
	}
}

func TestPostBySlugUnpublished(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedPosts(t, s, content.BlogPost{Slug: "draft", Title: "Draft", CreatedAt: day(1), Published: false})

	got, err := s.PostBySlug(ctx, "draft")
	if err != nil {
		t.Fatalf("PostBySlug failed: %v", err)
	}
	if got != nil {
		t.Error("PostBySlug should not return unpublished posts")
	}

	all, err := s.SelectPosts(ctx, content.Query{Slug: "draft"})
	if err != nil {
		t.Fatalf("SelectPosts failed: %v", err)
	}
	if len(all) != 1 || all[0].Published {
		t.Errorf("SelectPosts(slug=draft) = %+v", all)
	}
}

func TestSelectPublished(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedPosts(t, s,
		content.BlogPost{Slug: "post-1", Title: "Post 1", CreatedAt: day(1), Published: true},
		content.BlogPost{Slug: "post-2", Title: "Post 2", CreatedAt: day(2), Published: true},
		content.BlogPost{Slug: "post-3", Title: "Post 3", CreatedAt: day(3), Published: true},
		content.BlogPost{Slug: "post-4", Title: "Post 4", CreatedAt: day(4), Published: false},
		content.BlogPost{Slug: "post-5", Title: "Post 5", CreatedAt: day(5), Published: true},
	)

	got, err := s.SelectPosts(ctx, content.Published(0))
	if err != nil {
		t.Fatalf("SelectPosts failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("count = %d, want 4 (excluding unpublished)", len(got))
	}
	want := []string{"post-5", "post-3", "post-2", "post-1"}
	for i, slug := range want {
		if got[i].Slug != slug {
			t.Errorf("posts[%d] = %s, want %s", i, got[i].Slug, slug)
		}
	}

	recent, err := s.SelectPosts(ctx, content.Published(3))
	if err != nil {
		t.Fatalf("SelectPosts(limit 3) failed: %v", err)
	}
	if len(recent) != 3 || recent[0].Slug != "post-5" {
		t.Errorf("recent = %v", recent)
	}

	q := content.Published(0)
	q.Ascending = true
	asc, err := s.SelectPosts(ctx, q)
	if err != nil {
		t.Fatalf("SelectPosts(asc) failed: %v", err)
	}
	if asc[0].Slug != "post-1" {
		t.Errorf("ascending first = %s, want post-1", asc[0].Slug)
	}
}

func TestSelectPostsEmpty(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.SelectPosts(context.Background(), content.Published(0))
	if err != nil {
		t.Fatalf("SelectPosts failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("SelectPosts on empty store = %#v, want empty non-nil slice", got)
	}
}

func TestSelectPostsInvalidQuery(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.SelectPosts(context.Background(), content.Query{OrderBy: "1; DROP TABLE blog_posts"})
	if !errors.Is(err, content.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestSelectPostsCanceledContext(t *testing.T) {
	s := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.SelectPosts(ctx, content.Published(0)); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestIncrementViews(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedPosts(t, s, content.BlogPost{ID: "views-id", Slug: "views", Title: "Views", CreatedAt: day(1), Views: 41, Published: true})

	post, err := s.PostBySlug(ctx, "views")
	if err != nil || post == nil {
		t.Fatalf("PostBySlug = %v, %v", post, err)
	}
	if err := s.IncrementViews(ctx, *post); err != nil {
		t.Fatalf("IncrementViews failed: %v", err)
	}
	if err := s.IncrementViews(ctx, *post); err != nil {
		t.Fatalf("IncrementViews failed: %v", err)
	}

	post, _ = s.PostBySlug(ctx, "views")
	if post.Views != 43 {
		t.Errorf("Views = %d, want 43", post.Views)
	}

	err = s.IncrementViews(ctx, content.BlogPost{ID: "missing"})
	if !errors.Is(err, content.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedPosts(t, s, content.BlogPost{Slug: "to-delete", Title: "To Delete", CreatedAt: day(1), Published: true})

	if err := s.DeletePost(ctx, "to-delete"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if got, _ := s.PostBySlug(ctx, "to-delete"); got != nil {
		t.Error("post should not exist after delete")
	}
	if err := s.DeletePost(ctx, "nonexistent"); err != nil {
		t.Errorf("DeletePost on nonexistent should not error, got: %v", err)
	}
}

func TestSeed(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedPosts(t, s,
		content.BlogPost{Slug: "kept", Title: "Old Title", CreatedAt: day(1), Published: true, Views: 4},
		content.BlogPost{Slug: "stale", Title: "Stale", CreatedAt: day(2), Published: true},
		content.BlogPost{Slug: "stale-draft", Title: "Stale Draft", CreatedAt: day(3)},
	)
	posts := []content.BlogPost{
		{Slug: "kept", Title: "New Title", CreatedAt: day(1), Published: true},
		{Slug: "added", Title: "Added", CreatedAt: day(4), Published: true},
	}

	pruned, err := s.Seed(ctx, posts, false)
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if len(pruned) != 0 {
		t.Errorf("Seed without prune removed %v", pruned)
	}
	if got, _ := s.PostBySlug(ctx, "stale"); got == nil {
		t.Error("stale post should survive a seed without prune")
	}

	pruned, err = s.Seed(ctx, posts, true)
	if err != nil {
		t.Fatalf("Seed with prune failed: %v", err)
	}
	if len(pruned) != 2 || pruned[0] != "stale" || pruned[1] != "stale-draft" {
		t.Errorf("pruned = %v, want [stale stale-draft]", pruned)
	}

	all, err := s.SelectPosts(ctx, content.Query{})
	if err != nil {
		t.Fatalf("SelectPosts failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d posts after prune, want 2", len(all))
	}
	kept, err := s.PostBySlug(ctx, "kept")
	if err != nil || kept == nil {
		t.Fatalf("PostBySlug(kept) = %v, %v", kept, err)
	}
	if kept.Title != "New Title" {
		t.Errorf("Title = %q, want %q", kept.Title, "New Title")
	}
	if kept.Views != 4 {
		t.Errorf("Views = %d, want 4 kept across seeds", kept.Views)
	}
}

func TestContactMessages(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first := content.ContactMessage{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "First", CreatedAt: day(1)}
	second := content.ContactMessage{Name: "Bob", Email: "bob@example.com", Subject: "Yo", Message: "Second", CreatedAt: day(2)}
	for _, m := range []content.ContactMessage{first, second} {
		if _, err := s.SaveContactMessage(ctx, m); err != nil {
			t.Fatalf("SaveContactMessage failed: %v", err)
		}
	}

	got, err := s.ContactMessages(ctx)
	if err != nil {
		t.Fatalf("ContactMessages failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("count = %d, want 2", len(got))
	}
	if got[0].Name != "Bob" || got[1].Name != "Ada" {
		t.Errorf("order = %s, %s; want Bob, Ada", got[0].Name, got[1].Name)
	}
	if !got[1].CreatedAt.Equal(day(1)) {
		t.Errorf("CreatedAt = %v, want %v", got[1].CreatedAt, day(1))
	}
}
