package databasetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/information-sharing-networks/blog-demo/internal/blog"
)

// RunStoreConformance runs the blog.Store contract tests.
// newStore must return an empty store; it is called once per subtest.
func RunStoreConformance(t *testing.T, newStore func(t *testing.T) blog.Store) {
	t.Helper()

	sample := func(n int) blog.Post {
		return blog.Post{
			Author:  blog.Author{FirstName: "First", LastName: "Last"},
			Title:   "Title " + string(rune('A'+n)),
			Content: "Content " + string(rune('A'+n)),
		}
	}

	t.Run("insert assigns id and created", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		before := time.Now().Add(-time.Second)
		p, err := store.Insert(ctx, sample(0))
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if p.ID == "" {
			t.Error("Insert() did not assign an id")
		}
		if p.Created.Before(before) {
			t.Errorf("Created = %v, expected the insert time", p.Created)
		}

		got, err := store.FindByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		assertPostsEqual(t, got, p)
	})

	t.Run("insert keeps a supplied created time", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		created := time.Date(2020, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
		post := sample(0)
		post.Created = created

		p, err := store.Insert(ctx, post)
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if !p.Created.Equal(created) {
			t.Errorf("Created = %v, want %v", p.Created, created)
		}
	})

	t.Run("insert many, find all and count", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		posts := make([]blog.Post, 0, 10)
		for i := range 10 {
			p := sample(i)
			// insert newest first to check FindAll sorts by created
			p.Created = base.Add(time.Duration(10-i) * time.Minute)
			posts = append(posts, p)
		}

		inserted, err := store.InsertMany(ctx, posts)
		if err != nil {
			t.Fatalf("InsertMany() error = %v", err)
		}
		if len(inserted) != 10 {
			t.Fatalf("InsertMany() returned %d posts, want 10", len(inserted))
		}

		count, err := store.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if count != 10 {
			t.Errorf("Count() = %d, want 10", count)
		}

		all, err := store.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		if int64(len(all)) != count {
			t.Fatalf("FindAll() returned %d posts, Count() = %d", len(all), count)
		}
		for i := 1; i < len(all); i++ {
			if all[i].Created.Before(all[i-1].Created) {
				t.Errorf("FindAll() is not ordered by created: %v before %v", all[i-1].Created, all[i].Created)
			}
		}

		first, err := store.FindOne(ctx)
		if err != nil {
			t.Fatalf("FindOne() error = %v", err)
		}
		assertPostsEqual(t, first, all[0])

		again, err := store.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		for i := range all {
			assertPostsEqual(t, again[i], all[i])
		}
	})

	t.Run("empty store", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		all, err := store.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		if all == nil || len(all) != 0 {
			t.Errorf("FindAll() = %#v, want an empty non-nil slice", all)
		}

		if _, err := store.FindOne(ctx); !errors.Is(err, blog.ErrPostNotFound) {
			t.Errorf("FindOne() error = %v, want ErrPostNotFound", err)
		}

		inserted, err := store.InsertMany(ctx, nil)
		if err != nil {
			t.Fatalf("InsertMany(nil) error = %v", err)
		}
		if len(inserted) != 0 {
			t.Errorf("InsertMany(nil) returned %d posts", len(inserted))
		}
	})

	t.Run("find by unknown id", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		p, err := store.Insert(ctx, sample(0))
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if _, err := store.Delete(ctx, p.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		for _, id := range []string{p.ID, "not-an-id", ""} {
			if _, err := store.FindByID(ctx, id); !errors.Is(err, blog.ErrPostNotFound) {
				t.Errorf("FindByID(%q) error = %v, want ErrPostNotFound", id, err)
			}
		}
	})

	t.Run("partial update", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		p, err := store.Insert(ctx, sample(0))
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}

		lastName := "MacKenzie"
		title := "Potatoes are awesome"
		updated, err := store.Update(ctx, p.ID, blog.PostUpdate{Title: &title, LastName: &lastName})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		want := p
		want.Title = title
		want.Author.LastName = lastName
		assertPostsEqual(t, updated, want)

		stored, err := store.FindByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		assertPostsEqual(t, stored, want)
	})

	t.Run("full update", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		p, err := store.Insert(ctx, sample(0))
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}

		title := "Potatoes are awesome"
		content := "French fries and potato chips taste amazing!"
		firstName := "Spuds"
		lastName := "MacKenzie"
		if _, err := store.Update(ctx, p.ID, blog.PostUpdate{
			Title: &title, Content: &content, FirstName: &firstName, LastName: &lastName,
		}); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		stored, err := store.FindByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if stored.Title != title || stored.Content != content ||
			stored.Author.FirstName != firstName || stored.Author.LastName != lastName {
			t.Errorf("stored post does not reflect the update: %+v", stored)
		}
		if stored.ID != p.ID || !stored.Created.Equal(p.Created) {
			t.Errorf("id or created changed: %+v", stored)
		}
	})

	t.Run("update unknown id", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		p, err := store.Insert(ctx, sample(0))
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if _, err := store.Delete(ctx, p.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		title := "x"
		for _, id := range []string{p.ID, "not-an-id"} {
			if _, err := store.Update(ctx, id, blog.PostUpdate{Title: &title}); !errors.Is(err, blog.ErrPostNotFound) {
				t.Errorf("Update(%q) error = %v, want ErrPostNotFound", id, err)
			}
		}
	})

	t.Run("empty update", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		p, err := store.Insert(ctx, sample(0))
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}

		got, err := store.Update(ctx, p.ID, blog.PostUpdate{})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		assertPostsEqual(t, got, p)

		if _, err := store.Delete(ctx, p.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := store.Update(ctx, p.ID, blog.PostUpdate{}); !errors.Is(err, blog.ErrPostNotFound) {
			t.Errorf("Update() of a deleted post error = %v, want ErrPostNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		p, err := store.Insert(ctx, sample(0))
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}

		deleted, err := store.Delete(ctx, p.ID)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if !deleted {
			t.Error("Delete() = false for an existing post")
		}

		if _, err := store.FindByID(ctx, p.ID); !errors.Is(err, blog.ErrPostNotFound) {
			t.Errorf("FindByID() after delete error = %v, want ErrPostNotFound", err)
		}

		deleted, err = store.Delete(ctx, p.ID)
		if err != nil {
			t.Fatalf("second Delete() error = %v", err)
		}
		if deleted {
			t.Error("second Delete() = true, want false")
		}

		deleted, err = store.Delete(ctx, "not-an-id")
		if err != nil || deleted {
			t.Errorf("Delete(malformed id) = %v, %v, want false, nil", deleted, err)
		}
	})

	t.Run("drop", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		if _, err := store.InsertMany(ctx, []blog.Post{sample(0), sample(1)}); err != nil {
			t.Fatalf("InsertMany() error = %v", err)
		}
		if err := store.Drop(ctx); err != nil {
			t.Fatalf("Drop() error = %v", err)
		}

		count, err := store.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if count != 0 {
			t.Errorf("Count() after Drop() = %d, want 0", count)
		}

		// the store is still usable after a drop
		if _, err := store.Insert(ctx, sample(2)); err != nil {
			t.Fatalf("Insert() after Drop() error = %v", err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := newStore(t).Ping(context.Background()); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
	})
}

func assertPostsEqual(t *testing.T, got, want blog.Post) {
	t.Helper()
	if got.ID != want.ID ||
		got.Title != want.Title ||
		got.Content != want.Content ||
		got.Author != want.Author ||
		!got.Created.Equal(want.Created) {
		t.Errorf("post mismatch:\n got: %+v\nwant: %+v", got, want)
	}
}
