package database

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/information-sharing-networks/blog-demo/internal/blog"
)

// GeneratePost returns a post with a random author, title and content.
func GeneratePost(f *gofakeit.Faker) blog.Post {
	return blog.Post{
		Author: blog.Author{
			FirstName: f.FirstName(),
			LastName:  f.LastName(),
		},
		Title:   f.Sentence(6),
		Content: f.Paragraph(2, 4, 12, "\n"),
	}
}

// Seed inserts count random posts into store
func Seed(ctx context.Context, store blog.Store, f *gofakeit.Faker, count int) ([]blog.Post, error) {
	if count < 1 {
		return nil, fmt.Errorf("seed count must be at least 1, got %d", count)
	}

	posts := make([]blog.Post, 0, count)
	for range count {
		posts = append(posts, GeneratePost(f))
	}

	inserted, err := store.InsertMany(ctx, posts)
	if err != nil {
		return nil, fmt.Errorf("failed to seed blog posts: %w", err)
	}
	return inserted, nil
}
