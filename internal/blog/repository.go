package blog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("blog post not found")

// Repository is the read-only persistence seam for blog posts.
type Repository interface {
	// List returns the card projection for every post, newest first
	// (createdAt descending).
	List(ctx context.Context) ([]Card, error)
	Get(ctx context.Context, id string) (*Post, error)
}
