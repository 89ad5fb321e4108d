package project

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("project not found")
	ErrDuplicateID = errors.New("project id already exists")
)

// Repository is the persistence seam for projects. The Mongo implementation
// backs production; the memory implementation backs unit tests.
type Repository interface {
	// List returns the card projection for every project, unordered.
	List(ctx context.Context) ([]Card, error)
	Get(ctx context.Context, id string) (*Project, error)
	Exists(ctx context.Context, id string) (bool, error)
	// Create inserts a new document; ErrDuplicateID when id is already taken.
	Create(ctx context.Context, p *Project) error
	// Replace swaps the full document keyed by p.ID; ErrNotFound when absent.
	Replace(ctx context.Context, p *Project) error
}
