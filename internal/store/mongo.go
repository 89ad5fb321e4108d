// Package store owns the process-wide MongoDB handles. Connection and
// collection handles are constructed lazily on first use and memoized; a
// missing connection string is an error surfaced to the caller at call time,
// never a startup crash.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aalokdeep/workbench-api/internal/config"
)

// ErrNotConfigured indicates the database connection string is absent.
var ErrNotConfigured = errors.New("MONGODB_URI environment variable not set")

const (
	projectsCollection = "projects"
	blogsCollection    = "blogs"
)

// Gateway hands out memoized collection handles for the two logical
// collections. Failed attempts are not memoized so a transient outage at
// startup does not poison the process.
type Gateway struct {
	cfg config.MongoDBConfig

	mu       sync.Mutex
	client   *mongo.Client
	projects *mongo.Collection
	blogs    *mongo.Collection
}

func NewGateway(cfg config.MongoDBConfig) *Gateway {
	return &Gateway{cfg: cfg}
}

// connect establishes the client on first use. Caller must hold g.mu.
func (g *Gateway) connect(ctx context.Context) (*mongo.Client, error) {
	if g.client != nil {
		return g.client, nil
	}
	if g.cfg.URI == "" {
		return nil, ErrNotConfigured
	}
	cctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()
	client, err := mongo.Connect(cctx, options.Client().ApplyURI(g.cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(cctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	g.client = client
	return client, nil
}

func (g *Gateway) collection(ctx context.Context, name string, memo **mongo.Collection) (*mongo.Collection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if *memo != nil {
		return *memo, nil
	}
	client, err := g.connect(ctx)
	if err != nil {
		return nil, err
	}
	col := client.Database(g.cfg.Database).Collection(name)
	// id is the application primary key; the unique index is the real
	// duplicate-create safety net (handler pre-checks are best effort).
	idx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("ensure %s id index: %w", name, err)
	}
	*memo = col
	return col, nil
}

// Projects returns the projects collection handle, constructing it on first call.
func (g *Gateway) Projects(ctx context.Context) (*mongo.Collection, error) {
	return g.collection(ctx, projectsCollection, &g.projects)
}

// Blogs returns the blogs collection handle, constructing it on first call.
func (g *Gateway) Blogs(ctx context.Context) (*mongo.Collection, error) {
	return g.collection(ctx, blogsCollection, &g.blogs)
}

// Close disconnects the underlying client if one was ever constructed.
func (g *Gateway) Close(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.Disconnect(ctx)
	g.client, g.projects, g.blogs = nil, nil, nil
	return err
}
