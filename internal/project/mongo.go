package project

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aalokdeep/workbench-api/internal/store"
)

// MongoRepository persists projects in the gateway's projects collection.
// The collection handle is resolved per call so a missing connection string
// surfaces as an error on the request path, not at construction.
type MongoRepository struct {
	gw *store.Gateway
}

func NewMongoRepository(gw *store.Gateway) *MongoRepository {
	return &MongoRepository{gw: gw}
}

var cardProjection = bson.M{"_id": 0, "id": 1, "title": 1, "description": 1, "heroImage": 1}

func (r *MongoRepository) List(ctx context.Context) ([]Card, error) {
	col, err := r.gw.Projects(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := col.Find(ctx, bson.M{}, options.Find().SetProjection(cardProjection))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	cards := []Card{}
	if err := cur.All(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*Project, error) {
	col, err := r.gw.Projects(ctx)
	if err != nil {
		return nil, err
	}
	var p Project
	if err := col.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoRepository) Exists(ctx context.Context, id string) (bool, error) {
	col, err := r.gw.Projects(ctx)
	if err != nil {
		return false, err
	}
	n, err := col.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MongoRepository) Create(ctx context.Context, p *Project) error {
	col, err := r.gw.Projects(ctx)
	if err != nil {
		return err
	}
	if _, err := col.InsertOne(ctx, p); err != nil {
		// the unique id index is the real duplicate guard; the handler's
		// pre-check only catches the common case early
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

func (r *MongoRepository) Replace(ctx context.Context, p *Project) error {
	col, err := r.gw.Projects(ctx)
	if err != nil {
		return err
	}
	res, err := col.ReplaceOne(ctx, bson.M{"id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
