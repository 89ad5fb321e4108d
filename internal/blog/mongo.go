package blog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aalokdeep/workbench-api/internal/store"
)

// MongoRepository reads posts from the gateway's blogs collection.
type MongoRepository struct {
	gw *store.Gateway
}

func NewMongoRepository(gw *store.Gateway) *MongoRepository {
	return &MongoRepository{gw: gw}
}

var cardProjection = bson.M{"_id": 0, "id": 1, "title": 1, "summary": 1, "tags": 1, "createdAt": 1, "heroImage": 1}

func (r *MongoRepository) List(ctx context.Context) ([]Card, error) {
	col, err := r.gw.Blogs(ctx)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetProjection(cardProjection).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := col.Find(ctx, bson.M{}, opts)
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

func (r *MongoRepository) Get(ctx context.Context, id string) (*Post, error) {
	col, err := r.gw.Blogs(ctx)
	if err != nil {
		return nil, err
	}
	var p Post
	if err := col.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
