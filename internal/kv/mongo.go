package kv

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type entry struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// Mongo backs the store with one document per key. A Set replaces the whole
// document, which keeps the single-write snapshot contract.
type Mongo struct {
	collection *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{collection: db.Collection("store")}
}

func (s *Mongo) Get(ctx context.Context, key string) (string, bool, error) {
	var e entry
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *Mongo) Set(ctx context.Context, key, value string) error {
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key},
		entry{Key: key, Value: value}, options.Replace().SetUpsert(true))
	return err
}

func (s *Mongo) Delete(ctx context.Context, key string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
