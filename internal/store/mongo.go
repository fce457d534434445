package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore implements Backend on a MongoDB database. Document keys are
// stored as _id; documents written by other tools keep their own _id and
// are matched by field filters.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}
	return &MongoStore{client: client, db: client.Database(database)}, nil
}

func (s *MongoStore) FindOne(ctx context.Context, collection string, filter Filter) (Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M(filter)).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromBSON(raw), nil
}

func (s *MongoStore) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	if filter == nil {
		filter = Filter{}
	}
	cur, err := s.db.Collection(collection).Find(ctx, bson.M(filter))
	if err != nil {
		return nil, err
	}
	var raws []bson.M
	if err := cur.All(ctx, &raws); err != nil {
		return nil, err
	}

	docs := make([]Document, len(raws))
	for i, raw := range raws {
		docs[i] = fromBSON(raw)
	}
	return docs, nil
}

func (s *MongoStore) Count(ctx context.Context, collection string) (int, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.M{})
	return int(n), err
}

func (s *MongoStore) InsertIfAbsent(ctx context.Context, collection, key string, doc Document) (bool, error) {
	if key == "" {
		key = uuid.NewString()
	}
	_, err := s.db.Collection(collection).InsertOne(ctx, bson.M(doc.clone(Document{"_id": key})))
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MongoStore) Update(ctx context.Context, collection string, filter Filter, set Document) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M(filter), bson.M{"$set": bson.M(set)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// fromBSON drops _id and converts driver-specific values into the plain
// types Document promises.
func fromBSON(raw bson.M) Document {
	doc := make(Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		doc[k] = plainValue(v)
	}
	return doc
}

func plainValue(v any) any {
	switch v := v.(type) {
	case primitive.DateTime:
		return v.Time()
	case int32:
		return int64(v)
	case bson.M:
		return fromBSON(v)
	case primitive.A:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = plainValue(e)
		}
		return out
	}
	return v
}
