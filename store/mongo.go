package store

import (
	"context"

	"github.com/evdnx/gator/catalog"
	"github.com/evdnx/gator/config"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// document is the stored shape of an entry; _id is the catalog key string.
type document struct {
	ID            string `bson:"_id"`
	catalog.Entry `bson:",inline"`
}

func toDocument(e catalog.Entry) document {
	return document{ID: e.Key.String(), Entry: e}
}

// MongoStore keeps one document per catalog key.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to cfg.URI and checks the connection.
func NewMongoStore(ctx context.Context, cfg config.MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is not set")
	}
	clientOpts := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping mongo")
	}
	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	return &MongoStore{client: client, coll: coll}, nil
}

// NewMongoStoreWithCollection uses an existing collection; Close is then a
// no-op.
func NewMongoStoreWithCollection(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) Save(ctx context.Context, entries []catalog.Entry) error {
	opts := options.Replace().SetUpsert(true)
	for _, e := range entries {
		doc := toDocument(e)
		if _, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc, opts); err != nil {
			return errors.Wrapf(err, "save %s", doc.ID)
		}
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context) ([]catalog.Entry, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "find entries")
	}
	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode entries")
	}
	out := make([]catalog.Entry, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Entry)
	}
	sortEntries(out)
	return out, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
