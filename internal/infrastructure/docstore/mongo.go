package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoStore keeps one client and one database handle; the driver pools connections
// and is safe for concurrent use.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func OpenMongo(_ context.Context, uri, database string) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return &MongoStore{client: client, db: client.Database(database)}, nil
}

func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{coll: s.db.Collection(name)}
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Backend() string { return "mongo" }

// EnsureIndexes creates the lookup indexes. Event ids are unique; documents written
// before ids were strings have no id and are left out through the partial filter.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(Events).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_event_id").
			SetPartialFilterExpression(bson.D{{Key: "id", Value: bson.D{{Key: "$type", Value: "string"}}}}),
	})
	if err != nil {
		return fmt.Errorf("events index: %w", err)
	}
	for _, name := range []string{Guests, Reminders} {
		_, err := s.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetName("event_id"),
		})
		if err != nil {
			return fmt.Errorf("%s index: %w", name, err)
		}
	}
	_, err = s.db.Collection(Users).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email"),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}
	return nil
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) Find(ctx context.Context, filter Filter, limit int) ([]Document, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := c.coll.Find(ctx, toFilter(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(raw))
	for _, m := range raw {
		out = append(out, fromBSON(m).(Document))
	}
	return out, nil
}

func (c *mongoCollection) FindOne(ctx context.Context, filter Filter) (Document, error) {
	var m bson.M
	err := c.coll.FindOne(ctx, toFilter(filter)).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, err
	}
	return fromBSON(m).(Document), nil
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc Document) error {
	_, err := c.coll.InsertOne(ctx, toBSON(doc))
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}

func (c *mongoCollection) UpdateOne(ctx context.Context, filter Filter, set Document) (int64, error) {
	f := toFilter(filter)
	if len(set) == 0 {
		// $set with an empty document is rejected by the server.
		return c.coll.CountDocuments(ctx, f, options.Count().SetLimit(1))
	}
	res, err := c.coll.UpdateOne(ctx, f, bson.D{{Key: "$set", Value: toBSON(set)}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (c *mongoCollection) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, toFilter(filter))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// toFilter builds an equality filter with a stable key order. A hex _id is matched
// as an ObjectID, which is how the driver assigns record ids.
func toFilter(filter Filter) bson.D {
	out := bson.D{}
	for _, k := range sortedKeys(filter) {
		v := filter[k]
		if s, ok := v.(string); ok && k == KeyID {
			if oid, err := bson.ObjectIDFromHex(s); err == nil {
				v = oid
			}
		}
		out = append(out, bson.E{Key: k, Value: toBSON(v)})
	}
	return out
}

// toBSON encodes maps as ordered documents (sorted keys) so the same logical
// document is always written with the same bytes.
func toBSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		d := make(bson.D, 0, len(t))
		for _, k := range sortedKeys(t) {
			d = append(d, bson.E{Key: k, Value: toBSON(t[k])})
		}
		return d
	case []any:
		a := make(bson.A, 0, len(t))
		for _, x := range t {
			a = append(a, toBSON(x))
		}
		return a
	case []map[string]any:
		a := make(bson.A, 0, len(t))
		for _, x := range t {
			a = append(a, toBSON(x))
		}
		return a
	}
	return v
}

// fromBSON turns decoded driver types into plain Go maps, slices and strings.
func fromBSON(v any) any {
	switch t := v.(type) {
	case bson.M:
		m := make(map[string]any, len(t))
		for k, x := range t {
			m[k] = fromBSON(x)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, x := range t {
			m[k] = fromBSON(x)
		}
		return m
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = fromBSON(e.Value)
		}
		return m
	case bson.A:
		s := make([]any, 0, len(t))
		for _, x := range t {
			s = append(s, fromBSON(x))
		}
		return s
	case []any:
		s := make([]any, 0, len(t))
		for _, x := range t {
			s = append(s, fromBSON(x))
		}
		return s
	case bson.ObjectID:
		return t.Hex()
	case bson.DateTime:
		return t.Time().UTC()
	}
	return v
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
