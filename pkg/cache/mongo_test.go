package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeCollection keeps cache documents in a map and can fail the next
// FindOne or ReplaceOne calls with a chosen error.
type fakeCollection struct {
	docs map[string]mongoEntry

	failures  int
	failWith  error
	findCalls int
	saveCalls int
	upserted  bool
}

func newFakeCollection() *fakeCollection {
	return &fakeCollection{docs: map[string]mongoEntry{}}
}

func newFakeMongoCache(coll *fakeCollection) *MongoCache {
	return &MongoCache{coll: coll}
}

var mongoNetErr = mongo.CommandError{
	Message: "connection pool cleared",
	Labels:  []string{"NetworkError"},
}

func (f *fakeCollection) fail() error {
	if f.failures > 0 {
		f.failures--
		return f.failWith
	}
	return nil
}

func idOf(filter any) string {
	id, _ := filter.(bson.M)["_id"].(string)
	return id
}

func (f *fakeCollection) FindOne(_ context.Context, filter any, _ ...*options.FindOneOptions) *mongo.SingleResult {
	f.findCalls++
	if err := f.fail(); err != nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, err, nil)
	}
	doc, ok := f.docs[idOf(filter)]
	if !ok {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(doc, nil, nil)
}

func (f *fakeCollection) ReplaceOne(_ context.Context, filter, replacement any, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	f.saveCalls++
	if err := f.fail(); err != nil {
		return nil, err
	}
	for _, o := range opts {
		if o.Upsert != nil && *o.Upsert {
			f.upserted = true
		}
	}
	f.docs[idOf(filter)] = replacement.(mongoEntry)
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (f *fakeCollection) DeleteOne(_ context.Context, filter any, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	id := idOf(filter)
	if _, ok := f.docs[id]; !ok {
		return &mongo.DeleteResult{}, nil
	}
	delete(f.docs, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func (f *fakeCollection) DeleteMany(_ context.Context, _ any, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	n := int64(len(f.docs))
	f.docs = map[string]mongoEntry{}
	return &mongo.DeleteResult{DeletedCount: n}, nil
}

func TestMongoCacheWithFakeCollection(t *testing.T) {
	coll := newFakeCollection()
	exercise(t, newFakeMongoCache(coll))
	if !coll.upserted {
		t.Error("Set should upsert")
	}
}

func TestMongoCacheExpiry(t *testing.T) {
	ctx := context.Background()
	coll := newFakeCollection()
	c := newFakeMongoCache(coll)

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if at := coll.docs["k"].ExpiresAt; at == nil || at.Before(time.Now()) {
		t.Fatalf("expires_at = %v, want about an hour from now", at)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("unexpired entry should hit")
	}

	past := time.Now().Add(-time.Minute)
	coll.docs["k"] = mongoEntry{Key: "k", Data: []byte("v"), ExpiresAt: &past}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("expired Get = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if at := coll.docs["forever"].ExpiresAt; at != nil {
		t.Errorf("zero ttl stored expires_at %v", at)
	}
}

func TestMongoCacheRetries(t *testing.T) {
	fastRetries(t)
	ctx := context.Background()
	plain := errors.New("(BadValue) unknown operator")

	tests := []struct {
		name      string
		failures  int
		failWith  error
		wantCalls int
		wantNet   bool
		wantErr   error
	}{
		{name: "network error recovers", failures: 2, failWith: mongoNetErr, wantCalls: 3},
		{name: "network error exhausted", failures: 10, failWith: mongoNetErr, wantCalls: 3, wantNet: true},
		{name: "timeout recovers", failures: 1, failWith: context.DeadlineExceeded, wantCalls: 2},
		{name: "other errors fail fast", failures: 10, failWith: plain, wantCalls: 1, wantErr: plain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll := newFakeCollection()
			coll.docs["k"] = mongoEntry{Key: "k", Data: []byte("v")}
			coll.failures, coll.failWith = tt.failures, tt.failWith

			data, hit, err := newFakeMongoCache(coll).Get(ctx, "k")
			if coll.findCalls != tt.wantCalls {
				t.Errorf("FindOne calls = %d, want %d", coll.findCalls, tt.wantCalls)
			}
			switch {
			case tt.wantNet:
				if hit || !errors.Is(err, ErrNetwork) {
					t.Errorf("Get = hit %v, err %v; want ErrNetwork", hit, err)
				}
			case tt.wantErr != nil:
				if hit || !errors.Is(err, tt.wantErr) {
					t.Errorf("Get = hit %v, err %v; want %v", hit, err, tt.wantErr)
				}
			default:
				if err != nil || !hit || string(data) != "v" {
					t.Errorf("Get = %q, %v, %v", data, hit, err)
				}
			}
		})
	}

	coll := newFakeCollection()
	coll.failures, coll.failWith = 1, mongoNetErr
	if err := newFakeMongoCache(coll).Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if coll.saveCalls != 2 {
		t.Errorf("ReplaceOne calls = %d, want 2", coll.saveCalls)
	}
}

func TestMongoCacheCloseLeavesBorrowedClient(t *testing.T) {
	if err := newFakeMongoCache(newFakeCollection()).Close(); err != nil {
		t.Errorf("Close = %v, want nil for a cache that does not own its client", err)
	}
}
