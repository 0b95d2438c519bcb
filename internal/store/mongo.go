package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/imperialtrucks/truck-market/internal/models"
	"github.com/imperialtrucks/truck-market/internal/truck"
)

// ConnectMongo connects to MongoDB at the given URI and verifies the
// connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Mongo implements truck.Store over a MongoDB collection. Records use
// their truck id as the lookup key, not Mongo object ids, so documents
// round-trip unchanged between backends.
type Mongo struct {
	coll *mongo.Collection
}

// NewMongo wraps a collection as a truck store.
func NewMongo(coll *mongo.Collection) *Mongo {
	return &Mongo{coll: coll}
}

func (s *Mongo) List(ctx context.Context) ([]models.Truck, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, truck.NewUnavailable(err)
	}
	defer cursor.Close(ctx)

	trucks := []models.Truck{}
	if err := cursor.All(ctx, &trucks); err != nil {
		return nil, truck.NewUnavailable(err)
	}
	return trucks, nil
}

func (s *Mongo) Get(ctx context.Context, id string) (*models.Truck, error) {
	var t models.Truck
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, truck.NewNotFound(id)
		}
		return nil, truck.NewUnavailable(err)
	}
	return &t, nil
}

func (s *Mongo) Create(ctx context.Context, patch models.TruckPatch) (*models.Truck, error) {
	t := truck.NormalizeForCreate(patch)
	if _, err := s.coll.InsertOne(ctx, t); err != nil {
		return nil, truck.NewUnavailable(err)
	}
	return &t, nil
}

func (s *Mongo) Update(ctx context.Context, id string, patch models.TruckPatch) (*models.Truck, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := truck.MergePatch(*existing, patch, id)
	result, err := s.coll.ReplaceOne(ctx, bson.M{"id": id}, merged)
	if err != nil {
		return nil, truck.NewUnavailable(err)
	}
	if result.MatchedCount == 0 {
		return nil, truck.NewNotFound(id)
	}
	return &merged, nil
}

func (s *Mongo) Delete(ctx context.Context, id string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return truck.NewUnavailable(err)
	}
	if result.DeletedCount == 0 {
		return truck.NewNotFound(id)
	}
	return nil
}

func (s *Mongo) Replace(ctx context.Context, trucks []models.Truck) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return truck.NewUnavailable(err)
	}
	if len(trucks) == 0 {
		return nil
	}
	docs := make([]interface{}, len(trucks))
	for i, t := range trucks {
		docs[i] = t
	}
	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return truck.NewUnavailable(err)
	}
	return nil
}

func (s *Mongo) Stats(ctx context.Context) (*models.StoreStats, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, truck.NewUnavailable(err)
	}
	return &models.StoreStats{
		Version:     truck.ExportVersion,
		Status:      "healthy",
		TruckCount:  int(count),
		LastChecked: time.Now().UTC(),
	}, nil
}
