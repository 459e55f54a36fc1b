package tokenRepo

import (
	"context"
	"fmt"
	"time"

	"salonflow/database"
	"salonflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TokenRepository persists management tokens. A token maps to exactly one booking.
type TokenRepository interface {
	Insert(ctx context.Context, token *models.ManagementToken) error
	FindByToken(ctx context.Context, token string) (*models.ManagementToken, error)
}

// MongoTokenRepo implements TokenRepository using MongoDB.
type MongoTokenRepo struct {
	coll *mongo.Collection
}

// NewMongoTokenRepo creates a new instance of TokenRepository using MongoDB.
func NewMongoTokenRepo() TokenRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("manage_tokens")
	repo := &MongoTokenRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create token indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoTokenRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoTokenRepo) Insert(ctx context.Context, token *models.ManagementToken) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(cctx, token); err != nil {
		return fmt.Errorf("failed to insert management token: %w", err)
	}
	return nil
}

func (r *MongoTokenRepo) FindByToken(ctx context.Context, token string) (*models.ManagementToken, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec models.ManagementToken
	if err := r.coll.FindOne(cctx, bson.M{"token": token}).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up management token: %w", err)
	}
	return &rec, nil
}
