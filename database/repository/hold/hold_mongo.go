package holdRepo

import (
	"context"
	"fmt"
	"time"

	"salonflow/database"
	"salonflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoHoldRepo implements HoldRepository using MongoDB.
type MongoHoldRepo struct {
	coll *mongo.Collection
}

// NewMongoHoldRepo creates a new instance of HoldRepository using MongoDB.
func NewMongoHoldRepo() HoldRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("holds")
	repo := &MongoHoldRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create hold indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoHoldRepo) Insert(ctx context.Context, hold *models.Hold) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(cctx, hold); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateActiveHold
		}
		return fmt.Errorf("failed to insert hold: %w", err)
	}
	return nil
}

func (r *MongoHoldRepo) GetByID(ctx context.Context, id string) (*models.Hold, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var hold models.Hold
	if err := r.coll.FindOne(cctx, bson.M{"id": id}).Decode(&hold); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch hold %s: %w", id, err)
	}
	return &hold, nil
}

func (r *MongoHoldRepo) FindBlockingBySlot(ctx context.Context, salonID, date string, minute int, now time.Time) (*models.Hold, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"salon_id":   salonID,
		"date":       date,
		"time":       minute,
		"state":      bson.M{"$in": []string{models.HoldStateActive, models.HoldStateVerified}},
		"expires_at": bson.M{"$gt": now},
	}
	var hold models.Hold
	if err := r.coll.FindOne(cctx, filter).Decode(&hold); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query holds for slot: %w", err)
	}
	return &hold, nil
}

func (r *MongoHoldRepo) FindActiveRecordBySlot(ctx context.Context, salonID, date string, minute int) (*models.Hold, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"salon_id": salonID,
		"date":     date,
		"time":     minute,
		"state":    models.HoldStateActive,
	}
	var hold models.Hold
	if err := r.coll.FindOne(cctx, filter).Decode(&hold); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query active hold record: %w", err)
	}
	return &hold, nil
}

func (r *MongoHoldRepo) CompareAndSwapState(ctx context.Context, id, from, to string) (bool, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(cctx,
		bson.M{"id": id, "state": from},
		bson.M{"$set": bson.M{"state": to}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to transition hold %s: %w", id, err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *MongoHoldRepo) SetConsumed(ctx context.Context, id, bookingID, manageURL string) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(cctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"state":      models.HoldStateConsumed,
			"booking_id": bookingID,
			"manage_url": manageURL,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to consume hold %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("hold %s not found", id)
	}
	return nil
}

func (r *MongoHoldRepo) MarkExpiredDue(ctx context.Context, now time.Time) (int64, error) {
	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.coll.UpdateMany(cctx,
		bson.M{
			"state":      models.HoldStateActive,
			"expires_at": bson.M{"$lte": now},
		},
		bson.M{"$set": bson.M{"state": models.HoldStateExpired}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired holds: %w", err)
	}
	return res.ModifiedCount, nil
}
