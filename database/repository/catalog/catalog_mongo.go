package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"salonflow/database"
	"salonflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceCatalog reads the salon service catalogue maintained by the admin
// surface. The booking core only validates service existence and reads prices.
type ServiceCatalog interface {
	ServiceByID(ctx context.Context, salonID, serviceID string) (*models.Service, error)
}

// MongoServiceCatalog implements ServiceCatalog using MongoDB.
type MongoServiceCatalog struct {
	coll *mongo.Collection
}

// NewMongoServiceCatalog creates a new instance of ServiceCatalog using MongoDB.
func NewMongoServiceCatalog() ServiceCatalog {
	coll := database.MongoClient.Database(database.DBName).Collection("services")
	return &MongoServiceCatalog{coll: coll}
}

func (r *MongoServiceCatalog) ServiceByID(ctx context.Context, salonID, serviceID string) (*models.Service, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": serviceID, "salon_id": salonID, "is_active": true}
	var svc models.Service
	if err := r.coll.FindOne(cctx, filter).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", serviceID, err)
	}
	return &svc, nil
}
