package mongodb

import (
	"context"
	"time"

	"github.com/bridgetunes/draw-console-backend/internal/models"
	"github.com/bridgetunes/draw-console-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditEventRepository is the MongoDB implementation of the audit trail
type AuditEventRepository struct {
	collection *mongo.Collection
}

// NewAuditEventRepository creates a new AuditEventRepository
func NewAuditEventRepository(db *mongo.Database) repositories.AuditEventRepository {
	return &AuditEventRepository{
		collection: db.Collection("draw_audit_events"),
	}
}

func (r *AuditEventRepository) Create(ctx context.Context, event *models.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

func (r *AuditEventRepository) FindByDrawDate(ctx context.Context, drawDate string) ([]*models.AuditEvent, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"drawDate": drawDate}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*models.AuditEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*models.AuditEvent{}
	}
	return events, nil
}

func (r *AuditEventRepository) FindAll(ctx context.Context, page, limit int) ([]*models.AuditEvent, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*models.AuditEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*models.AuditEvent{}
	}
	return events, nil
}

func (r *AuditEventRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
