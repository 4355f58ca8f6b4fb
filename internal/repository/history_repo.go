package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cinecluster/internal/models"
)

// HistoryRepository guarda cada consulta de recomendaciones en Mongo.
type HistoryRepository struct {
	col *mongo.Collection
}

func NewHistoryRepository(d *mongo.Database) *HistoryRepository {
	return &HistoryRepository{col: d.Collection("recommendation_history")}
}

func (r *HistoryRepository) Insert(ctx context.Context, e *models.HistoryEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if e.ID == "" {
		e.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, e)
	return err
}

// Recent devuelve las últimas consultas, la más nueva primero.
func (r *HistoryRepository) Recent(ctx context.Context, limit int64) ([]models.HistoryEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.HistoryEntry{}
	for cur.Next(ctx) {
		var e models.HistoryEntry
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}
