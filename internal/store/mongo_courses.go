package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/gyft/backend/internal/models"
)

// MongoCourseStore handles course documents. Every read and delete filters
// on the owner as well as the id.
type MongoCourseStore struct {
	col *mongo.Collection
}

func NewMongoCourseStore(db *mongo.Database) *MongoCourseStore {
	return &MongoCourseStore{col: db.Collection(coursesCollection)}
}

// Insert stores c, assigning an ID and CreatedAt when they are unset.
func (s *MongoCourseStore) Insert(ctx context.Context, c *models.Course) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if _, err := s.col.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("mongo insert course: %w", err)
	}
	return nil
}

func (s *MongoCourseStore) ListByUser(ctx context.Context, userID string) ([]models.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find courses: %w", err)
	}
	defer cur.Close(ctx)

	var courses []models.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("mongo decode courses: %w", err)
	}
	return courses, nil
}

func (s *MongoCourseStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("mongo count courses: %w", err)
	}
	return n, nil
}

func (s *MongoCourseStore) GetForUser(ctx context.Context, id, userID string) (*models.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	var c models.Course
	err = s.col.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("mongo find course: %w", err)
	}
	return &c, nil
}

func (s *MongoCourseStore) DeleteForUser(ctx context.Context, id, userID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("mongo delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
