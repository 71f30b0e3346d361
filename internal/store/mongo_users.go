package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ayush/gyft/backend/internal/models"
)

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Password  string             `bson:"password"`
	Bio       string             `bson:"bio"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *userDoc) model() *models.User {
	return &models.User{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Password:  d.Password,
		Bio:       d.Bio,
		CreatedAt: d.CreatedAt,
	}
}

// MongoUserStore keeps user records in the users collection.
type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection(usersCollection)}
}

// CreateUser inserts u and fills in its ID and CreatedAt. A unique index
// violation is reported as models.ErrDuplicateCredential.
func (s *MongoUserStore) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	doc := userDoc{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Password:  u.Password,
		Bio:       u.Bio,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrDuplicateCredential
		}
		return nil, fmt.Errorf("mongo insert user: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.model(), nil
}

func (s *MongoUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *MongoUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// EmailTaken reports whether a user other than exceptID holds email.
func (s *MongoUserStore) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	filter := bson.M{"email": email}
	if oid, err := primitive.ObjectIDFromHex(exceptID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}
	n, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("mongo count email: %w", err)
	}
	return n > 0, nil
}

// UpdateProfile overwrites the editable profile fields of one user.
func (s *MongoUserStore) UpdateProfile(ctx context.Context, id string, form models.ProfileForm) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"first_name": form.FirstName,
		"last_name":  form.LastName,
		"email":      form.Email,
		"bio":        form.Bio,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateCredential
		}
		return fmt.Errorf("mongo update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("mongo find user: %w", err)
	}
	return doc.model(), nil
}
