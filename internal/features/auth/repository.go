package auth

import (
	"context"
	"errors"
	"time"

	"go-datasync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrUserNotFound is returned for lookups of unknown usernames or ids.
var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
}

type UserRepositoryImpl struct {
	collection *mongo.Collection
}

func NewUserRepository(db *database.MongodbDB) UserRepository {
	return &UserRepositoryImpl{
		collection: db.DB.Collection("users"),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, u)
	return err
}

func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
