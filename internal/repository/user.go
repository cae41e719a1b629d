package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/boldserve/boldserve-api/internal/model"
)

// ErrDuplicateKey reports a unique-index violation on insert.
var ErrDuplicateKey = errors.New("duplicate key")

type UserRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailTaken(ctx context.Context, email string, except primitive.ObjectID) (bool, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	CountCustomers(ctx context.Context) (int64, error)
}

type mongoUserRepo struct{ col *mongo.Collection }

func NewUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepo{col: db.Collection("users")}
}

// EnsureIndexes creates the unique email index. The index backstops the
// read-then-write duplicate check in registration against concurrent inserts.
func (r *mongoUserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *mongoUserRepo) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *mongoUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user := &model.User{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepo) EmailTaken(ctx context.Context, email string, except primitive.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"email": email, "_id": bson.M{"$ne": except}})
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return n > 0, nil
}

func (r *mongoUserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.User, error) {
	fields["updatedAt"] = time.Now().UTC()
	after := options.After
	user := &model.User{}
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepo) List(ctx context.Context) ([]model.User, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// CountCustomers counts non-admin accounts only.
func (r *mongoUserRepo) CountCustomers(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"isAdmin": false})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
