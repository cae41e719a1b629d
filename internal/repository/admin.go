package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/boldserve/boldserve-api/internal/model"
)

type AdminRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.Admin, error)
	Create(ctx context.Context, admin *model.Admin) error
	DeleteAllExcept(ctx context.Context, userID string) (int64, error)
}

type mongoAdminRepo struct{ col *mongo.Collection }

func NewAdminRepository(db *mongo.Database) AdminRepository {
	return &mongoAdminRepo{col: db.Collection("admins")}
}

func (r *mongoAdminRepo) GetByUserID(ctx context.Context, userID string) (*model.Admin, error) {
	admin := &model.Admin{}
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return admin, nil
}

func (r *mongoAdminRepo) Create(ctx context.Context, admin *model.Admin) error {
	now := time.Now().UTC()
	admin.ID = primitive.NewObjectID()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

// DeleteAllExcept prunes every admin record whose userId differs from the
// canonical one. Keeps the singleton invariant after bad writes.
func (r *mongoAdminRepo) DeleteAllExcept(ctx context.Context, userID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"userId": bson.M{"$ne": userID}})
	if err != nil {
		return 0, fmt.Errorf("prune admins: %w", err)
	}
	return res.DeletedCount, nil
}
