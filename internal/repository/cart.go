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

type CartRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
}

type mongoCartRepo struct{ col *mongo.Collection }

func NewCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepo{col: db.Collection("carts")}
}

func (r *mongoCartRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*model.Cart, error) {
	cart := &model.Cart{}
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// Save upserts the whole cart document keyed by owner. Mutations are
// read-modify-write on the full item list; concurrent writers can race and
// one update may be lost (accepted, see the concurrency notes).
func (r *mongoCartRepo) Save(ctx context.Context, cart *model.Cart) error {
	now := time.Now().UTC()
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": cart.UserID},
		bson.M{
			"$set":         bson.M{"items": cart.Items, "updatedAt": now},
			"$setOnInsert": bson.M{"userId": cart.UserID, "createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
