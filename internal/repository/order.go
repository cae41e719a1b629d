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

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error)
	List(ctx context.Context, status string) ([]model.Order, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type mongoOrderRepo struct{ col *mongo.Collection }

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepo{col: db.Collection("orders")}
}

func (r *mongoOrderRepo) Create(ctx context.Context, order *model.Order) error {
	now := time.Now().UTC()
	order.ID = primitive.NewObjectID()
	order.CreatedAt = now
	order.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *mongoOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	order := &model.Order{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// List returns orders newest first. A status filter is an exact match; an
// unknown status simply yields an empty list.
func (r *mongoOrderRepo) List(ctx context.Context, status string) ([]model.Order, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders := []model.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (r *mongoOrderRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Order, error) {
	fields["updatedAt"] = time.Now().UTC()
	order := &model.Order{}
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return order, nil
}

func (r *mongoOrderRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoOrderRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}
