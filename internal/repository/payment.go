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

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Payment, error)
	List(ctx context.Context) ([]model.Payment, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Payment, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

type mongoPaymentRepo struct{ col *mongo.Collection }

func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &mongoPaymentRepo{col: db.Collection("payments")}
}

func (r *mongoPaymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	now := time.Now().UTC()
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *mongoPaymentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Payment, error) {
	payment := &model.Payment{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return payment, nil
}

func (r *mongoPaymentRepo) List(ctx context.Context) ([]model.Payment, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	payments := []model.Payment{}
	if err := cur.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}

func (r *mongoPaymentRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Payment, error) {
	payment := &model.Payment{}
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return payment, nil
}

func (r *mongoPaymentRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete payment: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// TotalRevenue sums the amount of completed payments. Returns 0 when no
// completed payment exists.
func (r *mongoPaymentRepo) TotalRevenue(ctx context.Context) (float64, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": model.PaymentStatusCompleted}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalRevenue": bson.M{"$sum": "$amount"},
		}}},
	})
	if err != nil {
		return 0, fmt.Errorf("aggregate revenue: %w", err)
	}
	var results []struct {
		TotalRevenue float64 `bson:"totalRevenue"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("decode revenue: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].TotalRevenue, nil
}
