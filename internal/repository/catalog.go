package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/boldserve/boldserve-api/internal/model"
)

type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Service, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Service, error)
	List(ctx context.Context, category, subCategory string) ([]model.Service, error)
	Search(ctx context.Context, term string) ([]model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type mongoServiceRepo struct{ col *mongo.Collection }

func NewServiceRepository(db *mongo.Database) ServiceRepository {
	return &mongoServiceRepo{col: db.Collection("services")}
}

func (r *mongoServiceRepo) Create(ctx context.Context, svc *model.Service) error {
	now := time.Now().UTC()
	svc.ID = primitive.NewObjectID()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	if svc.Images == nil {
		svc.Images = []string{}
	}
	if _, err := r.col.InsertOne(ctx, svc); err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

func (r *mongoServiceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Service, error) {
	svc := &model.Service{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(svc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return svc, nil
}

// GetByIDs resolves a batch of product references. Missing ids are simply
// absent from the result map.
func (r *mongoServiceRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Service, error) {
	out := make(map[primitive.ObjectID]model.Service, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("get services: %w", err)
	}
	var services []model.Service
	if err := cur.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	for _, svc := range services {
		out[svc.ID] = svc
	}
	return out, nil
}

// List returns services, optionally filtered by canonical category and
// subcategory. Documents are stored with canonical taxonomy strings, so the
// match is a plain equality.
func (r *mongoServiceRepo) List(ctx context.Context, category, subCategory string) ([]model.Service, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if subCategory != "" {
		filter["subCategory"] = subCategory
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	var services []model.Service
	if err := cur.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return services, nil
}

// Search matches term as a case-insensitive substring against the product
// name and subcategory.
func (r *mongoServiceRepo) Search(ctx context.Context, term string) ([]model.Service, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	cur, err := r.col.Find(ctx, bson.M{"$or": bson.A{
		bson.M{"productName": pattern},
		bson.M{"subCategory": pattern},
	}})
	if err != nil {
		return nil, fmt.Errorf("search services: %w", err)
	}
	var services []model.Service
	if err := cur.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return services, nil
}

func (r *mongoServiceRepo) Update(ctx context.Context, svc *model.Service) error {
	svc.UpdatedAt = time.Now().UTC()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": svc.ID}, svc)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

func (r *mongoServiceRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete service: %w", err)
	}
	return res.DeletedCount > 0, nil
}
