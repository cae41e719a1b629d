package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/model"
	"github.com/boldserve/boldserve-api/internal/repository"
	"github.com/boldserve/boldserve-api/internal/taxonomy"
	"github.com/boldserve/boldserve-api/internal/upload"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrTooManyImages   = errors.New("too many images")
)

// UnknownCategoryError carries the valid category list for the response.
type UnknownCategoryError struct{ ValidCategories []string }

func (e *UnknownCategoryError) Error() string { return "invalid category" }

// UnknownSubcategoryError carries the parent's allowed subcategories.
type UnknownSubcategoryError struct {
	Category           string
	ValidSubcategories []string
}

func (e *UnknownSubcategoryError) Error() string { return "invalid subcategory" }

const serviceCacheTTL = 60 * time.Second

type CatalogService struct {
	serviceRepo repository.ServiceRepository
	uploads     *upload.Store
	maxImages   int
	redisClient *redis.Client
}

func NewCatalogService(serviceRepo repository.ServiceRepository, uploads *upload.Store, maxImages int, redisClient *redis.Client) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo, uploads: uploads, maxImages: maxImages, redisClient: redisClient}
}

// Create validates taxonomy membership, stores up to maxImages images and
// persists the record with canonical category strings.
func (s *CatalogService) Create(ctx context.Context, req dto.CreateServiceRequest, images []upload.File) (*model.Service, error) {
	category, subCategory, err := s.resolveTaxonomy(req.Category, req.SubCategory)
	if err != nil {
		return nil, err
	}
	if len(images) > s.maxImages {
		return nil, ErrTooManyImages
	}

	paths := make([]string, 0, len(images))
	for _, img := range images {
		p, err := s.uploads.Save(img)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		paths = append(paths, p)
	}

	svc := &model.Service{
		ProductName: strings.TrimSpace(req.ProductName),
		Category:    category,
		SubCategory: subCategory,
		Price:       req.Price,
		Description: strings.TrimSpace(req.Description),
		Offers:      strings.TrimSpace(req.Offers),
		Review:      strings.TrimSpace(req.Review),
		Rating:      req.Rating,
		Duration:    req.Duration,
		Images:      paths,
		IsAvailable: true,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// ListByCategory validates the pair against the taxonomy, then matches
// records exactly on the canonical strings.
func (s *CatalogService) ListByCategory(ctx context.Context, category, subCategory string) ([]model.Service, error) {
	canonicalCat, canonicalSub, err := s.resolveTaxonomy(category, subCategory)
	if err != nil {
		return nil, err
	}
	return s.serviceRepo.List(ctx, canonicalCat, canonicalSub)
}

// ListAll returns everything, with optional taxonomy filters. Unlike
// ListByCategory it tolerates unknown names by returning no matches.
func (s *CatalogService) ListAll(ctx context.Context, category, subCategory string) ([]model.Service, error) {
	if category != "" {
		if canonical, ok := taxonomy.CanonicalCategory(category); ok {
			category = canonical
		}
	}
	if subCategory != "" {
		if canonical, ok := taxonomy.CanonicalSubcategory(category, subCategory); ok {
			subCategory = canonical
		}
	}
	return s.serviceRepo.List(ctx, category, subCategory)
}

// Search matches term case-insensitively against product name and
// subcategory. An empty term or no matches yields an empty result set.
func (s *CatalogService) Search(ctx context.Context, term string) ([]model.Service, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []model.Service{}, nil
	}
	services, err := s.serviceRepo.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []model.Service{}
	}
	return services, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Service, error) {
	cacheKey := "service:" + id.Hex()

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			svc := &model.Service{}
			if json.Unmarshal([]byte(cached), svc) == nil {
				return svc, nil
			}
		}
	}

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(svc); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, serviceCacheTTL)
		}
	}
	return svc, nil
}

func (s *CatalogService) Update(ctx context.Context, id primitive.ObjectID, req dto.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	if req.ProductName != nil {
		svc.ProductName = strings.TrimSpace(*req.ProductName)
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.Offers != nil {
		svc.Offers = strings.TrimSpace(*req.Offers)
	}
	if req.Review != nil {
		svc.Review = strings.TrimSpace(*req.Review)
	}
	if req.Rating != nil {
		svc.Rating = *req.Rating
	}
	if req.IsAvailable != nil {
		svc.IsAvailable = *req.IsAvailable
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, id)
	return svc, nil
}

func (s *CatalogService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.serviceRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrServiceNotFound
	}
	s.invalidateCache(ctx, id)
	return nil
}

func (s *CatalogService) invalidateCache(ctx context.Context, id primitive.ObjectID) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, "service:"+id.Hex())
	}
}

// resolveTaxonomy canonicalizes a (category, subCategory) pair. An empty
// subCategory is allowed and stays empty.
func (s *CatalogService) resolveTaxonomy(category, subCategory string) (string, string, error) {
	canonicalCat, ok := taxonomy.CanonicalCategory(category)
	if !ok {
		return "", "", &UnknownCategoryError{ValidCategories: taxonomy.Categories()}
	}
	if subCategory == "" {
		return canonicalCat, "", nil
	}
	canonicalSub, ok := taxonomy.CanonicalSubcategory(canonicalCat, subCategory)
	if !ok {
		return "", "", &UnknownSubcategoryError{
			Category:           canonicalCat,
			ValidSubcategories: taxonomy.Subcategories(canonicalCat),
		}
	}
	return canonicalCat, canonicalSub, nil
}
