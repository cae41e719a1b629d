package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/model"
	"github.com/boldserve/boldserve-api/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// userCacheTTL bounds how long a deleted or altered account can still pass
// the per-request lookup. Profile updates invalidate explicitly.
const userCacheTTL = 30 * time.Second

type UserService struct {
	userRepo    repository.UserRepository
	redisClient *redis.Client
}

func NewUserService(userRepo repository.UserRepository, redisClient *redis.Client) *UserService {
	return &UserService{userRepo: userRepo, redisClient: redisClient}
}

// Resolve fetches the user behind a token's identity, through a short-TTL
// cache. User-authenticated routes call this on every request so a removed
// account stops authorizing promptly.
func (s *UserService) Resolve(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	cacheKey := "user:" + id.Hex()

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			user := &model.User{}
			if json.Unmarshal([]byte(cached), user) == nil {
				return user, nil
			}
		}
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, userCacheTTL)
		}
	}
	return user, nil
}

func (s *UserService) Profile(ctx context.Context, id primitive.ObjectID) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile changes email, address and/or bio. Email uniqueness is
// re-checked against every other account before the write.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	fields := bson.M{}
	if req.Email != nil {
		if email := NormalizeEmail(*req.Email); email != user.Email {
			taken, err := s.userRepo.EmailTaken(ctx, email, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrDuplicateEmail
			}
			fields["email"] = email
		}
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}

	if len(fields) == 0 {
		resp := dto.ToUserResponse(user)
		return &resp, nil
	}

	updated, err := s.userRepo.UpdateProfile(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	s.invalidate(ctx, id)

	resp := dto.ToUserResponse(updated)
	return &resp, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// CountCustomers counts non-admin accounts.
func (s *UserService) CountCustomers(ctx context.Context) (int64, error) {
	n, err := s.userRepo.CountCustomers(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (s *UserService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, "user:"+id.Hex())
	}
}
