package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/model"
)

func TestUserService_UpdateProfile(t *testing.T) {
	users := newMockUserRepo()
	user := &model.User{Email: "old@example.com"}
	users.add(user)
	svc := NewUserService(users, nil)

	email := "new@example.com"
	bio := "stationery enthusiast"
	resp, err := svc.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{
		Email: &email, Bio: &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.Email)
	assert.Equal(t, "stationery enthusiast", resp.Bio)
}

func TestUserService_UpdateProfile_DuplicateEmail(t *testing.T) {
	users := newMockUserRepo()
	users.add(&model.User{Email: "taken@example.com"})
	user := &model.User{Email: "me@example.com"}
	users.add(user)
	svc := NewUserService(users, nil)

	email := "taken@example.com"
	_, err := svc.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{Email: &email})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserService_UpdateProfile_NormalizesEmail(t *testing.T) {
	users := newMockUserRepo()
	user := &model.User{Email: "old@example.com"}
	users.add(user)
	svc := NewUserService(users, nil)

	email := " NEW@Example.COM "
	resp, err := svc.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.Email)
}

func TestUserService_UpdateProfile_DuplicateEmailCaseVariant(t *testing.T) {
	users := newMockUserRepo()
	users.add(&model.User{Email: "taken@example.com"})
	user := &model.User{Email: "me@example.com"}
	users.add(user)
	svc := NewUserService(users, nil)

	email := "TAKEN@example.com"
	_, err := svc.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{Email: &email})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserService_UpdateProfile_SameEmail(t *testing.T) {
	users := newMockUserRepo()
	user := &model.User{Email: "me@example.com"}
	users.add(user)
	svc := NewUserService(users, nil)

	// Re-submitting the current email is not a conflict.
	email := "me@example.com"
	resp, err := svc.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", resp.Email)
}

func TestUserService_Resolve_Missing(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), nil)

	_, err := svc.Resolve(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_CountCustomers(t *testing.T) {
	users := newMockUserRepo()
	users.add(&model.User{Email: "a@example.com"})
	users.add(&model.User{Email: "admin@example.com", IsAdmin: true})
	svc := NewUserService(users, nil)

	n, err := svc.CountCustomers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
