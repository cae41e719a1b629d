package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/model"
	"github.com/boldserve/boldserve-api/internal/repository"
)

type mockUserRepo struct {
	byEmail map[string]*model.User
	byID    map[primitive.ObjectID]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byEmail: make(map[string]*model.User),
		byID:    make(map[primitive.ObjectID]*model.User),
	}
}

func (m *mockUserRepo) add(user *model.User) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
}

func (m *mockUserRepo) EnsureIndexes(_ context.Context) error { return nil }

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if _, exists := m.byEmail[user.Email]; exists {
		return repository.ErrDuplicateKey
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.add(user)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	return m.byID[id], nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return m.byEmail[email], nil
}

func (m *mockUserRepo) EmailTaken(_ context.Context, email string, except primitive.ObjectID) (bool, error) {
	user, ok := m.byEmail[email]
	return ok && user.ID != except, nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, fields bson.M) (*model.User, error) {
	user := m.byID[id]
	if user == nil {
		return nil, nil
	}
	if email, ok := fields["email"].(string); ok {
		delete(m.byEmail, user.Email)
		user.Email = email
		m.byEmail[email] = user
	}
	if address, ok := fields["address"].(string); ok {
		user.Address = address
	}
	if bio, ok := fields["bio"].(string); ok {
		user.Bio = bio
	}
	return user, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(m.byID))
	for _, u := range m.byID {
		users = append(users, *u)
	}
	return users, nil
}

func (m *mockUserRepo) CountCustomers(_ context.Context) (int64, error) {
	var n int64
	for _, u := range m.byID {
		if !u.IsAdmin {
			n++
		}
	}
	return n, nil
}

type mockAdminRepo struct {
	admins map[string]*model.Admin
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[string]*model.Admin)}
}

func (m *mockAdminRepo) GetByUserID(_ context.Context, userID string) (*model.Admin, error) {
	return m.admins[userID], nil
}

func (m *mockAdminRepo) Create(_ context.Context, admin *model.Admin) error {
	admin.ID = primitive.NewObjectID()
	m.admins[admin.UserID] = admin
	return nil
}

func (m *mockAdminRepo) DeleteAllExcept(_ context.Context, userID string) (int64, error) {
	var deleted int64
	for id := range m.admins {
		if id != userID {
			delete(m.admins, id)
			deleted++
		}
	}
	return deleted, nil
}

func newTestAuthService(users *mockUserRepo, admins *mockAdminRepo) *AuthService {
	return NewAuthService(users, admins, "test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	users := newMockUserRepo()
	svc := newTestAuthService(users, newMockAdminRepo())

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "John Doe", Email: "john@example.com",
		Password: "password123", Mobile: "9876543210",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "john@example.com", resp.User.Email)

	claims, err := svc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, RoleUser, claims.Role)

	stored := users.byEmail["john@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.Password)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newMockUserRepo()
	users.add(&model.User{Email: "john@example.com"})
	svc := newTestAuthService(users, newMockAdminRepo())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "John Doe", Email: "john@example.com",
		Password: "password123", Mobile: "9876543210",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_EmailCaseInsensitive(t *testing.T) {
	users := newMockUserRepo()
	svc := newTestAuthService(users, newMockAdminRepo())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "John Doe", Email: "John@Example.com",
		Password: "password123", Mobile: "9876543210",
	})
	require.NoError(t, err)
	require.NotNil(t, users.byEmail["john@example.com"])

	// Any case variant resolves to the same account.
	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "john@example.com", Password: "password123",
	})
	assert.NoError(t, err)

	_, err = svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "John Doe", Email: "JOHN@EXAMPLE.COM",
		Password: "password123", Mobile: "9876543210",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	exists, err := svc.VerifyEmail(context.Background(), "  John@EXAMPLE.com ")
	require.NoError(t, err)
	assert.True(t, exists)
}

// racingUserRepo hides the existing account from the pre-insert read, so the
// duplicate only surfaces as the store's unique-index violation.
type racingUserRepo struct{ *mockUserRepo }

func (r *racingUserRepo) GetByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, nil
}

func TestAuthService_Register_ConcurrentDuplicate(t *testing.T) {
	users := newMockUserRepo()
	users.add(&model.User{Email: "john@example.com"})
	svc := NewAuthService(&racingUserRepo{users}, newMockAdminRepo(), "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "John Doe", Email: "john@example.com",
		Password: "password123", Mobile: "9876543210",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_Register_ShortMobile(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo(), newMockAdminRepo())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "John Doe", Email: "john@example.com",
		Password: "password123", Mobile: "12345",
	})
	assert.ErrorIs(t, err, ErrInvalidMobile)
}

func TestAuthService_Login(t *testing.T) {
	users := newMockUserRepo()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	users.add(&model.User{Email: "john@example.com", Password: string(hashed)})
	svc := newTestAuthService(users, newMockAdminRepo())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "john@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newMockUserRepo()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	users.add(&model.User{Email: "john@example.com", Password: string(hashed)})
	svc := newTestAuthService(users, newMockAdminRepo())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "john@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo(), newMockAdminRepo())

	// Unknown account and bad password must be indistinguishable.
	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_AdminLogin(t *testing.T) {
	admins := newMockAdminRepo()
	svc := newTestAuthService(newMockUserRepo(), admins)
	require.NoError(t, svc.EnsureSingletonAdmin(context.Background()))

	resp, err := svc.AdminLogin(context.Background(), dto.AdminLoginRequest{
		UserID: "Admin", Password: "Admin123",
	})
	require.NoError(t, err)
	assert.True(t, len(resp.Token) > 7 && resp.Token[:7] == "Bearer ")
	assert.Equal(t, "Admin", resp.Admin.UserID)
	assert.Equal(t, RoleAdmin, resp.Admin.Role)

	claims, err := svc.VerifyToken(resp.Token[7:])
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestAuthService_AdminLogin_WrongPassword(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo(), newMockAdminRepo())
	require.NoError(t, svc.EnsureSingletonAdmin(context.Background()))

	_, err := svc.AdminLogin(context.Background(), dto.AdminLoginRequest{
		UserID: "Admin", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), newMockAdminRepo(), "test-secret", -time.Minute)

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "John Doe", Email: "john@example.com",
		Password: "password123", Mobile: "9876543210",
	})
	require.NoError(t, err)

	_, err = svc.VerifyToken(resp.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuthService_VerifyToken_Garbage(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo(), newMockAdminRepo())

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthService_EnsureSingletonAdmin(t *testing.T) {
	admins := newMockAdminRepo()
	svc := newTestAuthService(newMockUserRepo(), admins)

	require.NoError(t, svc.EnsureSingletonAdmin(context.Background()))
	require.Len(t, admins.admins, 1)

	created := admins.admins["Admin"]
	require.NotNil(t, created)
	assert.Equal(t, RoleAdmin, created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("Admin123")))

	// Running again must not touch the existing record.
	require.NoError(t, svc.EnsureSingletonAdmin(context.Background()))
	assert.Same(t, created, admins.admins["Admin"])
}

func TestAuthService_EnsureSingletonAdmin_PrunesExtras(t *testing.T) {
	admins := newMockAdminRepo()
	admins.admins["Admin"] = &model.Admin{UserID: "Admin", Password: "hash", Role: RoleAdmin}
	admins.admins["rogue"] = &model.Admin{UserID: "rogue", Password: "hash", Role: RoleAdmin}
	svc := newTestAuthService(newMockUserRepo(), admins)

	require.NoError(t, svc.EnsureSingletonAdmin(context.Background()))
	assert.Len(t, admins.admins, 1)
	assert.NotNil(t, admins.admins["Admin"])
}
