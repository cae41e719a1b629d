package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/model"
	"github.com/boldserve/boldserve-api/internal/repository"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidMobile      = errors.New("valid mobile number is required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	// Canonical singleton admin account.
	DefaultAdminUserID   = "Admin"
	defaultAdminPassword = "Admin123"

	minMobileLen = 10
)

// NormalizeEmail canonicalizes an address for storage and lookup. Emails are
// unique case-insensitively, so every path trims and lowercases before
// touching the store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Claims is the signed token payload: identity plus role.
type Claims struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, adminRepo repository.AdminRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{userRepo: userRepo, adminRepo: adminRepo, jwtSecret: []byte(jwtSecret), jwtExpiry: jwtExpiry}
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}
	if len(req.Mobile) < minMobileLen {
		return nil, ErrInvalidMobile
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FullName: req.FullName,
		Email:    email,
		Mobile:   req.Mobile,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index catches a concurrent insert between the
		// duplicate check above and this write.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.generateToken(user.ID.Hex(), false, RoleUser)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)}, nil
}

// Login fails with the same error whether the email is unknown or the
// password mismatches, so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	role := RoleUser
	if user.IsAdmin {
		role = RoleAdmin
	}
	token, err := s.generateToken(user.ID.Hex(), user.IsAdmin, role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)}, nil
}

// AdminLogin validates against the singleton admin record. The returned token
// already carries the "Bearer " scheme prefix; callers must not re-add it.
func (s *AuthService) AdminLogin(ctx context.Context, req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	admin, err := s.adminRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(admin.UserID, true, RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	resp := &dto.AdminLoginResponse{Token: "Bearer " + token}
	resp.Admin.UserID = admin.UserID
	resp.Admin.Role = RoleAdmin
	return resp, nil
}

// VerifyToken checks signature and expiry and returns the embedded claims.
func (s *AuthService) VerifyToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// VerifyEmail reports whether an account exists for the email.
func (s *AuthService) VerifyEmail(ctx context.Context, email string) (bool, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	return user != nil, nil
}

// EnsureSingletonAdmin reconciles the admin collection at startup: creates
// the default account when none exists and prunes any record besides the
// canonical one.
func (s *AuthService) EnsureSingletonAdmin(ctx context.Context) error {
	if _, err := s.adminRepo.DeleteAllExcept(ctx, DefaultAdminUserID); err != nil {
		return err
	}
	admin, err := s.adminRepo.GetByUserID(ctx, DefaultAdminUserID)
	if err != nil {
		return err
	}
	if admin != nil {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	return s.adminRepo.Create(ctx, &model.Admin{
		UserID:   DefaultAdminUserID,
		Password: string(hashed),
		Role:     RoleAdmin,
	})
}

func (s *AuthService) generateToken(userID string, isAdmin bool, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}
