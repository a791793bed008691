package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pantrybase/backend/internal/models"
	"github.com/pantrybase/backend/internal/types"
)

const tokenTTL = 24 * time.Hour

// AuthService handles registration, login and token lifecycle. The redis
// client backs the logout denylist and may be nil in tests.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	redis     *redis.Client
}

func NewAuthService(db *gorm.DB, jwtSecret string, redisClient *redis.Client) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		redis:     redisClient,
	}
}

// Register creates a user account and its profile in one transaction. The
// profile always exists for a registered user.
func (s *AuthService) Register(ctx context.Context, name, email, username, password string) (*models.User, *models.UserProfile, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, nil, fmt.Errorf("%w: email already registered", ErrAlreadyExists)
	}
	var existingProfile models.UserProfile
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&existingProfile).Error; err == nil {
		return nil, nil, fmt.Errorf("%w: username already taken", ErrAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	profile := models.UserProfile{Username: username}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &user, &profile, nil
}

// Login verifies credentials and returns the account with its profile.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *models.UserProfile, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		return nil, nil, err
	}

	return &user, &profile, nil
}

// GenerateToken issues a signed JWT for the given account.
func (s *AuthService) GenerateToken(user *models.User, profile *models.UserProfile) (string, error) {
	now := time.Now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID:      user.ID,
		Username:    profile.Username,
		IsSuperuser: user.IsSuperuser,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a token, rejecting logged-out tokens
// via the redis denylist.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	var claims types.TokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if s.redis != nil && claims.ID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if n, err := s.redis.Exists(ctx, denylistKey(claims.ID)).Result(); err == nil && n > 0 {
			return nil, errors.New("token has been revoked")
		}
	}

	return &claims, nil
}

// Logout revokes the token by denylisting its ID until it would have
// expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *types.TokenClaims) error {
	if s.redis == nil || claims.ID == "" {
		return nil
	}
	ttl := tokenTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.redis.Set(ctx, denylistKey(claims.ID), "1", ttl).Err()
}

func denylistKey(tokenID string) string {
	return "auth:denylist:" + tokenID
}
