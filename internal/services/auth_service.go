package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"restomart/internal/caching"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and JWT/refresh token management.
type AuthService interface {
	Register(ctx context.Context, businessName, fullName, email, password string) (*models.TokenResponse, *models.User, error)
	Login(ctx context.Context, email, password string) (*models.TokenResponse, *models.User, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	Me(ctx context.Context, businessID, userID uuid.UUID) (*models.User, *models.Business, error)
	GenerateTokens(ctx context.Context, user *models.User) (*models.TokenResponse, error)
}

// TokenClaims are the JWT claims carried by access tokens. Role travels in the
// token so permission checks never need a DB round trip.
type TokenClaims struct {
	UserID     string `json:"user_id"`
	BusinessID string `json:"business_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo     repositories.UserRepository
	businessRepo repositories.BusinessRepository
	cacheSvc     caching.CacheService
	jwtSecret    []byte
	tokenTTL     int // Access token TTL in seconds
	refreshTTL   int // Refresh token TTL in seconds
}

func NewAuthService(userRepo repositories.UserRepository, businessRepo repositories.BusinessRepository,
	cacheSvc caching.CacheService, jwtSecret string, tokenTTLSeconds, refreshTTLSeconds int) AuthService {
	return &authService{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		cacheSvc:     cacheSvc,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTLSeconds,
		refreshTTL:   refreshTTLSeconds,
	}
}

// Register creates a business together with its owner account.
func (s *authService) Register(ctx context.Context, businessName, fullName, email, password string) (*models.TokenResponse, *models.User, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	business := &models.Business{
		ID:     uuid.New(),
		Name:   businessName,
		Status: "active",
	}
	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, nil, fmt.Errorf("failed to create business: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		BusinessID:   business.ID,
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     fullName,
		Role:         models.RoleOwner,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to create owner account: %w", err)
	}

	tokens, err := s.GenerateTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenResponse, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.GenerateTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

// Refresh rotates the refresh token: the presented token is invalidated even
// when it is still within its TTL.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	tokenHash := hashToken(refreshToken)
	cacheKey := fmt.Sprintf("restomart:refresh_token:%s", tokenHash)

	userIDStr, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Role or active status may have changed since issuance; re-read the user.
	user, err := s.userRepo.GetAnyByID(ctx, userID)
	if err != nil || user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := s.cacheSvc.Delete(ctx, cacheKey); err != nil {
		log.Printf("Failed to invalidate rotated refresh token: %v", err)
	}

	return s.GenerateTokens(ctx, user)
}

func (s *authService) Me(ctx context.Context, businessID, userID uuid.UUID) (*models.User, *models.Business, error) {
	user, err := s.userRepo.GetByID(ctx, businessID, userID)
	if err != nil {
		return nil, nil, err
	}
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, nil, err
	}
	return user, business, nil
}

func (s *authService) GenerateTokens(ctx context.Context, user *models.User) (*models.TokenResponse, error) {
	now := time.Now()

	claims := TokenClaims{
		UserID:     user.ID.String(),
		BusinessID: user.BusinessID.String(),
		Role:       user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "restomart-auth",
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{"restomart-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	refreshToken, err := generateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	cacheKey := fmt.Sprintf("restomart:refresh_token:%s", hashToken(refreshToken))
	if err := s.cacheSvc.SetString(ctx, cacheKey, user.ID.String(), time.Duration(s.refreshTTL)*time.Second); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.TokenResponse{
		AccessToken:  accessTokenString,
		TokenType:    "Bearer",
		ExpiresIn:    s.tokenTTL,
		RefreshToken: refreshToken,
		UserID:       user.ID.String(),
		BusinessID:   user.BusinessID.String(),
		IssuedAt:     now,
	}, nil
}

func generateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
