package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"

	"revendapro/internal/adapters/persistence/models"
	"revendapro/internal/adapters/persistence/repositories"
	"revendapro/internal/config"
	"revendapro/internal/core/domain"
	"revendapro/internal/pkg/jwt"
	"revendapro/internal/pkg/password"

	"github.com/google/uuid"
)

// AuthService handles authentication and token rotation
type AuthService struct {
	userRepo  *repositories.UserRepository
	tokenRepo *repositories.RefreshTokenRepository
	jwtConfig config.JWTConfig
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repositories.UserRepository, tokenRepo *repositories.RefreshTokenRepository, jwtConfig config.JWTConfig) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtConfig: jwtConfig,
	}
}

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// TokenPair carries a freshly issued access/refresh token pair
type TokenPair struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"-"`
	User         *models.UserResponse `json:"user"`
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.UserResponse, error) {
	if req.Username == "" || req.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	if existing, _ := s.userRepo.GetByUsername(ctx, req.Username); existing != nil {
		return nil, domain.ErrDuplicateEntry
	}
	if existing, _ := s.userRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, domain.ErrDuplicateEntry
	}

	role := req.Role
	if !role.IsValid() {
		role = domain.RoleSeller
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (role: %s)", user.Username, user.Role)
	return user.ToResponse(), nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, username, plainPassword string) (*TokenPair, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	if !password.Verify(plainPassword, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new pair is issued. A revoked or expired token is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.jwtConfig.RefreshSecret)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	stored, err := s.tokenRepo.GetByHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if stored.IsRevoked() || stored.IsExpired() {
		// A revoked token being replayed may mean the token leaked.
		// Revoke everything for that user.
		if stored.IsRevoked() {
			log.Printf("⚠️ Revoked refresh token replayed for user %d - revoking all sessions", stored.UserID)
			_ = s.tokenRepo.RevokeAllForUser(ctx, stored.UserID)
		}
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}

	if err := s.tokenRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	stored, err := s.tokenRepo.GetByHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil // already gone, nothing to revoke
	}
	return s.tokenRepo.Revoke(ctx, stored.ID)
}

// GetProfile returns the authenticated user's profile
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return user.ToResponse(), nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(user.ID, user.Username, user.Role, s.jwtConfig.Secret, s.jwtConfig.AccessTokenMins)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.NewString()
	refreshToken, err := jwt.GenerateRefreshToken(user.ID, tokenID, s.jwtConfig.RefreshSecret, s.jwtConfig.RefreshTokenDays)
	if err != nil {
		return nil, err
	}

	record := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: jwt.RefreshExpiry(s.jwtConfig.RefreshTokenDays),
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.ToResponse(),
	}, nil
}

// hashToken stores refresh tokens hashed, never in the clear
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
