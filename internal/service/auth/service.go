package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/fichador/fichador-backend/internal/domain/auth"
	"github.com/fichador/fichador-backend/internal/domain/user"
	"github.com/fichador/fichador-backend/internal/pkg/jwt"
	"github.com/google/uuid"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
	}
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &user.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := a.UserRepository.Create(ctx, newUser); err != nil {
		return auth.UserResponse{}, err
	}

	return userResponse(newUser), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(userData)
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if refreshToken == "" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if a.Service.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrTokenRevoked
	}

	token, err := a.Service.JWTAuth().Decode(refreshToken)
	if err != nil {
		if errors.Is(err, jwxjwt.ErrTokenExpired()) {
			return auth.TokenResponse{}, auth.ErrTokenExpired
		}
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	claims := token.PrivateClaims()
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	// Rotate: the old refresh token is dead once a new pair is issued.
	a.Service.RevokeToken(refreshToken)

	return a.issueTokens(userData)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(_ context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(refreshToken)
	return nil
}

func (a *AuthServiceImpl) issueTokens(userData *user.User) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	tokenResponse.AccessToken, tokenResponse.AccessExpiresAt, err = a.Service.GenerateAccessToken(userData.ID, userData.Username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshExpiresAt, err = a.Service.GenerateRefreshToken(userData.ID, userData.Username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}
	tokenResponse.User = userResponse(userData)
	return tokenResponse, nil
}

func userResponse(u *user.User) auth.UserResponse {
	return auth.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
