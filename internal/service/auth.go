package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
	"github.com/72tommy72/HRMate/internal/util"
)

const minPasswordLength = 8

// AccessClaims is the JWT payload for short-lived access tokens.
type AccessClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResult struct {
	User   *model.User `json:"user"`
	Tokens TokenPair   `json:"tokens"`
}

type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	Role      model.Role
	Phone     *string
	CreatedBy string
}

type AuthService struct {
	users      repository.UserRepository
	tokens     repository.RefreshTokenRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(users repository.UserRepository, tokens repository.RefreshTokenRepository, jwtSecret string, accessTTL, refreshTTL time.Duration, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        logger,
	}
}

func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	if params.Username == "" {
		return nil, apperrors.MissingRequired("username")
	}
	if !util.IsValidEmail(params.Email) {
		return nil, apperrors.InvalidInput("email", "must be a valid email address")
	}
	if len(params.Password) < minPasswordLength {
		return nil, apperrors.InvalidInput("password", "must be at least 8 characters")
	}
	if params.Role == "" {
		params.Role = model.RoleEmployee
	}
	if !model.ValidRole(params.Role) {
		return nil, apperrors.InvalidInput("role", "unknown role")
	}

	if existing, err := s.users.FindByUsername(ctx, params.Username); err != nil {
		return nil, apperrors.Storage(err)
	} else if existing != nil {
		return nil, apperrors.AlreadyExists("Username")
	}
	if existing, err := s.users.FindByEmail(ctx, params.Email); err != nil {
		return nil, apperrors.Storage(err)
	} else if existing != nil {
		return nil, apperrors.AlreadyExists("Email")
	}

	hash, err := util.HashPassword(params.Password)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password").WithCause(err)
	}

	user, err := s.users.Create(ctx, model.CreateUserParams{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		Role:         params.Role,
		Phone:        params.Phone,
		CreatedBy:    params.CreatedBy,
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User registered")
	return user, nil
}

// Login authenticates by username or email. Failures are reported uniformly
// so the response does not leak which part was wrong.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, identifier)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if user == nil {
		user, err = s.users.FindByEmail(ctx, identifier)
		if err != nil {
			return nil, apperrors.Storage(err)
		}
	}
	if user == nil || !util.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	if user.Status != model.UserStatusActive {
		return nil, apperrors.Forbidden("Account is not active")
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.users.TouchLogin(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to record login time")
	}

	s.log.Info().Str("user_id", user.ID).Msg("User logged in")
	return &LoginResult{User: user, Tokens: *tokens}, nil
}

// Refresh rotates the refresh token: the presented token is consumed and a
// fresh pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	hash := util.HashToken(refreshToken)
	stored, err := s.tokens.FindByTokenHash(ctx, hash)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if stored == nil {
		return nil, apperrors.InvalidToken("Refresh token is invalid or expired")
	}

	user, err := s.users.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if user == nil || user.Status != model.UserStatusActive {
		return nil, apperrors.Unauthorized("Account is no longer active")
	}

	if err := s.tokens.DeleteByTokenHash(ctx, hash); err != nil {
		return nil, apperrors.Storage(err)
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokens.DeleteByTokenHash(ctx, util.HashToken(refreshToken)); err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

// ChangePassword verifies the current password and revokes every refresh
// token the user holds, forcing other sessions to log in again.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.InvalidInput("password", "must be at least 8 characters")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperrors.Storage(err)
	}
	if user == nil {
		return apperrors.NotFound("User")
	}
	if !util.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.Unauthorized("Current password is incorrect")
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return apperrors.Internal("Failed to hash password").WithCause(err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return apperrors.Storage(err)
	}
	if err := s.tokens.DeleteByUserID(ctx, userID); err != nil {
		return apperrors.Storage(err)
	}

	s.log.Info().Str("user_id", userID).Msg("Password changed")
	return nil
}

// ParseAccessToken validates the JWT signature and expiry and returns the
// claims.
func (s *AuthService) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.InvalidToken("Unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.InvalidToken("Access token is invalid or expired").WithCause(err)
	}
	return claims, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	now := time.Now()
	claims := AccessClaims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, apperrors.Internal("Failed to sign access token").WithCause(err)
	}

	refresh, err := util.GenerateToken()
	if err != nil {
		return nil, apperrors.Internal("Failed to generate refresh token").WithCause(err)
	}
	if _, err := s.tokens.Create(ctx, user.ID, util.HashToken(refresh), now.Add(s.refreshTTL)); err != nil {
		return nil, apperrors.Storage(err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
