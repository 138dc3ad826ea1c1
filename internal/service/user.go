package service

import (
	"context"

	"github.com/rs/zerolog"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
	"github.com/72tommy72/HRMate/internal/util"
)

type UserService struct {
	users  repository.UserRepository
	tokens repository.RefreshTokenRepository
	log    zerolog.Logger
}

func NewUserService(users repository.UserRepository, tokens repository.RefreshTokenRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, log: logger}
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return users, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, params model.UpdateUserParams) (*model.User, error) {
	if params.Email != nil && !util.IsValidEmail(*params.Email) {
		return nil, apperrors.InvalidInput("email", "must be a valid email address")
	}
	if params.Role != nil && !model.ValidRole(*params.Role) {
		return nil, apperrors.InvalidInput("role", "unknown role")
	}

	user, err := s.users.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}

	s.log.Info().Str("user_id", id).Str("updated_by", params.UpdatedBy).Msg("User updated")
	return user, nil
}

// DeleteUser removes the user and every refresh token they hold.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.tokens.DeleteByUserID(ctx, id); err != nil {
		return apperrors.Storage(err)
	}
	affected, err := s.users.Delete(ctx, id)
	if err != nil {
		return apperrors.Storage(err)
	}
	if affected == 0 {
		return apperrors.NotFound("User")
	}

	s.log.Info().Str("user_id", id).Msg("User deleted")
	return nil
}
