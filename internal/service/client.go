package service

import (
	"context"

	"github.com/rs/zerolog"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
	"github.com/72tommy72/HRMate/internal/util"
)

type ClientService struct {
	clients repository.ClientRepository
	log     zerolog.Logger
}

func NewClientService(clients repository.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, log: logger}
}

func (s *ClientService) GetClient(ctx context.Context, id string) (*model.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if client == nil {
		return nil, apperrors.NotFound("Client")
	}
	return client, nil
}

func (s *ClientService) ListClients(ctx context.Context, filter model.ClientFilter) ([]model.Client, int64, error) {
	clients, err := s.clients.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}
	total, err := s.clients.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}
	return clients, total, nil
}

func (s *ClientService) CreateClient(ctx context.Context, params model.CreateClientParams) (*model.Client, error) {
	if params.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	if params.ClientNumber == "" {
		return nil, apperrors.MissingRequired("clientNumber")
	}
	if !util.IsValidEmail(params.Email) {
		return nil, apperrors.InvalidInput("email", "must be a valid email address")
	}

	if existing, err := s.clients.FindByNumber(ctx, params.ClientNumber); err != nil {
		return nil, apperrors.Storage(err)
	} else if existing != nil {
		return nil, apperrors.AlreadyExists("Client number")
	}

	client, err := s.clients.Create(ctx, params)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	s.log.Info().Str("client_id", client.ID).Str("number", client.ClientNumber).Msg("Client created")
	return client, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id string, params model.UpdateClientParams) (*model.Client, error) {
	if params.Email != nil && !util.IsValidEmail(*params.Email) {
		return nil, apperrors.InvalidInput("email", "must be a valid email address")
	}

	client, err := s.clients.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if client == nil {
		return nil, apperrors.NotFound("Client")
	}
	return client, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	affected, err := s.clients.Delete(ctx, id)
	if err != nil {
		return apperrors.Storage(err)
	}
	if affected == 0 {
		return apperrors.NotFound("Client")
	}

	s.log.Info().Str("client_id", id).Msg("Client deleted")
	return nil
}
