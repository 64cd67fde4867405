package service

import (
	"context"
	"strings"

	"jobsite/internal/api/models"

	"github.com/rs/zerolog"
)

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	FindAll(ctx context.Context) ([]models.Client, error)
}

type ClientService struct {
	clientRepo ClientRepository
	guard      *Guard
	logger     zerolog.Logger
}

func NewClientService(clientRepo ClientRepository, guard *Guard, logger zerolog.Logger) *ClientService {
	return &ClientService{clientRepo: clientRepo, guard: guard, logger: logger}
}

// List returns all clients ordered by name.
func (slf *ClientService) List(ctx context.Context) ([]models.Client, error) {
	clients, err := slf.clientRepo.FindAll(ctx)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing clients")
		return nil, &UpstreamError{Err: err}
	}
	return clients, nil
}

// Create registers a client. Name uniqueness is left to convention.
func (slf *ClientService) Create(ctx context.Context, name string) (models.Client, error) {
	if err := slf.guard.Require(ctx); err != nil {
		return models.Client{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Client{}, &ValidationError{Message: "name is required"}
	}

	client := models.Client{Name: name}
	if err := slf.clientRepo.Create(ctx, &client); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating client")
		return models.Client{}, &UpstreamError{Err: err}
	}

	slf.logger.Info().Str("clientId", client.ID).Msg("Client created")
	return client, nil
}
