package client

import (
	"context"

	"github.com/carebridge/evv-backend-go/internal/domain/client"
	"github.com/carebridge/evv-backend-go/internal/pkg/database"
)

type ClientServiceImpl struct {
	db *database.DB
	client.ClientRepository
}

func NewClientService(db *database.DB, clientRepo client.ClientRepository) client.ClientService {
	return &ClientServiceImpl{
		db:               db,
		ClientRepository: clientRepo,
	}
}

// Create implements client.ClientService.
func (s *ClientServiceImpl) Create(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	created, err := s.ClientRepository.Create(ctx, client.Client{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		return client.ClientResponse{}, err
	}

	return client.NewClientResponse(created), nil
}

// GetByID implements client.ClientService.
func (s *ClientServiceImpl) GetByID(ctx context.Context, id string) (client.ClientResponse, error) {
	c, err := s.ClientRepository.GetByID(ctx, id)
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.NewClientResponse(c), nil
}

// Update implements client.ClientService.
func (s *ClientServiceImpl) Update(ctx context.Context, req client.UpdateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	updated, err := s.ClientRepository.Update(ctx, req)
	if err != nil {
		return client.ClientResponse{}, err
	}

	return client.NewClientResponse(updated), nil
}

// Delete implements client.ClientService.
func (s *ClientServiceImpl) Delete(ctx context.Context, id string) error {
	return s.ClientRepository.Delete(ctx, id)
}

// List implements client.ClientService.
func (s *ClientServiceImpl) List(ctx context.Context, filter client.ListFilter) ([]client.ClientResponse, error) {
	clients, err := s.ClientRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]client.ClientResponse, 0, len(clients))
	for _, c := range clients {
		responses = append(responses, client.NewClientResponse(c))
	}
	return responses, nil
}
