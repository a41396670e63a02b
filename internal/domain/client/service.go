package client

import "context"

type ClientService interface {
	Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error)
	GetByID(ctx context.Context, id string) (ClientResponse, error)
	Update(ctx context.Context, req UpdateClientRequest) (ClientResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]ClientResponse, error)
}
