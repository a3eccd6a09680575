package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/repository"
	"github.com/lumierestudio/salon-api/pkg/apperror"
	"github.com/lumierestudio/salon-api/pkg/pagination"
)

// ClientService handles clients, family links and the per-client
// transaction history projection.
type ClientService struct {
	clientRepo   repository.ClientRepository
	historyRepo  repository.ClientHistoryRepository
	ageThreshold int // age at which a dependent becomes independent
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository, historyRepo repository.ClientHistoryRepository, ageThreshold int) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		historyRepo:  historyRepo,
		ageThreshold: ageThreshold,
	}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	FirstName   string
	LastName    string
	Email       *string
	Phone       *string
	BirthDate   *time.Time
	ParentID    *uuid.UUID
	Independent *bool
	Notes       *string
}

// CreateClient creates a new client. A client with a parent is a
// dependent unless explicitly marked independent or already past the
// age threshold.
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	client := &entity.Client{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		BirthDate: input.BirthDate,
		Notes:     input.Notes,
	}

	if input.ParentID != nil {
		parent, err := s.clientRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewNotFoundError("Parent client")
		}
		if parent.ParentID != nil {
			return nil, apperror.NewBadRequestError("A dependent cannot be a parent")
		}
		client.ParentID = input.ParentID
	}

	client.Independent = s.resolveIndependence(client, input.Independent)

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client with their dependents
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetWithDependents(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists clients with optional name/email search
func (s *ClientService) ListClients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// ListClientsWithCursor lists clients using cursor-based pagination
func (s *ClientService) ListClientsWithCursor(ctx context.Context, params *pagination.CursorParams, search string) (*pagination.CursorPaginatedResult[entity.Client], error) {
	clients, err := s.clientRepo.ListWithCursor(ctx, params, search)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor != ""
	cursorPag, items := pagination.NewCursorPagination(clients, params.Limit,
		func(c entity.Client) string { return c.ID.String() },
		func(c entity.Client) time.Time { return c.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateClientInput represents the update client input
type UpdateClientInput struct {
	ID          uuid.UUID
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	BirthDate   *time.Time
	ParentID    *uuid.UUID
	ClearParent bool
	Independent *bool
	Notes       *string
}

// UpdateClient updates a client
func (s *ClientService) UpdateClient(ctx context.Context, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	if input.FirstName != nil {
		client.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		client.LastName = *input.LastName
	}
	if input.Email != nil {
		client.Email = input.Email
	}
	if input.Phone != nil {
		client.Phone = input.Phone
	}
	if input.BirthDate != nil {
		client.BirthDate = input.BirthDate
	}
	if input.Notes != nil {
		client.Notes = input.Notes
	}

	if input.ClearParent {
		client.ParentID = nil
	} else if input.ParentID != nil {
		if *input.ParentID == client.ID {
			return nil, apperror.NewBadRequestError("A client cannot be their own parent")
		}
		parent, err := s.clientRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewNotFoundError("Parent client")
		}
		if parent.ParentID != nil {
			return nil, apperror.NewBadRequestError("A dependent cannot be a parent")
		}
		client.ParentID = input.ParentID
	}

	client.Independent = s.resolveIndependence(client, input.Independent)

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// DeleteClient soft deletes a client. Ledger rows and history keep their
// client references; only the client record disappears from listings.
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}

	dependents, err := s.clientRepo.ListDependents(ctx, id)
	if err != nil {
		return err
	}
	if len(dependents) > 0 {
		return apperror.NewConflictError("Client still has dependents")
	}

	return s.clientRepo.Delete(ctx, id)
}

// GetClientHistory returns the denormalized transaction history for a client
func (s *ClientService) GetClientHistory(ctx context.Context, clientID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.ClientHistory], error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	entries, total, err := s.historyRepo.ListByClient(ctx, clientID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}

// resolveIndependence applies the explicit flag when given, otherwise
// derives it: no parent means independent, and a dependent past the age
// threshold becomes independent.
func (s *ClientService) resolveIndependence(client *entity.Client, explicit *bool) bool {
	if explicit != nil {
		return *explicit
	}
	if client.ParentID == nil {
		return true
	}
	if age := client.Age(time.Now()); age >= s.ageThreshold && age >= 0 {
		return true
	}
	return false
}
