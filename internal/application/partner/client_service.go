package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appactivity "github.com/stocker/backend/internal/application/activity"
	"github.com/stocker/backend/internal/application/catalog"
	"github.com/stocker/backend/internal/application/txn"
	"github.com/stocker/backend/internal/domain/activity"
	"github.com/stocker/backend/internal/domain/partner"
	"github.com/stocker/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const modelClient = "client"

// ClientService handles client CRUD. Clients referenced by any client
// order cannot be deleted.
type ClientService struct {
	clients    partner.ClientRepository
	references *catalog.ReferenceService
	scope      txn.TransactionScope
	logger     *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(clients partner.ClientRepository, references *catalog.ReferenceService, scope txn.TransactionScope, logger *zap.Logger) *ClientService {
	return &ClientService{clients: clients, references: references, scope: scope, logger: logger}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePartnerRequest) (*ClientResponse, error) {
	locationID, err := s.resolveLocation(ctx, tenantID, req.Country, req.City, req.Street)
	if err != nil {
		return nil, err
	}
	sourceID, err := s.resolveSource(ctx, tenantID, req.Source)
	if err != nil {
		return nil, err
	}

	var resp ClientResponse
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		exists, err := repos.ClientRepo().ExistsByNameForTenant(ctx, req.Name, tenantID, nil)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError(shared.CodeConflict,
				fmt.Sprintf("A client named %q already exists", req.Name))
		}

		client, err := partner.NewClient(tenantID, req.Name)
		if err != nil {
			return err
		}
		if req.Phone != "" || req.Email != "" {
			client.SetContact(req.Phone, req.Email)
		}
		client.LocationID = locationID
		client.SourceID = sourceID

		if err := repos.ClientRepo().Save(ctx, client); err != nil {
			return err
		}
		if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionCreated, modelClient, []string{client.Name}); err != nil {
			return err
		}

		resp = ToClientResponse(client)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("client created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("client", resp.Name))

	return &resp, nil
}

// Update updates a client; nil fields are untouched
func (s *ClientService) Update(ctx context.Context, tenantID, clientID uuid.UUID, req UpdatePartnerRequest) (*ClientResponse, error) {
	var resp ClientResponse

	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		client, err := repos.ClientRepo().FindByIDForTenant(ctx, clientID, tenantID)
		if err != nil {
			return err
		}

		if req.Name != nil && !shared.SameName(*req.Name, client.Name) {
			exists, err := repos.ClientRepo().ExistsByNameForTenant(ctx, *req.Name, tenantID, &client.ID)
			if err != nil {
				return err
			}
			if exists {
				return shared.NewDomainError(shared.CodeConflict,
					fmt.Sprintf("A client named %q already exists", *req.Name))
			}
			if err := client.Rename(*req.Name); err != nil {
				return err
			}
		}
		if req.Phone != nil || req.Email != nil {
			phone := client.Phone
			email := client.Email
			if req.Phone != nil {
				phone = *req.Phone
			}
			if req.Email != nil {
				email = *req.Email
			}
			client.SetContact(phone, email)
		}
		if req.Country != nil || req.City != nil || req.Street != nil {
			locationID, err := s.resolveLocation(ctx, tenantID,
				deref(req.Country), deref(req.City), deref(req.Street))
			if err != nil {
				return err
			}
			client.SetLocation(locationID)
		}
		if req.Source != nil {
			sourceID, err := s.resolveSource(ctx, tenantID, req.Source)
			if err != nil {
				return err
			}
			client.SetSource(sourceID)
		}

		if err := repos.ClientRepo().Update(ctx, client); err != nil {
			return err
		}
		if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionUpdated, modelClient, []string{client.Name}); err != nil {
			return err
		}

		resp = ToClientResponse(client)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a client unless any order still references it
func (s *ClientService) Delete(ctx context.Context, tenantID, clientID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		client, err := repos.ClientRepo().FindByIDForTenant(ctx, clientID, tenantID)
		if err != nil {
			return err
		}

		refs, err := repos.ClientRepo().CountOrderReferences(ctx, client.ID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return shared.NewDomainError(shared.CodeConflict,
				fmt.Sprintf("Client %q is linked to %d order(s)", client.Name, refs))
		}

		if err := repos.ClientRepo().DeleteForTenant(ctx, client.ID, tenantID); err != nil {
			return err
		}
		return appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionDeleted, modelClient, []string{client.Name})
	})
}

// GetByID retrieves one client
func (s *ClientService) GetByID(ctx context.Context, tenantID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindByIDForTenant(ctx, clientID, tenantID)
	if err != nil {
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// List retrieves the tenant's clients
func (s *ClientService) List(ctx context.Context, tenantID uuid.UUID, filter PartnerListFilter) ([]ClientResponse, int64, error) {
	domainFilter := buildPartnerFilter(filter)

	clients, err := s.clients.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clients.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToClientResponses(clients), total, nil
}

func (s *ClientService) resolveLocation(ctx context.Context, tenantID uuid.UUID, country, city, street string) (*uuid.UUID, error) {
	in := catalog.LocationInput{Country: country, City: city, StreetAddress: street}
	if in.IsEmpty() {
		return nil, nil
	}
	location, err := s.references.GetOrCreateLocation(ctx, tenantID, in)
	if err != nil {
		return nil, err
	}
	return &location.ID, nil
}

func (s *ClientService) resolveSource(ctx context.Context, tenantID uuid.UUID, name *string) (*uuid.UUID, error) {
	if name == nil || *name == "" {
		return nil, nil
	}
	source, err := s.references.GetOrCreateSource(ctx, tenantID, *name)
	if err != nil {
		return nil, err
	}
	return &source.ID, nil
}
