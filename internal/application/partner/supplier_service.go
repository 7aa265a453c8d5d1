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

const modelSupplier = "supplier"

// SupplierService handles supplier CRUD. Suppliers referenced by any
// supplier order cannot be deleted.
type SupplierService struct {
	suppliers  partner.SupplierRepository
	references *catalog.ReferenceService
	scope      txn.TransactionScope
	logger     *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(suppliers partner.SupplierRepository, references *catalog.ReferenceService, scope txn.TransactionScope, logger *zap.Logger) *SupplierService {
	return &SupplierService{suppliers: suppliers, references: references, scope: scope, logger: logger}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePartnerRequest) (*SupplierResponse, error) {
	locationID, err := s.resolveLocation(ctx, tenantID, req.Country, req.City, req.Street)
	if err != nil {
		return nil, err
	}

	var resp SupplierResponse
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		exists, err := repos.SupplierRepo().ExistsByNameForTenant(ctx, req.Name, tenantID, nil)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError(shared.CodeConflict,
				fmt.Sprintf("A supplier named %q already exists", req.Name))
		}

		supplier, err := partner.NewSupplier(tenantID, req.Name)
		if err != nil {
			return err
		}
		if req.Phone != "" || req.Email != "" {
			supplier.SetContact(req.Phone, req.Email)
		}
		supplier.LocationID = locationID

		if err := repos.SupplierRepo().Save(ctx, supplier); err != nil {
			return err
		}
		if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionCreated, modelSupplier, []string{supplier.Name}); err != nil {
			return err
		}

		resp = ToSupplierResponse(supplier)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("supplier created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("supplier", resp.Name))

	return &resp, nil
}

// Update updates a supplier; nil fields are untouched
func (s *SupplierService) Update(ctx context.Context, tenantID, supplierID uuid.UUID, req UpdatePartnerRequest) (*SupplierResponse, error) {
	var resp SupplierResponse

	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		supplier, err := repos.SupplierRepo().FindByIDForTenant(ctx, supplierID, tenantID)
		if err != nil {
			return err
		}

		if req.Name != nil && !shared.SameName(*req.Name, supplier.Name) {
			exists, err := repos.SupplierRepo().ExistsByNameForTenant(ctx, *req.Name, tenantID, &supplier.ID)
			if err != nil {
				return err
			}
			if exists {
				return shared.NewDomainError(shared.CodeConflict,
					fmt.Sprintf("A supplier named %q already exists", *req.Name))
			}
			if err := supplier.Rename(*req.Name); err != nil {
				return err
			}
		}
		if req.Phone != nil || req.Email != nil {
			phone := supplier.Phone
			email := supplier.Email
			if req.Phone != nil {
				phone = *req.Phone
			}
			if req.Email != nil {
				email = *req.Email
			}
			supplier.SetContact(phone, email)
		}
		if req.Country != nil || req.City != nil || req.Street != nil {
			locationID, err := s.resolveLocation(ctx, tenantID,
				deref(req.Country), deref(req.City), deref(req.Street))
			if err != nil {
				return err
			}
			supplier.SetLocation(locationID)
		}

		if err := repos.SupplierRepo().Update(ctx, supplier); err != nil {
			return err
		}
		if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionUpdated, modelSupplier, []string{supplier.Name}); err != nil {
			return err
		}

		resp = ToSupplierResponse(supplier)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a supplier unless any order still references it
func (s *SupplierService) Delete(ctx context.Context, tenantID, supplierID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		supplier, err := repos.SupplierRepo().FindByIDForTenant(ctx, supplierID, tenantID)
		if err != nil {
			return err
		}

		refs, err := repos.SupplierRepo().CountOrderReferences(ctx, supplier.ID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return shared.NewDomainError(shared.CodeConflict,
				fmt.Sprintf("Supplier %q is linked to %d order(s)", supplier.Name, refs))
		}

		if err := repos.SupplierRepo().DeleteForTenant(ctx, supplier.ID, tenantID); err != nil {
			return err
		}
		return appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionDeleted, modelSupplier, []string{supplier.Name})
	})
}

// GetByID retrieves one supplier
func (s *SupplierService) GetByID(ctx context.Context, tenantID, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByIDForTenant(ctx, supplierID, tenantID)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// List retrieves the tenant's suppliers
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter PartnerListFilter) ([]SupplierResponse, int64, error) {
	domainFilter := buildPartnerFilter(filter)

	suppliers, err := s.suppliers.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.suppliers.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSupplierResponses(suppliers), total, nil
}

func (s *SupplierService) resolveLocation(ctx context.Context, tenantID uuid.UUID, country, city, street string) (*uuid.UUID, error) {
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

func buildPartnerFilter(filter PartnerListFilter) shared.Filter {
	f := shared.NewFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	return f
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
