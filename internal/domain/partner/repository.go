package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/shared"
)

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*Supplier, error)
	FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*Supplier, error)
	FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]Supplier, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Supplier, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID, excludeID *uuid.UUID) (bool, error)
	CountOrderReferences(ctx context.Context, supplierID uuid.UUID) (int64, error)
	Save(ctx context.Context, supplier *Supplier) error
	Update(ctx context.Context, supplier *Supplier) error
	DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error
}

// ClientRepository defines persistence operations for clients
type ClientRepository interface {
	FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*Client, error)
	FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*Client, error)
	FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]Client, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Client, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID, excludeID *uuid.UUID) (bool, error)
	CountOrderReferences(ctx context.Context, clientID uuid.UUID) (int64, error)
	Save(ctx context.Context, client *Client) error
	Update(ctx context.Context, client *Client) error
	DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error
}

// CountryRepository reads the process-wide country table
type CountryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Country, error)
	FindByName(ctx context.Context, name string) (*Country, error)
	FindAll(ctx context.Context) ([]Country, error)
	Save(ctx context.Context, country *Country) error
}

// CityRepository reads the process-wide city table
type CityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*City, error)
	FindByNameInCountry(ctx context.Context, name string, countryID uuid.UUID) (*City, error)
	FindAllInCountry(ctx context.Context, countryID uuid.UUID) ([]City, error)
	Save(ctx context.Context, city *City) error
}

// LocationRepository defines persistence operations for shared locations
type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
	FindByTupleForTenant(ctx context.Context, countryID, cityID *uuid.UUID, streetAddress string, tenantID uuid.UUID) (*Location, error)
	Save(ctx context.Context, location *Location) error
}

// AcquisitionSourceRepository defines persistence operations for sources
type AcquisitionSourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AcquisitionSource, error)
	FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*AcquisitionSource, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]AcquisitionSource, error)
	Save(ctx context.Context, source *AcquisitionSource) error
}
