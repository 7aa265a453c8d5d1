package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/inventory"
	"github.com/stocker/backend/internal/domain/partner"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of inventory.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*inventory.Category, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*inventory.Category, error) {
	args := m.Called(ctx, name, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Category, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]inventory.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *inventory.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	args := m.Called(ctx, id, tenantID)
	return args.Error(0)
}

// MockSourceRepository is a mock implementation of partner.AcquisitionSourceRepository
type MockSourceRepository struct {
	mock.Mock
}

func (m *MockSourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.AcquisitionSource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.AcquisitionSource), args.Error(1)
}

func (m *MockSourceRepository) FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*partner.AcquisitionSource, error) {
	args := m.Called(ctx, name, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.AcquisitionSource), args.Error(1)
}

func (m *MockSourceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.AcquisitionSource, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.AcquisitionSource), args.Error(1)
}

func (m *MockSourceRepository) Save(ctx context.Context, source *partner.AcquisitionSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

// MockLocationRepository is a mock implementation of partner.LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Location), args.Error(1)
}

func (m *MockLocationRepository) FindByTupleForTenant(ctx context.Context, countryID, cityID *uuid.UUID, streetAddress string, tenantID uuid.UUID) (*partner.Location, error) {
	args := m.Called(ctx, countryID, cityID, streetAddress, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Location), args.Error(1)
}

func (m *MockLocationRepository) Save(ctx context.Context, location *partner.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

// MockCountryRepository is a mock implementation of partner.CountryRepository
type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Country), args.Error(1)
}

func (m *MockCountryRepository) FindByName(ctx context.Context, name string) (*partner.Country, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Country), args.Error(1)
}

func (m *MockCountryRepository) FindAll(ctx context.Context) ([]partner.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]partner.Country), args.Error(1)
}

func (m *MockCountryRepository) Save(ctx context.Context, country *partner.Country) error {
	args := m.Called(ctx, country)
	return args.Error(0)
}

// MockCityRepository is a mock implementation of partner.CityRepository
type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.City), args.Error(1)
}

func (m *MockCityRepository) FindByNameInCountry(ctx context.Context, name string, countryID uuid.UUID) (*partner.City, error) {
	args := m.Called(ctx, name, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.City), args.Error(1)
}

func (m *MockCityRepository) FindAllInCountry(ctx context.Context, countryID uuid.UUID) ([]partner.City, error) {
	args := m.Called(ctx, countryID)
	return args.Get(0).([]partner.City), args.Error(1)
}

func (m *MockCityRepository) Save(ctx context.Context, city *partner.City) error {
	args := m.Called(ctx, city)
	return args.Error(0)
}
