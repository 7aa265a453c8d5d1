package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/partner"
	"github.com/stocker/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCountryRepository implements partner.CountryRepository using GORM.
// Countries are a process-wide seeded table.
type GormCountryRepository struct {
	db *gorm.DB
}

var _ partner.CountryRepository = (*GormCountryRepository)(nil)

// NewGormCountryRepository creates a new GormCountryRepository
func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

// FindByID finds a country by ID
func (r *GormCountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Country, error) {
	var country partner.Country
	if err := r.db.WithContext(ctx).First(&country, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &country, nil
}

// FindByName finds a country by folded name
func (r *GormCountryRepository) FindByName(ctx context.Context, name string) (*partner.Country, error) {
	var country partner.Country
	if err := r.db.WithContext(ctx).
		Where("name_key = ?", shared.NormalizeName(name)).
		First(&country).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &country, nil
}

// FindAll returns all countries ordered by name
func (r *GormCountryRepository) FindAll(ctx context.Context) ([]partner.Country, error) {
	var countries []partner.Country
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

// Save persists a new country
func (r *GormCountryRepository) Save(ctx context.Context, country *partner.Country) error {
	return r.db.WithContext(ctx).Create(country).Error
}

// GormCityRepository implements partner.CityRepository using GORM.
// Cities are a process-wide seeded table, unique per country.
type GormCityRepository struct {
	db *gorm.DB
}

var _ partner.CityRepository = (*GormCityRepository)(nil)

// NewGormCityRepository creates a new GormCityRepository
func NewGormCityRepository(db *gorm.DB) *GormCityRepository {
	return &GormCityRepository{db: db}
}

// FindByID finds a city by ID
func (r *GormCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.City, error) {
	var city partner.City
	if err := r.db.WithContext(ctx).First(&city, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &city, nil
}

// FindByNameInCountry finds a city by folded name within a country
func (r *GormCityRepository) FindByNameInCountry(ctx context.Context, name string, countryID uuid.UUID) (*partner.City, error) {
	var city partner.City
	if err := r.db.WithContext(ctx).
		Where("country_id = ? AND name_key = ?", countryID, shared.NormalizeName(name)).
		First(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &city, nil
}

// FindAllInCountry returns the country's cities ordered by name
func (r *GormCityRepository) FindAllInCountry(ctx context.Context, countryID uuid.UUID) ([]partner.City, error) {
	var cities []partner.City
	if err := r.db.WithContext(ctx).
		Where("country_id = ?", countryID).
		Order("name ASC").
		Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// Save persists a new city
func (r *GormCityRepository) Save(ctx context.Context, city *partner.City) error {
	return r.db.WithContext(ctx).Create(city).Error
}

// GormLocationRepository implements partner.LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

var _ partner.LocationRepository = (*GormLocationRepository)(nil)

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Location, error) {
	var location partner.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindByTupleForTenant finds the tenant's location matching the
// (country, city, folded street) tuple exactly, including nulls.
func (r *GormLocationRepository) FindByTupleForTenant(ctx context.Context, countryID, cityID *uuid.UUID, streetAddress string, tenantID uuid.UUID) (*partner.Location, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND street_key = ?", tenantID, shared.NormalizeName(streetAddress))
	if countryID != nil {
		query = query.Where("country_id = ?", *countryID)
	} else {
		query = query.Where("country_id IS NULL")
	}
	if cityID != nil {
		query = query.Where("city_id = ?", *cityID)
	} else {
		query = query.Where("city_id IS NULL")
	}

	var location partner.Location
	if err := query.First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// Save persists a new location
func (r *GormLocationRepository) Save(ctx context.Context, location *partner.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// GormAcquisitionSourceRepository implements
// partner.AcquisitionSourceRepository using GORM.
type GormAcquisitionSourceRepository struct {
	db *gorm.DB
}

var _ partner.AcquisitionSourceRepository = (*GormAcquisitionSourceRepository)(nil)

// NewGormAcquisitionSourceRepository creates a new GormAcquisitionSourceRepository
func NewGormAcquisitionSourceRepository(db *gorm.DB) *GormAcquisitionSourceRepository {
	return &GormAcquisitionSourceRepository{db: db}
}

// FindByID finds a source by ID
func (r *GormAcquisitionSourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.AcquisitionSource, error) {
	var source partner.AcquisitionSource
	if err := r.db.WithContext(ctx).First(&source, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &source, nil
}

// FindByNameForTenant finds a source by folded name within a tenant
func (r *GormAcquisitionSourceRepository) FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*partner.AcquisitionSource, error) {
	var source partner.AcquisitionSource
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name_key = ?", tenantID, shared.NormalizeName(name)).
		First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &source, nil
}

// FindAllForTenant finds all sources for a tenant
func (r *GormAcquisitionSourceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.AcquisitionSource, error) {
	var sources []partner.AcquisitionSource
	query := applyFilter(
		r.db.WithContext(ctx).Model(&partner.AcquisitionSource{}).Where("tenant_id = ?", tenantID),
		filter, PartnerSortFields, "name")

	if err := query.Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}

// Save persists a new source
func (r *GormAcquisitionSourceRepository) Save(ctx context.Context, source *partner.AcquisitionSource) error {
	return r.db.WithContext(ctx).Create(source).Error
}
