package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/inventory"
	"github.com/stocker/backend/internal/domain/partner"
	"github.com/stocker/backend/internal/domain/shared"
)

// ReferenceService implements get-or-create semantics for reference rows.
// Lookups are case-insensitive on the natural key; missing rows are
// created owned by the acting tenant where ownership applies. Country
// and City are process-wide tables populated by seed data and are only
// looked up here.
type ReferenceService struct {
	categories inventory.CategoryRepository
	sources    partner.AcquisitionSourceRepository
	locations  partner.LocationRepository
	countries  partner.CountryRepository
	cities     partner.CityRepository
}

// NewReferenceService creates a new ReferenceService
func NewReferenceService(
	categories inventory.CategoryRepository,
	sources partner.AcquisitionSourceRepository,
	locations partner.LocationRepository,
	countries partner.CountryRepository,
	cities partner.CityRepository,
) *ReferenceService {
	return &ReferenceService{
		categories: categories,
		sources:    sources,
		locations:  locations,
		countries:  countries,
		cities:     cities,
	}
}

// GetOrCreateCategory resolves a category by name, creating it if absent
func (s *ReferenceService) GetOrCreateCategory(ctx context.Context, tenantID uuid.UUID, name string) (*inventory.Category, error) {
	existing, err := s.categories.FindByNameForTenant(ctx, name, tenantID)
	if err == nil {
		return existing, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	category, err := inventory.NewCategory(tenantID, name)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetOrCreateSource resolves an acquisition source by name, creating it if absent
func (s *ReferenceService) GetOrCreateSource(ctx context.Context, tenantID uuid.UUID, name string) (*partner.AcquisitionSource, error) {
	existing, err := s.sources.FindByNameForTenant(ctx, name, tenantID)
	if err == nil {
		return existing, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	source, err := partner.NewAcquisitionSource(tenantID, name)
	if err != nil {
		return nil, err
	}
	if err := s.sources.Save(ctx, source); err != nil {
		return nil, err
	}
	return source, nil
}

// LocationInput identifies a location by its natural tuple
type LocationInput struct {
	Country       string `json:"country"`
	City          string `json:"city"`
	StreetAddress string `json:"street_address"`
}

// IsEmpty reports whether no component of the tuple is set
func (in LocationInput) IsEmpty() bool {
	return in.Country == "" && in.City == "" && in.StreetAddress == ""
}

// GetOrCreateLocation resolves a location by the normalized tuple
// (country, city, street_address). Country and city must already exist
// in the seeded lookup tables; the city must belong to the country.
func (s *ReferenceService) GetOrCreateLocation(ctx context.Context, tenantID uuid.UUID, in LocationInput) (*partner.Location, error) {
	if in.IsEmpty() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Location cannot be empty")
	}

	var countryID, cityID *uuid.UUID
	if in.Country != "" {
		country, err := s.countries.FindByName(ctx, in.Country)
		if err != nil {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Unknown country")
		}
		countryID = &country.ID

		if in.City != "" {
			city, err := s.cities.FindByNameInCountry(ctx, in.City, country.ID)
			if err != nil {
				return nil, shared.NewDomainError(shared.CodeNotFound, "Unknown city for this country")
			}
			cityID = &city.ID
		}
	} else if in.City != "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "City requires a country")
	}

	existing, err := s.locations.FindByTupleForTenant(ctx, countryID, cityID, in.StreetAddress, tenantID)
	if err == nil {
		return existing, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	location, err := partner.NewLocation(tenantID, countryID, cityID, in.StreetAddress)
	if err != nil {
		return nil, err
	}
	if err := s.locations.Save(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// ListCountries returns the seeded country table
func (s *ReferenceService) ListCountries(ctx context.Context) ([]partner.Country, error) {
	return s.countries.FindAll(ctx)
}

// ListCities returns the seeded cities of one country
func (s *ReferenceService) ListCities(ctx context.Context, countryID uuid.UUID) ([]partner.City, error) {
	return s.cities.FindAllInCountry(ctx, countryID)
}

func isNotFound(err error) bool {
	domainErr, ok := err.(*shared.DomainError)
	return ok && domainErr.Code == shared.CodeNotFound
}
