package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stocker/backend/internal/application/catalog"
	"github.com/stocker/backend/internal/infrastructure/cache"
)

// ReferenceHandler serves the seeded reference tables and the order
// status lookup cache
type ReferenceHandler struct {
	BaseHandler
	references *catalog.ReferenceService
	statuses   *cache.StatusCache
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(references *catalog.ReferenceService, statuses *cache.StatusCache) *ReferenceHandler {
	return &ReferenceHandler{references: references, statuses: statuses}
}

type namedRow struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ListCountries returns the seeded countries
func (h *ReferenceHandler) ListCountries(c *gin.Context) {
	countries, err := h.references.ListCountries(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	rows := make([]namedRow, 0, len(countries))
	for _, country := range countries {
		rows = append(rows, namedRow{ID: country.ID, Name: country.Name})
	}
	h.Success(c, rows)
}

// ListCities returns the seeded cities of one country
func (h *ReferenceHandler) ListCities(c *gin.Context) {
	countryID, err := bindID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid country ID")
		return
	}

	cities, err := h.references.ListCities(c.Request.Context(), countryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	rows := make([]namedRow, 0, len(cities))
	for _, city := range cities {
		rows = append(rows, namedRow{ID: city.ID, Name: city.Name})
	}
	h.Success(c, rows)
}

// ListStatuses returns the order status names from the in-process cache
func (h *ReferenceHandler) ListStatuses(c *gin.Context) {
	delivery, err := h.statuses.DeliveryStatuses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	payment, err := h.statuses.PaymentStatuses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"delivery_statuses": delivery,
		"payment_statuses":  payment,
	})
}

// RefreshStatuses reloads the status cache from the database
func (h *ReferenceHandler) RefreshStatuses(c *gin.Context) {
	if err := h.statuses.Refresh(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Status cache refreshed."})
}
