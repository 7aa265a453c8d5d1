package persistence

import (
	"strings"

	"github.com/stocker/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Returns "DESC" if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist.
// Returns the defaultField if the input is empty or not whitelisted.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ItemSortFields contains allowed sort fields for inventory items
var ItemSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"quantity":   true,
	"price":      true,
}

// PartnerSortFields contains allowed sort fields for suppliers and clients
var PartnerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
}

// OrderSortFields contains allowed sort fields for orders and sales
var OrderSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"reference_id":    true,
	"delivery_status": true,
	"payment_status":  true,
}

// applyFilter adds search, exact-match filters, ordering and pagination
// to the query. Column names in filter.Filters and OrderBy must appear
// in the whitelist; anything else is dropped.
func applyFilter(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool, searchColumns ...string) *gorm.DB {
	if filter.Search != "" && len(searchColumns) > 0 {
		pattern := "%" + filter.Search + "%"
		predicates := make([]string, len(searchColumns))
		args := make([]interface{}, len(searchColumns))
		for idx, column := range searchColumns {
			predicates[idx] = column + " ILIKE ?"
			args[idx] = pattern
		}
		query = query.Where(strings.Join(predicates, " OR "), args...)
	}

	for column, value := range filter.Filters {
		if allowedFields[column] {
			query = query.Where(column+" = ?", value)
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, allowedFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	return query
}

// applyCountFilter adds only the row-limiting predicates, skipping
// ordering and pagination, for COUNT queries.
func applyCountFilter(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool, searchColumns ...string) *gorm.DB {
	if filter.Search != "" && len(searchColumns) > 0 {
		pattern := "%" + filter.Search + "%"
		predicates := make([]string, len(searchColumns))
		args := make([]interface{}, len(searchColumns))
		for idx, column := range searchColumns {
			predicates[idx] = column + " ILIKE ?"
			args[idx] = pattern
		}
		query = query.Where(strings.Join(predicates, " OR "), args...)
	}

	for column, value := range filter.Filters {
		if allowedFields[column] {
			query = query.Where(column+" = ?", value)
		}
	}

	return query
}
