package dto

import (
	"net/http"

	"github.com/stocker/backend/internal/domain/shared"
)

// ErrCodeInternal is used when no domain code applies
const ErrCodeInternal = "INTERNAL"

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Business rule violations deliberately surface as 400 rather than
// 409/422 so clients handle one rejection status.
var errorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:              http.StatusBadRequest,
	shared.CodeAuthentication:          http.StatusUnauthorized,
	shared.CodeNotFound:                http.StatusNotFound,
	shared.CodeConflict:                http.StatusBadRequest,
	shared.CodeInsufficientStock:       http.StatusBadRequest,
	shared.CodeSupplierMismatch:        http.StatusBadRequest,
	shared.CodeRestrictedAfterDelivery: http.StatusBadRequest,
	shared.CodeOrderMustHaveItem:       http.StatusBadRequest,
	ErrCodeInternal:                    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
