package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorWithDetails creates a domain error carrying structured details,
// e.g. the restricted field names refused on a delivered order.
func NewDomainErrorWithDetails(code, message string, details map[string]any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Error codes surfaced by the order lifecycle engine
const (
	CodeValidation              = "VALIDATION"
	CodeAuthentication          = "AUTHENTICATION"
	CodeNotFound                = "NOT_FOUND"
	CodeConflict                = "CONFLICT"
	CodeInsufficientStock       = "INSUFFICIENT_STOCK"
	CodeSupplierMismatch        = "SUPPLIER_MISMATCH"
	CodeRestrictedAfterDelivery = "RESTRICTED_AFTER_DELIVERY"
	CodeOrderMustHaveItem       = "ORDER_MUST_HAVE_ITEM"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeConflict, "Resource already exists")
	ErrUnauthorized  = NewDomainError(CodeAuthentication, "Not authorized to perform this action")
)
