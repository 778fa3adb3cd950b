package apperr

import "github.com/tuanvumaihuynh/bizsuite/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	UnauthorizedErr       = zerror.NewUnauthorized("UNAUTHORIZED", "authentication required")
	InvalidCredentialsErr = zerror.NewUnauthorized("INVALID_CREDENTIALS", "invalid email or password")
	ForbiddenErr          = zerror.NewForbidden("FORBIDDEN", "access denied")
	TooManyRequestsErr    = zerror.NewTooManyRequests("TOO_MANY_REQUESTS", "too many requests")

	UserNotFoundErr     = zerror.NewNotFound("USER_NOT_FOUND", "user not found")
	LeadNotFoundErr     = zerror.NewNotFound("LEAD_NOT_FOUND", "lead not found")
	CategoryNotFoundErr = zerror.NewNotFound("CATEGORY_NOT_FOUND", "category not found")
	SupplierNotFoundErr = zerror.NewNotFound("SUPPLIER_NOT_FOUND", "supplier not found")
	ProductNotFoundErr  = zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")
	OrderNotFoundErr    = zerror.NewNotFound("ORDER_NOT_FOUND", "order not found")

	EmailTakenErr       = zerror.NewConflict("EMAIL_CONFLICT", "email already registered")
	SkuTakenErr         = zerror.NewConflict("SKU_CONFLICT", "sku already exists")
	OrderNumberTakenErr = zerror.NewConflict("ORDER_NUMBER_CONFLICT", "order number already exists")
	ReferenceInUseErr   = zerror.NewConflict("REFERENCE_IN_USE", "record is still referenced")

	OutOfStockErr         = zerror.NewConflict("OUT_OF_STOCK", "product is out of stock")
	InsufficientStockErr  = zerror.NewConflict("INSUFFICIENT_STOCK", "cannot add more items than available in stock")
	ProductUnavailableErr = zerror.NewConflict("PRODUCT_UNAVAILABLE", "product is not available for sale")
	EmptyCartErr          = zerror.NewUnprocessableEntity("EMPTY_CART", "cart is empty")

	InvalidStatusTransitionErr = zerror.NewUnprocessableEntity("INVALID_STATUS_TRANSITION", "status transition is not allowed")

	DataUnavailableErr = zerror.NewServiceUnavailable("DATA_UNAVAILABLE", "data is temporarily unavailable")
)
