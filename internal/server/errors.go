package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	itemdomain "github.com/pantryworks/pantry/internal/item/domain"
	"github.com/pantryworks/pantry/internal/providers/openfoodfacts"
	productdomain "github.com/pantryworks/pantry/internal/product/domain"
	tagdomain "github.com/pantryworks/pantry/internal/tag/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

// ErrorHandlingMiddleware maps the last context error to a status code and a
// structured JSON body. Handlers record errors with AbortWithError and never
// write error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: validationErrorMessage(err),
		}
	}

	var conflict *tagdomain.ConflictError
	if errors.As(err, &conflict) {
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "tag already exists",
		}
	}

	switch {
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, openfoodfacts.ErrUpstreamUnavailable):
		return http.StatusBadGateway, errorPayload{
			Type:    "upstream_unavailable",
			Message: "product database unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, tagdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidEAN13),
		errors.Is(err, productdomain.ErrInvalidProductCode),
		errors.Is(err, productdomain.ErrMissingIdentifier),
		errors.Is(err, productdomain.ErrAmbiguousIdentifier),
		errors.Is(err, productdomain.ErrInvalidID),
		errors.Is(err, itemdomain.ErrInvalidID),
		errors.Is(err, itemdomain.ErrInvalidQuantity),
		errors.Is(err, itemdomain.ErrProductNotFound),
		errors.Is(err, openfoodfacts.ErrInvalidBarcode):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, openfoodfacts.ErrNoMatch),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorMessage(err error) string {
	switch {
	case errors.Is(err, tagdomain.ErrInvalidName):
		return "tag name is required"
	case errors.Is(err, productdomain.ErrInvalidName):
		return "product name is required"
	case errors.Is(err, productdomain.ErrInvalidEAN13):
		return "ean13 must be exactly 13 digits"
	case errors.Is(err, productdomain.ErrInvalidProductCode):
		return "product code must be uppercase alphanumeric"
	case errors.Is(err, productdomain.ErrMissingIdentifier):
		return "either ean13 or product code is required"
	case errors.Is(err, productdomain.ErrAmbiguousIdentifier):
		return "ean13 and product code are mutually exclusive"
	case errors.Is(err, productdomain.ErrInvalidID), errors.Is(err, itemdomain.ErrInvalidID):
		return "invalid id"
	case errors.Is(err, itemdomain.ErrInvalidQuantity):
		return "quantity must not be negative"
	case errors.Is(err, itemdomain.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, openfoodfacts.ErrInvalidBarcode):
		return "barcode must be exactly 13 digits"
	default:
		return "invalid request"
	}
}

// classifyErrorForLog feeds the request logger with stable error labels.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return payload.Type, "internal"
	default:
		return payload.Type, err.Error()
	}
}
