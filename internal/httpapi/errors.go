package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/backoffice/internal/authz"
	"github.com/nikolayk812/backoffice/internal/domain"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type errorKind struct {
	err    error
	status int
	kind   string
}

// checked in order; the first sentinel matched by errors.Is wins
var errorKinds = []errorKind{
	{domain.ErrProductNotFound, http.StatusNotFound, "ProductNotFound"},
	{domain.ErrInventoryNotFound, http.StatusNotFound, "InventoryNotFound"},
	{domain.ErrOrderNotFound, http.StatusNotFound, "OrderNotFound"},
	{domain.ErrPaymentNotFound, http.StatusNotFound, "PaymentNotFound"},
	{domain.ErrJobNotFound, http.StatusNotFound, "JobNotFound"},
	{domain.ErrSettingNotFound, http.StatusNotFound, "SettingNotFound"},
	{domain.ErrNotFound, http.StatusNotFound, "NotFound"},

	{domain.ErrInvalidStatusTransition, http.StatusConflict, "InvalidStatusTransition"},
	{domain.ErrDuplicatePayment, http.StatusConflict, "DuplicatePayment"},
	{domain.ErrOrderCancelled, http.StatusConflict, "OrderCancelled"},
	{domain.ErrImmutableAmount, http.StatusConflict, "ImmutableAmount"},
	{domain.ErrOrderActive, http.StatusConflict, "OrderActive"},
	{domain.ErrOrderNumberCollision, http.StatusConflict, "OrderNumberCollision"},
	{domain.ErrOrderNotEditable, http.StatusConflict, "OrderNotEditable"},

	{domain.ErrInsufficientStock, http.StatusUnprocessableEntity, "InsufficientStock"},
	{domain.ErrProductNotActive, http.StatusUnprocessableEntity, "ProductNotActive"},
	{domain.ErrCurrencyMismatch, http.StatusUnprocessableEntity, "CurrencyMismatch"},

	{domain.ErrInvalidAmount, http.StatusBadRequest, "InvalidAmount"},
	{domain.ErrMissingPaidAt, http.StatusBadRequest, "MissingPaidAt"},
	{domain.ErrInvalidQuantity, http.StatusBadRequest, "InvalidQuantity"},
	{domain.ErrInvalidPaymentStatus, http.StatusBadRequest, "InvalidPaymentStatus"},
	{domain.ErrInvalidPaymentMethod, http.StatusBadRequest, "InvalidPaymentMethod"},

	{authz.ErrUnauthenticated, http.StatusUnauthorized, "Unauthenticated"},
	{authz.ErrForbidden, http.StatusForbidden, "Forbidden"},
}

// writeError maps err to a status and a stable kind. Unknown errors are logged
// and answered with a generic 500 so no SQL detail leaks.
func (h *Handler) writeError(c *gin.Context, err error) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			c.AbortWithStatusJSON(k.status, ErrorResponse{Error: k.kind, Message: k.err.Error()})
			return
		}
	}

	var validationErr domain.ValidationError
	if errors.As(err, &validationErr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "ValidationError", Message: validationErr.Error()})
		return
	}

	h.logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal", Message: "internal error"})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "ValidationError", Message: message})
}
