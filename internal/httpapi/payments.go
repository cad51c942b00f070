package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/backoffice/internal/domain"
)

// POST /payments/:orderId
func (h *Handler) createPayment(c *gin.Context) {
	orderID, ok := pathUUID(c, "orderId")
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	payment, err := h.svc.Payments.CreatePayment(c.Request.Context(), actorFrom(c).ID, domain.CreatePaymentInput{
		OrderID:       orderID,
		Status:        domain.PaymentStatus(req.Status),
		Method:        domain.PaymentMethod(req.Method),
		Amount:        req.Amount,
		PaidAt:        req.PaidAt,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

// GET /payments/:id
func (h *Handler) getPayment(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	payment, err := h.svc.Payments.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPaymentResponse(payment))
}

// PATCH /payments/:id
func (h *Handler) updatePayment(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	payment, err := h.svc.Payments.UpdatePayment(c.Request.Context(), id, actorFrom(c).ID, domain.UpdatePaymentInput{
		Status:        (*domain.PaymentStatus)(req.Status),
		Method:        (*domain.PaymentMethod)(req.Method),
		Amount:        req.Amount,
		PaidAt:        req.PaidAt,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPaymentResponse(payment))
}

// DELETE /payments/:id
func (h *Handler) deletePayment(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Payments.DeletePayment(c.Request.Context(), id, actorFrom(c).ID); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
