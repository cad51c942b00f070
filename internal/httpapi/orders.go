package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// createOrder retries when the random order number collides with an existing one.
// POST /orders
func (h *Handler) createOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := domain.CreateOrderInput{
		CustomerName:    req.CustomerName,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		Items: lo.Map(req.Items, func(item OrderLineRequest, _ int) domain.OrderLine {
			return domain.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity}
		}),
	}

	actor := actorFrom(c)

	var (
		order domain.Order
		err   error
	)
	for attempt := 1; attempt <= createOrderAttempts; attempt++ {
		order, err = h.svc.Orders.CreateOrder(c.Request.Context(), actor.ID, in)
		if !errors.Is(err, domain.ErrOrderNumberCollision) {
			break
		}
		h.logger.Warn("order number collision",
			zap.String("method", "createOrder"),
			zap.Int("attempt", attempt),
		)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// GET /orders/:id
func (h *Handler) getOrder(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.svc.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// searchOrders needs at least one of status, payment_status, user_id or id.
// GET /orders
func (h *Handler) searchOrders(c *gin.Context) {
	var filter domain.OrderFilter

	for _, s := range c.QueryArray("status") {
		status, err := domain.ToOrderStatus(s)
		if err != nil {
			badRequest(c, "status["+s+"]: "+err.Error())
			return
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	for _, s := range c.QueryArray("payment_status") {
		status, err := domain.ToPaymentStatus(s)
		if err != nil {
			h.writeError(c, err)
			return
		}
		filter.PaymentStatuses = append(filter.PaymentStatuses, status)
	}

	for _, param := range []struct {
		name string
		dst  *[]uuid.UUID
	}{
		{"user_id", &filter.UserIDs},
		{"id", &filter.IDs},
	} {
		for _, s := range c.QueryArray(param.name) {
			id, err := uuid.Parse(s)
			if err != nil {
				badRequest(c, param.name+" is not a valid uuid")
				return
			}
			*param.dst = append(*param.dst, id)
		}
	}

	if s := c.Query("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil {
			badRequest(c, "limit is not a number")
			return
		}
		filter.Limit = limit
	}

	if err := filter.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	orders, err := h.svc.Orders.SearchOrders(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(orders, func(o domain.Order, _ int) OrderResponse {
		return toOrderResponse(o)
	}))
}

// PATCH /orders/:id
func (h *Handler) updateOrder(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	order, err := h.svc.Orders.UpdateOrder(c.Request.Context(), id, actorFrom(c).ID, domain.UpdateOrderInput{
		Status:        (*domain.OrderStatus)(req.Status),
		PaymentStatus: (*domain.PaymentStatus)(req.PaymentStatus),
		Notes:         req.Notes,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// DELETE /orders/:id
func (h *Handler) deleteOrder(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Orders.DeleteOrder(c.Request.Context(), id, actorFrom(c).ID); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// POST /orders/:id/items
func (h *Handler) addOrderItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	order, err := h.svc.Orders.AddOrderItem(c.Request.Context(), actorFrom(c).ID, domain.AddOrderItemInput{
		OrderID:   id,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// GET /orders/:id/payments
func (h *Handler) listOrderPayments(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	payments, err := h.svc.Payments.ListOrderPayments(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(payments, func(p domain.Payment, _ int) PaymentResponse {
		return toPaymentResponse(p)
	}))
}
