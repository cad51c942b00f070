package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
)

// GET /inventory/:productId
func (h *Handler) getInventory(c *gin.Context) {
	productID, ok := pathUUID(c, "productId")
	if !ok {
		return
	}

	inv, err := h.svc.Inventory.GetByProductID(c.Request.Context(), productID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toInventoryResponse(inv))
}

// POST /inventory/:productId/restock
func (h *Handler) restock(c *gin.Context) {
	productID, ok := pathUUID(c, "productId")
	if !ok {
		return
	}

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	inv, err := h.svc.Inventory.Restock(c.Request.Context(), domain.StockAdjustment{
		ProductID: productID,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		ActorID:   actorFrom(c).ID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toInventoryResponse(inv))
}

// GET /inventory/histories?product_id=&user_id=&reason=&page=&limit=
func (h *Handler) getHistories(c *gin.Context) {
	var filter domain.InventoryHistoryFilter

	for _, param := range []struct {
		name string
		dst  **uuid.UUID
	}{
		{"product_id", &filter.ProductID},
		{"user_id", &filter.UserID},
	} {
		if s := c.Query(param.name); s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				badRequest(c, param.name+" is not a valid uuid")
				return
			}
			*param.dst = &id
		}
	}

	filter.ReasonContains = c.Query("reason")

	for _, param := range []struct {
		name string
		dst  *int
	}{
		{"page", &filter.Page},
		{"limit", &filter.Limit},
	} {
		if s := c.Query(param.name); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				badRequest(c, param.name+" is not a number")
				return
			}
			*param.dst = n
		}
	}

	page, err := h.svc.Inventory.GetHistories(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toHistoryPageResponse(page))
}

// POST /products
func (h *Handler) createProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	cur, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	status := domain.ProductStatusActive
	if req.Status != "" {
		status = domain.ProductStatus(req.Status)
	}

	product, err := h.svc.Products.CreateProduct(c.Request.Context(), actorFrom(c).ID, domain.NewProduct{
		Name:           req.Name,
		SKU:            req.SKU,
		Price:          domain.NewMoney(req.Price, cur),
		Status:         status,
		InitialStock:   req.InitialStock,
		LowStockLevel:  req.LowStockLevel,
		StockThreshold: req.StockThreshold,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(product))
}
