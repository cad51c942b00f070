package service_test

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/events"
)

func (suite *serviceSuite) TestRestock() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("3.00", 5, 1))
	actorID := uuid.New()

	inv, err := suite.inventoryService.Restock(suite.T().Context(), domain.StockAdjustment{
		ProductID: product.ID,
		Quantity:  7,
		Reason:    "supplier delivery",
		ActorID:   actorID,
	})
	suite.Require().NoError(err)
	suite.Equal(12, inv.Stock)
	suite.NotNil(inv.LastRestockedAt)

	_, err = suite.inventoryService.Restock(suite.T().Context(), domain.StockAdjustment{
		ProductID: product.ID,
		Quantity:  0,
		Reason:    "nothing",
		ActorID:   actorID,
	})
	suite.Require().ErrorIs(err, domain.ErrInvalidQuantity)

	_, err = suite.inventoryService.Restock(suite.T().Context(), domain.StockAdjustment{
		ProductID: uuid.New(),
		Quantity:  1,
		Reason:    "ghost",
		ActorID:   actorID,
	})
	suite.Require().ErrorIs(err, domain.ErrInventoryNotFound)

	suite.Equal([]events.AuditAction{events.AuditActionRestock}, suite.emitter.auditActions("inventory"))
	suite.assertHistorySum(product.ID, 5)
}

func (suite *serviceSuite) TestDecrement() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("3.00", 5, 2))
	ctx := suite.T().Context()

	inv, err := suite.inventoryService.Decrement(ctx, domain.StockAdjustment{
		ProductID: product.ID,
		Quantity:  2,
		Reason:    "damaged",
		ActorID:   uuid.New(),
	})
	suite.Require().NoError(err)
	suite.Equal(3, inv.Stock)
	suite.Empty(suite.emitter.notificationsOf(events.NotificationLowStock))

	_, err = suite.inventoryService.Decrement(ctx, domain.StockAdjustment{
		ProductID: product.ID,
		Quantity:  4,
		Reason:    "damaged",
		ActorID:   uuid.New(),
	})
	suite.Require().ErrorIs(err, domain.ErrInsufficientStock)

	inv, err = suite.inventoryService.Decrement(ctx, domain.StockAdjustment{
		ProductID: product.ID,
		Quantity:  1,
		Reason:    "damaged",
		ActorID:   uuid.New(),
	})
	suite.Require().NoError(err)
	suite.Equal(2, inv.Stock)

	suite.Len(suite.emitter.notificationsOf(events.NotificationLowStock), 1)
	suite.Equal([]string{"inventory.low_stock"}, suite.queue.names())
	suite.assertHistorySum(product.ID, 5)
}

func (suite *serviceSuite) TestGetHistories_Paging() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("3.00", 0, 0))
	ctx := suite.T().Context()

	for i := range 5 {
		_, err := suite.inventoryService.Restock(ctx, domain.StockAdjustment{
			ProductID: product.ID,
			Quantity:  i + 1,
			Reason:    "batch",
			ActorID:   uuid.New(),
		})
		suite.Require().NoError(err)
	}

	page, err := suite.inventoryService.GetHistories(ctx, domain.InventoryHistoryFilter{
		ProductID: &product.ID,
		Page:      2,
		Limit:     2,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(5), page.Total)
	suite.Require().Len(page.Items, 2)
	suite.Equal(3, page.Items[0].Change)
	suite.Equal(2, page.Items[1].Change)

	again, err := suite.inventoryService.GetHistories(ctx, domain.InventoryHistoryFilter{
		ProductID: &product.ID,
		Page:      2,
		Limit:     2,
	})
	suite.Require().NoError(err)
	assertDiff(suite.T(), page, again)
}

func (suite *serviceSuite) TestCreateProduct() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("3.00", 9, 1))

	got, err := suite.productService.GetProduct(suite.T().Context(), product.ID)
	suite.Require().NoError(err)
	assertDiff(suite.T(), product, got)

	suite.Equal(9, suite.stock(product.ID))
	suite.Empty(suite.histories(product.ID))
	suite.Equal([]events.AuditAction{events.AuditActionCreate}, suite.emitter.auditActions("product"))

	_, err = suite.productService.CreateProduct(suite.T().Context(), uuid.New(), domain.NewProduct{})
	var validationErr domain.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
}
