package orderserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/Apurer/go-gin-order-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
)

// OrdersAPI wires HTTP transport with the orders bounded context service.
type OrdersAPI struct {
	service ordersports.Service
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ordersports.Service) OrdersAPI {
	return OrdersAPI{service: service}
}

// Post /api/orders
// Create a new order owned by the authenticated caller
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		respondProblem(c, unauthenticated())
		return
	}
	var payload orderhttpmapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := orderhttpmapper.ToDomainOrder(caller.ID, payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.CreateOrder(c.Request.Context(), order)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(created))
}

// Get /api/orders/:id
// Fetch an order by id with the owner's name and email resolved
func (api *OrdersAPI) GetOrderById(c *gin.Context) {
	view, err := api.service.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrderWithOwner(view))
}

// Put /api/orders/:id/pay
// Record the payment provider confirmation and mark the order paid
func (api *OrdersAPI) UpdateOrderToPaid(c *gin.Context) {
	var payload orderhttpmapper.PaymentConfirmation
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.UpdateOrderToPaid(c.Request.Context(), c.Param("id"), orderhttpmapper.ToDomainPaymentResult(payload))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Put /api/orders/:id/deliver
// Mark the order delivered
func (api *OrdersAPI) UpdateOrderToDelivered(c *gin.Context) {
	order, err := api.service.UpdateOrderToDelivered(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Get /api/orders/myorders
// List the authenticated caller's own orders
func (api *OrdersAPI) GetMyOrders(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		respondProblem(c, unauthenticated())
		return
	}
	orders, err := api.service.ListOrdersByUser(c.Request.Context(), caller.ID)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /api/orders
// List all orders with each owner's id and name resolved
func (api *OrdersAPI) GetOrders(c *gin.Context) {
	views, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrdersWithOwner(views))
}

func respondOrderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, ordersapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
