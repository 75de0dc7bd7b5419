package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/tshirtshop/backend/internal/application/order"
	"github.com/tshirtshop/backend/internal/application/lifecycle"
	"github.com/tshirtshop/backend/internal/interfaces/http/middleware"
)

// OrderProductRequest is the body of the cart endpoints
type OrderProductRequest struct {
	ProductID int64 `json:"productId" binding:"required,min=1"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest is the body of POST /order
type CreateOrderRequest struct {
	UserID     int64   `json:"userId" binding:"required,min=1"`
	ProductIDs []int64 `json:"productIds" binding:"dive,min=1"`
	Address    string  `json:"address" binding:"max=500"`
}

// UpdateOrderRequest is the body of PUT /order/:id
type UpdateOrderRequest struct {
	UserID     int64   `json:"userId" binding:"required,min=1"`
	ProductIDs []int64 `json:"productIds" binding:"dive,min=1"`
	Address    string  `json:"address" binding:"max=500"`
	Active     bool    `json:"active"`
}

// PlaceOrderRequest is the body of POST /order/:id/place
type PlaceOrderRequest struct {
	Address string `json:"address" binding:"required,max=500"`
}

// OrderHandler serves /order. Plain CRUD goes to the order service; cart
// and checkout flows go through the lifecycle facade.
type OrderHandler struct {
	BaseHandler
	orders *orderapp.OrderService
	facade *lifecycle.Facade
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderapp.OrderService, facade *lifecycle.Facade) *OrderHandler {
	return &OrderHandler{orders: orders, facade: facade}
}

// Create handles POST /order
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.orders.Create(c.Request.Context(), orderapp.CreateOrderRequest{
		UserID:     req.UserID,
		ProductIDs: req.ProductIDs,
		Address:    req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update handles PUT /order/:id
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.orders.Update(c.Request.Context(), id, orderapp.UpdateOrderRequest{
		UserID:     req.UserID,
		ProductIDs: req.ProductIDs,
		Address:    req.Address,
		Active:     req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /order/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetByID handles GET /order/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	viewer, err := viewerOf(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.orders.GetByID(c.Request.Context(), id, viewer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /order
func (h *OrderHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	resp, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByUser handles GET /order/user/:userId
func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	viewer, err := viewerOf(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	resp, err := h.orders.ListByUser(c.Request.Context(), userID, viewer, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListActive handles GET /order/active
func (h *OrderHandler) ListActive(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	resp, err := h.orders.ListActive(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateActiveOrder handles POST /order/create-active-order. Any active
// order the caller already has is retired.
func (h *OrderHandler) CreateActiveOrder(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req OrderProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.facade.StartCart(c.Request.Context(), userID, orderapp.OrderProductRequest{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddProduct handles PUT /order/:id/add-product
func (h *OrderHandler) AddProduct(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req OrderProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.facade.AddToCart(c.Request.Context(), orderID, userID, orderapp.OrderProductRequest{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddToActiveOrder handles PUT /order/active-order/add-product. A cart is
// started when the caller has none.
func (h *OrderHandler) AddToActiveOrder(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req OrderProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.facade.AddToActiveCart(c.Request.Context(), userID, orderapp.OrderProductRequest{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ActiveOrder handles GET /order/active-order; 204 when the caller has none
func (h *OrderHandler) ActiveOrder(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.facade.ActiveCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if resp == nil {
		h.NoContent(c)
		return
	}
	h.Success(c, resp)
}

// Place handles POST /order/:id/place
func (h *OrderHandler) Place(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.facade.PlaceOrder(c.Request.Context(), orderID, userID, lifecycle.PlaceOrderRequest{
		Address: req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
