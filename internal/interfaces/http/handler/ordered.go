package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	fulfillmentapp "github.com/tshirtshop/backend/internal/application/fulfillment"
	"github.com/tshirtshop/backend/internal/application/lifecycle"
	"github.com/tshirtshop/backend/internal/domain/fulfillment"
	"github.com/tshirtshop/backend/internal/domain/shared"
	"github.com/tshirtshop/backend/internal/interfaces/http/middleware"
)

// OrderedRequest is the body of POST /ordered and PUT /ordered/:id.
// Create ignores date and state.
type OrderedRequest struct {
	OrderID int64  `json:"orderId" binding:"required,min=1"`
	UserID  int64  `json:"userId" binding:"required,min=1"`
	Date    string `json:"date" binding:"omitempty,pastorpresent"`
	State   string `json:"state"`
}

func (r OrderedRequest) date() (*time.Time, error) {
	if r.Date == "" {
		return nil, nil
	}
	d, err := fulfillment.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DeliveredResponse answers GET /ordered/:id/delivered
type DeliveredResponse struct {
	ID        int64 `json:"id"`
	Delivered bool  `json:"delivered"`
}

// StateResponse answers GET /ordered/:id/state
type StateResponse struct {
	ID    int64  `json:"id"`
	State string `json:"state"`
}

// OrderedHandler serves /ordered
type OrderedHandler struct {
	BaseHandler
	tracker *fulfillmentapp.Tracker
	facade  *lifecycle.Facade
}

// NewOrderedHandler creates a new OrderedHandler
func NewOrderedHandler(tracker *fulfillmentapp.Tracker, facade *lifecycle.Facade) *OrderedHandler {
	return &OrderedHandler{tracker: tracker, facade: facade}
}

// Create handles POST /ordered
func (h *OrderedHandler) Create(c *gin.Context) {
	var req OrderedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	date, err := req.date()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.tracker.Create(c.Request.Context(), fulfillmentapp.CreateOrderedRequest{
		OrderID: req.OrderID,
		UserID:  req.UserID,
		Date:    date,
		State:   req.State,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update handles PUT /ordered/:id
func (h *OrderedHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req OrderedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	date, err := req.date()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.tracker.Update(c.Request.Context(), id, fulfillmentapp.UpdateOrderedRequest{
		OrderID: req.OrderID,
		UserID:  req.UserID,
		Date:    date,
		State:   req.State,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /ordered/:id
func (h *OrderedHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.tracker.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetByID handles GET /ordered/:id
func (h *OrderedHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.tracker.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /ordered
func (h *OrderedHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	resp, err := h.tracker.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByUser handles GET /ordered/user/:userId
func (h *OrderedHandler) ListByUser(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	resp, err := h.tracker.ListByUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByDate handles GET /ordered/date/:date with a YYYY-MM-DD date
func (h *OrderedHandler) ListByDate(c *gin.Context) {
	date, err := fulfillment.ParseDate(c.Param("date"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	resp, err := h.tracker.ListByDate(c.Request.Context(), date, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListToday handles GET /ordered/today
func (h *OrderedHandler) ListToday(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	resp, err := h.tracker.ListToday(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByState handles GET /ordered/by-state/:state
func (h *OrderedHandler) ListByState(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	resp, err := h.tracker.ListByState(c.Request.Context(), c.Param("state"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CountByState handles GET /ordered/count/:state
func (h *OrderedHandler) CountByState(c *gin.Context) {
	resp, err := h.tracker.CountByState(c.Request.Context(), c.Param("state"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetState handles GET /ordered/state/:id and GET /ordered/:id/state
func (h *OrderedHandler) GetState(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	state, err := h.tracker.GetState(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, StateResponse{ID: id, State: state.String()})
}

// IsDelivered handles GET /ordered/:id/delivered
func (h *OrderedHandler) IsDelivered(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	delivered, err := h.tracker.IsDelivered(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DeliveredResponse{ID: id, Delivered: delivered})
}

// TransitionState handles PUT /ordered/:id/state?state=X
func (h *OrderedHandler) TransitionState(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	state := c.Query("state")
	if state == "" {
		h.HandleError(c, shared.NewDomainError(shared.CodeInvalidInput, "Query parameter state is required"))
		return
	}

	resp, err := h.facade.AdvanceFulfillment(c.Request.Context(), id, state)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
