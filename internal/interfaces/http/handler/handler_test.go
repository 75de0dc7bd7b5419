package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	fulfillmentapp "github.com/tshirtshop/backend/internal/application/fulfillment"
	"github.com/tshirtshop/backend/internal/application/lifecycle"
	orderapp "github.com/tshirtshop/backend/internal/application/order"
	"github.com/tshirtshop/backend/internal/domain/identity"
	"github.com/tshirtshop/backend/internal/interfaces/http/dto"
	"github.com/tshirtshop/backend/internal/interfaces/http/middleware"
	"github.com/tshirtshop/backend/tests/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var testToday = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

// lifecycleHarness wires real services over mocked repositories
type lifecycleHarness struct {
	orders    *testutil.MockOrderRepository
	ordered   *testutil.MockOrderedRepository
	products  *testutil.MockCatalogLookup
	users     *testutil.MockUserRepository
	publisher *testutil.RecordingPublisher
	engine    *gin.Engine
}

func newLifecycleHarness(t *testing.T) *lifecycleHarness {
	t.Helper()
	h := &lifecycleHarness{
		orders:    new(testutil.MockOrderRepository),
		ordered:   new(testutil.MockOrderedRepository),
		products:  new(testutil.MockCatalogLookup),
		users:     new(testutil.MockUserRepository),
		publisher: &testutil.RecordingPublisher{},
	}

	orderService := orderapp.NewOrderService(h.orders, h.products, h.users, h.ordered)
	carts := orderapp.NewActiveOrderManager(h.orders, h.products, h.users)
	carts.SetEventPublisher(h.publisher)
	tracker := fulfillmentapp.NewTracker(h.ordered, h.orders, h.users)
	tracker.SetClock(testutil.FixedClock(testToday))
	tracker.SetEventPublisher(h.publisher)
	facade := lifecycle.NewFacade(carts, tracker, h.orders, h.ordered, &testutil.PassthroughTransactor{})
	facade.SetClock(testutil.FixedClock(testToday))
	facade.SetEventPublisher(h.publisher)

	orderHandler := NewOrderHandler(orderService, facade)
	orderedHandler := NewOrderedHandler(tracker, facade)

	engine := gin.New()
	engine.Use(middleware.RequestID(), fakeAuth())

	o := engine.Group("/order")
	o.POST("", orderHandler.Create)
	o.GET("", orderHandler.List)
	o.GET("/active", orderHandler.ListActive)
	o.GET("/active-order", orderHandler.ActiveOrder)
	o.PUT("/active-order/add-product", orderHandler.AddToActiveOrder)
	o.POST("/create-active-order", orderHandler.CreateActiveOrder)
	o.GET("/user/:userId", orderHandler.ListByUser)
	o.GET("/:id", orderHandler.GetByID)
	o.PUT("/:id", orderHandler.Update)
	o.DELETE("/:id", orderHandler.Delete)
	o.PUT("/:id/add-product", orderHandler.AddProduct)
	o.POST("/:id/place", orderHandler.Place)

	od := engine.Group("/ordered")
	od.POST("", orderedHandler.Create)
	od.GET("", orderedHandler.List)
	od.GET("/today", orderedHandler.ListToday)
	od.GET("/user/:userId", orderedHandler.ListByUser)
	od.GET("/date/:date", orderedHandler.ListByDate)
	od.GET("/count/:state", orderedHandler.CountByState)
	od.GET("/by-state/:state", orderedHandler.ListByState)
	od.GET("/state/:id", orderedHandler.GetState)
	od.GET("/:id", orderedHandler.GetByID)
	od.PUT("/:id", orderedHandler.Update)
	od.DELETE("/:id", orderedHandler.Delete)
	od.GET("/:id/state", orderedHandler.GetState)
	od.GET("/:id/delivered", orderedHandler.IsDelivered)
	od.PUT("/:id/state", orderedHandler.TransitionState)

	h.engine = engine
	return h
}

// fakeAuth authenticates requests from the X-Test-User header; X-Test-Role
// overrides the default USER role
func fakeAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-Test-User"); raw != "" {
			id, _ := strconv.ParseInt(raw, 10, 64)
			role := identity.RoleUser
			if r := c.GetHeader("X-Test-Role"); r != "" {
				role = identity.Role(r)
			}
			c.Set(middleware.JWTUserIDKey, id)
			c.Set(middleware.JWTRoleKey, role)
		}
		c.Next()
	}
}

type call struct {
	method string
	path   string
	body   any
	user   string
	role   identity.Role
}

func (h *lifecycleHarness) do(t *testing.T, req call) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if req.body != nil {
		switch b := req.body.(type) {
		case string:
			body = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			body = bytes.NewReader(raw)
		}
	}
	r := httptest.NewRequest(req.method, req.path, body)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.user != "" {
		r.Header.Set("X-Test-User", req.user)
	}
	if req.role != "" {
		r.Header.Set("X-Test-Role", string(req.role))
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, r)
	return w
}

// decode unmarshals the envelope data into out and returns the envelope
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) dto.Response {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *dto.ErrorInfo  `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	if out != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, out))
	}
	return dto.Response{Success: raw.Success, Error: raw.Error}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decode(t, w, nil)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}
