package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tshirtshop/backend/internal/interfaces/http/handler"
	"github.com/tshirtshop/backend/internal/interfaces/http/middleware"
)

// AuthRoutes mounts /auth. Signup and login are public; authn guards /me.
func AuthRoutes(h *handler.AuthHandler, authn gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("auth", "/auth")
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.GET("/me", authn, h.Me)
	return g
}

// OrderRoutes mounts /order behind authn
func OrderRoutes(h *handler.OrderHandler, authn gin.HandlerFunc) *DomainGroup {
	admin := middleware.RequireAdmin()

	g := NewDomainGroup("order", "/order").Use(authn)
	g.POST("", admin, h.Create)
	g.GET("", admin, h.List)
	g.GET("/active", admin, h.ListActive)
	g.GET("/active-order", h.ActiveOrder)
	g.PUT("/active-order/add-product", h.AddToActiveOrder)
	g.POST("/create-active-order", h.CreateActiveOrder)
	g.GET("/user/:userId", h.ListByUser)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", admin, h.Update)
	g.DELETE("/:id", admin, h.Delete)
	g.PUT("/:id/add-product", h.AddProduct)
	g.POST("/:id/place", h.Place)
	return g
}

// OrderedRoutes mounts /ordered behind authn
func OrderedRoutes(h *handler.OrderedHandler, authn gin.HandlerFunc) *DomainGroup {
	admin := middleware.RequireAdmin()

	g := NewDomainGroup("ordered", "/ordered").Use(authn)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/today", h.ListToday)
	g.GET("/user/:userId", h.ListByUser)
	g.GET("/date/:date", h.ListByDate)
	g.GET("/count/:state", h.CountByState)
	g.GET("/by-state/:state", h.ListByState)
	g.GET("/state/:id", h.GetState)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", admin, h.Update)
	g.DELETE("/:id", admin, h.Delete)
	g.GET("/:id/state", h.GetState)
	g.GET("/:id/delivered", h.IsDelivered)
	g.PUT("/:id/state", h.TransitionState)
	return g
}

// RegisterHealth mounts the health endpoints at the engine root
func RegisterHealth(engine *gin.Engine, h *handler.SystemHandler) {
	engine.GET("/health", h.Health)
	engine.GET("/health/ready", h.Ready)
}
