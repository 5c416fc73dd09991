// Package router contains routing setup for the HTTP delivery.
package router

import (
	"purposepay/internal/delivery/http/middleware"
	"purposepay/internal/delivery/http/router/handler"
	"purposepay/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds all handlers that need to be registered, injected by Fx.
type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	VendorHandler  *handler.VendorHandler
	PayoutHandler  *handler.PayoutHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	vendorHandler  *handler.VendorHandler
	payoutHandler  *handler.PayoutHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		vendorHandler:  params.VendorHandler,
		payoutHandler:  params.PayoutHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Registration and login are the only endpoints reachable without a
	// session token
	e.POST("/account/register", r.accountHandler.Register)
	e.POST("/auth/login", r.accountHandler.Login)

	authGroup := e.Group("/auth")
	authGroup.Use(r.authMiddleware.Authenticate)
	{
		authGroup.POST("/logout", r.accountHandler.Logout)
	}

	// Account routes that require authentication
	accountGroup := e.Group("/account")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.GET("/me", r.accountHandler.GetMe)
		accountGroup.PATCH("/me", r.accountHandler.UpdateMe)
		accountGroup.PUT("/me", r.accountHandler.UpdateMe)
	}

	vendorGroup := e.Group("/vendor")
	vendorGroup.Use(r.authMiddleware.Authenticate)

	// Customer-facing directory of approved vendors
	{
		vendorGroup.GET("/public", r.vendorHandler.ListPublic)
		vendorGroup.GET("/public/:id", r.vendorHandler.GetPublic)
	}

	// Vendor self-service routes (require the vendor role)
	ownGroup := vendorGroup.Group("")
	ownGroup.Use(r.authMiddleware.RequireRole(entity.RoleVendor))
	{
		ownGroup.POST("/create", r.vendorHandler.CreateProfile)
		ownGroup.GET("/me", r.vendorHandler.GetOwnProfile)
		ownGroup.PATCH("/me", r.vendorHandler.UpdateOwnProfile)
		ownGroup.POST("/me/submit", r.vendorHandler.Submit)
		ownGroup.POST("/me/reopen", r.vendorHandler.Reopen)

		ownGroup.POST("/me/documents", r.vendorHandler.AddDocument)
		ownGroup.DELETE("/me/documents/:id", r.vendorHandler.RemoveDocument)
		ownGroup.POST("/me/locations", r.vendorHandler.AddLocation)
		ownGroup.DELETE("/me/locations/:id", r.vendorHandler.RemoveLocation)

		ownGroup.POST("/payout", r.payoutHandler.RequestPayout)
		ownGroup.GET("/payouts", r.payoutHandler.ListPayouts)
	}

	// Staff review and settlement routes (require the staff role)
	adminGroup := vendorGroup.Group("/admin")
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleStaff))
	{
		adminGroup.GET("", r.vendorHandler.AdminList)
		adminGroup.GET("/:id", r.vendorHandler.AdminGet)
		adminGroup.PATCH("/:id", r.vendorHandler.AdminUpdate)
		adminGroup.POST("/:id/approve", r.vendorHandler.Approve)
		adminGroup.POST("/:id/reject", r.vendorHandler.Reject)
		adminGroup.POST("/:id/credit", r.vendorHandler.Credit)
	}
}
