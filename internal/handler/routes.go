package handler

import (
	"procurement-service/internal/service"

	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler of the service
type Handlers struct {
	Orders      *OrderHandler
	Suppliers   *SupplierHandler
	Attachments *AttachmentHandler
	Settings    *SettingsHandler
}

// RouteOptions controls how routes are guarded
type RouteOptions struct {
	// Session guards every data route
	Session echo.MiddlewareFunc
	// PublicDropdowns leaves the settings and stage lists unguarded
	PublicDropdowns bool
}

// Register mounts the API on e
func Register(e *echo.Echo, h *Handlers, opts RouteOptions) {
	// Public routes that don't require authentication
	e.GET("/", Hello)
	e.GET("/health", Hello)

	var dropdownGuard []echo.MiddlewareFunc
	if !opts.PublicDropdowns {
		dropdownGuard = append(dropdownGuard, opts.Session)
	}
	e.GET("/settings/statuses", h.Settings.Statuses, dropdownGuard...)
	e.GET("/settings/currencies", h.Settings.Currencies, dropdownGuard...)
	e.GET("/stages-for-dropdown", h.Settings.Stages, dropdownGuard...)

	orders := e.Group("/orders", opts.Session)
	orders.GET("/count", h.Orders.Count)
	orders.PUT("/:id/status", h.Orders.UpdateStatus)
	orders.GET("/:id/files", h.Attachments.List(service.KindOrder))
	orders.DELETE("/:id/files", h.Attachments.Delete(service.KindOrder))

	suppliers := e.Group("/suppliers", opts.Session)
	suppliers.GET("/archive", h.Suppliers.ListArchived)
	suppliers.GET("/archive/export", h.Suppliers.ExportArchived)
	suppliers.PATCH("/:id/archive", h.Suppliers.Archive)
	suppliers.PATCH("/:id/restore", h.Suppliers.Restore)
	suppliers.DELETE("/:id/delete-permanently", h.Suppliers.DeletePermanently)
	suppliers.GET("/:id/files", h.Attachments.List(service.KindSupplier))
	suppliers.DELETE("/:id/files", h.Attachments.Delete(service.KindSupplier))
}
