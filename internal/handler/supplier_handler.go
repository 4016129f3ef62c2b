package handler

import (
	"fmt"
	"net/http"
	"time"

	"procurement-service/internal/service"

	"github.com/labstack/echo/v4"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SupplierHandler serves the supplier archive lifecycle
type SupplierHandler struct {
	suppliers *service.SupplierService
}

func NewSupplierHandler(suppliers *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

// Archive deactivates a supplier and reports how many orders it has
func (h *SupplierHandler) Archive(c echo.Context) error {
	id, err := paramID(c, "id", "Invalid supplier ID")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.suppliers.Archive(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"message":     "Supplier archived",
		"ordersCount": result.OrdersCount,
		"supplier":    result.Supplier,
	})
}

// Restore reactivates an archived supplier
func (h *SupplierHandler) Restore(c echo.Context) error {
	id, err := paramID(c, "id", "Invalid supplier ID")
	if err != nil {
		return respondError(c, err)
	}

	supplier, err := h.suppliers.Restore(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Supplier restored",
		"supplier": supplier,
	})
}

// DeletePermanently removes an archived supplier and everything it owns
func (h *SupplierHandler) DeletePermanently(c echo.Context) error {
	id, err := paramID(c, "id", "Invalid supplier ID")
	if err != nil {
		return respondError(c, err)
	}

	counts, err := h.suppliers.DeletePermanently(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Supplier deleted permanently",
		"deleted": counts,
	})
}

// ListArchived lists archived suppliers with their order counts
func (h *SupplierHandler) ListArchived(c echo.Context) error {
	suppliers, err := h.suppliers.ListArchived(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, suppliers)
}

// ExportArchived downloads the archived supplier list as a spreadsheet
func (h *SupplierHandler) ExportArchived(c echo.Context) error {
	res := c.Response()
	filename := fmt.Sprintf("archived-suppliers-%s.xlsx", time.Now().UTC().Format("20060102"))
	res.Header().Set(echo.HeaderContentType, xlsxMIME)
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	// the workbook is written only once it is complete, so an error leaves the
	// response uncommitted
	if err := h.suppliers.ExportArchived(c.Request().Context(), res); err != nil {
		res.Header().Del(echo.HeaderContentDisposition)
		return respondError(c, err)
	}
	return nil
}
