package handler

import (
	"net/http"
	"strconv"

	"procurement-service/internal/service"
	"procurement-service/pkg/apperrors"
	"procurement-service/pkg/logger"
	"procurement-service/pkg/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StatusRequest is the body of PUT /orders/:id/status
type StatusRequest struct {
	Status string `json:"status" validate:"max=100"`
}

// OrderHandler serves order status and counting
type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// UpdateStatus sets the status of an order
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := paramID(c, "id", "Invalid order ID")
	if err != nil {
		return respondError(c, err)
	}

	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		logger.FromEcho(c).Debug("Invalid status request", zap.Error(err))
		return respondError(c, apperrors.Validation("Invalid request data"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.Validation(validation.Message(err)))
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// Count counts orders created in the year given by the query. A database
// failure still answers with the year and a zero count.
func (h *OrderHandler) Count(c echo.Context) error {
	raw := c.QueryParam("year")
	if raw == "" {
		return respondError(c, apperrors.Validation("Year is required"))
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return respondError(c, apperrors.Validation("Year must be a number"))
	}

	result, err := h.orders.CountOrders(c.Request().Context(), year)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindInternal {
			return respondError(c, err)
		}
		logger.FromEcho(c).Error("Order count failed", zap.Int("year", year), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"count": 0,
			"year":  result.Year,
			"error": apperrors.DisplayMessage(err, internalMessage),
		})
	}
	return c.JSON(http.StatusOK, result)
}
