package handler

import (
	"net/http"

	"procurement-service/internal/service"

	"github.com/labstack/echo/v4"
)

// SettingsHandler serves the lists order forms are built from. Settings
// reads never fail: the service falls back to built-in lists.
type SettingsHandler struct {
	settings *service.SettingsService
	stages   *service.StageService
}

func NewSettingsHandler(settings *service.SettingsService, stages *service.StageService) *SettingsHandler {
	return &SettingsHandler{settings: settings, stages: stages}
}

func (h *SettingsHandler) Statuses(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"statuses": h.settings.GetOrderStatuses(c.Request().Context()),
	})
}

func (h *SettingsHandler) Currencies(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"currencies": h.settings.GetCurrencies(c.Request().Context()),
	})
}

// Stages lists the active stage templates for the stage dropdown
func (h *SettingsHandler) Stages(c echo.Context) error {
	stages, err := h.stages.ListActiveStages(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stages)
}
