package handler

import (
	"strconv"

	"procurement-service/pkg/apperrors"
	"procurement-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const internalMessage = "Internal server error"

// respondError writes err as {"error": message} with the status of its kind.
// Causes of internal errors are logged and never returned.
func respondError(c echo.Context, err error) error {
	kind := apperrors.KindOf(err)
	log := logger.FromEcho(c)
	if kind == apperrors.KindInternal {
		log.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
	} else {
		log.Debug("Request rejected", zap.String("kind", kind.String()), zap.Error(err))
	}
	return c.JSON(kind.Status(), echo.Map{"error": apperrors.DisplayMessage(err, internalMessage)})
}

// paramID parses a positive numeric path parameter
func paramID(c echo.Context, name, message string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation(message)
	}
	return uint(id), nil
}
