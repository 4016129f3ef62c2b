package handler

import (
	"net/http"

	"procurement-service/internal/service"
	"procurement-service/pkg/apperrors"
	"procurement-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FileDeleteRequest names the file to delete. The id may come in the JSON body
// or as a query parameter.
type FileDeleteRequest struct {
	FileID uint `json:"fileId" query:"fileId"`
}

// AttachmentHandler lists and deletes files of orders and suppliers
type AttachmentHandler struct {
	attachments *service.AttachmentService
}

func NewAttachmentHandler(attachments *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments}
}

func ownerMessage(kind service.OwnerKind) string {
	if kind == service.KindSupplier {
		return "Invalid supplier ID"
	}
	return "Invalid order ID"
}

// List returns a handler listing the files of the owner named by :id
func (h *AttachmentHandler) List(kind service.OwnerKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ownerID, err := paramID(c, "id", ownerMessage(kind))
		if err != nil {
			return respondError(c, err)
		}

		files, err := h.attachments.ListFiles(c.Request().Context(), kind, ownerID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, files)
	}
}

// Delete returns a handler deleting one file of the owner named by :id
func (h *AttachmentHandler) Delete(kind service.OwnerKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ownerID, err := paramID(c, "id", ownerMessage(kind))
		if err != nil {
			return respondError(c, err)
		}

		var req FileDeleteRequest
		if err := c.Bind(&req); err != nil {
			logger.FromEcho(c).Debug("Invalid file delete request", zap.Error(err))
			return respondError(c, apperrors.Validation("File ID is required"))
		}

		if err := h.attachments.DeleteFile(c.Request().Context(), kind, ownerID, req.FileID); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}
}
