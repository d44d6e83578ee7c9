// Package http provides HTTP handlers for key management and cryptographic
// operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/kms/internal/httputil"
	kmsDomain "github.com/allisson/kms/internal/kms/domain"
	"github.com/allisson/kms/internal/kms/http/dto"
	kmsUseCase "github.com/allisson/kms/internal/kms/usecase"
	customValidation "github.com/allisson/kms/internal/validation"
)

// KeyHandler handles HTTP requests for key lifecycle management.
type KeyHandler struct {
	kmsUseCase kmsUseCase.KMSUseCase
	logger     *slog.Logger
}

// NewKeyHandler creates a new key handler with required dependencies.
func NewKeyHandler(useCase kmsUseCase.KMSUseCase, logger *slog.Logger) *KeyHandler {
	return &KeyHandler{
		kmsUseCase: useCase,
		logger:     logger,
	}
}

// RegisterRoutes mounts the key lifecycle routes.
func (h *KeyHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/keys", h.CreateKeyHandler)
	group.GET("/keys", h.ListKeysHandler)
	group.GET("/keys/:id", h.DescribeKeyHandler)
	group.POST("/keys/:id/enable", h.EnableKeyHandler)
	group.POST("/keys/:id/disable", h.DisableKeyHandler)
	group.POST("/keys/:id/schedule-deletion", h.ScheduleKeyDeletionHandler)
	group.DELETE("/keys/:id", h.DeleteKeyHandler)
}

// CreateKeyHandler creates a new key.
// POST /v1/keys - Returns 201 Created with the key metadata.
func (h *KeyHandler) CreateKeyHandler(c *gin.Context) {
	var req dto.CreateKeyRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	usage := kmsDomain.KeyUsage(req.Usage)
	if usage == "" {
		usage = kmsDomain.UsageEncryptDecrypt
	}

	metadata, err := h.kmsUseCase.CreateKey(c.Request.Context(), req.Description, usage)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapKeyToResponse(metadata))
}

// ListKeysHandler lists all keys.
// GET /v1/keys - Returns 200 OK with all key metadata.
func (h *KeyHandler) ListKeysHandler(c *gin.Context) {
	keys, err := h.kmsUseCase.ListKeys(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKeysToListResponse(keys))
}

// DescribeKeyHandler returns the metadata for a key.
// GET /v1/keys/:id - Returns 200 OK with the key metadata.
func (h *KeyHandler) DescribeKeyHandler(c *gin.Context) {
	keyID, ok := h.keyIDParam(c)
	if !ok {
		return
	}

	metadata, err := h.kmsUseCase.DescribeKey(c.Request.Context(), keyID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKeyToResponse(metadata))
}

// EnableKeyHandler transitions a key to the enabled state.
// POST /v1/keys/:id/enable - Returns 204 No Content.
func (h *KeyHandler) EnableKeyHandler(c *gin.Context) {
	keyID, ok := h.keyIDParam(c)
	if !ok {
		return
	}

	if err := h.kmsUseCase.EnableKey(c.Request.Context(), keyID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DisableKeyHandler transitions a key to the disabled state.
// POST /v1/keys/:id/disable - Returns 204 No Content.
func (h *KeyHandler) DisableKeyHandler(c *gin.Context) {
	keyID, ok := h.keyIDParam(c)
	if !ok {
		return
	}

	if err := h.kmsUseCase.DisableKey(c.Request.Context(), keyID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ScheduleKeyDeletionHandler transitions a key to pending deletion.
// POST /v1/keys/:id/schedule-deletion - Returns 204 No Content.
func (h *KeyHandler) ScheduleKeyDeletionHandler(c *gin.Context) {
	keyID, ok := h.keyIDParam(c)
	if !ok {
		return
	}

	if err := h.kmsUseCase.ScheduleKeyDeletion(c.Request.Context(), keyID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteKeyHandler removes a key record.
// DELETE /v1/keys/:id - Returns 204 No Content.
func (h *KeyHandler) DeleteKeyHandler(c *gin.Context) {
	keyID, ok := h.keyIDParam(c)
	if !ok {
		return
	}

	if err := h.kmsUseCase.DeleteKey(c.Request.Context(), keyID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// keyIDParam extracts and validates the key id URL parameter. Malformed
// identifiers map to the invalid key id wire error.
func (h *KeyHandler) keyIDParam(c *gin.Context) (string, bool) {
	keyID := c.Param("id")
	if err := customValidation.KeyID.Validate(keyID); err != nil || keyID == "" {
		httputil.HandleErrorGin(c, kmsDomain.NewInvalidKeyID("'%s' is not a valid key id", keyID), h.logger)
		return "", false
	}
	return keyID, true
}
