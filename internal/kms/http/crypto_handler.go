package http

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/kms/internal/httputil"
	kmsDomain "github.com/allisson/kms/internal/kms/domain"
	"github.com/allisson/kms/internal/kms/http/dto"
	kmsUseCase "github.com/allisson/kms/internal/kms/usecase"
	customValidation "github.com/allisson/kms/internal/validation"
)

// CryptoHandler handles HTTP requests for encrypt and decrypt operations.
type CryptoHandler struct {
	kmsUseCase kmsUseCase.KMSUseCase
	logger     *slog.Logger
}

// NewCryptoHandler creates a new crypto handler with required dependencies.
func NewCryptoHandler(useCase kmsUseCase.KMSUseCase, logger *slog.Logger) *CryptoHandler {
	return &CryptoHandler{
		kmsUseCase: useCase,
		logger:     logger,
	}
}

// RegisterRoutes mounts the cryptographic operation routes.
func (h *CryptoHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/encrypt", h.EncryptHandler)
	group.POST("/decrypt", h.DecryptHandler)
}

// EncryptHandler seals plaintext under the identified key.
// POST /v1/encrypt - Returns 200 OK with the base64 ciphertext blob.
func (h *CryptoHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest

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

	// Decode base64 plaintext
	plaintext, err := base64.StdEncoding.DecodeString(req.Plaintext)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	result, err := h.kmsUseCase.Encrypt(
		c.Request.Context(),
		plaintext,
		req.KeyID,
		kmsDomain.Algorithm(req.Algorithm),
		kmsDomain.EncryptionContext(req.Context),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEncryptResponse(result))
}

// DecryptHandler opens a ciphertext blob. With no key id the service scans
// all enabled keys.
// POST /v1/decrypt - Returns 200 OK with the base64 plaintext.
func (h *CryptoHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest

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

	// Decode base64 ciphertext blob
	blob, err := base64.StdEncoding.DecodeString(req.CiphertextBlob)
	if err != nil {
		httputil.HandleErrorGin(c, kmsDomain.NewInvalidCiphertext("ciphertext blob is not valid base64"), h.logger)
		return
	}

	result, err := h.kmsUseCase.Decrypt(
		c.Request.Context(),
		blob,
		req.KeyID,
		kmsDomain.Algorithm(req.Algorithm),
		kmsDomain.EncryptionContext(req.Context),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDecryptResponse(result))
}
