package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	kmsDomain "github.com/allisson/kms/internal/kms/domain"
	"github.com/allisson/kms/internal/kms/http/dto"
	"github.com/allisson/kms/internal/kms/http/mocks"
)

// setupTestKeyHandler creates a test key handler with mocked dependencies.
func setupTestKeyHandler(t *testing.T) (*KeyHandler, *mocks.MockKMSUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockKMSUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewKeyHandler(mockUseCase, logger)

	return handler, mockUseCase
}

func testKeyMetadata() kmsDomain.KeyMetadata {
	return kmsDomain.KeyMetadata{
		KeyID:       testKeyID,
		ARN:         kmsDomain.BuildARN(testKeyID),
		Description: "test key",
		Usage:       kmsDomain.UsageEncryptDecrypt,
		State:       kmsDomain.StateEnabled,
		KeySpec:     kmsDomain.SpecSymmetricDefault,
		CreatedAt:   time.Now().UTC(),
		Enabled:     true,
	}
}

func TestKeyHandler_CreateKeyHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestKeyHandler(t)

		metadata := testKeyMetadata()
		mockUseCase.On("CreateKey", mock.Anything, "test key", kmsDomain.UsageEncryptDecrypt).
			Return(metadata, nil).
			Once()

		request := dto.CreateKeyRequest{Description: "test key"}
		c, w := createTestContext(http.MethodPost, "/v1/keys", request)

		handler.CreateKeyHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.KeyResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, metadata.KeyID, response.KeyID)
		assert.Equal(t, metadata.ARN, response.ARN)
		assert.True(t, response.Enabled)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_DefaultUsage", func(t *testing.T) {
		handler, mockUseCase := setupTestKeyHandler(t)

		mockUseCase.On("CreateKey", mock.Anything, "", kmsDomain.UsageEncryptDecrypt).
			Return(testKeyMetadata(), nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/keys", dto.CreateKeyRequest{})

		handler.CreateKeyHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_UnsupportedUsage", func(t *testing.T) {
		handler, _ := setupTestKeyHandler(t)

		request := dto.CreateKeyRequest{Usage: "SIGN_VERIFY"}
		c, w := createTestContext(http.MethodPost, "/v1/keys", request)

		handler.CreateKeyHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "InvalidKeyUsageException")
	})
}

func TestKeyHandler_ListKeysHandler(t *testing.T) {
	t.Run("Success_ReturnsKeys", func(t *testing.T) {
		handler, mockUseCase := setupTestKeyHandler(t)

		mockUseCase.On("ListKeys", mock.Anything).
			Return([]kmsDomain.KeyMetadata{testKeyMetadata()}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/keys", nil)

		handler.ListKeysHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListKeysResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 1)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_EmptyInventory", func(t *testing.T) {
		handler, mockUseCase := setupTestKeyHandler(t)

		mockUseCase.On("ListKeys", mock.Anything).
			Return([]kmsDomain.KeyMetadata{}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/keys", nil)

		handler.ListKeysHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
		mockUseCase.AssertExpectations(t)
	})
}

func TestKeyHandler_DescribeKeyHandler(t *testing.T) {
	t.Run("Success_ExistingKey", func(t *testing.T) {
		handler, mockUseCase := setupTestKeyHandler(t)

		metadata := testKeyMetadata()
		mockUseCase.On("DescribeKey", mock.Anything, testKeyID).
			Return(metadata, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/keys/"+testKeyID, nil)
		c.Params = gin.Params{gin.Param{Key: "id", Value: testKeyID}}

		handler.DescribeKeyHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.KeyResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, metadata.KeyID, response.KeyID)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_UnknownKey", func(t *testing.T) {
		handler, mockUseCase := setupTestKeyHandler(t)

		mockUseCase.On("DescribeKey", mock.Anything, testKeyID).
			Return(kmsDomain.KeyMetadata{}, kmsDomain.NewNotFound("Key '%s' not found", testKeyID)).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/keys/"+testKeyID, nil)
		c.Params = gin.Params{gin.Param{Key: "id", Value: testKeyID}}

		handler.DescribeKeyHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NotFoundException")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MalformedKeyID", func(t *testing.T) {
		handler, _ := setupTestKeyHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/keys/not-a-uuid", nil)
		c.Params = gin.Params{gin.Param{Key: "id", Value: "not-a-uuid"}}

		handler.DescribeKeyHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "InvalidKeyIdException")
	})
}

func TestKeyHandler_LifecycleHandlers(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		mockOp  string
		handler func(h *KeyHandler, c *gin.Context)
	}{
		{
			name:    "enable key",
			method:  http.MethodPost,
			path:    "/v1/keys/" + testKeyID + "/enable",
			mockOp:  "EnableKey",
			handler: func(h *KeyHandler, c *gin.Context) { h.EnableKeyHandler(c) },
		},
		{
			name:    "disable key",
			method:  http.MethodPost,
			path:    "/v1/keys/" + testKeyID + "/disable",
			mockOp:  "DisableKey",
			handler: func(h *KeyHandler, c *gin.Context) { h.DisableKeyHandler(c) },
		},
		{
			name:    "schedule key deletion",
			method:  http.MethodPost,
			path:    "/v1/keys/" + testKeyID + "/schedule-deletion",
			mockOp:  "ScheduleKeyDeletion",
			handler: func(h *KeyHandler, c *gin.Context) { h.ScheduleKeyDeletionHandler(c) },
		},
		{
			name:    "delete key",
			method:  http.MethodDelete,
			path:    "/v1/keys/" + testKeyID,
			mockOp:  "DeleteKey",
			handler: func(h *KeyHandler, c *gin.Context) { h.DeleteKeyHandler(c) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" succeeds", func(t *testing.T) {
			handler, mockUseCase := setupTestKeyHandler(t)

			mockUseCase.On(tt.mockOp, mock.Anything, testKeyID).
				Return(nil).
				Once()

			c, w := createTestContext(tt.method, tt.path, nil)
			c.Params = gin.Params{gin.Param{Key: "id", Value: testKeyID}}

			tt.handler(handler, c)
			// Flush the status set via c.Status: outside the gin engine
			// nothing writes the header for body-less responses.
			c.Writer.WriteHeaderNow()

			assert.Equal(t, http.StatusNoContent, w.Code)
			mockUseCase.AssertExpectations(t)
		})

		t.Run(tt.name+" rejects unknown key", func(t *testing.T) {
			handler, mockUseCase := setupTestKeyHandler(t)

			mockUseCase.On(tt.mockOp, mock.Anything, testKeyID).
				Return(kmsDomain.NewNotFound("Key '%s' not found", testKeyID)).
				Once()

			c, w := createTestContext(tt.method, tt.path, nil)
			c.Params = gin.Params{gin.Param{Key: "id", Value: testKeyID}}

			tt.handler(handler, c)

			assert.Equal(t, http.StatusNotFound, w.Code)
			mockUseCase.AssertExpectations(t)
		})
	}
}
