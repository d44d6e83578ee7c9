package metrics

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	provider, err := NewProvider("kms")
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())

	t.Run("handler serves prometheus exposition format", func(t *testing.T) {
		business, err := NewBusinessMetrics(provider.MeterProvider(), "kms")
		require.NoError(t, err)
		business.RecordOperation(context.Background(), "kms", "encrypt", "success")
		business.RecordDuration(context.Background(), "kms", "encrypt", 5*time.Millisecond, "success")

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/metrics", nil)
		provider.Handler().ServeHTTP(recorder, request)

		assert.Equal(t, 200, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "kms_operations_total")
	})
}
