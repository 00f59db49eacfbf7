package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAssetValidation(t *testing.T) {
	before := testutil.ToFloat64(AssetValidations.WithLabelValues("image", "rejected"))

	ObserveAssetValidation("image", false)
	ObserveAssetValidation("image", true)

	assert.Equal(t, before+1, testutil.ToFloat64(AssetValidations.WithLabelValues("image", "rejected")))
}

func TestObserveSlowRequest(t *testing.T) {
	before := testutil.ToFloat64(SlowRequests.WithLabelValues("/api/limits", SeverityAlert))
	ObserveSlowRequest("/api/limits", SeverityAlert)
	assert.Equal(t, before+1, testutil.ToFloat64(SlowRequests.WithLabelValues("/api/limits", SeverityAlert)))
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveRequest(http.MethodGet, "/api/health", http.StatusOK, 3*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "content_studio_http_request_duration_seconds"))
}
