package healthz

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTP(t *testing.T) {
	t.Parallel()

	check := func(t *testing.T, h *HTTP, status int) {
		t.Helper()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

		h.ServeHTTP(rr, req)

		resp := rr.Result()
		defer resp.Body.Close()

		require.Equal(t, status, resp.StatusCode)
	}

	h := NewHTTP()

	t.Run("initially sick", func(t *testing.T) {
		require.False(t, h.IsHealthy())
		check(t, h, http.StatusServiceUnavailable)
	})

	t.Run("healthy", func(t *testing.T) {
		h.Healthy()
		require.True(t, h.IsHealthy())
		check(t, h, http.StatusOK)
	})

	t.Run("sick again", func(t *testing.T) {
		h.Sick()
		require.False(t, h.IsHealthy())
		check(t, h, http.StatusServiceUnavailable)
	})
}
