package security

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestFilterMiddleware_BlocksScannerPaths(t *testing.T) {
	h := FilterMiddleware(true)(okHandler())

	for _, path := range []string{
		"/wp-admin/setup.php",
		"/.env",
		"/.git/config",
		"/phpmyadmin/index.php",
		"/xmlrpc.php",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestFilterMiddleware_BlocksTraversal(t *testing.T) {
	h := FilterMiddleware(true)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = "/api/../../etc/passwd"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilterMiddleware_AllowsNormalTraffic(t *testing.T) {
	h := FilterMiddleware(true)(okHandler())

	for _, path := range []string{"/api/v1/audit", "/api/audit", "/health"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestFilterMiddleware_HealthBypass(t *testing.T) {
	h := FilterMiddleware(true)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFilterMiddleware_Disabled(t *testing.T) {
	h := FilterMiddleware(false)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/wp-admin/setup.php", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMaxBodySizeMiddleware(t *testing.T) {
	readAll := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 4096)
		for {
			_, err := r.Body.Read(buf)
			if err != nil {
				if err.Error() == "EOF" {
					w.WriteHeader(http.StatusOK)
					return
				}
				w.WriteHeader(http.StatusBadRequest)
				return
			}
		}
	})

	h := MaxBodySizeMiddleware(1)(readAll)

	small := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tiny"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, small)
	assert.Equal(t, http.StatusOK, rec.Code)

	big := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 2048)))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, big)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
