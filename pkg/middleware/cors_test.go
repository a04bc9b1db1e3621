package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serveCORS(cfg CORSConfig, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/products", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rr := httptest.NewRecorder()
	CORS(cfg)(okHandler).ServeHTTP(rr, req)
	return rr
}

func TestCORS_AllowOrigin(t *testing.T) {
	tests := []struct {
		name   string
		cfg    CORSConfig
		origin string
		want   string
	}{
		{
			name:   "development allows any origin",
			cfg:    CORSConfig{Environment: "development"},
			origin: "https://elsewhere.test",
			want:   "*",
		},
		{
			name: "development without origin header",
			cfg:  CORSConfig{Environment: "development"},
			want: "*",
		},
		{
			name:   "listed origin is echoed",
			cfg:    CORSConfig{AllowedOrigins: []string{"https://shop.ma", "https://admin.shop.ma"}, Environment: "production"},
			origin: "https://admin.shop.ma",
			want:   "https://admin.shop.ma",
		},
		{
			name:   "unlisted origin gets nothing",
			cfg:    CORSConfig{AllowedOrigins: []string{"https://shop.ma"}, Environment: "production"},
			origin: "https://elsewhere.test",
			want:   "",
		},
		{
			name: "production without origin header",
			cfg:  CORSConfig{AllowedOrigins: []string{"https://shop.ma"}, Environment: "production"},
			want: "",
		},
		{
			name:   "wildcard entry in production",
			cfg:    CORSConfig{AllowedOrigins: []string{"https://shop.ma", "*"}, Environment: "production"},
			origin: "https://elsewhere.test",
			want:   "*",
		},
		{
			name:   "entries are trimmed",
			cfg:    CORSConfig{AllowedOrigins: []string{" https://shop.ma "}, Environment: "production"},
			origin: "https://shop.ma",
			want:   "https://shop.ma",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serveCORS(tt.cfg, http.MethodGet, tt.origin)
			assert.Equal(t, tt.want, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestCORS_EchoedOriginSetsVary(t *testing.T) {
	rr := serveCORS(CORSConfig{AllowedOrigins: []string{"https://shop.ma"}}, http.MethodGet, "https://shop.ma")
	assert.Equal(t, "Origin", rr.Header().Get("Vary"))
}

func TestCORS_PreflightReturns204WithoutCallingHandler(t *testing.T) {
	called := false
	handler := CORS(DefaultCORSConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "https://shop.ma")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.False(t, called)
}

func TestCORS_Defaults(t *testing.T) {
	rr := serveCORS(CORSConfig{Environment: "development"}, http.MethodGet, "")

	assert.Equal(t, "GET, HEAD, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Accept, Content-Type, X-Correlation-ID, X-Session-ID", rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "3600", rr.Header().Get("Access-Control-Max-Age"))
	assert.Empty(t, rr.Header().Get("Access-Control-Expose-Headers"))
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_CustomValues(t *testing.T) {
	rr := serveCORS(CORSConfig{
		AllowedOrigins:   []string{"https://shop.ma"},
		AllowedHeaders:   []string{"Accept", "X-Custom"},
		ExposedHeaders:   []string{"X-Correlation-ID", "X-Session-ID"},
		MaxAge:           7200,
		AllowCredentials: true,
	}, http.MethodGet, "https://shop.ma")

	assert.Equal(t, "Accept, X-Custom", rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "X-Correlation-ID, X-Session-ID", rr.Header().Get("Access-Control-Expose-Headers"))
	assert.Equal(t, "7200", rr.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, []string{"GET", "HEAD", "OPTIONS"}, cfg.AllowedMethods)
	assert.Equal(t, []string{"X-Correlation-ID"}, cfg.ExposedHeaders)
	assert.Equal(t, 3600, cfg.MaxAge)
	assert.Equal(t, "development", cfg.Environment)
}
