package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAPIValidator(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("disabled is a no-op", func(t *testing.T) {
		mw := OpenAPIValidator(&OpenAPIValidatorConfig{Enabled: false})

		req := httptest.NewRequest(http.MethodPost, "/user/signup", nil)
		w := httptest.NewRecorder()

		mw(next).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
	})

	t.Run("missing spec file degrades to a no-op", func(t *testing.T) {
		mw := OpenAPIValidator(&OpenAPIValidatorConfig{
			Enabled:  true,
			SpecPath: "does/not/exist.yaml",
		})

		req := httptest.NewRequest(http.MethodPost, "/user/signup", nil)
		w := httptest.NewRecorder()

		mw(next).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
	})
}

func TestShouldSkipPath(t *testing.T) {
	skipPaths := []string{"/health", "/metrics"}

	tests := []struct {
		path string
		want bool
	}{
		{"/health", true},
		{"/health/ready", true},
		{"/metrics", true},
		{"/user/favorites", false},
		{"/healthz", false},
	}

	for _, tt := range tests {
		if got := shouldSkipPath(tt.path, skipPaths); got != tt.want {
			t.Errorf("shouldSkipPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
