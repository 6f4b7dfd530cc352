package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/api"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/tenant"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNavigationPath(t *testing.T) {
	r := gin.New()
	r.Use(NavigationPath())

	var path string
	r.GET("/menu/:slug/c/:cid", func(c *gin.Context) {
		path = tenant.PathFrom(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menu/viva/c/3", nil))

	if path != "/menu/viva/c/3" {
		t.Errorf("path on context = %q", path)
	}
	if slug, ok := tenant.FromPath(path); !ok || slug != "viva" {
		t.Errorf("slug from context path = %q, %v", slug, ok)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var onContext string
	r.GET("/", func(c *gin.Context) {
		onContext = api.RequestIDFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if id := w.Header().Get("X-Request-Id"); id == "" || id != onContext {
		t.Errorf("assigned id %q, on context %q", id, onContext)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-Id"); got != "abc" || onContext != "abc" {
		t.Errorf("request id = %q, on context %q, want abc", got, onContext)
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"wildcard", []string{"*"}, "https://any.example", "*"},
		{"listed", []string{"https://menu.example"}, "https://menu.example", "https://menu.example"},
		{"unlisted", []string{"https://menu.example"}, "https://evil.example", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware(tt.origins))
			r.GET("/api/menu/:slug", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/api/menu/viva", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}
