package routes

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/salone-startups/api-go/listings"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	SetupRoutes(r, Deps{App: listings.NewApp(nil, listings.Options{})})

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		http.MethodGet + " /health",
		http.MethodGet + " /api/startups",
		http.MethodGet + " /api/startups/featured",
		http.MethodGet + " /api/startups/:id",
		http.MethodPost + " /api/startups/:id/reviews",
		http.MethodGet + " /api/categories",
		http.MethodPost + " /api/admin/startups",
		http.MethodPost + " /api/admin/startups/import",
		http.MethodPut + " /api/admin/startups/:id",
		http.MethodPatch + " /api/admin/startups/:id",
		http.MethodDelete + " /api/admin/startups/:id",
		http.MethodPost + " /api/admin/uploads/image",
		http.MethodPost + " /api/admin/uploads/presigned-url",
		http.MethodPost + " /api/admin/uploads/confirm",
		http.MethodDelete + " /api/admin/uploads/file/*key",
	}
	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %q not registered", route)
		}
	}
	if len(registered) != len(want) {
		t.Fatalf("registered %d routes, want %d", len(registered), len(want))
	}
}
