package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouter_UseScopesMiddlewareToAPI(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-API", "yes")
		c.Next()
	})
	r.Register(NewDomainGroup("test", "/test").GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	}))
	r.Setup()

	w := serve(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "yes", w.Header().Get("X-API"))

	w = serve(engine, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-API"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/catalog")
		assert.Equal(t, "catalog", g.Name())
		assert.Equal(t, "/catalog", g.Prefix())
	})

	t.Run("every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		g := NewDomainGroup("test", "/test").
			GET("/items", ok).
			POST("/items", ok).
			PUT("/items/:id", ok).
			PATCH("/items/:id", ok).
			DELETE("/items/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		for _, tt := range []struct{ method, path string }{
			{http.MethodGet, "/api/v1/test/items"},
			{http.MethodPost, "/api/v1/test/items"},
			{http.MethodPut, "/api/v1/test/items/1"},
			{http.MethodPatch, "/api/v1/test/items/1"},
			{http.MethodDelete, "/api/v1/test/items/1"},
		} {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
			assert.Equal(t, tt.method, w.Body.String())
		}
	})

	t.Run("group middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test").Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/test/items")
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("finance", "/finance")
		g.Group("accounts", "/accounts").GET("", func(c *gin.Context) { c.String(http.StatusOK, "accounts") })
		g.Group("bills", "/bills").GET("", func(c *gin.Context) { c.String(http.StatusOK, "bills") })
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, "accounts", serve(engine, http.MethodGet, "/api/v1/finance/accounts").Body.String())
		assert.Equal(t, "bills", serve(engine, http.MethodGet, "/api/v1/finance/bills").Body.String())
	})
}

func TestNewAPIGroups_RouteTable(t *testing.T) {
	h := Handlers{
		Products:     handler.NewProductHandler(nil),
		Contacts:     handler.NewContactHandler(nil),
		Accounts:     handler.NewAccountHandler(nil, nil),
		Transactions: handler.NewTransactionHandler(nil),
		Invoices:     handler.NewDocumentHandler(finance.KindInvoice, nil, nil),
		Bills:        handler.NewDocumentHandler(finance.KindBill, nil, nil),
		Calculator:   handler.NewCalculatorHandler(nil, nil, defaultTag),
		Settings:     handler.NewSettingsHandler(nil),
		System:       handler.NewSystemHandler("test", nil),
	}

	engine := gin.New()
	guarded := false
	r := NewRouter(engine)
	require.NotPanics(t, func() {
		r.Register(NewAPIGroups(h, func(c *gin.Context) { guarded = true; c.Next() })...).Setup()
	})

	routes := map[string]bool{}
	for _, route := range engine.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /api/v1/system/ping",
		"POST /api/v1/catalog/products",
		"DELETE /api/v1/partners/contacts/:id",
		"GET /api/v1/finance/accounts/chart",
		"GET /api/v1/finance/accounts/chart/print",
		"GET /api/v1/finance/accounts/code",
		"PUT /api/v1/finance/transactions/:id",
		"POST /api/v1/finance/invoices/:id/submit",
		"PUT /api/v1/finance/bills/:id/items/:item_id",
		"POST /api/v1/finance/bills/print",
		"GET /api/v1/finance/invoices/:id/print",
		"POST /api/v1/finance/calculate",
		"GET /api/v1/finance/convert",
		"PUT /api/v1/settings",
		"GET /api/v1/settings/pwa/manifest.json",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}

	// Without a store the handler stops before touching its nil service.
	w := serve(engine, http.MethodPut, "/api/v1/settings")
	assert.True(t, guarded)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

var defaultTag = language.AmericanEnglish
