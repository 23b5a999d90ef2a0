package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("users", "/users")
	group.GET("/:userId", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("userId"))
	})

	r.Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/17", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "17", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("livestock", "/livestock/:userId")
		assert.Equal(t, "livestock", g.Name())
		assert.Equal(t, "/livestock/:userId", g.Prefix())
	})

	t.Run("registers GET and POST routes", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.GET("/items", func(c *gin.Context) { c.String(http.StatusOK, "items") }).
			POST("/items", func(c *gin.Context) { c.String(http.StatusCreated, "created") })

		g.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/items", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/test/items", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("/items", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

		g.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/items", nil))
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("creates subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("livestock", "/livestock/:userId")
		g.Group("events", "/events").GET("/:eventId", func(c *gin.Context) {
			c.String(http.StatusOK, c.Param("userId")+"/"+c.Param("eventId"))
		})

		g.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/livestock/4/events/abc", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "4/abc", w.Body.String())
		assert.Equal(t, []string{"GET /livestock/:userId/events/:eventId"}, g.Routes())
	})
}

func TestLivestockRoutes(t *testing.T) {
	g := LivestockRoutes(nil)

	assert.ElementsMatch(t, []string{
		"POST /livestock/:userId/counts",
		"GET /livestock/:userId/counts",
		"POST /livestock/:userId/events",
		"GET /livestock/:userId/events",
		"GET /livestock/:userId/events/:eventId",
		"GET /livestock/:userId/tags",
		"POST /livestock/:userId/expenses",
		"GET /livestock/:userId/expenses",
		"GET /livestock/:userId/expense-summaries",
		"GET /livestock/:userId/profit",
	}, g.Routes())
}

func TestUserRoutes(t *testing.T) {
	assert.ElementsMatch(t, []string{"POST /users", "GET /users/:userId"}, UserRoutes(nil).Routes())
}
