package router

import (
	"github.com/livestock/backend/internal/interfaces/http/handler"
)

// LivestockRoutes builds the per-farmer herd, event, tag, expense and report routes
func LivestockRoutes(h *handler.LivestockHandler) *DomainGroup {
	g := NewDomainGroup("livestock", "/livestock/:userId")

	g.POST("/counts", h.InitializeCount)
	g.GET("/counts", h.GetCurrentCount)

	g.POST("/events", h.RecordEvent)
	g.GET("/events", h.GetEventHistory)
	g.GET("/events/:eventId", h.GetEvent)

	g.GET("/tags", h.ListTags)

	g.POST("/expenses", h.RecordExpense)
	g.GET("/expenses", h.GetExpenses)
	g.GET("/expense-summaries", h.GetExpenseSummaries)

	g.GET("/profit", h.GetProfitReport)
	return g
}

// UserRoutes builds the user registration routes
func UserRoutes(h *handler.UserHandler) *DomainGroup {
	g := NewDomainGroup("users", "/users")
	g.POST("", h.RegisterUser)
	g.GET("/:userId", h.GetUser)
	return g
}
