package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	applivestock "github.com/livestock/backend/internal/application/livestock"
	"github.com/livestock/backend/internal/domain/livestock"
)

// LivestockHandler handles the /livestock/:userId endpoints
type LivestockHandler struct {
	BaseHandler
	service *applivestock.LivestockService
}

// NewLivestockHandler creates a new LivestockHandler
func NewLivestockHandler(service *applivestock.LivestockService) *LivestockHandler {
	return &LivestockHandler{service: service}
}

// InitializeCount handles POST /livestock/:userId/counts
func (h *LivestockHandler) InitializeCount(c *gin.Context) {
	ctx, userID, ok := h.userContext(c)
	if !ok {
		return
	}
	var body InitializeCountBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	count, err := h.service.InitializeCount(ctx, userID, body.ToRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, count)
}

// GetCurrentCount handles GET /livestock/:userId/counts
func (h *LivestockHandler) GetCurrentCount(c *gin.Context) {
	ctx, userID, ok := h.userContext(c)
	if !ok {
		return
	}
	var query CategoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	count, err := h.service.GetCurrentCount(ctx, userID, mustCategory(query.Category))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, count)
}

// RecordEvent handles POST /livestock/:userId/events
func (h *LivestockHandler) RecordEvent(c *gin.Context) {
	ctx, userID, ok := h.userContext(c)
	if !ok {
		return
	}
	var body RecordEventBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	event, err := h.service.RecordEvent(ctx, userID, body.ToRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, event)
}

// GetEventHistory handles GET /livestock/:userId/events
func (h *LivestockHandler) GetEventHistory(c *gin.Context) {
	ctx, userID, ok := h.userContext(c)
	if !ok {
		return
	}
	var query EventHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	events, err := h.service.GetEventHistory(ctx, userID, mustCategory(query.Category), query.EventType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// GetEvent handles GET /livestock/:userId/events/:eventId
func (h *LivestockHandler) GetEvent(c *gin.Context) {
	ctx, userID, ok := h.userContext(c)
	if !ok {
		return
	}
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		h.HandleError(c, livestock.NewInvalidRequestError("eventId: must be a UUID"))
		return
	}

	event, err := h.service.GetEvent(ctx, userID, eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, event)
}

// ListTags handles GET /livestock/:userId/tags
func (h *LivestockHandler) ListTags(c *gin.Context) {
	ctx, userID, ok := h.userContext(c)
	if !ok {
		return
	}
	var query TagQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	tags, err := h.service.ListTags(ctx, userID, mustCategory(query.Category), query.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tags)
}

// RecordExpense handles POST /livestock/:userId/expenses
func (h *LivestockHandler) RecordExpense(c *gin.Context) {
	ctx, userID, ok := h.userContext(c)
	if !ok {
		return
	}
	var body RecordExpenseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req, err := body.ToRequest()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	expense, err := h.service.RecordExpense(ctx, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// GetExpenses handles GET /livestock/:userId/expenses
func (h *LivestockHandler) GetExpenses(c *gin.Context) {
	ctx, userID, ok := h.userContext(c)
	if !ok {
		return
	}
	var query ExpenseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, err := h.service.GetExpenses(ctx, userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetExpenseSummaries handles GET /livestock/:userId/expense-summaries
func (h *LivestockHandler) GetExpenseSummaries(c *gin.Context) {
	runReport(h, c, h.service.GetExpenseSummaries)
}

// GetProfitReport handles GET /livestock/:userId/profit
func (h *LivestockHandler) GetProfitReport(c *gin.Context) {
	runReport(h, c, h.service.GetProfitReport)
}

// runReport binds a ReportQuery and renders the result of run
func runReport[T any](h *LivestockHandler, c *gin.Context, run func(context.Context, int64, applivestock.ReportFilter) (T, error)) {
	ctx, userID, ok := h.userContext(c)
	if !ok {
		return
	}
	var query ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := run(ctx, userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
