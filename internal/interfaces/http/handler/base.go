package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/domain/shared"
	"github.com/livestock/backend/internal/infrastructure/logger"
	"github.com/livestock/backend/internal/interfaces/http/dto"
	"github.com/livestock/backend/internal/interfaces/http/middleware"
)

// unexpectedErrorDetail is the only detail clients see for unexpected failures
const unexpectedErrorDetail = "An unexpected error occurred"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response with the resource as body
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// HandleError writes err as problem details. Domain errors keep their code;
// anything else is logged with the request id and reported as UNEXPECTED_ERROR.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		if dto.GetHTTPStatus(domainErr.Code) >= http.StatusInternalServerError {
			logger.GetGinLogger(c).Warn("Request rejected",
				zap.String("code", domainErr.Code),
				zap.String("detail", domainErr.Message),
			)
		}
		dto.WriteProblem(c, domainErr.Code, domainErr.Message)
		return
	}

	logger.GetGinLogger(c).Error("Unexpected error",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)
	_ = c.Error(err)
	dto.WriteProblem(c, livestock.CodeUnexpected, unexpectedErrorDetail)
}

// HandleBindingError reports a failed ShouldBind* call
func (h *BaseHandler) HandleBindingError(c *gin.Context, err error) {
	h.HandleError(c, middleware.BindingError(err))
}

// RespondPanic writes the problem body for a recovered panic
func RespondPanic(c *gin.Context) {
	dto.WriteProblem(c, livestock.CodeUnexpected, unexpectedErrorDetail)
}

// RespondNoRoute writes the problem body for unknown routes
func RespondNoRoute(c *gin.Context) {
	dto.WriteProblem(c, dto.ErrCodeRouteNotFound, "No route for "+c.Request.Method+" "+c.Request.URL.Path)
}

// RespondNoMethod writes the problem body for a known route called with the wrong method
func RespondNoMethod(c *gin.Context) {
	dto.WriteProblem(c, dto.ErrCodeMethodNotAllowed, "Method "+c.Request.Method+" is not allowed on "+c.Request.URL.Path)
}

// userContext parses the :userId path parameter and returns a request
// context whose logger carries it. It writes the error response itself.
func (h *BaseHandler) userContext(c *gin.Context) (context.Context, int64, bool) {
	userID, err := parseUserID(c.Param("userId"))
	if err != nil {
		h.HandleError(c, err)
		return nil, 0, false
	}
	ctx, _ := logger.WithFarmerID(c.Request.Context(), logger.GetGinLogger(c), userID)
	return ctx, userID, true
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, livestock.NewInvalidRequestError("userId: must be a positive integer")
	}
	return id, nil
}
