package handler

import (
	"github.com/gin-gonic/gin"

	applivestock "github.com/livestock/backend/internal/application/livestock"
)

// UserHandler handles the /users endpoints
type UserHandler struct {
	BaseHandler
	service *applivestock.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service *applivestock.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterUser handles POST /users
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var body RegisterUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.service.RegisterUser(c.Request.Context(), body.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// GetUser handles GET /users/:userId
func (h *UserHandler) GetUser(c *gin.Context) {
	ctx, userID, ok := h.userContext(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(ctx, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
