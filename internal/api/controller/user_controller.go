package controller

import (
	"ctchen222/Exercise-Tracker/internal/api/models"
	"ctchen222/Exercise-Tracker/internal/api/response"
	"ctchen222/Exercise-Tracker/internal/api/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserController handles user-related HTTP requests.
type UserController struct {
	userService service.UserService
}

// NewUserController creates a new UserController.
func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// CreateUser handles POST /api/users.
func (uc *UserController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := uc.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessResponse(c, user)
}

// ListUsers handles GET /api/users.
func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.userService.ListUsers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessResponseList(c, users)
}
