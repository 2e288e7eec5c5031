package controller

import (
	"ctchen222/Exercise-Tracker/internal/api/models"
	"ctchen222/Exercise-Tracker/internal/api/response"
	"ctchen222/Exercise-Tracker/internal/api/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExerciseController handles exercise logging and history requests.
type ExerciseController struct {
	exerciseService service.ExerciseService
}

// NewExerciseController creates a new ExerciseController.
func NewExerciseController(exerciseService service.ExerciseService) *ExerciseController {
	return &ExerciseController{
		exerciseService: exerciseService,
	}
}

// AddExercise handles POST /api/users/:id/exercises.
func (ec *ExerciseController) AddExercise(c *gin.Context) {
	var req models.CreateExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	exercise, err := ec.exerciseService.AddExercise(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessResponse(c, exercise)
}

// GetLogs handles GET /api/users/:id/logs.
func (ec *ExerciseController) GetLogs(c *gin.Context) {
	var query models.LogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "invalid query")
		return
	}

	logs, err := ec.exerciseService.GetLogs(c.Request.Context(), c.Param("id"), &query)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessResponse(c, logs)
}
