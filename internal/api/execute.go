package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coderoom/internal/runner"
)

type ExecuteHandlers struct {
	runner *runner.Runner
}

func NewExecuteHandlers(run *runner.Runner) *ExecuteHandlers {
	return &ExecuteHandlers{runner: run}
}

type ExecuteRequest struct {
	Language string `json:"language" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

type ExecuteResponse struct {
	Output string `json:"output"`
}

// ExecuteHandler forwards code to the external execution service and
// returns the captured output.
func (h *ExecuteHandlers) ExecuteHandler(c *gin.Context) {
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language and code are required"})
		return
	}

	output, err := h.runner.Run(c.Request.Context(), req.Language, req.Code)
	if errors.Is(err, runner.ErrUnsupportedLanguage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Execution failed"})
		return
	}

	c.JSON(http.StatusOK, ExecuteResponse{Output: output})
}
