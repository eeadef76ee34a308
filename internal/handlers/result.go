package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cbt-portal-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	resultService *services.ResultService
}

func NewResultHandler(resultService *services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// ListResults godoc
// @Summary      List the caller's exam results
// @Tags         results
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} services.ResultSummary
// @Router       /api/v1/results [get]
func (h *ResultHandler) ListResults(c *gin.Context) {
	results, err := h.resultService.ListResults(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetResult godoc
// @Summary      Get one result with its per-subject breakdown
// @Tags         results
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Success      200 {object} services.ResultDetail
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/results/{id} [get]
func (h *ResultHandler) GetResult(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	detail, err := h.resultService.GetResult(sessionID, currentUserID(c))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrResultNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// DeleteResult godoc
// @Summary      Delete an exam result
// @Description  Removes the session and cascades to its answers; sessions owned by other users report not found
// @Tags         results
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/results/{id} [delete]
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	if err := h.resultService.DeleteResult(sessionID, currentUserID(c)); err != nil {
		if errors.Is(err, services.ErrResultNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "exam session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete exam session"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "exam result deleted successfully"})
}

// Leaderboard godoc
// @Summary      Top students by average score
// @Tags         results
// @Produce      json
// @Param        limit query int false "Number of entries" default(10)
// @Success      200 {array} services.LeaderboardEntry
// @Router       /api/v1/leaderboard [get]
func (h *ResultHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.resultService.Leaderboard(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
