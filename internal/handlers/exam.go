package handlers

import (
	"errors"
	"net/http"

	"cbt-portal-backend/internal/exam"
	"cbt-portal-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExamHandler struct {
	examService *services.ExamService
}

func NewExamHandler(examService *services.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

type StartExamRequest struct {
	ExamTypeID string   `json:"exam_type_id" binding:"required,uuid" example:"6f1f9a2e-..."`
	SubjectIDs []string `json:"subject_ids" binding:"required,min=1,dive,uuid"`
}

type SelectAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
	Option     string `json:"option" binding:"required,oneof=A B C D" example:"B"`
}

type NavigateRequest struct {
	SubjectID string `json:"subject_id" binding:"required,uuid"`
	Delta     int    `json:"delta" example:"1"`
	Index     *int   `json:"index"`
}

// StartExam godoc
// @Summary      Start a timed exam session
// @Description  Creates a session over the selected subjects; each subject's pool is shuffled and capped at 50 questions
// @Tags         exams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body StartExamRequest true "Exam selection"
// @Success      201 {object} services.StartedExam
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/exams [post]
func (h *ExamHandler) StartExam(c *gin.Context) {
	var req StartExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	examTypeID, err := uuid.Parse(req.ExamTypeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid exam type id"})
		return
	}
	subjectIDs := make([]uuid.UUID, 0, len(req.SubjectIDs))
	for _, raw := range req.SubjectIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid subject id"})
			return
		}
		subjectIDs = append(subjectIDs, id)
	}

	started, err := h.examService.StartExam(currentUserID(c), examTypeID, subjectIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, started)
}

// GetState godoc
// @Summary      Get the live state of an exam session
// @Description  Remaining time, answer sheet and per-subject cursors
// @Tags         exams
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Success      200 {object} exam.Snapshot
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/exams/{id} [get]
func (h *ExamHandler) GetState(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	snap, err := h.examService.State(sessionID, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SelectAnswer godoc
// @Summary      Record an answer for one question
// @Tags         exams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Param        request body SelectAnswerRequest true "Answer"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/exams/{id}/answer [post]
func (h *ExamHandler) SelectAnswer(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	var req SelectAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	questionID, _ := uuid.Parse(req.QuestionID)

	err := h.examService.SelectAnswer(sessionID, currentUserID(c), questionID, req.Option)
	if err != nil {
		c.JSON(examErrStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "answer recorded"})
}

// Navigate godoc
// @Summary      Move the question cursor within one subject
// @Description  Accepts a relative delta or an absolute index; the cursor is clamped to the subject's range
// @Tags         exams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Param        request body NavigateRequest true "Navigation"
// @Success      200 {object} map[string]int
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/exams/{id}/navigate [post]
func (h *ExamHandler) Navigate(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	subjectID, _ := uuid.Parse(req.SubjectID)

	pos, err := h.examService.Navigate(sessionID, currentUserID(c), subjectID, req.Delta, req.Index)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"position": pos})
}

// Submit godoc
// @Summary      Submit the exam for scoring
// @Description  Idempotent against the timer race; a failed persist can be retried
// @Tags         exams
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Success      200 {object} models.ExamSession
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/exams/{id}/submit [post]
func (h *ExamHandler) Submit(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	session, err := h.examService.Submit(sessionID, currentUserID(c))
	if err != nil {
		c.JSON(examErrStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

func examErrStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyCompleted),
		errors.Is(err, services.ErrTimeExceeded),
		errors.Is(err, exam.ErrAlreadySubmitted):
		return http.StatusConflict
	case errors.Is(err, services.ErrNoQuestions),
		errors.Is(err, exam.ErrInvalidOption),
		errors.Is(err, exam.ErrUnknownQuestion):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
