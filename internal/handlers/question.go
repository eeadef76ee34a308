package handlers

import (
	"errors"
	"net/http"

	"cbt-portal-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

type BulkQuestionRequest struct {
	Questions []services.QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

// ListQuestions godoc
// @Summary      List a subject's questions
// @Description  Admin view including correct answers and explanations
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subject ID"
// @Success      200 {array} models.Question
// @Router       /api/v1/subjects/{id}/questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	subjectID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid subject id"})
		return
	}

	questions, err := h.questionService.ListBySubject(subjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, questions)
}

// CreateQuestion godoc
// @Summary      Add a question to a subject
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subject ID"
// @Param        request body services.QuestionInput true "Question data"
// @Success      201 {object} models.Question
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/subjects/{id}/questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	subjectID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid subject id"})
		return
	}

	var req services.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.Create(subjectID, currentUserID(c), req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrSubjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, question)
}

// BulkCreateQuestions godoc
// @Summary      Add a batch of questions to a subject
// @Description  All questions are validated and inserted together; one bad row rejects the whole batch
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subject ID"
// @Param        request body BulkQuestionRequest true "Questions"
// @Success      201 {array} models.Question
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/subjects/{id}/questions/bulk [post]
func (h *QuestionHandler) BulkCreateQuestions(c *gin.Context) {
	subjectID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid subject id"})
		return
	}

	var req BulkQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	questions, err := h.questionService.BulkCreate(subjectID, currentUserID(c), req.Questions)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrSubjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, questions)
}

// UpdateQuestion godoc
// @Summary      Update a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Question ID"
// @Param        request body services.QuestionInput true "Question data"
// @Success      200 {object} models.Question
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var req services.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.Update(id, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrQuestionNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Question ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	if err := h.questionService.Delete(id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrQuestionNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "question deleted"})
}
