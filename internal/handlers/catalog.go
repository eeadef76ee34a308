package handlers

import (
	"errors"
	"net/http"

	"cbt-portal-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type ExamTypeRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50" example:"JAMB"`
	Description string `json:"description" example:"Joint Admissions and Matriculation Board"`
}

type SubjectRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100" example:"Mathematics"`
}

// ListExamTypes godoc
// @Summary      List exam types
// @Tags         catalog
// @Produce      json
// @Success      200 {array} models.ExamType
// @Router       /api/v1/exam-types [get]
func (h *CatalogHandler) ListExamTypes(c *gin.Context) {
	examTypes, err := h.catalogService.ListExamTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, examTypes)
}

// CreateExamType godoc
// @Summary      Create an exam type
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ExamTypeRequest true "Exam type data"
// @Success      201 {object} models.ExamType
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/exam-types [post]
func (h *CatalogHandler) CreateExamType(c *gin.Context) {
	var req ExamTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	examType, err := h.catalogService.CreateExamType(req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, examType)
}

// UpdateExamType godoc
// @Summary      Update an exam type
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Exam type ID"
// @Param        request body ExamTypeRequest true "Exam type data"
// @Success      200 {object} models.ExamType
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/exam-types/{id} [put]
func (h *CatalogHandler) UpdateExamType(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid exam type id"})
		return
	}

	var req ExamTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	examType, err := h.catalogService.UpdateExamType(id, req.Name, req.Description)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrExamTypeNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, examType)
}

// DeleteExamType godoc
// @Summary      Delete an exam type
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Exam type ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/exam-types/{id} [delete]
func (h *CatalogHandler) DeleteExamType(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid exam type id"})
		return
	}

	if err := h.catalogService.DeleteExamType(id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrExamTypeNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "exam type deleted"})
}

// ListSubjects godoc
// @Summary      List subjects for an exam type
// @Description  Includes each subject's question count so empty subjects can be disabled
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Exam type ID"
// @Success      200 {array} services.SubjectWithCount
// @Router       /api/v1/exam-types/{id}/subjects [get]
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	examTypeID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid exam type id"})
		return
	}

	subjects, err := h.catalogService.ListSubjects(examTypeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, subjects)
}

// CreateSubject godoc
// @Summary      Create a subject under an exam type
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Exam type ID"
// @Param        request body SubjectRequest true "Subject data"
// @Success      201 {object} models.Subject
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/exam-types/{id}/subjects [post]
func (h *CatalogHandler) CreateSubject(c *gin.Context) {
	examTypeID, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid exam type id"})
		return
	}

	var req SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	subject, err := h.catalogService.CreateSubject(examTypeID, req.Name)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrExamTypeNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, subject)
}

// UpdateSubject godoc
// @Summary      Rename a subject
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subject ID"
// @Param        request body SubjectRequest true "Subject data"
// @Success      200 {object} models.Subject
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/subjects/{id} [put]
func (h *CatalogHandler) UpdateSubject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid subject id"})
		return
	}

	var req SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	subject, err := h.catalogService.UpdateSubject(id, req.Name)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrSubjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, subject)
}

// DeleteSubject godoc
// @Summary      Delete a subject
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subject ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/subjects/{id} [delete]
func (h *CatalogHandler) DeleteSubject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid subject id"})
		return
	}

	if err := h.catalogService.DeleteSubject(id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrSubjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "subject deleted"})
}
