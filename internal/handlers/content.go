package handlers

import (
	"errors"
	"net/http"

	"cbt-portal-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ContentHandler struct {
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

type NoteRequest struct {
	ExamTypeID string `json:"exam_type_id" binding:"required,uuid"`
	SubjectID  string `json:"subject_id" binding:"required,uuid"`
	Title      string `json:"title" binding:"required,max=255"`
	Content    string `json:"content" binding:"required"`
}

type NoteUpdateRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

type LiteratureRequest struct {
	ExamTypeID string `json:"exam_type_id" binding:"required,uuid"`
	Title      string `json:"title" binding:"required,max=255"`
	Author     string `json:"author" binding:"max=255"`
	Content    string `json:"content" binding:"required"`
}

// queryUUID parses an optional uuid query parameter, returning uuid.Nil when
// absent.
func queryUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ListNotes godoc
// @Summary      List study notes
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Param        exam_type_id query string false "Filter by exam type"
// @Param        subject_id query string false "Filter by subject"
// @Success      200 {array} models.StudyNote
// @Router       /api/v1/notes [get]
func (h *ContentHandler) ListNotes(c *gin.Context) {
	examTypeID, ok := queryUUID(c, "exam_type_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid exam_type_id"})
		return
	}
	subjectID, ok := queryUUID(c, "subject_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid subject_id"})
		return
	}

	notes, err := h.contentService.ListNotes(examTypeID, subjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, notes)
}

// CreateNote godoc
// @Summary      Create a study note
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body NoteRequest true "Note data"
// @Success      201 {object} models.StudyNote
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/notes [post]
func (h *ContentHandler) CreateNote(c *gin.Context) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	examTypeID, _ := uuid.Parse(req.ExamTypeID)
	subjectID, _ := uuid.Parse(req.SubjectID)

	note, err := h.contentService.CreateNote(examTypeID, subjectID, currentUserID(c), req.Title, req.Content)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrSubjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, note)
}

// UpdateNote godoc
// @Summary      Update a study note
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Note ID"
// @Param        request body NoteUpdateRequest true "Note data"
// @Success      200 {object} models.StudyNote
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/notes/{id} [put]
func (h *ContentHandler) UpdateNote(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid note id"})
		return
	}

	var req NoteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	note, err := h.contentService.UpdateNote(id, req.Title, req.Content)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrNoteNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, note)
}

// DeleteNote godoc
// @Summary      Delete a study note
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Note ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/notes/{id} [delete]
func (h *ContentHandler) DeleteNote(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid note id"})
		return
	}

	if err := h.contentService.DeleteNote(id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrNoteNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "note deleted"})
}

// ListLiterature godoc
// @Summary      List literature
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Param        exam_type_id query string false "Filter by exam type"
// @Success      200 {array} models.Literature
// @Router       /api/v1/literature [get]
func (h *ContentHandler) ListLiterature(c *gin.Context) {
	examTypeID, ok := queryUUID(c, "exam_type_id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid exam_type_id"})
		return
	}

	items, err := h.contentService.ListLiterature(examTypeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateLiterature godoc
// @Summary      Add literature
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body LiteratureRequest true "Literature data"
// @Success      201 {object} models.Literature
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/literature [post]
func (h *ContentHandler) CreateLiterature(c *gin.Context) {
	var req LiteratureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	examTypeID, _ := uuid.Parse(req.ExamTypeID)

	item, err := h.contentService.CreateLiterature(examTypeID, currentUserID(c), req.Title, req.Author, req.Content)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrExamTypeNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// DeleteLiterature godoc
// @Summary      Delete literature
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Literature ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/literature/{id} [delete]
func (h *ContentHandler) DeleteLiterature(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid literature id"})
		return
	}

	if err := h.contentService.DeleteLiterature(id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrLiteratureNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "literature deleted"})
}
