package services

import (
	"errors"

	"cbt-portal-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNoteNotFound       = errors.New("study note not found")
	ErrLiteratureNotFound = errors.New("literature not found")
)

// ContentService manages the study material catalogue: notes and literature.
type ContentService struct {
	db *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

func (s *ContentService) ListNotes(examTypeID, subjectID uuid.UUID) ([]models.StudyNote, error) {
	q := s.db.Order("created_at DESC")
	if examTypeID != uuid.Nil {
		q = q.Where("exam_type_id = ?", examTypeID)
	}
	if subjectID != uuid.Nil {
		q = q.Where("subject_id = ?", subjectID)
	}

	var notes []models.StudyNote
	if err := q.Preload("Subject").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *ContentService) CreateNote(examTypeID, subjectID, createdBy uuid.UUID, title, content string) (*models.StudyNote, error) {
	var subject models.Subject
	if err := s.db.First(&subject, "id = ? AND exam_type_id = ?", subjectID, examTypeID).Error; err != nil {
		return nil, ErrSubjectNotFound
	}

	note := models.StudyNote{
		ExamTypeID: examTypeID,
		SubjectID:  subjectID,
		Title:      title,
		Content:    content,
		CreatedBy:  createdBy,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *ContentService) UpdateNote(id uuid.UUID, title, content string) (*models.StudyNote, error) {
	var note models.StudyNote
	if err := s.db.First(&note, "id = ?", id).Error; err != nil {
		return nil, ErrNoteNotFound
	}

	note.Title = title
	note.Content = content
	if err := s.db.Save(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *ContentService) DeleteNote(id uuid.UUID) error {
	result := s.db.Delete(&models.StudyNote{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (s *ContentService) ListLiterature(examTypeID uuid.UUID) ([]models.Literature, error) {
	q := s.db.Order("created_at DESC")
	if examTypeID != uuid.Nil {
		q = q.Where("exam_type_id = ?", examTypeID)
	}

	var items []models.Literature
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ContentService) CreateLiterature(examTypeID, createdBy uuid.UUID, title, author, content string) (*models.Literature, error) {
	var examType models.ExamType
	if err := s.db.First(&examType, "id = ?", examTypeID).Error; err != nil {
		return nil, ErrExamTypeNotFound
	}

	item := models.Literature{
		ExamTypeID: examTypeID,
		Title:      title,
		Author:     author,
		Content:    content,
		CreatedBy:  createdBy,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ContentService) DeleteLiterature(id uuid.UUID) error {
	result := s.db.Delete(&models.Literature{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLiteratureNotFound
	}
	return nil
}
