package services

import (
	"errors"

	"cbt-portal-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrExamTypeNotFound = errors.New("exam type not found")
	ErrSubjectNotFound  = errors.New("subject not found")
)

// CatalogService manages the static reference data: exam types and their
// subjects.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListExamTypes() ([]models.ExamType, error) {
	var examTypes []models.ExamType
	if err := s.db.Order("name ASC").Find(&examTypes).Error; err != nil {
		return nil, err
	}
	return examTypes, nil
}

func (s *CatalogService) CreateExamType(name, description string) (*models.ExamType, error) {
	examType := models.ExamType{Name: name, Description: description}
	if err := s.db.Create(&examType).Error; err != nil {
		return nil, err
	}
	return &examType, nil
}

func (s *CatalogService) UpdateExamType(id uuid.UUID, name, description string) (*models.ExamType, error) {
	var examType models.ExamType
	if err := s.db.First(&examType, "id = ?", id).Error; err != nil {
		return nil, ErrExamTypeNotFound
	}

	examType.Name = name
	examType.Description = description
	if err := s.db.Save(&examType).Error; err != nil {
		return nil, err
	}
	return &examType, nil
}

func (s *CatalogService) DeleteExamType(id uuid.UUID) error {
	result := s.db.Delete(&models.ExamType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExamTypeNotFound
	}
	return nil
}

// SubjectWithCount decorates a subject with its question-pool size so the
// selection screen can grey out empty subjects.
type SubjectWithCount struct {
	models.Subject
	QuestionCount int64 `json:"question_count"`
}

func (s *CatalogService) ListSubjects(examTypeID uuid.UUID) ([]SubjectWithCount, error) {
	var subjects []models.Subject
	if err := s.db.Where("exam_type_id = ?", examTypeID).
		Order("name ASC").
		Find(&subjects).Error; err != nil {
		return nil, err
	}

	out := make([]SubjectWithCount, 0, len(subjects))
	for _, subject := range subjects {
		var count int64
		s.db.Model(&models.Question{}).Where("subject_id = ?", subject.ID).Count(&count)
		out = append(out, SubjectWithCount{Subject: subject, QuestionCount: count})
	}
	return out, nil
}

func (s *CatalogService) CreateSubject(examTypeID uuid.UUID, name string) (*models.Subject, error) {
	var examType models.ExamType
	if err := s.db.First(&examType, "id = ?", examTypeID).Error; err != nil {
		return nil, ErrExamTypeNotFound
	}

	subject := models.Subject{ExamTypeID: examTypeID, Name: name}
	if err := s.db.Create(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *CatalogService) UpdateSubject(id uuid.UUID, name string) (*models.Subject, error) {
	var subject models.Subject
	if err := s.db.First(&subject, "id = ?", id).Error; err != nil {
		return nil, ErrSubjectNotFound
	}

	subject.Name = name
	if err := s.db.Save(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *CatalogService) DeleteSubject(id uuid.UUID) error {
	result := s.db.Delete(&models.Subject{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubjectNotFound
	}
	return nil
}
