package services

import (
	"errors"
	"fmt"

	"cbt-portal-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrQuestionNotFound = errors.New("question not found")

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

type QuestionInput struct {
	QuestionText  string `json:"question_text" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required,oneof=A B C D"`
	Explanation   string `json:"explanation"`
}

func (in *QuestionInput) validate() error {
	if !models.ValidOption(in.CorrectAnswer) {
		return errors.New("correct answer must be one of A, B, C or D")
	}
	if in.OptionA == "" || in.OptionB == "" || in.OptionC == "" || in.OptionD == "" {
		return errors.New("all four options must be provided")
	}
	return nil
}

func (s *QuestionService) ListBySubject(subjectID uuid.UUID) ([]models.Question, error) {
	var questions []models.Question
	if err := s.db.Where("subject_id = ?", subjectID).
		Order("created_at ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionService) Create(subjectID, createdBy uuid.UUID, in QuestionInput) (*models.Question, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var subject models.Subject
	if err := s.db.First(&subject, "id = ?", subjectID).Error; err != nil {
		return nil, ErrSubjectNotFound
	}

	question := models.Question{
		SubjectID:     subjectID,
		QuestionText:  in.QuestionText,
		OptionA:       in.OptionA,
		OptionB:       in.OptionB,
		OptionC:       in.OptionC,
		OptionD:       in.OptionD,
		CorrectAnswer: in.CorrectAnswer,
		Explanation:   in.Explanation,
		CreatedBy:     createdBy,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// BulkCreate inserts a batch of questions for one subject, all or nothing.
func (s *QuestionService) BulkCreate(subjectID, createdBy uuid.UUID, inputs []QuestionInput) ([]models.Question, error) {
	if len(inputs) == 0 {
		return nil, errors.New("no questions provided")
	}
	var subject models.Subject
	if err := s.db.First(&subject, "id = ?", subjectID).Error; err != nil {
		return nil, ErrSubjectNotFound
	}

	questions := make([]models.Question, 0, len(inputs))
	for i, in := range inputs {
		if err := in.validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, models.Question{
			SubjectID:     subjectID,
			QuestionText:  in.QuestionText,
			OptionA:       in.OptionA,
			OptionB:       in.OptionB,
			OptionC:       in.OptionC,
			OptionD:       in.OptionD,
			CorrectAnswer: in.CorrectAnswer,
			Explanation:   in.Explanation,
			CreatedBy:     createdBy,
		})
	}

	if err := s.db.Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionService) Update(id uuid.UUID, in QuestionInput) (*models.Question, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var question models.Question
	if err := s.db.First(&question, "id = ?", id).Error; err != nil {
		return nil, ErrQuestionNotFound
	}

	question.QuestionText = in.QuestionText
	question.OptionA = in.OptionA
	question.OptionB = in.OptionB
	question.OptionC = in.OptionC
	question.OptionD = in.OptionD
	question.CorrectAnswer = in.CorrectAnswer
	question.Explanation = in.Explanation
	if err := s.db.Save(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Question{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}
