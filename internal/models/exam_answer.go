package models

import (
	"time"

	"github.com/google/uuid"
)

type ExamAnswer struct {
	ID             uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExamSessionID  uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_session_question" json:"exam_session_id"`
	ExamSession    ExamSession `gorm:"foreignKey:ExamSessionID;constraint:OnDelete:CASCADE" json:"-"`
	QuestionID     uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_session_question" json:"question_id"`
	Question       Question    `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	SelectedAnswer *string     `gorm:"size:1" json:"selected_answer"` // nil when the question was left unanswered
	IsCorrect      bool        `gorm:"not null" json:"is_correct"`
	AnsweredAt     time.Time   `json:"answered_at"`
}
