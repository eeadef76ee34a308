package models

import "github.com/google/uuid"

// ExamSessionSubject is the slice of a session scoped to one subject.
// CorrectAnswers is authoritative: it is written in the same transaction as
// the answer batch at submit time.
type ExamSessionSubject struct {
	ID             uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExamSessionID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"exam_session_id"`
	ExamSession    ExamSession `gorm:"foreignKey:ExamSessionID;constraint:OnDelete:CASCADE" json:"-"`
	SubjectID      uuid.UUID   `gorm:"type:uuid;not null" json:"subject_id"`
	Subject        Subject     `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	QuestionsCount int         `gorm:"not null" json:"questions_count"`
	CorrectAnswers int         `gorm:"not null;default:0" json:"correct_answers"`
}
