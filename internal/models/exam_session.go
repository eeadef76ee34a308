package models

import (
	"time"

	"github.com/google/uuid"
)

type ExamSession struct {
	ID              uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	ExamTypeID      uuid.UUID            `gorm:"type:uuid;not null" json:"exam_type_id"`
	ExamType        ExamType             `gorm:"foreignKey:ExamTypeID" json:"exam_type,omitempty"`
	SubjectID       uuid.UUID            `gorm:"type:uuid;not null" json:"subject_id"` // first selected subject, kept for single-subject result rows
	DurationMinutes int                  `gorm:"not null;default:60" json:"duration_minutes"`
	TotalQuestions  int                  `gorm:"not null" json:"total_questions"`
	Score           *int                 `json:"score"`
	CompletedAt     *time.Time           `json:"completed_at"`
	Subjects        []ExamSessionSubject `gorm:"foreignKey:ExamSessionID" json:"subjects,omitempty"`
	Answers         []ExamAnswer         `gorm:"foreignKey:ExamSessionID" json:"answers,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// Deadline is the wall-clock time at which the session's countdown ends.
func (s *ExamSession) Deadline() time.Time {
	return s.CreatedAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// Completed reports whether the session has been scored.
func (s *ExamSession) Completed() bool {
	return s.CompletedAt != nil
}
