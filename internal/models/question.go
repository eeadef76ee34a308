package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

type Question struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubjectID     uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject       Subject   `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"subject,omitempty"`
	QuestionText  string    `gorm:"type:text;not null" json:"question_text"`
	OptionA       string    `gorm:"size:500;not null" json:"option_a"`
	OptionB       string    `gorm:"size:500;not null" json:"option_b"`
	OptionC       string    `gorm:"size:500;not null" json:"option_c"`
	OptionD       string    `gorm:"size:500;not null" json:"option_d"`
	CorrectAnswer string    `gorm:"size:1;not null" json:"correct_answer"`
	Explanation   string    `gorm:"type:text" json:"explanation"`
	CreatedBy     uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// ValidOption reports whether v is one of the four answer letters.
func ValidOption(v string) bool {
	switch v {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}
