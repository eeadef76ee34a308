package services

import (
	"errors"
	"math"
	"sort"
	"time"

	"cbt-portal-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// passMark is the fixed percentage cutoff separating passed from failed.
const passMark = 50

var ErrResultNotFound = errors.New("exam session not found")

type ResultService struct {
	db *gorm.DB
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{db: db}
}

type AnswerDetail struct {
	QuestionID     uuid.UUID `json:"question_id"`
	QuestionText   string    `json:"question_text"`
	OptionA        string    `json:"option_a"`
	OptionB        string    `json:"option_b"`
	OptionC        string    `json:"option_c"`
	OptionD        string    `json:"option_d"`
	SelectedAnswer *string   `json:"selected_answer"`
	CorrectAnswer  string    `json:"correct_answer"`
	IsCorrect      bool      `json:"is_correct"`
	Explanation    string    `json:"explanation,omitempty"`
}

// SubjectBreakdown carries a subject's slice of the result. Percentage is nil
// when the subject somehow holds zero questions, which renders as JSON null
// rather than a division blow-up.
type SubjectBreakdown struct {
	SubjectID   uuid.UUID      `json:"subject_id"`
	SubjectName string         `json:"subject_name"`
	Correct     int            `json:"correct"`
	Total       int            `json:"total"`
	Percentage  *int           `json:"percentage"`
	Answers     []AnswerDetail `json:"answers"`
}

type ResultDetail struct {
	Session    models.ExamSession `json:"session"`
	Percentage *int               `json:"percentage"`
	Passed     bool               `json:"passed"`
	Subjects   []SubjectBreakdown `json:"subjects"`
}

type ResultSummary struct {
	ID             uuid.UUID  `json:"id"`
	ExamTypeName   string     `json:"exam_type_name"`
	SubjectNames   []string   `json:"subject_names"`
	Score          *int       `json:"score"`
	TotalQuestions int        `json:"total_questions"`
	Percentage     *int       `json:"percentage"`
	Passed         bool       `json:"passed"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (s *ResultService) ListResults(userID uuid.UUID) ([]ResultSummary, error) {
	var sessions []models.ExamSession
	if err := s.db.Where("user_id = ?", userID).
		Preload("ExamType").
		Preload("Subjects.Subject").
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	out := make([]ResultSummary, 0, len(sessions))
	for _, sess := range sessions {
		summary := ResultSummary{
			ID:             sess.ID,
			ExamTypeName:   sess.ExamType.Name,
			Score:          sess.Score,
			TotalQuestions: sess.TotalQuestions,
			CompletedAt:    sess.CompletedAt,
			CreatedAt:      sess.CreatedAt,
		}
		for _, sub := range sess.Subjects {
			summary.SubjectNames = append(summary.SubjectNames, sub.Subject.Name)
		}
		if sess.Score != nil {
			summary.Percentage = percentageOf(*sess.Score, sess.TotalQuestions)
			summary.Passed = summary.Percentage != nil && *summary.Percentage >= passMark
		}
		out = append(out, summary)
	}
	return out, nil
}

// GetResult rebuilds the reviewable breakdown for one completed session. The
// per-subject correct counts come from the sub-session rows written at submit
// time; answers are joined to their questions only for per-question detail.
func (s *ResultService) GetResult(sessionID, userID uuid.UUID) (*ResultDetail, error) {
	var session models.ExamSession
	if err := s.db.Where("id = ? AND user_id = ?", sessionID, userID).
		Preload("ExamType").
		First(&session).Error; err != nil {
		return nil, ErrResultNotFound
	}

	var subSessions []models.ExamSessionSubject
	if err := s.db.Where("exam_session_id = ?", sessionID).
		Preload("Subject").
		Find(&subSessions).Error; err != nil {
		return nil, err
	}

	var answers []models.ExamAnswer
	if err := s.db.Where("exam_session_id = ?", sessionID).
		Preload("Question").
		Order("answered_at ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}

	detailsBySubject := make(map[uuid.UUID][]AnswerDetail)
	for _, a := range answers {
		q := a.Question
		detailsBySubject[q.SubjectID] = append(detailsBySubject[q.SubjectID], AnswerDetail{
			QuestionID:     q.ID,
			QuestionText:   q.QuestionText,
			OptionA:        q.OptionA,
			OptionB:        q.OptionB,
			OptionC:        q.OptionC,
			OptionD:        q.OptionD,
			SelectedAnswer: a.SelectedAnswer,
			CorrectAnswer:  q.CorrectAnswer,
			IsCorrect:      a.IsCorrect,
			Explanation:    q.Explanation,
		})
	}

	detail := &ResultDetail{Session: session}
	if session.Score != nil {
		detail.Percentage = percentageOf(*session.Score, session.TotalQuestions)
		detail.Passed = detail.Percentage != nil && *detail.Percentage >= passMark
	}
	for _, sub := range subSessions {
		detail.Subjects = append(detail.Subjects, SubjectBreakdown{
			SubjectID:   sub.SubjectID,
			SubjectName: sub.Subject.Name,
			Correct:     sub.CorrectAnswers,
			Total:       sub.QuestionsCount,
			Percentage:  percentageOf(sub.CorrectAnswers, sub.QuestionsCount),
			Answers:     detailsBySubject[sub.SubjectID],
		})
	}
	return detail, nil
}

// DeleteResult removes a session owned by the caller; answers and
// sub-sessions go with it via the cascade constraints. A session belonging to
// someone else is indistinguishable from a missing one.
func (s *ResultService) DeleteResult(sessionID, userID uuid.UUID) error {
	var session models.ExamSession
	if err := s.db.Where("id = ? AND user_id = ?", sessionID, userID).
		First(&session).Error; err != nil {
		return ErrResultNotFound
	}

	return s.db.Delete(&models.ExamSession{}, "id = ?", sessionID).Error
}

type LeaderboardEntry struct {
	Position     int     `json:"position"`
	FullName     string  `json:"full_name"`
	AverageScore float64 `json:"average_score"`
	Attempts     int     `json:"attempts"`
}

// Leaderboard ranks students by their average percentage across completed
// sessions.
func (s *ResultService) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []struct {
		UserID         uuid.UUID
		FullName       string
		Email          string
		Score          int
		TotalQuestions int
	}
	if err := s.db.Table("exam_sessions").
		Select("exam_sessions.user_id, profiles.full_name, profiles.email, exam_sessions.score, exam_sessions.total_questions").
		Joins("JOIN profiles ON profiles.id = exam_sessions.user_id").
		Where("exam_sessions.score IS NOT NULL").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	type acc struct {
		name  string
		total float64
		count int
	}
	byUser := make(map[uuid.UUID]*acc)
	for _, row := range rows {
		pct := 0.0
		if row.TotalQuestions > 0 {
			pct = float64(row.Score) / float64(row.TotalQuestions) * 100
		}
		name := row.FullName
		if name == "" {
			name = row.Email
		}
		a, ok := byUser[row.UserID]
		if !ok {
			a = &acc{name: name}
			byUser[row.UserID] = a
		}
		a.total += pct
		a.count++
	}

	entries := make([]LeaderboardEntry, 0, len(byUser))
	for _, a := range byUser {
		entries = append(entries, LeaderboardEntry{
			FullName:     a.name,
			AverageScore: math.Round(a.total/float64(a.count)*10) / 10,
			Attempts:     a.count,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].AverageScore > entries[j].AverageScore
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries, nil
}

// percentageOf guards the zero-total case: a subject with no questions has no
// percentage rather than a NaN.
func percentageOf(correct, total int) *int {
	if total == 0 {
		return nil
	}
	p := int(math.Round(float64(correct) / float64(total) * 100))
	return &p
}
