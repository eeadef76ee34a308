package services

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"cbt-portal-backend/internal/exam"
	"cbt-portal-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxQuestionsPerSubject = 50
	examDurationMinutes    = 60

	// submitGrace absorbs clock skew and slow submits arriving just after
	// the server-side deadline. Anything later is rejected.
	submitGrace = 5 * time.Minute
)

var (
	ErrNoQuestions      = errors.New("no questions available for the selected subjects")
	ErrSessionNotFound  = errors.New("exam session not found")
	ErrAlreadyCompleted = errors.New("exam session already submitted")
	ErrTimeExceeded     = errors.New("exam time exceeded")
)

type ExamService struct {
	db      *gorm.DB
	runners *exam.Registry

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewExamService(db *gorm.DB, runners *exam.Registry) *ExamService {
	s := &ExamService{
		db:      db,
		runners: runners,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	runners.SetExpireFunc(s.autoSubmit)
	return s
}

// ExamQuestion is a question as served to a student: the correct answer and
// explanation are stripped until results.
type ExamQuestion struct {
	ID           uuid.UUID `json:"id"`
	QuestionText string    `json:"question_text"`
	OptionA      string    `json:"option_a"`
	OptionB      string    `json:"option_b"`
	OptionC      string    `json:"option_c"`
	OptionD      string    `json:"option_d"`
}

type ExamSubject struct {
	SubjectID   uuid.UUID      `json:"subject_id"`
	SubjectName string         `json:"subject_name"`
	Questions   []ExamQuestion `json:"questions"`
}

type StartedExam struct {
	Session  models.ExamSession `json:"session"`
	Subjects []ExamSubject      `json:"subjects"`
}

// StartExam turns an exam-type and subject selection into a persisted session
// with one sub-session per subject, and registers a live runner for it. Each
// subject's pool is shuffled independently and capped so repeated attempts do
// not see the bank in insertion order.
func (s *ExamService) StartExam(userID, examTypeID uuid.UUID, subjectIDs []uuid.UUID) (*StartedExam, error) {
	var examType models.ExamType
	if err := s.db.First(&examType, "id = ?", examTypeID).Error; err != nil {
		return nil, errors.New("exam type not found")
	}

	var (
		subjects []ExamSubject
		picked   []exam.SubjectQuestions
		total    int
	)
	for _, subjectID := range subjectIDs {
		var subject models.Subject
		if err := s.db.First(&subject, "id = ? AND exam_type_id = ?", subjectID, examTypeID).Error; err != nil {
			return nil, errors.New("subject not found for this exam type")
		}

		var pool []models.Question
		if err := s.db.Where("subject_id = ?", subjectID).
			Order("created_at ASC").
			Find(&pool).Error; err != nil {
			return nil, err
		}

		chosen := s.pickQuestions(pool)
		total += len(chosen)

		es := ExamSubject{SubjectID: subjectID, SubjectName: subject.Name}
		sq := exam.SubjectQuestions{SubjectID: subjectID}
		for _, q := range chosen {
			es.Questions = append(es.Questions, ExamQuestion{
				ID:           q.ID,
				QuestionText: q.QuestionText,
				OptionA:      q.OptionA,
				OptionB:      q.OptionB,
				OptionC:      q.OptionC,
				OptionD:      q.OptionD,
			})
			sq.QuestionIDs = append(sq.QuestionIDs, q.ID)
		}
		subjects = append(subjects, es)
		picked = append(picked, sq)
	}

	if total == 0 {
		return nil, ErrNoQuestions
	}

	session := models.ExamSession{
		UserID:          userID,
		ExamTypeID:      examTypeID,
		SubjectID:       subjectIDs[0],
		DurationMinutes: examDurationMinutes,
		TotalQuestions:  total,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}

	for i, sq := range picked {
		sub := models.ExamSessionSubject{
			ExamSessionID:  session.ID,
			SubjectID:      sq.SubjectID,
			QuestionsCount: len(sq.QuestionIDs),
		}
		if err := s.db.Create(&sub).Error; err != nil {
			// leave no partially addressable session behind
			s.db.Delete(&models.ExamSession{}, "id = ?", session.ID)
			return nil, err
		}
		_ = i
	}

	runner := exam.NewRunner(session.ID, userID, picked, session.DurationMinutes*60)
	s.runners.Add(runner)

	return &StartedExam{Session: session, Subjects: subjects}, nil
}

// pickQuestions shuffles a subject's pool and truncates it to the per-subject
// cap. The shuffle is plain pseudo-randomness, enough to defeat memorised
// question order in a practice tool.
func (s *ExamService) pickQuestions(pool []models.Question) []models.Question {
	out := make([]models.Question, len(pool))
	copy(out, pool)

	s.rngMu.Lock()
	s.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	s.rngMu.Unlock()

	if len(out) > maxQuestionsPerSubject {
		out = out[:maxQuestionsPerSubject]
	}
	return out
}

func (s *ExamService) runnerFor(sessionID, userID uuid.UUID) (*exam.Runner, error) {
	runner, ok := s.runners.Get(sessionID)
	if !ok || runner.UserID() != userID {
		return nil, ErrSessionNotFound
	}
	return runner, nil
}

func (s *ExamService) SelectAnswer(sessionID, userID, questionID uuid.UUID, option string) error {
	runner, err := s.runnerFor(sessionID, userID)
	if err != nil {
		return err
	}
	return runner.SelectOption(questionID, option)
}

func (s *ExamService) Navigate(sessionID, userID, subjectID uuid.UUID, delta int, index *int) (int, error) {
	runner, err := s.runnerFor(sessionID, userID)
	if err != nil {
		return 0, err
	}
	return runner.Navigate(subjectID, delta, index), nil
}

func (s *ExamService) State(sessionID, userID uuid.UUID) (*exam.Snapshot, error) {
	runner, err := s.runnerFor(sessionID, userID)
	if err != nil {
		return nil, err
	}
	snap := runner.Snapshot()
	return &snap, nil
}

// Submit is the manual submission entry point. The runner's single-flight
// guard prevents a double batch when the timer fires in the same instant; a
// persistence failure re-arms the guard so the student can retry.
func (s *ExamService) Submit(sessionID, userID uuid.UUID) (*models.ExamSession, error) {
	runner, ok := s.runners.Get(sessionID)
	if !ok {
		var session models.ExamSession
		if err := s.db.First(&session, "id = ? AND user_id = ?", sessionID, userID).Error; err != nil {
			return nil, ErrSessionNotFound
		}
		if session.Completed() {
			return nil, ErrAlreadyCompleted
		}
		return nil, ErrSessionNotFound
	}
	if runner.UserID() != userID {
		return nil, ErrSessionNotFound
	}

	if !runner.BeginSubmit() {
		return nil, ErrAlreadyCompleted
	}

	session, err := s.finalize(sessionID, runner.Answers())
	if err != nil {
		if !errors.Is(err, ErrTimeExceeded) && !errors.Is(err, ErrAlreadyCompleted) {
			runner.FailSubmit()
		}
		return nil, err
	}

	s.runners.Remove(sessionID)
	return session, nil
}

// autoSubmit runs when a runner's countdown reaches zero.
func (s *ExamService) autoSubmit(sessionID uuid.UUID) {
	runner, ok := s.runners.Get(sessionID)
	if !ok {
		return
	}
	if !runner.BeginSubmit() {
		return
	}

	if _, err := s.finalize(sessionID, runner.Answers()); err != nil {
		log.Printf("auto-submit failed for session %s: %v", sessionID, err)
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrAlreadyCompleted) {
			// session deleted or scored elsewhere, nothing left to drive
			s.runners.Remove(sessionID)
			return
		}
		runner.FailSubmit()
		return
	}

	s.runners.Remove(sessionID)
	log.Printf("session %s auto-submitted on timer expiry", sessionID)
}

// finalize grades the answer sheet and persists it atomically: the answer
// batch, the per-subject correct counts and the session score all commit in
// one transaction, so a session is always either in progress or fully scored.
func (s *ExamService) finalize(sessionID uuid.UUID, selections map[uuid.UUID]string) (*models.ExamSession, error) {
	var session models.ExamSession
	if err := s.db.First(&session, "id = ?", sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}
	if session.Completed() {
		return nil, ErrAlreadyCompleted
	}
	if time.Now().After(session.Deadline().Add(submitGrace)) {
		return nil, ErrTimeExceeded
	}

	ids := make([]uuid.UUID, 0, len(selections))
	for id := range selections {
		ids = append(ids, id)
	}
	var questions []models.Question
	if err := s.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}

	rows, score, bySubject := gradeAnswers(sessionID, questions, selections)
	completedAt := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		for subjectID, correct := range bySubject {
			if err := tx.Model(&models.ExamSessionSubject{}).
				Where("exam_session_id = ? AND subject_id = ?", sessionID, subjectID).
				Update("correct_answers", correct).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.ExamSession{}).
			Where("id = ?", sessionID).
			Updates(map[string]interface{}{
				"score":        score,
				"completed_at": completedAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	session.Score = &score
	session.CompletedAt = &completedAt
	return &session, nil
}

// gradeAnswers produces one answer row per question in the session. An
// unanswered question is recorded with a nil selection and scored incorrect,
// so the row count always equals the session's question count.
func gradeAnswers(sessionID uuid.UUID, questions []models.Question, selections map[uuid.UUID]string) ([]models.ExamAnswer, int, map[uuid.UUID]int) {
	now := time.Now()
	rows := make([]models.ExamAnswer, 0, len(questions))
	score := 0
	bySubject := make(map[uuid.UUID]int)

	for _, q := range questions {
		sel := selections[q.ID]
		var selected *string
		if sel != exam.Unanswered {
			v := sel
			selected = &v
		}

		correct := selected != nil && *selected == q.CorrectAnswer
		if correct {
			score++
			bySubject[q.SubjectID]++
		} else if _, ok := bySubject[q.SubjectID]; !ok {
			bySubject[q.SubjectID] = 0
		}

		rows = append(rows, models.ExamAnswer{
			ExamSessionID:  sessionID,
			QuestionID:     q.ID,
			SelectedAnswer: selected,
			IsCorrect:      correct,
			AnsweredAt:     now,
		})
	}
	return rows, score, bySubject
}
