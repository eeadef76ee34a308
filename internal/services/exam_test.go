package services

import (
	"math/rand"
	"testing"

	"cbt-portal-backend/internal/exam"
	"cbt-portal-backend/internal/models"

	"github.com/google/uuid"
)

func makeQuestions(subjectID uuid.UUID, correct ...string) []models.Question {
	out := make([]models.Question, len(correct))
	for i, c := range correct {
		out[i] = models.Question{
			ID:            uuid.New(),
			SubjectID:     subjectID,
			CorrectAnswer: c,
		}
	}
	return out
}

func TestGradeAnswersMixedSheet(t *testing.T) {
	sessionID := uuid.New()
	subjectID := uuid.New()
	questions := makeQuestions(subjectID, "A", "B", "C")

	selections := map[uuid.UUID]string{
		questions[0].ID: "A",            // correct
		questions[1].ID: "D",            // wrong
		questions[2].ID: exam.Unanswered, // skipped
	}

	rows, score, bySubject := gradeAnswers(sessionID, questions, selections)

	if score != 1 {
		t.Errorf("score = %d, want 1", score)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want one per question", len(rows))
	}
	if bySubject[subjectID] != 1 {
		t.Errorf("subject correct count = %d, want 1", bySubject[subjectID])
	}

	byQuestion := make(map[uuid.UUID]models.ExamAnswer)
	for _, row := range rows {
		if row.ExamSessionID != sessionID {
			t.Errorf("row session = %s, want %s", row.ExamSessionID, sessionID)
		}
		byQuestion[row.QuestionID] = row
	}

	if row := byQuestion[questions[0].ID]; !row.IsCorrect || row.SelectedAnswer == nil || *row.SelectedAnswer != "A" {
		t.Errorf("correct answer row mis-graded: %+v", row)
	}
	if row := byQuestion[questions[1].ID]; row.IsCorrect {
		t.Errorf("wrong answer row graded correct: %+v", row)
	}
	if row := byQuestion[questions[2].ID]; row.SelectedAnswer != nil || row.IsCorrect {
		t.Errorf("unanswered row should persist nil selection and score incorrect: %+v", row)
	}
}

func TestGradeAnswersAllUnanswered(t *testing.T) {
	sessionID := uuid.New()
	subjectID := uuid.New()
	questions := makeQuestions(subjectID, "A", "B")

	selections := map[uuid.UUID]string{
		questions[0].ID: exam.Unanswered,
		questions[1].ID: exam.Unanswered,
	}

	rows, score, bySubject := gradeAnswers(sessionID, questions, selections)

	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, want 2", len(rows))
	}
	got, ok := bySubject[subjectID]
	if !ok {
		t.Fatal("subject with zero correct answers missing from breakdown")
	}
	if got != 0 {
		t.Errorf("subject correct count = %d, want 0", got)
	}
}

func TestGradeAnswersSplitsBySubject(t *testing.T) {
	sessionID := uuid.New()
	mathID, engID := uuid.New(), uuid.New()

	questions := append(makeQuestions(mathID, "A", "A"), makeQuestions(engID, "B")...)
	selections := map[uuid.UUID]string{
		questions[0].ID: "A",
		questions[1].ID: "A",
		questions[2].ID: "C",
	}

	_, score, bySubject := gradeAnswers(sessionID, questions, selections)

	if score != 2 {
		t.Errorf("score = %d, want 2", score)
	}
	if bySubject[mathID] != 2 {
		t.Errorf("math correct = %d, want 2", bySubject[mathID])
	}
	if bySubject[engID] != 0 {
		t.Errorf("english correct = %d, want 0", bySubject[engID])
	}
}

func TestPickQuestionsCapsPool(t *testing.T) {
	subjectID := uuid.New()
	pool := make([]models.Question, 80)
	for i := range pool {
		pool[i] = models.Question{ID: uuid.New(), SubjectID: subjectID}
	}

	s := &ExamService{rng: rand.New(rand.NewSource(1))}
	picked := s.pickQuestions(pool)

	if len(picked) != maxQuestionsPerSubject {
		t.Fatalf("picked = %d, want %d", len(picked), maxQuestionsPerSubject)
	}

	seen := make(map[uuid.UUID]bool)
	inPool := make(map[uuid.UUID]bool, len(pool))
	for _, q := range pool {
		inPool[q.ID] = true
	}
	for _, q := range picked {
		if seen[q.ID] {
			t.Fatalf("question %s picked twice", q.ID)
		}
		if !inPool[q.ID] {
			t.Fatalf("question %s not in the original pool", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestPickQuestionsSmallPoolKeptWhole(t *testing.T) {
	pool := make([]models.Question, 7)
	for i := range pool {
		pool[i] = models.Question{ID: uuid.New()}
	}

	s := &ExamService{rng: rand.New(rand.NewSource(1))}
	if picked := s.pickQuestions(pool); len(picked) != 7 {
		t.Errorf("picked = %d, want all 7", len(picked))
	}
}

func TestPickQuestionsDeterministicPerSeed(t *testing.T) {
	pool := make([]models.Question, 20)
	for i := range pool {
		pool[i] = models.Question{ID: uuid.New()}
	}

	a := &ExamService{rng: rand.New(rand.NewSource(42))}
	b := &ExamService{rng: rand.New(rand.NewSource(42))}

	pa := a.pickQuestions(pool)
	pb := b.pickQuestions(pool)
	for i := range pa {
		if pa[i].ID != pb[i].ID {
			t.Fatalf("order diverged at index %d with identical seeds", i)
		}
	}

	// and the input slice is untouched
	c := &ExamService{rng: rand.New(rand.NewSource(1))}
	before := make([]uuid.UUID, len(pool))
	for i, q := range pool {
		before[i] = q.ID
	}
	c.pickQuestions(pool)
	for i, q := range pool {
		if q.ID != before[i] {
			t.Fatalf("pickQuestions mutated its input at index %d", i)
		}
	}
}
