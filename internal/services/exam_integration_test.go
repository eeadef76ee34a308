package services

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"cbt-portal-backend/internal/exam"
	"cbt-portal-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Exercises the full start -> answer -> submit -> review -> delete flow
// against a real database.
func TestExamLifecycle_DBIntegration(t *testing.T) {
	if os.Getenv("CBT_INTEGRATION") != "1" {
		t.Skip("set CBT_INTEGRATION=1 to run integration tests")
	}

	dsn := os.Getenv("CBT_TEST_DSN")
	if strings.TrimSpace(dsn) == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=cbt_portal_test port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.ExamType{},
		&models.Subject{},
		&models.Question{},
		&models.ExamSession{},
		&models.ExamSessionSubject{},
		&models.ExamAnswer{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	suffix := time.Now().UnixNano()

	profile := models.Profile{
		FullName:     fmt.Sprintf("ITest Student %d", suffix),
		Email:        fmt.Sprintf("itest_%d@example.com", suffix),
		PasswordHash: "x",
		Role:         models.RoleStudent,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	defer db.Delete(&models.Profile{}, "id = ?", profile.ID)

	examType := models.ExamType{Name: fmt.Sprintf("ITEST-%d", suffix)}
	if err := db.Create(&examType).Error; err != nil {
		t.Fatalf("seed exam type: %v", err)
	}
	defer db.Delete(&models.ExamType{}, "id = ?", examType.ID)

	subject := models.Subject{ExamTypeID: examType.ID, Name: "Mathematics"}
	if err := db.Create(&subject).Error; err != nil {
		t.Fatalf("seed subject: %v", err)
	}

	for i := 0; i < 3; i++ {
		q := models.Question{
			SubjectID:     subject.ID,
			QuestionText:  fmt.Sprintf("itest question %d", i),
			OptionA:       "a", OptionB: "b", OptionC: "c", OptionD: "d",
			CorrectAnswer: "B",
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("seed question: %v", err)
		}
	}
	defer db.Delete(&models.Question{}, "subject_id = ?", subject.ID)

	registry := exam.NewRegistry()
	svc := NewExamService(db, registry)
	results := NewResultService(db)

	started, err := svc.StartExam(profile.ID, examType.ID, []uuid.UUID{subject.ID})
	if err != nil {
		t.Fatalf("StartExam: %v", err)
	}
	if started.Session.TotalQuestions != 3 {
		t.Fatalf("total questions = %d, want 3", started.Session.TotalQuestions)
	}
	sessionID := started.Session.ID
	questions := started.Subjects[0].Questions

	// one right, one wrong, one left blank
	if err := svc.SelectAnswer(sessionID, profile.ID, questions[0].ID, "B"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if err := svc.SelectAnswer(sessionID, profile.ID, questions[1].ID, "A"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}

	session, err := svc.Submit(sessionID, profile.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if session.Score == nil || *session.Score != 1 {
		t.Fatalf("score = %v, want 1", session.Score)
	}
	if session.CompletedAt == nil {
		t.Fatal("completed_at not set after submit")
	}

	if _, err := svc.Submit(sessionID, profile.ID); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("second Submit = %v, want ErrAlreadyCompleted", err)
	}

	detail, err := results.GetResult(sessionID, profile.ID)
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if len(detail.Subjects) != 1 {
		t.Fatalf("subjects in breakdown = %d, want 1", len(detail.Subjects))
	}
	breakdown := detail.Subjects[0]
	if breakdown.Correct != 1 || breakdown.Total != 3 {
		t.Fatalf("breakdown = %d/%d, want 1/3", breakdown.Correct, breakdown.Total)
	}
	if breakdown.Percentage == nil || *breakdown.Percentage != 33 {
		t.Fatalf("breakdown percentage = %v, want 33", breakdown.Percentage)
	}
	if len(breakdown.Answers) != 3 {
		t.Fatalf("answer rows = %d, want one per question", len(breakdown.Answers))
	}
	if detail.Passed {
		t.Fatal("1/3 should not pass")
	}

	if err := results.DeleteResult(sessionID, profile.ID); err != nil {
		t.Fatalf("DeleteResult: %v", err)
	}
	if _, err := results.GetResult(sessionID, profile.ID); !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("GetResult after delete = %v, want ErrResultNotFound", err)
	}
}
