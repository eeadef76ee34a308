package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("opening stub database: %v", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening gorm over stub connection: %v", err)
	}
	return gormDB, mock
}

func TestPercentageOf(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    *int
	}{
		{"zero total has no percentage", 0, 0, nil},
		{"zero correct", 0, 40, intPtr(0)},
		{"full marks", 40, 40, intPtr(100)},
		{"pass boundary", 20, 40, intPtr(50)},
		{"rounds down", 1, 3, intPtr(33)},
		{"rounds up", 2, 3, intPtr(67)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentageOf(tt.correct, tt.total)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("percentageOf(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("percentageOf(%d, %d) = %d, want %d", tt.correct, tt.total, *got, *tt.want)
			}
		})
	}
}

func intPtr(v int) *int { return &v }

func TestDeleteResultRejectsForeignSession(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewResultService(db)

	sessionID := uuid.New()
	userID := uuid.New()

	// ownership check finds nothing when the session belongs to someone else
	mock.ExpectQuery(`SELECT \* FROM "exam_sessions"`).
		WithArgs(sessionID, userID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	err := s.DeleteResult(sessionID, userID)
	if !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("DeleteResult = %v, want ErrResultNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteResultRemovesOwnedSession(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewResultService(db)

	sessionID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "exam_sessions"`).
		WithArgs(sessionID, userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total_questions"}).
			AddRow(sessionID, userID, 40))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "exam_sessions"`).
		WithArgs(sessionID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.DeleteResult(sessionID, userID); err != nil {
		t.Fatalf("DeleteResult: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
