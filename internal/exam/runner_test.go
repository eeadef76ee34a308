package exam

import (
	"testing"

	"github.com/google/uuid"
)

func newTestRunner(t *testing.T, perSubject int, seconds int) (*Runner, []uuid.UUID, uuid.UUID) {
	t.Helper()

	subjectID := uuid.New()
	qids := make([]uuid.UUID, perSubject)
	for i := range qids {
		qids[i] = uuid.New()
	}
	r := NewRunner(uuid.New(), uuid.New(), []SubjectQuestions{
		{SubjectID: subjectID, QuestionIDs: qids},
	}, seconds)
	return r, qids, subjectID
}

func TestSelectOption(t *testing.T) {
	r, qids, _ := newTestRunner(t, 3, 60)

	if err := r.SelectOption(qids[0], "B"); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	if got := r.Answers()[qids[0]]; got != "B" {
		t.Errorf("answer = %q, want B", got)
	}

	// overwriting an earlier choice is allowed
	if err := r.SelectOption(qids[0], "D"); err != nil {
		t.Fatalf("SelectOption overwrite: %v", err)
	}
	if got := r.Answers()[qids[0]]; got != "D" {
		t.Errorf("answer after overwrite = %q, want D", got)
	}

	if err := r.SelectOption(qids[1], "E"); err != ErrInvalidOption {
		t.Errorf("invalid option error = %v, want ErrInvalidOption", err)
	}
	if err := r.SelectOption(uuid.New(), "A"); err != ErrUnknownQuestion {
		t.Errorf("unknown question error = %v, want ErrUnknownQuestion", err)
	}
}

func TestClearOption(t *testing.T) {
	r, qids, _ := newTestRunner(t, 2, 60)

	if err := r.SelectOption(qids[0], "A"); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	if err := r.ClearOption(qids[0]); err != nil {
		t.Fatalf("ClearOption: %v", err)
	}
	if got := r.Answers()[qids[0]]; got != Unanswered {
		t.Errorf("answer after clear = %q, want unanswered", got)
	}
}

func TestSelectOptionRejectedAfterSubmit(t *testing.T) {
	r, qids, _ := newTestRunner(t, 2, 60)

	if !r.BeginSubmit() {
		t.Fatal("BeginSubmit returned false on fresh runner")
	}
	if err := r.SelectOption(qids[0], "A"); err != ErrAlreadySubmitted {
		t.Errorf("SelectOption after submit = %v, want ErrAlreadySubmitted", err)
	}
	if err := r.ClearOption(qids[0]); err != ErrAlreadySubmitted {
		t.Errorf("ClearOption after submit = %v, want ErrAlreadySubmitted", err)
	}
}

func TestNavigateClamps(t *testing.T) {
	r, _, subjectID := newTestRunner(t, 5, 60)

	if got := r.Navigate(subjectID, 1, nil); got != 1 {
		t.Errorf("forward = %d, want 1", got)
	}
	if got := r.Navigate(subjectID, -10, nil); got != 0 {
		t.Errorf("past start = %d, want 0", got)
	}
	if got := r.Navigate(subjectID, 100, nil); got != 4 {
		t.Errorf("past end = %d, want 4", got)
	}

	idx := 2
	if got := r.Navigate(subjectID, 0, &idx); got != 2 {
		t.Errorf("jump = %d, want 2", got)
	}
	idx = 99
	if got := r.Navigate(subjectID, 0, &idx); got != 4 {
		t.Errorf("jump past end = %d, want 4", got)
	}

	if got := r.Navigate(uuid.New(), 3, nil); got != 0 {
		t.Errorf("unknown subject = %d, want 0", got)
	}
}

func TestNavigateIsPerSubject(t *testing.T) {
	subA, subB := uuid.New(), uuid.New()
	r := NewRunner(uuid.New(), uuid.New(), []SubjectQuestions{
		{SubjectID: subA, QuestionIDs: []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}},
		{SubjectID: subB, QuestionIDs: []uuid.UUID{uuid.New(), uuid.New()}},
	}, 60)

	r.Navigate(subA, 2, nil)

	snap := r.Snapshot()
	if snap.Positions[subA] != 2 {
		t.Errorf("subject A position = %d, want 2", snap.Positions[subA])
	}
	if snap.Positions[subB] != 0 {
		t.Errorf("subject B position = %d, want 0", snap.Positions[subB])
	}
}

func TestTickFiresOnceAtZero(t *testing.T) {
	r, _, _ := newTestRunner(t, 1, 3)

	for i := 0; i < 2; i++ {
		if r.Tick() {
			t.Fatalf("Tick fired early with %d seconds left", r.Remaining())
		}
	}
	if !r.Tick() {
		t.Fatal("Tick did not fire when countdown reached zero")
	}
	if r.Tick() {
		t.Fatal("Tick fired a second time after reaching zero")
	}
	if r.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", r.Remaining())
	}
}

func TestTickStopsAfterSubmit(t *testing.T) {
	r, _, _ := newTestRunner(t, 1, 2)

	r.BeginSubmit()
	if r.Tick() {
		t.Fatal("Tick fired on a submitted runner")
	}
	if r.Remaining() != 2 {
		t.Errorf("remaining changed on submitted runner: %d", r.Remaining())
	}
}

func TestBeginSubmitSingleFlight(t *testing.T) {
	r, _, _ := newTestRunner(t, 1, 60)

	if !r.BeginSubmit() {
		t.Fatal("first BeginSubmit returned false")
	}
	if r.BeginSubmit() {
		t.Fatal("second BeginSubmit returned true")
	}
}

func TestFailSubmitReArmsGuard(t *testing.T) {
	r, _, _ := newTestRunner(t, 1, 60)

	if !r.BeginSubmit() {
		t.Fatal("first BeginSubmit returned false")
	}
	r.FailSubmit()
	if !r.BeginSubmit() {
		t.Fatal("BeginSubmit after FailSubmit returned false")
	}
}

func TestSnapshotCounts(t *testing.T) {
	r, qids, _ := newTestRunner(t, 4, 60)

	r.SelectOption(qids[0], "A")
	r.SelectOption(qids[2], "C")

	snap := r.Snapshot()
	if snap.TotalCount != 4 {
		t.Errorf("total = %d, want 4", snap.TotalCount)
	}
	if snap.AnsweredCount != 2 {
		t.Errorf("answered = %d, want 2", snap.AnsweredCount)
	}
	if snap.Remaining != 60 {
		t.Errorf("remaining = %d, want 60", snap.Remaining)
	}
	if snap.Submitted {
		t.Error("snapshot reports submitted on a live runner")
	}
}

func TestRegistryTickAllReportsExpired(t *testing.T) {
	g := NewRegistry()

	short, _, _ := newTestRunner(t, 1, 1)
	long, _, _ := newTestRunner(t, 1, 10)
	g.Add(short)
	g.Add(long)

	expired := g.tickAll()
	if len(expired) != 1 || expired[0] != short.SessionID() {
		t.Fatalf("expired = %v, want [%s]", expired, short.SessionID())
	}
	if expired := g.tickAll(); len(expired) != 0 {
		t.Fatalf("second pass expired = %v, want none", expired)
	}
}

func TestRegistryRemove(t *testing.T) {
	g := NewRegistry()
	r, _, _ := newTestRunner(t, 1, 60)
	g.Add(r)

	if _, ok := g.Get(r.SessionID()); !ok {
		t.Fatal("runner not found after Add")
	}
	g.Remove(r.SessionID())
	if _, ok := g.Get(r.SessionID()); ok {
		t.Fatal("runner still found after Remove")
	}
}
