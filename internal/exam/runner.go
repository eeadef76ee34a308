package exam

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrAlreadySubmitted = errors.New("exam already submitted")
	ErrUnknownQuestion  = errors.New("question is not part of this exam")
	ErrInvalidOption    = errors.New("selected option must be A, B, C or D")
)

// Unanswered marks a question with no selected option.
const Unanswered = ""

// SubjectQuestions is the ordered question list served for one subject.
type SubjectQuestions struct {
	SubjectID   uuid.UUID
	QuestionIDs []uuid.UUID
}

// Runner holds the live state of one in-progress exam session: the answer
// sheet, the navigation cursor per subject and the shared countdown. A single
// submitted flag guards the two submission triggers (manual request and timer
// expiry) so persistence runs at most once at a time.
type Runner struct {
	mu        sync.Mutex
	sessionID uuid.UUID
	userID    uuid.UUID
	answers   map[uuid.UUID]string
	positions map[uuid.UUID]int
	counts    map[uuid.UUID]int
	order     []uuid.UUID
	remaining int
	submitted bool
}

func NewRunner(sessionID, userID uuid.UUID, subjects []SubjectQuestions, durationSeconds int) *Runner {
	r := &Runner{
		sessionID: sessionID,
		userID:    userID,
		answers:   make(map[uuid.UUID]string),
		positions: make(map[uuid.UUID]int),
		counts:    make(map[uuid.UUID]int),
		remaining: durationSeconds,
	}
	for _, s := range subjects {
		r.order = append(r.order, s.SubjectID)
		r.positions[s.SubjectID] = 0
		r.counts[s.SubjectID] = len(s.QuestionIDs)
		for _, qid := range s.QuestionIDs {
			r.answers[qid] = Unanswered
		}
	}
	return r
}

func (r *Runner) SessionID() uuid.UUID { return r.sessionID }
func (r *Runner) UserID() uuid.UUID    { return r.userID }

// SelectOption records the answer for one question, overwriting any earlier
// choice. It is rejected once submission has begun.
func (r *Runner) SelectOption(questionID uuid.UUID, option string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.submitted {
		return ErrAlreadySubmitted
	}
	switch option {
	case "A", "B", "C", "D":
	default:
		return ErrInvalidOption
	}
	if _, ok := r.answers[questionID]; !ok {
		return ErrUnknownQuestion
	}
	r.answers[questionID] = option
	return nil
}

// ClearOption resets a question back to unanswered.
func (r *Runner) ClearOption(questionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.submitted {
		return ErrAlreadySubmitted
	}
	if _, ok := r.answers[questionID]; !ok {
		return ErrUnknownQuestion
	}
	r.answers[questionID] = Unanswered
	return nil
}

// Navigate moves the cursor for one subject, either to an absolute index or
// by a relative delta. The result is clamped to the subject's question range
// and never fails; unknown subjects leave the cursor at 0.
func (r *Runner) Navigate(subjectID uuid.UUID, delta int, index *int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count, ok := r.counts[subjectID]
	if !ok || count == 0 {
		return 0
	}

	pos := r.positions[subjectID]
	if index != nil {
		pos = *index
	} else {
		pos += delta
	}
	if pos < 0 {
		pos = 0
	}
	if pos > count-1 {
		pos = count - 1
	}
	r.positions[subjectID] = pos
	return pos
}

// Tick counts the shared countdown down by one second. It reports true
// exactly once, when the countdown reaches zero on a runner that has not
// begun submitting; the caller then triggers auto-submission.
func (r *Runner) Tick() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.submitted || r.remaining <= 0 {
		return false
	}
	r.remaining--
	return r.remaining == 0
}

// BeginSubmit is the single-flight check-and-set shared by the manual submit
// request and the timer callback. Only the caller that receives true may
// persist the answer set.
func (r *Runner) BeginSubmit() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.submitted {
		return false
	}
	r.submitted = true
	return true
}

// FailSubmit clears the submitted guard after a persistence failure so the
// student can retry instead of stranding the session.
func (r *Runner) FailSubmit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitted = false
}

func (r *Runner) Submitted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submitted
}

func (r *Runner) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Answers returns a copy of the answer sheet, one entry per question.
func (r *Runner) Answers() map[uuid.UUID]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[uuid.UUID]string, len(r.answers))
	for k, v := range r.answers {
		out[k] = v
	}
	return out
}

// Snapshot is the client-facing view of a runner.
type Snapshot struct {
	SessionID     uuid.UUID            `json:"session_id"`
	Remaining     int                  `json:"remaining_seconds"`
	Submitted     bool                 `json:"submitted"`
	AnsweredCount int                  `json:"answered_count"`
	TotalCount    int                  `json:"total_count"`
	Answers       map[uuid.UUID]string `json:"answers"`
	Positions     map[uuid.UUID]int    `json:"positions"`
}

func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		SessionID: r.sessionID,
		Remaining: r.remaining,
		Submitted: r.submitted,
		Answers:   make(map[uuid.UUID]string, len(r.answers)),
		Positions: make(map[uuid.UUID]int, len(r.positions)),
	}
	for k, v := range r.answers {
		snap.Answers[k] = v
		snap.TotalCount++
		if v != Unanswered {
			snap.AnsweredCount++
		}
	}
	for k, v := range r.positions {
		snap.Positions[k] = v
	}
	return snap
}
