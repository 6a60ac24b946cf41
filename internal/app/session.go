package app

import (
	"math/rand"
	"sync"
	"time"

	"quiz-runner/internal/domain"
)

type sessionState int

const (
	stateNotStarted sessionState = iota
	statePresenting
	stateGraded
	stateCompleted
)

// Presentation is what the presentation layer needs to render one question:
// the question itself plus a presentation-only permutation of its canonical
// option indices. Answers submitted back must use canonical indices.
type Presentation struct {
	Index        int
	Total        int
	Question     domain.Question
	DisplayOrder []int
}

// QuizSession is the state machine for one quiz attempt. It owns the quiz
// list, the current index and the tally, and guarantees each question is
// graded at most once. All methods are safe for concurrent use; the elapsed
// counter is advanced by a periodic Tick from an IntervalTimer.
type QuizSession struct {
	id        string
	settings  domain.Settings
	list      []domain.Question
	tickEvery time.Duration

	mu    sync.Mutex
	state sessionState
	idx   int
	tally *Tally
	rnd   *rand.Rand
	timer *IntervalTimer
}

// NewQuizSession builds a session over a non-empty quiz list. The session
// starts in the not-started state; call Start to begin presenting.
func NewQuizSession(id string, list []domain.Question, settings domain.Settings) (*QuizSession, error) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewQuizSessionWithPacing(id, list, settings, rnd, time.Second)
}

// NewQuizSessionWithPacing is for tests that need a deterministic display
// shuffle or manual control of the elapsed counter. A non-positive tickEvery
// disables the internal timer; Tick can then be driven directly.
func NewQuizSessionWithPacing(id string, list []domain.Question, settings domain.Settings, rnd *rand.Rand, tickEvery time.Duration) (*QuizSession, error) {
	if len(list) == 0 {
		return nil, domain.ErrEmptySelection
	}
	return &QuizSession{
		id:        id,
		settings:  settings,
		list:      list,
		tickEvery: tickEvery,
		state:     stateNotStarted,
		tally:     NewTally(),
		rnd:       rnd,
	}, nil
}

// ID returns the session identifier.
func (s *QuizSession) ID() string {
	return s.id
}

// Settings returns the settings the session was started with.
func (s *QuizSession) Settings() domain.Settings {
	return s.settings
}

// Start transitions to presenting the first question and begins the elapsed
// counter. Starting twice is an error; a restart means a new session.
func (s *QuizSession) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case statePresenting, stateGraded:
		return domain.ErrSessionActive
	case stateCompleted:
		return domain.ErrSessionCompleted
	}
	s.idx = 0
	s.tally = NewTally()
	s.state = statePresenting
	if s.tickEvery > 0 {
		s.timer = StartInterval(s.tickEvery, s.Tick)
	}
	return nil
}

// PresentCurrent returns the current question with a freshly computed display
// order. Each call recomputes the permutation; it is never stored, so grading
// and missed-question snapshots only ever see canonical indices.
func (s *QuizSession) PresentCurrent() (Presentation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateNotStarted:
		return Presentation{}, domain.ErrSessionNotStarted
	case stateCompleted:
		return Presentation{}, domain.ErrSessionCompleted
	}
	q := s.list[s.idx]
	return Presentation{
		Index:        s.idx,
		Total:        len(s.list),
		Question:     q,
		DisplayOrder: displayOrder(len(q.Options), s.settings.ShuffleOptions, s.rnd),
	}, nil
}

// SubmitAnswer grades the current question against the chosen canonical
// indices and records the outcome. A question can be graded once: repeated
// submissions fail with ErrAlreadyGraded and leave the tally untouched.
func (s *QuizSession) SubmitAnswer(chosen []int) (Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateNotStarted:
		return Verdict{}, domain.ErrSessionNotStarted
	case stateCompleted:
		return Verdict{}, domain.ErrSessionCompleted
	case stateGraded:
		return Verdict{}, domain.ErrAlreadyGraded
	}

	q := s.list[s.idx]
	verdict := Grade(q, chosen)
	s.tally.RecordResult(q, chosen, verdict.Correct)
	s.state = stateGraded
	return verdict, nil
}

// Advance moves past a graded question. It reports done=true when the quiz
// list is exhausted, which completes the session and stops the timer.
func (s *QuizSession) Advance() (done bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateNotStarted:
		return false, domain.ErrSessionNotStarted
	case stateCompleted:
		return false, domain.ErrSessionCompleted
	case statePresenting:
		return false, domain.ErrNotGraded
	}

	s.idx++
	if s.idx >= len(s.list) {
		s.completeLocked()
		return true, nil
	}
	s.state = statePresenting
	return false, nil
}

// Abort ends the session immediately from any state, freezing the tally with
// whatever was accumulated. Aborting a completed session is a no-op.
func (s *QuizSession) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateCompleted {
		return
	}
	s.completeLocked()
}

// Tick advances the elapsed counter by one second. It is inert before Start
// and after completion, so a straggling timer callback cannot skew a
// finalized tally.
func (s *QuizSession) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == statePresenting || s.state == stateGraded {
		s.tally.tick()
	}
}

// Completed reports whether the session has ended.
func (s *QuizSession) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateCompleted
}

// Summary finalizes the tally into a read-only snapshot.
func (s *QuizSession) Summary() domain.SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tally.Finalize(len(s.list), s.settings.AllowReview)
}

func (s *QuizSession) completeLocked() {
	s.state = stateCompleted
	if s.timer != nil {
		s.timer.Stop()
	}
}
