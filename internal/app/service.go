package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"quiz-runner/internal/domain"
)

// BankRepository supplies the question bank (in-memory, Redis-cached, etc).
type BankRepository interface {
	GetBank(ctx context.Context) (domain.Bank, error)
	Sources(ctx context.Context) ([]string, error)
}

// QuizService contains the quiz runner use cases: listing filter sources and
// running at most one quiz session at a time. Starting a new session aborts
// the previous one first, so no orphaned timer keeps ticking a stale tally.
type QuizService struct {
	banks BankRepository
	log   zerolog.Logger

	mu     sync.Mutex
	rnd    *rand.Rand
	active *QuizSession
}

func NewQuizService(banks BankRepository, log zerolog.Logger) *QuizService {
	return NewQuizServiceWithRand(banks, log, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewQuizServiceWithRand is test-only for deterministic sampling.
func NewQuizServiceWithRand(banks BankRepository, log zerolog.Logger, rnd *rand.Rand) *QuizService {
	return &QuizService{
		banks: banks,
		log:   log.With().Str("component", "quiz_service").Logger(),
		rnd:   rnd,
	}
}

// Sources lists the distinct source labels for the filter choices.
func (s *QuizService) Sources(ctx context.Context) ([]string, error) {
	return s.banks.Sources(ctx)
}

// StartSession samples a quiz list from the loaded bank and starts a fresh
// session over it. It fails fast when the bank is not loaded or when the
// filters select nothing; no session is created in either case.
func (s *QuizService) StartSession(ctx context.Context, criteria domain.FilterCriteria, settings domain.Settings) (*QuizSession, error) {
	bank, err := s.banks.GetBank(ctx)
	if err != nil {
		return nil, err
	}
	settings = settings.Normalized()

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := Sample(bank.Questions, criteria, settings, s.rnd)
	if err != nil {
		return nil, err
	}

	if s.active != nil {
		s.active.Abort()
	}
	session, err := NewQuizSession(uuid.NewString(), list, settings)
	if err != nil {
		return nil, err
	}
	if err := session.Start(); err != nil {
		return nil, err
	}
	s.active = session

	s.log.Info().
		Str("session_id", session.ID()).
		Int("questions", len(list)).
		Str("source", criteria.Source).
		Str("difficulty", criteria.Difficulty).
		Msg("session started")
	return session, nil
}

// Active returns the session currently in progress, if any.
func (s *QuizService) Active() (*QuizSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil, false
	}
	return s.active, true
}

// EndSession aborts the active session, if any, and returns its summary.
func (s *QuizService) EndSession() (domain.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.SessionSummary{}, domain.ErrNoActiveSession
	}
	s.active.Abort()
	summary := s.active.Summary()
	s.active = nil
	return summary, nil
}
