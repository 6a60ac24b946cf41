package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"quiz-runner/internal/domain"
)

// BankLoader fetches the question bank from a backing store (file, DB, etc).
type BankLoader interface {
	LoadBank(ctx context.Context) (domain.Bank, error)
}

// BankRepository caches the sanitized bank with a TTL to avoid reloading the
// whole collection on every session start.
type BankRepository struct {
	loader BankLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	log    zerolog.Logger

	mu     sync.RWMutex
	cached *cachedBank
}

type cachedBank struct {
	bank      domain.Bank
	expiresAt time.Time
}

func NewBankRepository(loader BankLoader, ttl time.Duration, log zerolog.Logger) *BankRepository {
	return &BankRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    log.With().Str("component", "bank_repository").Logger(),
	}
}

// GetBank returns the cached bank, reloading through the loader on expiry.
// Malformed records are dropped and logged; a bank with no usable questions
// at all is rejected as malformed.
func (r *BankRepository) GetBank(ctx context.Context) (domain.Bank, error) {
	now := r.clock()

	r.mu.RLock()
	if entry := r.cached; entry != nil && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.bank, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("bank", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry := r.cached; entry != nil && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.bank, nil
		}
		r.mu.RUnlock()

		loaded, err := r.loader.LoadBank(ctx)
		if err != nil {
			return domain.Bank{}, err
		}
		bank, skipped := domain.SanitizeBank(loaded)
		for _, id := range skipped {
			r.log.Warn().Str("question_id", id).Msg("skipping malformed question record")
		}
		if len(bank.Questions) == 0 {
			return domain.Bank{}, domain.ErrMalformedBank
		}

		r.mu.Lock()
		r.cached = &cachedBank{bank: bank, expiresAt: now.Add(r.ttlWithJitter())}
		r.mu.Unlock()

		r.log.Info().
			Str("title", bank.Meta.Title).
			Int("questions", len(bank.Questions)).
			Msg("question bank loaded")
		return bank, nil
	})
	if err != nil {
		return domain.Bank{}, err
	}
	return result.(domain.Bank), nil
}

// Sources returns the sorted set of distinct source labels, with the
// unclassified fallback applied.
func (r *BankRepository) Sources(ctx context.Context) ([]string, error) {
	bank, err := r.GetBank(ctx)
	if err != nil {
		return nil, err
	}
	return distinctSources(bank), nil
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

func distinctSources(bank domain.Bank) []string {
	seen := make(map[string]struct{})
	var sources []string
	for _, q := range bank.Questions {
		label := q.SourceLabel()
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		sources = append(sources, label)
	}
	sort.Strings(sources)
	return sources
}

// StaticBankLoader serves a fixed bank (tests, demo mode). A nil bank models
// the not-yet-loaded state.
type StaticBankLoader struct {
	bank *domain.Bank
}

func NewStaticBankLoader(bank *domain.Bank) *StaticBankLoader {
	return &StaticBankLoader{bank: bank}
}

func (l *StaticBankLoader) LoadBank(_ context.Context) (domain.Bank, error) {
	if l.bank == nil {
		return domain.Bank{}, domain.ErrBankNotLoaded
	}
	return *l.bank, nil
}
