package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"quiz-runner/internal/domain"
)

// BankLoader fetches the question bank from a backing store (e.g. Postgres).
type BankLoader interface {
	LoadBank(ctx context.Context) (domain.Bank, error)
}

// BankRepository caches the sanitized bank JSON in Redis and falls back to
// the loader on a miss. The bank is stored as: SET bank:{bankID}:data {json}.
type BankRepository struct {
	client *redis.Client
	loader BankLoader
	bankID string
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	log    zerolog.Logger
}

func NewBankRepository(client *redis.Client, loader BankLoader, bankID string, ttl time.Duration, log zerolog.Logger) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		bankID: bankID,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    log.With().Str("component", "redis_bank_repository").Logger(),
	}
}

func (r *BankRepository) GetBank(ctx context.Context) (domain.Bank, error) {
	key := r.dataKey()

	raw, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var bank domain.Bank
		if err := json.Unmarshal(raw, &bank); err == nil && len(bank.Questions) > 0 {
			return bank, nil
		}
		// Unreadable cache entry; fall through and refill from the loader.
		r.log.Warn().Str("key", key).Msg("dropping unreadable cached bank")
		_ = r.client.Del(ctx, key).Err()
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		raw, err := r.client.Get(ctx, key).Bytes()
		if err == nil {
			var bank domain.Bank
			if err := json.Unmarshal(raw, &bank); err == nil && len(bank.Questions) > 0 {
				return bank, nil
			}
		}

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

		data, err := json.Marshal(bank)
		if err != nil {
			return domain.Bank{}, err
		}
		_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		return bank, nil
	})
	if err != nil {
		return domain.Bank{}, err
	}
	return result.(domain.Bank), nil
}

// Sources returns the sorted distinct source labels of the cached bank.
func (r *BankRepository) Sources(ctx context.Context) ([]string, error) {
	bank, err := r.GetBank(ctx)
	if err != nil {
		return nil, err
	}
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
	return sources, nil
}

func (r *BankRepository) dataKey() string {
	return "bank:" + r.bankID + ":data"
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
