package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"quiz-runner/internal/domain"
)

func TestBankRepositoryCaches(t *testing.T) {
	loader := &countingLoader{BankLoader: NewStaticBankLoader(DemoBank())}
	repo := NewBankRepository(loader, time.Minute, zerolog.Nop())

	if _, err := repo.GetBank(context.Background()); err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetBank(context.Background()); err != nil {
		t.Fatalf("get bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestBankRepositoryNotLoaded(t *testing.T) {
	repo := NewBankRepository(NewStaticBankLoader(nil), time.Minute, zerolog.Nop())

	_, err := repo.GetBank(context.Background())
	if !errors.Is(err, domain.ErrBankNotLoaded) {
		t.Fatalf("expected ErrBankNotLoaded, got %v", err)
	}
}

func TestBankRepositorySkipsMalformedRecords(t *testing.T) {
	bank := &domain.Bank{
		Questions: []domain.Question{
			{ID: "ok", Type: domain.TypeSingle, Options: []string{"a", "b"}, Answer: []int{0}},
			{ID: "no-answer", Type: domain.TypeSingle, Options: []string{"a", "b"}},
			{ID: "no-options", Type: domain.TypeSingle, Answer: []int{0}},
		},
	}
	repo := NewBankRepository(NewStaticBankLoader(bank), time.Minute, zerolog.Nop())

	got, err := repo.GetBank(context.Background())
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if len(got.Questions) != 1 || got.Questions[0].ID != "ok" {
		t.Fatalf("expected only the valid record, got %+v", got.Questions)
	}
}

func TestBankRepositoryAllMalformedIsError(t *testing.T) {
	bank := &domain.Bank{
		Questions: []domain.Question{{ID: "broken", Type: domain.TypeSingle}},
	}
	repo := NewBankRepository(NewStaticBankLoader(bank), time.Minute, zerolog.Nop())

	_, err := repo.GetBank(context.Background())
	if !errors.Is(err, domain.ErrMalformedBank) {
		t.Fatalf("expected ErrMalformedBank, got %v", err)
	}
}

func TestBankRepositorySources(t *testing.T) {
	d := 1
	bank := &domain.Bank{
		Questions: []domain.Question{
			{ID: "q1", Source: "zebra", Difficulty: &d, Type: domain.TypeSingle, Options: []string{"a", "b"}, Answer: []int{0}},
			{ID: "q2", Source: "apple", Type: domain.TypeSingle, Options: []string{"a", "b"}, Answer: []int{0}},
			{ID: "q3", Type: domain.TypeSingle, Options: []string{"a", "b"}, Answer: []int{0}},
			{ID: "q4", Source: "apple", Type: domain.TypeSingle, Options: []string{"a", "b"}, Answer: []int{0}},
		},
	}
	repo := NewBankRepository(NewStaticBankLoader(bank), time.Minute, zerolog.Nop())

	sources, err := repo.Sources(context.Background())
	if err != nil {
		t.Fatalf("sources: %v", err)
	}
	want := []string{"apple", "unclassified", "zebra"}
	if !reflect.DeepEqual(sources, want) {
		t.Fatalf("expected %v, got %v", want, sources)
	}
}

type countingLoader struct {
	BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context) (domain.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx)
}
