package ledger

import (
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"studio/internal/domain"
)

func TestDebitAndRefund(t *testing.T) {
	l := NewMemory(500, zerolog.Nop())

	if got := l.Balance("a"); got != 500 {
		t.Fatalf("initial balance = %d, want 500", got)
	}
	if err := l.Debit("a", 200); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if got := l.Balance("a"); got != 300 {
		t.Fatalf("balance after debit = %d, want 300", got)
	}

	l.Refund("a", 200)
	if got := l.Balance("a"); got != 500 {
		t.Fatalf("balance after refund = %d, want 500", got)
	}
}

func TestDebitRejectsOverdraft(t *testing.T) {
	l := NewMemory(100, zerolog.Nop())

	err := l.Debit("a", 101)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if got := l.Balance("a"); got != 100 {
		t.Fatalf("failed debit must not touch the balance, got %d", got)
	}
}

func TestAccountsAreIndependent(t *testing.T) {
	l := NewMemory(100, zerolog.Nop())
	if err := l.Debit("a", 60); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if got := l.Balance("b"); got != 100 {
		t.Fatalf("account b balance = %d, want 100", got)
	}
}

func TestConcurrentDebits(t *testing.T) {
	l := NewMemory(1000, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Debit("a", 10)
		}()
	}
	wg.Wait()

	if got := l.Balance("a"); got != 0 {
		t.Fatalf("balance = %d, want 0 after 100 debits of 10", got)
	}
}
