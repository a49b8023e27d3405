// Package ledger tracks credit balances. Generations debit up-front at the
// quoted amount; cancellations refund best-effort.
package ledger

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"studio/internal/domain"
)

// Ledger is the credit accounting surface handlers depend on.
type Ledger interface {
	Balance(account string) int
	Debit(account string, credits int) error
	Refund(account string, credits int)
}

// Memory is an in-process ledger. Balances start at the configured grant
// the first time an account is touched.
type Memory struct {
	mu       sync.Mutex
	balances map[string]int
	grant    int
	logger   zerolog.Logger
}

// NewMemory creates a ledger that seeds every new account with grant credits.
func NewMemory(grant int, logger zerolog.Logger) *Memory {
	return &Memory{
		balances: make(map[string]int),
		grant:    grant,
		logger:   logger,
	}
}

// Balance returns the current balance, seeding the account if new.
func (m *Memory) Balance(account string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance(account)
}

// Debit subtracts credits atomically. A balance that cannot cover the
// amount leaves the account untouched.
func (m *Memory) Debit(account string, credits int) error {
	if credits <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	bal := m.balance(account)
	if bal < credits {
		return fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, credits, bal)
	}
	m.balances[account] = bal - credits
	m.logger.Debug().Str("account", account).Int("credits", credits).Int("balance", bal-credits).Msg("ledger: debit")
	return nil
}

// Refund returns credits to the account.
func (m *Memory) Refund(account string, credits int) {
	if credits <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	bal := m.balance(account) + credits
	m.balances[account] = bal
	m.logger.Debug().Str("account", account).Int("credits", credits).Int("balance", bal).Msg("ledger: refund")
}

func (m *Memory) balance(account string) int {
	if bal, ok := m.balances[account]; ok {
		return bal
	}
	m.balances[account] = m.grant
	return m.grant
}
