// Package ledger implements the in-memory fund-transfer engine behind the
// banking demo API: account balances, transfer validation, transaction
// records and the matching email notifications. One Ledger instance holds
// the whole session; nothing survives a restart.
package ledger

import (
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hasminC/BankingApp/internal/core/domain"
	"github.com/hasminC/BankingApp/internal/core/notifications"
)

// Transfer limits in pesos.
var (
	MinAmount = decimal.NewFromInt(100)
	MaxAmount = decimal.NewFromInt(50000)
)

// DefaultUserEmail receives every transfer confirmation unless overridden
// through WithUserEmail.
const DefaultUserEmail = "testuser@example.com"

// validExternalAccounts is the fixed whitelist of account numbers accepted
// as external destinations.
var validExternalAccounts = []string{
	"1234567890", "9876543210", "5678901234", "7777888899",
}

// A transfer of exactly P1000 costs the source an extra P100 on top of the
// transferred amount. The balance check in validate deliberately ignores the
// fee, matching the app's visible behavior.
var (
	surchargeTrigger = decimal.NewFromInt(1000)
	surchargeFee     = decimal.NewFromInt(100)
)

// TransferInput carries the raw form fields of one transfer attempt. Amount
// arrives as text, exactly as typed into the app.
type TransferInput struct {
	SourceID        string `json:"source_account_id"`
	DestType        string `json:"destination_type"`
	DestID          string `json:"destination_account_id"`
	ExternalAccount string `json:"external_account_number"`
	Amount          string `json:"amount"`
}

// Observer is invoked after each successfully processed transfer, outside the
// engine's critical section. Owned by the caller; may be nil.
type Observer func(domain.Transaction, domain.EmailNotification)

// Ledger is the engine instance. All registries live in memory and every
// operation runs under a single mutex, so concurrent API callers see each
// transfer as atomic and ProcessTransfer never acts on a stale balance.
type Ledger struct {
	mu           sync.Mutex
	sessionID    uuid.UUID
	userEmail    string
	accounts     []*domain.Account          // seed order, live balances
	index        map[string]*domain.Account // id -> live account
	transactions []domain.Transaction       // most recent first
	inbox        *notifications.Inbox       // most recent first
	observer     Observer
	now          func() time.Time
}

type Option func(*Ledger)

// WithUserEmail changes the address transfer confirmations are filed to.
func WithUserEmail(email string) Option {
	return func(l *Ledger) { l.userEmail = email }
}

// WithObserver registers a callback for processed transfers.
func WithObserver(fn Observer) Option {
	return func(l *Ledger) { l.observer = fn }
}

// WithClock replaces the engine's clock. Tests use it for deterministic
// transaction ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New builds a ready engine with the three fixed demo accounts.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		sessionID: uuid.New(),
		userEmail: DefaultUserEmail,
		index:     make(map[string]*domain.Account),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.inbox = notifications.NewInbox(l.userEmail)

	seeds := []domain.Account{
		{ID: "A", Name: "Account A", Type: "Savings", Number: "1111222233", Balance: decimal.NewFromInt(10000)},
		{ID: "B", Name: "Account B", Type: "Checking", Number: "4444555566", Balance: decimal.NewFromInt(5000)},
		{ID: "C", Name: "Account C", Type: "Savings", Number: "7777999988", Balance: decimal.NewFromInt(2000)},
	}
	for i := range seeds {
		acc := seeds[i]
		l.accounts = append(l.accounts, &acc)
		l.index[acc.ID] = &acc
	}
	return l
}

// ValidateTransfer checks one transfer attempt against the engine's rules
// without touching any state. The first failing rule is returned as a
// *ValidationError; nil means the transfer may proceed.
func (l *Ledger) ValidateTransfer(in TransferInput) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.validate(in)
}

func (l *Ledger) validate(in TransferInput) error {
	if in.SourceID == "" {
		return ErrNoSourceAccount
	}
	if in.DestType == domain.TransferOwn && in.DestID == "" {
		return ErrNoDestinationAccount
	}
	if in.DestType == domain.TransferExternal && in.ExternalAccount == "" {
		return ErrNoExternalAccount
	}
	if in.DestType == domain.TransferOwn && in.SourceID == in.DestID {
		return ErrSameAccount
	}
	if in.DestType == domain.TransferExternal && !slices.Contains(validExternalAccounts, in.ExternalAccount) {
		return ErrUnknownExternal
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return ErrBadAmount
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveAmount
	}
	if amount.LessThan(MinAmount) {
		return ErrBelowMinimum
	}
	if amount.GreaterThan(MaxAmount) {
		return ErrAboveMaximum
	}

	// Checked against the requested amount only; the P1000 surcharge is not
	// part of this comparison. A missing source account is not caught here.
	if src, ok := l.index[in.SourceID]; ok && src.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

// ProcessTransfer validates and executes one transfer inside a single
// critical section, so the balance read and the two balance writes are
// atomic with respect to other callers. Validation failures come back as
// *ValidationError with no state touched. A source or destination id that
// passes validation but does not resolve to an account is a caller bug and
// panics.
func (l *Ledger) ProcessTransfer(in TransferInput) (domain.Transaction, error) {
	l.mu.Lock()

	if err := l.validate(in); err != nil {
		l.mu.Unlock()
		return domain.Transaction{}, err
	}

	amount, _ := decimal.NewFromString(in.Amount) // validated above
	src := l.mustAccount(in.SourceID)

	now := l.now()
	txnID := generateTransactionID(now)

	deduction := amount
	if amount.Equal(surchargeTrigger) {
		deduction = amount.Add(surchargeFee)
	}
	src.Balance = src.Balance.Sub(deduction)

	var dest domain.DestinationAccount
	if in.DestType == domain.TransferOwn {
		destAcc := l.mustAccount(in.DestID)
		destAcc.Balance = destAcc.Balance.Add(amount)
		dest = domain.DestinationAccount{Name: destAcc.Name, Number: destAcc.Number, Type: destAcc.Type}
	} else {
		dest = domain.DestinationAccount{Number: in.ExternalAccount, Type: domain.ExternalAccountType}
	}

	txn := domain.Transaction{
		ID:                 txnID,
		SourceAccount:      *src, // frozen copy, taken after the deduction
		DestinationAccount: dest,
		Amount:             amount,
		Timestamp:          now,
		Type:               in.DestType,
		Status:             domain.StatusSuccessful,
	}
	l.transactions = append([]domain.Transaction{txn}, l.transactions...)

	email := l.inbox.Record(txn)

	l.mu.Unlock()

	if l.observer != nil {
		l.observer(txn, email)
	}
	return txn, nil
}

func (l *Ledger) mustAccount(id string) *domain.Account {
	acc, ok := l.index[id]
	if !ok {
		panic(fmt.Sprintf("ledger: account %q does not exist", id))
	}
	return acc
}

// generateTransactionID builds ids like TXN20260830345678: the calendar date
// plus the last six digits of the epoch-millisecond clock. Two calls within
// the same millisecond window can collide; uniqueness is best-effort, which
// is fine for a simulator.
func generateTransactionID(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	return "TXN" + now.Format("20060102") + millis[len(millis)-6:]
}

// Accounts returns the seeded accounts in display order with their current
// balances. The slice and its elements are copies.
func (l *Ledger) Accounts() []domain.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, *a)
	}
	return out
}

// Account returns a copy of one account by id.
func (l *Ledger) Account(id string) (domain.Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.index[id]
	if !ok {
		return domain.Account{}, false
	}
	return *a, true
}

// Transactions returns the transfer history, most recent first.
func (l *Ledger) Transactions() []domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Notifications returns the email inbox, most recent first.
func (l *Ledger) Notifications() []domain.EmailNotification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inbox.All()
}

// UserEmail is the fixed recipient of transfer confirmations.
func (l *Ledger) UserEmail() string { return l.userEmail }

// SessionID identifies this engine instance. A different id after a restart
// tells the UI that all balances and history have been reset.
func (l *Ledger) SessionID() uuid.UUID { return l.sessionID }

// ValidExternalAccounts returns a copy of the external-destination whitelist.
func (l *Ledger) ValidExternalAccounts() []string {
	out := make([]string, len(validExternalAccounts))
	copy(out, validExternalAccounts)
	return out
}
