// Package notifications keeps the simulated email side of the ledger: every
// processed transfer files exactly one confirmation addressed to the demo
// user. Nothing is delivered anywhere; the inbox is the record.
package notifications

import (
	"github.com/hasminC/BankingApp/internal/core/domain"
)

// SubjectTransferConfirmation is the subject line on every confirmation.
const SubjectTransferConfirmation = "Fund Transfer Confirmation"

// Inbox collects EmailNotification records, most recent first. It does no
// locking of its own; the owning ledger serializes all access.
type Inbox struct {
	to     string
	emails []domain.EmailNotification
}

func NewInbox(to string) *Inbox {
	return &Inbox{to: to}
}

// Record builds the confirmation for txn and files it at the front of the
// inbox. The notification id is the epoch-millisecond reading of the
// transaction timestamp, which keeps ids roughly monotonic.
func (i *Inbox) Record(txn domain.Transaction) domain.EmailNotification {
	email := domain.EmailNotification{
		ID:                 txn.Timestamp.UnixMilli(),
		To:                 i.to,
		Subject:            SubjectTransferConfirmation,
		Timestamp:          txn.Timestamp,
		TransactionID:      txn.ID,
		Amount:             txn.Amount,
		SourceAccount:      txn.SourceAccount,
		DestinationAccount: txn.DestinationAccount,
		Status:             txn.Status,
		TransferType:       txn.Type,
	}
	i.emails = append([]domain.EmailNotification{email}, i.emails...)
	return email
}

// All returns a copy of the inbox, most recent first.
func (i *Inbox) All() []domain.EmailNotification {
	out := make([]domain.EmailNotification, len(i.emails))
	copy(out, i.emails)
	return out
}

// Recipient is the fixed address every confirmation goes to.
func (i *Inbox) Recipient() string { return i.to }

// Count reports how many confirmations have been filed.
func (i *Inbox) Count() int { return len(i.emails) }
