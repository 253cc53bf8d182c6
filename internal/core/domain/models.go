package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer types as the UI sends them.
const (
	TransferOwn      = "own"
	TransferExternal = "external"
)

// StatusSuccessful is the only transaction status: a transfer either passes
// validation and succeeds, or it never becomes a transaction at all.
const StatusSuccessful = "Successful"

// ExternalAccountType labels destinations outside the bank.
const ExternalAccountType = "External Account"

// Account is one of the seeded demo accounts. Balance is the only mutable
// field and only the ledger engine ever changes it.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    string          `json:"type"` // "Savings" or "Checking"
	Number  string          `json:"number"`
	Balance decimal.Decimal `json:"balance"`
}

// DestinationAccount is a value snapshot of where the money went, embedded in
// history records. Name is empty and Type is "External Account" when the
// funds left the bank.
type DestinationAccount struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Type   string `json:"type"`
}

// Transaction records one processed transfer. SourceAccount is a frozen copy
// taken after the deduction; later balance changes never rewrite history.
type Transaction struct {
	ID                 string             `json:"id"`
	SourceAccount      Account            `json:"source_account"`
	DestinationAccount DestinationAccount `json:"destination_account"`
	Amount             decimal.Decimal    `json:"amount"`
	Timestamp          time.Time          `json:"timestamp"`
	Type               string             `json:"type"` // "own" or "external"
	Status             string             `json:"status"`
}

// EmailNotification is the recorded confirmation for one transaction. One is
// filed per processed transfer; nothing is actually sent.
type EmailNotification struct {
	ID                 int64              `json:"id"`
	To                 string             `json:"to"`
	Subject            string             `json:"subject"`
	Timestamp          time.Time          `json:"timestamp"`
	TransactionID      string             `json:"transaction_id"`
	Amount             decimal.Decimal    `json:"amount"`
	SourceAccount      Account            `json:"source_account"`
	DestinationAccount DestinationAccount `json:"destination_account"`
	Status             string             `json:"status"`
	TransferType       string             `json:"transfer_type"`
}
