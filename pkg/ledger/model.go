package ledger

import "time"

const (
	// TypeCredit is a type of transactions that increase the balance
	TypeCredit = "credit"

	// TypeDebit is a type of transactions that decrease the balance
	TypeDebit = "debit"
)

// Transaction represents a single signed ledger entry
// The credit/debit type is collapsed into the sign of the amount
type Transaction struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary represents an aggregate over transaction amounts
type Summary struct {
	Amount float64 `json:"amount"`
}

// CreateTransactionCommand holds an input of a create transaction operation
type CreateTransactionCommand struct {
	Title     string
	Amount    float64
	Type      string
	SessionID string
}
