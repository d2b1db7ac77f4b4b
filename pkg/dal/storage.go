package dal

import (
	"context"
	"time"
)

// TransactionDTO is a DTO of a single ledger transaction
type TransactionDTO struct {
	ID        string
	Title     string
	Amount    float64
	SessionID string
	CreatedAt time.Time
}

// Storage is a persistance layer
type Storage interface {
	Setup(ctx context.Context) error
	SaveTransaction(ctx context.Context, trx *TransactionDTO) error
	ListTransactions(ctx context.Context, sessionID string) ([]TransactionDTO, error)

	// GetTransactionByID returns a transaction matching both id and sessionID
	// or nil if there is no such transaction
	GetTransactionByID(ctx context.Context, id string, sessionID string) (*TransactionDTO, error)

	// SumAmounts returns a sum of amounts of all transactions, 0 if there are none
	SumAmounts(ctx context.Context) (float64, error)
}
