package ledger

import (
	"context"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/dal"
	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

// Service implements ledger operations
type Service interface {
	CreateTransaction(ctx context.Context, cmd *CreateTransactionCommand) error
	ListTransactions(ctx context.Context, sessionID string) ([]Transaction, error)

	// GetTransactionByID returns a transaction matching both id and sessionID
	// or nil if there is no such transaction. Not found is not an error
	GetTransactionByID(ctx context.Context, id string, sessionID string) (*Transaction, error)

	// GetSummary returns a sum of amounts across all sessions
	GetSummary(ctx context.Context) (*Summary, error)
}

type service struct {
	storage dal.Storage
	newUUID func() uuid.UUID
}

func (s *service) CreateTransaction(ctx context.Context, cmd *CreateTransactionCommand) error {
	amount := cmd.Amount
	if cmd.Type == TypeDebit {
		amount = -amount
	}
	trx := &dal.TransactionDTO{
		ID:        s.newUUID().String(),
		Title:     cmd.Title,
		Amount:    amount,
		SessionID: cmd.SessionID,
	}
	logger.WithData(diag.MsgData{
		"id":   trx.ID,
		"type": cmd.Type,
	}).Info(ctx, "Creating new transaction")
	if err := s.storage.SaveTransaction(ctx, trx); err != nil {
		return errors.Wrap(err, "Failed to create transaction")
	}
	return nil
}

func (s *service) ListTransactions(ctx context.Context, sessionID string) ([]Transaction, error) {
	dtos, err := s.storage.ListTransactions(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	transactions := make([]Transaction, 0, len(dtos))
	for _, dto := range dtos {
		transactions = append(transactions, Transaction(dto))
	}
	return transactions, nil
}

func (s *service) GetTransactionByID(ctx context.Context, id string, sessionID string) (*Transaction, error) {
	dto, err := s.storage.GetTransactionByID(ctx, id, sessionID)
	if err != nil {
		return nil, err
	}
	if dto == nil {
		return nil, nil
	}
	trx := Transaction(*dto)
	return &trx, nil
}

func (s *service) GetSummary(ctx context.Context) (*Summary, error) {
	amount, err := s.storage.SumAmounts(ctx)
	if err != nil {
		return nil, err
	}
	return &Summary{Amount: amount}, nil
}

// ServiceOpt is an option of a ledger service
type ServiceOpt func(s *service)

// WithStorage will set a storage instance for a service
func WithStorage(storage dal.Storage) ServiceOpt {
	return func(s *service) {
		s.storage = storage
	}
}

// WithNewUUID will set an explicit uuid factory, used for tests
func WithNewUUID(newUUID func() uuid.UUID) ServiceOpt {
	return func(s *service) {
		s.newUUID = newUUID
	}
}

// NewService returns an instance of a ledger service
func NewService(opts ...ServiceOpt) Service {
	svc := &service{newUUID: uuid.NewV4}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}
