package dal

import (
	"context"
	"database/sql"
	"embed"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"

	// This has to be here to let go mods work work
	_ "github.com/mattn/go-sqlite3"

	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

//go:embed migrations/*.sql
var migrationsFS embed.FS

type sqlStorage struct {
	db *sql.DB
}

func (s *sqlStorage) Setup(ctx context.Context) error {
	logger.Info(ctx, "Setup SQL storage")
	driver, err := sqlite3.WithInstance(s.db, &sqlite3.Config{})
	if err != nil {
		return errors.Wrap(err, "Failed to init migrate driver")
	}
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "Failed to init migrations source")
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", driver)
	if err != nil {
		return errors.Wrap(err, "Failed to init migrate instance")
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "Failed to setup storage")
	}
	return nil
}

func (s *sqlStorage) SaveTransaction(ctx context.Context, trx *TransactionDTO) error {
	if _, err := s.db.ExecContext(ctx, `
	INSERT INTO transactions(
		id,
		title,
		amount,
		session_id,
		created_at
	)
	VALUES($1, $2, $3, $4, $5)
	`, trx.ID, trx.Title, trx.Amount, trx.SessionID, time.Now()); err != nil {
		return errors.Wrapf(err, "Failed to save transaction %v", trx.ID)
	}
	return nil
}

func (s *sqlStorage) ListTransactions(ctx context.Context, sessionID string) ([]TransactionDTO, error) {
	res, err := s.db.QueryContext(ctx, `
	SELECT
		id, title, amount, session_id, created_at
	FROM transactions WHERE session_id = $1
	ORDER BY created_at`, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list transactions")
	}
	defer res.Close()

	transactions := []TransactionDTO{}
	for res.Next() {
		var trx TransactionDTO
		if err := res.Scan(
			&trx.ID,
			&trx.Title,
			&trx.Amount,
			&trx.SessionID,
			&trx.CreatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, trx)
	}
	return transactions, res.Err()
}

func (s *sqlStorage) GetTransactionByID(ctx context.Context, id string, sessionID string) (*TransactionDTO, error) {
	res, err := s.db.QueryContext(ctx, `
	SELECT
		id, title, amount, session_id, created_at
	FROM transactions WHERE id = $1 AND session_id = $2`, id, sessionID)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to get transaction %v", id)
	}
	defer res.Close()

	if !res.Next() {
		if res.Err() != nil {
			return nil, res.Err()
		}
		return nil, nil
	}

	result := &TransactionDTO{}
	if err := res.Scan(
		&result.ID,
		&result.Title,
		&result.Amount,
		&result.SessionID,
		&result.CreatedAt,
	); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *sqlStorage) SumAmounts(ctx context.Context) (float64, error) {
	var sum float64
	if err := s.db.QueryRowContext(ctx, `
	SELECT COALESCE(SUM(amount), 0) FROM transactions`).Scan(&sum); err != nil {
		return 0, errors.Wrap(err, "Failed to sum transaction amounts")
	}
	return sum, nil
}

// SQLStorageOpt is an option of SQL storage
type SQLStorageOpt func(s *sqlStorage)

// WithSQLDb will set an explicit db instance for a storage
func WithSQLDb(db *sql.DB) SQLStorageOpt {
	return func(s *sqlStorage) {
		s.db = db
	}
}

// NewSQLStorage returns an instance of a local storage
func NewSQLStorage(opts ...SQLStorageOpt) (Storage, error) {
	storage := &sqlStorage{}
	for _, opt := range opts {
		opt(storage)
	}
	return storage, nil
}
