// Package repository persists import batches and the transactions they
// produce.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fintrack-ro/statement-ingest/internal/domain/transaction"
)

// BatchStatus is the lifecycle state of an import batch.
type BatchStatus string

const (
	BatchProcessing BatchStatus = "processing"
	BatchCompleted  BatchStatus = "completed"
	BatchFailed     BatchStatus = "failed"
)

// ColumnMapping is the tabular-import column configuration recorded on a
// batch. Empty fields mean the batch was not a tabular import.
type ColumnMapping struct {
	DateColumn        string
	AmountColumn      string
	DescriptionColumn string
	TypeColumn        string
}

// ImportBatch records one import operation end to end. It is created in
// processing status before parsing starts and finalized exactly once.
type ImportBatch struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Filename       string
	FileSize       int64
	Source         transaction.Source
	BankHint       string
	Columns        ColumnMapping
	Status         BatchStatus
	TotalCount     int
	SuccessCount   int
	DuplicateCount int
	FailedCount    int
	ErrorLog       []string
	ImportedAt     time.Time
	FinalizedAt    *time.Time
}

var ErrBatchNotFound = errors.New("import batch not found")

// DB is the slice of pgxpool.Pool the repository needs. pgxmock satisfies
// it, which is what the tests run against.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository stores import batches and transactions in Postgres.
type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// CreateBatch inserts a new batch in processing status and fills in its ID
// and ImportedAt.
func (r *Repository) CreateBatch(ctx context.Context, batch *ImportBatch) error {
	query := `
		INSERT INTO import_batches (
			owner_id, filename, file_size, source, bank_hint,
			date_column, amount_column, description_column, type_column, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, imported_at
	`
	err := r.db.QueryRow(ctx, query,
		batch.OwnerID, batch.Filename, batch.FileSize, batch.Source, batch.BankHint,
		batch.Columns.DateColumn, batch.Columns.AmountColumn,
		batch.Columns.DescriptionColumn, batch.Columns.TypeColumn,
		BatchProcessing,
	).Scan(&batch.ID, &batch.ImportedAt)
	if err != nil {
		return fmt.Errorf("create import batch: %w", err)
	}
	batch.Status = BatchProcessing
	return nil
}

// FinalizeBatch writes the terminal status and counters. It is the single
// mutation a batch ever receives after creation.
func (r *Repository) FinalizeBatch(ctx context.Context, batch *ImportBatch) error {
	query := `
		UPDATE import_batches
		SET status = $2, total_count = $3, success_count = $4,
			duplicate_count = $5, failed_count = $6, error_log = $7,
			finalized_at = now()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		batch.ID, batch.Status, batch.TotalCount, batch.SuccessCount,
		batch.DuplicateCount, batch.FailedCount, batch.ErrorLog,
	)
	if err != nil {
		return fmt.Errorf("finalize import batch %s: %w", batch.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBatchNotFound
	}
	return nil
}

// DeleteBatchesOlderThan removes batches imported before the cutoff and
// returns how many were deleted. Transactions keep their batch reference as
// a dangling ID; the ledger itself is never swept.
func (r *Repository) DeleteBatchesOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM import_batches WHERE imported_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete import batches: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SaveTransaction inserts one accepted transaction and fills in its ID.
func (r *Repository) SaveTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (
			owner_id, date, amount, type, description, category_id,
			source, batch_id, fingerprint
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		tx.OwnerID, tx.Date, tx.Amount, tx.Type, tx.Description, tx.CategoryID,
		tx.Provenance.Source, tx.Provenance.BatchID, tx.Fingerprint,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	return nil
}

// ExistsByFingerprint reports whether the owner already has a transaction
// with this fingerprint.
func (r *Repository) ExistsByFingerprint(ctx context.Context, fingerprint string, ownerID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM transactions WHERE fingerprint = $1 AND owner_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, fingerprint, ownerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("fingerprint lookup: %w", err)
	}
	return exists, nil
}
