package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/points-ledger/internal/domain/models"
)

// TransferStorage описывает методы для работы с журналом переводов.
// Журнал append-only: записи только добавляются, обновления не предусмотрены.
type TransferStorage interface {
	// CreateTransfer добавляет запись о переводе в рамках транзакции и возвращает её id.
	CreateTransfer(ctx context.Context, tx *sql.Tx, transfer *models.Transfer) (int64, error)
	// GetUserTransfers возвращает страницу переводов, где пользователь — отправитель или получатель,
	// от новых к старым, вместе с общим числом таких записей.
	GetUserTransfers(ctx context.Context, userID int64, pageNum, pageSize int) ([]*models.Transfer, int, error)
	// GetLatestTransfers возвращает последние поступления пользователю указанного типа.
	GetLatestTransfers(ctx context.Context, userID int64, transferType, fetchSize int) ([]*models.Transfer, error)
}

type transferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) TransferStorage {
	return &transferRepository{db: db}
}

func (r *transferRepository) CreateTransfer(ctx context.Context, tx *sql.Tx, transfer *models.Transfer) (int64, error) {
	query := `INSERT INTO transfers (from_id, to_id, type, sum, from_balance, to_balance, data_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id`
	var id int64
	err := tx.QueryRowContext(ctx, query,
		transfer.FromID, transfer.ToID, transfer.Type, transfer.Sum,
		transfer.FromBalance, transfer.ToBalance, transfer.DataID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create transfer: %w", err)
	}
	return id, nil
}

// GetUserTransfers сначала считает общее количество записей, затем выбирает страницу.
// Сортировка строго по id DESC: id монотонный, поэтому порядок стабилен между страницами.
func (r *transferRepository) GetUserTransfers(ctx context.Context, userID int64, pageNum, pageSize int) ([]*models.Transfer, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM transfers WHERE from_id = $1 OR to_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transfers: %w", err)
	}

	query := `
		SELECT id, from_id, to_id, type, sum, from_balance, to_balance, data_id, created_at
		FROM transfers
		WHERE from_id = $1 OR to_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`
	offset := (pageNum - 1) * pageSize
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	transfers, err := scanTransfers(rows)
	if err != nil {
		return nil, 0, err
	}
	return transfers, total, nil
}

func (r *transferRepository) GetLatestTransfers(ctx context.Context, userID int64, transferType, fetchSize int) ([]*models.Transfer, error) {
	query := `
		SELECT id, from_id, to_id, type, sum, from_balance, to_balance, data_id, created_at
		FROM transfers
		WHERE to_id = $1 AND type = $2
		ORDER BY id DESC
		LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, userID, transferType, fetchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest transfers: %w", err)
	}
	defer rows.Close()

	return scanTransfers(rows)
}

func scanTransfers(rows *sql.Rows) ([]*models.Transfer, error) {
	var transfers []*models.Transfer
	for rows.Next() {
		t := &models.Transfer{}
		if err := rows.Scan(&t.ID, &t.FromID, &t.ToID, &t.Type, &t.Sum, &t.FromBalance, &t.ToBalance, &t.DataID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}
