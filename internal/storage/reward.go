package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/linemk/points-ledger/internal/domain/models"
)

// RewardStorage описывает чтение записей о вознаграждениях.
type RewardStorage interface {
	GetRewardByID(ctx context.Context, id int64) (*models.Reward, error)
}

type rewardRepository struct {
	db *sql.DB
}

func NewRewardRepository(db *sql.DB) RewardStorage {
	return &rewardRepository{db: db}
}

var ErrRewardNotFound = errors.New("reward not found")

func (r *rewardRepository) GetRewardByID(ctx context.Context, id int64) (*models.Reward, error) {
	reward := &models.Reward{}
	query := "SELECT id, sender_id, data_id FROM rewards WHERE id = $1"
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&reward.ID, &reward.SenderID, &reward.DataID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	return reward, nil
}
