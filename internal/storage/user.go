package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/linemk/points-ledger/internal/domain/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserStorage interface {
	GetUserByName(ctx context.Context, name string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	// CreateUser создает пользователя в рамках транзакции (вместе с ним пишется стартовый перевод).
	CreateUser(ctx context.Context, tx *sql.Tx, user *models.User) (*models.User, error)
	// GetTopUsersByPoints возвращает пользователей по убыванию баланса.
	GetTopUsersByPoints(ctx context.Context, fetchSize int) ([]*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

// получение уже существующего пользователя
func (r *userRepository) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	user := &models.User{}
	row := r.db.QueryRowContext(ctx, "SELECT id, username, pass_hash, points, app_role FROM users WHERE username = $1", name)
	if err := row.Scan(&user.ID, &user.Name, &user.PassHash, &user.Points, &user.AppRole); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	row := r.db.QueryRowContext(ctx, "SELECT id, username, pass_hash, points, app_role FROM users WHERE id = $1", id)
	if err := row.Scan(&user.ID, &user.Name, &user.PassHash, &user.Points, &user.AppRole); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, tx *sql.Tx, user *models.User) (*models.User, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		"INSERT INTO users (username, pass_hash, points, app_role) VALUES ($1, $2, $3, $4) RETURNING id",
		user.Name, user.PassHash, user.Points, user.AppRole,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

func (r *userRepository) GetTopUsersByPoints(ctx context.Context, fetchSize int) ([]*models.User, error) {
	query := `
		SELECT id, username, pass_hash, points, app_role
		FROM users
		ORDER BY points DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, fetchSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.PassHash, &user.Points, &user.AppRole); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
