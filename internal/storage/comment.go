package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/linemk/points-ledger/internal/domain/models"
)

// CommentStorage описывает чтение комментариев по идентификатору.
type CommentStorage interface {
	GetCommentByID(ctx context.Context, id int64) (*models.Comment, error)
}

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentStorage {
	return &commentRepository{db: db}
}

var ErrCommentNotFound = errors.New("comment not found")

func (r *commentRepository) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	comment := &models.Comment{}
	query := "SELECT id, article_id, author_id FROM comments WHERE id = $1"
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&comment.ID, &comment.ArticleID, &comment.AuthorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
