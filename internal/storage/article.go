package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/linemk/points-ledger/internal/domain/models"
)

// ArticleStorage описывает чтение статей, на которые ссылаются записи журнала.
type ArticleStorage interface {
	GetArticleByID(ctx context.Context, id int64) (*models.Article, error)
}

// articleRepository — конкретная реализация интерфейса ArticleStorage.
type articleRepository struct {
	db *sql.DB
}

// NewArticleRepository создаёт новый репозиторий статей.
func NewArticleRepository(db *sql.DB) ArticleStorage {
	return &articleRepository{db: db}
}

var ErrArticleNotFound = errors.New("article not found")

func (r *articleRepository) GetArticleByID(ctx context.Context, id int64) (*models.Article, error) {
	article := &models.Article{}
	query := "SELECT id, permalink, title, author_id FROM articles WHERE id = $1"
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&article.ID, &article.Permalink, &article.Title, &article.AuthorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}
