package models

// Comment — комментарий; ArticleID указывает на статью, под которой он оставлен
type Comment struct {
	ID        int64
	ArticleID int64
	AuthorID  int64
}
