package models

// Article — статья, на которую может ссылаться запись журнала
type Article struct {
	ID        int64
	Permalink string
	Title     string
	AuthorID  int64
}
