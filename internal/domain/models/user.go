package models

// Роли аккаунта в сообществе. Влияют только на отображение баланса,
// никакой бизнес-логики за ними нет.
const (
	AppRoleHacker  = 0
	AppRolePainter = 1
)

// User представляет пользователя платформы
type User struct {
	ID       int64
	Name     string
	PassHash []byte
	Points   int
	AppRole  int
}
