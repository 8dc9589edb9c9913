package models

import "time"

// Типы переводов баллов. Значения фиксированы, по ним же строятся
// ключи локализации ("pointType<type>Label" и т.д.).
const (
	TransferTypeInit             = 0 // начальное начисление при регистрации
	TransferTypeAddArticle       = 1 // публикация статьи
	TransferTypeUpdateArticle    = 2 // обновление статьи
	TransferTypeAddComment       = 3 // комментарий к статье
	TransferTypeAddArticleReward = 4 // открытие зоны вознаграждения статьи
	TransferTypeArticleReward    = 5 // вознаграждение за статью
	TransferTypeInviteRegister   = 6 // бонус пригласившему
	TransferTypeInvitedRegister  = 7 // бонус приглашённому
	TransferTypeActivityCheckin  = 8 // ежедневная отметка
)

// Размеры базовых начислений. Сумма двух констант — порог отсечения
// для списка лидеров: аккаунт, который только зарегистрировался, в топ не попадает.
const (
	TransferSumInit           = 500
	TransferSumInviteRegister = 20
)

// SystemUserID — служебный счёт-источник для начислений от платформы.
const SystemUserID int64 = 0

// Transfer представляет одну запись журнала переводов баллов.
// Записи неизменяемы: балансы сторон — снимки на момент перевода,
// они никогда не пересчитываются задним числом.
type Transfer struct {
	ID          int64     `json:"id"`
	FromID      int64     `json:"from_id"`
	ToID        int64     `json:"to_id"`
	Type        int       `json:"type"`
	Sum         int       `json:"sum"`
	FromBalance int       `json:"from_balance"`
	ToBalance   int       `json:"to_balance"`
	DataID      int64     `json:"data_id,omitempty"` // смысл зависит от типа: статья, комментарий, вознаграждение или пользователь
	CreatedAt   time.Time `json:"created_at"`
}
