package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/linemk/points-ledger/internal/domain/models"
	"github.com/linemk/points-ledger/internal/storage"
)

// TopUser — строка списка лидеров. PointsDisplay — уже отформатированный
// баланс: hex для роли hacker, компактная строка для остальных.
type TopUser struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Points        int    `json:"points"`
	PointsDisplay string `json:"pointsDisplay"`
}

// TopService определяет интерфейс для получения списка лидеров по балансу.
type TopService interface {
	GetTopBalanceUsers(ctx context.Context, fetchSize int) []TopUser
}

type topService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
}

func NewTopService(log *slog.Logger, userRepo storage.UserStorage) TopService {
	return &topService{
		log:      log,
		userRepo: userRepo,
	}
}

// GetTopBalanceUsers возвращает до fetchSize пользователей по убыванию баланса.
// Аккаунты, не заработавшие ничего сверх стартовых начислений, отсекаются,
// иначе топ забивается пустыми регистрациями. Ошибка хранилища не поднимается:
// список носит справочный характер, логируем и возвращаем пусто.
func (s *topService) GetTopBalanceUsers(ctx context.Context, fetchSize int) []TopUser {
	const op = "service.TopService.GetTopBalanceUsers"

	users, err := s.userRepo.GetTopUsersByPoints(ctx, fetchSize)
	if err != nil {
		s.log.Error("failed to get top balance users", slog.String("op", op), slog.Any("error", err))
		return []TopUser{}
	}

	ret := make([]TopUser, 0, len(users))
	for _, user := range users {
		if user.Points <= models.TransferSumInit+models.TransferSumInviteRegister {
			continue
		}

		display := compactPoints(user.Points)
		if user.AppRole == models.AppRoleHacker {
			display = strconv.FormatInt(int64(user.Points), 16)
		}

		ret = append(ret, TopUser{
			ID:            user.ID,
			Name:          user.Name,
			Points:        user.Points,
			PointsDisplay: display,
		})
	}
	return ret
}

// compactPoints сворачивает баланс в короткую строку: 1500 -> "1.5K", 2000000 -> "2M".
func compactPoints(points int) string {
	switch {
	case points < 1000:
		return strconv.Itoa(points)
	case points < 1000000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(points)/1000)) + "K"
	default:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(points)/1000000)) + "M"
	}
}

func trimTrailingZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
