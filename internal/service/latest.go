package service

import (
	"context"
	"log/slog"

	"github.com/linemk/points-ledger/internal/domain/models"
	"github.com/linemk/points-ledger/internal/storage"
)

// LatestService определяет интерфейс для получения последних поступлений пользователю.
type LatestService interface {
	GetLatestTransfers(ctx context.Context, userID int64, transferType, fetchSize int) []*models.Transfer
}

type latestService struct {
	log          *slog.Logger
	transferRepo storage.TransferStorage
}

func NewLatestService(log *slog.Logger, transferRepo storage.TransferStorage) LatestService {
	return &latestService{
		log:          log,
		transferRepo: transferRepo,
	}
}

// GetLatestTransfers возвращает последние fetchSize поступлений указанного типа.
// Запрос чисто вспомогательный, поэтому ошибка хранилища не отдается наверх:
// логируем и возвращаем пустой список.
func (s *latestService) GetLatestTransfers(ctx context.Context, userID int64, transferType, fetchSize int) []*models.Transfer {
	const op = "service.LatestService.GetLatestTransfers"

	transfers, err := s.transferRepo.GetLatestTransfers(ctx, userID, transferType, fetchSize)
	if err != nil {
		s.log.Error("failed to get latest transfers",
			slog.String("op", op),
			slog.Int64("userID", userID),
			slog.Int("type", transferType),
			slog.Any("error", err),
		)
		return []*models.Transfer{}
	}
	if transfers == nil {
		transfers = []*models.Transfer{}
	}
	return transfers
}
