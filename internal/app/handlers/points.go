package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/linemk/points-ledger/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/points-ledger/internal/service"
)

const (
	defaultPageSize   = 15
	maxPageSize       = 50
	defaultLatestSize = 10
)

// PointsHandler обрабатывает запрос GET /api/points?page=&size=.
// Идентификатор пользователя берется из контекста (установлен JWT-middleware),
// ответ — конверт {totalCount, items} с обогащенной историей переводов.
func PointsHandler(log *slog.Logger, pointsService service.PointsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.PointsHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		pageNum := queryInt(r, "page", 1)
		pageSize := queryInt(r, "size", defaultPageSize)
		if pageNum < 1 || pageSize < 1 || pageSize > maxPageSize {
			logger.Error("invalid pagination params",
				slog.Int("page", pageNum), slog.Int("size", pageSize))
			http.Error(w, "invalid pagination params", http.StatusBadRequest)
			return
		}

		history, err := pointsService.GetUserPoints(r.Context(), userID, pageNum, pageSize)
		if err != nil {
			logger.Error("failed to get points history", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(history); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// LatestHandler обрабатывает запрос GET /api/points/latest?type=&size=.
// Запрос справочный: при ошибке хранилища сервис возвращает пустой список,
// поэтому здесь всегда 200.
func LatestHandler(log *slog.Logger, latestService service.LatestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LatestHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		transferType := queryInt(r, "type", 0)
		fetchSize := queryInt(r, "size", defaultLatestSize)
		if fetchSize < 1 || fetchSize > maxPageSize {
			http.Error(w, "invalid size param", http.StatusBadRequest)
			return
		}

		transfers := latestService.GetLatestTransfers(r.Context(), userID, transferType, fetchSize)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(transfers); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// queryInt читает целочисленный query-параметр, при отсутствии или мусоре — значение по умолчанию
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
