package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/linemk/points-ledger/internal/service"
)

const defaultTopSize = 10

// TopHandler обрабатывает запрос GET /api/points/top?size=. Эндпоинт публичный.
func TopHandler(log *slog.Logger, topService service.TopService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.TopHandler"
		logger := log.With(slog.String("op", op))

		fetchSize := queryInt(r, "size", defaultTopSize)
		if fetchSize < 1 || fetchSize > maxPageSize {
			http.Error(w, "invalid size param", http.StatusBadRequest)
			return
		}

		users := topService.GetTopBalanceUsers(r.Context(), fetchSize)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(users); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}
