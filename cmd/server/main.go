package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/points-ledger/internal/app"
	"github.com/linemk/points-ledger/internal/app/handlers"
	"github.com/linemk/points-ledger/internal/config"
	"github.com/linemk/points-ledger/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/points-ledger/internal/lib/i18n"
	"github.com/linemk/points-ledger/internal/lib/logger"
	"github.com/linemk/points-ledger/internal/lib/logger/handlers/urllog"
	"github.com/linemk/points-ledger/internal/service"
	"github.com/linemk/points-ledger/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения, конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	// таблица локализованных строк, по ней собираются описания переводов
	locale, err := i18n.Load(cfg.Locale.Path)
	if err != nil {
		log.Error("failed to load locale bundle", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to load locale bundle"))
	}

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// реализация слоев по работе с БД по каждому направлению
	userRepo := storage.NewUserRepository(application.DB)
	transferRepo := storage.NewTransferRepository(application.DB)
	articleRepo := storage.NewArticleRepository(application.DB)
	commentRepo := storage.NewCommentRepository(application.DB)
	rewardRepo := storage.NewRewardRepository(application.DB)

	authService := service.NewAuthService(application.Logger, application.DB, userRepo, transferRepo, time.Duration(application.Config.JWT.TokenTTL)*time.Minute)
	pointsService := service.NewPointsService(application.Logger, transferRepo, articleRepo, commentRepo, rewardRepo, userRepo, locale)
	latestService := service.NewLatestService(application.Logger, transferRepo)
	topService := service.NewTopService(application.Logger, userRepo)

	// эндпоинт для аутентификации
	router.Post("/api/auth", handlers.AuthHandler(application.Logger, authService))
	// публичный список лидеров по балансу
	router.Get("/api/points/top", handlers.TopHandler(application.Logger, topService))

	router.Group(func(r chi.Router) {
		jwtMW := jwtmiddleware.NewJWTMiddleware()
		r.Use(jwtMW)
		// постраничная история переводов текущего пользователя
		r.Get("/api/points", handlers.PointsHandler(application.Logger, pointsService))
		// последние поступления указанного типа
		r.Get("/api/points/latest", handlers.LatestHandler(application.Logger, latestService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
