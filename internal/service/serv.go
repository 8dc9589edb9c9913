package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linemk/points-ledger/internal/domain/models"
	security "github.com/linemk/points-ledger/internal/jwt-new"
	"github.com/linemk/points-ledger/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	log          *slog.Logger
	db           *sql.DB
	userRepo     storage.UserStorage
	transferRepo storage.TransferStorage
	tokenTTL     time.Duration
}

func NewAuthService(log *slog.Logger, db *sql.DB, userRepo storage.UserStorage, transferRepo storage.TransferStorage, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:          log,
		db:           db,
		userRepo:     userRepo,
		transferRepo: transferRepo,
		tokenTTL:     tokenTTL,
	}
}

type AuthServiceInterface interface {
	Login(ctx context.Context, name, password string) (string, error)
}

// Login осуществляет аутентификацию пользователя.
// Если пользователь не найден, он создаётся: пароль хэшируется через bcrypt,
// начисляются стартовые баллы и в журнал пишется запись INIT от системного
// счёта — история нового аккаунта сразу непустая. Создание пользователя и
// запись журнала идут в одной транзакции.
// После успешной проверки генерируется JWT-токен (секрет берется из переменной окружения).
func (a *AuthService) Login(ctx context.Context, name, password string) (string, error) {
	const op = "auth.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("name", name),
	)
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Info("user not found, creating new user")
			user, err = a.registerUser(ctx, name, password)
			if err != nil {
				logger.Error("failed to register user", slog.Any("error", err))
				return "", fmt.Errorf("%s: %w", op, err)
			}
		} else {
			logger.Error("failed to get user", slog.Any("error", err))
			return "", fmt.Errorf("%s: failed to get user: %w", op, err)
		}
	} else {
		// Если пользователь найден, сравниваем введённый пароль с хэшированным паролем
		if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
			logger.Warn("invalid password")
			return "", fmt.Errorf("%s: invalid credentials: %w", op, err)
		}
	}

	token, err := security.NewToken(ctx, user, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.Int64("userID", user.ID))
	return token, nil
}

// registerUser создает пользователя со стартовым балансом и фиксирует
// начисление в журнале. Балансы в записи — снимки сразу после перевода.
func (a *AuthService) registerUser(ctx context.Context, name, password string) (*models.User, error) {
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	newUser := &models.User{
		Name:     name,
		PassHash: passHash,
		Points:   models.TransferSumInit,
		AppRole:  models.AppRolePainter,
	}
	user, err := a.userRepo.CreateUser(ctx, tx, newUser)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			a.log.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	initTransfer := &models.Transfer{
		FromID:      models.SystemUserID,
		ToID:        user.ID,
		Type:        models.TransferTypeInit,
		Sum:         models.TransferSumInit,
		FromBalance: 0,
		ToBalance:   models.TransferSumInit,
	}
	if _, err := a.transferRepo.CreateTransfer(ctx, tx, initTransfer); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			a.log.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		return nil, fmt.Errorf("failed to record initial transfer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return user, nil
}
