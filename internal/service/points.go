package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/linemk/points-ledger/internal/domain/models"
	"github.com/linemk/points-ledger/internal/lib/i18n"
	"github.com/linemk/points-ledger/internal/storage"
)

// Direction показывает, кем выступает запрашивающий пользователь в переводе.
type Direction int

const (
	DirectionOutgoing Direction = iota // пользователь — отправитель
	DirectionIncoming                  // пользователь — получатель
)

// DisplayRecord — запись журнала, подготовленная к показу: знак и баланс
// выбраны со стороны запрашивающего пользователя, описание собрано из
// шаблона локализации с подставленными ссылками.
type DisplayRecord struct {
	ID          int64  `json:"id"`
	Sign        string `json:"sign"`
	Sum         int    `json:"sum"`
	Balance     int    `json:"balance"`
	DisplayType string `json:"displayType"`
	Description string `json:"description"`
	CreateTime  string `json:"createTime"`
}

// HistoryResponse — конверт ответа: общее число записей плюс страница.
type HistoryResponse struct {
	TotalCount int             `json:"totalCount"`
	Items      []DisplayRecord `json:"items"`
}

// PointsService определяет интерфейс для получения истории баллов пользователя.
type PointsService interface {
	GetUserPoints(ctx context.Context, userID int64, pageNum, pageSize int) (*HistoryResponse, error)
}

// pointsService — конкретная реализация PointsService. Репозитории статей,
// комментариев, вознаграждений и пользователей нужны только на чтение:
// по ним восстанавливается причина каждого перевода.
type pointsService struct {
	log          *slog.Logger
	transferRepo storage.TransferStorage
	articleRepo  storage.ArticleStorage
	commentRepo  storage.CommentStorage
	rewardRepo   storage.RewardStorage
	userRepo     storage.UserStorage
	locale       i18n.Localizer
}

func NewPointsService(
	log *slog.Logger,
	transferRepo storage.TransferStorage,
	articleRepo storage.ArticleStorage,
	commentRepo storage.CommentStorage,
	rewardRepo storage.RewardStorage,
	userRepo storage.UserStorage,
	locale i18n.Localizer,
) PointsService {
	return &pointsService{
		log:          log,
		transferRepo: transferRepo,
		articleRepo:  articleRepo,
		commentRepo:  commentRepo,
		rewardRepo:   rewardRepo,
		userRepo:     userRepo,
		locale:       locale,
	}
}

// GetUserPoints возвращает страницу истории переводов пользователя, от новых к старым.
// Ошибка основного запроса к журналу фатальна и поднимается наверх; неудачные
// вторичные чтения (статья удалена, пользователь не найден и т.п.) страницу не
// роняют — вместо ссылки подставляется пустой текст.
func (s *pointsService) GetUserPoints(ctx context.Context, userID int64, pageNum, pageSize int) (*HistoryResponse, error) {
	const op = "service.PointsService.GetUserPoints"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("userID", userID),
		slog.Int("page", pageNum),
	)
	logger.Info("getting user points history")

	transfers, total, err := s.transferRepo.GetUserTransfers(ctx, userID, pageNum, pageSize)
	if err != nil {
		logger.Error("failed to get transfers", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get transfers: %w", op, err)
	}

	items := make([]DisplayRecord, 0, len(transfers))
	for _, t := range transfers {
		direction, err := classifyDirection(t, userID)
		if err != nil {
			// запись не относится к пользователю — фильтр запроса нарушен, дальше идти нельзя
			logger.Error("direction invariant violated", slog.Int64("transferID", t.ID))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		typeKey := suffixedTypeKey(t, direction)

		rec := DisplayRecord{
			ID:  t.ID,
			Sum: t.Sum,
		}
		if direction == DirectionOutgoing {
			rec.Sign = "-"
			rec.Balance = t.FromBalance
		} else {
			rec.Sign = "+"
			rec.Balance = t.ToBalance
		}

		rec.DisplayType = s.locale.Get("pointType" + typeKey + "Label")
		template := s.locale.Get("pointType" + typeKey + "DesLabel")
		rec.Description = s.resolveDescription(ctx, t, direction, template)
		rec.CreateTime = t.CreatedAt.Format(time.RFC3339)

		items = append(items, rec)
	}

	return &HistoryResponse{TotalCount: total, Items: items}, nil
}

// classifyDirection определяет направление перевода относительно пользователя.
// Запись, где пользователь не является ни одной из сторон, сюда попасть не
// может (фильтр выборки — from_id == userID OR to_id == userID), поэтому
// такой случай считается нарушением инварианта, а не направлением по умолчанию.
func classifyDirection(t *models.Transfer, userID int64) (Direction, error) {
	switch {
	case t.FromID == userID:
		return DirectionOutgoing, nil
	case t.ToID == userID:
		return DirectionIncoming, nil
	default:
		return 0, fmt.Errorf("transfer %d does not involve user %d", t.ID, userID)
	}
}

// suffixedTypeKey строит ключ локализации из номера типа. Суффикс "In"
// добавляется там, где одно и то же событие читается по-разному в зависимости
// от стороны: комментарий и вознаграждение, увиденные получателем.
func suffixedTypeKey(t *models.Transfer, direction Direction) string {
	key := strconv.Itoa(t.Type)
	if direction == DirectionIncoming &&
		(t.Type == models.TransferTypeAddComment || t.Type == models.TransferTypeArticleReward) {
		key += "In"
	}
	return key
}

// resolveDescription подставляет в шаблон ссылки на сущности, вызвавшие перевод.
// Ветвление идёт по числовому типу без суффикса: сущность-источник одна и та же,
// с какой стороны на неё ни смотри.
func (s *pointsService) resolveDescription(ctx context.Context, t *models.Transfer, direction Direction, template string) string {
	switch t.Type {
	case models.TransferTypeInit:
		return strings.ReplaceAll(template, "{point}", strconv.Itoa(t.Sum))

	case models.TransferTypeAddArticle, models.TransferTypeUpdateArticle, models.TransferTypeAddArticleReward:
		article := s.articleOrEmpty(ctx, t.DataID)
		return strings.ReplaceAll(template, "{article}", articleLink(article))

	case models.TransferTypeAddComment:
		comment := s.commentOrEmpty(ctx, t.DataID)
		article := s.articleOrEmpty(ctx, comment.ArticleID)
		template = strings.ReplaceAll(template, "{article}", articleLink(article))
		if direction == DirectionIncoming {
			commenter := s.userOrEmpty(ctx, t.FromID)
			template = strings.ReplaceAll(template, "{user}", userLink(commenter))
		}
		return template

	case models.TransferTypeArticleReward:
		reward := s.rewardOrEmpty(ctx, t.DataID)
		senderID := reward.SenderID
		if direction == DirectionIncoming {
			// со стороны получателя "отправителем" показывается сторона to_id,
			// а не хранившийся в записи вознаграждения sender_id
			senderID = t.ToID
		}
		sender := s.userOrEmpty(ctx, senderID)
		template = strings.ReplaceAll(template, "{user}", userLink(sender))
		article := s.articleOrEmpty(ctx, reward.DataID)
		return strings.ReplaceAll(template, "{article}", articleLink(article))

	case models.TransferTypeInviteRegister, models.TransferTypeInvitedRegister:
		user := s.userOrEmpty(ctx, t.DataID)
		return strings.ReplaceAll(template, "{user}", userLink(user))

	case models.TransferTypeActivityCheckin:
		return template

	default:
		s.log.Warn("unknown transfer type", slog.Int("type", t.Type), slog.Int64("transferID", t.ID))
		return template
	}
}

// articleOrEmpty возвращает статью или пустую сущность, если статья не найдена
// либо чтение не удалось: одна битая ссылка не должна ронять всю страницу.
func (s *pointsService) articleOrEmpty(ctx context.Context, id int64) *models.Article {
	article, err := s.articleRepo.GetArticleByID(ctx, id)
	if err != nil {
		s.log.Warn("failed to resolve article", slog.Int64("articleID", id), slog.Any("error", err))
		return &models.Article{}
	}
	return article
}

func (s *pointsService) commentOrEmpty(ctx context.Context, id int64) *models.Comment {
	comment, err := s.commentRepo.GetCommentByID(ctx, id)
	if err != nil {
		s.log.Warn("failed to resolve comment", slog.Int64("commentID", id), slog.Any("error", err))
		return &models.Comment{}
	}
	return comment
}

func (s *pointsService) rewardOrEmpty(ctx context.Context, id int64) *models.Reward {
	reward, err := s.rewardRepo.GetRewardByID(ctx, id)
	if err != nil {
		s.log.Warn("failed to resolve reward", slog.Int64("rewardID", id), slog.Any("error", err))
		return &models.Reward{}
	}
	return reward
}

func (s *pointsService) userOrEmpty(ctx context.Context, id int64) *models.User {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		s.log.Warn("failed to resolve user", slog.Int64("userID", id), slog.Any("error", err))
		return &models.User{}
	}
	return user
}

func articleLink(article *models.Article) string {
	return `<a href="` + article.Permalink + `">` + article.Title + `</a>`
}

func userLink(user *models.User) string {
	return `<a href="/member/` + user.Name + `">` + user.Name + `</a>`
}
