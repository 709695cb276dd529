package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/tamaire/internal/core/domain"
	"github.com/vncsmyrnk/tamaire/internal/core/ports"
	"github.com/vncsmyrnk/tamaire/internal/metrics"
)

// commentService keeps comments in insertion order, oldest first. It does
// not check whether the author may comment on the team; callers consult
// SessionService.CanComment first. It is not safe for concurrent use.
type commentService struct {
	gateway  ports.PersistenceGateway
	logger   *slog.Logger
	comments []domain.Comment
}

func NewCommentService(gateway ports.PersistenceGateway, comments []domain.Comment, logger *slog.Logger) ports.CommentService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &commentService{
		gateway:  gateway,
		logger:   logger,
		comments: append([]domain.Comment(nil), comments...),
	}
}

func (s *commentService) AddComment(ctx context.Context, team domain.TeamColor, userName, text string) (domain.Comment, error) {
	if !team.Valid() {
		return domain.Comment{}, fmt.Errorf("%w: unknown team color %q", domain.ErrInvalidInput, team)
	}
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return domain.Comment{}, fmt.Errorf("%w: user name is required", domain.ErrInvalidInput)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Comment{}, fmt.Errorf("%w: comment text is required", domain.ErrInvalidInput)
	}

	comment := domain.Comment{
		ID:        uuid.NewString(),
		TeamColor: team,
		UserName:  userName,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}

	s.mutate(ctx, func() {
		s.comments = append(s.comments, comment)
	})

	metrics.IncCommentPosted(team.String())
	s.logger.Info("comment added", "comment_id", comment.ID, "team", team, "user_name", userName)

	return comment, nil
}

func (s *commentService) EditComment(ctx context.Context, id, newText string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: comment %s", domain.ErrNotFound, id)
	}
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return fmt.Errorf("%w: comment text is required", domain.ErrInvalidInput)
	}

	s.mutate(ctx, func() {
		s.comments[idx].Text = newText
	})

	s.logger.Info("comment edited", "comment_id", id)

	return nil
}

func (s *commentService) DeleteComment(ctx context.Context, id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}

	s.mutate(ctx, func() {
		s.comments = append(s.comments[:idx:idx], s.comments[idx+1:]...)
	})

	s.logger.Info("comment deleted", "comment_id", id)

	return true
}

func (s *commentService) FindComment(id string) (domain.Comment, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Comment{}, false
	}
	return s.comments[idx], true
}

func (s *commentService) ListCommentsForTeam(team domain.TeamColor) []domain.Comment {
	out := []domain.Comment{}
	for _, c := range s.comments {
		if c.TeamColor == team {
			out = append(out, c)
		}
	}
	return out
}

func (s *commentService) ListComments() []domain.Comment {
	return append([]domain.Comment{}, s.comments...)
}

func (s *commentService) indexOf(id string) int {
	for i, c := range s.comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *commentService) mutate(ctx context.Context, fn func()) {
	fn()
	// the change is already applied, so the write must outlive a canceled request
	if err := s.gateway.SaveComments(context.WithoutCancel(ctx), s.comments); err != nil {
		s.logger.Warn("failed to persist comments", "error", err, "count", len(s.comments))
	}
}
