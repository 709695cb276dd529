package ports

import (
	"context"

	"github.com/vncsmyrnk/tamaire/internal/core/domain"
)

type CommentService interface {
	AddComment(ctx context.Context, team domain.TeamColor, userName, text string) (domain.Comment, error)
	EditComment(ctx context.Context, id, newText string) error
	DeleteComment(ctx context.Context, id string) bool
	FindComment(id string) (domain.Comment, bool)
	ListCommentsForTeam(team domain.TeamColor) []domain.Comment
	ListComments() []domain.Comment
}
