package ports

import (
	"context"

	"github.com/vncsmyrnk/tamaire/internal/core/domain"
)

type PersistenceGateway interface {
	// Load never fails: missing or unreadable collections come back empty.
	Load(ctx context.Context) ([]domain.Vote, []domain.Comment)
	SaveVotes(ctx context.Context, votes []domain.Vote) error
	SaveComments(ctx context.Context, comments []domain.Comment) error
}
