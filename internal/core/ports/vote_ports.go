package ports

import (
	"context"

	"github.com/vncsmyrnk/tamaire/internal/core/domain"
)

type VoteService interface {
	CastVote(ctx context.Context, name string, choice domain.TeamColor) (domain.Vote, error)
	FindVoteByName(name string) (domain.Vote, bool)
	DeleteVote(ctx context.Context, id string) (domain.Vote, bool)
	ListVotes() []domain.Vote
	CountsByTeam() map[domain.TeamColor]int
}
