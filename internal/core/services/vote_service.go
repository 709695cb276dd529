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

// voteService keeps the vote collection in memory, most recent first, and
// writes the whole collection through the gateway after every change.
// It is not safe for concurrent use.
type voteService struct {
	gateway ports.PersistenceGateway
	logger  *slog.Logger
	votes   []domain.Vote
}

func NewVoteService(gateway ports.PersistenceGateway, votes []domain.Vote, logger *slog.Logger) ports.VoteService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &voteService{
		gateway: gateway,
		logger:  logger,
		votes:   append([]domain.Vote(nil), votes...),
	}
}

func (s *voteService) CastVote(ctx context.Context, name string, choice domain.TeamColor) (domain.Vote, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Vote{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !choice.Valid() {
		return domain.Vote{}, fmt.Errorf("%w: unknown team color %q", domain.ErrInvalidInput, choice)
	}

	vote := domain.Vote{
		ID:        uuid.NewString(),
		Name:      name,
		Choice:    choice,
		Timestamp: time.Now().UnixMilli(),
	}

	s.mutate(ctx, func() {
		kept := make([]domain.Vote, 0, len(s.votes)+1)
		kept = append(kept, vote)
		for _, v := range s.votes {
			if !domain.SameName(v.Name, name) {
				kept = append(kept, v)
			}
		}
		s.votes = kept
	})

	metrics.IncVoteCast(choice.String())
	s.logger.Info("vote cast", "vote_id", vote.ID, "name", vote.Name, "choice", vote.Choice)

	return vote, nil
}

func (s *voteService) FindVoteByName(name string) (domain.Vote, bool) {
	key := domain.NormalizeName(name)
	if key == "" {
		return domain.Vote{}, false
	}
	for _, v := range s.votes {
		if domain.NormalizeName(v.Name) == key {
			return v, true
		}
	}
	return domain.Vote{}, false
}

func (s *voteService) DeleteVote(ctx context.Context, id string) (domain.Vote, bool) {
	idx := -1
	for i, v := range s.votes {
		if v.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Vote{}, false
	}

	removed := s.votes[idx]
	s.mutate(ctx, func() {
		s.votes = append(s.votes[:idx:idx], s.votes[idx+1:]...)
	})

	s.logger.Info("vote deleted", "vote_id", removed.ID, "name", removed.Name)

	return removed, true
}

func (s *voteService) ListVotes() []domain.Vote {
	return append([]domain.Vote{}, s.votes...)
}

func (s *voteService) CountsByTeam() map[domain.TeamColor]int {
	counts := make(map[domain.TeamColor]int, len(domain.Teams))
	for _, team := range domain.Teams {
		counts[team] = 0
	}
	for _, v := range s.votes {
		if _, ok := counts[v.Choice]; ok {
			counts[v.Choice]++
		}
	}
	return counts
}

// mutate applies fn and then persists the full collection. A failed write
// is logged and dropped; the in-memory collection stays authoritative.
func (s *voteService) mutate(ctx context.Context, fn func()) {
	fn()
	// the change is already applied, so the write must outlive a canceled request
	if err := s.gateway.SaveVotes(context.WithoutCancel(ctx), s.votes); err != nil {
		s.logger.Warn("failed to persist votes", "error", err, "count", len(s.votes))
	}
}
