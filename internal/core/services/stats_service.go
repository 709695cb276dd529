package services

import (
	"github.com/vncsmyrnk/tamaire/internal/core/domain"
	"github.com/vncsmyrnk/tamaire/internal/core/ports"
)

type statsService struct {
	votes ports.VoteService
}

func NewStatsService(votes ports.VoteService) ports.StatsService {
	return &statsService{votes: votes}
}

// TeamStats returns one entry per team in display order; counts are
// recomputed on every call.
func (s *statsService) TeamStats() []domain.TeamStats {
	counts := s.votes.CountsByTeam()
	stats := make([]domain.TeamStats, 0, len(domain.Teams))
	for _, team := range domain.Teams {
		stats = append(stats, domain.TeamStats{
			Color: team,
			Label: team.Label(),
			Count: counts[team],
		})
	}
	return stats
}

func (s *statsService) TotalVotes() int {
	total := 0
	for _, c := range s.votes.CountsByTeam() {
		total += c
	}
	return total
}
