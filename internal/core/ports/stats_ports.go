package ports

import "github.com/vncsmyrnk/tamaire/internal/core/domain"

type StatsService interface {
	TeamStats() []domain.TeamStats
	TotalVotes() int
}
