package ports

import "github.com/vncsmyrnk/tamaire/internal/core/domain"

type SessionService interface {
	SetActiveName(name string) error
	ActiveName() (string, bool)
	ActiveVote() (domain.Vote, bool)
	ClearSession()
	CanComment(team domain.TeamColor) bool
	CanModifyComment(comment domain.Comment) bool
	Finish() error
	ReturnToStart()
	State() domain.SessionState
}
