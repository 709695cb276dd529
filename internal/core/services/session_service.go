package services

import (
	"fmt"
	"strings"

	"github.com/vncsmyrnk/tamaire/internal/core/domain"
	"github.com/vncsmyrnk/tamaire/internal/core/ports"
)

// sessionService tracks the participant currently using the widget. The
// active vote is always derived from the vote store, never cached, so a
// deleted or changed vote is reflected immediately.
type sessionService struct {
	votes      ports.VoteService
	activeName string
	finished   bool
}

func NewSessionService(votes ports.VoteService) ports.SessionService {
	return &sessionService{votes: votes}
}

func (s *sessionService) SetActiveName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	s.activeName = name
	s.finished = false
	return nil
}

func (s *sessionService) ActiveName() (string, bool) {
	return s.activeName, s.activeName != ""
}

func (s *sessionService) ActiveVote() (domain.Vote, bool) {
	if s.activeName == "" {
		return domain.Vote{}, false
	}
	return s.votes.FindVoteByName(s.activeName)
}

func (s *sessionService) ClearSession() {
	s.activeName = ""
	s.finished = false
}

func (s *sessionService) CanComment(team domain.TeamColor) bool {
	vote, ok := s.ActiveVote()
	return ok && vote.Choice == team
}

// CanModifyComment reports whether the active participant wrote the comment.
func (s *sessionService) CanModifyComment(comment domain.Comment) bool {
	if s.activeName == "" {
		return false
	}
	return domain.SameName(comment.UserName, s.activeName)
}

func (s *sessionService) Finish() error {
	if s.State() != domain.SessionVoted {
		return fmt.Errorf("%w: cannot finish before voting", domain.ErrInvalidState)
	}
	s.finished = true
	return nil
}

func (s *sessionService) ReturnToStart() {
	s.ClearSession()
}

func (s *sessionService) State() domain.SessionState {
	switch {
	case s.activeName == "":
		return domain.SessionAnonymous
	case s.finished:
		return domain.SessionFinished
	}
	if _, ok := s.ActiveVote(); ok {
		return domain.SessionVoted
	}
	return domain.SessionNamed
}
