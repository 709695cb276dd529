// Package app holds the widget's application state: the vote and comment
// stores loaded from persistence, the current session and the rules that
// tie them together. It is the single entry point for the presentation layer.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/vncsmyrnk/tamaire/internal/core/domain"
	"github.com/vncsmyrnk/tamaire/internal/core/ports"
	"github.com/vncsmyrnk/tamaire/internal/core/services"
)

// App serializes every operation, so each one runs to completion before the
// next starts.
type App struct {
	mu       sync.Mutex
	votes    ports.VoteService
	comments ports.CommentService
	session  ports.SessionService
	stats    ports.StatsService
	logger   *slog.Logger
}

// View is what the widget renders at any moment.
type View struct {
	State      domain.SessionState `json:"state"`
	ActiveName string              `json:"activeName,omitempty"`
	ActiveVote *domain.Vote        `json:"activeVote,omitempty"`
	Teams      []domain.TeamStats  `json:"teams"`
	TotalVotes int                 `json:"totalVotes"`
	Votes      []domain.Vote       `json:"votes"`
}

// New loads both collections once and builds the stores on top of them.
func New(ctx context.Context, gateway ports.PersistenceGateway, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	votes, comments := gateway.Load(ctx)
	voteService := services.NewVoteService(gateway, votes, logger)
	commentService := services.NewCommentService(gateway, comments, logger)

	return &App{
		votes:    voteService,
		comments: commentService,
		session:  services.NewSessionService(voteService),
		stats:    services.NewStatsService(voteService),
		logger:   logger,
	}
}

func (a *App) Enter(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.SetActiveName(name)
}

func (a *App) Leave() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.ClearSession()
}

func (a *App) Finish() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Finish()
}

func (a *App) ReturnToStart() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.ReturnToStart()
}

// CastVote records choice for the active participant, replacing any earlier
// vote under the same name.
func (a *App) CastVote(ctx context.Context, choice domain.TeamColor) (domain.Vote, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	name, ok := a.session.ActiveName()
	if !ok {
		return domain.Vote{}, fmt.Errorf("%w: enter a name before voting", domain.ErrInvalidState)
	}
	if a.session.State() == domain.SessionFinished {
		return domain.Vote{}, fmt.Errorf("%w: session is finished, return to start first", domain.ErrInvalidState)
	}
	return a.votes.CastVote(ctx, name, choice)
}

// DeleteVote removes the vote with id. When it belonged to the active
// participant the session goes back to anonymous.
func (a *App) DeleteVote(ctx context.Context, id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	removed, ok := a.votes.DeleteVote(ctx, id)
	if !ok {
		return false
	}
	if name, active := a.session.ActiveName(); active && domain.SameName(removed.Name, name) {
		a.logger.Info("active participant's vote deleted, clearing session", "vote_id", id)
		a.session.ClearSession()
	}
	return true
}

// PostComment adds a comment to team. userName is the pen name shown with
// the comment and falls back to the active name when blank.
func (a *App) PostComment(ctx context.Context, team domain.TeamColor, userName, text string) (domain.Comment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !team.Valid() {
		return domain.Comment{}, fmt.Errorf("%w: unknown team %q", domain.ErrInvalidInput, team)
	}
	if a.session.State() == domain.SessionFinished {
		return domain.Comment{}, fmt.Errorf("%w: session is finished, return to start first", domain.ErrInvalidState)
	}
	if !a.session.CanComment(team) {
		return domain.Comment{}, fmt.Errorf("%w: only %s voters can comment here", domain.ErrCommentNotAllowed, team.Label())
	}
	if strings.TrimSpace(userName) == "" {
		userName, _ = a.session.ActiveName()
	}
	return a.comments.AddComment(ctx, team, userName, text)
}

func (a *App) EditComment(ctx context.Context, id, text string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	comment, ok := a.comments.FindComment(id)
	if !ok {
		return fmt.Errorf("%w: comment %s", domain.ErrNotFound, id)
	}
	if !a.session.CanModifyComment(comment) {
		return fmt.Errorf("%w: only the author can edit this comment", domain.ErrCommentNotAllowed)
	}
	return a.comments.EditComment(ctx, id, text)
}

// DeleteComment is a no-op for unknown ids.
func (a *App) DeleteComment(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	comment, ok := a.comments.FindComment(id)
	if !ok {
		return nil
	}
	if !a.session.CanModifyComment(comment) {
		return fmt.Errorf("%w: only the author can delete this comment", domain.ErrCommentNotAllowed)
	}
	a.comments.DeleteComment(ctx, id)
	return nil
}

func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()

	name, _ := a.session.ActiveName()
	view := View{
		State:      a.session.State(),
		ActiveName: name,
		Teams:      a.stats.TeamStats(),
		TotalVotes: a.stats.TotalVotes(),
		Votes:      a.votes.ListVotes(),
	}
	if vote, ok := a.session.ActiveVote(); ok {
		view.ActiveVote = &vote
	}
	return view
}

func (a *App) Teams() []domain.TeamStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats.TeamStats()
}

func (a *App) Votes() []domain.Vote {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.votes.ListVotes()
}

func (a *App) Comments(team domain.TeamColor) []domain.Comment {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.comments.ListCommentsForTeam(team)
}

func (a *App) AllComments() []domain.Comment {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.comments.ListComments()
}
