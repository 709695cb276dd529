package keyvalue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/vncsmyrnk/tamaire/internal/core/domain"
	"github.com/vncsmyrnk/tamaire/internal/core/ports"
	"github.com/vncsmyrnk/tamaire/internal/metrics"
)

const (
	DefaultVotesKey    = "votes"
	DefaultCommentsKey = "comments"
)

type Keys struct {
	Votes    string
	Comments string
}

func DefaultKeys() Keys {
	return Keys{Votes: DefaultVotesKey, Comments: DefaultCommentsKey}
}

// gateway stores each collection as one JSON array under its own key.
type gateway struct {
	store  ports.KeyValueStore
	keys   Keys
	logger *slog.Logger
}

func NewGateway(store ports.KeyValueStore, keys Keys, logger *slog.Logger) ports.PersistenceGateway {
	if keys.Votes == "" {
		keys.Votes = DefaultVotesKey
	}
	if keys.Comments == "" {
		keys.Comments = DefaultCommentsKey
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &gateway{
		store:  store,
		keys:   keys,
		logger: logger,
	}
}

type storedVote struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Choice    string `json:"choice"`
	Timestamp int64  `json:"timestamp"`
}

type storedComment struct {
	ID        string `json:"id"`
	TeamColor string `json:"teamColor"`
	UserName  string `json:"userName"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

func (g *gateway) Load(ctx context.Context) ([]domain.Vote, []domain.Comment) {
	votes := []domain.Vote{}
	var rawVotes []storedVote
	if g.read(ctx, g.keys.Votes, &rawVotes) {
		// records are most recent first, so the first one per name wins
		seen := make(map[string]bool, len(rawVotes))
		for _, v := range rawVotes {
			choice := domain.TeamColor(v.Choice)
			if v.ID == "" || !choice.Valid() {
				g.logger.Warn("dropping unreadable vote record", "key", g.keys.Votes, "vote_id", v.ID, "choice", v.Choice)
				continue
			}
			name := domain.NormalizeName(v.Name)
			if seen[name] {
				g.logger.Warn("dropping duplicate vote record", "key", g.keys.Votes, "vote_id", v.ID, "name", v.Name)
				continue
			}
			seen[name] = true
			votes = append(votes, domain.Vote{
				ID:        v.ID,
				Name:      v.Name,
				Choice:    choice,
				Timestamp: v.Timestamp,
			})
		}
	}

	comments := []domain.Comment{}
	var rawComments []storedComment
	if g.read(ctx, g.keys.Comments, &rawComments) {
		for _, c := range rawComments {
			team := domain.TeamColor(c.TeamColor)
			if c.ID == "" || !team.Valid() {
				g.logger.Warn("dropping unreadable comment record", "key", g.keys.Comments, "comment_id", c.ID, "team", c.TeamColor)
				continue
			}
			comments = append(comments, domain.Comment{
				ID:        c.ID,
				TeamColor: team,
				UserName:  c.UserName,
				Text:      c.Text,
				Timestamp: c.Timestamp,
			})
		}
	}

	g.logger.Info("state loaded", "votes", len(votes), "comments", len(comments))

	return votes, comments
}

// read decodes key into dst. It reports false when the key is absent or
// cannot be used; failures are logged, never returned.
func (g *gateway) read(ctx context.Context, key string, dst any) bool {
	data, ok, err := g.store.Get(ctx, key)
	if err != nil {
		metrics.IncPersistenceFailure(key, "load")
		g.logger.Warn("failed to read stored collection, starting empty", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		metrics.IncPersistenceFailure(key, "load")
		g.logger.Warn("stored collection is corrupt, starting empty", "key", key, "error", err)
		return false
	}
	return true
}

func (g *gateway) SaveVotes(ctx context.Context, votes []domain.Vote) error {
	records := make([]storedVote, 0, len(votes))
	for _, v := range votes {
		records = append(records, storedVote{
			ID:        v.ID,
			Name:      v.Name,
			Choice:    string(v.Choice),
			Timestamp: v.Timestamp,
		})
	}
	return g.write(ctx, g.keys.Votes, records)
}

func (g *gateway) SaveComments(ctx context.Context, comments []domain.Comment) error {
	records := make([]storedComment, 0, len(comments))
	for _, c := range comments {
		records = append(records, storedComment{
			ID:        c.ID,
			TeamColor: string(c.TeamColor),
			UserName:  c.UserName,
			Text:      c.Text,
			Timestamp: c.Timestamp,
		})
	}
	return g.write(ctx, g.keys.Comments, records)
}

func (g *gateway) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %v", domain.ErrPersistenceUnavailable, key, err)
	}
	if err := g.store.Set(ctx, key, data); err != nil {
		metrics.IncPersistenceFailure(key, "save")
		return fmt.Errorf("%w: failed to write %s: %v", domain.ErrPersistenceUnavailable, key, err)
	}
	return nil
}
