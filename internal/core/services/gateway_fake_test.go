package services

import (
	"context"
	"errors"

	"github.com/vncsmyrnk/tamaire/internal/core/domain"
)

type fakeGateway struct {
	votes        []domain.Vote
	comments     []domain.Comment
	voteSaves    int
	commentSaves int
	failSaves    bool
	saveCtxErrs  []error
}

func (g *fakeGateway) Load(ctx context.Context) ([]domain.Vote, []domain.Comment) {
	return g.votes, g.comments
}

func (g *fakeGateway) SaveVotes(ctx context.Context, votes []domain.Vote) error {
	g.voteSaves++
	g.saveCtxErrs = append(g.saveCtxErrs, ctx.Err())
	if g.failSaves {
		return errors.Join(domain.ErrPersistenceUnavailable, errors.New("quota exceeded"))
	}
	g.votes = append([]domain.Vote(nil), votes...)
	return nil
}

func (g *fakeGateway) SaveComments(ctx context.Context, comments []domain.Comment) error {
	g.commentSaves++
	g.saveCtxErrs = append(g.saveCtxErrs, ctx.Err())
	if g.failSaves {
		return errors.Join(domain.ErrPersistenceUnavailable, errors.New("quota exceeded"))
	}
	g.comments = append([]domain.Comment(nil), comments...)
	return nil
}
