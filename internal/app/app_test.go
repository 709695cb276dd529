package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/tamaire/internal/adapters/repository/keyvalue"
	"github.com/vncsmyrnk/tamaire/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/tamaire/internal/core/domain"
	"github.com/vncsmyrnk/tamaire/internal/core/ports"
)

func newTestApp(t *testing.T) (*App, ports.KeyValueStore) {
	t.Helper()
	store := memory.NewKVRepository()
	return New(context.Background(), keyvalue.NewGateway(store, keyvalue.DefaultKeys(), nil), nil), store
}

func reload(store ports.KeyValueStore) *App {
	return New(context.Background(), keyvalue.NewGateway(store, keyvalue.DefaultKeys(), nil), nil)
}

func TestVotingFlow(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	view := a.View()
	assert.Equal(t, domain.SessionAnonymous, view.State)
	assert.Equal(t, 0, view.TotalVotes)
	assert.Len(t, view.Teams, 3)
	assert.Nil(t, view.ActiveVote)

	_, err := a.CastVote(ctx, domain.TeamRed)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	require.NoError(t, a.Enter("  Alice "))
	assert.Equal(t, domain.SessionNamed, a.View().State)

	vote, err := a.CastVote(ctx, domain.TeamRed)
	require.NoError(t, err)
	assert.Equal(t, "Alice", vote.Name)

	view = a.View()
	assert.Equal(t, domain.SessionVoted, view.State)
	assert.Equal(t, "Alice", view.ActiveName)
	require.NotNil(t, view.ActiveVote)
	assert.Equal(t, vote.ID, view.ActiveVote.ID)
	assert.Equal(t, 1, view.TotalVotes)
	assert.Equal(t, domain.TeamStats{Color: domain.TeamRed, Label: "あか組", Count: 1}, view.Teams[0])

	require.NoError(t, a.Finish())
	assert.Equal(t, domain.SessionFinished, a.View().State)

	a.ReturnToStart()
	assert.Equal(t, domain.SessionAnonymous, a.View().State)
	assert.Equal(t, 1, a.View().TotalVotes)
}

func TestChangeVoteReplacesEarlierVote(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	require.NoError(t, a.Enter("Alice"))
	_, err := a.CastVote(ctx, domain.TeamRed)
	require.NoError(t, err)

	require.NoError(t, a.Enter("alice"))
	assert.Equal(t, domain.SessionVoted, a.View().State)
	_, err = a.CastVote(ctx, domain.TeamBlue)
	require.NoError(t, err)

	votes := a.Votes()
	require.Len(t, votes, 1)
	assert.Equal(t, domain.TeamBlue, votes[0].Choice)
	assert.Equal(t, "alice", votes[0].Name)
}

func TestFinishRequiresVote(t *testing.T) {
	a, _ := newTestApp(t)
	assert.ErrorIs(t, a.Finish(), domain.ErrInvalidState)

	require.NoError(t, a.Enter("Bob"))
	assert.ErrorIs(t, a.Finish(), domain.ErrInvalidState)
}

func TestFinishedSessionRejectsVotesAndComments(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	require.NoError(t, a.Enter("Alice"))
	_, err := a.CastVote(ctx, domain.TeamRed)
	require.NoError(t, err)
	require.NoError(t, a.Finish())

	_, err = a.CastVote(ctx, domain.TeamBlue)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = a.PostComment(ctx, domain.TeamRed, "", "after finishing")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	view := a.View()
	assert.Equal(t, domain.SessionFinished, view.State)
	require.Len(t, view.Votes, 1)
	assert.Equal(t, domain.TeamRed, view.Votes[0].Choice)
	assert.Empty(t, a.AllComments())

	require.NoError(t, a.Enter("Alice"))
	_, err = a.CastVote(ctx, domain.TeamBlue)
	assert.NoError(t, err)
}

func TestLoadedDuplicateNamesCountOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVRepository()
	require.NoError(t, store.Set(ctx, "votes", []byte(`[
		{"id":"v2","name":"alice","choice":"blue","timestamp":2},
		{"id":"v1","name":"Alice","choice":"red","timestamp":1}
	]`)))

	view := reload(store).View()
	assert.Equal(t, 1, view.TotalVotes)
	require.Len(t, view.Votes, 1)
	assert.Equal(t, domain.TeamBlue, view.Votes[0].Choice)
}

func TestEnterRejectsBlankName(t *testing.T) {
	a, _ := newTestApp(t)
	assert.ErrorIs(t, a.Enter("   "), domain.ErrInvalidInput)
}

func TestLeave(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.Enter("Bob"))
	a.Leave()
	assert.Equal(t, domain.SessionAnonymous, a.View().State)
}

func TestCommentGating(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	_, err := a.PostComment(ctx, domain.TeamRed, "Alice", "hi")
	assert.ErrorIs(t, err, domain.ErrCommentNotAllowed)

	require.NoError(t, a.Enter("Alice"))
	_, err = a.PostComment(ctx, domain.TeamRed, "", "hi")
	assert.ErrorIs(t, err, domain.ErrCommentNotAllowed)

	_, err = a.CastVote(ctx, domain.TeamRed)
	require.NoError(t, err)

	_, err = a.PostComment(ctx, domain.TeamBlue, "", "hi")
	assert.ErrorIs(t, err, domain.ErrCommentNotAllowed)

	_, err = a.PostComment(ctx, domain.TeamColor("green"), "", "hi")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	comment, err := a.PostComment(ctx, domain.TeamRed, "", "  がんばれ！ ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", comment.UserName)
	assert.Equal(t, "がんばれ！", comment.Text)

	_, err = a.PostComment(ctx, domain.TeamRed, "   ", "again")
	require.NoError(t, err)

	_, err = a.PostComment(ctx, domain.TeamRed, "Alice", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Len(t, a.Comments(domain.TeamRed), 2)
	assert.Empty(t, a.Comments(domain.TeamBlue))
	assert.Len(t, a.AllComments(), 2)
}

func TestCommentAfterChangingTeam(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	require.NoError(t, a.Enter("Alice"))
	_, err := a.CastVote(ctx, domain.TeamRed)
	require.NoError(t, err)
	_, err = a.CastVote(ctx, domain.TeamWhite)
	require.NoError(t, err)

	_, err = a.PostComment(ctx, domain.TeamRed, "", "hi")
	assert.ErrorIs(t, err, domain.ErrCommentNotAllowed)
	_, err = a.PostComment(ctx, domain.TeamWhite, "", "hi")
	assert.NoError(t, err)
}

func TestOnlyAuthorModifiesComment(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	require.NoError(t, a.Enter("Alice"))
	_, err := a.CastVote(ctx, domain.TeamRed)
	require.NoError(t, err)
	comment, err := a.PostComment(ctx, domain.TeamRed, "", "first")
	require.NoError(t, err)

	require.NoError(t, a.Enter("Bob"))
	_, err = a.CastVote(ctx, domain.TeamRed)
	require.NoError(t, err)

	assert.ErrorIs(t, a.EditComment(ctx, comment.ID, "hijacked"), domain.ErrCommentNotAllowed)
	assert.ErrorIs(t, a.DeleteComment(ctx, comment.ID), domain.ErrCommentNotAllowed)

	require.NoError(t, a.Enter("ALICE"))
	require.NoError(t, a.EditComment(ctx, comment.ID, "edited"))
	assert.Equal(t, "edited", a.Comments(domain.TeamRed)[0].Text)

	assert.ErrorIs(t, a.EditComment(ctx, "missing", "x"), domain.ErrNotFound)
	assert.NoError(t, a.DeleteComment(ctx, "missing"))

	require.NoError(t, a.DeleteComment(ctx, comment.ID))
	assert.Empty(t, a.Comments(domain.TeamRed))
}

func TestDeleteVote(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	require.NoError(t, a.Enter("Bob"))
	bob, err := a.CastVote(ctx, domain.TeamWhite)
	require.NoError(t, err)
	require.NoError(t, a.Enter("Alice"))
	alice, err := a.CastVote(ctx, domain.TeamBlue)
	require.NoError(t, err)

	assert.True(t, a.DeleteVote(ctx, bob.ID))
	assert.Equal(t, domain.SessionVoted, a.View().State)
	assert.False(t, a.DeleteVote(ctx, bob.ID))

	assert.True(t, a.DeleteVote(ctx, alice.ID))
	view := a.View()
	assert.Equal(t, domain.SessionAnonymous, view.State)
	assert.Equal(t, 0, view.TotalVotes)
	assert.Empty(t, view.Votes)
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	a, store := newTestApp(t)

	require.NoError(t, a.Enter("Alice"))
	vote, err := a.CastVote(ctx, domain.TeamBlue)
	require.NoError(t, err)
	comment, err := a.PostComment(ctx, domain.TeamBlue, "あおい", "ファイト")
	require.NoError(t, err)

	b := reload(store)
	view := b.View()
	assert.Equal(t, domain.SessionAnonymous, view.State)
	require.Len(t, view.Votes, 1)
	assert.Equal(t, vote, view.Votes[0])
	assert.Equal(t, []domain.Comment{comment}, b.Comments(domain.TeamBlue))

	require.NoError(t, b.Enter("alice"))
	assert.Equal(t, domain.SessionVoted, b.View().State)
}
