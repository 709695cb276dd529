package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/tamaire/internal/app"
	"github.com/vncsmyrnk/tamaire/internal/core/domain"
)

type VoteHandler struct {
	app *app.App
}

func NewVoteHandler(a *app.App) *VoteHandler {
	return &VoteHandler{
		app: a,
	}
}

type voteRequest struct {
	Choice string `json:"choice"`
}

func (h *VoteHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Teams())
}

func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Votes())
}

func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	choice, err := domain.ParseTeamColor(req.Choice)
	if err != nil {
		writeError(w, err)
		return
	}

	vote, err := h.app.CastVote(r.Context(), choice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vote)
}

// DeleteVote answers 204 whether or not the vote existed.
func (h *VoteHandler) DeleteVote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		badRequest(w, "missing vote id")
		return
	}

	h.app.DeleteVote(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
