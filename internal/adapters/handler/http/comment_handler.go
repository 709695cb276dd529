package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/tamaire/internal/app"
	"github.com/vncsmyrnk/tamaire/internal/core/domain"
)

type CommentHandler struct {
	app *app.App
}

func NewCommentHandler(a *app.App) *CommentHandler {
	return &CommentHandler{
		app: a,
	}
}

type postCommentRequest struct {
	UserName string `json:"userName"`
	Text     string `json:"text"`
}

type editCommentRequest struct {
	Text string `json:"text"`
}

func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	team, err := domain.ParseTeamColor(chi.URLParam(r, "color"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.Comments(team))
}

func (h *CommentHandler) PostComment(w http.ResponseWriter, r *http.Request) {
	team, err := domain.ParseTeamColor(chi.URLParam(r, "color"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req postCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	comment, err := h.app.PostComment(r.Context(), team, req.UserName, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) EditComment(w http.ResponseWriter, r *http.Request) {
	var req editCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := h.app.EditComment(r.Context(), chi.URLParam(r, "id"), req.Text); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.app.DeleteComment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
