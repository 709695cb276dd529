package http

import (
	"net/http"

	"github.com/vncsmyrnk/tamaire/internal/app"
)

type SessionHandler struct {
	app *app.App
}

func NewSessionHandler(a *app.App) *SessionHandler {
	return &SessionHandler{
		app: a,
	}
}

type enterRequest struct {
	Name string `json:"name"`
}

func (h *SessionHandler) GetView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.View())
}

func (h *SessionHandler) Enter(w http.ResponseWriter, r *http.Request) {
	var req enterRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := h.app.Enter(req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.View())
}

func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	h.app.Leave()
	writeJSON(w, http.StatusOK, h.app.View())
}

func (h *SessionHandler) Finish(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Finish(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.View())
}

func (h *SessionHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.app.ReturnToStart()
	writeJSON(w, http.StatusOK, h.app.View())
}
