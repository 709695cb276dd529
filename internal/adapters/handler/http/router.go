package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/vncsmyrnk/tamaire/internal/app"
	"github.com/vncsmyrnk/tamaire/internal/core/ports"
)

type Options struct {
	CORSOrigins []string
	// VoteRate limits POST requests that create votes or comments, per client.
	VoteRate  rate.Limit
	VoteBurst int
	// TrustProxy takes the client address from X-Forwarded-For. Enable only
	// behind a proxy that overwrites the header.
	TrustProxy bool
	// Store answers /ready when it implements ports.Pinger.
	Store  ports.KeyValueStore
	Logger *slog.Logger
}

func NewHandler(a *app.App, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.VoteRate == 0 {
		opts.VoteRate = rate.Every(time.Minute / 30)
	}
	if opts.VoteBurst <= 0 {
		opts.VoteBurst = 3
	}

	sessionHandler := NewSessionHandler(a)
	voteHandler := NewVoteHandler(a)
	commentHandler := NewCommentHandler(a)
	limited := RateLimit(opts.VoteRate, opts.VoteBurst, opts.TrustProxy)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(opts.Logger))
	r.Use(CORSMiddleware(opts.CORSOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", readyHandler(opts.Store))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/view", sessionHandler.GetView)

		r.Route("/session", func(r chi.Router) {
			r.Post("/", sessionHandler.Enter)
			r.Delete("/", sessionHandler.Leave)
			r.Post("/finish", sessionHandler.Finish)
			r.Post("/restart", sessionHandler.Restart)
		})

		r.Get("/teams", voteHandler.ListTeams)
		r.Get("/teams/{color}/comments", commentHandler.ListComments)
		r.With(limited).Post("/teams/{color}/comments", commentHandler.PostComment)

		r.Route("/votes", func(r chi.Router) {
			r.Get("/", voteHandler.ListVotes)
			r.With(limited).Post("/", voteHandler.CastVote)
			r.Delete("/{id}", voteHandler.DeleteVote)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Patch("/{id}", commentHandler.EditComment)
			r.Delete("/{id}", commentHandler.DeleteComment)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func readyHandler(store ports.KeyValueStore) http.HandlerFunc {
	pinger, _ := store.(ports.Pinger)
	return func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "store not ready"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
