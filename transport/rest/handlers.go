package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

type gameUseCase interface {
	CreateGame(ctx context.Context) (*usecase.GameState, error)
	GetGame(ctx context.Context, id string) (*usecase.GameState, error)
	MakeMove(ctx context.Context, id string, row, col int) (*gomoku.MoveOutcome, error)
	UndoMove(ctx context.Context, id string) (*gomoku.UndoOutcome, error)
	ResetGame(ctx context.Context, id string) (*usecase.GameState, error)
	DeleteGame(ctx context.Context, id string) error
}

type MoveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Outcome any    `json:"outcome,omitempty"`
}

type Handlers struct {
	logger *slog.Logger
	games  gameUseCase
}

func NewHandlers(logger *slog.Logger, games gameUseCase) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

// NewRouter mounts the game routes on a chi router. A non-nil stream serves GET /games/{gameID}/ws.
func NewRouter(handlers *Handlers, stream http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/ping", pingHandler)

	router.Route("/games", func(r chi.Router) {
		r.Post("/", handlers.CreateGame)
		r.Route("/{gameID}", func(r chi.Router) {
			r.Use(validGameID)

			r.Get("/", handlers.GetGame)
			r.Delete("/", handlers.DeleteGame)
			r.Post("/moves", handlers.MakeMove)
			r.Post("/undo", handlers.UndoMove)
			r.Post("/reset", handlers.ResetGame)

			if stream != nil {
				r.Method(http.MethodGet, "/ws", stream)
			}
		})
	})

	return router
}

func (that *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	state, err := that.games.CreateGame(r.Context())
	if err != nil {
		that.writeError(w, r, "CreateGame", err)
		return
	}

	writeJSON(w, http.StatusCreated, state)
}

func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	state, err := that.games.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		that.writeError(w, r, "GetGame", err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (that *Handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil || req.Row == nil || req.Col == nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "body must be {\"row\": int, \"col\": int}"})
		return
	}

	outcome, err := that.games.MakeMove(r.Context(), chi.URLParam(r, "gameID"), *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, r, "MakeMove", err)
		return
	}

	if !outcome.Accepted {
		writeJSON(w, rejectStatus(outcome.Reason), ErrorResponse{Error: outcome.Reason.String(), Outcome: outcome})
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (that *Handlers) UndoMove(w http.ResponseWriter, r *http.Request) {
	outcome, err := that.games.UndoMove(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		that.writeError(w, r, "UndoMove", err)
		return
	}

	if !outcome.Undone {
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "nothing_to_undo", Outcome: outcome})
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (that *Handlers) ResetGame(w http.ResponseWriter, r *http.Request) {
	state, err := that.games.ResetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		that.writeError(w, r, "ResetGame", err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (that *Handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		that.writeError(w, r, "DeleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Handlers) writeError(w http.ResponseWriter, r *http.Request, method string, err error) {
	if errors.Is(err, apperror.ErrGameNotFound) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "game_not_found"})
		return
	}

	log := that.logger.With("method", method, "request_id", middleware.GetReqID(r.Context()))
	log.Error("request failed", "error", err)

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal_error"})
}

// validGameID answers 404 for ids that could never have been issued.
func validGameID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !pkg.IsValidGameID(chi.URLParam(r, "gameID")) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "game_not_found"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func rejectStatus(reason gomoku.RejectReason) int {
	if reason == gomoku.RejectOutOfBounds {
		return http.StatusUnprocessableEntity
	}

	return http.StatusConflict
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}
