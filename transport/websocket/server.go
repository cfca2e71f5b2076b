package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

const writeTimeout = 10 * time.Second

type gameUseCase interface {
	GetGame(ctx context.Context, id string) (*usecase.GameState, error)
	MakeMove(ctx context.Context, id string, row, col int) (*gomoku.MoveOutcome, error)
	UndoMove(ctx context.Context, id string) (*gomoku.UndoOutcome, error)
	ResetGame(ctx context.Context, id string) (*usecase.GameState, error)
	Subscribe(ctx context.Context, id string) (<-chan gomoku.Event, func(), error)
}

type handlerFunc func(ctx context.Context, conn *connection, message *Message) error

type Server struct {
	logger   *slog.Logger
	games    gameUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionGameMove] = server.handleGameMove
	server.handlers[actionGameUndo] = server.handleGameUndo
	server.handlers[actionGameReset] = server.handleGameReset

	return server
}

// connection serializes writes, gorilla allows one concurrent writer.
type connection struct {
	ws     *websocket.Conn
	gameID string
	mu     sync.Mutex
}

func (that *connection) writeJSON(v any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}

	return that.ws.WriteJSON(v)
}

// ServeHTTP upgrades GET /games/{gameID}/ws and serves the game until the client leaves.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	log := that.logger.With("method", "ServeHTTP", "gameID", gameID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events, unsubscribe, err := that.games.Subscribe(ctx, gameID)
	if err != nil {
		if errors.Is(err, apperror.ErrGameNotFound) {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		log.Error("failed to subscribe", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer unsubscribe()

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer ws.Close()

	conn := &connection{ws: ws, gameID: gameID}

	log.Info("WebSocket connection established")

	go that.forwardEvents(conn, events)

	if err = that.handleGameState(ctx, conn, &Message{Action: actionGameState}); err != nil {
		log.Error("failed to send initial state", "error", err)
		return
	}

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Info("WebSocket connection closed", "reason", err)
	}
}

// forwardEvents pushes game events until the feed closes. A closed feed means the game is gone.
func (that *Server) forwardEvents(conn *connection, events <-chan gomoku.Event) {
	log := that.logger.With("method", "forwardEvents", "gameID", conn.gameID)

	for event := range events {
		if err := that.sendMessage(conn, actionGameEvent, ResponsePayload{Event: &event}); err != nil {
			log.Debug("failed to send event", "error", err)
			return
		}
	}

	conn.mu.Lock()
	_ = conn.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "game closed"),
		time.Now().Add(writeTimeout))
	conn.mu.Unlock()

	_ = conn.ws.Close()
}

// handleMessages processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages", "gameID", conn.gameID)

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			return err
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)

			if err = that.sendErrorResponse(conn, actionError, "message must be {\"action\": string, \"payload\": object}"); err != nil {
				return err
			}

			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			if err = that.sendErrorResponse(conn, actionError, "unknown action: "+message.Action); err != nil {
				return err
			}

			continue
		}

		if err = handler(ctx, conn, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			return err
		}
	}
}
