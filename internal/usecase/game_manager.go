package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameState is a game session as seen by clients.
type GameState struct {
	ID string `json:"id"`
	gomoku.Snapshot
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameManager runs engine operations on stored games. Operations on the same
// game are serialized, every one restores the engine from the stored history
// and saves it back before events are published.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	hub      *Hub
	locks    *gameLocks
	now      func() time.Time
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, hub *Hub) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		hub:      hub,
		locks:    newGameLocks(),
		now:      time.Now,
	}
}

func (that *GameManager) CreateGame(ctx context.Context) (*GameState, error) {
	log := that.logger.With("method", "CreateGame")

	game := entity.NewGame(pkg.GenerateGameID(), that.now())
	engine := gomoku.New()

	if err := that.updateGame(ctx, game, engine); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Info("game created", "gameID", game.ID)

	return newGameState(game, engine), nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*GameState, error) {
	unlock := that.locks.lock(id)
	defer unlock()

	game, engine, _, err := that.loadGame(ctx, id)
	if err != nil {
		return nil, err
	}

	return newGameState(game, engine), nil
}

// MakeMove attempts a move. A rejected move is a regular outcome and not an error.
func (that *GameManager) MakeMove(ctx context.Context, id string, row, col int) (*gomoku.MoveOutcome, error) {
	log := that.logger.With("method", "MakeMove", "gameID", id)

	unlock := that.locks.lock(id)
	defer unlock()

	game, engine, recorder, err := that.loadGame(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome := engine.AttemptMove(row, col)
	if !outcome.Accepted {
		log.Debug("move rejected", "row", row, "col", col, "reason", outcome.Reason)
		return &outcome, nil
	}

	if err = that.updateGame(ctx, game, engine); err != nil {
		return nil, fmt.Errorf("failed to save move: %w", err)
	}

	that.publish(id, recorder)

	if outcome.Status.IsTerminal() {
		log.Info("game finished", "status", outcome.Status, "player", outcome.Player)
	}

	return &outcome, nil
}

// UndoMove takes back the last move. Undo on an empty history is a no-op outcome.
func (that *GameManager) UndoMove(ctx context.Context, id string) (*gomoku.UndoOutcome, error) {
	log := that.logger.With("method", "UndoMove", "gameID", id)

	unlock := that.locks.lock(id)
	defer unlock()

	game, engine, recorder, err := that.loadGame(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome := engine.UndoLastMove()
	if !outcome.Undone {
		log.Debug("nothing to undo")
		return &outcome, nil
	}

	if err = that.updateGame(ctx, game, engine); err != nil {
		return nil, fmt.Errorf("failed to save undo: %w", err)
	}

	that.publish(id, recorder)

	return &outcome, nil
}

func (that *GameManager) ResetGame(ctx context.Context, id string) (*GameState, error) {
	log := that.logger.With("method", "ResetGame", "gameID", id)

	unlock := that.locks.lock(id)
	defer unlock()

	game, engine, recorder, err := that.loadGame(ctx, id)
	if err != nil {
		return nil, err
	}

	engine.Reset()

	if err = that.updateGame(ctx, game, engine); err != nil {
		return nil, fmt.Errorf("failed to save reset: %w", err)
	}

	that.publish(id, recorder)

	log.Info("game reset")

	return newGameState(game, engine), nil
}

// DeleteGame ends the session and disconnects its subscribers.
func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	log := that.logger.With("method", "DeleteGame", "gameID", id)

	unlock := that.locks.lock(id)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.hub.Close(id)

	log.Info("game deleted")

	return nil
}

// Subscribe returns the event feed of a game. The game must exist.
func (that *GameManager) Subscribe(ctx context.Context, id string) (<-chan gomoku.Event, func(), error) {
	if _, err := that.gameRepo.GetByID(ctx, id); err != nil {
		return nil, nil, fmt.Errorf("failed to get game: %w", err)
	}

	events, unsubscribe := that.hub.Subscribe(ctx, id)

	return events, unsubscribe, nil
}

func (that *GameManager) loadGame(ctx context.Context, id string) (*entity.Game, *gomoku.Engine, *eventRecorder, error) {
	log := that.logger.With("method", "loadGame", "gameID", id)

	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get game: %w", err)
	}

	recorder := &eventRecorder{}

	engine, err := gomoku.Restore(game.History, gomoku.WithObserver(recorder.record))
	if err != nil {
		log.Error("failed to restore game", "error", err)
		return nil, nil, nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return game, engine, recorder, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game, engine *gomoku.Engine) error {
	game.History = engine.History()
	game.UpdatedAt = that.now()

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) publish(id string, recorder *eventRecorder) {
	for _, event := range recorder.events {
		that.hub.Publish(id, event)
	}
}

func newGameState(game *entity.Game, engine *gomoku.Engine) *GameState {
	return &GameState{
		ID:        game.ID,
		Snapshot:  engine.Snapshot(),
		CreatedAt: game.CreatedAt,
		UpdatedAt: game.UpdatedAt,
	}
}

// eventRecorder holds engine events until the change is stored.
type eventRecorder struct {
	events []gomoku.Event
}

func (that *eventRecorder) record(event gomoku.Event) {
	that.events = append(that.events, event)
}
