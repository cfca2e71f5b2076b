package usecase

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

const subscriberBuffer = 16

type subscriber struct {
	ch        chan gomoku.Event
	closeOnce sync.Once
}

func (that *subscriber) close() {
	that.closeOnce.Do(func() { close(that.ch) })
}

// Hub fans out engine events to the subscribers of a game.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*subscriber]struct{})}
}

// Subscribe registers for events of a game until ctx is done or unsubscribe is called.
func (that *Hub) Subscribe(ctx context.Context, gameID string) (<-chan gomoku.Event, func()) {
	sub := &subscriber{ch: make(chan gomoku.Event, subscriberBuffer)}

	that.mu.Lock()
	set, ok := that.subs[gameID]
	if !ok {
		set = make(map[*subscriber]struct{})
		that.subs[gameID] = set
	}
	set[sub] = struct{}{}
	that.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			that.remove(gameID, sub)
		})
	}

	go func() {
		<-ctx.Done()
		unsubscribe()
	}()

	return sub.ch, unsubscribe
}

// Publish delivers event to every subscriber of the game. A subscriber whose
// buffer is full is dropped and its channel closed.
func (that *Hub) Publish(gameID string, event gomoku.Event) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for sub := range that.subs[gameID] {
		select {
		case sub.ch <- event:
		default:
			that.removeLocked(gameID, sub)
		}
	}
}

// Close drops every subscriber of the game.
func (that *Hub) Close(gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for sub := range that.subs[gameID] {
		that.removeLocked(gameID, sub)
	}
}

func (that *Hub) remove(gameID string, sub *subscriber) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.removeLocked(gameID, sub)
}

func (that *Hub) removeLocked(gameID string, sub *subscriber) {
	set, ok := that.subs[gameID]
	if !ok {
		return
	}

	if _, ok = set[sub]; !ok {
		return
	}

	delete(set, sub)
	sub.close()

	if len(set) == 0 {
		delete(that.subs, gameID)
	}
}
