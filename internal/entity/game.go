package entity

import "time"

// Cell is a board coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

// Move is an immutable record of a placed stone.
type Move struct {
	Row    int   `json:"row"`
	Col    int   `json:"col"`
	Player Stone `json:"player"`
}

func (that Move) Cell() Cell {
	return Cell{Row: that.Row, Col: that.Col}
}

// Line holds the two endpoints of a winning run.
type Line struct {
	From Cell `json:"from"`
	To   Cell `json:"to"`
}

// Game is the stored session record. The board is never stored, it is
// rebuilt by replaying History.
type Game struct {
	ID        string    `json:"id"`
	History   []Move    `json:"history"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewGame(id string, now time.Time) *Game {
	return &Game{
		ID:        id,
		History:   []Move{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
