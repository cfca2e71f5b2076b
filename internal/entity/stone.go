package entity

import (
	"errors"
	"fmt"
)

const (
	// Size is the board dimension, the board is Size x Size.
	Size = 15
	// WinLength is the minimal run of same-colored stones that wins.
	WinLength = 5
)

var (
	ErrUnknownStone  = errors.New("unknown stone")
	ErrUnknownStatus = errors.New("unknown game status")
)

// Stone is the content of a board cell. Empty is not a player.
type Stone uint8

const (
	Empty Stone = iota
	Black
	White
)

func (that Stone) Opponent() Stone {
	switch that {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (that Stone) String() string {
	switch that {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

func (that Stone) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Stone) UnmarshalText(text []byte) error {
	switch string(text) {
	case "empty", "":
		*that = Empty
	case "black":
		*that = Black
	case "white":
		*that = White
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStone, text)
	}

	return nil
}

// Status is the lifecycle state of a game. Win and Draw are terminal.
type Status uint8

const (
	InProgress Status = iota
	Win
	Draw
)

func (that Status) IsTerminal() bool {
	return that == Win || that == Draw
}

func (that Status) String() string {
	switch that {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

func (that Status) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in_progress":
		*that = InProgress
	case "win":
		*that = Win
	case "draw":
		*that = Draw
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, text)
	}

	return nil
}
