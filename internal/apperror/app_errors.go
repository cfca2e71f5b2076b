package apperror

import "errors"

var (
	ErrGameOver       = errors.New("game is already over")
	ErrOutOfBounds    = errors.New("cell is out of bounds")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrGameNotFound   = errors.New("game not found")
	ErrCorruptHistory = errors.New("move history is corrupt")
)
