package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

// directions are probed in this order, the first qualifying one wins.
var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal
	{1, -1}, // anti-diagonal
}

// findWinningLine looks for a run of at least WinLength stones through (row, col).
// It returns the run's endpoints ordered from the negative end to the positive end.
func findWinningLine(board *[entity.Size][entity.Size]entity.Stone, row, col int) (entity.Line, bool) {
	player := board[row][col]
	if player == entity.Empty {
		return entity.Line{}, false
	}

	for _, dir := range directions {
		forward := countRun(board, row, col, dir[0], dir[1], player)
		backward := countRun(board, row, col, -dir[0], -dir[1], player)

		if 1+forward+backward >= entity.WinLength {
			return entity.Line{
				From: entity.Cell{Row: row - dir[0]*backward, Col: col - dir[1]*backward},
				To:   entity.Cell{Row: row + dir[0]*forward, Col: col + dir[1]*forward},
			}, true
		}
	}

	return entity.Line{}, false
}

// countRun counts stones of player beyond (row, col), at most WinLength-1 steps.
func countRun(board *[entity.Size][entity.Size]entity.Stone, row, col, dRow, dCol int, player entity.Stone) int {
	count := 0

	for step := 1; step < entity.WinLength; step++ {
		cell := entity.Cell{Row: row + dRow*step, Col: col + dCol*step}
		if !cell.InBounds() || board[cell.Row][cell.Col] != player {
			break
		}
		count++
	}

	return count
}
