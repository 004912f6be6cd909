package engine

import "fairychess/internal/board"

// refreshStatus implements End Detection (spec §4.7) for the side now to
// move (gs.Turn). Resignation and timeout are injected directly by the
// session layer via Resign/Timeout below, bypassing this computation.
func (e *Engine) refreshStatus(gs *GameState) {
	color := gs.Turn
	royal := e.findRoyal(gs.Board, color)
	if royal == nil {
		gs.Status = "checkmate"
		winner := color.Opposite()
		gs.Winner = &winner
		return
	}

	inCheck := e.Filter.IsInCheck(gs.Board, color)
	hasMove := e.hasAnyLegalMove(gs.Board, color, gs.EnPassant)

	if !hasMove {
		if inCheck {
			gs.Status = "checkmate"
			winner := color.Opposite()
			gs.Winner = &winner
			return
		}
		white := sumVictoryPoints(e.Table, gs.Board, board.White)
		black := sumVictoryPoints(e.Table, gs.Board, board.Black)
		switch {
		case white > black:
			gs.Status = "stalemate"
			w := board.White
			gs.Winner = &w
		case black > white:
			gs.Status = "stalemate"
			b := board.Black
			gs.Winner = &b
		default:
			gs.Status = "draw-vp-tie"
		}
		return
	}

	if inCheck {
		gs.Status = "check"
	} else {
		gs.Status = "ongoing"
	}
	gs.Winner = nil
}

// Resign ends the game immediately with resigner's opponent as winner.
func (e *Engine) Resign(gs *GameState, resigner board.Color) {
	gs.Status = "resigned"
	winner := resigner.Opposite()
	gs.Winner = &winner
}

// Timeout ends the game immediately with timedOut's opponent as winner.
func (e *Engine) Timeout(gs *GameState, timedOut board.Color) {
	gs.Status = "timeout"
	winner := timedOut.Opposite()
	gs.Winner = &winner
}

// Draw ends the game immediately by mutual agreement, no winner.
func (e *Engine) Draw(gs *GameState) {
	gs.Status = "draw-agreed"
	gs.Winner = nil
}
