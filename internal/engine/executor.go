package engine

import (
	"fairychess/internal/board"
	"fairychess/internal/movegen"
	"fairychess/internal/special"
)

// candidateMoves returns every legal move available to pc, including
// castling, which the move generator does not produce on its own since
// it depends on check state and a partner piece.
func (e *Engine) candidateMoves(b *board.Board, pc *board.PieceInstance, enPassant *board.Position) []movegen.Move {
	moves := e.Filter.LegalMoves(b, pc, enPassant)
	if e.Table.MustGet(pc.TypeID).IsRoyal {
		for _, mv := range e.Castling.Candidates(b, pc) {
			if e.Filter.IsLegal(b, mv) {
				moves = append(moves, mv)
			}
		}
	}
	return moves
}

func (e *Engine) hasAnyLegalMove(b *board.Board, color board.Color, enPassant *board.Position) bool {
	for _, pc := range b.LiveOf(color) {
		if len(e.candidateMoves(b, pc, enPassant)) > 0 {
			return true
		}
	}
	return false
}

// Move executes the Move Executor steps of spec §4.6 for the piece at
// from moving to to. promotionChoice is consulted only when the move
// triggers a required promotion; pass "" to take the first computed
// option.
func (e *Engine) Move(gs *GameState, from, to board.Position, promotionChoice string) (*MoveRecord, error) {
	if gs.Status == "checkmate" || gs.Status == "stalemate" || gs.Status == "draw-vp-tie" ||
		gs.Status == "resigned" || gs.Status == "timeout" || gs.Status == "draw-agreed" {
		return nil, ErrGameOver
	}

	pc := gs.Board.At(from)
	if pc == nil {
		return nil, ErrNoPieceAt
	}
	if pc.Owner != gs.Turn {
		return nil, ErrNotYourTurn
	}
	if pc.IsFrozen {
		return nil, ErrFrozenPiece
	}

	var chosen movegen.Move
	found := false
	for _, mv := range e.candidateMoves(gs.Board, pc, gs.EnPassant) {
		if mv.To == to {
			chosen = mv
			found = true
			break
		}
	}
	if !found {
		return nil, ErrIllegalMove
	}

	origFrom, origTo := chosen.From, chosen.To
	movedType := pc.TypeID
	ep := special.NextEnPassantTarget(e.Table, pc, origFrom, origTo)

	captured := movegen.ApplyMove(gs.Board, pc, chosen)

	promoted := false
	promotedTo := ""
	if special.NeedsPromotion(e.Table, gs.Board, pc) {
		options := special.PromotionOptions(e.Table, gs.Board, pc)
		choice := promotionChoice
		if choice == "" {
			choice = options[0]
		}
		valid := false
		for _, opt := range options {
			if opt == choice {
				valid = true
				break
			}
		}
		if !valid {
			return nil, ErrInvalidPromotion
		}
		pc.TypeID = choice
		promoted = true
		promotedTo = choice
	}

	special.RecomputeFreeze(e.Table, gs.Board)
	gs.EnPassant = ep

	record := MoveRecord{
		TurnNumber: gs.TurnNumber,
		Color:      gs.Turn,
		PieceID:    pc.ID,
		PieceType:  movedType,
		From:       origFrom,
		To:         origTo,
		Captures:   append([]board.Position{}, chosen.Captures...),
		Castle:     chosen.Castle,
		EnPassant:  chosen.EnPassant,
		Swap:       chosen.Swap,
		Promoted:   promoted,
		PromotedTo: promotedTo,
	}
	_ = captured

	gs.Turn = gs.Turn.Opposite()
	if gs.Turn == board.White {
		gs.TurnNumber++
	}

	gs.History = append(gs.History, record)
	e.refreshStatus(gs)

	return &record, nil
}
