package special

import (
	"fairychess/internal/board"
	"fairychess/internal/catalog"
)

// NextEnPassantTarget computes the en-passant target square that results
// from a move, per spec §4.5: set only when a pawn-like piece with the
// pawn-forward special advances two squares; the target is the square it
// skipped. Any other move clears it.
func NextEnPassantTarget(table *catalog.Table, pc *board.PieceInstance, from, to board.Position) *board.Position {
	pt := table.MustGet(pc.TypeID)
	if !pt.Movement.HasSpecial(catalog.SpecialPawnForward) {
		return nil
	}
	if to.File != from.File {
		return nil
	}
	dr := to.Rank - from.Rank
	if dr != 2 && dr != -2 {
		return nil
	}
	skipped := board.Position{File: from.File, Rank: (from.Rank + to.Rank) / 2}
	return &skipped
}
