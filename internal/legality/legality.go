// Package legality implements the Check & Legality Filter (spec §4.4): a
// move is legal iff, in the board resulting from applying it, the mover's
// royal piece is not attacked by the opponent. Mirrors the teacher's
// wouldLeaveKingInCheck, generalized from a hardcoded king lookup to any
// royal/king-replacer and from a single capture square to the full
// Captures list a non-displacement capture may carry.
package legality

import (
	"fairychess/internal/attack"
	"fairychess/internal/board"
	"fairychess/internal/catalog"
	"fairychess/internal/movegen"
	"fairychess/internal/special"
)

type Filter struct {
	Table  *catalog.Table
	Gen    *movegen.Generator
	Oracle *attack.Oracle
}

func NewFilter(table *catalog.Table, gen *movegen.Generator, oracle *attack.Oracle) *Filter {
	return &Filter{Table: table, Gen: gen, Oracle: oracle}
}

// IsLegal clones b, applies mv on behalf of the piece at mv.From,
// recomputes freeze states, and asks the Attack Oracle whether the
// mover's royal (or king-replacer) is attacked afterward. A side with no
// royal piece at all has nothing to check, so the filter returns true
// (legal); noticing a side with no royal is End Detection's job.
func (f *Filter) IsLegal(b *board.Board, mv movegen.Move) bool {
	clone := b.Clone()
	pc := clone.At(mv.From)
	if pc == nil {
		return false
	}
	mover := pc.Owner
	movegen.ApplyMove(clone, pc, mv)
	special.RecomputeFreeze(f.Table, clone)

	royal := f.findRoyal(clone, mover)
	if royal == nil {
		return true
	}
	return !f.Oracle.Attacks(clone, *royal.Position, mover.Opposite())
}

func (f *Filter) findRoyal(b *board.Board, owner board.Color) *board.PieceInstance {
	for _, pc := range b.LiveOf(owner) {
		if f.Table.MustGet(pc.TypeID).IsRoyal {
			return pc
		}
	}
	return nil
}

// LegalMoves filters PseudoLegal(pc) down to the legal subset, per the
// "legalMoves subset of pseudoLegalMoves" testable property (spec §8).
func (f *Filter) LegalMoves(b *board.Board, pc *board.PieceInstance, enPassant *board.Position) []movegen.Move {
	var out []movegen.Move
	for _, mv := range f.Gen.PseudoLegal(b, pc, enPassant) {
		if f.IsLegal(b, mv) {
			out = append(out, mv)
		}
	}
	return out
}

// HasLegalMove reports whether color has any legal move at all, across
// every live, unfrozen piece it owns.
func (f *Filter) HasLegalMove(b *board.Board, color board.Color, enPassant *board.Position) bool {
	for _, pc := range b.LiveOf(color) {
		if len(f.LegalMoves(b, pc, enPassant)) > 0 {
			return true
		}
	}
	return false
}

// IsInCheck reports whether color's royal piece is currently attacked.
func (f *Filter) IsInCheck(b *board.Board, color board.Color) bool {
	royal := f.findRoyal(b, color)
	if royal == nil {
		return false
	}
	return f.Oracle.Attacks(b, *royal.Position, color.Opposite())
}
