// Package movegen implements pseudo-legal move generation (spec §4.2):
// from a piece and a board, produce destinations that satisfy the piece's
// movement rules, ignoring own-king safety. Dispatch over movement tags
// follows a match on the catalog's tagged Movement sum, generalizing the
// teacher's switch over hardcoded PieceType (rook/bishop/knight/king
// direction tables) into a switch over arbitrary slide/leap/special data.
package movegen

import (
	"fairychess/internal/board"
	"fairychess/internal/catalog"
)

// Move is a single pseudo-legal destination plus the side effects needed
// to execute it: non-displacement captures, en-passant, swap, and castling
// partner relocation.
type Move struct {
	From board.Position
	To   board.Position

	// Captures lists every square whose occupant is removed when this move
	// executes, beyond the mover itself. For a standard displacement
	// capture this is just {To}; for non-displacement captures it is the
	// victim's own square (which may differ from To); for long-leap chain
	// captures it may hold several squares.
	Captures []board.Position

	EnPassant         bool
	EnPassantCapture  board.Position

	Swap     bool
	SwapWith board.Position

	Castle       bool
	PartnerFrom  board.Position
	PartnerTo    board.Position
}

// Generator produces pseudo-legal moves for a piece against a board,
// consulting the shared catalog for movement/capture data.
type Generator struct {
	Table *catalog.Table
}

func NewGenerator(table *catalog.Table) *Generator {
	return &Generator{Table: table}
}

// PseudoLegal returns every destination pc may move to, per spec §4.2.
// Returns nil if the piece is frozen.
func (g *Generator) PseudoLegal(b *board.Board, pc *board.PieceInstance, enPassant *board.Position) []Move {
	if pc == nil || pc.Position == nil || pc.IsFrozen {
		return nil
	}
	pt := g.Table.MustGet(pc.TypeID)
	from := *pc.Position

	var moves []Move
	moves = append(moves, g.slides(b, pc, pt, from)...)
	moves = append(moves, g.leaps(b, pc, pt, from)...)
	for _, tag := range pt.Movement.Specials {
		moves = append(moves, g.special(b, pc, pt, from, tag, enPassant)...)
	}
	return moves
}

func (g *Generator) displacementCapable(pt catalog.PieceType) bool {
	return pt.CaptureType.Displaces()
}

func (g *Generator) capturable(target *board.PieceInstance) bool {
	pt := g.Table.MustGet(target.TypeID)
	return pt.CanBeCaptured
}

// slides walks each direction of pt's slide set until off-board or blocked.
func (g *Generator) slides(b *board.Board, pc *board.PieceInstance, pt catalog.PieceType, from board.Position) []Move {
	var out []Move
	for _, dir := range pt.Movement.Slides.Directions() {
		pos := from
		for {
			pos = pos.Add(dir.DFile, dir.DRank)
			if !b.InBounds(pos) {
				break
			}
			occ := b.At(pos)
			if occ == nil {
				out = append(out, Move{From: from, To: pos})
				continue
			}
			if occ.Owner != pc.Owner && g.displacementCapable(pt) && g.capturable(occ) {
				out = append(out, Move{From: from, To: pos, Captures: []board.Position{pos}})
			}
			break
		}
	}
	return out
}

// leaps includes each expanded offset of pt's leap set, ignoring
// intervening squares.
func (g *Generator) leaps(b *board.Board, pc *board.PieceInstance, pt catalog.PieceType, from board.Position) []Move {
	var out []Move
	for _, leap := range pt.Movement.Leaps {
		for _, off := range leap.Expand() {
			pos := from.Add(off.DFile, off.DRank)
			if !b.InBounds(pos) {
				continue
			}
			occ := b.At(pos)
			if occ == nil {
				out = append(out, Move{From: from, To: pos})
				continue
			}
			if occ.Owner != pc.Owner && g.displacementCapable(pt) && g.capturable(occ) {
				out = append(out, Move{From: from, To: pos, Captures: []board.Position{pos}})
			}
		}
	}
	return out
}
