// Package special implements the cross-cutting mechanics spec §4.5 groups
// separately from ordinary piece movement: castling (which depends on
// check state and a partner piece, not just the royal's own movement
// table), en-passant target lifecycle, promotion option computation, and
// freeze aura recomputation.
package special

import (
	"fairychess/internal/attack"
	"fairychess/internal/board"
	"fairychess/internal/catalog"
	"fairychess/internal/movegen"
)

type Castling struct {
	Table  *catalog.Table
	Oracle *attack.Oracle
}

func NewCastling(table *catalog.Table, oracle *attack.Oracle) *Castling {
	return &Castling{Table: table, Oracle: oracle}
}

// Candidates returns every legal castling move available to royal, per
// spec §4.5: royal and partner both unmoved, on the same home rank;
// partner has CanCastle and is not itself royal; the pair is not
// file-adjacent; every square strictly between them is empty; the royal
// is not currently in check; and every square the royal crosses,
// including its destination, is unattacked.
func (c *Castling) Candidates(b *board.Board, royal *board.PieceInstance) []movegen.Move {
	rt := c.Table.MustGet(royal.TypeID)
	if !rt.IsRoyal || royal.HasMoved {
		return nil
	}
	home := homeRank(b, royal.Owner)
	if royal.Position.Rank != home {
		return nil
	}
	if c.Oracle.Attacks(b, *royal.Position, royal.Owner.Opposite()) {
		return nil
	}

	var out []movegen.Move
	for _, partner := range b.LiveOf(royal.Owner) {
		if partner.ID == royal.ID || partner.HasMoved {
			continue
		}
		pt := c.Table.MustGet(partner.TypeID)
		if !pt.CanCastle || pt.IsRoyal {
			continue
		}
		if partner.Position.Rank != home {
			continue
		}
		if mv, ok := c.buildMove(b, royal, partner, home); ok {
			out = append(out, mv)
		}
	}
	return out
}

func (c *Castling) buildMove(b *board.Board, royal, partner *board.PieceInstance, home int) (movegen.Move, bool) {
	rf := royal.Position.File
	pf := partner.Position.File
	dist := pf - rf
	if dist == 1 || dist == -1 {
		return movegen.Move{}, false
	}
	dir := 1
	if dist < 0 {
		dir = -1
	}
	lo, hi := rf, pf
	if lo > hi {
		lo, hi = hi, lo
	}
	for f := lo + 1; f < hi; f++ {
		if b.At(board.Position{File: f, Rank: home}) != nil {
			return movegen.Move{}, false
		}
	}

	dest := board.Position{File: rf + 2*dir, Rank: home}
	partnerDest := board.Position{File: rf + dir, Rank: home}
	if !b.InBounds(dest) || !b.InBounds(partnerDest) {
		return movegen.Move{}, false
	}

	attacker := royal.Owner.Opposite()
	step := board.Position{File: rf + dir, Rank: home}
	if c.Oracle.SquareAttacked(b, step, attacker, royal.Owner) {
		return movegen.Move{}, false
	}
	if c.Oracle.SquareAttacked(b, dest, attacker, royal.Owner) {
		return movegen.Move{}, false
	}

	return movegen.Move{
		From:        *royal.Position,
		To:          dest,
		Castle:      true,
		PartnerFrom: *partner.Position,
		PartnerTo:   partnerDest,
	}, true
}

func homeRank(b *board.Board, c board.Color) int {
	if c == board.White {
		return 0
	}
	return b.Ranks - 1
}
