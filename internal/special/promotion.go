package special

import (
	"fairychess/internal/board"
	"fairychess/internal/catalog"
)

// PromotionRank returns the far edge rank for color on a board with the
// given rank count.
func PromotionRank(ranks int, c board.Color) int {
	if c == board.White {
		return ranks - 1
	}
	return 0
}

// NeedsPromotion reports whether pc, having just moved to its current
// square, must promote: it is pawn-like and has reached the opposite
// edge rank.
func NeedsPromotion(table *catalog.Table, b *board.Board, pc *board.PieceInstance) bool {
	if pc.Position == nil {
		return false
	}
	pt := table.MustGet(pc.TypeID)
	if !pt.IsPawnLike() {
		return false
	}
	return pc.Position.Rank == PromotionRank(b.Ranks, pc.Owner)
}

// PromotionOptions computes the option set per spec §4.5: every catalog
// entry currently present on the board satisfying tier != pawn, not
// royal-mandatory, does not replace the king, and captureType != none.
// Fool promotes only to Jester. An empty computed set (no eligible type
// is currently on the board) falls back to {Queen, Rook, Bishop, Knight}.
func PromotionOptions(table *catalog.Table, b *board.Board, pc *board.PieceInstance) []string {
	if pc.TypeID == catalog.FoolID {
		return []string{catalog.JesterID}
	}
	seen := make(map[string]bool)
	var out []string
	for _, live := range b.Live() {
		if seen[live.TypeID] {
			continue
		}
		pt := table.MustGet(live.TypeID)
		if pt.PromotionEligible() {
			seen[live.TypeID] = true
			out = append(out, live.TypeID)
		}
	}
	if len(out) == 0 {
		return []string{catalog.QueenID, catalog.RookID, catalog.BishopID, catalog.KnightID}
	}
	return out
}
