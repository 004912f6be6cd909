package movegen

import "fairychess/internal/board"

// ApplyMove performs the board-mutation core shared by the Check &
// Legality Filter and the Move Executor (spec §4.4, §4.6 steps 2-5):
// remove every captured piece, relocate the mover and mark it moved,
// relocate a castling partner or swap partner, and rebuild the index.
// Promotion, en-passant bookkeeping, freeze recomputation, and turn
// advancement are the caller's responsibility — they differ between a
// throwaway legality probe and a committed executor step.
func ApplyMove(b *board.Board, pc *board.PieceInstance, mv Move) []*board.PieceInstance {
	var captured []*board.PieceInstance
	for _, sq := range mv.Captures {
		if victim := b.At(sq); victim != nil {
			captured = append(captured, victim)
			b.Remove(victim)
		}
	}
	if mv.Swap {
		if partner := b.At(mv.SwapWith); partner != nil {
			origin := *pc.Position
			b.Relocate(partner, origin)
		}
	}
	b.Relocate(pc, mv.To)
	pc.HasMoved = true
	if mv.Castle {
		if partner := b.At(mv.PartnerFrom); partner != nil {
			b.Relocate(partner, mv.PartnerTo)
			partner.HasMoved = true
		}
	}
	return captured
}
