package movegen

import "fairychess/internal/board"
import "fairychess/internal/catalog"

// special dispatches a single tagged movement behavior, per spec §4.2.
func (g *Generator) special(b *board.Board, pc *board.PieceInstance, pt catalog.PieceType, from board.Position, tag catalog.SpecialTag, enPassant *board.Position) []Move {
	switch tag {
	case catalog.SpecialPawnForward:
		return g.pawnForward(b, pc, from)
	case catalog.SpecialPawnCaptureDiagonal:
		return g.pawnCaptureDiagonal(b, pc, pt, from, enPassant)
	case catalog.SpecialShogiPawn:
		return g.shogiPawn(b, pc, pt, from)
	case catalog.SpecialPeasantDiagonal:
		return g.peasantDiagonal(b, pc, from)
	case catalog.SpecialPeasantCaptureForward:
		return g.peasantCaptureForward(b, pc, pt, from)
	case catalog.SpecialKingOneSquare:
		return g.kingOneSquare(b, pc, pt, from)
	case catalog.SpecialSwapAdjacent:
		return g.swapAdjacent(b, pc, from)
	case catalog.SpecialHeraldOrthogonal:
		return g.heraldOrthogonal(b, pc, from)
	case catalog.SpecialRegentConditional:
		return g.regentConditional(b, pc, from)
	case catalog.SpecialBounce:
		return g.bounce(b, pc, pt, from)
	case catalog.SpecialLongLeap:
		return g.longLeap(b, pc, from)
	case catalog.SpecialChameleon:
		return g.chameleon(b, pc, from)
	case catalog.SpecialGrasshopper:
		return g.grasshopper(b, pc, pt, from)
	case catalog.SpecialCannonMove:
		return g.cannonMove(b, pc, from)
	case catalog.SpecialNightrider:
		return g.nightrider(b, pc, pt, from)
	default:
		return nil
	}
}

func forwardDir(c board.Color) int {
	if c == board.White {
		return 1
	}
	return -1
}

func pawnStartRank(b *board.Board, c board.Color) int {
	if c == board.White {
		return 1
	}
	return b.Ranks - 2
}

func promotionRank(b *board.Board, c board.Color) int {
	if c == board.White {
		return b.Ranks - 1
	}
	return 0
}

// pawnForward: one square forward if empty; two if unmoved and on the
// starting rank band and both squares are empty.
func (g *Generator) pawnForward(b *board.Board, pc *board.PieceInstance, from board.Position) []Move {
	var out []Move
	dir := forwardDir(pc.Owner)
	one := from.Add(0, dir)
	if !b.InBounds(one) || b.At(one) != nil {
		return out
	}
	out = append(out, Move{From: from, To: one})
	if !pc.HasMoved && from.Rank == pawnStartRank(b, pc.Owner) {
		two := from.Add(0, 2*dir)
		if b.InBounds(two) && b.At(two) == nil {
			out = append(out, Move{From: from, To: two})
		}
	}
	return out
}

// pawnCaptureDiagonal: the two diagonally-forward squares, each included
// iff occupied by a capturable enemy, or matching the en-passant target.
func (g *Generator) pawnCaptureDiagonal(b *board.Board, pc *board.PieceInstance, pt catalog.PieceType, from board.Position, enPassant *board.Position) []Move {
	var out []Move
	dir := forwardDir(pc.Owner)
	for _, df := range []int{-1, 1} {
		to := from.Add(df, dir)
		if !b.InBounds(to) {
			continue
		}
		if occ := b.At(to); occ != nil {
			if occ.Owner != pc.Owner && g.capturable(occ) {
				out = append(out, Move{From: from, To: to, Captures: []board.Position{to}})
			}
			continue
		}
		if enPassant != nil && *enPassant == to {
			capSq := board.Position{File: to.File, Rank: from.Rank}
			out = append(out, Move{From: from, To: to, EnPassant: true, EnPassantCapture: capSq, Captures: []board.Position{capSq}})
		}
	}
	return out
}

// shogiPawn: one square forward, empty-move or displacement capture. No
// diagonal capture.
func (g *Generator) shogiPawn(b *board.Board, pc *board.PieceInstance, pt catalog.PieceType, from board.Position) []Move {
	dir := forwardDir(pc.Owner)
	to := from.Add(0, dir)
	if !b.InBounds(to) {
		return nil
	}
	occ := b.At(to)
	if occ == nil {
		return []Move{{From: from, To: to}}
	}
	if occ.Owner != pc.Owner && g.displacementCapable(pt) && g.capturable(occ) {
		return []Move{{From: from, To: to, Captures: []board.Position{to}}}
	}
	return nil
}

// peasantDiagonal (Berolina non-capturing move): one diagonally forward,
// two on first move if the path is clear; never captures.
func (g *Generator) peasantDiagonal(b *board.Board, pc *board.PieceInstance, from board.Position) []Move {
	var out []Move
	dir := forwardDir(pc.Owner)
	for _, df := range []int{-1, 1} {
		one := from.Add(df, dir)
		if !b.InBounds(one) || b.At(one) != nil {
			continue
		}
		out = append(out, Move{From: from, To: one})
		if !pc.HasMoved && from.Rank == pawnStartRank(b, pc.Owner) {
			two := from.Add(2*df, 2*dir)
			if b.InBounds(two) && b.At(two) == nil {
				out = append(out, Move{From: from, To: two})
			}
		}
	}
	return out
}

// peasantCaptureForward (Berolina capture): straight forward, capture only.
func (g *Generator) peasantCaptureForward(b *board.Board, pc *board.PieceInstance, pt catalog.PieceType, from board.Position) []Move {
	dir := forwardDir(pc.Owner)
	to := from.Add(0, dir)
	if !b.InBounds(to) {
		return nil
	}
	occ := b.At(to)
	if occ != nil && occ.Owner != pc.Owner && g.displacementCapable(pt) && g.capturable(occ) {
		return []Move{{From: from, To: to, Captures: []board.Position{to}}}
	}
	return nil
}

var eightNeighbors = catalog.SlideAll.Directions()

// kingOneSquare: 8 neighbors, standard capture rules with a capturable guard.
func (g *Generator) kingOneSquare(b *board.Board, pc *board.PieceInstance, pt catalog.PieceType, from board.Position) []Move {
	var out []Move
	for _, d := range eightNeighbors {
		to := from.Add(d.DFile, d.DRank)
		if !b.InBounds(to) {
			continue
		}
		occ := b.At(to)
		if occ == nil {
			out = append(out, Move{From: from, To: to})
			continue
		}
		if occ.Owner != pc.Owner && g.displacementCapable(pt) && g.capturable(occ) {
			out = append(out, Move{From: from, To: to, Captures: []board.Position{to}})
		}
	}
	return out
}

// swapAdjacent: the 8 neighbors holding a friendly piece are valid
// destinations; executing swaps the two pieces' positions.
func (g *Generator) swapAdjacent(b *board.Board, pc *board.PieceInstance, from board.Position) []Move {
	var out []Move
	for _, d := range eightNeighbors {
		to := from.Add(d.DFile, d.DRank)
		if !b.InBounds(to) {
			continue
		}
		occ := b.At(to)
		if occ != nil && occ.Owner == pc.Owner {
			out = append(out, Move{From: from, To: to, Swap: true, SwapWith: to})
		}
	}
	return out
}

// heraldOrthogonal: exactly 2 squares orthogonally, blocked if the
// intermediate square is occupied. Herald cannot capture, so the
// destination must be empty.
func (g *Generator) heraldOrthogonal(b *board.Board, pc *board.PieceInstance, from board.Position) []Move {
	var out []Move
	for _, d := range catalog.SlideOrthogonal.Directions() {
		mid := from.Add(d.DFile, d.DRank)
		to := from.Add(2*d.DFile, 2*d.DRank)
		if !b.InBounds(to) || !b.InBounds(mid) {
			continue
		}
		if b.At(mid) != nil {
			continue
		}
		if b.At(to) == nil {
			out = append(out, Move{From: from, To: to})
		}
	}
	return out
}

// regentConditional: queen-slide if the owner ever drafted multiple
// royalty-tier pieces and no other royalty-tier piece of theirs currently
// exists on the board; otherwise a two-square any-direction move blocked
// by an occupied first square (herald-orthogonal-like but 8-directional).
func (g *Generator) regentConditional(b *board.Board, pc *board.PieceInstance, from board.Position) []Move {
	if g.otherRoyaltyExists(b, pc) || !b.HadMultipleRoyals[pc.Owner] {
		return g.regentRestricted(b, pc, from)
	}
	return g.slides(b, pc, withSlideOverride(g.Table.MustGet(pc.TypeID), catalog.SlideAll), from)
}

func (g *Generator) otherRoyaltyExists(b *board.Board, pc *board.PieceInstance) bool {
	for _, other := range b.LiveOf(pc.Owner) {
		if other.ID == pc.ID {
			continue
		}
		if g.Table.MustGet(other.TypeID).Tier == catalog.TierRoyalty {
			return true
		}
	}
	return false
}

func (g *Generator) regentRestricted(b *board.Board, pc *board.PieceInstance, from board.Position) []Move {
	var out []Move
	pt := g.Table.MustGet(pc.TypeID)
	for _, d := range eightNeighbors {
		mid := from.Add(d.DFile, d.DRank)
		to := from.Add(2*d.DFile, 2*d.DRank)
		if !b.InBounds(to) || !b.InBounds(mid) {
			continue
		}
		if b.At(mid) != nil {
			continue
		}
		occ := b.At(to)
		if occ == nil {
			out = append(out, Move{From: from, To: to})
			continue
		}
		if occ.Owner != pc.Owner && g.displacementCapable(pt) && g.capturable(occ) {
			out = append(out, Move{From: from, To: to, Captures: []board.Position{to}})
		}
	}
	return out
}

// withSlideOverride returns a copy of pt with Slides overridden and
// leaps/specials/capture kind reset to a plain slider, used by Regent's
// conditional-queen fallback without mutating the catalog.
func withSlideOverride(pt catalog.PieceType, s catalog.SlideSet) catalog.PieceType {
	out := pt
	out.Movement.Slides = s
	out.Movement.Leaps = nil
	out.Movement.Specials = nil
	out.CaptureType = catalog.CaptureStandard
	return out
}

// grasshopper: along each of the 8 queen lines, slide to the first occupied
// square (the hurdle) and land on the square immediately beyond, which
// must be empty or a capturable enemy.
func (g *Generator) grasshopper(b *board.Board, pc *board.PieceInstance, pt catalog.PieceType, from board.Position) []Move {
	var out []Move
	for _, d := range catalog.SlideAll.Directions() {
		pos := from
		var hurdle *board.PieceInstance
		for {
			pos = pos.Add(d.DFile, d.DRank)
			if !b.InBounds(pos) {
				break
			}
			if occ := b.At(pos); occ != nil {
				hurdle = occ
				break
			}
		}
		if hurdle == nil {
			continue
		}
		land := pos.Add(d.DFile, d.DRank)
		if !b.InBounds(land) {
			continue
		}
		occ := b.At(land)
		if occ == nil {
			out = append(out, Move{From: from, To: land})
		} else if occ.Owner != pc.Owner && g.displacementCapable(pt) && g.capturable(occ) {
			out = append(out, Move{From: from, To: land, Captures: []board.Position{land}})
		}
	}
	return out
}

// nightrider: knight vector repeated in a fixed direction until blocked.
func (g *Generator) nightrider(b *board.Board, pc *board.PieceInstance, pt catalog.PieceType, from board.Position) []Move {
	var out []Move
	knightVectors := catalog.Leap{Vector: catalog.Vector{DFile: 1, DRank: 2}, Symmetric: true}.Expand()
	for _, d := range knightVectors {
		pos := from
		for {
			pos = pos.Add(d.DFile, d.DRank)
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

// cannonMove: orthogonal lines; non-capturing moves slide to empty
// squares. Capturing requires exactly one intervening piece (the screen,
// either color) with the target a capturable enemy immediately after
// further empty squares; the capture is non-displacement, so the cannon
// stays put while the target square is cleared.
func (g *Generator) cannonMove(b *board.Board, pc *board.PieceInstance, from board.Position) []Move {
	var out []Move
	for _, d := range catalog.SlideOrthogonal.Directions() {
		pos := from
		for {
			pos = pos.Add(d.DFile, d.DRank)
			if !b.InBounds(pos) {
				break
			}
			if b.At(pos) != nil {
				break
			}
			out = append(out, Move{From: from, To: pos})
		}
		if !b.InBounds(pos) {
			continue
		}
		screen := b.At(pos)
		if screen == nil {
			continue
		}
		target := pos
		for {
			target = target.Add(d.DFile, d.DRank)
			if !b.InBounds(target) {
				break
			}
			occ := b.At(target)
			if occ == nil {
				continue
			}
			if occ.Owner != pc.Owner && g.capturable(occ) {
				out = append(out, Move{From: from, To: from, Captures: []board.Position{target}})
			}
			break
		}
	}
	return out
}
