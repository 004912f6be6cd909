// Package attack implements the Attack Oracle (spec §4.3): given a board,
// a target square, and an attacking color, decide whether any attacker
// piece could capture the target on its next move. Displacement attacks
// reuse the move generator directly, mirroring the teacher's
// isSquareAttackedBy (generate the attacker's moves, check membership);
// non-displacement attacks are computed per piece kind since the move
// generator's destinations don't encode where the victim actually sits.
package attack

import (
	"fairychess/internal/board"
	"fairychess/internal/catalog"
	"fairychess/internal/movegen"
)

type Oracle struct {
	Table *catalog.Table
	Gen   *movegen.Generator
}

func NewOracle(table *catalog.Table, gen *movegen.Generator) *Oracle {
	return &Oracle{Table: table, Gen: gen}
}

// Attacks reports whether any live, unfrozen piece of attackerColor could
// capture whatever currently occupies target on its next pseudo-legal
// move. target must hold a piece for non-displacement formulas to apply;
// for displacement attacks it also works against an occupied square.
func (o *Oracle) Attacks(b *board.Board, target board.Position, attackerColor board.Color) bool {
	for _, pc := range b.LiveOf(attackerColor) {
		if pc.IsFrozen {
			continue
		}
		pt := o.Table.MustGet(pc.TypeID)
		if o.displacementAttacks(b, pc, pt, target) {
			return true
		}
		if o.nonDisplacementAttacks(b, pc, pt, target) {
			return true
		}
	}
	return false
}

// SquareAttacked reports whether square would be attacked by attackerColor
// if it held a generic capturable piece of defenderColor. Used by castling
// to test traversed squares that may currently be empty: cheap enough to
// clone since castling legality already clones the board once.
func (o *Oracle) SquareAttacked(b *board.Board, square board.Position, attackerColor, defenderColor board.Color) bool {
	if occ := b.At(square); occ != nil {
		return o.Attacks(b, square, attackerColor)
	}
	clone := b.Clone()
	phantom := clone.NewPiece(catalog.KingID, defenderColor)
	_ = clone.Place(phantom, square)
	return o.Attacks(clone, square, attackerColor)
}

func (o *Oracle) displacementAttacks(b *board.Board, pc *board.PieceInstance, pt catalog.PieceType, target board.Position) bool {
	if !pt.CaptureType.Displaces() {
		return false
	}
	for _, mv := range o.Gen.PseudoLegal(b, pc, nil) {
		if mv.To == target && len(mv.Captures) > 0 {
			for _, c := range mv.Captures {
				if c == target {
					return true
				}
			}
		}
	}
	return false
}

func (o *Oracle) nonDisplacementAttacks(b *board.Board, pc *board.PieceInstance, pt catalog.PieceType, target board.Position) bool {
	switch pt.CaptureType {
	case catalog.CaptureCoordinator:
		return o.coordinatorThreatens(b, pc, target)
	case catalog.CaptureBoxer:
		return o.boxerThreatens(b, pc, target)
	case catalog.CaptureWithdrawal:
		return o.withdrawerThreatens(b, pc, target)
	case catalog.CaptureThief:
		return o.thiefThreatens(b, pc, target)
	case catalog.CaptureLongLeap:
		return o.longLeaperThreatens(b, pc, *pc.Position, target)
	case catalog.CaptureChameleon:
		return o.chameleonThreatens(b, pc, target)
	case catalog.CaptureCannon:
		return o.cannonThreatens(b, pc, *pc.Position, target)
	}
	return false
}

func (o *Oracle) friendlyRoyal(b *board.Board, owner board.Color) *board.PieceInstance {
	for _, pc := range b.LiveOf(owner) {
		if o.Table.MustGet(pc.TypeID).IsRoyal {
			return pc
		}
	}
	return nil
}

// coordinatorThreatens: spec §4.3. For each pseudo-legal destination d, the
// target is threatened if (king.file, d.rank) == target or
// (d.file, king.rank) == target.
func (o *Oracle) coordinatorThreatens(b *board.Board, pc *board.PieceInstance, target board.Position) bool {
	king := o.friendlyRoyal(b, pc.Owner)
	if king == nil {
		return false
	}
	kpos := *king.Position
	for _, mv := range o.Gen.PseudoLegal(b, pc, nil) {
		corner1 := board.Position{File: kpos.File, Rank: mv.To.Rank}
		corner2 := board.Position{File: mv.To.File, Rank: kpos.Rank}
		if corner1 == target || corner2 == target {
			return true
		}
	}
	return false
}

// boxerThreatens: target orthogonally adjacent to a pseudo-legal
// destination d, with a friendly piece sandwiching it from the far side.
func (o *Oracle) boxerThreatens(b *board.Board, pc *board.PieceInstance, target board.Position) bool {
	for _, mv := range o.Gen.PseudoLegal(b, pc, nil) {
		d := mv.To
		df := target.File - d.File
		dr := target.Rank - d.Rank
		if !((df == 0 && (dr == 1 || dr == -1)) || (dr == 0 && (df == 1 || df == -1))) {
			continue
		}
		opp := board.Position{File: target.File + df, Rank: target.Rank + dr}
		if occ := b.At(opp); occ != nil && occ.Owner == pc.Owner {
			return true
		}
	}
	return false
}

// withdrawerThreatens: target must be Chebyshev-1 from the withdrawer; the
// withdrawer must have a pseudo-legal destination directly away from it.
func (o *Oracle) withdrawerThreatens(b *board.Board, pc *board.PieceInstance, target board.Position) bool {
	from := *pc.Position
	df := from.File - target.File
	dr := from.Rank - target.Rank
	if abs(df) > 1 || abs(dr) > 1 || (df == 0 && dr == 0) {
		return false
	}
	for _, mv := range o.Gen.PseudoLegal(b, pc, nil) {
		vf := mv.To.File - from.File
		vr := mv.To.Rank - from.Rank
		if sign(vf) == sign(df) && sign(vr) == sign(dr) && (vf != 0 || vr != 0) {
			return true
		}
	}
	return false
}

// thiefThreatens: any destination d whose movement step (sx,sy), applied
// once more from d, lands on target — and target holds a capturable enemy
// (the king is always treated as capturable for attack purposes).
func (o *Oracle) thiefThreatens(b *board.Board, pc *board.PieceInstance, target board.Position) bool {
	occ := b.At(target)
	if occ == nil || occ.Owner == pc.Owner {
		return false
	}
	if tt := o.Table.MustGet(occ.TypeID); !tt.CanBeCaptured && !tt.IsRoyal {
		return false
	}
	from := *pc.Position
	for _, mv := range o.Gen.PseudoLegal(b, pc, nil) {
		sx := sign(mv.To.File - from.File)
		sy := sign(mv.To.Rank - from.Rank)
		if mv.To.Add(sx, sy) == target {
			return true
		}
	}
	return false
}

// longLeaperThreatens: target on a queen line, distance >= 2, clear path,
// empty square immediately beyond target.
func (o *Oracle) longLeaperThreatens(b *board.Board, pc *board.PieceInstance, from, target board.Position) bool {
	df := target.File - from.File
	dr := target.Rank - from.Rank
	if !(df == 0 || dr == 0 || abs(df) == abs(dr)) {
		return false
	}
	dist := max(abs(df), abs(dr))
	if dist < 2 {
		return false
	}
	sx, sy := sign(df), sign(dr)
	pos := from
	for i := 1; i < dist; i++ {
		pos = pos.Add(sx, sy)
		if b.At(pos) != nil {
			return false
		}
	}
	beyond := target.Add(sx, sy)
	if !b.InBounds(beyond) {
		return false
	}
	return b.At(beyond) == nil
}

// cannonThreatens: a screen piece strictly between pc and target along a
// shared orthogonal line, target immediately past it or further along
// empty squares.
func (o *Oracle) cannonThreatens(b *board.Board, pc *board.PieceInstance, from, target board.Position) bool {
	df := target.File - from.File
	dr := target.Rank - from.Rank
	if df != 0 && dr != 0 {
		return false
	}
	if df == 0 && dr == 0 {
		return false
	}
	sx, sy := sign(df), sign(dr)
	pos := from
	sawScreen := false
	for {
		pos = pos.Add(sx, sy)
		if !b.InBounds(pos) {
			return false
		}
		if pos == target {
			return sawScreen
		}
		if b.At(pos) != nil {
			if sawScreen {
				return false
			}
			sawScreen = true
		}
	}
}

// chameleonThreatens: composite per spec §4.3 — copying any adjacent
// enemy-pawn-style capture, king-one-square if adjacent, herald-line if
// exactly two orthogonal squares away with an empty intermediate, and
// long-leaper lines iff at least one jumped piece is a long-leaper.
func (o *Oracle) chameleonThreatens(b *board.Board, pc *board.PieceInstance, target board.Position) bool {
	from := *pc.Position
	df := target.File - from.File
	dr := target.Rank - from.Rank

	if abs(df) <= 1 && abs(dr) <= 1 && (df != 0 || dr != 0) {
		return true
	}

	if (df == 0 && abs(dr) == 2) || (dr == 0 && abs(df) == 2) {
		mid := board.Position{File: from.File + df/2, Rank: from.Rank + dr/2}
		if b.At(mid) == nil {
			return true
		}
	}

	if df == 0 || dr == 0 || abs(df) == abs(dr) {
		dist := max(abs(df), abs(dr))
		if dist >= 2 {
			sx, sy := sign(df), sign(dr)
			pos := from
			sawLongLeaper := false
			ok := true
			for i := 1; i < dist; i++ {
				pos = pos.Add(sx, sy)
				occ := b.At(pos)
				if occ == nil {
					ok = false
					break
				}
				if occ.Owner == pc.Owner {
					ok = false
					break
				}
				if !o.Table.MustGet(occ.TypeID).CanBeCaptured {
					ok = false
					break
				}
				if o.Table.MustGet(occ.TypeID).ID == catalog.LongLeaperID {
					sawLongLeaper = true
				}
			}
			if ok && sawLongLeaper {
				beyond := target.Add(sx, sy)
				if b.InBounds(beyond) && b.At(beyond) == nil {
					return true
				}
			}
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
