package movegen

import (
	"fairychess/internal/board"
	"fairychess/internal/catalog"
)

// bounce (Pontiff): diagonal slide that reflects off a board edge instead
// of stopping there. A reflection off a file edge flips the file component
// of the direction; off a rank edge flips the rank component; a corner
// flips both. The trajectory terminates the moment it would revisit a
// square already visited this move, or when it reaches an occupied square
// (stopping before a friendly, capturing and stopping on a capturable
// enemy). A hard step cap guards against a reflection pattern that cycles
// without revisiting the exact same square (not possible on a finite grid,
// but cheap insurance is still bounded, not unbounded).
func (g *Generator) bounce(b *board.Board, pc *board.PieceInstance, pt catalog.PieceType, from board.Position) []Move {
	var out []Move
	for _, start := range catalog.SlideDiagonal.Directions() {
		dir := start
		pos := from
		visited := map[board.Position]bool{from: true}
		steps := 0
		maxSteps := (b.Files + b.Ranks) * 4
		for steps < maxSteps {
			steps++
			next := pos.Add(dir.DFile, dir.DRank)
			flippedFile, flippedRank := dir.DFile, dir.DRank
			if next.File < 0 || next.File >= b.Files {
				flippedFile = -dir.DFile
			}
			if next.Rank < 0 || next.Rank >= b.Ranks {
				flippedRank = -dir.DRank
			}
			if flippedFile != dir.DFile || flippedRank != dir.DRank {
				dir = catalog.Vector{DFile: flippedFile, DRank: flippedRank}
				next = pos.Add(dir.DFile, dir.DRank)
			}
			if !b.InBounds(next) {
				break
			}
			if visited[next] {
				break
			}
			occ := b.At(next)
			if occ == nil {
				out = append(out, Move{From: from, To: next})
				visited[next] = true
				pos = next
				continue
			}
			if occ.Owner != pc.Owner && g.capturable(occ) {
				out = append(out, Move{From: from, To: next, Captures: []board.Position{next}})
			}
			break
		}
	}
	return out
}

// longLeap (Long-Leaper): queen-line non-capturing slides, plus jumps over
// runs of capturable enemies along a line. Walking a direction, every
// empty square before any enemy is a plain slide destination. On meeting
// a capturable enemy the square is provisionally captured and scanning
// continues; a run of consecutive capturable enemies is eaten as a block,
// and every empty square after it is a landing square carrying all
// captures accumulated so far. Scanning continues past each landing
// square, so a single move may chain through multiple separated runs in
// the same direction. A friendly piece, an off-board edge, or an
// uncapturable piece (Fool, Jester) blocks the line outright.
func (g *Generator) longLeap(b *board.Board, pc *board.PieceInstance, from board.Position) []Move {
	var out []Move
	for _, dir := range catalog.SlideAll.Directions() {
		pos := from
		var captures []board.Position
		for {
			pos = pos.Add(dir.DFile, dir.DRank)
			if !b.InBounds(pos) {
				break
			}
			occ := b.At(pos)
			if occ == nil {
				if len(captures) == 0 {
					out = append(out, Move{From: from, To: pos})
				} else {
					cc := make([]board.Position, len(captures))
					copy(cc, captures)
					out = append(out, Move{From: from, To: pos, Captures: cc})
				}
				continue
			}
			if occ.Owner == pc.Owner {
				break
			}
			if !g.capturable(occ) {
				break
			}
			captures = append(captures, pos)
		}
	}
	return out
}

// findRoyal locates owner's royal piece, used by Chameleon's coordinator
// mimicry (which requires a friendly anchor point).
func findRoyal(b *board.Board, table *catalog.Table, owner board.Color) *board.PieceInstance {
	for _, pc := range b.LiveOf(owner) {
		if table.MustGet(pc.TypeID).IsRoyal {
			return pc
		}
	}
	return nil
}

// chameleon: the union of (a) a non-capturing queen slide, (b) for each
// capturable enemy with a standard capture type, a displacement capture
// reachable by copying that enemy's slides and leaps from the Chameleon's
// square (the enemy's tagged specials are not copied, so an enemy that
// moves only by specials, such as a pawn or king, is never captured
// through this channel), (c) coordinator/boxer/withdrawer/cannon-style non-displacement
// captures against enemies of exactly those kinds, and (d) long-leaper
// style jump chains against enemy long-leapers. It never recurses into
// another Chameleon: channel (b) only fires for CaptureStandard enemies,
// and channels (c)/(d) are hardcoded to their named kinds.
func (g *Generator) chameleon(b *board.Board, pc *board.PieceInstance, from board.Position) []Move {
	var out []Move
	out = append(out, g.slides(b, pc, catalog.PieceType{Movement: catalog.Movement{Slides: catalog.SlideAll}, CaptureType: catalog.CaptureNone}, from)...)

	for _, enemy := range b.LiveOf(pc.Owner.Opposite()) {
		ept := g.Table.MustGet(enemy.TypeID)
		target := *enemy.Position
		switch ept.CaptureType {
		case catalog.CaptureStandard:
			if !ept.CanBeCaptured {
				continue
			}
			mimic := ept
			for _, mv := range g.slides(b, pc, mimic, from) {
				if mv.To == target && len(mv.Captures) > 0 {
					out = append(out, mv)
				}
			}
			for _, mv := range g.leaps(b, pc, mimic, from) {
				if mv.To == target && len(mv.Captures) > 0 {
					out = append(out, mv)
				}
			}
		case catalog.CaptureCoordinator:
			out = append(out, g.coordinatorMimic(b, pc, from, target)...)
		case catalog.CaptureBoxer:
			out = append(out, g.boxerMimic(b, pc, from, target)...)
		case catalog.CaptureWithdrawal:
			out = append(out, g.withdrawerMimic(b, pc, from, target)...)
		case catalog.CaptureCannon:
			out = append(out, g.cannonMimicCapture(b, pc, from, target)...)
		case catalog.CaptureLongLeap:
			out = append(out, g.longLeapMimic(b, pc, from, target)...)
		}
	}
	return out
}

// coordinatorMimic: destinations d from which (kingFile(d's rank line),
// rankOf) — i.e. the square at the intersection of the Chameleon's file/
// rank after moving and the friendly royal's rank/file — lands on target.
func (g *Generator) coordinatorMimic(b *board.Board, pc *board.PieceInstance, from, target board.Position) []Move {
	king := findRoyal(b, g.Table, pc.Owner)
	if king == nil {
		return nil
	}
	kpos := *king.Position
	var out []Move
	dests := g.slides(b, pc, catalog.PieceType{Movement: catalog.Movement{Slides: catalog.SlideAll}, CaptureType: catalog.CaptureNone}, from)
	for _, mv := range dests {
		corner1 := board.Position{File: kpos.File, Rank: mv.To.Rank}
		corner2 := board.Position{File: mv.To.File, Rank: kpos.Rank}
		if corner1 == target || corner2 == target {
			out = append(out, Move{From: from, To: mv.To, Captures: []board.Position{target}})
		}
	}
	return out
}

// boxerMimic: destinations d (orthogonal slide) from which target is
// orthogonally adjacent to d, and the square on the far side of target
// from d holds a friendly piece.
func (g *Generator) boxerMimic(b *board.Board, pc *board.PieceInstance, from, target board.Position) []Move {
	var out []Move
	dests := g.slides(b, pc, catalog.PieceType{Movement: catalog.Movement{Slides: catalog.SlideOrthogonal}, CaptureType: catalog.CaptureNone}, from)
	for _, mv := range dests {
		d := mv.To
		if chebyshevAdjacentOrthogonal(d, target) {
			opp := board.Position{File: target.File + (target.File - d.File), Rank: target.Rank + (target.Rank - d.Rank)}
			if occ := b.At(opp); occ != nil && occ.Owner == pc.Owner {
				out = append(out, Move{From: from, To: d, Captures: []board.Position{target}})
			}
		}
	}
	return out
}

func chebyshevAdjacentOrthogonal(a, b board.Position) bool {
	df := a.File - b.File
	dr := a.Rank - b.Rank
	if df == 0 && (dr == 1 || dr == -1) {
		return true
	}
	if dr == 0 && (df == 1 || df == -1) {
		return true
	}
	return false
}

// withdrawerMimic: the Chameleon must be Chebyshev-adjacent to target;
// it then slides directly away from target along that same line.
func (g *Generator) withdrawerMimic(b *board.Board, pc *board.PieceInstance, from, target board.Position) []Move {
	df := from.File - target.File
	dr := from.Rank - target.Rank
	if max(abs(df), abs(dr)) != 1 {
		return nil
	}
	dir := catalog.Vector{DFile: sign(df), DRank: sign(dr)}
	var out []Move
	pos := from
	for {
		pos = pos.Add(dir.DFile, dir.DRank)
		if !b.InBounds(pos) || b.At(pos) != nil {
			break
		}
		out = append(out, Move{From: from, To: pos, Captures: []board.Position{target}})
	}
	return out
}

// cannonMimicCapture: the Chameleon needs a screen piece (either color)
// somewhere strictly between from and target along a shared orthogonal
// line, with target immediately past the screen or further along empty
// squares. The capture is non-displacement: the Chameleon does not move.
func (g *Generator) cannonMimicCapture(b *board.Board, pc *board.PieceInstance, from, target board.Position) []Move {
	df := target.File - from.File
	dr := target.Rank - from.Rank
	if df != 0 && dr != 0 {
		return nil
	}
	if df == 0 && dr == 0 {
		return nil
	}
	dir := catalog.Vector{DFile: sign(df), DRank: sign(dr)}
	pos := from
	sawScreen := false
	for {
		pos = pos.Add(dir.DFile, dir.DRank)
		if !b.InBounds(pos) {
			return nil
		}
		if pos == target {
			if sawScreen {
				return []Move{{From: from, To: from, Captures: []board.Position{target}}}
			}
			return nil
		}
		if b.At(pos) != nil {
			if sawScreen {
				return nil
			}
			sawScreen = true
		}
	}
}

// longLeapMimic: jump chains against a single enemy long-leaper, via the
// same run logic as longLeap but restricted to runs that include target.
func (g *Generator) longLeapMimic(b *board.Board, pc *board.PieceInstance, from, target board.Position) []Move {
	df := target.File - from.File
	dr := target.Rank - from.Rank
	sf, sr := sign(df), sign(dr)
	if !(df == 0 || dr == 0 || abs(df) == abs(dr)) {
		return nil
	}
	dir := catalog.Vector{DFile: sf, DRank: sr}
	var out []Move
	pos := from
	var captures []board.Position
	hitTarget := false
	for {
		pos = pos.Add(dir.DFile, dir.DRank)
		if !b.InBounds(pos) {
			break
		}
		occ := b.At(pos)
		if occ == nil {
			if hitTarget && len(captures) > 0 {
				cc := make([]board.Position, len(captures))
				copy(cc, captures)
				out = append(out, Move{From: from, To: pos, Captures: cc})
			}
			continue
		}
		if occ.Owner == pc.Owner || !g.capturable(occ) {
			break
		}
		captures = append(captures, pos)
		if pos == target {
			hitTarget = true
		}
	}
	return out
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

