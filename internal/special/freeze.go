package special

import (
	"fairychess/internal/board"
	"fairychess/internal/catalog"
)

// RecomputeFreeze recomputes every live piece's IsFrozen flag from
// scratch, per spec §4.5. A piece is frozen iff some other piece on the
// board is Chebyshev-1 adjacent to it and: the other is a Herald (freezes
// any color), or the other canFreeze and is of the opposing color, or the
// other is a Chameleon and the subject itself canFreeze and is of the
// opposing color to the Chameleon. Idempotent and O(n^2), acceptable per
// the piece counts this engine deals with.
func RecomputeFreeze(table *catalog.Table, b *board.Board) {
	live := b.Live()
	for _, subject := range live {
		subject.IsFrozen = false
	}
	for _, subject := range live {
		spt := table.MustGet(subject.TypeID)
		for _, other := range live {
			if other.ID == subject.ID {
				continue
			}
			if !adjacent(*subject.Position, *other.Position) {
				continue
			}
			opt := table.MustGet(other.TypeID)
			if opt.ID == catalog.HeraldID {
				subject.IsFrozen = true
				break
			}
			if opt.CanFreeze && other.Owner != subject.Owner {
				subject.IsFrozen = true
				break
			}
			if opt.ID == catalog.ChameleonID && spt.CanFreeze && other.Owner != subject.Owner {
				subject.IsFrozen = true
				break
			}
		}
	}
}

func adjacent(a, b board.Position) bool {
	df := a.File - b.File
	dr := a.Rank - b.Rank
	if df == 0 && dr == 0 {
		return false
	}
	return abs(df) <= 1 && abs(dr) <= 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
