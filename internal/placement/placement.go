// Package placement implements Placement Logic (spec §4.9): turning a
// validated draft pool into pieces on the board, zone by zone, including
// the Herald's pawn-rank true square and file restriction.
package placement

import (
	"errors"

	"fairychess/internal/board"
	"fairychess/internal/catalog"
	"fairychess/internal/draft"
)

var (
	ErrNotCurrentPlacer = errors.New("placement: not this color's turn to place")
	ErrNotInPool        = errors.New("placement: piece type is not available in the pool")
	ErrInvalidZone      = errors.New("placement: square is not in any placement zone")
	ErrWrongTier        = errors.New("placement: piece tier does not match this zone")
	ErrSquareOccupied   = errors.New("placement: square is already occupied")
	ErrHeraldFile       = errors.New("placement: herald may only be placed on an edge file")
	ErrAlreadyDone      = errors.New("placement: placement has already completed")
)

// State is the running placement process for one room's game.
type State struct {
	Table *catalog.Table
	Files int
	Ranks int

	Pools         map[board.Color]draft.Picks
	CurrentPlacer board.Color
	Done          bool

	royaltyPlaced map[board.Color]int
}

// New builds a placement State from two validated drafts. Each pool is
// seeded with the mandatory King unless the draft already picked a
// king-replacer, per spec §4.8's royalty pre-increment note.
func New(table *catalog.Table, files, ranks int, whitePicks, blackPicks draft.Picks) *State {
	return &State{
		Table: table, Files: files, Ranks: ranks,
		Pools: map[board.Color]draft.Picks{
			board.White: seedPool(table, whitePicks),
			board.Black: seedPool(table, blackPicks),
		},
		CurrentPlacer: board.White,
		royaltyPlaced: map[board.Color]int{},
	}
}

func seedPool(table *catalog.Table, picks draft.Picks) draft.Picks {
	pool := draft.Picks{}
	for id, n := range picks {
		pool[id] = n
	}
	hasReplacer := false
	for id := range pool {
		if pt, ok := table.Get(id); ok && pt.ReplacesKing {
			hasReplacer = true
		}
	}
	if !hasReplacer {
		pool[catalog.KingID]++
	}
	return pool
}

func poolEmpty(pool draft.Picks) bool {
	for _, n := range pool {
		if n > 0 {
			return false
		}
	}
	return true
}

func backRank(ranks int, c board.Color) int {
	if c == board.White {
		return 0
	}
	return ranks - 1
}

func pawnRank(ranks int, c board.Color) int {
	if c == board.White {
		return 1
	}
	return ranks - 2
}

func centerFiles(files int) (int, int) {
	return files/2 - 1, files / 2
}

// zoneTier reports the tier a square at (file, rank) accepts for color,
// per spec §4.9, and whether the square lies in any zone at all.
func (s *State) zoneTier(file, rank int, c board.Color) (catalog.Tier, bool) {
	c1, c2 := centerFiles(s.Files)
	switch rank {
	case backRank(s.Ranks, c):
		if file == c1 || file == c2 {
			return catalog.TierRoyalty, true
		}
		return catalog.TierPiece, true
	case pawnRank(s.Ranks, c):
		return catalog.TierPawn, true
	default:
		return 0, false
	}
}

// PawnSwap records a pawn evicted from the pawn rank up to the back rank
// by a Herald snapping onto its pawn-rank square, per spec §4.9/§6 and scenario 6
// (spec.md:251).
type PawnSwap struct {
	PawnID      int
	NewPosition board.Position
}

// Result carries what actually happened for a Place call, beyond the
// error/no-error verdict: the square the piece actually landed on (which
// may differ from the nominal target for a Herald snap) and any pawn the
// snap evicted.
type Result struct {
	ActualPosition board.Position
	PawnSwap       *PawnSwap
}

// Place attempts to place one instance of typeID from color's pool onto
// the square nominally targeted, applying the Herald snap/swap exceptions,
// then advances CurrentPlacer per the alternating-with-exhaustion rule.
func (s *State) Place(b *board.Board, c board.Color, typeID string, target board.Position) (Result, error) {
	if s.Done {
		return Result{}, ErrAlreadyDone
	}
	if c != s.CurrentPlacer {
		return Result{}, ErrNotCurrentPlacer
	}
	pool := s.Pools[c]
	if pool[typeID] <= 0 {
		return Result{}, ErrNotInPool
	}
	pt := s.Table.MustGet(typeID)

	if typeID == catalog.HeraldID {
		if target.File != 0 && target.File != s.Files-1 {
			return Result{}, ErrHeraldFile
		}
	}

	nominalTier, ok := s.zoneTier(target.File, target.Rank, c)
	if !ok {
		return Result{}, ErrInvalidZone
	}

	actual := target
	var swapUp *board.PieceInstance

	switch {
	case typeID == catalog.HeraldID && nominalTier != catalog.TierPawn:
		actual = board.Position{File: target.File, Rank: pawnRank(s.Ranks, c)}
		if occ := b.At(actual); occ != nil {
			if s.Table.MustGet(occ.TypeID).Tier != catalog.TierPawn {
				return Result{}, ErrSquareOccupied
			}
			swapUp = occ
		}
	case pt.Tier == catalog.TierPawn && nominalTier != catalog.TierPawn:
		heraldSq := board.Position{File: target.File, Rank: pawnRank(s.Ranks, c)}
		occ := b.At(heraldSq)
		if occ == nil || occ.TypeID != catalog.HeraldID {
			return Result{}, ErrWrongTier
		}
	default:
		if pt.Tier != nominalTier {
			return Result{}, ErrWrongTier
		}
		if b.At(actual) != nil {
			return Result{}, ErrSquareOccupied
		}
	}

	var swap *PawnSwap
	if swapUp != nil {
		backSq := board.Position{File: target.File, Rank: backRank(s.Ranks, c)}
		b.Relocate(swapUp, backSq)
		swap = &PawnSwap{PawnID: swapUp.ID, NewPosition: backSq}
	}

	pc := b.NewPiece(typeID, c)
	if err := b.Place(pc, actual); err != nil {
		return Result{}, err
	}
	if pt.Tier == catalog.TierRoyalty {
		s.royaltyPlaced[c]++
	}

	pool[typeID]--
	if pool[typeID] == 0 {
		delete(pool, typeID)
	}

	s.advance()
	return Result{ActualPosition: actual, PawnSwap: swap}, nil
}

func (s *State) advance() {
	other := s.CurrentPlacer.Opposite()
	if poolEmpty(s.Pools[board.White]) && poolEmpty(s.Pools[board.Black]) {
		s.Done = true
		return
	}
	if poolEmpty(s.Pools[other]) {
		return
	}
	s.CurrentPlacer = other
}

// Finish freezes hadMultipleRoyals on b once placement is complete.
func (s *State) Finish(b *board.Board) {
	b.HadMultipleRoyals[board.White] = s.royaltyPlaced[board.White] > 1
	b.HadMultipleRoyals[board.Black] = s.royaltyPlaced[board.Black] > 1
}
