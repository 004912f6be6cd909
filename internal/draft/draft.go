// Package draft implements Draft Logic (spec §4.8): validating a set of
// piece picks against budget, per-tier slot caps, and per-type hard caps
// before a room transitions from drafting into placement.
package draft

import (
	"errors"
	"fmt"

	"fairychess/internal/catalog"
)

var (
	ErrOverBudget       = errors.New("draft: budget spent exceeds budget")
	ErrTierCapExceeded  = errors.New("draft: tier slot cap exceeded")
	ErrTypeCapExceeded  = errors.New("draft: per-type cap exceeded")
	ErrMultipleReplacers = errors.New("draft: at most one king-replacer may be drafted")
	ErrUnknownType      = errors.New("draft: unknown piece type id")
)

// Picks maps a catalog type id to how many of that type are drafted.
type Picks map[string]int

// TierCaps holds the slot caps for pawn/piece/royalty tiers on one board
// size, per spec §4.8's "8/6/2 for 8x8, 10/8/2 for 10x8 and 10x10".
type TierCaps struct {
	Pawn    int
	Piece   int
	Royalty int
}

// CapsFor returns the slot caps for a board of the given dimensions.
func CapsFor(files, ranks int) TierCaps {
	if files == 8 && ranks == 8 {
		return TierCaps{Pawn: 8, Piece: 6, Royalty: 2}
	}
	return TierCaps{Pawn: 10, Piece: 8, Royalty: 2}
}

// perTypeHardCaps lists caps that apply regardless of tier, grounded on
// the board having only two edge files for Herald to stand on.
var perTypeHardCaps = map[string]int{
	catalog.HeraldID: 2,
}

// Draft is the running selection for one player, mutated incrementally by
// Add/Remove and authoritatively checked by Validate.
type Draft struct {
	Table  *catalog.Table
	Budget int
	Picks  Picks
}

func New(table *catalog.Table, budget int) *Draft {
	return &Draft{Table: table, Budget: budget, Picks: Picks{}}
}

// Add increments the count for typeID by one, after confirming it exists.
func (d *Draft) Add(typeID string) error {
	if !d.Table.Has(typeID) {
		return fmt.Errorf("%w: %s", ErrUnknownType, typeID)
	}
	d.Picks[typeID]++
	return nil
}

// Remove decrements the count for typeID by one, floored at zero.
func (d *Draft) Remove(typeID string) {
	if d.Picks[typeID] > 0 {
		d.Picks[typeID]--
		if d.Picks[typeID] == 0 {
			delete(d.Picks, typeID)
		}
	}
}

// BudgetSpent is the derived total cost of the current picks.
func (d *Draft) BudgetSpent() int {
	total := 0
	for id, n := range d.Picks {
		pt, ok := d.Table.Get(id)
		if !ok {
			continue
		}
		total += pt.Cost * n
	}
	return total
}

// Validate is authoritative: it recomputes every derived field from Picks
// rather than trusting incremental state, per spec §4.8.
func (d *Draft) Validate(files, ranks int) error {
	caps := CapsFor(files, ranks)
	spent := 0
	tierCounts := map[catalog.Tier]int{}
	replacers := 0

	for id, n := range d.Picks {
		if n <= 0 {
			continue
		}
		pt, ok := d.Table.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownType, id)
		}
		spent += pt.Cost * n
		tierCounts[pt.Tier] += n
		if pt.ReplacesKing {
			replacers += n
		}
		if hardCap, capped := perTypeHardCaps[id]; capped && n > hardCap {
			return fmt.Errorf("%w: %s allows at most %d", ErrTypeCapExceeded, id, hardCap)
		}
	}

	if spent > d.Budget {
		return fmt.Errorf("%w: %d > %d", ErrOverBudget, spent, d.Budget)
	}
	if replacers > 1 {
		return ErrMultipleReplacers
	}

	royaltyCount := tierCounts[catalog.TierRoyalty]
	if replacers == 0 {
		royaltyCount++
	}
	if royaltyCount > caps.Royalty {
		return fmt.Errorf("%w: royalty %d > %d", ErrTierCapExceeded, royaltyCount, caps.Royalty)
	}
	if tierCounts[catalog.TierPawn] > caps.Pawn {
		return fmt.Errorf("%w: pawn %d > %d", ErrTierCapExceeded, tierCounts[catalog.TierPawn], caps.Pawn)
	}
	if tierCounts[catalog.TierPiece] > caps.Piece {
		return fmt.Errorf("%w: piece %d > %d", ErrTierCapExceeded, tierCounts[catalog.TierPiece], caps.Piece)
	}
	return nil
}

// FallbackArmy is the default army substituted for a side that misses the
// draft timer, per spec §4.10: queen x1, rook x2, bishop x2, knight x2,
// pawn x8.
func FallbackArmy() Picks {
	return Picks{
		catalog.QueenID:  1,
		catalog.RookID:   2,
		catalog.BishopID: 2,
		catalog.KnightID: 2,
		catalog.PawnID:   8,
	}
}
