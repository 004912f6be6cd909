package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairychess/internal/board"
	"fairychess/internal/catalog"
)

func place(t *testing.T, b *board.Board, typeID string, owner board.Color, pos board.Position) *board.PieceInstance {
	t.Helper()
	pc := b.NewPiece(typeID, owner)
	require.NoError(t, b.Place(pc, pos))
	return pc
}

func hasDestination(moves []Move, to board.Position) bool {
	for _, m := range moves {
		if m.To == to {
			return true
		}
	}
	return false
}

func TestLongLeaperChainCapture(t *testing.T) {
	table := catalog.NewTable()
	b := board.New(8, 8)
	gen := NewGenerator(table)

	leaper := place(t, b, catalog.LongLeaperID, board.White, board.Position{File: 0, Rank: 0})
	place(t, b, catalog.PawnID, board.Black, board.Position{File: 2, Rank: 0})
	place(t, b, catalog.PawnID, board.Black, board.Position{File: 5, Rank: 0})

	moves := gen.PseudoLegal(b, leaper, nil)

	var chain *Move
	for i := range moves {
		if moves[i].To == (board.Position{File: 6, Rank: 0}) {
			chain = &moves[i]
		}
	}
	require.NotNil(t, chain, "expected a landing move past both captured pawns")
	assert.ElementsMatch(t, []board.Position{{File: 2, Rank: 0}, {File: 5, Rank: 0}}, chain.Captures)
}

func TestLongLeaperBlockedByUncapturablePiece(t *testing.T) {
	table := catalog.NewTable()
	b := board.New(8, 8)
	gen := NewGenerator(table)

	leaper := place(t, b, catalog.LongLeaperID, board.White, board.Position{File: 0, Rank: 0})
	place(t, b, catalog.FoolID, board.Black, board.Position{File: 2, Rank: 0})
	place(t, b, catalog.PawnID, board.Black, board.Position{File: 5, Rank: 0})

	moves := gen.PseudoLegal(b, leaper, nil)

	for _, m := range moves {
		if m.To.Rank == 0 && m.To.File > 2 {
			t.Fatalf("fool should block the long-leaper's line entirely, got move to %v", m.To)
		}
	}
}

func TestChameleonMimicsKnightLeap(t *testing.T) {
	table := catalog.NewTable()
	b := board.New(8, 8)
	gen := NewGenerator(table)

	cham := place(t, b, catalog.ChameleonID, board.White, board.Position{File: 3, Rank: 3})
	knight := place(t, b, catalog.KnightID, board.Black, board.Position{File: 4, Rank: 5})

	moves := gen.PseudoLegal(b, cham, nil)

	var found *Move
	for i := range moves {
		if moves[i].To == *knight.Position {
			found = &moves[i]
		}
	}
	require.NotNil(t, found, "chameleon should capture the knight by replaying its own leap")
	assert.Equal(t, []board.Position{*knight.Position}, found.Captures)
}

func TestChameleonNeverMimicsAnotherChameleon(t *testing.T) {
	table := catalog.NewTable()
	b := board.New(8, 8)
	gen := NewGenerator(table)

	cham := place(t, b, catalog.ChameleonID, board.White, board.Position{File: 3, Rank: 3})
	other := place(t, b, catalog.ChameleonID, board.Black, board.Position{File: 3, Rank: 5})

	moves := gen.PseudoLegal(b, cham, nil)

	for _, m := range moves {
		if m.To == *other.Position && len(m.Captures) > 0 {
			t.Fatalf("chameleon must not capture another chameleon via mimicry")
		}
	}
}

func TestCannonCapturesWithoutDisplacing(t *testing.T) {
	table := catalog.NewTable()
	b := board.New(8, 8)
	gen := NewGenerator(table)

	cannon := place(t, b, catalog.CannonID, board.White, board.Position{File: 0, Rank: 0})
	place(t, b, catalog.PawnID, board.White, board.Position{File: 3, Rank: 0})
	victim := place(t, b, catalog.PawnID, board.Black, board.Position{File: 6, Rank: 0})

	moves := gen.PseudoLegal(b, cannon, nil)

	var found *Move
	for i := range moves {
		if len(moves[i].Captures) > 0 && moves[i].Captures[0] == *victim.Position {
			found = &moves[i]
		}
	}
	require.NotNil(t, found, "cannon should have a capturing move over the screening pawn")
	assert.Equal(t, cannon.Position, &found.From, "cannon must stay on its own square")
	assert.Equal(t, found.From, found.To, "non-displacement capture: To equals From")
}
