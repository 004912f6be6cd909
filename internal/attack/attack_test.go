package attack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairychess/internal/board"
	"fairychess/internal/catalog"
	"fairychess/internal/movegen"
)

func place(t *testing.T, b *board.Board, typeID string, owner board.Color, pos board.Position) *board.PieceInstance {
	t.Helper()
	pc := b.NewPiece(typeID, owner)
	require.NoError(t, b.Place(pc, pos))
	return pc
}

func newOracle() (*catalog.Table, *Oracle) {
	table := catalog.NewTable()
	gen := movegen.NewGenerator(table)
	return table, NewOracle(table, gen)
}

func TestLongLeaperAttacksAcrossClearLine(t *testing.T) {
	_, o := newOracle()
	b := board.New(8, 8)
	place(t, b, catalog.LongLeaperID, board.Black, board.Position{File: 0, Rank: 0})
	king := place(t, b, catalog.KingID, board.White, board.Position{File: 4, Rank: 0})

	assert.True(t, o.Attacks(b, *king.Position, board.Black))
}

func TestLongLeaperDoesNotAttackWithoutLandingSquare(t *testing.T) {
	_, o := newOracle()
	b := board.New(8, 8)
	place(t, b, catalog.LongLeaperID, board.Black, board.Position{File: 0, Rank: 0})
	king := place(t, b, catalog.KingID, board.White, board.Position{File: 4, Rank: 0})
	// A piece right behind the king blocks the leaper's required landing square.
	place(t, b, catalog.PawnID, board.Black, board.Position{File: 5, Rank: 0})

	assert.False(t, o.Attacks(b, *king.Position, board.Black))
}

func TestCannonThreatensThroughExactlyOneScreen(t *testing.T) {
	_, o := newOracle()
	b := board.New(8, 8)
	place(t, b, catalog.CannonID, board.Black, board.Position{File: 0, Rank: 0})
	place(t, b, catalog.PawnID, board.White, board.Position{File: 3, Rank: 0})
	king := place(t, b, catalog.KingID, board.White, board.Position{File: 6, Rank: 0})

	assert.True(t, o.Attacks(b, *king.Position, board.Black))
}

func TestCannonDoesNotThreatenWithoutAScreen(t *testing.T) {
	_, o := newOracle()
	b := board.New(8, 8)
	place(t, b, catalog.CannonID, board.Black, board.Position{File: 0, Rank: 0})
	king := place(t, b, catalog.KingID, board.White, board.Position{File: 6, Rank: 0})

	assert.False(t, o.Attacks(b, *king.Position, board.Black))
}

func TestSquareAttackedOnEmptySquareUsesPhantomDefender(t *testing.T) {
	_, o := newOracle()
	b := board.New(8, 8)
	place(t, b, catalog.RookID, board.Black, board.Position{File: 6, Rank: 5})
	place(t, b, catalog.KingID, board.White, board.Position{File: 4, Rank: 0})

	empty := board.Position{File: 6, Rank: 0}
	assert.True(t, o.SquareAttacked(b, empty, board.Black, board.White))
}
