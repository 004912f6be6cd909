package special

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairychess/internal/attack"
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

func TestCastlingAvailableOnClearUnattackedPath(t *testing.T) {
	table := catalog.NewTable()
	gen := movegen.NewGenerator(table)
	oracle := attack.NewOracle(table, gen)
	c := NewCastling(table, oracle)

	b := board.New(8, 8)
	king := place(t, b, catalog.KingID, board.White, board.Position{File: 4, Rank: 0})
	place(t, b, catalog.RookID, board.White, board.Position{File: 7, Rank: 0})
	place(t, b, catalog.KingID, board.Black, board.Position{File: 4, Rank: 7})

	moves := c.Candidates(b, king)
	require.Len(t, moves, 1)
	assert.Equal(t, board.Position{File: 6, Rank: 0}, moves[0].To)
	assert.True(t, moves[0].Castle)
	assert.Equal(t, board.Position{File: 5, Rank: 0}, moves[0].PartnerTo)
}

// TestCastlingBlockedByCoordinatorThreatOnTraversedSquare exercises the
// empty-square attack check (spec's castling-path-safety case): a
// coordinator threatens g1 by combining its own destination's rank with its
// own king's file, even though g1 is unoccupied and no piece directly
// attacks it.
func TestCastlingBlockedByCoordinatorThreatOnTraversedSquare(t *testing.T) {
	table := catalog.NewTable()
	gen := movegen.NewGenerator(table)
	oracle := attack.NewOracle(table, gen)
	c := NewCastling(table, oracle)

	b := board.New(8, 8)
	king := place(t, b, catalog.KingID, board.White, board.Position{File: 4, Rank: 0})
	place(t, b, catalog.RookID, board.White, board.Position{File: 7, Rank: 0})

	place(t, b, catalog.KingID, board.Black, board.Position{File: 6, Rank: 5})
	place(t, b, catalog.CoordinatorID, board.Black, board.Position{File: 2, Rank: 3})

	moves := c.Candidates(b, king)
	assert.Empty(t, moves, "castling must be refused when the coordinator threatens the destination square g1")
}
