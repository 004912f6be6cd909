package engine

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

func TestMoveAdvancesTurnAndHistory(t *testing.T) {
	table := catalog.NewTable()
	e := NewEngine(table)
	b := board.New(8, 8)
	place(t, b, catalog.KingID, board.White, board.Position{File: 4, Rank: 0})
	place(t, b, catalog.KingID, board.Black, board.Position{File: 4, Rank: 7})
	place(t, b, catalog.RookID, board.White, board.Position{File: 0, Rank: 0})

	gs := e.NewGame(b)
	record, err := e.Move(gs, board.Position{File: 0, Rank: 0}, board.Position{File: 0, Rank: 5}, "")
	require.NoError(t, err)
	assert.Equal(t, board.Black, gs.Turn)
	assert.Len(t, gs.History, 1)
	assert.Equal(t, catalog.RookID, record.PieceType)
}

func TestMoveRejectsOutOfTurnPiece(t *testing.T) {
	table := catalog.NewTable()
	e := NewEngine(table)
	b := board.New(8, 8)
	place(t, b, catalog.KingID, board.White, board.Position{File: 4, Rank: 0})
	place(t, b, catalog.KingID, board.Black, board.Position{File: 4, Rank: 7})

	gs := e.NewGame(b)
	_, err := e.Move(gs, board.Position{File: 4, Rank: 7}, board.Position{File: 4, Rank: 6}, "")
	assert.ErrorIs(t, err, ErrNotYourTurn)
}

func TestMoveLeavingOwnKingInCheckIsIllegal(t *testing.T) {
	table := catalog.NewTable()
	e := NewEngine(table)
	b := board.New(8, 8)
	king := place(t, b, catalog.KingID, board.White, board.Position{File: 4, Rank: 0})
	place(t, b, catalog.RookID, board.White, board.Position{File: 4, Rank: 1})
	place(t, b, catalog.KingID, board.Black, board.Position{File: 4, Rank: 7})
	place(t, b, catalog.RookID, board.Black, board.Position{File: 4, Rank: 6})
	_ = king

	gs := e.NewGame(b)
	// Moving the pinned rook sideways would expose the white king to the
	// black rook on the same file.
	_, err := e.Move(gs, board.Position{File: 4, Rank: 1}, board.Position{File: 3, Rank: 1}, "")
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestCheckmateEndsGameWithWinner(t *testing.T) {
	table := catalog.NewTable()
	e := NewEngine(table)
	b := board.New(8, 8)
	place(t, b, catalog.KingID, board.White, board.Position{File: 0, Rank: 0})
	place(t, b, catalog.KingID, board.Black, board.Position{File: 4, Rank: 7})
	// A back-rank mate: rook1 checks along rank 0, rook2 defends it along
	// file 1 (so the white king can't capture its way out of check), rook3
	// denies every rank-1 escape square.
	place(t, b, catalog.RookID, board.Black, board.Position{File: 1, Rank: 0})
	place(t, b, catalog.RookID, board.Black, board.Position{File: 1, Rank: 7})
	place(t, b, catalog.RookID, board.Black, board.Position{File: 2, Rank: 1})

	gs := e.NewGame(b)

	assert.Equal(t, "checkmate", gs.Status)
	require.NotNil(t, gs.Winner)
	assert.Equal(t, board.Black, *gs.Winner)
}

func TestResignAndTimeoutBypassLegalityComputation(t *testing.T) {
	table := catalog.NewTable()
	e := NewEngine(table)
	b := board.New(8, 8)
	place(t, b, catalog.KingID, board.White, board.Position{File: 4, Rank: 0})
	place(t, b, catalog.KingID, board.Black, board.Position{File: 4, Rank: 7})
	gs := e.NewGame(b)

	e.Resign(gs, board.White)
	assert.Equal(t, "resigned", gs.Status)
	require.NotNil(t, gs.Winner)
	assert.Equal(t, board.Black, *gs.Winner)

	gs2 := e.NewGame(b.Clone())
	e.Timeout(gs2, board.Black)
	assert.Equal(t, "timeout", gs2.Status)
	require.NotNil(t, gs2.Winner)
	assert.Equal(t, board.White, *gs2.Winner)
}
