package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairychess/internal/board"
	"fairychess/internal/catalog"
	"fairychess/internal/draft"
)

func newState(t *testing.T, white, black draft.Picks) (*State, *board.Board) {
	t.Helper()
	table := catalog.NewTable()
	b := board.New(8, 8)
	s := New(table, 8, 8, white, black)
	return s, b
}

func TestPlaceKingIsSeededAutomatically(t *testing.T) {
	s, _ := newState(t, draft.Picks{catalog.RookID: 1}, draft.Picks{catalog.RookID: 1})
	assert.Equal(t, 1, s.Pools[board.White][catalog.KingID])
	assert.Equal(t, 1, s.Pools[board.Black][catalog.KingID])
}

func TestPlaceRejectsWrongTierForZone(t *testing.T) {
	s, b := newState(t, draft.Picks{catalog.RookID: 1}, draft.Picks{catalog.RookID: 1})
	// (3,0) is a royalty-zone square (center back rank file); rook is piece-tier.
	_, err := s.Place(b, board.White, catalog.RookID, board.Position{File: 3, Rank: 0})
	assert.ErrorIs(t, err, ErrWrongTier)
}

func TestHeraldSnapsToPawnRankAndSwapsResidentPawnUp(t *testing.T) {
	s, b := newState(t, draft.Picks{catalog.HeraldID: 1, catalog.PawnID: 1}, draft.Picks{catalog.RookID: 1})

	// Place white's pawn at (0,1) first, occupying the Herald's eventual square.
	_, err := s.Place(b, board.White, catalog.PawnID, board.Position{File: 0, Rank: 1})
	require.NoError(t, err)
	pawn := b.At(board.Position{File: 0, Rank: 1})
	require.NotNil(t, pawn)
	_, err = s.Place(b, board.Black, catalog.RookID, board.Position{File: 1, Rank: 7})
	require.NoError(t, err)

	// Player nominally clicks the back-rank square; Herald must snap to the
	// pawn rank and evict the resident pawn up onto the back rank.
	res, err := s.Place(b, board.White, catalog.HeraldID, board.Position{File: 0, Rank: 0})
	require.NoError(t, err)

	// Result reports the Herald's actual square, not the nominal one, and
	// the pawn-swap record scenario 6 (spec.md:251) requires on the wire.
	assert.Equal(t, board.Position{File: 0, Rank: 1}, res.ActualPosition)
	require.NotNil(t, res.PawnSwap)
	assert.Equal(t, pawn.ID, res.PawnSwap.PawnID)
	assert.Equal(t, board.Position{File: 0, Rank: 0}, res.PawnSwap.NewPosition)

	herald := b.At(board.Position{File: 0, Rank: 1})
	require.NotNil(t, herald)
	assert.Equal(t, catalog.HeraldID, herald.TypeID)

	movedPawn := b.At(board.Position{File: 0, Rank: 0})
	require.NotNil(t, movedPawn)
	assert.Equal(t, catalog.PawnID, movedPawn.TypeID)
}

func TestHeraldSnapWithoutResidentPawnReportsNoPawnSwap(t *testing.T) {
	s, b := newState(t, draft.Picks{catalog.HeraldID: 1}, draft.Picks{catalog.RookID: 1})

	res, err := s.Place(b, board.White, catalog.HeraldID, board.Position{File: 0, Rank: 0})
	require.NoError(t, err)
	assert.Equal(t, board.Position{File: 0, Rank: 1}, res.ActualPosition)
	assert.Nil(t, res.PawnSwap)
}

func TestHeraldRejectsNonEdgeFile(t *testing.T) {
	s, b := newState(t, draft.Picks{catalog.HeraldID: 1}, draft.Picks{catalog.RookID: 1})
	_, err := s.Place(b, board.White, catalog.HeraldID, board.Position{File: 3, Rank: 1})
	assert.ErrorIs(t, err, ErrHeraldFile)
}

func TestPawnOntoBackRankAllowedOnlyWithResidentHerald(t *testing.T) {
	s, b := newState(t, draft.Picks{catalog.HeraldID: 1, catalog.PawnID: 1}, draft.Picks{catalog.RookID: 1})

	_, err := s.Place(b, board.White, catalog.HeraldID, board.Position{File: 0, Rank: 0})
	require.NoError(t, err)
	_, err = s.Place(b, board.Black, catalog.RookID, board.Position{File: 1, Rank: 7})
	require.NoError(t, err)

	// Herald now sits at (0,1); a pawn may be nominally placed onto (0,0).
	res, err := s.Place(b, board.White, catalog.PawnID, board.Position{File: 0, Rank: 0})
	require.NoError(t, err)
	assert.Equal(t, board.Position{File: 0, Rank: 0}, res.ActualPosition)
	assert.Equal(t, catalog.PawnID, b.At(board.Position{File: 0, Rank: 0}).TypeID)
}

func TestAdvanceContinuesOneSideAfterOtherExhausted(t *testing.T) {
	s, b := newState(t, draft.Picks{catalog.RookID: 1}, draft.Picks{})

	_, err := s.Place(b, board.White, catalog.KingID, board.Position{File: 3, Rank: 0})
	require.NoError(t, err)
	// Black's pool (just the seeded King) still needs placing, so the turn passes to black.
	assert.Equal(t, board.Black, s.CurrentPlacer)

	_, err = s.Place(b, board.Black, catalog.KingID, board.Position{File: 3, Rank: 7})
	require.NoError(t, err)
	// Black is now empty; white still has a rook to place, so play returns to white.
	assert.Equal(t, board.White, s.CurrentPlacer)
	assert.False(t, s.Done)

	_, err = s.Place(b, board.White, catalog.RookID, board.Position{File: 1, Rank: 0})
	require.NoError(t, err)
	assert.True(t, s.Done)
}

func TestFinishFreezesHadMultipleRoyals(t *testing.T) {
	s, b := newState(t, draft.Picks{catalog.RegentID: 1}, draft.Picks{})

	_, err := s.Place(b, board.White, catalog.KingID, board.Position{File: 3, Rank: 0})
	require.NoError(t, err)
	_, err = s.Place(b, board.Black, catalog.KingID, board.Position{File: 3, Rank: 7})
	require.NoError(t, err)
	_, err = s.Place(b, board.White, catalog.RegentID, board.Position{File: 4, Rank: 0})
	require.NoError(t, err)

	s.Finish(b)
	assert.True(t, b.HadMultipleRoyals[board.White])
	assert.False(t, b.HadMultipleRoyals[board.Black])
}
