package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairychess/internal/board"
	"fairychess/internal/catalog"
	"fairychess/internal/clock"
	"fairychess/internal/engine"
)

type recordedDirect struct {
	playerID string
	msgType  string
	payload  any
}

type recordedBroadcast struct {
	msgType string
	payload any
}

type fakeBroadcaster struct {
	direct     []recordedDirect
	broadcasts []recordedBroadcast
}

func (f *fakeBroadcaster) SendToPlayer(roomCode, playerID, msgType string, payload any) {
	f.direct = append(f.direct, recordedDirect{playerID, msgType, payload})
}

func (f *fakeBroadcaster) BroadcastToRoom(roomCode, msgType string, payload any) {
	f.broadcasts = append(f.broadcasts, recordedBroadcast{msgType, payload})
}

// newPlayingRoom builds a room already past draft/placement, in PhasePlaying,
// without exercising the timer-driven transitions those phases use.
func newPlayingRoom(t *testing.T) (*Room, *fakeBroadcaster) {
	table := catalog.NewTable()
	bc := &fakeBroadcaster{}
	r := New("ABCDEF", Settings{Budget: 500, Files: 8, Ranks: 8}, table, engine.NewEngine(table), bc, clock.Real{})
	r.Phase = PhasePlaying
	r.Players[board.White] = &Player{ID: "p-white", Color: board.White, Connected: true}
	r.Players[board.Black] = &Player{ID: "p-black", Color: board.Black, Connected: true}
	r.GameState = &engine.GameState{Turn: board.White, TurnNumber: 1, Status: "ongoing"}
	return r, bc
}

func TestOfferDrawNotifiesOnlyOpponent(t *testing.T) {
	r, bc := newPlayingRoom(t)
	require.NoError(t, r.OfferDraw("p-white"))
	require.Len(t, bc.direct, 1)
	assert.Equal(t, "p-black", bc.direct[0].playerID)
	assert.Equal(t, "DRAW_OFFERED", bc.direct[0].msgType)
}

func TestOfferDrawRejectsSecondOutstandingOffer(t *testing.T) {
	r, _ := newPlayingRoom(t)
	require.NoError(t, r.OfferDraw("p-white"))
	assert.ErrorIs(t, r.OfferDraw("p-white"), ErrDrawAlreadyOffered)
	assert.ErrorIs(t, r.OfferDraw("p-black"), ErrDrawAlreadyOffered)
}

func TestRespondDrawAcceptEndsGameAsDraw(t *testing.T) {
	r, bc := newPlayingRoom(t)
	require.NoError(t, r.OfferDraw("p-white"))
	require.NoError(t, r.RespondDraw("p-black", true))

	assert.Equal(t, PhaseEnded, r.Phase)
	assert.Equal(t, "draw-agreed", r.GameState.Status)
	assert.Nil(t, r.GameState.Winner)
	var sawGameOver bool
	for _, b := range bc.broadcasts {
		if b.msgType == "GAME_OVER" {
			sawGameOver = true
		}
	}
	assert.True(t, sawGameOver)
}

func TestRespondDrawDeclineClearsOfferAndNotifiesOfferer(t *testing.T) {
	r, bc := newPlayingRoom(t)
	require.NoError(t, r.OfferDraw("p-white"))
	require.NoError(t, r.RespondDraw("p-black", false))

	assert.Nil(t, r.drawOfferedBy)
	assert.Equal(t, PhasePlaying, r.Phase)
	require.Len(t, bc.direct, 2) // the original offer, then the decline
	assert.Equal(t, "p-white", bc.direct[1].playerID)
	assert.Equal(t, "DRAW_DECLINED", bc.direct[1].msgType)
}

func TestRespondDrawRejectsOffererRespondingToOwnOffer(t *testing.T) {
	r, _ := newPlayingRoom(t)
	require.NoError(t, r.OfferDraw("p-white"))
	assert.ErrorIs(t, r.RespondDraw("p-white", true), ErrNoDrawOffer)
}

func TestRespondDrawRejectsWithNoOutstandingOffer(t *testing.T) {
	r, _ := newPlayingRoom(t)
	assert.ErrorIs(t, r.RespondDraw("p-black", true), ErrNoDrawOffer)
}

func TestMakeMoveClearsAnyOutstandingDrawOffer(t *testing.T) {
	r, _ := newPlayingRoom(t)
	b := board.New(8, 8)
	wk := b.NewPiece(catalog.KingID, board.White)
	require.NoError(t, b.Place(wk, board.Position{File: 4, Rank: 0}))
	bk := b.NewPiece(catalog.KingID, board.Black)
	require.NoError(t, b.Place(bk, board.Position{File: 4, Rank: 7}))
	r.GameState.Board = b

	require.NoError(t, r.OfferDraw("p-white"))
	require.NoError(t, r.MakeMove("p-white", board.Position{File: 4, Rank: 0}, board.Position{File: 4, Rank: 1}, ""))
	assert.Nil(t, r.drawOfferedBy)
}

func TestLeaveRoomDuringWaitingFreesSeat(t *testing.T) {
	table := catalog.NewTable()
	bc := &fakeBroadcaster{}
	r := New("ABCDEF", Settings{}, table, engine.NewEngine(table), bc, clock.Real{})
	r.Phase = PhaseWaiting
	r.Players[board.White] = &Player{ID: "p-white", Color: board.White, Connected: true}

	require.NoError(t, r.Leave("p-white"))
	assert.Len(t, r.Players, 0)
	assert.Equal(t, PhaseWaiting, r.Phase)
}

func TestLeaveRoomDuringPlayForfeits(t *testing.T) {
	r, bc := newPlayingRoom(t)
	require.NoError(t, r.Leave("p-white"))

	assert.Equal(t, PhaseEnded, r.Phase)
	require.NotNil(t, r.GameState.Winner)
	assert.Equal(t, board.Black, *r.GameState.Winner)

	var sawLeft bool
	for _, b := range bc.broadcasts {
		if b.msgType == "PLAYER_LEFT" {
			sawLeft = true
		}
	}
	assert.True(t, sawLeft)
}

func TestSnapshotReadsThroughTheRoomWorker(t *testing.T) {
	r, _ := newPlayingRoom(t)
	go r.Run()
	defer r.Stop()

	phase, _ := r.Snapshot()
	assert.Equal(t, PhasePlaying, phase)

	done := make(chan struct{})
	r.Submit(func() {
		r.Phase = PhaseEnded
		r.LastActivity = r.Clock.Now()
		close(done)
	})
	<-done

	phase, last := r.Snapshot()
	assert.Equal(t, PhaseEnded, phase)
	assert.False(t, last.IsZero())
}

func TestLeaveRoomUnknownPlayerErrors(t *testing.T) {
	r, _ := newPlayingRoom(t)
	assert.ErrorIs(t, r.Leave("nobody"), ErrUnknownPlayer)
}
