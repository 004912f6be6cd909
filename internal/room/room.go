// Package room implements the Room Controller and Room Directory (spec
// §4.10): a state machine per room (waiting -> drafting -> placement ->
// playing -> ended), driven by one serialized worker per room, plus a
// directory mapping room codes to rooms. Generalizes the teacher's single
// global *Engine behind a mutex into many independently-scheduled rooms,
// each owning its own engine call and GameState.
package room

import (
	"time"

	"fairychess/internal/board"
	"fairychess/internal/catalog"
	"fairychess/internal/clock"
	"fairychess/internal/draft"
	"fairychess/internal/engine"
	"fairychess/internal/placement"
)

type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseDrafting  Phase = "drafting"
	PhasePlacement Phase = "placement"
	PhasePlaying   Phase = "playing"
	PhaseEnded     Phase = "ended"
)

// Broadcaster is the narrow outbound capability a Room needs. Concrete
// implementations live in internal/session, which adapts a Transport
// plus message envelope encoding onto this interface — kept here, not
// imported from there, so this package never depends on the dispatcher.
type Broadcaster interface {
	SendToPlayer(roomCode, playerID, msgType string, payload any)
	BroadcastToRoom(roomCode, msgType string, payload any)
}

// Settings are the per-room parameters chosen at creation time.
type Settings struct {
	Budget int
	Files  int
	Ranks  int

	DraftTimeoutSeconds    int
	CountdownSeconds       int
	RevealSeconds          int
	DisconnectGraceSeconds int
}

// Player is one seat in a room.
type Player struct {
	ID          string
	Name        string
	Color       board.Color
	Connected   bool
	ConnID      string
	Draft       *draft.Draft
	DraftDone   bool
	disconnTime clock.Timer
}

// Room is a single game's full session state, mutated only by its own
// worker goroutine (Run).
type Room struct {
	Code     string
	Settings Settings

	Table *catalog.Table
	Eng   *engine.Engine

	Phase        Phase
	LastActivity time.Time
	Players      map[board.Color]*Player

	PlacementState *placement.State
	gameBoard      *board.Board
	GameState      *engine.GameState
	drawOfferedBy  *board.Color

	Broadcaster Broadcaster
	Clock       clock.Clock

	draftTimer     clock.Timer
	countdownTimer clock.Timer

	commands chan func()
	done     chan struct{}
}

// New constructs an empty room in PhaseWaiting, ready for its first player.
func New(code string, settings Settings, table *catalog.Table, eng *engine.Engine, bc Broadcaster, ck clock.Clock) *Room {
	return &Room{
		Code:         code,
		Settings:     settings,
		Table:        table,
		Eng:          eng,
		Phase:        PhaseWaiting,
		LastActivity: ck.Now(),
		Players:      map[board.Color]*Player{},
		Broadcaster:  bc,
		Clock:        ck,
		commands:     make(chan func(), 64),
		done:         make(chan struct{}),
	}
}

// Run is the room's worker loop: every mutation enters through Submit and
// is executed here, serialized, in arrival order (spec §5 scheduling).
func (r *Room) Run() {
	for {
		select {
		case fn := <-r.commands:
			fn()
		case <-r.done:
			return
		}
	}
}

// Submit enqueues fn to run on the room's worker. Safe to call from any
// goroutine (the dispatcher, a timer callback).
func (r *Room) Submit(fn func()) {
	select {
	case r.commands <- fn:
	case <-r.done:
	}
}

// Stop tears the room's worker down, cancelling any outstanding timers.
func (r *Room) Stop() {
	if r.draftTimer != nil {
		r.draftTimer.Stop()
	}
	if r.countdownTimer != nil {
		r.countdownTimer.Stop()
	}
	for _, p := range r.Players {
		if p.disconnTime != nil {
			p.disconnTime.Stop()
		}
	}
	close(r.done)
}

// Snapshot reads Phase and LastActivity off the room's own worker, per
// spec §5's "per-room state is owned by its room worker" — callers
// outside the worker (the directory's sweeper) must not dereference
// r.Phase/r.LastActivity directly.
func (r *Room) Snapshot() (Phase, time.Time) {
	done := make(chan struct{})
	var phase Phase
	var last time.Time
	r.Submit(func() {
		phase = r.Phase
		last = r.LastActivity
		close(done)
	})
	<-done
	return phase, last
}

func (r *Room) otherColor(c board.Color) board.Color { return c.Opposite() }

func (r *Room) playerByID(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
