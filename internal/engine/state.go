// Package engine ties the rules components together into a playable
// game: GameState, the Move Executor (spec §4.6), and End Detection
// (spec §4.7). Generalizes the teacher's Engine (board + turn + status +
// history behind a single mutex-free struct, mutated by one caller at a
// time — concurrency is the session/room layer's job, not this one's).
package engine

import (
	"fairychess/internal/attack"
	"fairychess/internal/board"
	"fairychess/internal/catalog"
	"fairychess/internal/legality"
	"fairychess/internal/movegen"
	"fairychess/internal/special"
)

// MoveRecord is the append-only history entry for one executed move.
type MoveRecord struct {
	TurnNumber  int
	Color       board.Color
	PieceID     int
	PieceType   string
	From        board.Position
	To          board.Position
	Captures    []board.Position
	Castle      bool
	EnPassant   bool
	Swap        bool
	Promoted    bool
	PromotedTo  string
}

// GameState is the full mutable state of one game in progress.
type GameState struct {
	Board      *board.Board
	Turn       board.Color
	TurnNumber int
	EnPassant  *board.Position

	// Status is one of "ongoing", "check", "checkmate", "stalemate",
	// "draw-vp-tie", "resigned", "timeout", "draw-agreed".
	Status string
	Winner *board.Color

	History []MoveRecord
}

// Engine bundles the rules components that operate on a GameState. It
// holds no per-game state itself, so a single Engine is shared by every
// room's GameState.
type Engine struct {
	Table    *catalog.Table
	Gen      *movegen.Generator
	Oracle   *attack.Oracle
	Filter   *legality.Filter
	Castling *special.Castling
}

func NewEngine(table *catalog.Table) *Engine {
	gen := movegen.NewGenerator(table)
	oracle := attack.NewOracle(table, gen)
	filter := legality.NewFilter(table, gen, oracle)
	return &Engine{
		Table:    table,
		Gen:      gen,
		Oracle:   oracle,
		Filter:   filter,
		Castling: special.NewCastling(table, oracle),
	}
}

// NewGame wraps a fully placed board into a fresh GameState, white to
// move, turn 1, freeze states computed once up front.
func (e *Engine) NewGame(b *board.Board) *GameState {
	special.RecomputeFreeze(e.Table, b)
	gs := &GameState{
		Board:      b,
		Turn:       board.White,
		TurnNumber: 1,
		Status:     "ongoing",
	}
	e.refreshStatus(gs)
	return gs
}

func (e *Engine) findRoyal(b *board.Board, owner board.Color) *board.PieceInstance {
	for _, pc := range b.LiveOf(owner) {
		if e.Table.MustGet(pc.TypeID).IsRoyal {
			return pc
		}
	}
	return nil
}

func sumVictoryPoints(table *catalog.Table, b *board.Board, c board.Color) int {
	total := 0
	for _, pc := range b.LiveOf(c) {
		total += table.MustGet(pc.TypeID).VictoryPoints
	}
	return total
}
