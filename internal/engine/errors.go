package engine

import "errors"

// Sentinel errors, in the teacher's style: callers switch on identity via
// errors.Is rather than parsing strings.
var (
	ErrNoPieceAt        = errors.New("engine: no piece at source square")
	ErrNotYourTurn      = errors.New("engine: piece does not belong to the side to move")
	ErrIllegalMove      = errors.New("engine: destination is not a legal move for this piece")
	ErrGameOver         = errors.New("engine: game has already ended")
	ErrInvalidPromotion = errors.New("engine: promotion choice is not among the computed options")
	ErrFrozenPiece      = errors.New("engine: piece is frozen and cannot move")
)
