package room

import "errors"

var (
	ErrRoomFull         = errors.New("room: already has two players")
	ErrAlreadyStarted   = errors.New("room: drafting has already started")
	ErrWrongPhase       = errors.New("room: action not valid in the current phase")
	ErrUnknownPlayer    = errors.New("room: player id not seated in this room")
	ErrAlreadySubmitted = errors.New("room: draft already submitted")
	ErrNotYourTurn      = errors.New("room: it is not this player's turn")
	ErrNotFound         = errors.New("room: room code not found")
	ErrInvalidCode      = errors.New("room: malformed room code")
	ErrAllocationFailed = errors.New("room: exhausted room-code collision retries")
	ErrDrawAlreadyOffered = errors.New("room: a draw offer is already outstanding")
	ErrNoDrawOffer        = errors.New("room: no outstanding draw offer to respond to")
)
