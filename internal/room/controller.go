package room

import (
	"time"

	"fairychess/internal/board"
	"fairychess/internal/draft"
	"fairychess/internal/placement"
)

// Join seats a new player. The first join keeps the room in waiting; the
// second triggers the countdown into drafting, per spec §4.10.
func (r *Room) Join(playerID, name, connID string) (board.Color, error) {
	if r.Phase != PhaseWaiting {
		return 0, ErrAlreadyStarted
	}
	if len(r.Players) >= 2 {
		return 0, ErrRoomFull
	}
	color := board.White
	if _, taken := r.Players[board.White]; taken {
		color = board.Black
	}
	r.Players[color] = &Player{ID: playerID, Name: name, Color: color, Connected: true, ConnID: connID}
	r.Broadcaster.BroadcastToRoom(r.Code, "PLAYER_JOINED", map[string]any{"playerId": playerID, "color": colorName(color)})

	if len(r.Players) == 2 {
		r.startCountdown()
	}
	return color, nil
}

func (r *Room) startCountdown() {
	remaining := r.Settings.CountdownSeconds
	if remaining <= 0 {
		remaining = 3
	}
	var tick func()
	tick = func() {
		r.Submit(func() {
			if r.Phase != PhaseWaiting {
				return
			}
			r.Broadcaster.BroadcastToRoom(r.Code, "DRAFT_COUNTDOWN", map[string]any{"timeRemaining": remaining})
			remaining--
			if remaining < 0 {
				r.enterDrafting()
				return
			}
			r.countdownTimer = r.Clock.AfterFunc(time.Second, tick)
		})
	}
	tick()
}

func (r *Room) enterDrafting() {
	r.Phase = PhaseDrafting
	for _, p := range r.Players {
		p.Draft = draft.New(r.Table, r.Settings.Budget)
	}
	r.Broadcaster.BroadcastToRoom(r.Code, "DRAFT_START", map[string]any{
		"budget":    r.Settings.Budget,
		"boardSize": boardSizeName(r.Settings.Files, r.Settings.Ranks),
		"timeLimit": r.Settings.DraftTimeoutSeconds,
	})
	timeout := r.Settings.DraftTimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	r.draftTimer = r.Clock.AfterFunc(time.Duration(timeout)*time.Second, func() {
		r.Submit(r.onDraftTimeout)
	})
}

// DraftSubmit records playerID's picks. Per spec §4.10, either player may
// submit once; further submissions are rejected.
func (r *Room) DraftSubmit(playerID string, picks map[string]int) error {
	if r.Phase != PhaseDrafting {
		return ErrWrongPhase
	}
	p := r.playerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if p.DraftDone {
		return ErrAlreadySubmitted
	}
	d := draft.New(r.Table, r.Settings.Budget)
	for id, n := range picks {
		for i := 0; i < n; i++ {
			if err := d.Add(id); err != nil {
				return err
			}
		}
	}
	if err := d.Validate(r.Settings.Files, r.Settings.Ranks); err != nil {
		return err
	}
	p.Draft = d
	p.DraftDone = true
	r.Broadcaster.BroadcastToRoom(r.Code, "DRAFT_SUBMITTED", map[string]any{"playerId": playerID})

	if r.allDraftsSubmitted() {
		if r.draftTimer != nil {
			r.draftTimer.Stop()
		}
		r.revealAndProceedToPlacement(nil)
	}
	return nil
}

func (r *Room) allDraftsSubmitted() bool {
	for _, p := range r.Players {
		if !p.DraftDone {
			return false
		}
	}
	return len(r.Players) == 2
}

func (r *Room) onDraftTimeout() {
	if r.Phase != PhaseDrafting {
		return
	}
	var defaulted []string
	for _, p := range r.Players {
		if !p.DraftDone {
			d := draft.New(r.Table, r.Settings.Budget)
			for id, n := range draft.FallbackArmy() {
				for i := 0; i < n; i++ {
					_ = d.Add(id)
				}
			}
			p.Draft = d
			p.DraftDone = true
			defaulted = append(defaulted, p.ID)
		}
	}
	r.Broadcaster.BroadcastToRoom(r.Code, "DRAFT_TIMEOUT", map[string]any{"defaultedPlayers": defaulted})
	r.revealAndProceedToPlacement(defaulted)
}

func (r *Room) revealAndProceedToPlacement(defaulted []string) {
	white := r.Players[board.White]
	black := r.Players[board.Black]
	r.Broadcaster.BroadcastToRoom(r.Code, "DRAFT_REVEAL", map[string]any{
		"whiteDraft": white.Draft.Picks,
		"blackDraft": black.Draft.Picks,
	})
	delay := r.Settings.RevealSeconds
	if delay <= 0 {
		delay = 3
	}
	r.Clock.AfterFunc(time.Duration(delay)*time.Second, func() {
		r.Submit(r.enterPlacement)
	})
}

func (r *Room) enterPlacement() {
	if r.Phase != PhaseDrafting {
		return
	}
	r.Phase = PhasePlacement
	white := r.Players[board.White]
	black := r.Players[board.Black]
	r.PlacementState = placement.New(r.Table, r.Settings.Files, r.Settings.Ranks, white.Draft.Picks, black.Draft.Picks)
	r.gameBoard = board.New(r.Settings.Files, r.Settings.Ranks)
	r.Broadcaster.BroadcastToRoom(r.Code, "PLACEMENT_START", map[string]any{"placementState": r.placementSnapshot()})
}

// PlacePiece places one piece for playerID, per spec §4.9/§4.10.
func (r *Room) PlacePiece(playerID, typeID string, pos board.Position) error {
	if r.Phase != PhasePlacement {
		return ErrWrongPhase
	}
	p := r.playerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if p.Color != r.PlacementState.CurrentPlacer {
		return ErrNotYourTurn
	}
	res, err := r.PlacementState.Place(r.gameBoard, p.Color, typeID, pos)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"pieceId":        typeID,
		"position":       pos,
		"actualPosition": res.ActualPosition,
		"nextPlacer":     colorName(r.PlacementState.CurrentPlacer),
		"placementState": r.placementSnapshot(),
	}
	if res.PawnSwap != nil {
		payload["pawnSwap"] = map[string]any{
			"pawnId":      res.PawnSwap.PawnID,
			"newPosition": res.PawnSwap.NewPosition,
		}
	}
	r.Broadcaster.BroadcastToRoom(r.Code, "PIECE_PLACED", payload)
	if r.PlacementState.Done {
		r.startPlaying()
	}
	return nil
}

func (r *Room) startPlaying() {
	r.PlacementState.Finish(r.gameBoard)
	r.Phase = PhasePlaying
	r.GameState = r.Eng.NewGame(r.gameBoard)
	r.Broadcaster.BroadcastToRoom(r.Code, "GAME_START", map[string]any{"gameState": r.GameState})
}

// MakeMove executes a move for playerID, per spec §4.6/§4.10.
func (r *Room) MakeMove(playerID string, from, to board.Position, promotion string) error {
	if r.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	p := r.playerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if p.Color != r.GameState.Turn {
		return ErrNotYourTurn
	}
	record, err := r.Eng.Move(r.GameState, from, to, promotion)
	if err != nil {
		return err
	}
	r.drawOfferedBy = nil
	r.Broadcaster.BroadcastToRoom(r.Code, "MOVE_MADE", map[string]any{"move": record, "gameState": r.GameState})
	if r.isTerminal(r.GameState.Status) {
		r.endGame()
	}
	return nil
}

// Resign ends the game immediately in the resigner's opponent's favor.
func (r *Room) Resign(playerID string) error {
	if r.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	p := r.playerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	r.Eng.Resign(r.GameState, p.Color)
	r.endGame()
	return nil
}

func (r *Room) isTerminal(status string) bool {
	switch status {
	case "checkmate", "stalemate", "draw-vp-tie", "resigned", "timeout":
		return true
	}
	return false
}

func (r *Room) endGame() {
	r.Phase = PhaseEnded
	r.LastActivity = r.Clock.Now()
	r.Broadcaster.BroadcastToRoom(r.Code, "GAME_OVER", map[string]any{
		"result":     r.GameState.Status,
		"finalState": r.GameState,
	})
}

// Disconnect marks playerID's socket as dropped and starts the grace
// timer; per scenario 5, no game state mutates while disconnected.
func (r *Room) Disconnect(playerID string) {
	p := r.playerByID(playerID)
	if p == nil || !p.Connected {
		return
	}
	p.Connected = false
	grace := r.Settings.DisconnectGraceSeconds
	if grace <= 0 {
		grace = 60
	}
	r.Broadcaster.BroadcastToRoom(r.Code, "PLAYER_DISCONNECTED", map[string]any{
		"playerId":       playerID,
		"timeoutSeconds": grace,
	})
	p.disconnTime = r.Clock.AfterFunc(time.Duration(grace)*time.Second, func() {
		r.Submit(func() { r.onDisconnectTimeout(playerID) })
	})
}

func (r *Room) onDisconnectTimeout(playerID string) {
	p := r.playerByID(playerID)
	if p == nil || p.Connected || r.Phase != PhasePlaying {
		return
	}
	r.Eng.Timeout(r.GameState, p.Color)
	r.endGame()
}

// Reconnect cancels the grace timer and returns the player's color so the
// dispatcher can send a tailored SYNC_STATE.
func (r *Room) Reconnect(playerID, connID string) (board.Color, error) {
	p := r.playerByID(playerID)
	if p == nil {
		return 0, ErrUnknownPlayer
	}
	if p.disconnTime != nil {
		p.disconnTime.Stop()
		p.disconnTime = nil
	}
	p.Connected = true
	p.ConnID = connID
	r.Broadcaster.BroadcastToRoom(r.Code, "PLAYER_RECONNECTED", map[string]any{"playerId": playerID})
	return p.Color, nil
}

// OfferDraw records playerID's draw offer and notifies the opponent.
// Only one offer may be outstanding at a time; a repeat offer from the
// same player while one is pending is rejected.
func (r *Room) OfferDraw(playerID string) error {
	if r.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	p := r.playerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if r.drawOfferedBy != nil {
		return ErrDrawAlreadyOffered
	}
	r.drawOfferedBy = &p.Color
	opponent := r.Players[r.otherColor(p.Color)]
	if opponent != nil {
		r.Broadcaster.SendToPlayer(r.Code, opponent.ID, "DRAW_OFFERED", map[string]any{"fromPlayerId": playerID})
	}
	return nil
}

// RespondDraw resolves the outstanding offer. Accepting ends the game in
// a draw; declining clears the offer and notifies the original offerer.
func (r *Room) RespondDraw(playerID string, accept bool) error {
	if r.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	p := r.playerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if r.drawOfferedBy == nil || *r.drawOfferedBy == p.Color {
		return ErrNoDrawOffer
	}
	offerer := r.Players[*r.drawOfferedBy]
	r.drawOfferedBy = nil
	if accept {
		r.Eng.Draw(r.GameState)
		r.endGame()
		return nil
	}
	if offerer != nil {
		r.Broadcaster.SendToPlayer(r.Code, offerer.ID, "DRAW_DECLINED", map[string]any{"byPlayerId": playerID})
	}
	return nil
}

// Leave removes playerID from the room. While waiting this just frees the
// seat; once playing, leaving forfeits to the opponent; in any other phase
// (drafting, placement) the room is ended with no game result.
func (r *Room) Leave(playerID string) error {
	p := r.playerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	switch r.Phase {
	case PhaseWaiting:
		delete(r.Players, p.Color)
		r.Broadcaster.BroadcastToRoom(r.Code, "PLAYER_LEFT", map[string]any{"playerId": playerID, "reason": "left"})
	case PhasePlaying:
		r.Broadcaster.BroadcastToRoom(r.Code, "PLAYER_LEFT", map[string]any{"playerId": playerID, "reason": "left"})
		r.Eng.Resign(r.GameState, p.Color)
		r.endGame()
	default:
		r.Broadcaster.BroadcastToRoom(r.Code, "PLAYER_LEFT", map[string]any{"playerId": playerID, "reason": "left"})
		r.Phase = PhaseEnded
		r.LastActivity = r.Clock.Now()
	}
	return nil
}

func (r *Room) placementSnapshot() map[string]any {
	return map[string]any{
		"currentPlacer": colorName(r.PlacementState.CurrentPlacer),
		"whitePool":     r.PlacementState.Pools[board.White],
		"blackPool":     r.PlacementState.Pools[board.Black],
		"done":          r.PlacementState.Done,
	}
}

func colorName(c board.Color) string {
	if c == board.White {
		return "white"
	}
	return "black"
}

func boardSizeName(files, ranks int) string {
	switch {
	case files == 8 && ranks == 8:
		return "8x8"
	case files == 10 && ranks == 8:
		return "10x8"
	default:
		return "10x10"
	}
}
