package session

import (
	"sync"

	"fairychess/internal/board"
	"fairychess/internal/engine"
	"fairychess/internal/room"
)

// connState is what the dispatcher remembers about one transport
// connection: which room and which seated player it currently speaks for.
type connState struct {
	RoomCode string
	PlayerID string
}

// RoomDefaults carries the process-wide defaults new rooms are created
// with when a CREATE_ROOM payload omits them.
type RoomDefaults struct {
	Budget                 int
	Files                  int
	Ranks                  int
	DraftTimeoutSeconds    int
	CountdownSeconds       int
	RevealSeconds          int
	DisconnectGraceSeconds int
}

// Dispatcher routes inbound envelopes to the Directory/Room layer and
// implements room.Broadcaster so rooms can push messages back out without
// depending on this package (spec §4.11).
type Dispatcher struct {
	dir       *room.Directory
	transport Transport
	now       NowMs
	defaults  RoomDefaults

	mu    sync.RWMutex
	conns map[string]connState          // connID -> state
	seats map[string]map[string]string  // roomCode -> playerID -> connID
}

func NewDispatcher(dir *room.Directory, t Transport, now NowMs, defaults RoomDefaults) *Dispatcher {
	if now == nil {
		now = RealNowMs
	}
	return &Dispatcher{
		dir:       dir,
		transport: t,
		now:       now,
		defaults:  defaults,
		conns:     map[string]connState{},
		seats:     map[string]map[string]string{},
	}
}

func (d *Dispatcher) bind(connID, roomCode, playerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.conns[connID] = connState{RoomCode: roomCode, PlayerID: playerID}
	if d.seats[roomCode] == nil {
		d.seats[roomCode] = map[string]string{}
	}
	d.seats[roomCode][playerID] = connID
}

// SendToPlayer implements room.Broadcaster.
func (d *Dispatcher) SendToPlayer(roomCode, playerID, msgType string, payload any) {
	d.mu.RLock()
	connID, ok := d.seats[roomCode][playerID]
	d.mu.RUnlock()
	if !ok {
		return
	}
	raw, err := Encode(msgType, d.now(), payload)
	if err != nil {
		return
	}
	_ = d.transport.SendToConnection(connID, raw)
}

// BroadcastToRoom implements room.Broadcaster.
func (d *Dispatcher) BroadcastToRoom(roomCode, msgType string, payload any) {
	raw, err := Encode(msgType, d.now(), payload)
	if err != nil {
		return
	}
	d.mu.RLock()
	seats := d.seats[roomCode]
	connIDs := make([]string, 0, len(seats))
	for _, connID := range seats {
		connIDs = append(connIDs, connID)
	}
	d.mu.RUnlock()
	if len(connIDs) > 0 {
		_ = d.transport.BroadcastToConnections(connIDs, raw)
	}
}

func (d *Dispatcher) sendError(connID, code, message string) {
	raw, err := Encode("ROOM_ERROR", d.now(), map[string]any{"code": code, "message": message})
	if err != nil {
		return
	}
	_ = d.transport.SendToConnection(connID, raw)
}

func (d *Dispatcher) sendDirect(connID, msgType string, payload any) {
	raw, err := Encode(msgType, d.now(), payload)
	if err != nil {
		return
	}
	_ = d.transport.SendToConnection(connID, raw)
}

// HandleMessage decodes one inbound envelope from connID and routes it.
func (d *Dispatcher) HandleMessage(connID string, raw []byte) {
	env, err := Decode(raw, nil)
	if err != nil {
		d.sendError(connID, "MALFORMED", "could not parse message")
		return
	}
	switch env.Type {
	case "CREATE_ROOM":
		d.handleCreateRoom(connID, raw)
	case "JOIN_ROOM":
		d.handleJoinRoom(connID, raw)
	case "DRAFT_SUBMIT":
		d.handleDraftSubmit(connID, raw)
	case "PLACE_PIECE":
		d.handlePlacePiece(connID, raw)
	case "MAKE_MOVE":
		d.handleMakeMove(connID, raw)
	case "RESIGN":
		d.handleResign(connID)
	case "OFFER_DRAW":
		d.handleOfferDraw(connID)
	case "RESPOND_DRAW":
		d.handleRespondDraw(connID, raw)
	case "LEAVE_ROOM":
		d.handleLeaveRoom(connID)
	case "RECONNECT":
		d.handleReconnect(connID, raw)
	case "PING":
		d.sendDirect(connID, "PONG", map[string]any{})
	default:
		d.sendError(connID, "UNKNOWN_TYPE", "unrecognized message type: "+env.Type)
	}
}

func (d *Dispatcher) handleCreateRoom(connID string, raw []byte) {
	var p CreateRoomPayload
	if _, err := Decode(raw, &p); err != nil {
		d.sendError(connID, "MALFORMED", "invalid CREATE_ROOM payload")
		return
	}
	files, ranks := d.defaults.Files, d.defaults.Ranks
	if p.Settings.BoardSize != "" {
		files, ranks = BoardDims(p.Settings.BoardSize)
	}
	budget := p.Settings.Budget
	if budget <= 0 {
		budget = d.defaults.Budget
	}
	r, err := d.dir.Create(room.Settings{
		Budget: budget, Files: files, Ranks: ranks,
		DraftTimeoutSeconds:    d.defaults.DraftTimeoutSeconds,
		CountdownSeconds:       d.defaults.CountdownSeconds,
		RevealSeconds:          d.defaults.RevealSeconds,
		DisconnectGraceSeconds: d.defaults.DisconnectGraceSeconds,
	})
	if err != nil {
		d.sendError(connID, "ALLOCATION_FAILED", err.Error())
		return
	}
	playerID := connID
	done := make(chan struct{})
	var color board.Color
	var joinErr error
	r.Submit(func() {
		color, joinErr = r.Join(playerID, p.PlayerName, connID)
		close(done)
	})
	<-done
	if joinErr != nil {
		d.sendError(connID, "JOIN_FAILED", joinErr.Error())
		return
	}
	d.bind(connID, r.Code, playerID)
	d.sendDirect(connID, "ROOM_CREATED", map[string]any{
		"roomCode": r.Code, "playerId": playerID, "color": colorString(color),
	})
}

func (d *Dispatcher) handleJoinRoom(connID string, raw []byte) {
	var p JoinRoomPayload
	if _, err := Decode(raw, &p); err != nil {
		d.sendError(connID, "MALFORMED", "invalid JOIN_ROOM payload")
		return
	}
	r, ok := d.dir.Get(p.RoomCode)
	if !ok {
		d.sendError(connID, "NOT_FOUND", "room not found")
		return
	}
	playerID := connID
	done := make(chan struct{})
	var color board.Color
	var joinErr error
	r.Submit(func() {
		color, joinErr = r.Join(playerID, p.PlayerName, connID)
		close(done)
	})
	<-done
	if joinErr != nil {
		d.sendError(connID, "JOIN_FAILED", joinErr.Error())
		return
	}
	d.bind(connID, r.Code, playerID)
	d.sendDirect(connID, "ROOM_JOINED", map[string]any{
		"roomCode": r.Code, "playerId": playerID, "color": colorString(color),
	})
}

func (d *Dispatcher) handleDraftSubmit(connID string, raw []byte) {
	st, r, ok := d.lookup(connID)
	if !ok {
		d.sendError(connID, "NOT_BOUND", "connection is not seated in a room")
		return
	}
	var p DraftSubmitPayload
	if _, err := Decode(raw, &p); err != nil {
		d.sendError(connID, "MALFORMED", "invalid DRAFT_SUBMIT payload")
		return
	}
	picks := map[string]int{}
	for _, pc := range p.Draft {
		picks[pc.PieceTypeID] += pc.Count
	}
	r.Submit(func() {
		if err := r.DraftSubmit(st.PlayerID, picks); err != nil {
			d.sendError(connID, "DRAFT_REJECTED", err.Error())
		}
	})
}

func (d *Dispatcher) handlePlacePiece(connID string, raw []byte) {
	st, r, ok := d.lookup(connID)
	if !ok {
		d.sendError(connID, "NOT_BOUND", "connection is not seated in a room")
		return
	}
	var p PlacePiecePayload
	if _, err := Decode(raw, &p); err != nil {
		d.sendError(connID, "MALFORMED", "invalid PLACE_PIECE payload")
		return
	}
	pos := board.Position{File: p.Position.File, Rank: p.Position.Rank}
	r.Submit(func() {
		if err := r.PlacePiece(st.PlayerID, p.PieceID, pos); err != nil {
			d.sendError(connID, "PLACEMENT_ERROR", err.Error())
		}
	})
}

func (d *Dispatcher) handleMakeMove(connID string, raw []byte) {
	st, r, ok := d.lookup(connID)
	if !ok {
		d.sendError(connID, "NOT_BOUND", "connection is not seated in a room")
		return
	}
	var p MakeMovePayload
	if _, err := Decode(raw, &p); err != nil {
		d.sendError(connID, "MALFORMED", "invalid MAKE_MOVE payload")
		return
	}
	from := board.Position{File: p.From.File, Rank: p.From.Rank}
	to := board.Position{File: p.To.File, Rank: p.To.Rank}
	r.Submit(func() {
		if err := r.MakeMove(st.PlayerID, from, to, p.PromotionPieceType); err != nil {
			d.sendError(connID, "MOVE_REJECTED", err.Error())
		}
	})
}

func (d *Dispatcher) handleResign(connID string) {
	st, r, ok := d.lookup(connID)
	if !ok {
		d.sendError(connID, "NOT_BOUND", "connection is not seated in a room")
		return
	}
	r.Submit(func() {
		_ = r.Resign(st.PlayerID)
	})
}

func (d *Dispatcher) handleOfferDraw(connID string) {
	st, r, ok := d.lookup(connID)
	if !ok {
		d.sendError(connID, "NOT_BOUND", "connection is not seated in a room")
		return
	}
	r.Submit(func() {
		if err := r.OfferDraw(st.PlayerID); err != nil {
			d.sendError(connID, "DRAW_OFFER_REJECTED", err.Error())
		}
	})
}

func (d *Dispatcher) handleRespondDraw(connID string, raw []byte) {
	st, r, ok := d.lookup(connID)
	if !ok {
		d.sendError(connID, "NOT_BOUND", "connection is not seated in a room")
		return
	}
	var p RespondDrawPayload
	if _, err := Decode(raw, &p); err != nil {
		d.sendError(connID, "MALFORMED", "invalid RESPOND_DRAW payload")
		return
	}
	r.Submit(func() {
		if err := r.RespondDraw(st.PlayerID, p.Accept); err != nil {
			d.sendError(connID, "DRAW_RESPONSE_REJECTED", err.Error())
		}
	})
}

func (d *Dispatcher) handleLeaveRoom(connID string) {
	st, r, ok := d.lookup(connID)
	if !ok {
		return
	}
	r.Submit(func() {
		_ = r.Leave(st.PlayerID)
	})
	d.mu.Lock()
	delete(d.conns, connID)
	delete(d.seats[st.RoomCode], st.PlayerID)
	d.mu.Unlock()
}

func (d *Dispatcher) handleReconnect(connID string, raw []byte) {
	var p ReconnectPayload
	if _, err := Decode(raw, &p); err != nil {
		d.sendError(connID, "MALFORMED", "invalid RECONNECT payload")
		return
	}
	r, ok := d.dir.Get(p.RoomCode)
	if !ok {
		d.sendError(connID, "NOT_FOUND", "room not found")
		return
	}
	done := make(chan struct{})
	var color board.Color
	var reErr error
	var phase room.Phase
	var gameState *engine.GameState
	r.Submit(func() {
		color, reErr = r.Reconnect(p.PlayerID, connID)
		phase = r.Phase
		gameState = r.GameState
		close(done)
	})
	<-done
	if reErr != nil {
		d.sendError(connID, "RECONNECT_FAILED", reErr.Error())
		return
	}
	d.bind(connID, r.Code, p.PlayerID)
	d.sendDirect(connID, "SYNC_STATE", map[string]any{
		"roomCode": r.Code, "playerId": p.PlayerID, "color": colorString(color),
		"phase": phase, "gameState": gameState,
	})
}

// Disconnect is called by the transport when a connection drops.
func (d *Dispatcher) Disconnect(connID string) {
	d.mu.Lock()
	st, ok := d.conns[connID]
	delete(d.conns, connID)
	if ok {
		delete(d.seats[st.RoomCode], st.PlayerID)
	}
	d.mu.Unlock()
	if !ok {
		return
	}
	if r, found := d.dir.Get(st.RoomCode); found {
		r.Submit(func() { r.Disconnect(st.PlayerID) })
	}
}

func (d *Dispatcher) lookup(connID string) (connState, *room.Room, bool) {
	d.mu.RLock()
	st, ok := d.conns[connID]
	d.mu.RUnlock()
	if !ok {
		return connState{}, nil, false
	}
	r, found := d.dir.Get(st.RoomCode)
	if !found {
		return connState{}, nil, false
	}
	return st, r, true
}

func colorString(c board.Color) string {
	if c == board.White {
		return "white"
	}
	return "black"
}
