package session

import "time"

// Transport is the narrow capability the dispatcher needs from whatever
// carries bytes to and from clients — a gorilla/websocket connection pool
// in production, a fake in tests. One transport connection binds to at
// most one (room, player) pair at a time (spec §4.11).
type Transport interface {
	SendToConnection(connID string, raw []byte) error
	BroadcastToConnections(connIDs []string, raw []byte) error
}

// NowMs is injected so the dispatcher never calls time.Now directly,
// keeping it deterministic under test.
type NowMs func() int64

func RealNowMs() int64 { return time.Now().UnixMilli() }
