// Package logging builds the process's zap logger, grounded on
// thraizz-mage's zap wiring through its server and game packages: JSON
// output in production, a console encoder in development.
package logging

import "go.uber.org/zap"

// New builds a *zap.Logger. dev selects a human-readable console encoder
// over structured JSON; both write to stderr, production at info level or
// above, development at debug level or above.
func New(dev bool) (*zap.Logger, error) {
	if dev {
		cfg := zap.NewDevelopmentConfig()
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	return cfg.Build()
}

// RoomFields returns the structured fields every room-scoped log line
// carries, so callers don't repeat zap.String("room", code) everywhere.
func RoomFields(roomCode string) []zap.Field {
	return []zap.Field{zap.String("room", roomCode)}
}
