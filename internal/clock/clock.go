// Package clock provides an injectable time source, per design note §9:
// the room controller's timers (countdown, reveal, draft expiry,
// disconnect grace) take a Clock field instead of calling time.Now/
// time.AfterFunc directly, so tests can substitute a fake one.
package clock

import "time"

// Clock is the seam between the room controller and wall-clock time.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the minimal surface the controller needs from a pending timer.
type Timer interface {
	Stop() bool
}

// Real is the production Clock, backed directly by the time package.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return realTimer{time.AfterFunc(d, f)}
}

type realTimer struct{ t *time.Timer }

func (r realTimer) Stop() bool { return r.t.Stop() }
