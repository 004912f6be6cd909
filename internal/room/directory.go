package room

import (
	"strings"
	"sync"
	"time"

	"fairychess/internal/catalog"
	"fairychess/internal/clock"
	"fairychess/internal/engine"
	"fairychess/internal/rng"
)

const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
const codeLength = 6

// Directory maps room codes to rooms, guarding concurrent lookups and
// insertions (spec §5's "lookups may race with insertions and removals
// and must be atomic").
type Directory struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	table       *catalog.Table
	eng         *engine.Engine
	bc          Broadcaster
	clk         clock.Clock
	rnd         rng.Source
	maxRetries  int
	reapAfter   time.Duration
	sweepEvery  time.Duration

	stopSweep chan struct{}
}

// SetBroadcaster wires the directory's outbound capability after
// construction, so a Broadcaster that itself depends on the Directory (the
// session dispatcher) can be built in two steps without a cyclic
// constructor dependency.
func (d *Directory) SetBroadcaster(bc Broadcaster) {
	d.mu.Lock()
	d.bc = bc
	d.mu.Unlock()
}

func NewDirectory(table *catalog.Table, eng *engine.Engine, bc Broadcaster, ck clock.Clock, rnd rng.Source, retries int) *Directory {
	return &Directory{
		rooms:      map[string]*Room{},
		table:      table,
		eng:        eng,
		bc:         bc,
		clk:        ck,
		rnd:        rnd,
		maxRetries: retries,
		reapAfter:  time.Hour,
		sweepEvery: 5 * time.Minute,
	}
}

// Create allocates a fresh room code, registers the room, and starts its
// worker goroutine.
func (d *Directory) Create(settings Settings) (*Room, error) {
	code, err := d.allocateCode()
	if err != nil {
		return nil, err
	}
	r := New(code, settings, d.table, d.eng, d.bc, d.clk)
	d.mu.Lock()
	d.rooms[code] = r
	d.mu.Unlock()
	go r.Run()
	return r, nil
}

func (d *Directory) allocateCode() (string, error) {
	for i := 0; i < d.maxRetries; i++ {
		code := d.randomCode()
		d.mu.RLock()
		_, taken := d.rooms[code]
		d.mu.RUnlock()
		if !taken {
			return code, nil
		}
	}
	return "", ErrAllocationFailed
}

func (d *Directory) randomCode() string {
	var sb strings.Builder
	for i := 0; i < codeLength; i++ {
		sb.WriteByte(codeAlphabet[d.rnd.Intn(len(codeAlphabet))])
	}
	return sb.String()
}

// Get looks up a room by code, case-insensitively, uppercasing on input
// per spec §6.
func (d *Directory) Get(code string) (*Room, bool) {
	code = strings.ToUpper(code)
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.rooms[code]
	return r, ok
}

// Remove drops a room from the directory and stops its worker.
func (d *Directory) Remove(code string) {
	d.mu.Lock()
	r, ok := d.rooms[code]
	if ok {
		delete(d.rooms, code)
	}
	d.mu.Unlock()
	if ok {
		r.Stop()
	}
}

// StartSweeper launches the periodic stale-room eviction described in
// spec §5: every 5 minutes, evict ended rooms idle for an hour or more.
// LastActivity is recorded by the room itself, at creation and when it
// moves to the ended phase.
func (d *Directory) StartSweeper() {
	d.stopSweep = make(chan struct{})
	go func() {
		ticker := time.NewTicker(d.sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				d.sweep()
			case <-d.stopSweep:
				return
			}
		}
	}()
}

func (d *Directory) StopSweeper() {
	if d.stopSweep != nil {
		close(d.stopSweep)
	}
}

func (d *Directory) sweep() {
	cutoff := d.clk.Now().Add(-d.reapAfter)
	d.mu.RLock()
	rooms := make(map[string]*Room, len(d.rooms))
	for code, r := range d.rooms {
		rooms[code] = r
	}
	d.mu.RUnlock()

	var stale []string
	for code, r := range rooms {
		phase, lastActivity := r.Snapshot()
		if phase == PhaseEnded && lastActivity.Before(cutoff) {
			stale = append(stale, code)
		}
	}
	for _, code := range stale {
		d.Remove(code)
	}
}
