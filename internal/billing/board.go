package billing

import (
	"sync"
	"sync/atomic"
	"time"

	"medibill/internal/domain"
)

// Snapshot is one fetched canonical collection.
type Snapshot struct {
	Invoices   []domain.Invoice
	Source     domain.InvoiceSource
	FetchedAt  time.Time
	Generation uint64
}

// Board holds the most recent snapshot for one viewer scope. Each refresh
// takes a generation number when it starts; a finished refresh is applied only
// if no later-started refresh has been applied already, so an overlapping
// stale response never replaces a fresher one.
type Board struct {
	next atomic.Uint64

	mu      sync.RWMutex
	current *Snapshot
}

// Begin reserves the generation number for a refresh that is about to start.
func (b *Board) Begin() uint64 {
	return b.next.Add(1)
}

// Apply installs snap under generation gen unless a newer generation is
// already installed. It returns the snapshot now current and whether snap won.
func (b *Board) Apply(gen uint64, snap Snapshot) (Snapshot, bool) {
	snap.Generation = gen

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != nil && b.current.Generation > gen {
		return *b.current, false
	}
	b.current = &snap
	return snap, true
}

// Current returns the installed snapshot, if any.
func (b *Board) Current() (Snapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.current == nil {
		return Snapshot{}, false
	}
	return *b.current, true
}

// DefaultBoardTTL is how long an unused scope keeps its board.
const DefaultBoardTTL = 15 * time.Minute

// Boards keys one Board per viewer scope. Boards not requested for ttl are
// dropped.
type Boards struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	boards    map[string]*boardEntry
	lastSweep time.Time
}

type boardEntry struct {
	board    *Board
	lastUsed time.Time
}

// NewBoards creates an empty board registry. A ttl of zero uses
// DefaultBoardTTL.
func NewBoards(ttl time.Duration) *Boards {
	if ttl <= 0 {
		ttl = DefaultBoardTTL
	}
	return &Boards{ttl: ttl, now: time.Now, boards: make(map[string]*boardEntry)}
}

// For returns the board for key, creating it on first use.
func (s *Boards) For(key string) *Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.ttl {
		s.evictIdle(now)
	}

	e, ok := s.boards[key]
	if !ok {
		e = &boardEntry{board: &Board{}}
		s.boards[key] = e
	}
	e.lastUsed = now
	return e.board
}

// Len returns the number of live boards.
func (s *Boards) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.boards)
}

func (s *Boards) evictIdle(now time.Time) {
	for key, e := range s.boards {
		if now.Sub(e.lastUsed) >= s.ttl {
			delete(s.boards, key)
		}
	}
	s.lastSweep = now
}
