package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/mines"
)

var ErrNotFound = errors.New("session not found")

// Store keeps live sessions in memory. Nothing survives a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
	maxCells int
}

// NewStore returns a store whose sessions are capped at maxCells cells
// per round, or uncapped when maxCells is 0.
func NewStore(maxCells int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
		maxCells: maxCells,
	}
}

func (st *Store) Create(params mines.Params) (*Session, error) {
	s, err := newSession(uuid.NewString(), params, mines.NewRand(), st.now, st.maxCells)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	Log.WithFields(logrus.Fields{
		"session": s.ID,
		"params":  params.String(),
	}).Debug("session created")
	return s, nil
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions nobody touched for longer than idle and returns
// how many were dropped.
func (st *Store) Sweep(idle time.Duration) int {
	cutoff := st.now().Add(-idle)

	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper sweeps every interval until ctx is done.
func (st *Store) RunSweeper(ctx context.Context, interval, idle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := st.Sweep(idle); n > 0 {
				Log.WithFields(logrus.Fields{
					"dropped": n,
					"live":    st.Len(),
				}).Info("swept idle sessions")
			}
		}
	}
}
