// Package session owns the minefields of running games: one field per
// session, each session serialized by its own lock.
package session

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/mines"
)

var Log = logrus.New()

type Session struct {
	ID string

	mu        sync.Mutex
	field     *mines.Minefield
	startedAt time.Time
	endedAt   time.Time
	lastSeen  time.Time
	now       func() time.Time
	// maxCells caps the size of every round, 0 for no cap.
	maxCells int
}

// Snapshot is a consistent copy of what the player may see.
type Snapshot struct {
	ID        string
	Grid      mines.Grid
	Width     int
	Height    int
	MineCount int
	Flags     int
	Reveal    mines.RevealMode
	Outcome   mines.Outcome
	StartedAt time.Time
	EndedAt   time.Time
}

// New creates a session whose rounds are at most maxCells cells large.
// A maxCells of 0 means no cap.
func New(id string, params mines.Params, r *rand.Rand, maxCells int) (*Session, error) {
	return newSession(id, params, r, time.Now, maxCells)
}

func newSession(
	id string, params mines.Params, r *rand.Rand, now func() time.Time, maxCells int,
) (*Session, error) {
	if err := params.ValidateLimit(maxCells); err != nil {
		return nil, err
	}
	field, err := mines.New(params, r)
	if err != nil {
		return nil, err
	}
	t := now()
	return &Session{
		ID:        id,
		field:     field,
		startedAt: t,
		lastSeen:  t,
		now:       now,
		maxCells:  maxCells,
	}, nil
}

func (s *Session) log() *logrus.Entry {
	return Log.WithField("session", s.ID)
}

// after records the end of the round. Callers hold s.mu and have
// already touched lastSeen.
func (s *Session) after(o mines.Outcome) {
	if o.Over() && s.endedAt.IsZero() {
		s.endedAt = s.lastSeen
		s.log().WithFields(logrus.Fields{
			"outcome":  o.String(),
			"duration": s.endedAt.Sub(s.startedAt).String(),
		}).Info("round over")
	}
}

func (s *Session) Reveal(row, col int) (mines.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.field.Reveal(row, col)
	s.lastSeen = s.now()
	if err != nil {
		return o, err
	}
	s.after(o)
	return o, nil
}

func (s *Session) ToggleFlag(row, col int) (mines.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.field.ToggleFlag(row, col)
	s.lastSeen = s.now()
	if err != nil {
		return o, err
	}
	s.after(o)
	return o, nil
}

// Reset starts a new round on the same session.
func (s *Session) Reset(params mines.Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := params.ValidateLimit(s.maxCells); err != nil {
		return err
	}
	if err := s.field.Reset(params); err != nil {
		return err
	}
	s.startedAt = s.now()
	s.lastSeen = s.startedAt
	s.endedAt = time.Time{}
	s.log().WithField("params", params.String()).Debug("session reset")
	return nil
}

// ResetWithMines starts a new round on a fixed layout.
func (s *Session) ResetWithMines(width, height int, points ...mines.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := mines.Params{Width: width, Height: height, MineCount: len(points)}
	if err := size.CheckSize(s.maxCells); err != nil {
		return err
	}
	if err := s.field.ResetWithMines(width, height, points...); err != nil {
		return err
	}
	s.startedAt = s.now()
	s.lastSeen = s.startedAt
	s.endedAt = time.Time{}
	return nil
}

func (s *Session) Params() mines.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.Params()
}

func (s *Session) Outcome() mines.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.Outcome()
}

func (s *Session) Cell(row, col int) (mines.CellView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.View(row, col)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	params := s.field.Params()
	return Snapshot{
		ID:        s.ID,
		Grid:      s.field.PlayerGrid(),
		Width:     params.Width,
		Height:    params.Height,
		MineCount: params.MineCount,
		Flags:     s.field.Flags(),
		Reveal:    params.Reveal,
		Outcome:   s.field.Outcome(),
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
	}
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
