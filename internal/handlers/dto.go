package handlers

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

// NewGameDTO holds optional overrides of the configured board.
type NewGameDTO struct {
	Width     int    `schema:"width"`
	Height    int    `schema:"height"`
	MineCount int    `schema:"mine_count"`
	Reveal    string `schema:"reveal"`
}

func ParseNewGameDTO(src url.Values) (NewGameDTO, error) {
	var dto NewGameDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

// Params fills the fields missing from dto with base and rejects boards
// larger than maxCells.
func (dto NewGameDTO) Params(base mines.Params, maxCells int) (mines.Params, error) {
	p := base
	if dto.Width != 0 {
		p.Width = dto.Width
	}
	if dto.Height != 0 {
		p.Height = dto.Height
	}
	if dto.MineCount != 0 {
		p.MineCount = dto.MineCount
	}
	if dto.Reveal != "" {
		reveal, err := mines.ParseRevealMode(dto.Reveal)
		if err != nil {
			return mines.Params{}, err
		}
		p.Reveal = reveal
	}
	if err := p.ValidateLimit(maxCells); err != nil {
		return mines.Params{}, err
	}
	return p, nil
}

type PositionDTO struct {
	Row *int `schema:"row,required"`
	Col *int `schema:"col,required"`
}

func ParsePosition(src url.Values) (row, col int, err error) {
	var dto PositionDTO
	if err := dec.Decode(&dto, src); err != nil {
		return 0, 0, err
	}
	if dto.Row == nil || dto.Col == nil {
		return 0, 0, fmt.Errorf("row and col are required")
	}
	return *dto.Row, *dto.Col, nil
}

type SessionDTO struct {
	SessionId string        `json:"session_id"`
	Token     string        `json:"token,omitempty"`
	Grid      mines.Grid    `json:"grid"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	MineCount int           `json:"mine_count"`
	Flags     int           `json:"flags"`
	Reveal    string        `json:"reveal"`
	Outcome   mines.Outcome `json:"outcome"`
	StartedAt int64         `json:"started_at"`
	EndedAt   *int64        `json:"ended_at,omitempty"`
}

func NewSessionDTO(s session.Snapshot) *SessionDTO {
	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &SessionDTO{
		SessionId: s.ID,
		Grid:      s.Grid,
		Width:     s.Width,
		Height:    s.Height,
		MineCount: s.MineCount,
		Flags:     s.Flags,
		Reveal:    s.Reveal.String(),
		Outcome:   s.Outcome,
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	}
}

type CellDTO struct {
	mines.CellView
	Outcome mines.Outcome `json:"outcome"`
}
