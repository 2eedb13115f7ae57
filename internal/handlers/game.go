package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var (
	errNoSession      = errors.New("no session token")
	errForeignSession = errors.New("token does not belong to this session")
)

type GameHandler struct {
	log      *logrus.Logger
	store    *session.Store
	tokens   *session.Tokens
	cookies  *config.Cookies
	ws       *config.WebSocket
	defaults mines.Params
	maxCells int
}

func NewGameHandler(
	log *logrus.Logger,
	store *session.Store,
	tokens *session.Tokens,
	cookies *config.Cookies,
	ws *config.WebSocket,
	defaults mines.Params,
	maxCells int,
) *GameHandler {
	return &GameHandler{
		log:      log,
		store:    store,
		tokens:   tokens,
		cookies:  cookies,
		ws:       ws,
		defaults: defaults,
		maxCells: maxCells,
	}
}

// statusOf maps core and session errors to HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, errForeignSession):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (g *GameHandler) fail(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		g.log.WithError(err).Error("unable to handle game request")
	}
	sendError(w, g.log, status, err)
}

// session resolves the {id} of the request and checks that the caller's
// token was issued for it.
func (g *GameHandler) session(r *http.Request) (*session.Session, error) {
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok {
		return nil, errNoSession
	}
	id := r.PathValue("id")
	if claims.SessionID != id {
		return nil, errForeignSession
	}
	return g.store.Get(id)
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	params, err := dto.Params(g.defaults, g.maxCells)
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	s, err := g.store.Create(params)
	if err != nil {
		g.fail(w, err)
		return
	}
	token, err := g.tokens.Sign(s.ID)
	if err != nil {
		g.store.Delete(s.ID)
		g.fail(w, err)
		return
	}
	g.cookies.Refresh(w, token, g.tokens.Lifetime())

	g.log.WithFields(logrus.Fields{
		"session": s.ID,
		"params":  params.String(),
	}).Info("new game")

	dtoOut := NewSessionDTO(s.Snapshot())
	dtoOut.Token = token
	sendJSONOrLog(w, g.log, dtoOut)
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, err := g.session(r)
	if err != nil {
		g.fail(w, err)
		return
	}
	sendJSONOrLog(w, g.log, NewSessionDTO(s.Snapshot()))
}

func (g *GameHandler) move(
	w http.ResponseWriter, r *http.Request,
	do func(s *session.Session, row, col int) (mines.Outcome, error),
) {
	s, err := g.session(r)
	if err != nil {
		g.fail(w, err)
		return
	}
	row, col, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	if _, err := do(s, row, col); err != nil {
		g.fail(w, err)
		return
	}
	sendJSONOrLog(w, g.log, NewSessionDTO(s.Snapshot()))
}

func (g *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, (*session.Session).Reveal)
}

func (g *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, (*session.Session).ToggleFlag)
}

func (g *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, err := g.session(r)
	if err != nil {
		g.fail(w, err)
		return
	}
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	params, err := dto.Params(s.Params(), g.maxCells)
	if err != nil {
		g.fail(w, err)
		return
	}
	if err := s.Reset(params); err != nil {
		g.fail(w, err)
		return
	}
	sendJSONOrLog(w, g.log, NewSessionDTO(s.Snapshot()))
}

func (g *GameHandler) Cell(w http.ResponseWriter, r *http.Request) {
	s, err := g.session(r)
	if err != nil {
		g.fail(w, err)
		return
	}
	row, col, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	view, err := s.Cell(row, col)
	if err != nil {
		g.fail(w, err)
		return
	}
	sendJSONOrLog(w, g.log, CellDTO{CellView: view, Outcome: s.Outcome()})
}

func (g *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	s, err := g.session(r)
	if err != nil {
		g.fail(w, err)
		return
	}
	g.store.Delete(s.ID)
	g.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
