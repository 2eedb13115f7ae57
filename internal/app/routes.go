package app

import (
	"github.com/vancomm/minefield/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.store, a.tokens, a.cookies, a.ws, a.defaults, a.config.Board.MaxCells,
	)

	a.router.HandleFunc("GET /v1/status", handlers.Status)

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("DELETE /v1/game/{id}", game.End)
	a.router.HandleFunc("POST /v1/game/{id}/reveal", game.Reveal)
	a.router.HandleFunc("POST /v1/game/{id}/flag", game.Flag)
	a.router.HandleFunc("POST /v1/game/{id}/reset", game.Reset)
	a.router.HandleFunc("GET /v1/game/{id}/cell", game.Cell)

	a.router.HandleFunc("/v1/game/{id}/connect", game.ConnectWS)
}
