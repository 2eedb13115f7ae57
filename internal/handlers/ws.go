package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// ConnectWS streams text commands to the session and answers every
// message with the resulting session state. A command error is sent
// back as {"error": ...} and the connection stays open.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, err := g.session(r)
	if err != nil {
		g.fail(w, err)
		return
	}
	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("upgrade")
		return
	}
	defer c.Close()

	log := g.log.WithField("session", s.ID)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)

		var reply any
		if err := s.ExecuteAll(text); err != nil {
			log.WithError(err).Debug("command")
			reply = wrapError(err)
		} else {
			reply = NewSessionDTO(s.Snapshot())
		}
		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Error("write")
			break
		}
		log.Debug("\t< <session data>")
	}
}
