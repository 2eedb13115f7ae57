package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/session"
)

type CtxKey int

const (
	CtxSessionClaims CtxKey = iota
)

// SessionClaims returns the verified claims put in ctx by [Session].
func SessionClaims(ctx context.Context) (*session.SessionClaims, bool) {
	claims, ok := ctx.Value(CtxSessionClaims).(*session.SessionClaims)
	return claims, ok
}

// Session verifies the request's session token, if any. Requests with
// a bad token go on without claims and get the stale cookie cleared.
func Session(log *logrus.Logger, cookies *config.Cookies, tokens *session.Tokens) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := cookies.Token(r)
			if !ok {
				h.ServeHTTP(w, r)
				return
			}
			claims, err := tokens.Parse(token)
			if err != nil {
				log.WithError(err).Debug("rejected session token")
				cookies.Clear(w)
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
