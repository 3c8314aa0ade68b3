package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/connectfour/internal/pkg"
)

const (
	sessionCookieName = "game_session"
	sessionContextKey = "session"
	// used when the game TTL is zero, which keeps games forever
	defaultSessionLifetime = 24 * time.Hour
)

// session - makes sure every game request carries a session cookie and pushes its expiry forward,
// so the cookie lives as long as the stored game.
func (that *Server) session(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id := ""
		if cookie, err := ctx.Cookie(sessionCookieName); err == nil {
			id = cookie.Value
		}

		if id == "" {
			id = pkg.GenerateNewSessionID()
			that.logger.Debug("session cookie not found, new one created", "session", id)
		}

		ctx.SetCookie(&http.Cookie{
			Name:     sessionCookieName,
			Value:    id,
			Expires:  time.Now().Add(that.sessionLifetime),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		ctx.Set(sessionContextKey, id)

		return next(ctx)
	}
}

func sessionID(ctx echo.Context) string {
	id, _ := ctx.Get(sessionContextKey).(string)
	return id
}
