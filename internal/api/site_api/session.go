package site_api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const sessionCookie = "fs_session"

type sessionKey struct{}

// session: id из cookie и признак, что браузер его уже возвращал.
type session struct {
	id        string
	returning bool
}

// session выдаёт браузеру id сессии, к которому привязаны состояния форм.
func (a *SiteAPI) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess session
		if c, err := r.Cookie(sessionCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sess = session{id: c.Value, returning: true}
			}
		}
		if !sess.returning {
			sess.id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sess.id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) session {
	sess, _ := r.Context().Value(sessionKey{}).(session)
	return sess
}

func sessionID(r *http.Request) string {
	return sessionFrom(r).id
}
