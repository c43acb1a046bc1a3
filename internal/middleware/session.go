package middleware

import (
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the opaque session id between renders.
const SessionCookie = "quiz_session"

const sessionKey = "session"

// SessionMiddleware attaches the visitor's session to the request context,
// creating one on first visit.
func SessionMiddleware(sessions *service.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *service.Session

		if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
			if existing, ok := sessions.Get(id); ok {
				sess = existing
			}
		}

		if sess == nil {
			sess = sessions.Create()
			c.SetCookie(SessionCookie, sess.ID, 0, "/", "", false, true)
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

func SessionFromContext(c *gin.Context) *service.Session {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	sess, ok := v.(*service.Session)
	if !ok {
		return nil
	}
	return sess
}
