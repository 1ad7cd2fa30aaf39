package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libris-app/libris/internal/core/domain"
	"github.com/libris-app/libris/internal/i18n"
)

// Gin context keys for the resolved session.
const (
	ctxSession = "libris.session"
	ctxRequest = "libris.request"
)

// withSession resolves the session cookie into request-scoped context.
// An absent or unknown cookie is not an error here; downstream
// handlers decide whether authentication is required.
func (s *Server) withSession(c *gin.Context) {
	info := domain.RequestInfo{Locale: domain.LocaleArabic}

	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		session, err := s.sessions.Get(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(ctxSession, session)
			info = session.Info()
		case !errors.Is(err, domain.ErrNotFound):
			s.log.Error("session lookup failed", "error", err)
		}
	}

	c.Set(ctxRequest, info)
	c.Next()
}

// requireLogin rejects requests without a valid session.
func (s *Server) requireLogin(c *gin.Context) {
	if sessionFrom(c) == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": i18n.T("please_log_in", requestFrom(c).Locale),
		})
		return
	}
	c.Next()
}

func sessionFrom(c *gin.Context) *domain.Session {
	if v, ok := c.Get(ctxSession); ok {
		if session, ok := v.(*domain.Session); ok {
			return session
		}
	}
	return nil
}

func requestFrom(c *gin.Context) domain.RequestInfo {
	if v, ok := c.Get(ctxRequest); ok {
		if info, ok := v.(domain.RequestInfo); ok {
			return info
		}
	}
	return domain.RequestInfo{Locale: domain.LocaleArabic}
}
