package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"spendlog/internal/config"
	"spendlog/internal/logger"
	"spendlog/internal/models"
	"spendlog/internal/services"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "session"
	// UserIDKey is the gin context key holding the authenticated user ID.
	UserIDKey = "userID"
	// SessionIDKey is the gin context key holding the current session ID.
	SessionIDKey = "sessionID"

	loginPath   = "/login"
	landingPath = "/list"
	tokenIssuer = "spendlog"
)

// SessionClaims are the claims of a session cookie. ID (jti) is the session
// row ID and Subject is the owning user ID.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token referencing session.
func GenerateSessionToken(session *models.Session, secret []byte) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   strconv.FormatUint(uint64(session.UserID), 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseSessionToken verifies the signature and expiry of a session token.
func ParseSessionToken(tokenString string, secret []byte) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("session token has no session ID")
	}
	return claims, nil
}

// SessionAuth binds the session cookie to server-side session rows.
type SessionAuth struct {
	sessions services.SessionServicer
	secret   []byte
	secure   bool
}

// NewSessionAuth creates a SessionAuth signing cookies with the configured secret.
func NewSessionAuth(sessions services.SessionServicer, cfg *config.Config) *SessionAuth {
	return &SessionAuth{
		sessions: sessions,
		secret:   []byte(cfg.SessionSecret),
		secure:   cfg.SecureCookie,
	}
}

// Login opens a session for userID and sets the cookie.
func (a *SessionAuth) Login(c *gin.Context, userID uint) error {
	if _, err := a.sessions.PurgeExpired(); err != nil {
		logger.Get().Warnw("failed to purge expired sessions", "error", err)
	}

	session, err := a.sessions.CreateSession(userID)
	if err != nil {
		return err
	}
	return a.setCookie(c, session)
}

// Logout deletes the session the cookie refers to, if any, and clears the cookie.
func (a *SessionAuth) Logout(c *gin.Context) {
	if raw, err := c.Cookie(SessionCookieName); err == nil {
		if claims, err := ParseSessionToken(raw, a.secret); err == nil {
			if err := a.sessions.DeleteSession(claims.ID); err != nil {
				logger.Get().Errorw("failed to delete session", "error", err, "session_id", claims.ID)
			}
		}
	}
	a.clearCookie(c)
}

// resolve returns the live session the request's cookie refers to.
func (a *SessionAuth) resolve(c *gin.Context) (*models.Session, bool) {
	raw, err := c.Cookie(SessionCookieName)
	if err != nil || raw == "" {
		return nil, false
	}

	claims, err := ParseSessionToken(raw, a.secret)
	if err != nil {
		return nil, false
	}

	session, err := a.sessions.ValidateSession(claims.ID)
	if err != nil {
		return nil, false
	}
	if claims.Subject != strconv.FormatUint(uint64(session.UserID), 10) {
		return nil, false
	}
	return session, true
}

// Required rejects requests without a live session by redirecting to the
// login page. Sessions in the second half of their lifetime are renewed.
func (a *SessionAuth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := a.resolve(c)
		if !ok {
			a.clearCookie(c)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		renewed, err := a.sessions.RenewSession(session)
		if err != nil {
			logger.Get().Warnw("failed to renew session", "error", err, "session_id", session.ID)
		} else if renewed {
			if err := a.setCookie(c, session); err != nil {
				logger.Get().Warnw("failed to reissue session cookie", "error", err, "session_id", session.ID)
			}
		}

		c.Set(UserIDKey, session.UserID)
		c.Set(SessionIDKey, session.ID)
		c.Next()
	}
}

// RedirectIfAuthenticated sends visitors with a live session to the expense
// list instead of the login and signup forms.
func (a *SessionAuth) RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := a.resolve(c); ok {
			c.Redirect(http.StatusFound, landingPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *SessionAuth) setCookie(c *gin.Context, session *models.Session) error {
	token, err := GenerateSessionToken(session, a.secret)
	if err != nil {
		return err
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", a.secure, true)
	return nil
}

func (a *SessionAuth) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", a.secure, true)
}
