package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Manager writes and clears the auth cookie pair. Cookies are HttpOnly
// and Lax so the tokens stay out of script reach.
type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

// SetPair installs access and refresh token cookies, each expiring with
// its token.
func (m *Manager) SetPair(c *gin.Context, access string, aexp time.Time, refresh string, rexp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	m.set(c, "access_token", access, maxAgeFrom(aexp))
	m.set(c, "refresh_token", refresh, maxAgeFrom(rexp))
}

// Clear expires both cookies immediately.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	m.set(c, "access_token", "", -1)
	m.set(c, "refresh_token", "", -1)
}

func (m *Manager) set(c *gin.Context, name, value string, maxAge int) {
	c.SetCookie(name, value, maxAge, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
