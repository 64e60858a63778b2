// Package identity manages the device-local display name used to
// attribute dinner records. The name lives in a single signed cookie;
// there are no accounts.
package identity

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lestrrat-go/jwx/jwa"
	"github.com/lestrrat-go/jwx/jwt"
)

// CookieName is the single slot holding the device's display name.
const CookieName = "bangohan_user_name"

// TTL is the fixed cookie lifetime. It is not renewed on read.
const TTL = 30 * 24 * time.Hour

var ErrEmptyName = errors.New("display name is empty")

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret []byte) *Manager {
	return &Manager{
		secret: secret,
		ttl:    TTL,
		now:    time.Now,
	}
}

// IssueToken signs the display name into a compact token carrying the
// expiry. The token doubles as a cookie-safe encoding for non-ASCII names.
func (m *Manager) IssueToken(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	now := m.now()
	t := jwt.New()
	if err := t.Set(jwt.SubjectKey, name); err != nil {
		return "", err
	}
	if err := t.Set(jwt.IssuedAtKey, now); err != nil {
		return "", err
	}
	if err := t.Set(jwt.ExpirationKey, now.Add(m.ttl)); err != nil {
		return "", err
	}
	signed, err := jwt.Sign(t, jwa.HS256, m.secret)
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

// ParseToken verifies the signature and expiry and returns the display name.
func (m *Manager) ParseToken(raw string) (string, error) {
	t, err := jwt.Parse(
		[]byte(raw),
		jwt.WithVerify(jwa.HS256, m.secret),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	)
	if err != nil {
		return "", err
	}
	name := t.Subject()
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// SetUserName stores the display name in the identity cookie.
func (m *Manager) SetUserName(c *gin.Context, name string) error {
	token, err := m.IssueToken(name)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", "", false, true)
	return nil
}

// GetUserName returns the display name from the identity cookie, if any.
// An expired or tampered cookie reads as absent.
func (m *Manager) GetUserName(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	name, err := m.ParseToken(raw)
	if err != nil {
		return "", false
	}
	return name, true
}

func (m *Manager) HasUserName(c *gin.Context) bool {
	_, ok := m.GetUserName(c)
	return ok
}

// ClearUserName drops the identity cookie.
func (m *Manager) ClearUserName(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
