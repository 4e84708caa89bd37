package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"shreekara.in/catalog-web/internal/observability"
)

const (
	sessionCookieName = "SHREEKARA_SESSION"
	sessionMaxAge     = 30 * 24 * 60 * 60

	keyCart = "cart"
	keyCSRF = "csrf"
)

// SessionData is the per-visitor state kept in the signed session cookie.
type SessionData struct {
	CartCount int
	CSRFToken string

	raw   *sessions.Session
	dirty bool
}

// MarkDirty flags the session for writing before the response is sent.
func (s *SessionData) MarkDirty() { s.dirty = true }

// AddToCart increments the cart counter by qty and returns the new count.
func (s *SessionData) AddToCart(qty int) int {
	if qty < 1 {
		qty = 1
	}
	s.CartCount += qty
	s.MarkDirty()
	return s.CartCount
}

// Sessions loads and persists SessionData through a gorilla cookie store.
type Sessions struct {
	store *sessions.CookieStore
}

// NewSessions builds the session middleware. An empty key yields a
// process-ephemeral signing key (development only).
func NewSessions(signingKey string, secure bool) *Sessions {
	key := []byte(signingKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store}
}

// Handler loads or initializes the session and stores it in request context.
func (m *Sessions) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// a tampered or stale cookie yields a fresh session
		raw, _ := m.store.Get(r, sessionCookieName)
		sd := &SessionData{raw: raw}
		sd.CartCount, _ = raw.Values[keyCart].(int)
		sd.CSRFToken, _ = raw.Values[keyCSRF].(string)
		if sd.CSRFToken == "" {
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}

		rw := NewResponseRecorder(w)
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty {
				sd.save(r, w)
			}
		})
		next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), ctxKeySession, sd)))
		// If nothing was written yet (e.g., HEAD), persist cookie now
		if !rw.Wrote() && sd.dirty {
			sd.save(r, w)
		}
	})
}

func (s *SessionData) save(r *http.Request, w http.ResponseWriter) {
	s.raw.Values[keyCart] = s.CartCount
	s.raw.Values[keyCSRF] = s.CSRFToken
	if err := s.raw.Save(r, w); err != nil {
		observability.FromContext(r.Context()).Warn("session save failed", zap.Error(err))
		return
	}
	s.dirty = false
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if sd, ok := r.Context().Value(ctxKeySession).(*SessionData); ok {
		return sd
	}
	return &SessionData{raw: sessions.NewSession(nil, sessionCookieName)}
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
