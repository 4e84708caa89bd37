package middleware

import "net/http"

const (
	csrfHeaderName = "X-CSRF-Token"
	csrfFormField  = "csrf_token"
)

// CSRF keeps a token in the signed session and verifies that modifying
// requests echo it, either in the X-CSRF-Token header (htmx) or in the
// csrf_token form field (plain form posts). Pages read the token from the
// layout, never from a cookie.
func (m *Sessions) CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r)
		token := s.CSRFToken
		if token == "" { // initialize if missing
			token = newCSRFToken()
			s.CSRFToken = token
			s.MarkDirty()
		}

		if !isSafeMethod(r.Method) {
			sent := r.Header.Get(csrfHeaderName)
			if sent == "" {
				sent = r.PostFormValue(csrfFormField)
			}
			if sent == "" || sent != token {
				WriteError(w, r, http.StatusForbidden, "invalid CSRF token")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// CSRFToken returns the token templates embed in forms.
func CSRFToken(r *http.Request) string {
	return GetSession(r).CSRFToken
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
