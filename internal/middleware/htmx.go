package middleware

import (
	"encoding/json"
	"net/http"
)

// HTMX marks requests coming from htmx so handlers can answer with fragments.
// Responses vary on HX-Request because the same URL may serve a page or a fragment.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		ctx := WithHTMX(r.Context(), is, r.Header.Get("HX-Target"))
		w.Header().Add("Vary", "HX-Request")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Notice is the payload of the client "notify" event.
type Notice struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Trigger sets the HX-Trigger header with the given client events.
// Existing events on the header are kept.
func Trigger(w http.ResponseWriter, events map[string]any) {
	merged := map[string]any{}
	if prev := w.Header().Get("HX-Trigger"); prev != "" {
		_ = json.Unmarshal([]byte(prev), &merged)
	}
	for k, v := range events {
		merged[k] = v
	}
	if raw, err := json.Marshal(merged); err == nil {
		w.Header().Set("HX-Trigger", string(raw))
	}
}

// Notify queues a toast notification for htmx clients.
func Notify(w http.ResponseWriter, message, kind string) {
	if kind == "" {
		kind = "success"
	}
	Trigger(w, map[string]any{"notify": Notice{Message: message, Type: kind}})
}
