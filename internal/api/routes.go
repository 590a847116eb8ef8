package api

import "net/http"

// only restricts a handler to a single method.
func only(method string, fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		fn(w, r)
	}
}

func RegisterRoutes(mux *http.ServeMux, h *Handler) http.Handler {
	// Set APIs
	mux.HandleFunc("/set/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			h.AddValue(w, r)
		case http.MethodGet:
			h.CheckValue(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/seen/", only(http.MethodPost, h.MarkSeen))
	mux.HandleFunc("/drain", only(http.MethodPost, h.Drain))
	mux.HandleFunc("/stats", only(http.MethodGet, h.GetStats))

	// Observability APIs
	mux.HandleFunc("/metrics", h.GetMetrics)
	mux.HandleFunc("/health", h.GetHealth)

	// Admin APIs
	mux.HandleFunc("/admin/logs", only(http.MethodGet, h.GetLogs))

	// Middlewares
	return Chain(
		mux,
		RequestIDMiddleware,
		RecoveryMiddleware(h.logger, h.metrics),
		LoggingMiddleware(h.logger, h.metrics),
	)
}

