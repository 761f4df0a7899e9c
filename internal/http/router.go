package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard http.ServeMux; three routes do not justify a
// third-party router.
type Router struct {
	mux           *http.ServeMux
	allowedOrigin string
	logger        *zap.Logger
}

func NewRouter(allowedOrigin string, logger *zap.Logger) *Router {
	return &Router{
		mux:           http.NewServeMux(),
		allowedOrigin: allowedOrigin,
		logger:        logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// the quote form is served from a different origin and the session
	// cookie travels cross-site, so CORS must allow credentials
	origin := req.Header.Get("Origin")
	if origin != "" && origin == r.allowedOrigin {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Vary", "Origin")
	}
	if req.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	r.mux.ServeHTTP(w, req)
}

// RegisterQuoteRoutes wires the submission API.
func (r *Router) RegisterQuoteRoutes(q *QuoteHandler) {
	r.Handle("/api/v1/quote", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		q.Submit(w, req)
	})

	r.Handle("/api/v1/quotes/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		q.Export(w, req)
	})

	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}
