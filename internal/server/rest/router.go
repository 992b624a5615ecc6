package rest

import (
	"net/http"

	"github.com/dmitrijs2005/brainly/internal/logging"
	"github.com/dmitrijs2005/brainly/internal/server/auth"
)

type handler struct {
	opts     Options
	deps     Deps
	verifier *Verifier
	logger   logging.Logger
}

// NewHandler builds the routed and wrapped http.Handler.
func NewHandler(opts Options, deps Deps, logger logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	if deps.Revoker == nil {
		deps.Revoker = auth.NopRevoker{}
	}
	h := &handler{
		opts:     opts,
		deps:     deps,
		verifier: NewVerifier(deps.Tokens, deps.Users, deps.Revoker, logger),
		logger:   logger,
	}
	return h.routes()
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()
	v := h.verifier

	mux.HandleFunc("GET /test", h.serverTest)
	mux.HandleFunc("GET /healthz", h.liveness)
	mux.HandleFunc("GET /readyz", h.readiness)

	// users
	mux.HandleFunc("POST /api/v1/users/register", h.register)
	mux.HandleFunc("POST /api/v1/users/login", h.login)
	mux.HandleFunc("POST /api/v1/users/logout", v.Require(h.logout))
	mux.HandleFunc("GET /api/v1/users/me", v.Require(h.me))

	// contents
	mux.HandleFunc("GET /api/v1/contents/test", h.contentsTest)
	mux.HandleFunc("POST /api/v1/contents/create", v.Require(h.createContent))
	mux.HandleFunc("GET /api/v1/contents/find", v.Require(h.findContent))
	mux.HandleFunc("DELETE /api/v1/contents/{id}", v.Require(h.deleteContent))
	if h.deps.Exports != nil {
		mux.HandleFunc("POST /api/v1/contents/export", v.Require(h.exportContent))
	}

	// share
	mux.HandleFunc("POST /api/v1/shareLink", v.Require(h.toggleShareLink))
	mux.HandleFunc("GET /api/v1/shareLink", v.Require(h.toggleShareLink))
	mux.HandleFunc("GET /api/v1/share/{shareLink}", h.sharedContent)

	mux.HandleFunc("/", h.notFound)

	var next http.Handler = mux
	next = limitBody(maxBodyBytes, next)
	next = withCORS(h.opts.CORSOrigin, next)
	next = withSecurityHeaders(next)
	next = withRecover(h.logger, next)
	return withRequestLog(h.logger, next)
}

func (h *handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorEnvelope{
		StatusCode: http.StatusNotFound,
		Message:    "Cannot " + r.Method + " " + r.URL.Path,
	})
}

func (h *handler) serverTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Server is working!"})
}

func (h *handler) contentsTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"message": "Content routes are working!", "success": true})
}
