package http

import (
	"net/http"

	"github.com/securedoc/server/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the document-sharing API.
//
// Routes:
//
//	GET  /              → liveness line
//	POST /register      → authHandler.Register
//	POST /login         → authHandler.Login
//	POST /logout        → authHandler.Logout
//	POST /all           → shareHandler.All (unauthenticated shared-view)
//
// Session-protected (valid jwt cookie required):
//
//	GET  /authenticate  → authHandler.Authenticate
//	POST /userfiles     → docHandler.UserFiles
//	POST /create        → docHandler.Create
//	POST /update        → docHandler.Update
//	POST /delete        → docHandler.Delete
//	POST /content       → docHandler.Upload
//	POST /share         → shareHandler.Share
//	POST /sharing       → shareHandler.Sharing
func NewRouter(
	authHandler *AuthHandler,
	docHandler *DocumentHandler,
	shareHandler *ShareHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
	corsOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Credentialed cross-site access for the web client
	r.Use(middleware.CORS(corsOrigin))
	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))
	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("This is server side"))
	})

	// Public endpoints
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Post("/all", shareHandler.All)

	// Protected group: requires a valid session cookie
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(verifier))

		r.Get("/authenticate", authHandler.Authenticate)
		r.Post("/userfiles", docHandler.UserFiles)
		r.Post("/create", docHandler.Create)
		r.Post("/update", docHandler.Update)
		r.Post("/delete", docHandler.Delete)
		r.Post("/content", docHandler.Upload)
		r.Post("/share", shareHandler.Share)
		r.Post("/sharing", shareHandler.Sharing)
	})

	return r
}
