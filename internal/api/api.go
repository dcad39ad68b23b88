// Package api wires the auth and product services to HTTP routes.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"productapi/internal/auth"
	"productapi/internal/catalog"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Services are the collaborators the HTTP layer delegates to.
type Services struct {
	Auth     *auth.Service
	Tokens   *auth.Tokens
	Products *catalog.Service
}

type APIServer struct {
	listenAddr     string
	auth           *auth.Service
	tokens         *auth.Tokens
	products       *catalog.Service
	allowedOrigins []string
	metrics        *Metrics
}

func NewAPIServer(listenAddr string, svc Services, allowedOrigins []string) *APIServer {
	return &APIServer{
		listenAddr:     listenAddr,
		auth:           svc.Auth,
		tokens:         svc.Tokens,
		products:       svc.Products,
		allowedOrigins: allowedOrigins,
		metrics:        NewMetrics("productapi"),
	}
}

// Router returns the full handler: routes plus the middleware chain.
//
//	POST   /api/auth/register
//	POST   /api/auth/login
//	POST   /api/products                    (bearer token)
//	GET    /api/products
//	GET    /api/products/featured
//	GET    /api/products/price/{maxPrice}
//	GET    /api/products/rating/{minRating}
//	GET    /api/products/{id}
//	PUT    /api/products/{id}               (bearer token)
//	DELETE /api/products/{id}               (bearer token)
//	GET    /health
//	GET    /metrics
func (s *APIServer) Router() http.Handler {
	router := mux.NewRouter()
	protect := auth.Protect(s.tokens)

	router.HandleFunc("/health", makeHTTPHandleFunc(s.handleHealth)).Methods(http.MethodGet)
	router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/register", makeHTTPHandleFunc(s.handleRegister)).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", makeHTTPHandleFunc(s.handleLogin)).Methods(http.MethodPost)

	router.Handle("/api/products", protect(makeHTTPHandleFunc(s.handleCreateProduct))).Methods(http.MethodPost)
	router.HandleFunc("/api/products", makeHTTPHandleFunc(s.handleListProducts)).Methods(http.MethodGet)
	// literal segments must be registered before /{id}
	router.HandleFunc("/api/products/featured", makeHTTPHandleFunc(s.handleFeaturedProducts)).Methods(http.MethodGet)
	router.HandleFunc("/api/products/price/{maxPrice}", makeHTTPHandleFunc(s.handleProductsByPrice)).Methods(http.MethodGet)
	router.HandleFunc("/api/products/rating/{minRating}", makeHTTPHandleFunc(s.handleProductsByRating)).Methods(http.MethodGet)
	router.HandleFunc("/api/products/{id}", makeHTTPHandleFunc(s.handleGetProduct)).Methods(http.MethodGet)
	router.Handle("/api/products/{id}", protect(makeHTTPHandleFunc(s.handleUpdateProduct))).Methods(http.MethodPut)
	router.Handle("/api/products/{id}", protect(makeHTTPHandleFunc(s.handleDeleteProduct))).Methods(http.MethodDelete)

	router.Use(s.metrics.Middleware)

	var h http.Handler = router
	h = corsMiddleware(s.allowedOrigins)(h)
	h = logRequests(h)
	h = requestID(h)
	h = recoverPanics(h)
	return h
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *APIServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.listenAddr,
		Handler:      otelhttp.NewHandler(s.Router(), "productapi"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("JSON API server running", "addr", s.listenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) error {
	return WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
