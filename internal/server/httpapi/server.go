// Package httpapi exposes the prediction service over HTTP. Routing is
// chi-based; every authenticated route goes through a bearer-token
// middleware that resolves the caller's identity via the configured
// identity provider before any handler runs.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/logging"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/auth"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/config"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/models"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/services"
)

// userService is the slice of services.UserService the handlers need.
type userService interface {
	Register(ctx context.Context, p services.RegisterParams) (*models.Account, error)
	Profile(ctx context.Context, ident *auth.Identity) (*models.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// predictionService is the slice of services.PredictionService the
// handlers need.
type predictionService interface {
	Predict(ctx context.Context, ownerID string, vector [models.FeatureCount]float64) (*models.PredictionRecord, error)
	History(ctx context.Context, ownerID string) ([]*models.PredictionRecord, error)
	Delete(ctx context.Context, ownerID, recordID string) error
}

// tokenIssuer exchanges credentials for a signed bearer token. Only the
// local strategy provides one.
type tokenIssuer interface {
	IssueToken(ctx context.Context, username, password string) (string, error)
}

// Options bundles the collaborators the HTTP server is wired with at
// startup.
type Options struct {
	Address     string
	Logger      logging.Logger
	Users       userService
	Predictions predictionService
	Provider    auth.Provider
	Issuer      tokenIssuer
	AuthMode    string
	CORSOrigin  string
}

type HTTPServer struct {
	address     string
	logger      logging.Logger
	users       userService
	predictions predictionService
	provider    auth.Provider
	issuer      tokenIssuer
	authMode    string
	corsOrigin  string
}

func NewHTTPServer(opts Options) *HTTPServer {
	return &HTTPServer{
		address:     opts.Address,
		logger:      opts.Logger.With("module", "http_server"),
		users:       opts.Users,
		predictions: opts.Predictions,
		provider:    opts.Provider,
		issuer:      opts.Issuer,
		authMode:    opts.AuthMode,
		corsOrigin:  opts.CORSOrigin,
	}
}

// Router assembles the route table. Strategy-specific endpoints are only
// mounted for the deployment's auth mode.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.corsMiddleware)

	r.Get("/", s.handleRoot)
	r.Post("/register", s.handleRegister)

	if s.authMode == config.AuthModeLocal {
		r.Post("/token", s.handleToken)
	}
	if s.authMode == config.AuthModeFederated {
		r.Get("/check-user/{email}", s.handleCheckUser)
	}

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/auth/verify", s.handleVerify)
		r.Post("/predict", s.handlePredict)
		r.Get("/history", s.handleHistory)
		r.Delete("/history/{id}", s.handleDelete)
		r.Get("/myaccount", s.handleMyAccount)
	})

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.Router()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address, "auth_mode", s.authMode)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
