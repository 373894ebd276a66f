package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"
	"golang.org/x/time/rate"

	"github.com/klabast/wb-services/payday-calendar/internal/log"
	"github.com/klabast/wb-services/payday-calendar/internal/payday"
)

// Server is the HTTP front end of the payday calendar
type Server struct {
	cfg      *Config
	cache    *payday.Cache
	store    *TableStore
	auth     *Auth
	limiter  *rate.Limiter
	validate *validator.Validate
	metrics  *Metrics
}

// NewServer wires a Server. A nil auth leaves write endpoints open.
func NewServer(cfg *Config, store *TableStore, auth *Auth) *Server {
	if auth == nil {
		auth = &Auth{}
	}
	s := &Server{
		cfg:      cfg,
		cache:    payday.NewCache(),
		store:    store,
		auth:     auth,
		limiter:  rate.NewLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst),
		validate: validator.New(),
		metrics:  NewMetrics(),
	}
	s.cache.OnHit = func(int) { s.metrics.CacheHits.Inc() }
	s.cache.OnMiss = func(year int) {
		s.metrics.TablesBuilt.Inc()
		log.Debug("computed payday table for %d", year)
	}
	return s
}

// Routes returns the HTTP handler with all routes registered
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.HandleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(s.RateLimit)

		r.Get("/config", s.GetConfig)
		r.Get("/paydays/{year}", s.HandleYear)
		r.Get("/paydays/{year}/{month}", s.HandleMonth)
		r.Get("/holidays/{year}", s.HandleHolidays)
		r.Get("/download", s.HandleDownload)
		r.Get("/subscribe", s.HandleSubscribe)
		r.Get("/tables/{year}", s.HandleGetTable)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.Middleware)
			r.Post("/tables/{year}", s.HandleSaveTable)
		})
	})

	return r
}

// RateLimit rejects requests beyond the configured token bucket
func (s *Server) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.metrics.Throttled.Inc()
			log.Warn("too many requests from %s", r.RemoteAddr)
			WriteError(w, r, http.StatusTooManyRequests, ErrTooManyReqs)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.HTTP.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting payday calendar in %s mode on %s", ModeServe, s.cfg.HTTP.Addr)
		log.Info("tables directory: %s", s.store.Dir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
