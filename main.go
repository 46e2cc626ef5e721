package main

import (
	auth "Calcform/internal/auth"
	batch "Calcform/internal/calc/batch"
	curb "Calcform/internal/calc/curb"
	entry "Calcform/internal/calc/entry"
	hole "Calcform/internal/calc/hole"
	hollow "Calcform/internal/calc/hollow"
	importer "Calcform/internal/calc/importer"
	report "Calcform/internal/calc/report"
	slab "Calcform/internal/calc/slab"
	stairs "Calcform/internal/calc/stairs"
	volume "Calcform/internal/calc/volume"
	config "Calcform/internal/config"
	logging "Calcform/internal/logging"
	metrics "Calcform/internal/metrics"
	repo "Calcform/internal/repo"
	session "Calcform/internal/session"
	units "Calcform/internal/units"
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config, logger *zap.Logger, sessions repo.Repository) {
	sessionEnv := &auth.SessionEnv{
		Key:    []byte(cfg.SessionKey),
		Repo:   sessions,
		TTL:    cfg.SessionTTL,
		Secure: cfg.TLS(),
		Log:    logger,
	}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	mux.Use(metrics.Middleware)
	mux.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(logging.Middleware(logger))
	api.Use(limiter.LimitMiddleware)

	unitsH := &units.Handler{}
	volumeH := &volume.Handler{}
	entryH := &entry.Handler{Log: logger}
	batchH := &batch.Handler{Log: logger}
	slabH := &slab.Handler{}
	holeH := &hole.Handler{}
	hollowH := &hollow.Handler{}
	curbH := &curb.Handler{}
	stairsH := &stairs.Handler{}

	api.HandleFunc("/tools/units/convert", unitsH.Convert).Methods("POST")
	api.HandleFunc("/tools/kinds", volumeH.Kinds).Methods("GET")
	api.HandleFunc("/tools/measurements/calc", volumeH.Calc).Methods("POST")
	api.HandleFunc("/tools/volume/calc", entryH.Calc).Methods("POST")
	api.HandleFunc("/tools/batch", batchH.Calc).Methods("POST")
	api.HandleFunc("/tools/slab/calc", slabH.Calc).Methods("POST")
	api.HandleFunc("/tools/hole/calc", holeH.Calc).Methods("POST")
	api.HandleFunc("/tools/hollow/calc", hollowH.Calc).Methods("POST")
	api.HandleFunc("/tools/curb/calc", curbH.Calc).Methods("POST")
	api.HandleFunc("/tools/stairs/calc", stairsH.Calc).Methods("POST")

	sessionApi := api.PathPrefix("/session").Subrouter()
	sessionApi.Use(sessionEnv.SessionMiddleware)

	sessionH := &session.Handler{Log: logger}
	reportH := &report.Handler{Log: logger}
	importH := &importer.Handler{Log: logger}

	sessionApi.HandleFunc("", sessionEnv.EndSession).Methods("DELETE")
	sessionApi.HandleFunc("/rows", sessionH.Reset).Methods("DELETE")
	sessionApi.HandleFunc("/rows", sessionH.ListRows).Methods("GET")
	sessionApi.HandleFunc("/rows", sessionH.CreateRow).Methods("POST")
	sessionApi.HandleFunc("/rows/{id}", sessionH.SaveRow).Methods("PUT")
	sessionApi.HandleFunc("/rows/{id}/kind", sessionH.ChangeKind).Methods("PATCH")
	sessionApi.HandleFunc("/rows/{id}", sessionH.DeleteRow).Methods("DELETE")
	sessionApi.HandleFunc("/entries", sessionH.Entries).Methods("GET")
	sessionApi.HandleFunc("/summary", sessionH.Summary).Methods("GET")
	sessionApi.HandleFunc("/import", importH.Import).Methods("POST")
	sessionApi.HandleFunc("/report/pdf", reportH.PDF).Methods("POST")
	sessionApi.HandleFunc("/report/xlsx", reportH.Excel).Methods("POST")

	mainFileServer := http.FileServer(http.Dir(cfg.StaticDir))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

// pruneSessions drops idle sessions until ctx is done.
func pruneSessions(ctx context.Context, sessions *repo.MemoryRepository, ttl time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(ttl / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := sessions.Prune(now.Add(-ttl)); n > 0 {
				logger.Info("pruned idle sessions", zap.Int("count", n), zap.Int("remaining", sessions.Len()))
			}
		}
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, "calcform")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	sessions := repo.NewMemoryRepository()
	mux := mux.NewRouter()
	HandleList(mux, cfg, logger, sessions)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		pruneSessions(ctx, sessions, cfg.SessionTTL, logger)
	}()
	go func() {
		defer wg.Done()
		logger.Info("starting server", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLS()))
		var serveErr error
		if cfg.TLS() {
			serveErr = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			serveErr = server.ListenAndServe()
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(serveErr))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")

	wg.Wait()
}
