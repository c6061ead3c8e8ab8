package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"agriledger/internal/cache"
	"agriledger/internal/core"
	applog "agriledger/internal/log"
	"agriledger/internal/middleware/ratelimit"
	"agriledger/internal/middleware/security"
	"agriledger/internal/middleware/trace"
	"agriledger/internal/services"
	"agriledger/internal/storage"

	"github.com/gorilla/mux"
)

// Options tunes the server's ambient behavior.
type Options struct {
	RateLimitPerMinute int
	CacheTTL           time.Duration
	Logger             *applog.Logger
}

// Server is the JSON API serving the record-keeping client.
type Server struct {
	http.Server

	store   *storage.Repository
	records *services.RecordService

	rateLimiter *ratelimit.Limiter
	traceMW     *trace.Middleware

	// counts per summary key, invalidated on every record write
	summaryCache *cache.Store[core.Counts]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, store *storage.Repository, records *services.RecordService, opts Options) *Server {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}

	s := &Server{
		store:   store,
		records: records,
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitPerMinute,
		}),
		traceMW:          trace.NewMiddleware(extractClientIP),
		summaryCache:     cache.New[core.Counts](100, opts.CacheTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	router := mux.NewRouter()
	router.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	router.Use(s.traceMW.Middleware)
	router.Use(s.rateLimiter.Middleware(extractClientIP, nil))
	if opts.Logger != nil {
		router.Use(applog.Middleware(opts.Logger.WithComponent(applog.ComponentHTTP)))
	}

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/buyers", s.handleListBuyers).Methods(http.MethodGet)
	api.HandleFunc("/buyers", s.handleCreateBuyer).Methods(http.MethodPost)
	api.HandleFunc("/buyers/{id}", s.handleGetBuyer).Methods(http.MethodGet)
	api.HandleFunc("/buyers/{id}", s.handleUpdateBuyer).Methods(http.MethodPut)
	api.HandleFunc("/buyers/{id}", s.handleDeleteBuyer).Methods(http.MethodDelete)

	api.HandleFunc("/buyer-income", s.handleCreateIncomeRecord).Methods(http.MethodPost)
	api.HandleFunc("/buyer-income/buyer/{buyerId}", s.handleListIncomeRecords).Methods(http.MethodGet)
	api.HandleFunc("/buyer-income/buyer/{buyerId}/summary", s.handleIncomeSummary).Methods(http.MethodGet)
	api.HandleFunc("/buyer-income/{id}", s.handleDeleteIncomeRecord).Methods(http.MethodDelete)

	api.HandleFunc("/buyer-records", s.handleCreatePurchaseRecord).Methods(http.MethodPost)
	api.HandleFunc("/buyer-records/buyer/{buyerId}", s.handleListPurchaseRecords).Methods(http.MethodGet)
	api.HandleFunc("/buyer-records/{id}", s.handleDeletePurchaseRecord).Methods(http.MethodDelete)
	api.HandleFunc("/varients/{recordId}", s.handleListRecordItems).Methods(http.MethodGet)

	api.HandleFunc("/landowners", s.handleListLandOwners).Methods(http.MethodGet)
	api.HandleFunc("/landowners", s.handleCreateLandOwner).Methods(http.MethodPost)
	api.HandleFunc("/landowners/{id}", s.handleGetLandOwner).Methods(http.MethodGet)
	api.HandleFunc("/landowners/{id}", s.handleUpdateLandOwner).Methods(http.MethodPut)
	api.HandleFunc("/landowners/{id}", s.handleDeleteLandOwner).Methods(http.MethodDelete)

	api.HandleFunc("/landowner-records", s.handleCreateOwnerRecord).Methods(http.MethodPost)
	api.HandleFunc("/landowner-records/owner/{ownerId}", s.handleListOwnerRecords).Methods(http.MethodGet)
	api.HandleFunc("/landowner-records/owner/{ownerId}/summary", s.handleOwnerSummary).Methods(http.MethodGet)
	api.HandleFunc("/landowner-records/{id}", s.handleDeleteOwnerRecord).Methods(http.MethodDelete)

	api.HandleFunc("/lands", s.handleListLands).Methods(http.MethodGet)
	api.HandleFunc("/lands", s.handleCreateLand).Methods(http.MethodPost)
	api.HandleFunc("/lands/landowner/{landOwnerId}", s.handleListLandsByOwner).Methods(http.MethodGet)

	api.HandleFunc("/land-available", s.handleListLandAvailable).Methods(http.MethodGet)
	api.HandleFunc("/land-available", s.handleCreateLandAvailable).Methods(http.MethodPost)
	api.HandleFunc("/land-available/{id}", s.handleGetLandAvailable).Methods(http.MethodGet)
	api.HandleFunc("/land-available/{id}", s.handleUpdateLandAvailable).Methods(http.MethodPut)
	api.HandleFunc("/land-available/{id}", s.handleDeleteLandAvailable).Methods(http.MethodDelete)

	api.HandleFunc("/cutoff", s.handleCreateCutoffRecord).Methods(http.MethodPost)
	api.HandleFunc("/cutoff/all", s.handleListCutoffRecords).Methods(http.MethodGet)
	api.HandleFunc("/cutoff/summary", s.handleCutoffSummary).Methods(http.MethodGet)
	api.HandleFunc("/cutoff/land/{landId}", s.handleListCutoffByLand).Methods(http.MethodGet)
	api.HandleFunc("/cutoff/{id}", s.handleDeleteCutoffRecord).Methods(http.MethodDelete)

	api.HandleFunc("/products", s.handleListProducts).Methods(http.MethodGet)

	s.Server = http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.startCacheCleanup()

	return s
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.summaryCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// invalidateSummaries drops every cached count after a write.
func (s *Server) invalidateSummaries() {
	s.summaryCache.Clear()
}

func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
