package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"corona-observer/src/analysis"
	"corona-observer/src/logger"
	"corona-observer/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Analyzer *analysis.AnalysisFacade
	engine   *gin.Engine
	httpSrv  *http.Server

	// WebSocket clients, owned by the hub loop
	clients     map[*Client]struct{}
	broadcast   chan *models.MLatestData
	register    chan *Client
	unregister  chan *Client
	connections atomic.Int64
	done        chan struct{}
	stopOnce    sync.Once
	hubOnce     sync.Once

	// Local cache
	dataset     *models.MDataset
	latestState *models.MLatestData
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(cfg *models.MConfig, analyzer *analysis.AnalysisFacade, log *logger.Logger) *APIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:   cfg,
		Logger:   log,
		Analyzer: analyzer,
		engine:   gin.New(),
		clients:  make(map[*Client]struct{}),
		// Buffered so a refresh never waits on the hub
		broadcast:  make(chan *models.MLatestData, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		latestState: &models.MLatestData{
			Type: models.PayloadInitial,
			Rows: []models.MCountryRow{},
		},
	}

	// gin.Default would log to stdout, which belongs to the TUI
	s.engine.Use(gin.Recovery(), s.requestLogger())

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.getHealth)
	api.GET("/summary", s.getSummary)
	api.GET("/countries", s.getCountries)
	api.GET("/countries/:name", s.getCountry)

	s.engine.GET("/chart/:name", s.getChart)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler exposes the router, mainly for httptest.
func (s *APIServer) Handler() http.Handler {
	return s.engine
}

func (s *APIServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Debug("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start runs the hub and serves HTTP until Stop is called.
func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.Info("Starting server on %s", addr)

	s.StartHub()

	s.stateMutex.Lock()
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpSrv
	s.stateMutex.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server on %s failed: %w", addr, err)
	}
	return nil
}

// StartHub starts the websocket hub loop once.
func (s *APIServer) StartHub() {
	s.hubOnce.Do(func() {
		go s.handleWebsockets()
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.done)
	})

	s.stateMutex.RLock()
	srv := s.httpSrv
	s.stateMutex.RUnlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	timestamp := s.latestState.Timestamp
	origin := s.latestState.Summary.Origin
	ready := s.dataset != nil
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"ready":         ready,
		"connections":   s.connections.Load(),
		"latest_update": timestamp,
		"origin":        origin,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getSummary(c *gin.Context) {
	ds := s.currentDataset()
	if ds == nil {
		notReady(c)
		return
	}
	c.JSON(http.StatusOK, s.Analyzer.Summary(ds))
}

// -----------------------------------------------------------------------------

func (s *APIServer) getCountries(c *gin.Context) {
	ds := s.currentDataset()
	if ds == nil {
		notReady(c)
		return
	}

	metric, err := s.sortMetric(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sort":    metric.String(),
		"headers": ds.Headers,
		"rows":    s.Analyzer.Rows(ds, metric),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getCountry(c *gin.Context) {
	ds := s.currentDataset()
	if ds == nil {
		notReady(c)
		return
	}

	country := findCountry(ds, c.Param("name"))
	if country == nil {
		c.JSON(http.StatusNotFound, models.MCountryPayload{
			Type:  models.PayloadError,
			Error: fmt.Sprintf("unknown country %q", c.Param("name")),
		})
		return
	}

	c.JSON(http.StatusOK, models.MCountryPayload{
		Type:    models.PayloadCountry,
		Country: country,
		Dates:   ds.Headers,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getChart(c *gin.Context) {
	ds := s.currentDataset()
	if ds == nil {
		notReady(c)
		return
	}

	country := findCountry(ds, c.Param("name"))
	if country == nil {
		c.String(http.StatusNotFound, "unknown country %q", c.Param("name"))
		return
	}

	page, err := renderCountryChart(ds, country)
	if err != nil {
		s.Logger.Error("Failed to render chart for %s: %v", country.Country, err)
		c.String(http.StatusInternalServerError, "failed to render chart")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// UpdateDataset replaces the served dataset and queues a push to every client.
func (s *APIServer) UpdateDataset(ds *models.MDataset) {
	if ds == nil {
		return
	}

	state := &models.MLatestData{
		Type:      models.PayloadUpdate,
		Summary:   s.Analyzer.Summary(ds),
		Rows:      s.Analyzer.Rows(ds, s.defaultMetric()),
		Timestamp: ds.FetchedAt.Unix(),
	}

	s.stateMutex.Lock()
	s.dataset = ds
	s.latestState = state
	s.stateMutex.Unlock()

	select {
	case s.broadcast <- state:
	default:
		s.Logger.Warning("Broadcast queue full, dropping update")
	}
}

func (s *APIServer) currentDataset() *models.MDataset {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()
	return s.dataset
}
