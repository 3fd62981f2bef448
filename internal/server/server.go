package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/api/http"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/api/middleware"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/infrastructure/config"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/infrastructure/logging"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/infrastructure/monitoring"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/infrastructure/resilience"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/llm"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/store"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/ws"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	httpSrv *http.Server
	store   *store.Store
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// New builds a fully wired server. The context bounds startup work such
// as the database ping.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("initializing server",
		zap.String("port", cfg.Server.Port),
		zap.String("ollama_host", cfg.Ollama.Host),
		zap.String("model", cfg.Ollama.Model),
	)

	metrics := monitoring.NewMetrics()

	departments, err := config.LoadDepartments(cfg.DepartmentsFile)
	if err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}

	domainStore, err := store.Open(ctx, cfg.Database.URL, cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	logger.Info("connected to database")

	ollamaClient, err := llm.NewOllamaClient(cfg.Ollama.Host)
	if err != nil {
		domainStore.Close()
		return nil, fmt.Errorf("model client: %w", err)
	}

	tools := llm.NewToolset(departments)
	retry := resilience.Policy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
		Recovery:    llm.NewSpawner(cfg.Ollama.SpawnCommand, logger.Named("recovery").Logger),
		Logger:      logger.Named("retry").Logger,
	}
	bridge := llm.NewBridge(
		ollamaClient,
		llm.NewVersionProbe(cfg.Ollama.Host),
		tools,
		cfg.Ollama,
		retry,
		logger.Named("bridge").Logger,
	)
	interp := llm.NewInterpreter(tools, domainStore, logger.Named("interpreter").Logger).WithMetrics(metrics)
	assistant := llm.NewAssistant(bridge, interp, logger.Named("assistant").Logger).WithMetrics(metrics)

	hub := ws.NewHub(logger.Named("hub").Logger, metrics)
	wsHandler := ws.NewHandler(hub, assistant, domainStore, logger.Named("ws").Logger, metrics)
	handlers := apihttp.NewHandlers(domainStore, hub, logger.Named("http").Logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	registerRoutes(router, handlers, wsHandler)

	logger.Info("server initialized",
		zap.Int("departments", len(departments)),
	)

	return &Server{
		httpSrv: &http.Server{
			Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		store:   domainStore,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

func registerRoutes(router *gin.Engine, handlers *apihttp.Handlers, wsHandler *ws.Handler) {
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", wsHandler.HandleConnection)

	api := router.Group("/api")
	{
		api.POST("/auth/register", handlers.Register)
		api.POST("/auth/login", handlers.Login)
		api.GET("/users/:id", handlers.GetUser)

		api.POST("/requests", handlers.CreateRequest)
		api.GET("/requests", handlers.ListRequests)
		api.PATCH("/requests/:id/status", handlers.UpdateRequestStatus)

		api.GET("/nurses", handlers.ListNurses)
		api.PATCH("/nurses/:id/approval", handlers.SetNurseApproval)

		api.POST("/tasks", handlers.CreateTask)
		api.GET("/tasks", handlers.ListTasks)
		api.PATCH("/tasks/:id", handlers.ResolveTask)

		api.POST("/shifts", handlers.CreateShift)
		api.GET("/shifts", handlers.ListShifts)
		api.DELETE("/shifts/:id", handlers.DeleteShift)

		api.POST("/messages", handlers.SendMessage)
		api.GET("/messages/conversation", handlers.GetConversation)
		api.PATCH("/messages/:id/read", handlers.MarkMessageRead)
	}
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close drains in-flight requests, then releases the database pool.
func (s *Server) Close() error {
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Error("http shutdown failed", zap.Error(err))
	}

	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	s.logger.Info("shutdown complete")
	return nil
}
