package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"aichat-server/config"
	"aichat-server/internal/handler"
	"aichat-server/internal/middleware"
	"aichat-server/internal/services"
	"aichat-server/internal/transport/httpdto"
	"aichat-server/pkg/database"
	"aichat-server/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Chat   *handler.ChatHandler
	Upload *handler.UploadHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware(s.config.ClientURL))
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := s.engine.Group("/api", middleware.AuthMiddleware(authService))
	{
		api.GET("/upload", handlers.Upload.Credentials)
		api.POST("/chats", handlers.Chat.Start)
		api.GET("/userchats", handlers.Chat.List)
		api.GET("/chats/:id", handlers.Chat.GetByID)
		api.PUT("/chats/:id", handlers.Chat.Continue)
	}

	// Everything else serves the single-page client shell.
	s.engine.NoRoute(spaFallback(s.config.StaticDir))
}

// spaFallback serves files out of the built client directory and
// falls back to index.html so client-side routes deep-link.
func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}

		reqPath := filepath.Clean(c.Request.URL.Path)
		if strings.Contains(reqPath, "..") {
			c.Status(http.StatusBadRequest)
			return
		}

		full := filepath.Join(staticDir, reqPath)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			c.File(full)
			return
		}

		c.File(filepath.Join(staticDir, "index.html"))
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if err := database.Disconnect(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error disconnecting from the database: %s", err)
		}
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
